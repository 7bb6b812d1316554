package deepval

// ArrayStrategy controls how Merge combines two sequences found under the
// same key.
type ArrayStrategy uint8

const (
	// ArrayConcat appends the source's elements after the target's.
	ArrayConcat ArrayStrategy = iota
	// ArrayReplace discards the target's sequence and takes the source's.
	ArrayReplace
)

func (s ArrayStrategy) String() string {
	if s == ArrayReplace {
		return "replace"
	}
	return "concat"
}

// MergeOptions configures Merge behavior.
type MergeOptions struct {
	// Arrays selects the sequence-combination policy.
	Arrays ArrayStrategy
	// MaxDepth bounds nested-merge recursion. Values <= 0 fall back to
	// the default. This is a depth limit, not a cycle detector: a cyclic
	// source will run until the limit trips.
	MaxDepth int
}

// DefaultMergeOptions returns the default configuration: concat arrays,
// max depth 50.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{Arrays: ArrayConcat, MaxDepth: 50}
}

// Merge combines target with the sources in order, later sources winning on
// conflicting keys, using DefaultMergeOptions. See MergeWith.
func Merge(target Value, sources ...Value) (*Mapping, error) {
	return MergeWith(DefaultMergeOptions(), target, sources...)
}

// MergeWith produces a new mapping combining target and sources. Neither
// target nor any source is ever mutated.
//
// For each source key: mapping-into-mapping merges recursively,
// sequence-into-sequence combines per opts.Arrays, and anything else
// (primitives, instants, patterns, funcs, or a kind mismatch) replaces the
// accumulated value outright. Sources that are not plain mappings are
// silently skipped.
//
// The target must be a plain mapping or MergeWith fails with
// *InvalidArgumentError. Recursion past opts.MaxDepth fails with
// *DepthExceededError. Merging a cyclic source is unsupported; the depth
// guard is what stops it.
//
// The result shares unchanged child containers with the inputs (it is built
// from shallow copies); callers that need full independence should Clone it.
func MergeWith(opts MergeOptions, target Value, sources ...Value) (*Mapping, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMergeOptions().MaxDepth
	}

	tm, ok := target.(*Mapping)
	if !ok {
		e := &InvalidArgumentError{What: "merge target"}
		if target == nil {
			e.Absent = true
		} else {
			e.Got = target.Kind()
		}
		return nil, e
	}

	acc := tm.shallowCopy()
	for _, src := range sources {
		sm, ok := src.(*Mapping)
		if !ok {
			// Only plain mappings contribute keys.
			continue
		}
		merged, err := mergeMapping(acc, sm, opts, 1)
		if err != nil {
			return nil, err
		}
		acc = merged
	}
	return acc, nil
}

// mergeMapping merges src into a shallow copy of dst at the given depth.
func mergeMapping(dst, src *Mapping, opts MergeOptions, depth int) (*Mapping, error) {
	if depth > opts.MaxDepth {
		return nil, &DepthExceededError{Limit: opts.MaxDepth}
	}

	out := dst.shallowCopy()
	for _, k := range src.Keys() {
		sv, _ := src.Get(k)
		dv, exists := out.Get(k)
		if exists {
			if dm, ok := dv.(*Mapping); ok {
				if sm, ok := sv.(*Mapping); ok {
					merged, err := mergeMapping(dm, sm, opts, depth+1)
					if err != nil {
						return nil, err
					}
					out.Set(k, merged)
					continue
				}
			}
			if ds, ok := dv.(*Sequence); ok {
				if ss, ok := sv.(*Sequence); ok {
					out.Set(k, mergeSequences(ds, ss, opts.Arrays))
					continue
				}
			}
		}
		out.Set(k, sv)
	}
	return out, nil
}

// mergeSequences combines two sequences into a new one, leaving both inputs
// untouched.
func mergeSequences(dst, src *Sequence, strategy ArrayStrategy) *Sequence {
	if strategy == ArrayReplace {
		out := NewSequence()
		out.Append(src.Items()...)
		return out
	}
	out := NewSequence()
	out.Append(dst.Items()...)
	out.Append(src.Items()...)
	return out
}
