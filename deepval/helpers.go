package deepval

import "math"

// Pick returns a new mapping holding only the named keys of m, in m's key
// order. Keys absent from m are ignored. Values are shared, not cloned.
func Pick(m *Mapping, keys ...string) *Mapping {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	out := NewMapping()
	for _, k := range m.Keys() {
		if want[k] {
			v, _ := m.Get(k)
			out.Set(k, v)
		}
	}
	return out
}

// Omit returns a new mapping holding every key of m except the named ones.
// Values are shared, not cloned.
func Omit(m *Mapping, keys ...string) *Mapping {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}
	out := NewMapping()
	for _, k := range m.Keys() {
		if !drop[k] {
			v, _ := m.Get(k)
			out.Set(k, v)
		}
	}
	return out
}

// Chunk splits s into consecutive sub-sequences of the given size; the last
// chunk holds the remainder. Size must be positive or the result is a
// single-chunk copy.
func Chunk(s *Sequence, size int) *Sequence {
	out := NewSequence()
	items := s.Items()
	if size <= 0 {
		size = len(items)
		if size == 0 {
			return out
		}
	}
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunk := NewSequence()
		chunk.Append(items[start:end]...)
		out.Append(chunk)
	}
	return out
}

// Flatten lifts nested sequences up to depth levels into a new flat
// sequence. A negative depth flattens completely; cyclic input therefore
// requires a non-negative depth to terminate.
func Flatten(s *Sequence, depth int) *Sequence {
	out := NewSequence()
	flattenInto(out, s, depth)
	return out
}

func flattenInto(out *Sequence, s *Sequence, depth int) {
	for _, item := range s.Items() {
		if nested, ok := item.(*Sequence); ok && depth != 0 {
			flattenInto(out, nested, depth-1)
			continue
		}
		out.Append(item)
	}
}

// Uniq returns a new sequence with later deep-equal duplicates removed,
// preserving first-occurrence order. Quadratic, like set membership.
func Uniq(s *Sequence) *Sequence {
	out := NewSequence()
	for _, item := range s.Items() {
		dup := false
		for _, kept := range out.Items() {
			if Equal(kept, item) {
				dup = true
				break
			}
		}
		if !dup {
			out.Append(item)
		}
	}
	return out
}

// Compact returns a new sequence without falsey items: absent, nil, false,
// zero or NaN numbers, and the empty string.
func Compact(s *Sequence) *Sequence {
	out := NewSequence()
	for _, item := range s.Items() {
		if !isFalsey(item) {
			out.Append(item)
		}
	}
	return out
}

func isFalsey(v Value) bool {
	switch val := v.(type) {
	case nil, Nil:
		return true
	case Bool:
		return !bool(val)
	case Number:
		f := float64(val)
		return f == 0 || math.IsNaN(f)
	case String:
		return val == ""
	default:
		return false
	}
}
