package deepval

import "math"

// Equal reports structural equivalence of a and b. The relation is
// reflexive and symmetric, uses same-value number semantics (NaN equals
// itself, +0 equals -0), and terminates on cyclic inputs.
//
// A nil interface means "absent" and equals only another nil interface;
// in particular Equal(nil, Null()) is false.
//
// Set and Assoc comparison is unordered and quadratic in the collection
// size. That is a deliberate trade for small collections, not a bug.
func Equal(a, b Value) bool {
	return equalValue(a, b, make(map[Value]Value))
}

// equalValue carries a per-call table pairing containers of a's traversal
// with the container they were matched against in b. Revisiting an
// a-container short-circuits: the structures are equal only if it is still
// paired with the same b-container, which both breaks recursion on cycles
// and requires the two cycles to align.
func equalValue(a, b Value, seen map[Value]Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	// Identity fast path: same primitive value or same container pointer.
	// Number falls through below so NaN still compares equal to itself.
	if a == b {
		return true
	}

	if a.Kind() != b.Kind() {
		return false
	}

	switch av := a.(type) {
	case Nil:
		return true
	case Bool:
		return av == b.(Bool)
	case Number:
		return sameValueNumber(float64(av), float64(b.(Number)))
	case String:
		return av == b.(String)
	case Instant:
		return av.Time().Equal(b.(Instant).Time())
	case *Pattern:
		bv := b.(*Pattern)
		return av.Source() == bv.Source() && av.Flags() == bv.Flags()
	case *Func:
		// Reference identity only; already handled by the fast path.
		return false
	case *Sequence:
		bv := b.(*Sequence)
		if prior, ok := seen[a]; ok {
			return prior == b
		}
		seen[a] = b
		if av.Len() != bv.Len() {
			return false
		}
		for i, item := range av.Items() {
			if !equalValue(item, bv.At(i), seen) {
				return false
			}
		}
		return true
	case *Mapping:
		bv := b.(*Mapping)
		if prior, ok := seen[a]; ok {
			return prior == b
		}
		seen[a] = b
		if av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.Keys() {
			bval, ok := bv.Get(k)
			if !ok {
				return false
			}
			aval, _ := av.Get(k)
			if !equalValue(aval, bval, seen) {
				return false
			}
		}
		return true
	case *Set:
		bv := b.(*Set)
		if prior, ok := seen[a]; ok {
			return prior == b
		}
		seen[a] = b
		if av.Len() != bv.Len() {
			return false
		}
		for _, e := range av.Elems() {
			if !containsEqual(bv.Elems(), e, seen) {
				return false
			}
		}
		return true
	case *Assoc:
		bv := b.(*Assoc)
		if prior, ok := seen[a]; ok {
			return prior == b
		}
		seen[a] = b
		if av.Len() != bv.Len() {
			return false
		}
		for _, p := range av.Pairs() {
			if !containsEqualPair(bv.Pairs(), p, seen) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// containsEqual is the unordered element search for sets. Each candidate is
// compared speculatively: a failed attempt must not leave its container
// pairings in the shared table, or the pairings recorded against a wrong
// candidate would veto the right one. Only a successful match commits.
func containsEqual(elems []Value, want Value, seen map[Value]Value) bool {
	for _, e := range elems {
		scratch := copyPairings(seen)
		if equalValue(want, e, scratch) {
			commitPairings(seen, scratch)
			return true
		}
	}
	return false
}

// containsEqualPair is the unordered pair search for assocs: both key and
// value of some pair must match want, under one speculative table so the
// key and value pairings stay consistent with each other.
func containsEqualPair(pairs []Pair, want Pair, seen map[Value]Value) bool {
	for _, p := range pairs {
		scratch := copyPairings(seen)
		if equalValue(want.Key, p.Key, scratch) && equalValue(want.Val, p.Val, scratch) {
			commitPairings(seen, scratch)
			return true
		}
	}
	return false
}

func copyPairings(seen map[Value]Value) map[Value]Value {
	out := make(map[Value]Value, len(seen))
	for k, v := range seen {
		out[k] = v
	}
	return out
}

func commitPairings(seen, scratch map[Value]Value) {
	for k, v := range scratch {
		seen[k] = v
	}
}

// sameValueNumber implements same-value equality: NaN equals NaN, and +0
// equals -0 (ordinary float comparison already treats the zeros as equal).
func sameValueNumber(x, y float64) bool {
	if math.IsNaN(x) && math.IsNaN(y) {
		return true
	}
	return x == y
}
