package deepval

// Clone returns a fully independent structural copy of v: the result is
// deep-equal to v, and no mutable container is shared between the two.
// Cycles are preserved: a self-referential container clones to a
// self-referential clone, never to infinite recursion.
//
// Primitives are returned as-is. Instants and patterns are reconstructed
// from their identity (instant, (source, flags)). Funcs are returned by
// reference: copying a closure is out of scope for this model.
//
// Clone never fails and never mutates v.
func Clone(v Value) Value {
	return cloneValue(v, make(map[Value]Value))
}

// cloneValue walks v with a per-call table mapping each original container
// to its clone. The clone is registered before its children are visited, so
// a cycle back to an already-seen container resolves to the in-progress
// copy. Each container is cloned exactly once, which also preserves
// aliasing: a container reachable twice in v is reachable twice in the
// clone, through a single copy.
func cloneValue(v Value, seen map[Value]Value) Value {
	if v == nil {
		return nil
	}

	switch val := v.(type) {
	case Nil, Bool, Number, String, *Func:
		return val
	case Instant:
		return NewInstant(val.Time())
	case *Pattern:
		// (source, flags) compiled fresh; the source was already accepted
		// once, so this cannot fail.
		return MustPattern(val.Source(), val.Flags())
	case *Sequence:
		if c, ok := seen[val]; ok {
			return c
		}
		out := NewSequence()
		seen[val] = out
		for _, item := range val.Items() {
			out.Append(cloneValue(item, seen))
		}
		return out
	case *Mapping:
		if c, ok := seen[val]; ok {
			return c
		}
		out := NewMapping()
		seen[val] = out
		for _, k := range val.Keys() {
			entry, _ := val.Get(k)
			out.Set(k, cloneValue(entry, seen))
		}
		return out
	case *Set:
		if c, ok := seen[val]; ok {
			return c
		}
		out := &Set{}
		seen[val] = out
		// Elements were unique in the original; insert directly so cloning
		// a cyclic set does not re-run equality against half-built copies.
		for _, e := range val.Elems() {
			out.elems = append(out.elems, cloneValue(e, seen))
		}
		return out
	case *Assoc:
		if c, ok := seen[val]; ok {
			return c
		}
		out := NewAssoc()
		seen[val] = out
		for _, p := range val.Pairs() {
			out.pairs = append(out.pairs, Pair{
				Key: cloneValue(p.Key, seen),
				Val: cloneValue(p.Val, seen),
			})
		}
		return out
	default:
		// Sealed union; unreachable.
		return val
	}
}
