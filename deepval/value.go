package deepval

import (
	"fmt"
	"regexp"
	"time"
)

// Value is the closed union of every value category the library operates on.
// The union is sealed: only types in this package implement it, so a Kind
// switch over a Value is exhaustive.
//
// A Go nil interface is not a Value. It means "absent" and is distinct from
// the explicit Nil value: Equal(nil, Null()) is false.
type Value interface {
	Kind() Kind
	String() string

	// sealed prevents implementations outside this package.
	sealed()
}

// Nil is the explicit null value.
type Nil struct{}

// Null returns the null value.
func Null() Nil { return Nil{} }

func (Nil) Kind() Kind     { return KindNil }
func (Nil) String() string { return "nil" }
func (Nil) sealed()        {}

// Bool is a boolean value.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (Bool) sealed() {}

// Number is an IEEE-754 double. NaN and signed zero are representable and
// handled with same-value semantics by Equal.
type Number float64

func (Number) Kind() Kind       { return KindNumber }
func (n Number) String() string { return formatNumber(float64(n)) }
func (Number) sealed()          {}

// String is a text value.
type String string

func (String) Kind() Kind       { return KindString }
func (s String) String() string { return fmt.Sprintf("%q", string(s)) }
func (String) sealed()          {}

// Instant is a point in time. Identity is the underlying instant, not the
// wall-clock representation; two instants are equal iff time.Time.Equal.
type Instant struct {
	t time.Time
}

// NewInstant wraps a time.Time as a value.
func NewInstant(t time.Time) Instant { return Instant{t: t} }

func (Instant) Kind() Kind { return KindInstant }

// Time returns the underlying instant.
func (i Instant) Time() time.Time { return i.t }

func (i Instant) String() string {
	return fmt.Sprintf("#inst %q", i.t.Format(time.RFC3339Nano))
}
func (Instant) sealed() {}

// Pattern is a compiled text pattern. Its identity is the (source, flags)
// pair; the compiled machine is an implementation detail and never takes
// part in equality or cloning.
//
// Supported flags are any combination of "i", "m" and "s", applied as the
// corresponding regexp group flags.
type Pattern struct {
	source string
	flags  string
	re     *regexp.Regexp
}

// NewPattern compiles a pattern from a source expression and a flag set.
func NewPattern(source, flags string) (*Pattern, error) {
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
		default:
			return nil, fmt.Errorf("unsupported pattern flag %q in %q", string(f), flags)
		}
	}
	expr := source
	if flags != "" {
		expr = "(?" + flags + ")" + source
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", source, err)
	}
	return &Pattern{source: source, flags: flags, re: re}, nil
}

// MustPattern is NewPattern that panics on a bad pattern. For literals.
func MustPattern(source, flags string) *Pattern {
	p, err := NewPattern(source, flags)
	if err != nil {
		panic(err)
	}
	return p
}

func (*Pattern) Kind() Kind { return KindPattern }

// Source returns the source expression the pattern was compiled from.
func (p *Pattern) Source() string { return p.source }

// Flags returns the flag set the pattern was compiled with.
func (p *Pattern) Flags() string { return p.flags }

// MatchString reports whether the pattern matches s.
func (p *Pattern) MatchString(s string) bool { return p.re.MatchString(s) }

func (p *Pattern) String() string {
	return fmt.Sprintf("#re [%q %q]", p.source, p.flags)
}
func (*Pattern) sealed() {}

// Sequence is an ordered, index-addressable list of values. It is a
// container with reference identity: two *Sequence pointers are the same
// sequence only if they are the same pointer.
type Sequence struct {
	items []Value
}

// NewSequence builds a sequence from the given items.
func NewSequence(items ...Value) *Sequence {
	return &Sequence{items: items}
}

func (*Sequence) Kind() Kind { return KindSequence }

// Len returns the number of items.
func (s *Sequence) Len() int { return len(s.items) }

// At returns the item at index i. It panics on out-of-range indexes, like a
// slice would.
func (s *Sequence) At(i int) Value { return s.items[i] }

// SetAt replaces the item at index i.
func (s *Sequence) SetAt(i int, v Value) { s.items[i] = v }

// Append adds items to the end of the sequence.
func (s *Sequence) Append(items ...Value) { s.items = append(s.items, items...) }

// Items returns the backing slice. Callers that need an independent copy
// should Clone the sequence instead.
func (s *Sequence) Items() []Value { return s.items }

func (s *Sequence) String() string { return Format(s) }
func (*Sequence) sealed()          {}

// Mapping is a plain string-keyed object. Keys preserve insertion order so
// printing and merging are deterministic. It is a container with reference
// identity.
type Mapping struct {
	keys    []string
	entries map[string]Value
}

// NewMapping creates an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{entries: make(map[string]Value)}
}

// MappingOf builds a mapping from alternating key/value pairs, in order.
// It panics on an odd number of arguments or a non-string key. For tests
// and literals.
func MappingOf(pairs ...any) *Mapping {
	if len(pairs)%2 != 0 {
		panic("MappingOf: odd number of arguments")
	}
	m := NewMapping()
	for i := 0; i < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("MappingOf: key %v is not a string", pairs[i]))
		}
		v, ok := pairs[i+1].(Value)
		if !ok {
			panic(fmt.Sprintf("MappingOf: value for %q is not a Value", k))
		}
		m.Set(k, v)
	}
	return m
}

func (*Mapping) Kind() Kind { return KindMapping }

// Len returns the number of entries.
func (m *Mapping) Len() int { return len(m.keys) }

// Get returns the value for key k.
func (m *Mapping) Get(k string) (Value, bool) {
	v, ok := m.entries[k]
	return v, ok
}

// Set inserts or replaces the value for key k. A new key is appended to the
// iteration order; replacing keeps the original position.
func (m *Mapping) Set(k string, v Value) {
	if _, ok := m.entries[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.entries[k] = v
}

// Delete removes key k if present.
func (m *Mapping) Delete(k string) {
	if _, ok := m.entries[k]; !ok {
		return
	}
	delete(m.entries, k)
	for i, key := range m.keys {
		if key == k {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// shallowCopy returns a new mapping with the same entries and key order.
func (m *Mapping) shallowCopy() *Mapping {
	out := NewMapping()
	for _, k := range m.keys {
		out.Set(k, m.entries[k])
	}
	return out
}

func (m *Mapping) String() string { return Format(m) }
func (*Mapping) sealed()          {}

// Set is an unordered collection of unique values, where uniqueness is deep
// equality. Membership checks are linear and set equality is quadratic;
// acceptable for the small collections this model targets.
type Set struct {
	elems []Value
}

// NewSet builds a set from the given elements, dropping duplicates.
func NewSet(elems ...Value) *Set {
	s := &Set{}
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

func (*Set) Kind() Kind { return KindSet }

// Len returns the number of elements.
func (s *Set) Len() int { return len(s.elems) }

// Add inserts v unless a deep-equal element is already present. It reports
// whether the set grew.
func (s *Set) Add(v Value) bool {
	if s.Contains(v) {
		return false
	}
	s.elems = append(s.elems, v)
	return true
}

// Contains reports whether a deep-equal element is present.
func (s *Set) Contains(v Value) bool {
	for _, e := range s.elems {
		if Equal(e, v) {
			return true
		}
	}
	return false
}

// Elems returns the backing slice. Element order is incidental.
func (s *Set) Elems() []Value { return s.elems }

func (s *Set) String() string { return Format(s) }
func (*Set) sealed()          {}

// Pair is a single (key, value) entry of an Assoc.
type Pair struct {
	Key Value
	Val Value
}

// Assoc is an unordered collection of (key, value) pairs where keys may be
// any value, compared by deep equality. Lookups are linear.
type Assoc struct {
	pairs []Pair
}

// NewAssoc creates an empty association collection.
func NewAssoc() *Assoc { return &Assoc{} }

func (*Assoc) Kind() Kind { return KindAssoc }

// Len returns the number of pairs.
func (a *Assoc) Len() int { return len(a.pairs) }

// Put inserts or replaces the value for a deep-equal key.
func (a *Assoc) Put(key, val Value) {
	for i, p := range a.pairs {
		if Equal(p.Key, key) {
			a.pairs[i].Val = val
			return
		}
	}
	a.pairs = append(a.pairs, Pair{Key: key, Val: val})
}

// Get returns the value stored under a deep-equal key.
func (a *Assoc) Get(key Value) (Value, bool) {
	for _, p := range a.pairs {
		if Equal(p.Key, key) {
			return p.Val, true
		}
	}
	return nil, false
}

// Pairs returns the backing slice. Pair order is incidental.
func (a *Assoc) Pairs() []Pair { return a.pairs }

func (a *Assoc) String() string { return Format(a) }
func (*Assoc) sealed()          {}

// Func is a callable value. Funcs compare and copy by reference identity
// only: Clone returns the same *Func, and two Funcs are never structurally
// equal, even when their behavior is identical.
type Func struct {
	name string
	fn   func(args ...Value) (Value, error)
}

// NewFunc wraps a Go function as a value. The name is for display only.
func NewFunc(name string, fn func(args ...Value) (Value, error)) *Func {
	return &Func{name: name, fn: fn}
}

func (*Func) Kind() Kind { return KindFunc }

// Name returns the display name.
func (f *Func) Name() string { return f.name }

// Call invokes the wrapped function.
func (f *Func) Call(args ...Value) (Value, error) {
	if f.fn == nil {
		return nil, fmt.Errorf("func %q has no body", f.name)
	}
	return f.fn(args...)
}

func (f *Func) String() string {
	name := f.name
	if name == "" {
		name = "anonymous"
	}
	return "#fn " + fmt.Sprintf("%q", name)
}
func (*Func) sealed() {}

