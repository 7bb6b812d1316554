package deepval

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEqualReflexive(t *testing.T) {
	cyclic := NewMapping()
	cyclic.Set("self", cyclic)

	values := []Value{
		Null(),
		Bool(true),
		Number(0),
		Number(math.NaN()),
		Number(math.Inf(1)),
		String("abc"),
		NewInstant(time.Date(2021, 3, 14, 1, 59, 26, 0, time.UTC)),
		MustPattern("a+", "i"),
		NewSequence(Number(1), String("two")),
		MappingOf("k", Number(1)),
		NewSet(Number(1), Number(2)),
		NewFunc("f", nil),
		cyclic,
	}
	for _, v := range values {
		if !Equal(v, v) {
			t.Errorf("Equal(%v, %v) should be true", v, v)
		}
	}
}

func TestEqualNaNAndSignedZero(t *testing.T) {
	require.True(t, Equal(Number(math.NaN()), Number(math.NaN())))
	require.True(t, Equal(Number(0), Number(math.Copysign(0, -1))))
	require.False(t, Equal(Number(math.NaN()), Number(0)))
}

func TestEqualNilVersusAbsent(t *testing.T) {
	require.True(t, Equal(nil, nil))
	require.True(t, Equal(Null(), Null()))
	require.False(t, Equal(nil, Null()))
	require.False(t, Equal(Null(), nil))
}

func TestEqualKindMismatch(t *testing.T) {
	require.False(t, Equal(NewSequence(), NewMapping()))
	require.False(t, Equal(Number(1), String("1")))
	require.False(t, Equal(NewSet(), NewAssoc()))
	require.False(t, Equal(NewInstant(time.Time{}), Number(0)))
}

func TestEqualSymmetry(t *testing.T) {
	pairs := [][2]Value{
		{Number(1), Number(1)},
		{Number(1), Number(2)},
		{NewSequence(Number(1)), NewSequence(Number(1))},
		{MappingOf("a", Number(1)), MappingOf("a", Number(2))},
		{NewSet(Number(1), Number(2)), NewSet(Number(2), Number(1))},
		{nil, Null()},
	}
	for _, p := range pairs {
		if Equal(p[0], p[1]) != Equal(p[1], p[0]) {
			t.Errorf("Equal(%v, %v) is not symmetric", p[0], p[1])
		}
	}
}

func TestEqualInstants(t *testing.T) {
	utc := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)
	elsewhere := utc.In(time.FixedZone("X", 3600))

	// Same instant, different wall-clock representation.
	require.True(t, Equal(NewInstant(utc), NewInstant(elsewhere)))
	require.False(t, Equal(NewInstant(utc), NewInstant(utc.Add(time.Nanosecond))))

	// Two zero instants are equal to each other.
	require.True(t, Equal(NewInstant(time.Time{}), NewInstant(time.Time{})))
}

func TestEqualPatterns(t *testing.T) {
	require.True(t, Equal(MustPattern("a+", "i"), MustPattern("a+", "i")))
	require.False(t, Equal(MustPattern("a+", "i"), MustPattern("a+", "")))
	require.False(t, Equal(MustPattern("a+", ""), MustPattern("a*", "")))
}

func TestEqualFuncsByIdentityOnly(t *testing.T) {
	body := func(args ...Value) (Value, error) { return Null(), nil }
	f := NewFunc("f", body)
	g := NewFunc("f", body)

	require.True(t, Equal(f, f))
	require.False(t, Equal(f, g))
}

func TestEqualSequencesOrdered(t *testing.T) {
	require.True(t, Equal(
		NewSequence(Number(1), Number(2)),
		NewSequence(Number(1), Number(2)),
	))
	require.False(t, Equal(
		NewSequence(Number(1), Number(2)),
		NewSequence(Number(2), Number(1)),
	))
	require.False(t, Equal(
		NewSequence(Number(1)),
		NewSequence(Number(1), Number(2)),
	))
}

func TestEqualSetsUnordered(t *testing.T) {
	require.True(t, Equal(
		NewSet(Number(1), Number(2), Number(3)),
		NewSet(Number(3), Number(2), Number(1)),
	))
	require.False(t, Equal(
		NewSet(Number(1), Number(2)),
		NewSet(Number(1), Number(2), Number(3)),
	))
	// Deep elements match structurally, not by identity.
	require.True(t, Equal(
		NewSet(NewSequence(Number(1), Number(2))),
		NewSet(NewSequence(Number(1), Number(2))),
	))
}

func TestEqualSetsContainerElementsReordered(t *testing.T) {
	// Container elements in different insertion orders. A failed candidate
	// comparison must not poison the cycle-pairing table for later
	// candidates.
	require.True(t, Equal(
		NewSet(NewSequence(Number(1)), NewSequence(Number(2))),
		NewSet(NewSequence(Number(2)), NewSequence(Number(1))),
	))
	require.True(t, Equal(
		NewSet(MappingOf("a", Number(1)), MappingOf("b", Number(2)), NewSequence(String("x"))),
		NewSet(NewSequence(String("x")), MappingOf("b", Number(2)), MappingOf("a", Number(1))),
	))
	require.False(t, Equal(
		NewSet(NewSequence(Number(1)), NewSequence(Number(2))),
		NewSet(NewSequence(Number(2)), NewSequence(Number(3))),
	))
}

func TestEqualSetsCyclicElementsReordered(t *testing.T) {
	loop := func(label string) *Sequence {
		s := NewSequence(String(label))
		s.Append(s)
		return s
	}

	a := NewSet(loop("x"), NewSequence(Number(1)))
	b := NewSet(NewSequence(Number(1)), loop("x"))
	require.True(t, Equal(a, b))
	require.True(t, Equal(b, a))

	c := NewSet(NewSequence(Number(1)), loop("y"))
	require.False(t, Equal(a, c))
}

func TestEqualAssocContainerKeysReordered(t *testing.T) {
	a := NewAssoc()
	a.Put(NewSequence(Number(1)), String("one"))
	a.Put(NewSequence(Number(2)), String("two"))

	b := NewAssoc()
	b.Put(NewSequence(Number(2)), String("two"))
	b.Put(NewSequence(Number(1)), String("one"))

	require.True(t, Equal(a, b))
	require.True(t, Equal(b, a))

	c := NewAssoc()
	c.Put(NewSequence(Number(2)), String("two"))
	c.Put(NewSequence(Number(1)), String("uno"))
	require.False(t, Equal(a, c))
}

func TestEqualAssocUnordered(t *testing.T) {
	a := NewAssoc()
	a.Put(NewSequence(Number(1)), String("one"))
	a.Put(Bool(true), Number(2))

	b := NewAssoc()
	b.Put(Bool(true), Number(2))
	b.Put(NewSequence(Number(1)), String("one"))

	require.True(t, Equal(a, b))

	c := NewAssoc()
	c.Put(Bool(true), Number(2))
	c.Put(NewSequence(Number(1)), String("uno"))
	require.False(t, Equal(a, c))
}

func TestEqualMappings(t *testing.T) {
	require.True(t, Equal(
		MappingOf("a", Number(1), "b", Number(2)),
		MappingOf("b", Number(2), "a", Number(1)), // key order irrelevant
	))
	require.False(t, Equal(
		MappingOf("a", Number(1)),
		MappingOf("a", Number(1), "b", Number(2)),
	))
	require.False(t, Equal(
		MappingOf("a", Number(1)),
		MappingOf("b", Number(1)),
	))
}

func TestEqualCyclesAligned(t *testing.T) {
	a := NewMapping()
	a.Set("self", a)
	b := NewMapping()
	b.Set("self", b)

	// Two independent self-loops align.
	require.True(t, Equal(a, b))

	// And a value equals its own clone, cycles included.
	require.True(t, Equal(a, Clone(a)))
}

func TestEqualCyclesMisaligned(t *testing.T) {
	// a -> b -> a  versus  c -> c: same infinite unrolling, but the pairing
	// of containers cannot be made consistent at equal depths both ways.
	a := NewMapping()
	b := NewMapping()
	a.Set("next", b)
	b.Set("next", a)

	c := NewMapping()
	c.Set("next", c)

	// a pairs with c, then b must also pair with c; on the next step a is
	// revisited and is still paired with c, which closes consistently.
	// Mutual recursion against a tighter loop is structurally equal here;
	// the guard exists to terminate and to keep pairings consistent.
	require.True(t, Equal(a, c))

	// Distinct cycle contents do not align.
	d := NewMapping()
	d.Set("next", d)
	d.Set("tag", String("d"))
	require.False(t, Equal(a, d))
}

func TestEqualTerminatesOnCycles(t *testing.T) {
	a := NewSequence()
	a.Append(a)

	done := make(chan bool, 1)
	go func() {
		done <- Equal(a, Clone(a))
	}()
	select {
	case res := <-done:
		require.True(t, res)
	case <-time.After(5 * time.Second):
		t.Fatal("Equal did not terminate on cyclic input")
	}
}
