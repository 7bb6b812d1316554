package deepval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPickAndOmit(t *testing.T) {
	m := MappingOf("a", Number(1), "b", Number(2), "c", Number(3))

	picked := Pick(m, "a", "c", "missing")
	require.True(t, Equal(picked, MappingOf("a", Number(1), "c", Number(3))))

	omitted := Omit(m, "b")
	require.True(t, Equal(omitted, MappingOf("a", Number(1), "c", Number(3))))

	// Inputs untouched.
	require.Equal(t, 3, m.Len())
}

func TestChunk(t *testing.T) {
	s := NewSequence(Number(1), Number(2), Number(3), Number(4), Number(5))

	got := Chunk(s, 2)
	require.Equal(t, 3, got.Len())
	require.True(t, Equal(got.At(0), NewSequence(Number(1), Number(2))))
	require.True(t, Equal(got.At(2), NewSequence(Number(5))))

	require.Equal(t, 0, Chunk(NewSequence(), 2).Len())
	require.Equal(t, 1, Chunk(s, 0).Len()) // non-positive size: one chunk
}

func TestFlatten(t *testing.T) {
	s := NewSequence(
		Number(1),
		NewSequence(Number(2), NewSequence(Number(3))),
	)

	one := Flatten(s, 1)
	require.True(t, Equal(one, NewSequence(Number(1), Number(2), NewSequence(Number(3)))))

	all := Flatten(s, -1)
	require.True(t, Equal(all, NewSequence(Number(1), Number(2), Number(3))))

	zero := Flatten(s, 0)
	require.True(t, Equal(zero, s))
}

func TestUniq(t *testing.T) {
	s := NewSequence(
		Number(1),
		NewSequence(Number(2)),
		Number(1),
		NewSequence(Number(2)), // deep duplicate, distinct identity
		String("x"),
	)
	got := Uniq(s)
	require.True(t, Equal(got, NewSequence(Number(1), NewSequence(Number(2)), String("x"))))
}

func TestCompact(t *testing.T) {
	s := NewSequence(
		Number(0),
		Number(1),
		Number(math.NaN()),
		String(""),
		String("keep"),
		Bool(false),
		Bool(true),
		Null(),
		nil,
		NewSequence(), // empty containers are not falsey
	)
	got := Compact(s)
	require.True(t, Equal(got, NewSequence(Number(1), String("keep"), Bool(true), NewSequence())))
}
