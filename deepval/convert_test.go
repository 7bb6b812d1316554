package deepval

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFromNativeScalars(t *testing.T) {
	cases := []struct {
		in   any
		want Value
	}{
		{nil, Null()},
		{true, Bool(true)},
		{42, Number(42)},
		{int64(7), Number(7)},
		{uint8(3), Number(3)},
		{3.25, Number(3.25)},
		{"s", String("s")},
	}
	for _, tc := range cases {
		got, err := FromNative(tc.in)
		require.NoError(t, err)
		require.True(t, Equal(tc.want, got), "FromNative(%v)", tc.in)
	}
}

func TestFromNativeTimeAndRegexp(t *testing.T) {
	now := time.Now()
	got, err := FromNative(now)
	require.NoError(t, err)
	require.True(t, Equal(NewInstant(now), got))

	got, err = FromNative(regexp.MustCompile("a+"))
	require.NoError(t, err)
	require.Equal(t, KindPattern, got.Kind())
	require.Equal(t, "a+", got.(*Pattern).Source())
}

func TestFromNativeContainers(t *testing.T) {
	got, err := FromNative(map[string]any{
		"list": []any{1, "two", nil},
		"m":    map[string]any{"x": true},
	})
	require.NoError(t, err)

	want := MappingOf(
		"list", NewSequence(Number(1), String("two"), Null()),
		"m", MappingOf("x", Bool(true)),
	)
	require.True(t, Equal(want, got))
}

func TestFromNativeNonStringKeys(t *testing.T) {
	got, err := FromNative(map[any]any{1: "one", "k": "v"})
	require.NoError(t, err)
	require.Equal(t, KindAssoc, got.Kind())

	v, ok := got.(*Assoc).Get(Number(1))
	require.True(t, ok)
	require.True(t, Equal(String("one"), v))
}

func TestFromNativeCycle(t *testing.T) {
	m := map[string]any{}
	m["self"] = m

	got, err := FromNative(m)
	require.NoError(t, err)

	self, ok := got.(*Mapping).Get("self")
	require.True(t, ok)
	if self != got {
		t.Fatal("native cycle should convert to a value cycle")
	}
}

func TestFromNativeSubslicesAreDistinct(t *testing.T) {
	// Two views of the same backing array share a base pointer but are
	// different containers; identity tracking must not conflate them.
	base := []any{1.0, 2.0}
	got, err := FromNative([]any{base[0:1], base[0:2]})
	require.NoError(t, err)

	want := NewSequence(
		NewSequence(Number(1)),
		NewSequence(Number(1), Number(2)),
	)
	require.True(t, Equal(want, got))
}

func TestFromNativeSharedSliceConvertsOnce(t *testing.T) {
	shared := []any{1.0}
	got, err := FromNative([]any{shared, shared})
	require.NoError(t, err)

	seq := got.(*Sequence)
	if seq.At(0) != seq.At(1) {
		t.Fatal("the same native slice should convert to a single shared sequence")
	}
}

func TestFromNativeUnsupported(t *testing.T) {
	_, err := FromNative(struct{ X int }{1})
	require.Error(t, err)
	_, err = FromNative(make(chan int))
	require.Error(t, err)
}

func TestToNativeRoundTrip(t *testing.T) {
	in := map[string]any{
		"n":    1.5,
		"s":    "text",
		"b":    true,
		"null": nil,
		"list": []any{1.0, 2.0},
		"m":    map[string]any{"k": "v"},
	}
	v, err := FromNative(in)
	require.NoError(t, err)

	out, err := ToNative(v)
	require.NoError(t, err)

	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestToNativeSetAndAssoc(t *testing.T) {
	set := NewSet(Number(1), Number(2))
	out, err := ToNative(set)
	require.NoError(t, err)
	require.ElementsMatch(t, []any{1.0, 2.0}, out)

	assoc := NewAssoc()
	assoc.Put(Number(1), String("one"))
	out, err = ToNative(assoc)
	require.NoError(t, err)
	require.Equal(t, []any{[]any{1.0, "one"}}, out)
}

func TestToNativeRejectsCyclesAndFuncs(t *testing.T) {
	m := NewMapping()
	m.Set("self", m)
	_, err := ToNative(m)
	require.Error(t, err)

	_, err = ToNative(NewFunc("f", nil))
	require.Error(t, err)
}
