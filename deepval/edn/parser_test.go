package edn

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ravenfield/argus-deepval/deepval"
)

func TestParseScalars(t *testing.T) {
	cases := []struct {
		input string
		want  deepval.Value
	}{
		{"nil", deepval.Null()},
		{"true", deepval.Bool(true)},
		{"false", deepval.Bool(false)},
		{"42", deepval.Number(42)},
		{"-3.5", deepval.Number(-3.5)},
		{"1e3", deepval.Number(1000)},
		{"##Inf", deepval.Number(math.Inf(1))},
		{"##-Inf", deepval.Number(math.Inf(-1))},
		{`"hello\nworld"`, deepval.String("hello\nworld")},
		{`""`, deepval.String("")},
	}
	for _, tc := range cases {
		got, err := Parse(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		require.True(t, deepval.Equal(tc.want, got), "input %q: got %v", tc.input, got)
	}
}

func TestParseNaN(t *testing.T) {
	got, err := Parse("##NaN")
	require.NoError(t, err)
	require.True(t, math.IsNaN(float64(got.(deepval.Number))))
}

func TestParseContainers(t *testing.T) {
	got, err := Parse(`{"a" 1, "b" [true nil "x"], "c" #{1 2 2}}`)
	require.NoError(t, err)

	want := deepval.MappingOf(
		"a", deepval.Number(1),
		"b", deepval.NewSequence(deepval.Bool(true), deepval.Null(), deepval.String("x")),
		"c", deepval.NewSet(deepval.Number(1), deepval.Number(2)),
	)
	require.True(t, deepval.Equal(want, got))
}

func TestParseListAsSequence(t *testing.T) {
	got, err := Parse("(1 2 3)")
	require.NoError(t, err)
	require.True(t, deepval.Equal(
		deepval.NewSequence(deepval.Number(1), deepval.Number(2), deepval.Number(3)),
		got,
	))
}

func TestParseTaggedInstant(t *testing.T) {
	got, err := Parse(`#inst "2023-06-01T10:30:00Z"`)
	require.NoError(t, err)
	want := deepval.NewInstant(time.Date(2023, 6, 1, 10, 30, 0, 0, time.UTC))
	require.True(t, deepval.Equal(want, got))
}

func TestParseTaggedPattern(t *testing.T) {
	got, err := Parse(`#re ["a+b" "i"]`)
	require.NoError(t, err)
	p := got.(*deepval.Pattern)
	require.Equal(t, "a+b", p.Source())
	require.Equal(t, "i", p.Flags())

	got, err = Parse(`#re "x[0-9]"`)
	require.NoError(t, err)
	require.Equal(t, "x[0-9]", got.(*deepval.Pattern).Source())
}

func TestParseTaggedAssoc(t *testing.T) {
	got, err := Parse(`#assoc [[1 "one"] [[2] "pair key"]]`)
	require.NoError(t, err)

	a := got.(*deepval.Assoc)
	v, ok := a.Get(deepval.Number(1))
	require.True(t, ok)
	require.True(t, deepval.Equal(deepval.String("one"), v))

	v, ok = a.Get(deepval.NewSequence(deepval.Number(2)))
	require.True(t, ok)
	require.True(t, deepval.Equal(deepval.String("pair key"), v))
}

func TestParseDiscard(t *testing.T) {
	got, err := Parse(`[1 #_ 2 3]`)
	require.NoError(t, err)
	require.True(t, deepval.Equal(
		deepval.NewSequence(deepval.Number(1), deepval.Number(3)),
		got,
	))
}

func TestParseCommentsAndCommas(t *testing.T) {
	got, err := Parse("[1, 2, ; trailing comment\n 3]")
	require.NoError(t, err)
	require.Equal(t, 3, got.(*deepval.Sequence).Len())
}

func TestParseAll(t *testing.T) {
	values, err := ParseAll(`1 "two" [3]`)
	require.NoError(t, err)
	require.Len(t, values, 3)
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"",
		"[1 2",
		`{"a"}`,
		"{1 2}",
		"#nope 1",
		`#inst "not a time"`,
		`#re [1]`,
		"1 2", // trailing input for Parse
		`"unterminated`,
		"@",
	}
	for _, input := range bad {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) should fail", input)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	inputs := []string{
		"nil",
		"[1 2.5 true]",
		`{"a" [nil], "b" #{1}}`,
		`#inst "2020-01-02T03:04:05Z"`,
		`#re ["^x$" "im"]`,
	}
	for _, input := range inputs {
		v, err := Parse(input)
		require.NoError(t, err)
		back, err := Parse(deepval.Format(v))
		require.NoError(t, err, "re-parsing %q", deepval.Format(v))
		require.True(t, deepval.Equal(v, back), "round trip of %q", input)
	}
}
