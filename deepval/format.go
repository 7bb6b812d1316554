package deepval

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Format renders a value as a literal in the syntax the edn package reads:
// `nil`, booleans, numbers, quoted strings, `[...]` sequences, `{...}`
// mappings, `#{...}` sets, `#assoc [[k v] ...]`, `#inst "..."`,
// `#re ["src" "flags"]`. A container reached for the second time on the
// current path prints as `#cycle`, so Format terminates on any input.
//
// Cyclic and callable values do not round-trip: `#cycle` and `#fn "name"`
// are display forms the reader rejects.
func Format(v Value) string {
	var b strings.Builder
	writeValue(&b, v, make(map[Value]bool))
	return b.String()
}

func writeValue(b *strings.Builder, v Value, onPath map[Value]bool) {
	if v == nil {
		b.WriteString("nil")
		return
	}
	if v.Kind().IsContainer() {
		if onPath[v] {
			b.WriteString("#cycle")
			return
		}
		onPath[v] = true
		defer delete(onPath, v)
	}

	switch val := v.(type) {
	case Nil, Bool, Number, String, Instant, *Pattern, *Func:
		b.WriteString(val.String())
	case *Sequence:
		b.WriteByte('[')
		for i, item := range val.Items() {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeValue(b, item, onPath)
		}
		b.WriteByte(']')
	case *Mapping:
		b.WriteByte('{')
		for i, k := range val.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(k))
			b.WriteByte(' ')
			entry, _ := val.Get(k)
			writeValue(b, entry, onPath)
		}
		b.WriteByte('}')
	case *Set:
		b.WriteString("#{")
		for i, e := range val.Elems() {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeValue(b, e, onPath)
		}
		b.WriteByte('}')
	case *Assoc:
		b.WriteString("#assoc [")
		for i, p := range val.Pairs() {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte('[')
			writeValue(b, p.Key, onPath)
			b.WriteByte(' ')
			writeValue(b, p.Val, onPath)
			b.WriteByte(']')
		}
		b.WriteByte(']')
	default:
		b.WriteString(fmt.Sprintf("#unknown %T", v))
	}
}

// formatNumber renders a float the way the reader accepts it back. Integral
// values in the safe range print without a fractional part; non-finite
// values use the ## literals.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "##NaN"
	case math.IsInf(f, 1):
		return "##Inf"
	case math.IsInf(f, -1):
		return "##-Inf"
	case f == math.Trunc(f) && math.Abs(f) < 1e15:
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
