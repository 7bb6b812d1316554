package deepval

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"time"
)

// FromNative bridges plain Go data, the shapes encoding/json and yaml.v3
// produce, into the value model:
//
//	nil                  -> Nil
//	bool                 -> Bool
//	int*/uint*/float*    -> Number
//	string               -> String
//	time.Time            -> Instant
//	*regexp.Regexp       -> Pattern (flagless)
//	[]any                -> Sequence
//	map[string]any       -> Mapping (keys sorted for determinism)
//	map[any]any          -> Mapping when all keys are strings, else Assoc
//	Value                -> passed through unchanged
//
// Cyclic native maps and slices convert to cyclic values: a container
// reached again maps to the value already being built for it. Anything
// outside the catalog is an error.
func FromNative(x any) (Value, error) {
	return fromNative(x, make(map[nativeRef]Value))
}

// nativeRef identifies a native container. Slice identity needs the length
// as well as the pointer: two subslices of one array share a base pointer
// but are distinct containers unless they also share a length.
type nativeRef struct {
	ptr uintptr
	len int
}

func fromNative(x any, seen map[nativeRef]Value) (Value, error) {
	switch v := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case int:
		return Number(v), nil
	case int8:
		return Number(v), nil
	case int16:
		return Number(v), nil
	case int32:
		return Number(v), nil
	case int64:
		return Number(v), nil
	case uint:
		return Number(v), nil
	case uint8:
		return Number(v), nil
	case uint16:
		return Number(v), nil
	case uint32:
		return Number(v), nil
	case uint64:
		return Number(v), nil
	case float32:
		return Number(v), nil
	case float64:
		return Number(v), nil
	case string:
		return String(v), nil
	case time.Time:
		return NewInstant(v), nil
	case *regexp.Regexp:
		return NewPattern(v.String(), "")
	case []any:
		if len(v) == 0 {
			return NewSequence(), nil
		}
		p := nativeRef{reflect.ValueOf(v).Pointer(), len(v)}
		if prior, ok := seen[p]; ok {
			return prior, nil
		}
		out := NewSequence()
		seen[p] = out
		for _, item := range v {
			cv, err := fromNative(item, seen)
			if err != nil {
				return nil, err
			}
			out.Append(cv)
		}
		return out, nil
	case []Value:
		out := NewSequence()
		out.Append(v...)
		return out, nil
	case map[string]any:
		p := nativeRef{ptr: reflect.ValueOf(v).Pointer()}
		if prior, ok := seen[p]; ok {
			return prior, nil
		}
		out := NewMapping()
		seen[p] = out
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			cv, err := fromNative(v[k], seen)
			if err != nil {
				return nil, err
			}
			out.Set(k, cv)
		}
		return out, nil
	case map[any]any:
		p := nativeRef{ptr: reflect.ValueOf(v).Pointer()}
		if prior, ok := seen[p]; ok {
			return prior, nil
		}
		allStrings := true
		for k := range v {
			if _, ok := k.(string); !ok {
				allStrings = false
				break
			}
		}
		if allStrings {
			out := NewMapping()
			seen[p] = out
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k.(string))
			}
			sort.Strings(keys)
			for _, k := range keys {
				cv, err := fromNative(v[k], seen)
				if err != nil {
					return nil, err
				}
				out.Set(k, cv)
			}
			return out, nil
		}
		out := NewAssoc()
		seen[p] = out
		for k, val := range v {
			ck, err := fromNative(k, seen)
			if err != nil {
				return nil, err
			}
			cv, err := fromNative(val, seen)
			if err != nil {
				return nil, err
			}
			out.pairs = append(out.pairs, Pair{Key: ck, Val: cv})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot convert %T into a value", x)
	}
}

// ToNative converts a value back into plain Go data: Nil to nil, Bool to
// bool, Number to float64, String to string, Instant to time.Time, Pattern
// to *regexp.Regexp, Sequence to []any, Mapping to map[string]any, Set to
// []any, and Assoc to a []any of two-element []any pairs.
//
// Funcs and cyclic values have no native representation and are errors.
func ToNative(v Value) (any, error) {
	return toNative(v, make(map[Value]bool))
}

func toNative(v Value, onPath map[Value]bool) (any, error) {
	if v == nil {
		return nil, nil
	}
	if v.Kind().IsContainer() {
		if onPath[v] {
			return nil, fmt.Errorf("cannot convert cyclic %s to native data", v.Kind())
		}
		onPath[v] = true
		defer delete(onPath, v)
	}

	switch val := v.(type) {
	case Nil:
		return nil, nil
	case Bool:
		return bool(val), nil
	case Number:
		return float64(val), nil
	case String:
		return string(val), nil
	case Instant:
		return val.Time(), nil
	case *Pattern:
		expr := val.Source()
		if val.Flags() != "" {
			expr = "(?" + val.Flags() + ")" + val.Source()
		}
		return regexp.Compile(expr)
	case *Func:
		return nil, fmt.Errorf("func %q has no native representation", val.Name())
	case *Sequence:
		out := make([]any, 0, val.Len())
		for _, item := range val.Items() {
			n, err := toNative(item, onPath)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	case *Mapping:
		out := make(map[string]any, val.Len())
		for _, k := range val.Keys() {
			entry, _ := val.Get(k)
			n, err := toNative(entry, onPath)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case *Set:
		out := make([]any, 0, val.Len())
		for _, e := range val.Elems() {
			n, err := toNative(e, onPath)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	case *Assoc:
		out := make([]any, 0, val.Len())
		for _, p := range val.Pairs() {
			k, err := toNative(p.Key, onPath)
			if err != nil {
				return nil, err
			}
			pv, err := toNative(p.Val, onPath)
			if err != nil {
				return nil, err
			}
			out = append(out, []any{k, pv})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot convert %T to native data", v)
	}
}
