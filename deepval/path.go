package deepval

import (
	"fmt"
	"strconv"
	"strings"
)

// pathSeg is one step of a parsed access path: a mapping key or a sequence
// index.
type pathSeg struct {
	key   string
	index int
	isIdx bool
}

// parsePath splits an access path like "a.b[2].c" into segments. Bare
// indexes ("[0].x") and trailing indexes ("x[1][2]") are allowed; empty
// keys are not.
func parsePath(path string) ([]pathSeg, error) {
	if path == "" {
		return nil, fmt.Errorf("empty path")
	}
	var segs []pathSeg
	i := 0
	for i < len(path) {
		switch path[i] {
		case '.':
			if i == 0 || i == len(path)-1 || path[i+1] == '.' {
				return nil, fmt.Errorf("invalid path %q: empty segment", path)
			}
			i++
		case '[':
			end := strings.IndexByte(path[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("invalid path %q: unterminated index", path)
			}
			idx, err := strconv.Atoi(path[i+1 : i+end])
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("invalid path %q: bad index %q", path, path[i+1:i+end])
			}
			segs = append(segs, pathSeg{index: idx, isIdx: true})
			i += end + 1
		default:
			j := i
			for j < len(path) && path[j] != '.' && path[j] != '[' {
				j++
			}
			segs = append(segs, pathSeg{key: path[i:j]})
			i = j
		}
	}
	if len(segs) == 0 {
		return nil, fmt.Errorf("empty path")
	}
	return segs, nil
}

// GetPath resolves a dotted access path against v. The second result is
// false when any step of the path is missing, out of range, or applied to
// a value of the wrong kind. A malformed path also reports false.
func GetPath(v Value, path string) (Value, bool) {
	segs, err := parsePath(path)
	if err != nil {
		return nil, false
	}
	cur := v
	for _, seg := range segs {
		if seg.isIdx {
			s, ok := cur.(*Sequence)
			if !ok || seg.index >= s.Len() {
				return nil, false
			}
			cur = s.At(seg.index)
			continue
		}
		m, ok := cur.(*Mapping)
		if !ok {
			return nil, false
		}
		next, ok := m.Get(seg.key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// SetPath returns a new value with val placed at path. Containers along the
// path are shallow-copied; everything off the path is shared with v, so the
// input is never mutated. Missing intermediate steps are created: a key
// segment makes a mapping, an index segment makes (or extends) a sequence,
// padding with nulls up to the index.
//
// SetPath fails if the path is malformed or if an existing value on the
// path has the wrong kind for its segment.
func SetPath(v Value, path string, val Value) (Value, error) {
	segs, err := parsePath(path)
	if err != nil {
		return nil, err
	}
	return setPath(v, segs, val)
}

func setPath(cur Value, segs []pathSeg, val Value) (Value, error) {
	if len(segs) == 0 {
		return val, nil
	}
	seg := segs[0]

	if seg.isIdx {
		var src *Sequence
		switch c := cur.(type) {
		case nil, Nil:
			src = NewSequence()
		case *Sequence:
			src = c
		default:
			return nil, fmt.Errorf("path step [%d]: cannot index into %s", seg.index, cur.Kind())
		}
		out := NewSequence()
		out.Append(src.Items()...)
		for out.Len() <= seg.index {
			out.Append(Null())
		}
		child, err := setPath(out.At(seg.index), segs[1:], val)
		if err != nil {
			return nil, err
		}
		out.SetAt(seg.index, child)
		return out, nil
	}

	var src *Mapping
	switch c := cur.(type) {
	case nil, Nil:
		src = NewMapping()
	case *Mapping:
		src = c
	default:
		return nil, fmt.Errorf("path step %q: cannot descend into %s", seg.key, cur.Kind())
	}
	out := src.shallowCopy()
	existing, _ := out.Get(seg.key)
	child, err := setPath(existing, segs[1:], val)
	if err != nil {
		return nil, err
	}
	out.Set(seg.key, child)
	return out, nil
}
