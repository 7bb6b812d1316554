// Package codec serializes values to a compact tag-byte binary form and
// back. Containers are numbered in encounter order and later occurrences
// are written as back-references, so shared and cyclic structures survive a
// round trip with their shape intact.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ravenfield/argus-deepval/deepval"
)

// Value tags. The wire format is tag byte, then the payload described here.
const (
	tagNil     byte = iota // no payload
	tagFalse               // no payload
	tagTrue                // no payload
	tagNumber              // 8 bytes, big-endian IEEE-754 bits
	tagString              // uvarint length + bytes
	tagInstant             // 8 bytes, big-endian UnixNano
	tagPattern             // source string + flags string
	tagSeq                 // uvarint count + values
	tagMap                 // uvarint count + (key string, value) pairs
	tagSet                 // uvarint count + values
	tagAssoc               // uvarint count + (key value, value) pairs
	tagRef                 // uvarint index of a previously seen container
)

var (
	// ErrFuncValue reports an attempt to encode a callable, which has no
	// byte representation.
	ErrFuncValue = errors.New("func values cannot be encoded")

	// ErrAbsent reports an attempt to encode a nil interface.
	ErrAbsent = errors.New("cannot encode an absent value")
)

// Encode serializes v. Instants are stored as UnixNano, which bounds the
// representable range to roughly years 1678 through 2262.
func Encode(v deepval.Value) ([]byte, error) {
	e := &encoder{seen: make(map[deepval.Value]uint64)}
	if err := e.encode(v); err != nil {
		return nil, err
	}
	return e.buf, nil
}

type encoder struct {
	buf  []byte
	seen map[deepval.Value]uint64
	next uint64
}

func (e *encoder) encode(v deepval.Value) error {
	if v == nil {
		return ErrAbsent
	}

	switch val := v.(type) {
	case deepval.Nil:
		e.buf = append(e.buf, tagNil)
	case deepval.Bool:
		if val {
			e.buf = append(e.buf, tagTrue)
		} else {
			e.buf = append(e.buf, tagFalse)
		}
	case deepval.Number:
		e.buf = append(e.buf, tagNumber)
		e.buf = binary.BigEndian.AppendUint64(e.buf, math.Float64bits(float64(val)))
	case deepval.String:
		e.buf = append(e.buf, tagString)
		e.appendString(string(val))
	case deepval.Instant:
		e.buf = append(e.buf, tagInstant)
		e.buf = binary.BigEndian.AppendUint64(e.buf, uint64(val.Time().UnixNano()))
	case *deepval.Pattern:
		e.buf = append(e.buf, tagPattern)
		e.appendString(val.Source())
		e.appendString(val.Flags())
	case *deepval.Func:
		return fmt.Errorf("%w: %q", ErrFuncValue, val.Name())
	case *deepval.Sequence:
		if e.ref(v) {
			return nil
		}
		e.buf = append(e.buf, tagSeq)
		e.buf = binary.AppendUvarint(e.buf, uint64(val.Len()))
		for _, item := range val.Items() {
			if err := e.encode(item); err != nil {
				return err
			}
		}
	case *deepval.Mapping:
		if e.ref(v) {
			return nil
		}
		e.buf = append(e.buf, tagMap)
		e.buf = binary.AppendUvarint(e.buf, uint64(val.Len()))
		for _, k := range val.Keys() {
			e.appendString(k)
			entry, _ := val.Get(k)
			if err := e.encode(entry); err != nil {
				return err
			}
		}
	case *deepval.Set:
		if e.ref(v) {
			return nil
		}
		e.buf = append(e.buf, tagSet)
		e.buf = binary.AppendUvarint(e.buf, uint64(val.Len()))
		for _, elem := range val.Elems() {
			if err := e.encode(elem); err != nil {
				return err
			}
		}
	case *deepval.Assoc:
		if e.ref(v) {
			return nil
		}
		e.buf = append(e.buf, tagAssoc)
		e.buf = binary.AppendUvarint(e.buf, uint64(val.Len()))
		for _, p := range val.Pairs() {
			if err := e.encode(p.Key); err != nil {
				return err
			}
			if err := e.encode(p.Val); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("cannot encode value of kind %s", v.Kind())
	}
	return nil
}

// ref emits a back-reference if v was already encoded; otherwise it assigns
// v the next container index. Indexes are assigned in encounter order, the
// same order the decoder reconstructs them in.
func (e *encoder) ref(v deepval.Value) bool {
	if idx, ok := e.seen[v]; ok {
		e.buf = append(e.buf, tagRef)
		e.buf = binary.AppendUvarint(e.buf, idx)
		return true
	}
	e.seen[v] = e.next
	e.next++
	return false
}

func (e *encoder) appendString(s string) {
	e.buf = binary.AppendUvarint(e.buf, uint64(len(s)))
	e.buf = append(e.buf, s...)
}

// Decode reconstructs a value from Encode's output.
func Decode(data []byte) (deepval.Value, error) {
	d := &decoder{data: data}
	v, err := d.decode()
	if err != nil {
		return nil, err
	}
	if d.pos != len(d.data) {
		return nil, fmt.Errorf("trailing garbage after value: %d bytes", len(d.data)-d.pos)
	}
	return v, nil
}

type decoder struct {
	data       []byte
	pos        int
	containers []deepval.Value
}

func (d *decoder) decode() (deepval.Value, error) {
	tag, err := d.readByte()
	if err != nil {
		return nil, err
	}

	switch tag {
	case tagNil:
		return deepval.Null(), nil
	case tagFalse:
		return deepval.Bool(false), nil
	case tagTrue:
		return deepval.Bool(true), nil
	case tagNumber:
		bits, err := d.readUint64()
		if err != nil {
			return nil, err
		}
		return deepval.Number(math.Float64frombits(bits)), nil
	case tagString:
		s, err := d.readString()
		if err != nil {
			return nil, err
		}
		return deepval.String(s), nil
	case tagInstant:
		nanos, err := d.readUint64()
		if err != nil {
			return nil, err
		}
		return deepval.NewInstant(time.Unix(0, int64(nanos)).UTC()), nil
	case tagPattern:
		source, err := d.readString()
		if err != nil {
			return nil, err
		}
		flags, err := d.readString()
		if err != nil {
			return nil, err
		}
		return deepval.NewPattern(source, flags)
	case tagSeq:
		n, err := d.readUvarint()
		if err != nil {
			return nil, err
		}
		out := deepval.NewSequence()
		// Register before children so back-references into this container
		// resolve while it is still being filled.
		d.containers = append(d.containers, out)
		for i := uint64(0); i < n; i++ {
			item, err := d.decode()
			if err != nil {
				return nil, err
			}
			out.Append(item)
		}
		return out, nil
	case tagMap:
		n, err := d.readUvarint()
		if err != nil {
			return nil, err
		}
		out := deepval.NewMapping()
		d.containers = append(d.containers, out)
		for i := uint64(0); i < n; i++ {
			k, err := d.readString()
			if err != nil {
				return nil, err
			}
			entry, err := d.decode()
			if err != nil {
				return nil, err
			}
			out.Set(k, entry)
		}
		return out, nil
	case tagSet:
		n, err := d.readUvarint()
		if err != nil {
			return nil, err
		}
		out := deepval.NewSet()
		d.containers = append(d.containers, out)
		for i := uint64(0); i < n; i++ {
			elem, err := d.decode()
			if err != nil {
				return nil, err
			}
			out.Add(elem)
		}
		return out, nil
	case tagAssoc:
		n, err := d.readUvarint()
		if err != nil {
			return nil, err
		}
		out := deepval.NewAssoc()
		d.containers = append(d.containers, out)
		for i := uint64(0); i < n; i++ {
			key, err := d.decode()
			if err != nil {
				return nil, err
			}
			val, err := d.decode()
			if err != nil {
				return nil, err
			}
			out.Put(key, val)
		}
		return out, nil
	case tagRef:
		idx, err := d.readUvarint()
		if err != nil {
			return nil, err
		}
		if idx >= uint64(len(d.containers)) {
			return nil, fmt.Errorf("back-reference %d out of range", idx)
		}
		return d.containers[idx], nil
	default:
		return nil, fmt.Errorf("unknown value tag 0x%02x at offset %d", tag, d.pos-1)
	}
}

func (d *decoder) readByte() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, fmt.Errorf("unexpected end of data at offset %d", d.pos)
	}
	b := d.data[d.pos]
	d.pos++
	return b, nil
}

func (d *decoder) readUint64() (uint64, error) {
	if d.pos+8 > len(d.data) {
		return 0, fmt.Errorf("unexpected end of data at offset %d", d.pos)
	}
	v := binary.BigEndian.Uint64(d.data[d.pos:])
	d.pos += 8
	return v, nil
}

func (d *decoder) readUvarint() (uint64, error) {
	v, n := binary.Uvarint(d.data[d.pos:])
	if n <= 0 {
		return 0, fmt.Errorf("bad varint at offset %d", d.pos)
	}
	d.pos += n
	return v, nil
}

func (d *decoder) readString() (string, error) {
	n, err := d.readUvarint()
	if err != nil {
		return "", err
	}
	if uint64(d.pos)+n > uint64(len(d.data)) {
		return "", fmt.Errorf("string length %d overruns data at offset %d", n, d.pos)
	}
	s := string(d.data[d.pos : d.pos+int(n)])
	d.pos += int(n)
	return s, nil
}
