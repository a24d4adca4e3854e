package node

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// String returns the canonical serialization of n: compact JSON with object
// keys in document order.
func (n *Node) String() string {
	var b strings.Builder
	n.encode(&b)
	return b.String()
}

// MarshalJSON implements json.Marshaler using the canonical serialization.
func (n *Node) MarshalJSON() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *Node) encode(b *strings.Builder) {
	switch n.Kind() {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(n.flag))
	case KindNumber:
		b.WriteString(n.text)
	case KindString:
		writeQuoted(b, n.text)
	case KindArray:
		b.WriteByte('[')
		for i, v := range n.values {
			if i > 0 {
				b.WriteByte(',')
			}
			v.encode(b)
		}
		b.WriteByte(']')
	case KindObject:
		b.WriteByte('{')
		for i, k := range n.keys {
			if i > 0 {
				b.WriteByte(',')
			}
			writeQuoted(b, k)
			b.WriteByte(':')
			n.values[i].encode(b)
		}
		b.WriteByte('}')
	}
}

const hexDigits = "0123456789abcdef"

func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"' || c == '\\':
				b.WriteByte('\\')
				b.WriteByte(c)
			case c == '\n':
				b.WriteString(`\n`)
			case c == '\r':
				b.WriteString(`\r`)
			case c == '\t':
				b.WriteString(`\t`)
			case c < 0x20:
				b.WriteString(`\u00`)
				b.WriteByte(hexDigits[c>>4])
				b.WriteByte(hexDigits[c&0xf])
			default:
				b.WriteByte(c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteString("\ufffd")
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	b.WriteByte('"')
}

// FromValue builds a tree from plain Go values. Map keys are sorted since Go
// maps carry no order.
func FromValue(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x.Clone(), nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case json.Number:
		return Number(x.String()), nil
	case int:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Number(strconv.FormatUint(uint64(x), 10)), nil
	case uint64:
		return Number(strconv.FormatUint(x, 10)), nil
	case float32:
		return fromFloat(float64(x))
	case float64:
		return fromFloat(x)
	case []any:
		res := Array()
		for i, item := range x {
			y, err := FromValue(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			res.Append(y)
		}
		return res, nil
	case []string:
		res := Array()
		for _, item := range x {
			res.Append(String(item))
		}
		return res, nil
	case map[string]any:
		res := NewObject()
		for _, k := range slices.Sorted(maps.Keys(x)) {
			y, err := FromValue(x[k])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			res.Set(k, y)
		}
		return res, nil
	case map[string]string:
		res := NewObject()
		for _, k := range slices.Sorted(maps.Keys(x)) {
			res.Set(k, String(x[k]))
		}
		return res, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// MustFromValue is like FromValue but panics on error. Intended for tests
// and static fixtures.
func MustFromValue(v any) *Node {
	res, err := FromValue(v)
	if err != nil {
		panic(err)
	}
	return res
}

func fromFloat(f float64) (*Node, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("non finite number %v", f)
	}
	return Float(f), nil
}
