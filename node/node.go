package node

import (
	"slices"
	"strconv"

	"github.com/sbtqa/datajack-sub000/utils"
)

// Node is one element of a parsed collection: an ordered object, an ordered
// array or a scalar leaf.
//
// Loaders build trees with the constructors and Set/Append; once a tree is
// handed to a fixture.Provider it is treated as read-only.
type Node struct {
	kind   Kind
	keys   []string
	values []*Node // object values parallel to keys, or array items
	text   string  // string contents or number source text
	flag   bool
}

// KeyVal is one object field, used by ObjectOf.
type KeyVal struct {
	Key string
	Val *Node
}

func Null() *Node {
	return &Node{kind: KindNull}
}

func Bool(v bool) *Node {
	return &Node{kind: KindBool, flag: v}
}

func String(v string) *Node {
	return &Node{kind: KindString, text: v}
}

// Number creates a number node keeping text as its source representation.
func Number(text string) *Node {
	return &Node{kind: KindNumber, text: text}
}

func Int(v int64) *Node {
	return Number(strconv.FormatInt(v, 10))
}

func Float(v float64) *Node {
	return Number(strconv.FormatFloat(v, 'g', -1, 64))
}

// Array creates an array holding items in order.
func Array(items ...*Node) *Node {
	res := &Node{kind: KindArray, values: make([]*Node, 0, len(items))}
	for _, item := range items {
		res.values = append(res.values, orNull(item))
	}
	return res
}

// NewObject creates an empty object.
func NewObject() *Node {
	return &Node{kind: KindObject}
}

// ObjectOf creates an object from fields in order. Later duplicates replace
// earlier values in place.
func ObjectOf(kvs ...KeyVal) *Node {
	res := NewObject()
	for _, kv := range kvs {
		res.Set(kv.Key, kv.Val)
	}
	return res
}

// Set stores v under key, replacing an existing value in place so the key
// keeps its original position. Set on a non-object node is a no-op.
func (n *Node) Set(key string, v *Node) *Node {
	if n.kind != KindObject {
		return n
	}
	if i := slices.Index(n.keys, key); i >= 0 {
		n.values[i] = orNull(v)
		return n
	}
	n.keys = append(n.keys, key)
	n.values = append(n.values, orNull(v))
	return n
}

// SetIndex replaces the i-th item of an array. It is a no-op on non-arrays
// and out of range indexes.
func (n *Node) SetIndex(i int, v *Node) *Node {
	if n.kind != KindArray || !utils.IsIndex(i, len(n.values)) {
		return n
	}
	n.values[i] = orNull(v)
	return n
}

// Append adds v to the end of an array. Append on a non-array node is a no-op.
func (n *Node) Append(v *Node) *Node {
	if n.kind != KindArray {
		return n
	}
	n.values = append(n.values, orNull(v))
	return n
}

func (n *Node) Kind() Kind {
	if n == nil {
		return KindNull
	}
	return n.kind
}

func (n *Node) IsScalar() bool { return n.Kind().IsScalar() }
func (n *Node) IsObject() bool { return n.Kind() == KindObject }
func (n *Node) IsArray() bool  { return n.Kind() == KindArray }

// Len returns the number of fields of an object or items of an array.
func (n *Node) Len() int {
	if n == nil || !n.kind.IsContainer() {
		return 0
	}
	return len(n.values)
}

// Keys returns the object keys in document order.
func (n *Node) Keys() []string {
	if n.Kind() != KindObject {
		return nil
	}
	return slices.Clone(n.keys)
}

// Get returns the value stored under key of an object.
func (n *Node) Get(key string) (*Node, bool) {
	if n.Kind() != KindObject {
		return nil, false
	}
	i := slices.Index(n.keys, key)
	if i < 0 {
		return nil, false
	}
	return n.values[i], true
}

func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Index returns the i-th item of an array.
func (n *Node) Index(i int) (*Node, bool) {
	if n.Kind() != KindArray || !utils.IsIndex(i, len(n.values)) {
		return nil, false
	}
	return n.values[i], true
}

// Items returns the array items, or the object values in key order.
func (n *Node) Items() []*Node {
	if n == nil || !n.kind.IsContainer() {
		return nil
	}
	return slices.Clone(n.values)
}

// Text returns the textual form of a scalar: strings verbatim, numbers as
// their source text, booleans as true/false and null as "null". Containers
// return their canonical serialization.
func (n *Node) Text() string {
	switch n.Kind() {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(n.flag)
	case KindNumber, KindString:
		return n.text
	default:
		return n.String()
	}
}

// Clone returns a deep copy.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	res := &Node{kind: n.kind, text: n.text, flag: n.flag, keys: slices.Clone(n.keys)}
	if n.values != nil {
		res.values = make([]*Node, len(n.values))
		for i, v := range n.values {
			res.values[i] = v.Clone()
		}
	}
	return res
}

// Equal reports structural equality: same kind, same keys in the same order
// and equal values.
func (n *Node) Equal(o *Node) bool {
	if n == o {
		return true
	}
	if n.Kind() != o.Kind() {
		return false
	}
	switch n.Kind() {
	case KindNull:
		return true
	case KindBool:
		return n.flag == o.flag
	case KindNumber, KindString:
		return n.text == o.text
	case KindObject:
		if !slices.Equal(n.keys, o.keys) {
			return false
		}
	}
	if len(n.values) != len(o.values) {
		return false
	}
	for i := range n.values {
		if !n.values[i].Equal(o.values[i]) {
			return false
		}
	}
	return true
}

// Interface converts the tree into plain Go values: map[string]any,
// []any, string, bool, nil, and int64 or float64 for numbers (falling back
// to the source text when neither parses).
func (n *Node) Interface() any {
	switch n.Kind() {
	case KindNull:
		return nil
	case KindBool:
		return n.flag
	case KindString:
		return n.text
	case KindNumber:
		if i, err := strconv.ParseInt(n.text, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(n.text, 64); err == nil {
			return f
		}
		return n.text
	case KindArray:
		res := make([]any, len(n.values))
		for i, v := range n.values {
			res[i] = v.Interface()
		}
		return res
	default:
		res := make(map[string]any, len(n.keys))
		for i, k := range n.keys {
			res[k] = n.values[i].Interface()
		}
		return res
	}
}

// Walk visits n and its descendants depth first. path is the dotted path of
// each node relative to n, with array items rendered as key[i]. Returning
// false from f skips the children of the visited node.
func (n *Node) Walk(f func(path string, y *Node) bool) {
	n.walk("", f)
}

func (n *Node) walk(path string, f func(string, *Node) bool) {
	if !f(path, n) {
		return
	}
	switch n.Kind() {
	case KindObject:
		for i, k := range n.keys {
			child := k
			if path != "" {
				child = path + "." + k
			}
			n.values[i].walk(child, f)
		}
	case KindArray:
		for i, v := range n.values {
			v.walk(path+"["+strconv.Itoa(i)+"]", f)
		}
	}
}

func orNull(n *Node) *Node {
	if n == nil {
		return Null()
	}
	return n
}
