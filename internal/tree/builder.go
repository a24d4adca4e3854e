package tree

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sbtqa/datajack-sub000/internal/fieldpath"
	"github.com/sbtqa/datajack-sub000/node"
)

// MaxIndex bounds array indexes accepted in keys.
const MaxIndex = 9999

// Builder assembles a document from flat dotted keys such as
// "Common.password" or "users[1].name". Keys are placed in the order they
// were first set.
type Builder struct {
	root *node.Node
}

func New() *Builder {
	return &Builder{root: node.NewObject()}
}

// Node returns the document built so far.
func (b *Builder) Node() *node.Node {
	return b.root
}

// Set stores v under the dotted key, creating intermediate objects and
// arrays. Array gaps are filled with null. Setting a key below an existing
// scalar, or replacing an existing container, fails.
func (b *Builder) Set(key string, v *node.Node) error {
	fp := fieldpath.Parse(key)
	if fp.IsEmpty() {
		return fmt.Errorf("empty key")
	}

	cur := b.root

	for i, seg := range fp.Segments {
		if seg.Key == "" {
			return fmt.Errorf("key %q: empty segment", key)
		}

		last := i == fp.Len()-1
		at := fp.Consumed(i + 1)

		if !seg.Indexed {
			if last {
				if existing, ok := cur.Get(seg.Key); ok && existing.Kind().IsContainer() {
					return fmt.Errorf("key %q conflicts with nested keys under %q", key, at)
				}
				cur.Set(seg.Key, v)
				return nil
			}

			next, err := object(cur, seg.Key, at)
			if err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
			cur = next
			continue
		}

		if seg.Index > MaxIndex {
			return fmt.Errorf("key %q: index %d exceeds %d", key, seg.Index, MaxIndex)
		}

		arr, ok := cur.Get(seg.Key)
		switch {
		case !ok:
			arr = node.Array()
			cur.Set(seg.Key, arr)
		case !arr.IsArray():
			return fmt.Errorf("key %q: %q is not an array", key, fieldpath.Join(fp.Consumed(i), seg.Key))
		}

		for arr.Len() <= seg.Index {
			arr.Append(node.Null())
		}

		item, _ := arr.Index(seg.Index)

		if last {
			if item.Kind().IsContainer() {
				return fmt.Errorf("key %q conflicts with nested keys under %q", key, at)
			}
			arr.SetIndex(seg.Index, v)
			return nil
		}

		switch item.Kind() {
		case node.KindNull:
			item = node.NewObject()
			arr.SetIndex(seg.Index, item)
		case node.KindObject:
		default:
			return fmt.Errorf("key %q: %q holds a scalar", key, at)
		}
		cur = item
	}

	return nil
}

func object(parent *node.Node, key, at string) (*node.Node, error) {
	child, ok := parent.Get(key)
	if !ok {
		child = node.NewObject()
		parent.Set(key, child)
		return child, nil
	}
	if !child.IsObject() {
		return nil, fmt.Errorf("%q holds a %s", at, child.Kind())
	}
	return child, nil
}

// Value converts flat cell or property text into a node. A valid JSON
// object or array is decoded, anything else stays a string.
func Value(text string) *node.Node {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') || !json.Valid([]byte(trimmed)) {
		return node.String(text)
	}

	n, err := node.Decode([]byte(trimmed))
	if err != nil || !n.Kind().IsContainer() {
		return node.String(text)
	}
	return n
}
