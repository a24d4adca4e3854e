package fixture

import (
	"fmt"

	"github.com/sbtqa/datajack-sub000/internal/fieldpath"
	"github.com/sbtqa/datajack-sub000/internal/match"
	"github.com/sbtqa/datajack-sub000/node"
	"github.com/sbtqa/datajack-sub000/options"
)

const maxSuggestions = 3

// cursor is the position of a walk in progress. It moves to another
// collection when the walk crosses a reference.
type cursor struct {
	node       *node.Node
	collection string
	chain      chain
}

// Get navigates path relative to the node in scope. The empty path returns p
// itself. A reference met before a segment is consumed is followed first, so
// a dotted path may cross collections. A scalar reached by the last segment
// is returned wrapped as {segment: scalar}.
func (p *Provider) Get(path string) (*Provider, error) {
	fp := fieldpath.Parse(path)
	if fp.IsEmpty() {
		return p, nil
	}

	cur := cursor{node: p.node, collection: p.collection, chain: p.chain}

	for i, seg := range fp.Segments {
		for p.cfg.shape.matches(cur.node) {
			target, err := p.at(cur).Reference()
			if err != nil {
				return nil, err
			}
			cur = cursor{node: target.node, collection: target.collection, chain: target.chain}
		}

		if !cur.node.Kind().IsContainer() {
			if i > 0 && p.descent(cur.collection) == options.DescentLenient {
				return p.reached(fp, i, cur), nil
			}
			return nil, &Error{
				Kind:       ErrFieldNotFound,
				Collection: cur.collection,
				Key:        seg.String(),
				Path:       p.errorPath(fp, i),
				Detail:     "not a navigable object, cannot descend further",
			}
		}

		next, err := p.step(cur, fp, i)
		if err != nil {
			return nil, err
		}
		cur.node = next
	}

	return p.reached(fp, fp.Len(), cur), nil
}

// step consumes segment i of fp against the cursor node.
func (p *Provider) step(cur cursor, fp fieldpath.Path, i int) (*node.Node, error) {
	seg := fp.Segments[i]

	if !cur.node.IsObject() {
		return nil, &Error{
			Kind:       ErrFieldNotFound,
			Collection: cur.collection,
			Key:        seg.Key,
			Path:       p.errorPath(fp, i),
			Detail:     fmt.Sprintf("%s has no fields", cur.node.Kind()),
		}
	}

	v, ok := cur.node.Get(seg.Key)
	if !ok {
		detail := "no such field"
		if fp.Len() > 1 {
			detail = "field on path " + fp.String() + " not found"
		}
		return nil, &Error{
			Kind:        ErrFieldNotFound,
			Collection:  cur.collection,
			Key:         seg.Key,
			Path:        p.errorPath(fp, i),
			Detail:      detail,
			Suggestions: match.Suggest(seg.Key, cur.node.Keys(), maxSuggestions, match.DefaultThreshold),
		}
	}

	if !seg.Indexed {
		return v, nil
	}

	if !v.IsArray() {
		return nil, &Error{
			Kind:       ErrNotAnArray,
			Collection: cur.collection,
			Key:        seg.Key,
			Path:       p.errorPath(fp, i),
			Detail:     fmt.Sprintf("found %s", v.Kind()),
		}
	}

	item, ok := v.Index(seg.Index)
	if !ok {
		return nil, &Error{
			Kind:       ErrFieldNotFound,
			Collection: cur.collection,
			Key:        seg.String(),
			Path:       p.errorPath(fp, i),
			Detail:     fmt.Sprintf("index out of range, array has %d items", v.Len()),
		}
	}

	return item, nil
}

// reached builds the Provider for a walk that consumed n segments of fp.
// A single segment extends the logical path of p, a dotted path is rooted
// at the collection of p.
func (p *Provider) reached(fp fieldpath.Path, n int, cur cursor) *Provider {
	way := fp.String()
	if n < fp.Len() {
		way = fp.Consumed(n)
	}

	path := p.collection + "." + way
	if fp.Len() == 1 {
		path = fieldpath.Join(p.path, way)
	}

	return &Provider{
		loader:     p.loader,
		cfg:        p.cfg,
		node:       wrap(fieldpath.LastToken(way), cur.node),
		collection: cur.collection,
		way:        way,
		path:       path,
		chain:      cur.chain,
		generator:  p.generator,
	}
}

// at returns a Provider positioned on the cursor, used to follow a reference
// met in the middle of a walk.
func (p *Provider) at(cur cursor) *Provider {
	return &Provider{
		loader:     p.loader,
		cfg:        p.cfg,
		node:       cur.node,
		collection: cur.collection,
		way:        p.way,
		path:       p.path,
		chain:      cur.chain,
		generator:  p.generator,
	}
}

func (p *Provider) errorPath(fp fieldpath.Path, i int) string {
	if fp.Len() == 1 {
		return fieldpath.Join(p.path, fp.Segments[0].String())
	}
	return fp.Consumed(i + 1)
}
