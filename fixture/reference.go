package fixture

import (
	"errors"
	"fmt"

	"github.com/sbtqa/datajack-sub000/node"
)

// reference is the payload of a reference node.
type reference struct {
	collection string
	path       string
	pinned     string
}

// parse extracts the target of n. ok is false when n does not have the
// reference shape.
func (s ReferenceShape) parse(n *node.Node) (ref reference, ok bool) {
	if !n.IsObject() {
		return reference{}, false
	}

	payload, ok := n.Get(s.ValueKey)
	if !ok || !payload.IsObject() {
		return reference{}, false
	}

	ref.collection, ok = firstString(payload, s.CollectionKeys)
	if !ok || ref.collection == "" {
		return reference{}, false
	}

	path, ok := payload.Get(s.PathKey)
	if !ok || path.Kind() != node.KindString {
		return reference{}, false
	}
	ref.path = path.Text()

	// Numeric ids are common in spreadsheets.
	for _, k := range s.PinnedKeys {
		if v, found := payload.Get(k); found && (v.Kind() == node.KindString || v.Kind() == node.KindNumber) {
			ref.pinned = v.Text()
			break
		}
	}

	return ref, true
}

func (s ReferenceShape) matches(n *node.Node) bool {
	_, ok := s.parse(n)
	return ok
}

func firstString(n *node.Node, keys []string) (string, bool) {
	for _, k := range keys {
		if v, ok := n.Get(k); ok && v.Kind() == node.KindString {
			return v.Text(), true
		}
	}
	return "", false
}

// chain records the reference hops taken since resolution began. The zero
// value is a fresh chain.
type chain struct {
	origin *node.Node
	hops   int
}

// enter returns the chain extended by the hop through reference n. It fails
// with ErrCyclicReference when n is structurally the origin of the chain and
// with ErrReferenceDepthExceeded when the chain is already max hops long.
func (c chain) enter(n *node.Node, max int) (chain, error) {
	switch {
	case c.origin == nil:
		return chain{origin: n, hops: 1}, nil
	case n.Equal(c.origin):
		return c, ErrCyclicReference
	case c.hops >= max:
		return c, ErrReferenceDepthExceeded
	default:
		return chain{origin: c.origin, hops: c.hops + 1}, nil
	}
}

// IsReference reports whether the node in scope is a reference.
func (p *Provider) IsReference() bool {
	return p.cfg.shape.matches(p.node)
}

// Reference follows the reference in scope: it loads the target collection,
// pinned to a document when the reference names one, and navigates to the
// target path. A target that is itself a reference is returned as is; Value
// and Get keep following it.
func (p *Provider) Reference() (*Provider, error) {
	ref, ok := p.cfg.shape.parse(p.node)
	if !ok {
		return nil, &Error{
			Kind:       ErrNoReference,
			Collection: p.collection,
			Path:       p.path,
			Detail:     "node is not a reference",
		}
	}

	next, err := p.chain.enter(p.node, p.cfg.maxDepth)
	if err != nil {
		detail := "reference chain returns to " + p.node.String()
		if errors.Is(err, ErrReferenceDepthExceeded) {
			detail = fmt.Sprintf("more than %d hops from %s", p.cfg.maxDepth, p.chain.origin.String())
		}
		return nil, &Error{Kind: err, Collection: p.collection, Path: p.path, Detail: detail}
	}

	target, err := p.open(ref.collection, ref.pinned)
	if err != nil {
		return nil, err
	}
	target.chain = next

	p.cfg.logger.Debug("following reference",
		"collection", p.collection,
		"path", p.path,
		"target", ref.collection+"."+ref.path,
		"pinned", ref.pinned,
		"hop", next.hops,
	)

	return target.Get(ref.path)
}
