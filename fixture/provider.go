package fixture

import (
	"strconv"

	"github.com/sbtqa/datajack-sub000/internal/fieldpath"
	"github.com/sbtqa/datajack-sub000/node"
	"github.com/sbtqa/datajack-sub000/options"
)

// Provider is an immutable handle on one node of a loaded collection. Every
// navigation returns a new Provider; none of them mutate the document.
type Provider struct {
	loader Loader
	cfg    *settings

	node       *node.Node
	collection string
	// way is the path last requested, used to find a wrapped scalar.
	way string
	// path is the logical path used in messages and as generator cache key.
	path string

	chain     chain
	generator Generator
}

// Open loads collection through loader and returns a Provider on its root.
func Open(loader Loader, collection string, opts ...Option) (*Provider, error) {
	cfg := applyOptions(opts)
	base := &Provider{loader: loader, cfg: cfg, generator: cfg.generator}
	return base.open(collection, "")
}

// FromCollection switches to another collection of the same loader. The
// generator is inherited, a reference chain is not.
func (p *Provider) FromCollection(collection string) (*Provider, error) {
	return p.open(collection, "")
}

func (p *Provider) open(collection, pinned string) (*Provider, error) {
	var (
		doc *node.Node
		err error
	)

	if pinned == "" {
		p.cfg.logger.Debug("loading collection", "collection", collection)
		doc, err = p.loader.Load(collection)
	} else {
		pl, ok := p.loader.(PinnedLoader)
		if !ok {
			return nil, &Error{
				Kind:       ErrCollectionNotFound,
				Collection: collection,
				Detail:     "loader cannot look up pinned document " + strconv.Quote(pinned),
			}
		}
		p.cfg.logger.Debug("loading collection", "collection", collection, "pinned", pinned)
		doc, err = pl.LoadPinned(collection, pinned)
	}

	if err != nil {
		return nil, collectionError(collection, err)
	}
	if doc == nil {
		return nil, &Error{Kind: ErrCollectionNotFound, Collection: collection, Detail: "loader returned no document"}
	}

	return &Provider{
		loader:     p.loader,
		cfg:        p.cfg,
		node:       doc,
		collection: collection,
		path:       collection,
		generator:  p.generator,
	}, nil
}

// ApplyGenerator returns a copy of p whose Value output, and that of every
// Provider derived from it, is passed through g. A nil g removes the
// generator.
func (p *Provider) ApplyGenerator(g Generator) *Provider {
	res := *p
	res.generator = g
	return &res
}

// Node returns the node in scope. It must not be modified.
func (p *Provider) Node() *node.Node { return p.node }

// Collection returns the name of the collection the node was loaded from.
func (p *Provider) Collection() string { return p.collection }

// Path returns the logical path of the node.
func (p *Provider) Path() string { return p.path }

// String returns the canonical serialization of the node in scope.
func (p *Provider) String() string { return p.node.String() }

// ToMap returns the node in scope as plain Go values. It returns nil when the
// node is not an object. References are not followed.
func (p *Provider) ToMap() map[string]any {
	if !p.node.IsObject() {
		return nil
	}
	m, _ := p.node.Interface().(map[string]any)
	return m
}

// KeySet returns the keys of the node in scope in document order. A node
// holding a plain scalar under the value key has no keys, and a reference
// reports the keys of what it points to.
func (p *Provider) KeySet() ([]string, error) {
	if p.IsReference() {
		target, err := p.Reference()
		if err != nil {
			return nil, err
		}
		return target.KeySet()
	}

	if v, ok := p.node.Get(p.cfg.shape.ValueKey); ok && v.IsScalar() {
		return []string{}, nil
	}

	keys := p.node.Keys()
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

// Values returns a Provider for every child of the node in scope: object
// values in key order or array items in order. References are not followed.
func (p *Provider) Values() []*Provider {
	switch {
	case p.node.IsObject():
		keys := p.node.Keys()
		res := make([]*Provider, 0, len(keys))
		for _, k := range keys {
			v, _ := p.node.Get(k)
			res = append(res, p.child(v, k, fieldpath.Join(p.path, k)))
		}
		return res
	case p.node.IsArray():
		base := fieldpath.LastToken(p.way)
		items := p.node.Items()
		res := make([]*Provider, 0, len(items))
		for i, v := range items {
			idx := "[" + strconv.Itoa(i) + "]"
			res = append(res, p.child(v, base+idx, p.path+idx))
		}
		return res
	default:
		return nil
	}
}

// StringValues returns the text of every child of the node in scope.
// Containers are rendered in canonical form. References are not followed
// and no generator is applied.
func (p *Provider) StringValues() []string {
	items := p.node.Items()
	if items == nil {
		return nil
	}
	res := make([]string, len(items))
	for i, v := range items {
		res[i] = v.Text()
	}
	return res
}

// child derives a Provider for v, wrapping scalars under way so Value can
// find them.
func (p *Provider) child(v *node.Node, way, path string) *Provider {
	return &Provider{
		loader:     p.loader,
		cfg:        p.cfg,
		node:       wrap(fieldpath.LastToken(way), v),
		collection: p.collection,
		way:        way,
		path:       path,
		chain:      p.chain,
		generator:  p.generator,
	}
}

func (p *Provider) descent(collection string) options.DescentEnum {
	if p.cfg.descent != options.DescentUnset {
		return p.cfg.descent
	}
	if r, ok := p.loader.(DescentReporter); ok {
		return r.Descent(collection).Or(options.DescentStrict)
	}
	return options.DescentStrict
}

func wrap(key string, v *node.Node) *node.Node {
	if v.IsScalar() {
		return node.NewObject().Set(key, v)
	}
	return v
}
