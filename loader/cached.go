package loader

import (
	"sync"

	"github.com/sbtqa/datajack-sub000/fixture"
	"github.com/sbtqa/datajack-sub000/node"
	"github.com/sbtqa/datajack-sub000/options"
)

type cacheKey struct {
	collection string
	pinned     string
}

// Cached memoises the documents returned by another loader. Failures are
// not cached.
type Cached struct {
	next fixture.Loader

	mu   sync.Mutex
	docs map[cacheKey]*node.Node
}

// NewCached wraps next.
func NewCached(next fixture.Loader) *Cached {
	return &Cached{next: next, docs: make(map[cacheKey]*node.Node)}
}

func (c *Cached) Load(collection string) (*node.Node, error) {
	return c.load(cacheKey{collection: collection}, func() (*node.Node, error) {
		return c.next.Load(collection)
	})
}

// LoadPinned fails with fixture.ErrCollectionNotFound when the wrapped
// loader has no pinned lookup.
func (c *Cached) LoadPinned(collection, id string) (*node.Node, error) {
	pl, ok := c.next.(fixture.PinnedLoader)
	if !ok {
		return nil, fixture.NotFound(collection, errNoPinned)
	}
	return c.load(cacheKey{collection: collection, pinned: id}, func() (*node.Node, error) {
		return pl.LoadPinned(collection, id)
	})
}

func (c *Cached) load(key cacheKey, fetch func() (*node.Node, error)) (*node.Node, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if doc, ok := c.docs[key]; ok {
		return doc, nil
	}

	doc, err := fetch()
	if err != nil {
		return nil, err
	}

	c.docs[key] = doc
	return doc, nil
}

// Invalidate drops every cached document of collection.
func (c *Cached) Invalidate(collection string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.docs {
		if key.collection == collection {
			delete(c.docs, key)
		}
	}
}

func (c *Cached) Collections() ([]string, error) {
	return collections(c.next)
}

func (c *Cached) Descent(collection string) options.DescentEnum {
	return descent(c.next, collection)
}

func collections(l fixture.Loader) ([]string, error) {
	if lister, ok := l.(fixture.Lister); ok {
		return lister.Collections()
	}
	return nil, nil
}

func descent(l fixture.Loader, collection string) options.DescentEnum {
	if r, ok := l.(fixture.DescentReporter); ok {
		return r.Descent(collection)
	}
	return options.DescentUnset
}
