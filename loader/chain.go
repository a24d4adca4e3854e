package loader

import (
	"errors"
	"slices"
	"sync"

	"github.com/sbtqa/datajack-sub000/fixture"
	"github.com/sbtqa/datajack-sub000/node"
	"github.com/sbtqa/datajack-sub000/options"
)

var errNoPinned = errors.New("loader cannot look up pinned documents")

// Chain asks its loaders in order and serves a collection from the first
// one holding it. Errors other than a missing collection stop the search.
type Chain struct {
	loaders []fixture.Loader

	mu     sync.Mutex
	routes map[string]fixture.Loader
}

func NewChain(loaders ...fixture.Loader) *Chain {
	return &Chain{loaders: loaders, routes: make(map[string]fixture.Loader)}
}

func (c *Chain) Load(collection string) (*node.Node, error) {
	for _, l := range c.loaders {
		doc, err := l.Load(collection)
		if errors.Is(err, fixture.ErrCollectionNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.routes[collection] = l
		c.mu.Unlock()

		return doc, nil
	}

	return nil, fixture.NotFound(collection, nil)
}

func (c *Chain) LoadPinned(collection, id string) (*node.Node, error) {
	searched := false

	for _, l := range c.loaders {
		pl, ok := l.(fixture.PinnedLoader)
		if !ok {
			continue
		}
		searched = true

		doc, err := pl.LoadPinned(collection, id)
		if errors.Is(err, fixture.ErrCollectionNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return doc, nil
	}

	if !searched {
		return nil, fixture.NotFound(collection, errNoPinned)
	}
	return nil, fixture.NotFound(collection, nil)
}

// Collections merges the collections of every listing loader, sorted and
// without duplicates.
func (c *Chain) Collections() ([]string, error) {
	var names []string
	for _, l := range c.loaders {
		list, err := collections(l)
		if err != nil {
			return nil, err
		}
		names = append(names, list...)
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// Descent reports the policy of the loader serving collection. A collection
// not loaded yet is looked up first.
func (c *Chain) Descent(collection string) options.DescentEnum {
	c.mu.Lock()
	l, ok := c.routes[collection]
	c.mu.Unlock()

	if !ok {
		if _, err := c.Load(collection); err != nil {
			return options.DescentUnset
		}
		c.mu.Lock()
		l = c.routes[collection]
		c.mu.Unlock()
	}

	return descent(l, collection)
}
