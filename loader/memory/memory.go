// Package memory holds collections in memory.
package memory

import (
	"fmt"
	"slices"
	"sync"

	"github.com/sbtqa/datajack-sub000/fixture"
	"github.com/sbtqa/datajack-sub000/node"
	"github.com/sbtqa/datajack-sub000/options"
)

// Loader serves collections registered with Put. Documents are cloned on the
// way in, so later changes by the caller are not seen.
type Loader struct {
	mu      sync.RWMutex
	docs    map[string]*node.Node
	pinned  map[string]map[string]*node.Node
	descent options.DescentEnum
}

// New returns an empty Loader reporting descent for every collection.
func New(descent options.DescentEnum) *Loader {
	return &Loader{
		docs:    make(map[string]*node.Node),
		pinned:  make(map[string]map[string]*node.Node),
		descent: descent,
	}
}

// FromJSON returns a Loader with one collection per entry of docs, each
// decoded from JSON or YAML text.
func FromJSON(docs map[string]string) (*Loader, error) {
	l := New(options.DescentStrict)
	for name, text := range docs {
		doc, err := node.Decode([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("collection %s: %w", name, err)
		}
		l.Put(name, doc)
	}
	return l, nil
}

// Put registers doc as the current document of collection.
func (l *Loader) Put(collection string, doc *node.Node) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.docs[collection] = doc.Clone()
}

// PutPinned registers doc as the document of collection with the given id.
func (l *Loader) PutPinned(collection, id string, doc *node.Node) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pinned[collection] == nil {
		l.pinned[collection] = make(map[string]*node.Node)
	}
	l.pinned[collection][id] = doc.Clone()
}

func (l *Loader) Load(collection string) (*node.Node, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	doc, ok := l.docs[collection]
	if !ok {
		return nil, fixture.NotFound(collection, nil)
	}
	return doc, nil
}

func (l *Loader) LoadPinned(collection, id string) (*node.Node, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	doc, ok := l.pinned[collection][id]
	if !ok {
		return nil, fixture.NotFound(collection, fmt.Errorf("no document with id %q", id))
	}
	return doc, nil
}

// Collections lists the collections with a current document, sorted.
func (l *Loader) Collections() ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.docs))
	for name := range l.docs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

func (l *Loader) Descent(string) options.DescentEnum {
	return l.descent
}
