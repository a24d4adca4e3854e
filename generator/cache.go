package generator

import (
	"sync"
)

// Cache stores rendered values by logical path. It is owned by the caller so
// that independent test runs do not share generated values.
type Cache interface {
	Get(path string) (string, bool)
	Set(path, value string)
}

// MapCache is a Cache safe for concurrent use.
type MapCache struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMapCache returns an empty MapCache.
func NewMapCache() *MapCache {
	return &MapCache{values: make(map[string]string)}
}

func (c *MapCache) Get(path string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.values[path]
	return v, ok
}

func (c *MapCache) Set(path, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[path] = value
}

// Len returns the number of cached values.
func (c *MapCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.values)
}

// Reset drops every cached value.
func (c *MapCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.values)
}
