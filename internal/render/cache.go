package render

import (
	"sync"

	"github.com/mithrel/marpdeck/pkg/api"
)

type cacheEntry struct {
	key  string
	html string
}

// Cache memoizes rendered HTML per slide id. An entry is reused only while
// the slide text and engine are unchanged, so an edited slide is always
// rendered again.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	hits    int
	misses  int
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Get returns the HTML for slide id with the given text.
func (c *Cache) Get(e Engine, id, text string) string {
	key := e.Name() + ":" + api.ContentHash(text)
	c.mu.Lock()
	if ent, ok := c.entries[id]; ok && ent.key == key {
		c.hits++
		c.mu.Unlock()
		return ent.html
	}
	c.mu.Unlock()

	out := e.Render(text)

	c.mu.Lock()
	c.misses++
	c.entries[id] = cacheEntry{key: key, html: out}
	c.mu.Unlock()
	return out
}

// Invalidate drops the entry for id.
func (c *Cache) Invalidate(id string) {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
}

// Prune evicts entries whose id is not in ids.
func (c *Cache) Prune(ids []string) int {
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for id := range c.entries {
		if _, ok := keep[id]; !ok {
			delete(c.entries, id)
			n++
		}
	}
	return n
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns hit and miss counts since creation.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
