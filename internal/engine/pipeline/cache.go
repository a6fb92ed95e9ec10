package pipeline

import (
	"maps"
	"slices"
	"sync"

	"go.trai.ch/yaac/internal/core/domain"
)

// Cache maps logical asset names to their current compiled entry.
// It lives as long as its Pipeline: there is no eviction and no expiry.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*domain.CacheEntry
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*domain.CacheEntry)}
}

// Get returns the entry stored for name.
func (c *Cache) Get(name string) (*domain.CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[name]
	return entry, ok
}

// Put replaces the entry stored for name. Entries are never merged.
func (c *Cache) Put(name string, entry *domain.CacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[name] = entry
}

// Len returns the number of cached names.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Names returns the cached names in sorted order.
func (c *Cache) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Sorted(maps.Keys(c.entries))
}

// Snapshot returns a copy of the name to entry mapping. The entries
// themselves are shared since they are immutable.
func (c *Cache) Snapshot() map[string]*domain.CacheEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return maps.Clone(c.entries)
}
