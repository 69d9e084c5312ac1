package cache

import (
	"strings"
	"sync"
)

// QueryCache is an explicit in-memory cache for listing queries, keyed by
// query parameters (e.g. "products:<owner>:<folder>"). It replaces the
// ambient client-side query cache: injected into services so tests can
// observe invalidation deterministically.
//
// Entries are invalidated by key prefix after a mutation settles. There is no
// TTL or eviction policy: the cache only ever holds the current listings of
// active users, and a re-fetch after invalidation reflects server state.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[string]interface{}
}

// NewQueryCache creates an empty query cache
func NewQueryCache() *QueryCache {
	return &QueryCache{
		entries: make(map[string]interface{}),
	}
}

// Get returns the cached value for key, if present
func (c *QueryCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Set stores a value under key, replacing any previous entry
func (c *QueryCache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Invalidate drops every entry whose key starts with prefix and returns the
// number of entries dropped. Invalidating a prefix with no entries is a
// harmless no-op, so late invalidations from mutations that settle after the
// view navigated away cannot corrupt state.
func (c *QueryCache) Invalidate(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of live entries
func (c *QueryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// FolderListKey is the cache key for one folder-children listing
func FolderListKey(ownerID string, parentID *string) string {
	return "folders:" + ownerID + ":" + keySegment(parentID)
}

// FolderSetKey is the cache key for an owner's full flat folder set
func FolderSetKey(ownerID string) string {
	return "folderset:" + ownerID
}

// ProductListKey is the cache key for one product listing
func ProductListKey(ownerID string, folderID *string) string {
	return "products:" + ownerID + ":" + keySegment(folderID)
}

// ConfigListKey is the cache key for one product's configuration listing
func ConfigListKey(ownerID, productID string) string {
	return "configs:" + ownerID + ":" + productID
}

func keySegment(id *string) string {
	if id == nil {
		return "root"
	}
	return *id
}
