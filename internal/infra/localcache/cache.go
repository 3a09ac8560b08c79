package localcache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is a process-local typed cache backed by go-cache. Entries never
// leave the process.
type Cache[V any] struct {
	store *gocache.Cache
}

// New builds a cache; ttl <= 0 keeps entries for the process lifetime.
func New[V any](ttl time.Duration) *Cache[V] {
	expiration := gocache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiration = ttl
		cleanup = 2 * ttl
	}
	return &Cache[V]{store: gocache.New(expiration, cleanup)}
}

// Get returns the cached value for key.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	raw, ok := c.store.Get(key)
	if !ok {
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		return zero, false
	}
	return v, true
}

// Set stores value under key with the default expiration.
func (c *Cache[V]) Set(key string, value V) {
	c.store.SetDefault(key, value)
}

// Contains reports whether key is cached.
func (c *Cache[V]) Contains(key string) bool {
	_, ok := c.store.Get(key)
	return ok
}

// Len reports the number of live entries.
func (c *Cache[V]) Len() int {
	return c.store.ItemCount()
}

// Flush drops every entry.
func (c *Cache[V]) Flush() {
	c.store.Flush()
}
