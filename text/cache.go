package text

import (
	"cmp"
	"slices"
	"sync"
)

// Cache is a thread-safe LRU cache with a soft limit. Once it holds more
// than softLimit entries, the least recently used quarter is evicted.
//
// Cache must not be copied after creation.
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*cacheEntry[V]
	softLimit int
	tick      int64
}

type cacheEntry[V any] struct {
	value V
	atime int64
}

// NewCache creates a cache. A softLimit of 0 means unlimited.
func NewCache[K comparable, V any](softLimit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:   make(map[K]*cacheEntry[V]),
		softLimit: softLimit,
	}
}

// Get returns the cached value for key.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.tick++
	e.atime = c.tick
	return e.value, true
}

// Set stores value under key.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(key, value)
}

// GetOrCreate returns the cached value for key, calling create under the
// lock when it is missing.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.tick++
		e.atime = c.tick
		return e.value
	}
	v := create()
	c.store(key, v)
	return v
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*cacheEntry[V])
	c.tick = 0
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// store inserts under c.mu and evicts when over the limit.
func (c *Cache[K, V]) store(key K, value V) {
	c.tick++
	c.entries[key] = &cacheEntry[V]{value: value, atime: c.tick}
	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evictOldest()
	}
}

// evictOldest shrinks the cache to three quarters of the soft limit.
// Caller must hold c.mu.
func (c *Cache[K, V]) evictOldest() {
	target := max(c.softLimit*3/4, 1)
	n := len(c.entries) - target
	if n <= 0 {
		return
	}

	type aged struct {
		key   K
		atime int64
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{k, e.atime})
	}
	slices.SortFunc(all, func(a, b aged) int { return cmp.Compare(a.atime, b.atime) })
	for _, e := range all[:n] {
		delete(c.entries, e.key)
	}
}

// extentKey identifies a measured string.
type extentKey struct {
	text string
	font *Font
	size float64
}
