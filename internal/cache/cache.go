// Package cache provides a small TTL cache for query results. Entries expire
// lazily on read; there is no background sweep and no eviction beyond time.
package cache

import (
	"sync"
	"time"
)

// Clock returns the current time. Injectable so tests can control expiry.
type Clock func() time.Time

type entry struct {
	value      interface{}
	insertedAt time.Time
}

// Cache is a mutex-guarded key/value store with a fixed expiry window.
// It is owned by whoever constructs it; there is no package-level instance.
type Cache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	now   Clock
	items map[string]entry
}

// New creates a cache whose entries expire after ttl
func New(ttl time.Duration) *Cache {
	return NewWithClock(ttl, time.Now)
}

// NewWithClock creates a cache with an injectable clock
func NewWithClock(ttl time.Duration, now Clock) *Cache {
	return &Cache{
		ttl:   ttl,
		now:   now,
		items: make(map[string]entry),
	}
}

// Get returns the cached value for key if it is younger than the TTL.
// Expired entries are treated as absent and left in place; the next Set
// for the key overwrites them.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, found := c.items[key]
	if !found || c.now().Sub(e.insertedAt) >= c.ttl {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the current timestamp, overwriting any
// prior entry
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry{value: value, insertedAt: c.now()}
}

// Invalidate removes every entry whose key satisfies the predicate
func (c *Cache) Invalidate(match func(key string) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.items {
		if match(key) {
			delete(c.items, key)
		}
	}
}

// Clear removes all entries unconditionally
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]entry)
}

// Len returns the number of stored entries, including any not yet expired
// lazily. Used by tests.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}
