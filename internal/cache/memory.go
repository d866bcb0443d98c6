package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ResultCache holds encoded responses in process memory until they expire.
// With maxEntries set, new keys are refused while the cache is full.
type ResultCache struct {
	items      *gocache.Cache
	maxEntries int

	hits    atomic.Int64
	misses  atomic.Int64
	refused atomic.Int64
	evicted atomic.Int64
}

// Stats are cumulative counters since creation
type Stats struct {
	Hits    int64
	Misses  int64
	Refused int64
	Evicted int64
	Entries int
}

// NewResultCache creates a cache whose entries live for ttl. A ttl of zero
// or less keeps entries until Forget or Purge; maxEntries of zero or less
// means unbounded.
func NewResultCache(ttl time.Duration, maxEntries int) *ResultCache {
	expiry, sweep := gocache.NoExpiration, time.Duration(0)
	if ttl > 0 {
		expiry, sweep = ttl, max(2*ttl, time.Minute)
	}
	c := &ResultCache{
		items:      gocache.New(expiry, sweep),
		maxEntries: maxEntries,
	}
	c.items.OnEvicted(func(string, interface{}) { c.evicted.Add(1) })
	return c
}

// Lookup returns the stored bytes for key
func (c *ResultCache) Lookup(key string) ([]byte, bool) {
	v, ok := c.items.Get(key)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return v.([]byte), true
}

// Store saves data under key. It reports false when the cache is full and
// key is not already present.
func (c *ResultCache) Store(key string, data []byte) bool {
	if c.maxEntries > 0 && c.items.ItemCount() >= c.maxEntries {
		if _, ok := c.items.Get(key); !ok {
			c.refused.Add(1)
			return false
		}
	}
	c.items.SetDefault(key, data)
	return true
}

// Forget drops key
func (c *ResultCache) Forget(key string) {
	c.items.Delete(key)
}

// Purge drops every entry without counting evictions
func (c *ResultCache) Purge() {
	c.items.Flush()
}

// Stats returns the current counters. Entries may include expired items
// the sweeper has not yet removed.
func (c *ResultCache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Refused: c.refused.Load(),
		Evicted: c.evicted.Load(),
		Entries: c.items.ItemCount(),
	}
}
