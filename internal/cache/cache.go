package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"StockTracker/internal/model"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a fetched series is served from cache.
const DefaultTTL = time.Hour

// Key identifies a cached fetch.
type Key struct {
	Symbol       string
	LookbackDays int
}

func (k Key) String() string { return fmt.Sprintf("%s/%d", k.Symbol, k.LookbackDays) }

// Entry is a cached series and the time it was fetched.
type Entry struct {
	Series    model.PriceSeries
	FetchedAt time.Time
}

// IsExpired reports whether entry is too old to be reused at now.
// A non-positive ttl expires every entry.
func IsExpired(entry Entry, now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return true
	}
	return now.Sub(entry.FetchedAt) >= ttl
}

// FetchFunc loads a series on a cache miss.
type FetchFunc func(ctx context.Context) (model.PriceSeries, error)

// Cache is a symbol → series cache with a fixed time-to-live. It is
// advisory: evicting or bypassing it never changes results.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]Entry
	ttl     time.Duration
	now     func() time.Time
	group   singleflight.Group
}

// New creates a Cache. A nil clock defaults to time.Now.
func New(ttl time.Duration, clock func() time.Time) *Cache {
	if clock == nil {
		clock = time.Now
	}
	return &Cache{
		entries: make(map[Key]Entry),
		ttl:     ttl,
		now:     clock,
	}
}

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get returns the live entry for key.
func (c *Cache) Get(key Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Entry{}, false
	}
	if IsExpired(e, c.now(), c.ttl) {
		delete(c.entries, key)
		return Entry{}, false
	}
	return e, true
}

// Put stores series under key, stamped with the current clock.
func (c *Cache) Put(key Key, series model.PriceSeries) Entry {
	e := Entry{Series: series, FetchedAt: c.now()}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return e
}

// Evict drops the entry for key.
func (c *Cache) Evict(key Key) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Purge drops every expired entry and returns how many were removed.
func (c *Cache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	n := 0
	for k, e := range c.entries {
		if IsExpired(e, now, c.ttl) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// GetOrFetch returns the live entry for key, calling fetch on a miss.
// Concurrent misses for the same key share a single fetch. Errors are
// returned to every waiter and never cached. hit reports a cache hit.
//
// The shared fetch runs detached from any one caller's cancellation; a
// caller whose ctx ends stops waiting and gets ctx.Err() while the others
// still receive the result.
func (c *Cache) GetOrFetch(ctx context.Context, key Key, fetch FetchFunc) (entry Entry, hit bool, err error) {
	if e, ok := c.Get(key); ok {
		return e, true, nil
	}
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key.String(), func() (interface{}, error) {
		// another caller may have filled the entry while we waited
		if e, ok := c.Get(key); ok {
			return e, nil
		}
		series, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		return c.Put(key, series), nil
	})
	select {
	case <-ctx.Done():
		return Entry{}, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Entry{}, false, res.Err
		}
		return res.Val.(Entry), false, nil
	}
}
