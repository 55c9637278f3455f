package geoassist

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	// DefaultTTL is how long a cached result or remembered selection stays valid.
	DefaultTTL = 10 * time.Minute

	resultKeyPrefix = "geo_cache_"
)

// Entry is a cached value and the time it was written.
// Timestamp is unix milliseconds.
type Entry[T any] struct {
	Data      T     `json:"data"`
	Timestamp int64 `json:"timestamp"`
}

func newEntry[T any](data T, now time.Time) Entry[T] {
	return Entry[T]{Data: data, Timestamp: now.UnixMilli()}
}

// ValidAt reports whether the entry is younger than ttl at now.
func (e Entry[T]) ValidAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(time.UnixMilli(e.Timestamp)) < ttl
}

// ResultCache is a two-tier cache: a process-local tier in front of a
// persistent Store. Validity is computed from each entry's timestamp, so
// expired entries are ignored rather than evicted.
type ResultCache[T any] struct {
	memory   *gocache.Cache
	store    Store
	ttl      time.Duration
	clock    Clock
	observer Observer
}

// NewResultCache builds a ResultCache over store. A nil store is replaced by
// an in-process memory store; a nil clock uses the wall clock; ttl <= 0 uses DefaultTTL.
// @group Cache
func NewResultCache[T any](store Store, ttl time.Duration, clock Clock, observer Observer) *ResultCache[T] {
	if store == nil {
		store = newMemoryStore(ttl, 0, defaultStorePrefix)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &ResultCache[T]{
		memory:   gocache.New(gocache.NoExpiration, 0),
		store:    store,
		ttl:      ttl,
		clock:    clock,
		observer: observer,
	}
}

// Get returns the cached data for key. The memory tier is consulted first; a
// valid persistent entry is promoted into memory.
// @group Cache
func (c *ResultCache[T]) Get(ctx context.Context, key string) (T, bool) {
	var zero T
	start := time.Now()
	if item, ok := c.memory.Get(key); ok {
		if entry, ok := item.(Entry[T]); ok && entry.ValidAt(c.clock.Now(), c.ttl) {
			c.observe(ctx, "get", key, TierMemory, true, nil, start)
			return entry.Data, true
		}
	}
	c.observe(ctx, "get", key, TierMemory, false, nil, start)

	start = time.Now()
	body, ok, err := c.store.Get(ctx, resultKeyPrefix+key)
	if err != nil || !ok {
		c.observe(ctx, "get", key, TierPersistent, false, err, start)
		return zero, false
	}
	var entry Entry[T]
	if err := json.Unmarshal(body, &entry); err != nil {
		c.observe(ctx, "get", key, TierPersistent, false, err, start)
		return zero, false
	}
	if !entry.ValidAt(c.clock.Now(), c.ttl) {
		c.observe(ctx, "get", key, TierPersistent, false, nil, start)
		return zero, false
	}
	c.memory.Set(key, entry, gocache.NoExpiration)
	c.observe(ctx, "get", key, TierPersistent, true, nil, start)
	return entry.Data, true
}

// Set stores data under key in both tiers. The memory write always succeeds;
// the returned error only reports a persistent tier failure and callers are
// free to ignore it.
// @group Cache
func (c *ResultCache[T]) Set(ctx context.Context, key string, data T) error {
	entry := newEntry(data, c.clock.Now())
	c.memory.Set(key, entry, gocache.NoExpiration)

	start := time.Now()
	body, err := json.Marshal(entry)
	if err == nil {
		err = c.store.Set(ctx, resultKeyPrefix+key, body, c.ttl)
	}
	c.observe(ctx, "set", key, TierPersistent, false, err, start)
	return err
}

// Clear drops the memory tier and flushes the persistent scope. The scope is
// shared with the selection slot when both use the same Store.
// @group Cache
func (c *ResultCache[T]) Clear(ctx context.Context) error {
	c.memory.Flush()
	start := time.Now()
	err := c.store.Flush(ctx)
	c.observe(ctx, "clear", "", TierPersistent, false, err, start)
	return err
}

func (c *ResultCache[T]) observe(ctx context.Context, op, key string, tier Tier, hit bool, err error, start time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.OnCacheOp(ctx, op, key, tier, hit, err, time.Since(start))
}
