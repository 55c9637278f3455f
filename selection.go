package geoassist

import (
	"context"
	"encoding/json"
	"time"
)

const selectionKey = "selected_place"

type remembered struct {
	Place     Place `json:"place"`
	Timestamp int64 `json:"timestamp"`
}

// SelectionMemory is a single persistent slot holding the last place the user
// explicitly picked. It stays valid for the same TTL as cached results.
type SelectionMemory struct {
	store    Store
	ttl      time.Duration
	clock    Clock
	observer Observer
}

// NewSelectionMemory builds a SelectionMemory over store; nil arguments get
// the same defaults as NewResultCache.
// @group Selection
func NewSelectionMemory(store Store, ttl time.Duration, clock Clock, observer Observer) *SelectionMemory {
	if store == nil {
		store = newMemoryStore(ttl, 0, defaultStorePrefix)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &SelectionMemory{store: store, ttl: ttl, clock: clock, observer: observer}
}

// Remember overwrites the slot with place.
// @group Selection
func (m *SelectionMemory) Remember(ctx context.Context, place Place) error {
	if !place.Coordinates.Valid() {
		return ErrInvalidCoordinates
	}
	start := time.Now()
	body, err := json.Marshal(remembered{Place: place, Timestamp: m.clock.Now().UnixMilli()})
	if err == nil {
		err = m.store.Set(ctx, selectionKey, body, m.ttl)
	}
	m.observe(ctx, "set", TierPersistent, false, err, start)
	return err
}

// Recall returns the remembered place while it is younger than the TTL.
// A slot that cannot be read or decoded counts as empty.
// @group Selection
func (m *SelectionMemory) Recall(ctx context.Context) (Place, bool) {
	start := time.Now()
	body, ok, err := m.store.Get(ctx, selectionKey)
	if err != nil || !ok {
		m.observe(ctx, "get", TierPersistent, false, err, start)
		return Place{}, false
	}
	var slot remembered
	if err := json.Unmarshal(body, &slot); err != nil {
		m.observe(ctx, "get", TierPersistent, false, err, start)
		return Place{}, false
	}
	entry := Entry[Place]{Data: slot.Place, Timestamp: slot.Timestamp}
	if !entry.ValidAt(m.clock.Now(), m.ttl) {
		m.observe(ctx, "get", TierPersistent, false, nil, start)
		return Place{}, false
	}
	m.observe(ctx, "get", TierPersistent, true, nil, start)
	return slot.Place, true
}

// Clear empties the slot.
// @group Selection
func (m *SelectionMemory) Clear(ctx context.Context) error {
	start := time.Now()
	err := m.store.Delete(ctx, selectionKey)
	m.observe(ctx, "delete", TierPersistent, false, err, start)
	return err
}

func (m *SelectionMemory) observe(ctx context.Context, op string, tier Tier, hit bool, err error, start time.Time) {
	if m.observer == nil {
		return
	}
	m.observer.OnCacheOp(ctx, op, selectionKey, tier, hit, err, time.Since(start))
}
