package geoassistfake

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/goforj/geoassist"
)

// Op identifies a store operation for assertions.
type Op string

const (
	OpGet        Op = "get"
	OpSet        Op = "set"
	OpDelete     Op = "delete"
	OpDeleteMany Op = "delete_many"
	OpFlush      Op = "flush"
)

// ErrUnavailable is returned by a Store whose writes or reads were disabled.
var ErrUnavailable = errors.New("geoassistfake: store unavailable")

// Store is an in-memory persistent tier that counts calls and can simulate
// an unavailable or full backend.
type Store struct {
	inner geoassist.Store

	mu         sync.Mutex
	counts     map[Op]map[string]int
	failWrites bool
	failReads  bool
}

// NewStore returns a Store backed by the geoassist memory driver.
func NewStore() *Store {
	return &Store{
		inner:  geoassist.NewMemoryStore(context.Background()),
		counts: make(map[Op]map[string]int),
	}
}

var _ geoassist.Store = (*Store)(nil)

// FailWrites makes Set, Delete, DeleteMany and Flush return ErrUnavailable.
func (s *Store) FailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrites = fail
}

// FailReads makes Get return ErrUnavailable.
func (s *Store) FailReads(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failReads = fail
}

// Put writes raw bytes, bypassing counters and failure switches.
func (s *Store) Put(key string, value []byte) {
	_ = s.inner.Set(context.Background(), key, value, time.Hour)
}

// Raw reads raw bytes, bypassing counters and failure switches.
func (s *Store) Raw(key string) ([]byte, bool) {
	body, ok, _ := s.inner.Get(context.Background(), key)
	return body, ok
}

func (s *Store) Driver() geoassist.Driver { return s.inner.Driver() }

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.bump(OpGet, key, false) {
		return nil, false, ErrUnavailable
	}
	return s.inner.Get(ctx, key)
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if s.bump(OpSet, key, true) {
		return ErrUnavailable
	}
	return s.inner.Set(ctx, key, value, ttl)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if s.bump(OpDelete, key, true) {
		return ErrUnavailable
	}
	return s.inner.Delete(ctx, key)
}

func (s *Store) DeleteMany(ctx context.Context, keys ...string) error {
	failed := false
	for _, k := range keys {
		failed = s.bump(OpDeleteMany, k, true)
	}
	if failed {
		return ErrUnavailable
	}
	return s.inner.DeleteMany(ctx, keys...)
}

func (s *Store) Flush(ctx context.Context) error {
	if s.bump(OpFlush, "", true) {
		return ErrUnavailable
	}
	return s.inner.Flush(ctx)
}

// AssertCalled verifies key was touched by op the expected number of times.
func (s *Store) AssertCalled(t *testing.T, op Op, key string, times int) {
	t.Helper()
	if got := s.Count(op, key); got != times {
		t.Fatalf("expected %s %q called %d times, got %d", op, key, times, got)
	}
}

// AssertTotal ensures the total call count for an op matches times.
func (s *Store) AssertTotal(t *testing.T, op Op, times int) {
	t.Helper()
	if got := s.Total(op); got != times {
		t.Fatalf("expected %s total=%d, got %d", op, times, got)
	}
}

// Count returns calls for op+key.
func (s *Store) Count(op Op, key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[op][key]
}

// Total returns total calls for an op across keys.
func (s *Store) Total(op Op) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum int
	for _, v := range s.counts[op] {
		sum += v
	}
	return sum
}

// Reset clears recorded counts.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts = make(map[Op]map[string]int)
}

// bump records the call and reports whether it should fail.
func (s *Store) bump(op Op, key string, write bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counts[op] == nil {
		s.counts[op] = make(map[string]int)
	}
	s.counts[op][key]++
	if write {
		return s.failWrites
	}
	return s.failReads
}
