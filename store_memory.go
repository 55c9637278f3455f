package geoassist

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// memoryStore keeps the persistent tier in-process. It is the default driver
// and what tests and single-process tools run against.
type memoryStore struct {
	cache     *gocache.Cache
	retention time.Duration
	prefix    string
}

func newMemoryStore(retention, cleanupInterval time.Duration, prefix string) Store {
	if retention <= 0 {
		retention = defaultRetention
	}
	if cleanupInterval <= 0 {
		cleanupInterval = defaultMemoryCleanupInterval
	}
	return &memoryStore{
		cache:     gocache.New(retention, cleanupInterval),
		retention: retention,
		prefix:    prefix,
	}
}

func (s *memoryStore) Driver() Driver {
	return DriverMemory
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	item, ok := s.cache.Get(s.scopedKey(key))
	if !ok {
		return nil, false, nil
	}
	body, ok := item.([]byte)
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(body), true, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.retention
	}
	s.cache.Set(s.scopedKey(key), cloneBytes(value), ttl)
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.cache.Delete(s.scopedKey(key))
	return nil
}

func (s *memoryStore) DeleteMany(_ context.Context, keys ...string) error {
	for _, key := range keys {
		s.cache.Delete(s.scopedKey(key))
	}
	return nil
}

func (s *memoryStore) Flush(_ context.Context) error {
	scope := s.scopedKey("")
	for key := range s.cache.Items() {
		if strings.HasPrefix(key, scope) {
			s.cache.Delete(key)
		}
	}
	return nil
}

func (s *memoryStore) scopedKey(key string) string {
	return s.prefix + ":" + key
}

func cloneBytes(in []byte) []byte {
	if in == nil {
		return nil
	}
	out := make([]byte, len(in))
	copy(out, in)
	return out
}
