package geocore

import (
	"context"
	"time"
)

// Store is the persistent key/value tier behind the result cache and the
// selection slot. Keys are plain strings; values are opaque bytes.
//
// ttl is a retention hint. Entry validity is decided by the caller from the
// timestamp stored inside the value, so a store may keep data longer than ttl.
type Store interface {
	Driver() Driver
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, keys ...string) error
	// Flush removes every key in the store's scope (its prefix, directory or table).
	Flush(ctx context.Context) error
}
