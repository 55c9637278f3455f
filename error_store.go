package geoassist

import (
	"context"
	"time"
)

// errorStore stands in for a persistent tier that failed to build. It keeps
// the driver identity and returns the construction error on every call, so the
// result cache degrades to memory-only instead of failing lookups.
type errorStore struct {
	driver Driver
	err    error
}

func (e *errorStore) Driver() Driver                                    { return e.driver }
func (e *errorStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, e.err }
func (e *errorStore) Set(context.Context, string, []byte, time.Duration) error {
	return e.err
}
func (e *errorStore) Delete(context.Context, string) error        { return e.err }
func (e *errorStore) DeleteMany(context.Context, ...string) error { return e.err }
func (e *errorStore) Flush(context.Context) error                 { return e.err }

// StoreErr returns the construction error of a store built by NewStore, or nil.
func StoreErr(store Store) error {
	switch s := store.(type) {
	case *errorStore:
		return s.err
	case *shapingStore:
		return StoreErr(s.inner)
	case *encryptingStore:
		return StoreErr(s.inner)
	default:
		return nil
	}
}
