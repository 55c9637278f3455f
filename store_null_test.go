package geoassist

import (
	"context"
	"testing"

	"github.com/goforj/geoassist/storetest"
)

func TestNullStoreContract(t *testing.T) {
	store := newNullStore()
	if store.Driver() != DriverNull {
		t.Fatalf("expected null driver, got %s", store.Driver())
	}
	storetest.RunStoreContract(t, store, storetest.Options{NullSemantics: true})
	if err := store.Flush(context.Background()); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
}
