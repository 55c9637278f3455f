package geoassist

import (
	"context"
	"testing"
	"time"

	"github.com/goforj/geoassist/storetest"
)

func TestMemoryStoreContract(t *testing.T) {
	storetest.RunStoreContract(t, newMemoryStore(time.Minute, time.Minute, "geoassist"), storetest.Options{
		Retention: 20 * time.Millisecond,
		Wait:      time.Second,
	})
}

func TestMemoryStoreFlushIsScoped(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(time.Minute, time.Minute, "a").(*memoryStore)
	// Foreign keys share the underlying go-cache instance.
	store.cache.Set("b:k", []byte("kept"), time.Minute)

	if err := store.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := store.Flush(ctx); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	if _, ok := store.cache.Get("b:k"); !ok {
		t.Fatalf("expected foreign key to survive flush")
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatalf("expected scoped key flushed")
	}
}

func TestMemoryStoreIgnoresForeignValueTypes(t *testing.T) {
	store := newMemoryStore(0, 0, "p").(*memoryStore)
	store.cache.Set("p:k", "not bytes", time.Minute)
	if _, ok, err := store.Get(context.Background(), "k"); err != nil || ok {
		t.Fatalf("expected miss for non-byte value; ok=%v err=%v", ok, err)
	}
}
