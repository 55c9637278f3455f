package storetest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/goforj/geoassist/geocore"
)

// Options configures shared store contract checks.
type Options struct {
	// CaseName is used to namespace keys. Defaults to t.Name().
	CaseName string
	// NullSemantics expects every read to miss (persistence disabled).
	NullSemantics bool
	// SkipCloneCheck disables the "get returns a copy" assertion.
	SkipCloneCheck bool
	// Retention is the ttl hint used by the expiry check. Zero skips the check,
	// for backends where native expiry is too coarse to observe in a test.
	Retention time.Duration
	// Wait is how long the harness waits for expiry to occur.
	Wait time.Duration
	// Neighbor is a second store on the same backend with another scope.
	// When set, Flush must leave its keys alone.
	Neighbor geocore.Store
}

// RunStoreContract runs a backend-agnostic store contract suite.
func RunStoreContract(t *testing.T, store geocore.Store, opts Options) {
	t.Helper()

	caseName := opts.CaseName
	if caseName == "" {
		caseName = t.Name()
	}
	ctx := context.Background()
	key := func(s string) string {
		return sanitize(caseName) + "_" + s
	}

	// Query-shaped keys carry spaces and braces.
	queryKey := key("han market_{limit:8,bias:countrycode:vn,filter:}")
	if err := store.Set(ctx, queryKey, []byte(`{"data":[],"timestamp":1}`), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	body, ok, err := store.Get(ctx, queryKey)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if opts.NullSemantics {
		if ok {
			t.Fatalf("expected miss for null semantics")
		}
		return
	}
	if !ok || string(body) != `{"data":[],"timestamp":1}` {
		t.Fatalf("unexpected get result: ok=%v body=%q", ok, string(body))
	}
	if !opts.SkipCloneCheck {
		body[0] = 'X'
		again, ok, err := store.Get(ctx, queryKey)
		if err != nil || !ok || again[0] != '{' {
			t.Fatalf("expected stored value unchanged, got ok=%v body=%q err=%v", ok, string(again), err)
		}
	}

	// Overwrite replaces the value.
	if err := store.Set(ctx, key("slot"), []byte("first"), time.Minute); err != nil {
		t.Fatalf("set slot failed: %v", err)
	}
	if err := store.Set(ctx, key("slot"), []byte("second"), time.Minute); err != nil {
		t.Fatalf("overwrite slot failed: %v", err)
	}
	if body, ok, err := store.Get(ctx, key("slot")); err != nil || !ok || string(body) != "second" {
		t.Fatalf("expected overwritten value, got ok=%v body=%q err=%v", ok, string(body), err)
	}

	// Missing keys are misses, not errors.
	if _, ok, err := store.Get(ctx, key("missing")); err != nil || ok {
		t.Fatalf("expected miss for unknown key; ok=%v err=%v", ok, err)
	}

	if opts.Retention > 0 {
		wait := opts.Wait
		if wait <= 0 {
			wait = opts.Retention * 3
		}
		if err := store.Set(ctx, key("ttl"), []byte("v"), opts.Retention); err != nil {
			t.Fatalf("set ttl failed: %v", err)
		}
		if err := waitForMiss(ctx, store, key("ttl"), wait); err != nil {
			t.Fatalf("expected retention expiry: %v", err)
		}
	}

	// Delete and DeleteMany.
	for _, k := range []string{"a", "b", "c"} {
		if err := store.Set(ctx, key(k), []byte(k), time.Minute); err != nil {
			t.Fatalf("set %s failed: %v", k, err)
		}
	}
	if err := store.Delete(ctx, key("a")); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := store.Delete(ctx, key("a")); err != nil {
		t.Fatalf("delete of missing key failed: %v", err)
	}
	if err := store.DeleteMany(ctx, key("b"), key("c")); err != nil {
		t.Fatalf("delete many failed: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if _, ok, err := store.Get(ctx, key(k)); err != nil || ok {
			t.Fatalf("expected key %s deleted; ok=%v err=%v", k, ok, err)
		}
	}

	// Flush clears this scope only.
	if err := store.Set(ctx, key("flush"), []byte("x"), time.Minute); err != nil {
		t.Fatalf("set flush failed: %v", err)
	}
	if opts.Neighbor != nil {
		if err := opts.Neighbor.Set(ctx, key("flush"), []byte("kept"), time.Minute); err != nil {
			t.Fatalf("neighbor set failed: %v", err)
		}
	}
	if err := store.Flush(ctx); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	if _, ok, err := store.Get(ctx, key("flush")); err != nil || ok {
		t.Fatalf("expected flush to clear key; ok=%v err=%v", ok, err)
	}
	if opts.Neighbor != nil {
		body, ok, err := opts.Neighbor.Get(ctx, key("flush"))
		if err != nil || !ok || string(body) != "kept" {
			t.Fatalf("expected neighbor scope untouched by flush; ok=%v body=%q err=%v", ok, string(body), err)
		}
	}
}

func waitForMiss(ctx context.Context, store geocore.Store, key string, wait time.Duration) error {
	deadline := time.Now().Add(wait)
	for time.Now().Before(deadline) {
		_, ok, err := store.Get(ctx, key)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	_, ok, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("key %q still present after %s", key, wait)
	}
	return nil
}

func sanitize(s string) string {
	return strings.NewReplacer("/", "_", " ", "_").Replace(s)
}
