package geoassist_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goforj/geoassist"
	"github.com/goforj/geoassist/geoassistfake"
)

type harness struct {
	svc    *geoassist.Service
	lookup *geoassistfake.Lookup
	store  *geoassistfake.Store
	clock  *geoassistfake.Clock
	logs   *bytes.Buffer
}

func newHarness(t *testing.T, opts ...geoassist.Option) *harness {
	t.Helper()
	h := &harness{
		lookup: geoassistfake.NewLookup(),
		store:  geoassistfake.NewStore(),
		clock:  geoassistfake.NewClock(testEpoch),
		logs:   &bytes.Buffer{},
	}
	logger := slog.New(slog.NewTextHandler(h.logs, &slog.HandlerOptions{Level: slog.LevelWarn}))
	base := []geoassist.Option{
		geoassist.WithClock(h.clock),
		geoassist.WithLogger(logger),
		geoassist.WithLookupTimeout(-1),
	}
	svc, err := geoassist.New(h.lookup, h.store, append(base, opts...)...)
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}
	h.svc = svc
	return h
}

var hanMarketOptions = geoassist.Options{Limit: 8, Bias: "proximity:108.2208,16.0678"}

// stallingStore parks the next Get of a held key until it is released.
type stallingStore struct {
	geoassist.Store

	mu    sync.Mutex
	holds map[string]*readHold
}

type readHold struct {
	started chan struct{}
	release chan struct{}
}

func newStallingStore(inner geoassist.Store) *stallingStore {
	return &stallingStore{Store: inner, holds: make(map[string]*readHold)}
}

func (s *stallingStore) Hold(key string) *readHold {
	h := &readHold{started: make(chan struct{}), release: make(chan struct{})}
	s.mu.Lock()
	s.holds[key] = h
	s.mu.Unlock()
	return h
}

func (s *stallingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	h := s.holds[key]
	delete(s.holds, key)
	s.mu.Unlock()
	if h != nil {
		close(h.started)
		<-h.release
	}
	return s.Store.Get(ctx, key)
}

func TestAutocompleteHanMarket(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.lookup.Respond("han market", hanMarket)

	first, err := h.svc.Autocomplete(ctx, "Han Market", hanMarketOptions)
	if err != nil {
		t.Fatalf("autocomplete failed: %v", err)
	}
	if first.Outcome != geoassist.OutcomeFetched || len(first.Places) != 1 || first.Places[0] != hanMarket {
		t.Fatalf("unexpected first result: %+v", first)
	}

	key := geoassist.Key("Han Market", hanMarketOptions)
	if !strings.HasPrefix(key, "han market_{limit:8,bias:") {
		t.Fatalf("unexpected cache key %q", key)
	}
	h.store.AssertCalled(t, geoassistfake.OpSet, "geo_cache_"+key, 1)

	second, err := h.svc.Autocomplete(ctx, "  han   MARKET ", hanMarketOptions)
	if err != nil {
		t.Fatalf("autocomplete failed: %v", err)
	}
	if second.Outcome != geoassist.OutcomeCached {
		t.Fatalf("expected cached outcome, got %s", second.Outcome)
	}
	if &second.Places[0] != &first.Places[0] {
		t.Fatalf("expected the identical cached slice")
	}
	h.lookup.AssertSearched(t, "han market", 1)
	if got := h.lookup.Searches()[0].Options; got.Limit != 8 || got.Bias != hanMarketOptions.Bias {
		t.Fatalf("expected options forwarded to the lookup, got %+v", got)
	}
}

func TestAutocompleteShortQueryIsSkipped(t *testing.T) {
	h := newHarness(t)
	for _, q := range []string{"", "  ", "H", " h "} {
		res, err := h.svc.Autocomplete(context.Background(), q, geoassist.Options{})
		if err != nil || res.Outcome != geoassist.OutcomeSkipped || !res.Empty() {
			t.Fatalf("expected %q skipped, got %+v err=%v", q, res, err)
		}
	}
	h.lookup.AssertTotal(t, 0)
}

func TestAutocompleteRefetchesAfterTTL(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.lookup.Respond("han market", hanMarket)

	if _, err := h.svc.Autocomplete(ctx, "Han Market", hanMarketOptions); err != nil {
		t.Fatalf("autocomplete failed: %v", err)
	}
	h.clock.Advance(9 * time.Minute)
	if res, _ := h.svc.Autocomplete(ctx, "Han Market", hanMarketOptions); res.Outcome != geoassist.OutcomeCached {
		t.Fatalf("expected cached before ttl, got %s", res.Outcome)
	}
	h.clock.Advance(time.Minute)
	res, err := h.svc.Autocomplete(ctx, "Han Market", hanMarketOptions)
	if err != nil || res.Outcome != geoassist.OutcomeFetched {
		t.Fatalf("expected refetch after ttl, got %+v err=%v", res, err)
	}
	h.lookup.AssertSearched(t, "han market", 2)
}

func TestAutocompleteDifferentOptionsAreSeparateEntries(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.lookup.Respond("han market", hanMarket)

	if _, err := h.svc.Autocomplete(ctx, "Han Market", geoassist.Options{Limit: 8}); err != nil {
		t.Fatalf("autocomplete failed: %v", err)
	}
	if res, _ := h.svc.Autocomplete(ctx, "Han Market", geoassist.Options{Limit: 5}); res.Outcome != geoassist.OutcomeFetched {
		t.Fatalf("expected different limit to miss the cache, got %s", res.Outcome)
	}
	h.lookup.AssertSearched(t, "han market", 2)
}

func TestAutocompleteSharesPersistentTier(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.lookup.Respond("han market", hanMarket)
	if _, err := h.svc.Autocomplete(ctx, "Han Market", hanMarketOptions); err != nil {
		t.Fatalf("autocomplete failed: %v", err)
	}

	other := geoassistfake.NewLookup()
	svc, err := geoassist.New(other, h.store, geoassist.WithClock(h.clock))
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}
	res, err := svc.Autocomplete(ctx, "Han Market", hanMarketOptions)
	if err != nil || res.Outcome != geoassist.OutcomeCached || res.Places[0].ID != hanMarket.ID {
		t.Fatalf("expected persistent hit, got %+v err=%v", res, err)
	}
	other.AssertTotal(t, 0)
}

func TestAutocompleteSatisfiedBySelection(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.svc.RememberSelectedPlace(ctx, hanMarket)

	res, err := h.svc.Autocomplete(ctx, " "+hanMarket.FormattedAddress+" ", geoassist.Options{})
	if err != nil || res.Outcome != geoassist.OutcomeSatisfied || !res.Empty() {
		t.Fatalf("expected satisfied outcome, got %+v err=%v", res, err)
	}
	h.lookup.AssertTotal(t, 0)

	if res, _ := h.svc.Autocomplete(ctx, "Han Market", geoassist.Options{}); res.Outcome != geoassist.OutcomeFetched {
		t.Fatalf("expected other text to be looked up, got %s", res.Outcome)
	}
}

func TestAutocompleteRateLimitResolvesEmpty(t *testing.T) {
	h := newHarness(t)
	h.lookup.Fail("han market", &geoassist.StatusError{Code: 429, Body: "Too Many Requests"})

	res, err := h.svc.Autocomplete(context.Background(), "Han Market", geoassist.Options{})
	if err != nil || res.Outcome != geoassist.OutcomeRateLimited || !res.Empty() {
		t.Fatalf("expected rate limited outcome, got %+v err=%v", res, err)
	}
	if !strings.Contains(h.logs.String(), "rate limited") || !strings.Contains(h.logs.String(), "level=WARN") {
		t.Fatalf("expected rate limit warning, got %q", h.logs.String())
	}
	if res, _ := h.svc.Autocomplete(context.Background(), "Han Market", geoassist.Options{}); res.Outcome == geoassist.OutcomeCached {
		t.Fatalf("expected rate limited result not cached")
	}
}

func TestAutocompleteErrorsPropagate(t *testing.T) {
	h := newHarness(t)
	boom := errors.New("connection refused")
	h.lookup.Fail("han market", boom)

	res, err := h.svc.Autocomplete(context.Background(), "Han Market", geoassist.Options{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected lookup error, got %v", err)
	}
	if !res.Empty() {
		t.Fatalf("expected no places with an error")
	}
}

func TestAutocompleteLookupTimeout(t *testing.T) {
	h := newHarness(t, geoassist.WithLookupTimeout(20*time.Millisecond))
	h.lookup.Hold("han market")

	_, err := h.svc.Autocomplete(context.Background(), "Han Market", geoassist.Options{})
	if !errors.Is(err, geoassist.ErrLookupTimeout) {
		t.Fatalf("expected lookup timeout, got %v", err)
	}
}

func TestAutocompleteSurvivesPersistentFailure(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.store.FailReads(true)
	h.store.FailWrites(true)
	h.lookup.Respond("han market", hanMarket)

	res, err := h.svc.Autocomplete(ctx, "Han Market", hanMarketOptions)
	if err != nil || res.Outcome != geoassist.OutcomeFetched {
		t.Fatalf("expected fetch despite store failure, got %+v err=%v", res, err)
	}
	if res, _ := h.svc.Autocomplete(ctx, "Han Market", hanMarketOptions); res.Outcome != geoassist.OutcomeCached {
		t.Fatalf("expected memory tier hit, got %s", res.Outcome)
	}
}

func TestAutocompleteSupersededLookupIsCancelledButCached(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.lookup.IgnoreContext = true
	h.lookup.Respond("han", hanMarket)
	h.lookup.Respond("han market", hanMarket)
	gate := h.lookup.Hold("han")

	results := make(chan settledCall, 1)
	go func() {
		res, err := h.svc.Autocomplete(ctx, "han", geoassist.Options{})
		results <- settledCall{res, err}
	}()
	<-gate.Started()

	res, err := h.svc.Autocomplete(ctx, "han market", geoassist.Options{})
	if err != nil || res.Outcome != geoassist.OutcomeFetched {
		t.Fatalf("expected newer lookup fetched, got %+v err=%v", res, err)
	}

	gate.Release()
	got := <-results
	if got.err != nil || got.res.Outcome != geoassist.OutcomeCancelled || !got.res.Empty() {
		t.Fatalf("expected superseded lookup cancelled, got %+v err=%v", got.res, got.err)
	}
	if res, _ := h.svc.Autocomplete(ctx, "han", geoassist.Options{}); res.Outcome != geoassist.OutcomeCached {
		t.Fatalf("expected superseded data cached under its own key, got %s", res.Outcome)
	}
}

func TestDebouncedAutocompleteCoalescesBurst(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.lookup.Respond("han m", hanMarket)

	results := make(chan settledCall, 3)
	for i, q := range []string{"ha", "han", "han m"} {
		go func() {
			res, err := h.svc.DebouncedAutocomplete(ctx, q, geoassist.Options{})
			results <- settledCall{res, err}
		}()
		waitFor(t, "debounced call to park", func() bool { return h.clock.Scheduled() == i+1 })
	}
	h.lookup.AssertTotal(t, 0)
	h.clock.Advance(geoassist.DefaultDebounceDelay)

	for range 3 {
		got := <-results
		if got.err != nil || got.res.Outcome != geoassist.OutcomeFetched || got.res.Places[0].ID != hanMarket.ID {
			t.Fatalf("expected burst to resolve with the last query, got %+v err=%v", got.res, got.err)
		}
	}
	h.lookup.AssertTotal(t, 1)
	h.lookup.AssertSearched(t, "han m", 1)
}

func TestDebouncedAutocompleteCancelPendingRequests(t *testing.T) {
	h := newHarness(t)
	results := make(chan settledCall, 1)
	go func() {
		res, err := h.svc.DebouncedAutocomplete(context.Background(), "han market", geoassist.Options{})
		results <- settledCall{res, err}
	}()
	waitFor(t, "debounced call to park", func() bool { return h.clock.Scheduled() == 1 })

	h.svc.CancelPendingRequests()
	got := <-results
	if got.err != nil || got.res.Outcome != geoassist.OutcomeCancelled {
		t.Fatalf("expected cancelled outcome, got %+v err=%v", got.res, got.err)
	}
	h.clock.Advance(time.Second)
	h.lookup.AssertTotal(t, 0)
}

func TestShortQueryCancelsPendingDebounce(t *testing.T) {
	h := newHarness(t)
	results := make(chan settledCall, 1)
	go func() {
		res, err := h.svc.DebouncedAutocomplete(context.Background(), "han market", geoassist.Options{})
		results <- settledCall{res, err}
	}()
	waitFor(t, "debounced call to park", func() bool { return h.clock.Scheduled() == 1 })

	res, err := h.svc.DebouncedAutocomplete(context.Background(), "h", geoassist.Options{})
	if err != nil || res.Outcome != geoassist.OutcomeSkipped {
		t.Fatalf("expected short query skipped, got %+v err=%v", res, err)
	}
	if got := <-results; got.res.Outcome != geoassist.OutcomeCancelled {
		t.Fatalf("expected pending call cancelled, got %+v", got.res)
	}
}

func TestRememberedPlaceLifecycle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if _, ok := h.svc.RememberedPlace(ctx); ok {
		t.Fatalf("expected nothing remembered")
	}
	h.svc.RememberSelectedPlace(ctx, hanMarket)
	if got, ok := h.svc.RememberedPlace(ctx); !ok || got != hanMarket {
		t.Fatalf("unexpected remembered place: %+v ok=%v", got, ok)
	}
	h.clock.Advance(geoassist.DefaultTTL)
	if _, ok := h.svc.RememberedPlace(ctx); ok {
		t.Fatalf("expected remembered place to expire")
	}

	h.svc.RememberSelectedPlace(ctx, hanMarket)
	h.svc.ClearRememberedPlace(ctx)
	if _, ok := h.svc.RememberedPlace(ctx); ok {
		t.Fatalf("expected remembered place cleared")
	}

	h.store.FailWrites(true)
	h.svc.RememberSelectedPlace(ctx, hanMarket)
	h.svc.ClearRememberedPlace(ctx)
}

func TestClearAllCaches(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.lookup.Respond("han market", hanMarket)

	if _, err := h.svc.Autocomplete(ctx, "Han Market", hanMarketOptions); err != nil {
		t.Fatalf("autocomplete failed: %v", err)
	}
	h.svc.RememberSelectedPlace(ctx, hanMarket)
	if err := h.svc.ClearAllCaches(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, ok := h.svc.RememberedPlace(ctx); ok {
		t.Fatalf("expected selection cleared")
	}
	if res, _ := h.svc.Autocomplete(ctx, "Han Market", hanMarketOptions); res.Outcome != geoassist.OutcomeFetched {
		t.Fatalf("expected refetch after clear, got %s", res.Outcome)
	}

	h.store.FailWrites(true)
	if err := h.svc.ClearAllCaches(ctx); !errors.Is(err, geoassistfake.ErrUnavailable) {
		t.Fatalf("expected store failure reported, got %v", err)
	}
}

func TestReverse(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	at := geoassist.Coordinates{Lat: 16.0678, Lng: 108.2242}
	h.lookup.RespondReverse(at, hanMarket)

	got, ok, err := h.svc.Reverse(ctx, at)
	if err != nil || !ok || got != hanMarket {
		t.Fatalf("unexpected reverse: %+v ok=%v err=%v", got, ok, err)
	}
	if got, ok, _ := h.svc.Reverse(ctx, at); !ok || got.ID != hanMarket.ID {
		t.Fatalf("expected cached reverse result")
	}
	if n := len(h.lookup.Reverses()); n != 1 {
		t.Fatalf("expected one reverse lookup, got %d", n)
	}

	nowhere := geoassist.Coordinates{Lat: -45, Lng: -140}
	if _, ok, err := h.svc.Reverse(ctx, nowhere); err != nil || ok {
		t.Fatalf("expected no place, got ok=%v err=%v", ok, err)
	}
	if _, _, err := h.svc.Reverse(ctx, geoassist.Coordinates{Lat: 91}); !errors.Is(err, geoassist.ErrInvalidCoordinates) {
		t.Fatalf("expected invalid coordinates, got %v", err)
	}
}

func TestNewRequiresLookup(t *testing.T) {
	if _, err := geoassist.New(nil, nil); !errors.Is(err, geoassist.ErrLookupRequired) {
		t.Fatalf("expected lookup required error, got %v", err)
	}
}

func TestNewWarnsOnBrokenStore(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	store := geoassist.NewStoreWith(context.Background(), geoassist.DriverRedis)

	svc, err := geoassist.New(geoassistfake.NewLookup(), store, geoassist.WithLogger(logger))
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}
	if !strings.Contains(logs.String(), "persistent store unavailable") {
		t.Fatalf("expected warning about the store, got %q", logs.String())
	}
	if res, err := svc.Autocomplete(context.Background(), "Han Market", geoassist.Options{}); err != nil || res.Outcome != geoassist.OutcomeFetched {
		t.Fatalf("expected service to work without persistence, got %+v err=%v", res, err)
	}
}

func TestNewWithoutStoreKeepsSelection(t *testing.T) {
	ctx := context.Background()
	lookup := geoassistfake.NewLookup()
	lookup.Respond("han market", hanMarket)
	svc, err := geoassist.New(lookup, nil)
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}

	svc.RememberSelectedPlace(ctx, hanMarket)
	if got, ok := svc.RememberedPlace(ctx); !ok || got != hanMarket {
		t.Fatalf("expected remembered place without a store, got %+v ok=%v", got, ok)
	}
	if res, err := svc.Autocomplete(ctx, hanMarket.FormattedAddress, geoassist.Options{}); err != nil || res.Outcome != geoassist.OutcomeSatisfied {
		t.Fatalf("expected satisfied outcome, got %+v err=%v", res, err)
	}
}

func TestNewWithBrokenStoreKeepsSelection(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	store := geoassist.NewStoreWith(ctx, geoassist.DriverRedis)
	if geoassist.StoreErr(store) == nil {
		t.Fatalf("expected redis store without a client to be broken")
	}

	svc, err := geoassist.New(geoassistfake.NewLookup(), store, geoassist.WithLogger(logger))
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}
	svc.RememberSelectedPlace(ctx, hanMarket)
	if got, ok := svc.RememberedPlace(ctx); !ok || got != hanMarket {
		t.Fatalf("expected remembered place with a broken store, got %+v ok=%v", got, ok)
	}
	svc.ClearRememberedPlace(ctx)
	if _, ok := svc.RememberedPlace(ctx); ok {
		t.Fatalf("expected remembered place cleared")
	}
}

func TestAutocompleteSupersededCacheHitIsCancelled(t *testing.T) {
	ctx := context.Background()
	lookup := geoassistfake.NewLookup()
	lookup.Respond("han", hanMarket)
	lookup.Respond("han market", hanMarket)
	store := newStallingStore(geoassistfake.NewStore())

	warm, err := geoassist.New(lookup, store)
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}
	if res, err := warm.Autocomplete(ctx, "han", geoassist.Options{}); err != nil || res.Outcome != geoassist.OutcomeFetched {
		t.Fatalf("warm-up failed: %+v err=%v", res, err)
	}

	svc, err := geoassist.New(lookup, store)
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}
	hold := store.Hold("geo_cache_" + geoassist.Key("han", geoassist.Options{}))
	results := make(chan settledCall, 1)
	go func() {
		res, err := svc.Autocomplete(ctx, "han", geoassist.Options{})
		results <- settledCall{res, err}
	}()
	<-hold.started

	res, err := svc.Autocomplete(ctx, "han market", geoassist.Options{})
	if err != nil || res.Outcome != geoassist.OutcomeFetched {
		t.Fatalf("expected newer query fetched, got %+v err=%v", res, err)
	}

	close(hold.release)
	got := <-results
	if got.err != nil || got.res.Outcome != geoassist.OutcomeCancelled || !got.res.Empty() {
		t.Fatalf("expected older cache hit cancelled, got %+v err=%v", got.res, got.err)
	}
	lookup.AssertSearched(t, "han", 1)
}

func TestAutocompleteSupersededBeforeLookupNeverSearches(t *testing.T) {
	ctx := context.Background()
	lookup := geoassistfake.NewLookup()
	lookup.Respond("han", hanMarket)
	lookup.Respond("han market", hanMarket)
	store := newStallingStore(geoassistfake.NewStore())
	svc, err := geoassist.New(lookup, store)
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}

	hold := store.Hold("geo_cache_" + geoassist.Key("han", geoassist.Options{}))
	results := make(chan settledCall, 1)
	go func() {
		res, err := svc.Autocomplete(ctx, "han", geoassist.Options{})
		results <- settledCall{res, err}
	}()
	<-hold.started

	res, err := svc.Autocomplete(ctx, "han market", geoassist.Options{})
	if err != nil || res.Outcome != geoassist.OutcomeFetched || res.Places[0].ID != hanMarket.ID {
		t.Fatalf("expected newer query fetched, got %+v err=%v", res, err)
	}

	close(hold.release)
	got := <-results
	if got.err != nil || got.res.Outcome != geoassist.OutcomeCancelled {
		t.Fatalf("expected older query cancelled, got %+v err=%v", got.res, got.err)
	}
	lookup.AssertSearched(t, "han", 0)
	lookup.AssertSearched(t, "han market", 1)
}

func TestDebouncedRunSupersededDuringStoreReadIsCancelled(t *testing.T) {
	ctx := context.Background()
	clock := geoassistfake.NewClock(testEpoch)
	lookup := geoassistfake.NewLookup()
	lookup.Respond("han", hanMarket)
	lookup.Respond("han market", hanMarket)
	store := newStallingStore(geoassistfake.NewStore())
	svc, err := geoassist.New(lookup, store, geoassist.WithClock(clock), geoassist.WithLookupTimeout(-1))
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}

	hold := store.Hold("geo_cache_" + geoassist.Key("han", geoassist.Options{}))
	older := make(chan settledCall, 1)
	go func() {
		res, err := svc.DebouncedAutocomplete(ctx, "han", geoassist.Options{})
		older <- settledCall{res, err}
	}()
	waitFor(t, "debounced call to park", func() bool { return clock.Scheduled() == 1 })
	go clock.Advance(geoassist.DefaultDebounceDelay)
	<-hold.started

	newer := make(chan settledCall, 1)
	go func() {
		res, err := svc.DebouncedAutocomplete(ctx, "han market", geoassist.Options{})
		newer <- settledCall{res, err}
	}()
	waitFor(t, "newer call to park", func() bool { return clock.Scheduled() == 2 })

	close(hold.release)
	got := <-older
	if got.err != nil || got.res.Outcome != geoassist.OutcomeCancelled || !got.res.Empty() {
		t.Fatalf("expected older debounced run cancelled, got %+v err=%v", got.res, got.err)
	}
	lookup.AssertSearched(t, "han", 0)

	clock.Advance(geoassist.DefaultDebounceDelay)
	got = <-newer
	if got.err != nil || got.res.Outcome != geoassist.OutcomeFetched {
		t.Fatalf("expected newer debounced run fetched, got %+v err=%v", got.res, got.err)
	}
}
