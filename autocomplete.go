package geoassist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"
)

// Service is the autocomplete facade: it validates queries, answers from the
// result cache or the remembered selection when it can, and otherwise runs a
// coordinated lookup whose result is cached.
//
// A Service is safe for concurrent use. Build one per input surface; its
// coordinator treats every call as newer input than the last.
type Service struct {
	lookup    Lookup
	results   *ResultCache[[]Place]
	selection *SelectionMemory
	coord     *Coordinator
	logger    *slog.Logger
	timeout   time.Duration
	minQuery  int
}

// New builds a Service around lookup. store is the persistent tier shared by
// cached results and the selection slot. A nil store, or one that failed to
// build, is replaced by an in-process memory store.
// @group Service
//
// Example: memory-backed service
//
//	client, err := geoapify.New(os.Getenv("GEOAPIFY_KEY"))
//	if err != nil {
//		return err
//	}
//	svc, err := geoassist.New(client, geoassist.NewMemoryStore(ctx))
//	if err != nil {
//		return err
//	}
//	res, err := svc.Autocomplete(ctx, "Han Market", geoassist.Options{Limit: 8})
func New(lookup Lookup, store Store, opts ...Option) (*Service, error) {
	if lookup == nil {
		return nil, ErrLookupRequired
	}
	var cfg Config
	for _, opt := range opts {
		cfg = opt(cfg)
	}
	cfg = cfg.withDefaults()

	observer := observers{cfg.Observer, LogObserver(cfg.Logger)}
	switch {
	case store == nil:
		store = newMemoryStore(cfg.TTL, 0, defaultStorePrefix)
	case StoreErr(store) != nil:
		cfg.Logger.Warn("persistent store unavailable, caching in memory only", "driver", string(store.Driver()), "err", StoreErr(store))
		store = newMemoryStore(cfg.TTL, 0, defaultStorePrefix)
	}
	return &Service{
		lookup:    lookup,
		results:   NewResultCache[[]Place](store, cfg.TTL, cfg.Clock, observer),
		selection: NewSelectionMemory(store, cfg.TTL, cfg.Clock, observer),
		coord:     NewCoordinator(cfg.Clock, cfg.DebounceDelay, cfg.LookupTimeout),
		logger:    cfg.Logger,
		timeout:   cfg.LookupTimeout,
		minQuery:  cfg.MinQueryLength,
	}, nil
}

// Autocomplete returns suggestions for query.
// @group Service
//
// Non-fatal resolutions are reported through Result.Outcome: a query shorter
// than the minimum is OutcomeSkipped, a cache hit OutcomeCached, a query equal
// to the remembered selection OutcomeSatisfied, a superseded or abandoned call
// OutcomeCancelled and a provider rate limit OutcomeRateLimited. Only other
// failures are returned as errors.
func (s *Service) Autocomplete(ctx context.Context, query string, opts Options) (Result, error) {
	text, ok := s.accept(query)
	if !ok {
		return Result{Outcome: OutcomeSkipped}, nil
	}
	return s.resolve(ctx, s.coord.Accept(), query, text, opts)
}

// DebouncedAutocomplete behaves like Autocomplete but waits for the debounce
// delay to pass without newer calls first. All callers parked during a burst
// receive the result for the last query of the burst.
// @group Service
func (s *Service) DebouncedAutocomplete(ctx context.Context, query string, opts Options) (Result, error) {
	text, ok := s.accept(query)
	if !ok {
		return Result{Outcome: OutcomeSkipped}, nil
	}
	return s.coord.Debounce(ctx, func(ctx context.Context, t Ticket) (Result, error) {
		return s.resolve(ctx, t, query, text, opts)
	})
}

// accept normalizes query. A query below the minimum length is still newer
// input, so it cancels whatever is pending.
func (s *Service) accept(query string) (string, bool) {
	text := NormalizeQuery(query)
	if utf8.RuneCountInString(text) < s.minQuery {
		s.coord.Cancel()
		return "", false
	}
	return text, true
}

// resolve answers text on behalf of ticket t. The tiers are read before any
// lookup starts, so newer input may arrive meanwhile; whatever is found is only
// delivered while t is still current.
func (s *Service) resolve(ctx context.Context, t Ticket, raw, text string, opts Options) (Result, error) {
	key := text + "_" + opts.Canonical()
	if places, ok := s.results.Get(ctx, key); ok {
		return s.deliver(ctx, t, text, Result{Places: places, Outcome: OutcomeCached}), nil
	}
	if selected, ok := s.selection.Recall(ctx); ok && strings.TrimSpace(raw) == selected.FormattedAddress {
		return s.deliver(ctx, t, text, Result{Outcome: OutcomeSatisfied}), nil
	}

	opts = opts.withDefaults()
	res, err := s.coord.CoordinateFor(ctx, t, func(ctx context.Context) ([]Place, error) {
		places, err := s.lookup.Search(ctx, text, opts)
		if err != nil {
			return nil, err
		}
		// The data answers its own key even if this lookup was superseded.
		if err := s.results.Set(context.WithoutCancel(ctx), key, places); err != nil {
			s.logger.DebugContext(ctx, "lookup result not persisted", "key", key, "err", err)
		}
		return places, nil
	})
	if err != nil {
		if IsRateLimited(err) {
			s.logger.WarnContext(ctx, "lookup rate limited", "query", text, "err", err)
			return Result{Outcome: OutcomeRateLimited}, nil
		}
		return Result{}, fmt.Errorf("autocomplete %q: %w", text, err)
	}
	return s.deliver(ctx, t, text, res), nil
}

func (s *Service) deliver(ctx context.Context, t Ticket, text string, res Result) Result {
	if res.Outcome != OutcomeCancelled && !s.coord.Current(t) {
		res = Result{Outcome: OutcomeCancelled}
	}
	if res.Outcome == OutcomeCancelled {
		s.logger.DebugContext(ctx, "lookup superseded", "query", text)
	}
	return res
}

// Reverse resolves a point, typically from a geolocation provider, to the
// nearest known place. Results are cached per ~10m cell. Reverse lookups are
// not coordinated with autocomplete lookups. A rate limited lookup reports no
// place and no error.
// @group Service
func (s *Service) Reverse(ctx context.Context, at Coordinates) (Place, bool, error) {
	if !at.Valid() {
		return Place{}, false, ErrInvalidCoordinates
	}
	key := ReverseKey(at)
	if places, ok := s.results.Get(ctx, key); ok {
		if len(places) == 0 {
			return Place{}, false, nil
		}
		return places[0], true, nil
	}

	lookupCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	place, found, err := s.lookup.Reverse(lookupCtx, at)
	if err != nil {
		if IsRateLimited(err) {
			s.logger.WarnContext(ctx, "reverse lookup rate limited", "at", at.String(), "err", err)
			return Place{}, false, nil
		}
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("%w after %s: %w", ErrLookupTimeout, s.timeout, err)
		}
		return Place{}, false, fmt.Errorf("reverse %s: %w", at, err)
	}

	var places []Place
	if found {
		places = []Place{place}
	}
	if err := s.results.Set(ctx, key, places); err != nil {
		s.logger.DebugContext(ctx, "reverse result not persisted", "key", key, "err", err)
	}
	return place, found, nil
}

// RememberSelectedPlace stores the place the user picked. Failures are logged
// and otherwise ignored.
// @group Service
func (s *Service) RememberSelectedPlace(ctx context.Context, place Place) {
	if err := s.selection.Remember(ctx, place); err != nil {
		s.logger.DebugContext(ctx, "selection not remembered", "id", place.ID, "err", err)
	}
}

// RememberedPlace returns the remembered selection while it is valid.
// @group Service
func (s *Service) RememberedPlace(ctx context.Context) (Place, bool) {
	return s.selection.Recall(ctx)
}

// ClearRememberedPlace empties the selection slot. Failures are logged and
// otherwise ignored.
// @group Service
func (s *Service) ClearRememberedPlace(ctx context.Context) {
	if err := s.selection.Clear(ctx); err != nil {
		s.logger.DebugContext(ctx, "selection not cleared", "err", err)
	}
}

// CancelPendingRequests abandons the pending debounce and the in-flight lookup.
// Their callers receive OutcomeCancelled.
// @group Service
func (s *Service) CancelPendingRequests() {
	s.coord.Cancel()
}

// ClearAllCaches drops cached results in both tiers and the remembered selection.
// @group Service
func (s *Service) ClearAllCaches(ctx context.Context) error {
	return errors.Join(s.results.Clear(ctx), s.selection.Clear(ctx))
}
