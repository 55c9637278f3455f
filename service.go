package geoassist

import (
	"log/slog"
	"time"
)

// DefaultMinQueryLength is the shortest normalized query that is looked up.
const DefaultMinQueryLength = 2

// Config controls how a Service is constructed.
type Config struct {
	// TTL bounds how long cached results and the remembered selection stay valid.
	TTL time.Duration

	// DebounceDelay is the quiet period for DebouncedAutocomplete.
	DebounceDelay time.Duration

	// LookupTimeout bounds each provider call. Negative disables it.
	LookupTimeout time.Duration

	// MinQueryLength is counted in runes after normalization.
	MinQueryLength int

	Clock    Clock
	Logger   *slog.Logger
	Observer Observer
}

func (c Config) withDefaults() Config {
	if c.TTL <= 0 {
		c.TTL = DefaultTTL
	}
	if c.DebounceDelay <= 0 {
		c.DebounceDelay = DefaultDebounceDelay
	}
	if c.LookupTimeout == 0 {
		c.LookupTimeout = DefaultLookupTimeout
	}
	if c.MinQueryLength <= 0 {
		c.MinQueryLength = DefaultMinQueryLength
	}
	if c.Clock == nil {
		c.Clock = SystemClock()
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Option mutates Config when constructing a Service.
type Option func(Config) Config

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(cfg Config) Config {
		cfg.TTL = ttl
		return cfg
	}
}

// WithDebounceDelay overrides DefaultDebounceDelay.
func WithDebounceDelay(delay time.Duration) Option {
	return func(cfg Config) Config {
		cfg.DebounceDelay = delay
		return cfg
	}
}

// WithLookupTimeout overrides DefaultLookupTimeout; negative disables the timeout.
func WithLookupTimeout(timeout time.Duration) Option {
	return func(cfg Config) Config {
		cfg.LookupTimeout = timeout
		return cfg
	}
}

// WithMinQueryLength overrides DefaultMinQueryLength.
func WithMinQueryLength(n int) Option {
	return func(cfg Config) Config {
		cfg.MinQueryLength = n
		return cfg
	}
}

// WithClock injects the time source used for TTLs and debounce timers.
func WithClock(clock Clock) Option {
	return func(cfg Config) Config {
		cfg.Clock = clock
		return cfg
	}
}

// WithLogger sets the structured logger. Cache operations are also reported to
// it at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg Config) Config {
		cfg.Logger = logger
		return cfg
	}
}

// WithObserver receives cache and selection operations.
func WithObserver(observer Observer) Option {
	return func(cfg Config) Config {
		cfg.Observer = observer
		return cfg
	}
}
