package geoassist

import (
	"context"
	"log/slog"
	"time"
)

// Tier names the cache level an operation touched.
type Tier string

const (
	TierMemory     Tier = "memory"
	TierPersistent Tier = "persistent"
)

// Observer receives events for cache and selection operations.
// It is called after each tier operation completes.
type Observer interface {
	OnCacheOp(ctx context.Context, op string, key string, tier Tier, hit bool, err error, dur time.Duration)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, op string, key string, tier Tier, hit bool, err error, dur time.Duration)

// OnCacheOp implements Observer.
func (f ObserverFunc) OnCacheOp(ctx context.Context, op string, key string, tier Tier, hit bool, err error, dur time.Duration) {
	if f == nil {
		return
	}
	f(ctx, op, key, tier, hit, err, dur)
}

// LogObserver reports cache operations as debug records; failures are logged at warn.
func LogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		return nil
	}
	return ObserverFunc(func(ctx context.Context, op string, key string, tier Tier, hit bool, err error, dur time.Duration) {
		if err != nil {
			logger.WarnContext(ctx, "cache operation failed", "op", op, "key", key, "tier", string(tier), "err", err)
			return
		}
		logger.DebugContext(ctx, "cache operation", "op", op, "key", key, "tier", string(tier), "hit", hit, "dur", dur)
	})
}

type observers []Observer

func (o observers) OnCacheOp(ctx context.Context, op string, key string, tier Tier, hit bool, err error, dur time.Duration) {
	for _, obs := range o {
		if obs != nil {
			obs.OnCacheOp(ctx, op, key, tier, hit, err, dur)
		}
	}
}
