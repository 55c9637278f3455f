package geoassist

import (
	"context"
	"fmt"
)

// NewStore returns the persistent tier for the requested driver, wrapped with
// encryption and compression/quota shaping when configured.
// Caller is responsible for providing any driver-specific dependencies.
// @group Constructors
//
// NewStore never returns nil. When the backend cannot be built the returned
// store reports the construction error on every call (see StoreErr), and a
// Service given it falls back to an in-process memory store.
//
// Example: select driver explicitly
//
//	ctx := context.Background()
//	store := geoassist.NewStore(ctx, geoassist.StoreConfig{
//		Driver: geoassist.DriverMemory,
//	})
//	fmt.Println(store.Driver()) // memory
func NewStore(ctx context.Context, cfg StoreConfig) Store {
	cfg = cfg.withDefaults()
	store, err := newBackend(ctx, cfg)
	if err != nil {
		return &errorStore{driver: cfg.Driver, err: fmt.Errorf("build %s store: %w", cfg.Driver, err)}
	}
	store, err = newEncryptingStore(store, cfg.EncryptionKey)
	if err != nil {
		return &errorStore{driver: cfg.Driver, err: err}
	}
	return newShapingStore(store, cfg.Compression, cfg.MaxValueBytes)
}

func newBackend(ctx context.Context, cfg StoreConfig) (Store, error) {
	switch cfg.Driver {
	case DriverNull:
		return newNullStore(), nil
	case DriverMemory:
		return newMemoryStore(cfg.Retention, cfg.MemoryCleanupInterval, cfg.Prefix), nil
	case DriverFile:
		return newFileStore(cfg.FileDir, cfg.Prefix, cfg.Retention), nil
	case DriverRedis:
		if cfg.RedisClient == nil {
			return nil, errRedisUnavailable
		}
		return newRedisStore(cfg.RedisClient, cfg.Retention, cfg.Prefix), nil
	case DriverNATS:
		if cfg.NATSKeyValue == nil {
			return nil, errNATSUnavailable
		}
		return newNATSStore(cfg.NATSKeyValue, cfg.Retention, cfg.Prefix), nil
	case DriverSQL:
		return newSQLStore(ctx, cfg)
	case DriverDynamo:
		return newDynamoStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}

// NewStoreWith builds a store using a driver and a set of functional options.
// @group Constructors
//
// Example: redis store (options)
//
//	redisClient := redis.NewClient(&redis.Options{Addr: "127.0.0.1:6379"})
//	store := geoassist.NewStoreWith(ctx, geoassist.DriverRedis,
//		geoassist.WithRedisClient(redisClient),
//		geoassist.WithPrefix("search"),
//	)
//	fmt.Println(store.Driver()) // redis
func NewStoreWith(ctx context.Context, driver Driver, opts ...StoreOption) Store {
	cfg := StoreConfig{Driver: driver}
	for _, opt := range opts {
		cfg = opt(cfg)
	}
	return NewStore(ctx, cfg)
}

// NewMemoryStore is a convenience for an in-process persistent tier.
// @group Constructors
func NewMemoryStore(ctx context.Context, opts ...StoreOption) Store {
	return NewStoreWith(ctx, DriverMemory, opts...)
}

// NewFileStore is a convenience for a filesystem-backed persistent tier.
// @group Constructors
func NewFileStore(ctx context.Context, dir string, opts ...StoreOption) Store {
	return NewStoreWith(ctx, DriverFile, append([]StoreOption{WithFileDir(dir)}, opts...)...)
}

// NewRedisStore is a convenience for a redis-backed persistent tier. Redis client is required.
// @group Constructors
func NewRedisStore(ctx context.Context, client RedisClient, opts ...StoreOption) Store {
	return NewStoreWith(ctx, DriverRedis, append([]StoreOption{WithRedisClient(client)}, opts...)...)
}
