package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goforj/geoassist"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
)

// openStore builds the persistent tier described by sc. The returned close
// function releases any client connection the store owns.
func openStore(ctx context.Context, sc StoreSection) (geoassist.Store, func(), error) {
	cfg := geoassist.StoreConfig{
		Driver:         geoassist.Driver(strings.ToLower(strings.TrimSpace(sc.Driver))),
		FileDir:        sc.Dir,
		SQLDriverName:  sc.SQLDriver,
		SQLDSN:         sc.SQLDSN,
		SQLTable:       sc.SQLTable,
		DynamoTable:    sc.DynamoTable,
		DynamoRegion:   sc.DynamoRegion,
		DynamoEndpoint: sc.DynamoEndpoint,
	}
	cfg.Prefix = sc.Prefix
	cfg.Compression = geoassist.CompressionCodec(sc.Compression)
	cfg.MaxValueBytes = sc.MaxValueBytes
	if sc.EncryptionKey != "" {
		cfg.EncryptionKey = []byte(sc.EncryptionKey)
	}

	closeFn := func() {}
	switch cfg.Driver {
	case geoassist.DriverRedis:
		if sc.RedisAddr == "" {
			return nil, nil, errors.New("store.redis_addr is required for the redis driver")
		}
		client := redis.NewClient(&redis.Options{Addr: sc.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect redis %s: %w", sc.RedisAddr, err)
		}
		cfg.RedisClient = client
		closeFn = func() { _ = client.Close() }
	case geoassist.DriverNATS:
		kv, nc, err := openNATSBucket(sc)
		if err != nil {
			return nil, nil, err
		}
		cfg.NATSKeyValue = kv
		closeFn = nc.Close
	}

	store := geoassist.NewStore(ctx, cfg)
	if err := geoassist.StoreErr(store); err != nil {
		closeFn()
		return nil, nil, err
	}
	return store, closeFn, nil
}

func openNATSBucket(sc StoreSection) (nats.KeyValue, *nats.Conn, error) {
	url := sc.NATSURL
	if url == "" {
		url = nats.DefaultURL
	}
	bucket := sc.NATSBucket
	if bucket == "" {
		bucket = "geoassist"
	}
	nc, err := nats.Connect(url, nats.Name("geoassist"))
	if err != nil {
		return nil, nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("jetstream: %w", err)
	}
	kv, err := js.KeyValue(bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{Bucket: bucket, Description: "geoassist lookup cache"})
	}
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("nats bucket %q: %w", bucket, err)
	}
	return kv, nc, nil
}
