package geoassist

import (
	"os"
	"path/filepath"
	"time"

	"github.com/goforj/geoassist/geocore"
)

const (
	defaultStorePrefix           = "geoassist"
	defaultRetention             = 10 * time.Minute
	defaultMemoryCleanupInterval = 10 * time.Minute
	defaultSQLTable              = "geoassist_entries"
	defaultDynamoTable           = "geoassist_entries"
)

func defaultFileDir() string {
	return filepath.Join(os.TempDir(), "geoassist")
}

// StoreConfig controls how the persistent tier is constructed.
type StoreConfig struct {
	geocore.BaseConfig

	Driver Driver

	// MemoryCleanupInterval controls in-process eviction for DriverMemory.
	MemoryCleanupInterval time.Duration

	// FileDir controls where DriverFile keeps entries.
	FileDir string

	// RedisClient is required when DriverRedis is used.
	RedisClient RedisClient

	// SQLDriverName and SQLDSN are required when DriverSQL is used
	// ("sqlite", "pgx" or "mysql").
	SQLDriverName string
	SQLDSN        string
	SQLTable      string

	// NATSKeyValue is required when DriverNATS is used.
	NATSKeyValue NATSKeyValue

	// DynamoClient is optional; when nil a client is built from the AWS
	// default config using DynamoRegion and DynamoEndpoint.
	DynamoClient   DynamoAPI
	DynamoEndpoint string
	DynamoRegion   string
	DynamoTable    string
}

func (c StoreConfig) withDefaults() StoreConfig {
	if c.Driver == "" {
		c.Driver = DriverMemory
	}
	if c.Retention <= 0 {
		c.Retention = defaultRetention
	}
	if c.MemoryCleanupInterval <= 0 {
		c.MemoryCleanupInterval = defaultMemoryCleanupInterval
	}
	if c.Prefix == "" {
		c.Prefix = defaultStorePrefix
	}
	if c.Compression == "" {
		c.Compression = CompressionNone
	}
	if c.FileDir == "" {
		c.FileDir = defaultFileDir()
	}
	if c.SQLTable == "" {
		c.SQLTable = defaultSQLTable
	}
	if c.DynamoTable == "" {
		c.DynamoTable = defaultDynamoTable
	}
	if c.DynamoRegion == "" {
		c.DynamoRegion = "us-east-1"
	}
	return c
}
