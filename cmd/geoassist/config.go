package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const apiKeyEnv = "GEOAPIFY_KEY"

// Config is the CLI configuration read from config.toml.
type Config struct {
	APIKey string        `toml:"api_key"`
	Store  StoreSection  `toml:"store"`
	Lookup LookupSection `toml:"lookup"`
}

// StoreSection selects and configures the persistent tier.
type StoreSection struct {
	Driver         string `toml:"driver"`
	Dir            string `toml:"dir"`
	Prefix         string `toml:"prefix"`
	RedisAddr      string `toml:"redis_addr"`
	SQLDriver      string `toml:"sql_driver"`
	SQLDSN         string `toml:"sql_dsn"`
	SQLTable       string `toml:"sql_table"`
	NATSURL        string `toml:"nats_url"`
	NATSBucket     string `toml:"nats_bucket"`
	DynamoTable    string `toml:"dynamo_table"`
	DynamoRegion   string `toml:"dynamo_region"`
	DynamoEndpoint string `toml:"dynamo_endpoint"`
	Compression    string `toml:"compression"`
	MaxValueBytes  int    `toml:"max_value_bytes"`
	EncryptionKey  string `toml:"encryption_key"`
}

// LookupSection holds lookup defaults applied to every command.
type LookupSection struct {
	BaseURL string   `toml:"base_url"`
	Limit   int      `toml:"limit"`
	Bias    string   `toml:"bias"`
	Filter  string   `toml:"filter"`
	Timeout duration `toml:"timeout"`
	TTL     duration `toml:"ttl"`
}

// duration reads TOML strings such as "8s" or "10m".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Store: StoreSection{
			Driver: "file",
			Dir:    defaultStoreDir(),
		},
	}
}

func defaultStoreDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "geoassist")
	}
	return filepath.Join(os.TempDir(), "geoassist")
}

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".geoassist", "config.toml"), nil
}

// LoadConfig reads path, or ~/.geoassist/config.toml when path is empty.
// A missing default file yields DefaultConfig; a missing explicit file is an error.
// GEOAPIFY_KEY overrides api_key.
func LoadConfig(path string) (Config, error) {
	cfg, err := readConfig(path)
	if err != nil {
		return cfg, err
	}
	if key := strings.TrimSpace(os.Getenv(apiKeyEnv)); key != "" {
		cfg.APIKey = key
	}
	return cfg, nil
}

func readConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return DefaultConfig(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "file"
	}
	if cfg.Store.Dir == "" {
		cfg.Store.Dir = defaultStoreDir()
	}
	return cfg, nil
}
