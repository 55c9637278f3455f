package geocore

import "time"

// BaseConfig contains shared, backend-agnostic persistent tier configuration.
type BaseConfig struct {
	// Retention is passed to backends with native expiry when a caller provides ttl <= 0.
	Retention     time.Duration
	Prefix        string
	Compression   CompressionCodec
	MaxValueBytes int
	EncryptionKey []byte
}
