package config

import (
	"fmt"
	"strings"
	"time"
)

// StorageBackend selects where per-client session entries are persisted.
type StorageBackend string

const (
	// StorageBackendMemory keeps entries in process memory (lost on restart).
	StorageBackendMemory StorageBackend = "memory"
	// StorageBackendRedis keeps entries in Redis hashes with a TTL.
	StorageBackendRedis StorageBackend = "redis"
	// StorageBackendPostgres keeps entries in the client_storage table.
	StorageBackendPostgres StorageBackend = "postgres"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageBackend.
func (b *StorageBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "memory", "redis", "postgres":
		*b = StorageBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid StorageBackend: %q (valid options: memory, redis, postgres)", v)
	}
}

// StorageConfig controls the client storage backend used by the web server.
type StorageConfig struct {
	Backend StorageBackend `env:"STORAGE_BACKEND" envDefault:"memory"`

	// KeyPrefix namespaces storage keys in shared backends.
	KeyPrefix string `env:"STORAGE_KEY_PREFIX" envDefault:"learnsphere:client:"`

	// TTL is how long an idle client namespace is kept. Every write refreshes it.
	TTL time.Duration `env:"STORAGE_TTL" envDefault:"168h"`

	// EncryptionKey, when set, encrypts stored values with AES-256-GCM.
	// Accepts 32 raw bytes, 64 hex characters, or base64 of 32 bytes.
	EncryptionKey string `env:"STORAGE_ENCRYPTION_KEY"`

	// PurgeInterval is how often expired entries are deleted from Postgres.
	// Redis expires keys itself. Zero disables the purge loop.
	PurgeInterval time.Duration `env:"STORAGE_PURGE_INTERVAL" envDefault:"1h"`
}

// Sanitize applies defaults to storage settings.
func (s *StorageConfig) Sanitize() {
	if s.Backend == "" {
		s.Backend = StorageBackendMemory
	}
	if strings.TrimSpace(s.KeyPrefix) == "" {
		s.KeyPrefix = "learnsphere:client:"
	}
	if s.TTL <= 0 {
		s.TTL = 7 * 24 * time.Hour
	}
	s.EncryptionKey = strings.TrimSpace(s.EncryptionKey)
	if s.PurgeInterval < 0 {
		s.PurgeInterval = 0
	}
	if s.PurgeInterval > 0 && s.PurgeInterval < time.Minute {
		s.PurgeInterval = time.Minute
	}
}
