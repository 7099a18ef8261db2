// Package sealed encrypts client storage values at rest. Each value is bound
// to its namespace and key so ciphertexts cannot be moved between slots.
package sealed

import (
	"context"
	"log/slog"

	"github.com/learnsphere/learnsphere-ui/internal/cryptoutil"
	"github.com/learnsphere/learnsphere-ui/internal/ports"
)

// Provider wraps another StorageProvider.
type Provider struct {
	inner  ports.StorageProvider
	enc    cryptoutil.Encryptor
	logger *slog.Logger
}

// NewProvider decorates inner with enc.
func NewProvider(inner ports.StorageProvider, enc cryptoutil.Encryptor, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{inner: inner, enc: enc, logger: logger.With("component", "sealed_storage")}
}

// Namespace returns the sealed view of clientID.
func (p *Provider) Namespace(clientID string) ports.Storage {
	return Wrap(p.inner.Namespace(clientID), clientID, p.enc, p.logger)
}

// Storage encrypts on Set and decrypts on Get.
type Storage struct {
	inner  ports.Storage
	ns     string
	enc    cryptoutil.Encryptor
	logger *slog.Logger
}

// Wrap decorates a single Storage. ns is mixed into the additional data.
func Wrap(inner ports.Storage, ns string, enc cryptoutil.Encryptor, logger *slog.Logger) *Storage {
	if logger == nil {
		logger = slog.Default()
	}
	return &Storage{inner: inner, ns: ns, enc: enc, logger: logger}
}

func (s *Storage) aad(key string) []byte { return []byte(s.ns + "/" + key) }

// Get returns the decrypted value. A value that fails to decrypt reads as
// absent, the same as any other unusable persisted data.
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	ct, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}
	pt, err := s.enc.Decrypt(ct, s.aad(key))
	if err != nil {
		s.logger.WarnContext(ctx, "discarding undecryptable storage value", "key", key, "error", err)
		return "", false, nil
	}
	return string(pt), true, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	ct, err := s.enc.Encrypt([]byte(value), s.aad(key))
	if err != nil {
		return err
	}
	return s.inner.Set(ctx, key, ct)
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, key)
}
