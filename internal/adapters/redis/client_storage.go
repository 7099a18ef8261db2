package redis

// Package redis provides Redis-based adapters for client storage.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/learnsphere/learnsphere-ui/internal/ports"
)

var (
	_ ports.StorageProvider = (*StorageProvider)(nil)
	_ ports.Storage         = (*Storage)(nil)
)

// StorageProvider keeps each client namespace in one Redis hash.
// Every write refreshes the hash TTL so idle clients eventually expire.
type StorageProvider struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewStorageProvider creates a Redis-backed provider with the default prefix and TTL.
func NewStorageProvider(client redis.UniversalClient) *StorageProvider {
	return &StorageProvider{
		client: client,
		prefix: "learnsphere:client:",
		ttl:    7 * 24 * time.Hour,
	}
}

// NewStorageProviderWithOptions creates a provider with a custom key prefix and TTL.
func NewStorageProviderWithOptions(client redis.UniversalClient, prefix string, ttl time.Duration) *StorageProvider {
	p := NewStorageProvider(client)
	if prefix != "" {
		p.prefix = prefix
	}
	if ttl > 0 {
		p.ttl = ttl
	}
	return p
}

// Namespace returns the storage for clientID.
func (p *StorageProvider) Namespace(clientID string) ports.Storage {
	return &Storage{client: p.client, key: p.prefix + clientID, ttl: p.ttl}
}

// Storage is a view over a single client hash.
type Storage struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

func (s *Storage) Get(ctx context.Context, field string) (string, bool, error) {
	v, err := s.client.HGet(ctx, s.key, field).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis hget: %w", err)
	}
	return v, true, nil
}

func (s *Storage) Set(ctx context.Context, field, value string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.key, field, value)
		pipe.Expire(ctx, s.key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis hset: %w", err)
	}
	return nil
}

func (s *Storage) Remove(ctx context.Context, field string) error {
	if err := s.client.HDel(ctx, s.key, field).Err(); err != nil {
		return fmt.Errorf("redis hdel: %w", err)
	}
	return nil
}
