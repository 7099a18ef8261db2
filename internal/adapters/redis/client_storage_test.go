package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnsphere/learnsphere-ui/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func TestStorage_SetGetRemove(t *testing.T) {
	client := setupTestRedis(t)

	ctx := context.Background()
	store := NewStorageProvider(client).Namespace("client-1")

	_, ok, err := store.Get(ctx, "learnsphere_token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "learnsphere_token", "tok"))
	v, ok, err := store.Get(ctx, "learnsphere_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)

	require.NoError(t, store.Remove(ctx, "learnsphere_token"))
	require.NoError(t, store.Remove(ctx, "learnsphere_token"))
	_, ok, err = store.Get(ctx, "learnsphere_token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorage_NamespacesAreIsolated(t *testing.T) {
	client := setupTestRedis(t)

	ctx := context.Background()
	p := NewStorageProviderWithOptions(client, "test:ns:", time.Hour)

	require.NoError(t, p.Namespace("a").Set(ctx, "k", "va"))
	require.NoError(t, p.Namespace("b").Set(ctx, "k", "vb"))

	v, _, err := p.Namespace("a").Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "va", v)
	v, _, err = p.Namespace("b").Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "vb", v)
}

func TestStorage_SetRefreshesTTL(t *testing.T) {
	client := setupTestRedis(t)

	ctx := context.Background()
	p := NewStorageProviderWithOptions(client, "test:ttl:", 30*time.Minute)
	require.NoError(t, p.Namespace("c").Set(ctx, "k", "v"))

	ttl, err := client.TTL(ctx, "test:ttl:c").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 29*time.Minute)
	assert.LessOrEqual(t, ttl, 30*time.Minute)
}
