package bootstrap

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnsphere/learnsphere-ui/config"
	"github.com/learnsphere/learnsphere-ui/internal/adapters/memstore"
	"github.com/learnsphere/learnsphere-ui/internal/adapters/sealed"
)

var testKey = strings.Repeat("ab", 32)

func TestSealStorage_NoKeyKeepsProvider(t *testing.T) {
	inner := memstore.NewProvider()
	got, err := sealStorage(inner, "", quietLogger())
	require.NoError(t, err)
	assert.Same(t, inner, got)
}

func TestSealStorage_EncryptsValues(t *testing.T) {
	inner := memstore.NewProvider()
	got, err := sealStorage(inner, testKey, quietLogger())
	require.NoError(t, err)
	require.IsType(t, &sealed.Provider{}, got)

	ctx := context.Background()
	ns := got.Namespace("client-1")
	require.NoError(t, ns.Set(ctx, "learnsphere_token", "tok-123"))

	v, ok, err := ns.Get(ctx, "learnsphere_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-123", v)

	raw, ok, err := inner.Namespace("client-1").Get(ctx, "learnsphere_token")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, raw, "tok-123")
}

func TestSealStorage_RejectsBadKey(t *testing.T) {
	_, err := sealStorage(memstore.NewProvider(), "too-short", quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage encryption key")
}

func TestBuildStorage_Memory(t *testing.T) {
	cfg := &config.AppConfig{Storage: config.StorageConfig{Backend: config.StorageBackendMemory}}
	cfg.Sanitize()

	infra, err := BuildStorage(context.Background(), cfg, quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, infra.Close()) })

	assert.IsType(t, &memstore.Provider{}, infra.Storage)
	assert.Nil(t, infra.Purger)
}

func TestBuildStorage_MemorySealed(t *testing.T) {
	cfg := &config.AppConfig{Storage: config.StorageConfig{
		Backend:       config.StorageBackendMemory,
		EncryptionKey: testKey,
	}}
	cfg.Sanitize()

	infra, err := BuildStorage(context.Background(), cfg, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &sealed.Provider{}, infra.Storage)
}

func TestBuildStorage_NilConfig(t *testing.T) {
	_, err := BuildStorage(context.Background(), nil, nil)
	require.Error(t, err)
}

func TestInfrastructure_CloseRunsInReverse(t *testing.T) {
	var order []string
	infra := &Infrastructure{closers: []func() error{
		func() error { order = append(order, "db"); return nil },
		func() error { order = append(order, "redis"); return assert.AnError },
	}}
	err := infra.Close()
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, []string{"redis", "db"}, order)

	var nilInfra *Infrastructure
	assert.NoError(t, nilInfra.Close())
}
