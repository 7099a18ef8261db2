package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnsphere/learnsphere-ui/internal/testutil"
)

func TestStorage_SetGetRemove(t *testing.T) {
	db := testutil.SetupAutoDB(t)
	ctx := context.Background()

	s := NewStorageProvider(db, time.Hour).Namespace("client-1")

	_, ok, err := s.Get(ctx, "learnsphere_user")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "learnsphere_user", `{"id":"1"}`))
	require.NoError(t, s.Set(ctx, "learnsphere_user", `{"id":"2"}`))
	v, ok, err := s.Get(ctx, "learnsphere_user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":"2"}`, v)

	require.NoError(t, s.Remove(ctx, "learnsphere_user"))
	require.NoError(t, s.Remove(ctx, "learnsphere_user"))
	_, ok, err = s.Get(ctx, "learnsphere_user")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorageProvider_ExpiryAndPurge(t *testing.T) {
	db := testutil.SetupAutoDB(t)
	ctx := context.Background()

	current := testutil.TestTime()
	p := NewStorageProvider(db, time.Hour)
	p.now = func() time.Time { return current }

	s := p.Namespace("idle")
	require.NoError(t, s.Set(ctx, "learnsphere_token", "tok"))

	current = current.Add(2 * time.Hour)
	_, ok, err := s.Get(ctx, "learnsphere_token")
	require.NoError(t, err)
	assert.False(t, ok, "expired rows are invisible")

	n, err := p.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestStorage_SetRefreshesNamespace(t *testing.T) {
	db := testutil.SetupAutoDB(t)
	ctx := context.Background()

	current := testutil.TestTime()
	p := NewStorageProvider(db, time.Hour)
	p.now = func() time.Time { return current }

	s := p.Namespace("active")
	require.NoError(t, s.Set(ctx, "learnsphere_token", "tok"))
	current = current.Add(45 * time.Minute)
	require.NoError(t, s.Set(ctx, "learnsphere_user", "{}"))
	current = current.Add(30 * time.Minute)

	v, ok, err := s.Get(ctx, "learnsphere_token")
	require.NoError(t, err)
	assert.True(t, ok, "writing one key keeps the whole namespace alive")
	assert.Equal(t, "tok", v)
}
