package sealed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnsphere/learnsphere-ui/internal/adapters/memstore"
	"github.com/learnsphere/learnsphere-ui/internal/cryptoutil"
)

func newEncryptor(t *testing.T) cryptoutil.Encryptor {
	t.Helper()
	enc, err := cryptoutil.NewAESGCMEncryptor(make([]byte, 32))
	require.NoError(t, err)
	return enc
}

func TestStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	inner := memstore.NewProvider()
	p := NewProvider(inner, newEncryptor(t), nil)

	s := p.Namespace("client-a")
	require.NoError(t, s.Set(ctx, "learnsphere_token", "secret-token"))

	v, ok, err := s.Get(ctx, "learnsphere_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "secret-token", v)

	raw, ok, err := inner.Namespace("client-a").Get(ctx, "learnsphere_token")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, raw, "secret-token", "value must be encrypted at rest")

	require.NoError(t, s.Remove(ctx, "learnsphere_token"))
	_, ok, err = s.Get(ctx, "learnsphere_token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorage_TamperedValueReadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	inner := memstore.NewProvider()
	p := NewProvider(inner, newEncryptor(t), nil)

	require.NoError(t, p.Namespace("a").Set(ctx, "learnsphere_token", "tok"))
	raw, _, _ := inner.Namespace("a").Get(ctx, "learnsphere_token")

	// Moving the ciphertext into another client's namespace must not work.
	require.NoError(t, inner.Namespace("b").Set(ctx, "learnsphere_token", raw))
	_, ok, err := p.Namespace("b").Get(ctx, "learnsphere_token")
	require.NoError(t, err)
	assert.False(t, ok)

	mid := len(raw) / 2
	flip := "A"
	if raw[mid] == 'A' {
		flip = "B"
	}
	require.NoError(t, inner.Namespace("a").Set(ctx, "learnsphere_token", raw[:mid]+flip+raw[mid+1:]))
	_, ok, err = p.Namespace("a").Get(ctx, "learnsphere_token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, inner.Namespace("a").Set(ctx, "learnsphere_token", "plaintext"))
	_, ok, err = p.Namespace("a").Get(ctx, "learnsphere_token")
	require.NoError(t, err)
	assert.False(t, ok)
}
