package cryptoutil

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func TestAESGCMEncryptor_EncryptDecrypt(t *testing.T) {
	enc, err := NewAESGCMEncryptor(testKey())
	require.NoError(t, err)

	ct, err := enc.Encrypt([]byte("tok-123"), []byte("ns/learnsphere_token"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ct, "v1:"))
	assert.NotContains(t, ct, "tok-123")

	pt, err := enc.Decrypt(ct, []byte("ns/learnsphere_token"))
	require.NoError(t, err)
	assert.Equal(t, "tok-123", string(pt))
}

func TestAESGCMEncryptor_NonceIsRandom(t *testing.T) {
	enc, err := NewAESGCMEncryptor(testKey())
	require.NoError(t, err)

	a, err := enc.Encrypt([]byte("same"), nil)
	require.NoError(t, err)
	b, err := enc.Encrypt([]byte("same"), nil)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestAESGCMEncryptor_RejectsWrongAAD(t *testing.T) {
	enc, err := NewAESGCMEncryptor(testKey())
	require.NoError(t, err)

	ct, err := enc.Encrypt([]byte("tok"), []byte("a/learnsphere_token"))
	require.NoError(t, err)

	_, err = enc.Decrypt(ct, []byte("b/learnsphere_token"))
	assert.Error(t, err)
}

func TestAESGCMEncryptor_RejectsTampering(t *testing.T) {
	enc, err := NewAESGCMEncryptor(testKey())
	require.NoError(t, err)

	ct, err := enc.Encrypt([]byte("tok"), nil)
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(ct[len("v1:"):])
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	_, err = enc.Decrypt("v1:"+base64.RawURLEncoding.EncodeToString(raw), nil)
	assert.Error(t, err)

	_, err = enc.Decrypt("plain value", nil)
	assert.ErrorIs(t, err, ErrUnknownVersion)

	_, err = enc.Decrypt("v1:AAAA", nil)
	assert.Error(t, err)
}

func TestAESGCMEncryptor_InvalidKey(t *testing.T) {
	_, err := NewAESGCMEncryptor([]byte("short"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be 32 bytes")
}

func TestParseKey(t *testing.T) {
	key := testKey()

	got, err := ParseKey(hex.EncodeToString(key))
	require.NoError(t, err)
	assert.Equal(t, key, got)

	got, err = ParseKey(base64.StdEncoding.EncodeToString(key))
	require.NoError(t, err)
	assert.Equal(t, key, got)

	got, err = ParseKey(strings.Repeat("k", 32))
	require.NoError(t, err)
	assert.Len(t, got, 32)

	_, err = ParseKey("too-short")
	assert.Error(t, err)
}
