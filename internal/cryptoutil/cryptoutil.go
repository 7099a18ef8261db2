// Package cryptoutil seals small string values with AES-256-GCM.
package cryptoutil

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Encryptor seals values bound to additional data, such as the storage slot
// they belong to.
type Encryptor interface {
	Encrypt(plaintext, aad []byte) (string, error)
	Decrypt(ciphertext string, aad []byte) ([]byte, error)
}

// ErrUnknownVersion is returned for ciphertexts without a recognised prefix.
var ErrUnknownVersion = errors.New("unknown ciphertext version")

// Versioned prefix to allow future key/algorithm rotations without data migrations.
const cipherPrefixV1 = "v1:"

// AESGCMEncryptor implements Encryptor using AES-256-GCM.
type AESGCMEncryptor struct {
	aead cipher.AEAD
}

// NewAESGCMEncryptor constructs a new AESGCMEncryptor. Key must be 32 bytes (AES-256).
func NewAESGCMEncryptor(key []byte) (*AESGCMEncryptor, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("aes-gcm key must be 32 bytes, got %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &AESGCMEncryptor{aead: aead}, nil
}

// ParseKey accepts 64 hex characters, base64 of 32 bytes, or 32 raw bytes.
func ParseKey(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if b, err := hex.DecodeString(s); err == nil && len(b) == 32 {
		return b, nil
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil && len(b) == 32 {
		return b, nil
	}
	if len(s) == 32 {
		return []byte(s), nil
	}
	return nil, errors.New("encryption key must be 32 bytes, 64 hex characters, or base64 of 32 bytes")
}

// Encrypt seals plaintext with a random nonce and returns a versioned base64 string.
func (e *AESGCMEncryptor) Encrypt(plaintext, aad []byte) (string, error) {
	nonce := make([]byte, e.aead.NonceSize(), e.aead.NonceSize()+len(plaintext)+e.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	// nonce||ciphertext
	buf := e.aead.Seal(nonce, nonce, plaintext, aad)
	return cipherPrefixV1 + base64.RawURLEncoding.EncodeToString(buf), nil
}

// Decrypt opens a value created by Encrypt with the same additional data.
func (e *AESGCMEncryptor) Decrypt(ciphertext string, aad []byte) ([]byte, error) {
	if !strings.HasPrefix(ciphertext, cipherPrefixV1) {
		return nil, ErrUnknownVersion
	}
	data, err := base64.RawURLEncoding.DecodeString(ciphertext[len(cipherPrefixV1):])
	if err != nil {
		return nil, fmt.Errorf("decode ciphertext: %w", err)
	}
	nonceSize := e.aead.NonceSize()
	if len(data) < nonceSize {
		return nil, errors.New("ciphertext too short")
	}
	return e.aead.Open(nil, data[:nonceSize], data[nonceSize:], aad)
}
