package middleware

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/memimg/pkg/ports"
)

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new log entries.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation: rotate ActiveKey and keep
	// the previous key here until the log is rewritten.
	FallbackKeys [][]byte
}

type encryptionCodec[C any] struct {
	next   ports.Codec[C]
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a codec middleware that encrypts each
// encoded line using AES-GCM. Ciphertext is base64-encoded, so the
// one-command-per-line format is preserved.
func NewEncryptionMiddleware[C any](config EncryptionConfig) Middleware[C] {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.Codec[C]) ports.Codec[C] {
		return &encryptionCodec[C]{
			next:   next,
			config: config,
		}
	}
}

func (m *encryptionCodec[C]) Encode(command C) (string, error) {
	plainText, err := m.next.Encode(command)
	if err != nil {
		return "", err
	}

	ciphertext, err := encrypt([]byte(plainText), m.config.ActiveKey)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt log entry: %w", err)
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (m *encryptionCodec[C]) Decode(line string) (C, error) {
	var zero C

	ciphertext, err := base64.StdEncoding.DecodeString(line)
	if err != nil {
		return zero, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return zero, fmt.Errorf("failed to decrypt log entry: %w", err)
	}

	return m.next.Decode(string(plainText))
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	// Try active key first
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	// Try fallbacks in order
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	ciphertextBytes := ciphertext[gcm.NonceSize():]

	return gcm.Open(nil, nonce, ciphertextBytes, nil)
}
