// Package encryption implements the per-conversation session crypto:
// symmetric key lifecycle and the AEAD envelope used for message bodies.
package encryption

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"chat-secure/errors"
)

// KeySize is the raw key length in bytes (256-bit security level).
const KeySize = 32

// Key is raw symmetric key material. It lives in process memory only.
type Key []byte

// KeyManager generates, exports, and imports session keys.
// The exported form is plain base64 of the raw bytes, so a key survives
// an Export/Import round trip functionally unchanged.
type KeyManager struct{}

func NewKeyManager() *KeyManager {
	return &KeyManager{}
}

// Generate draws a fresh 256-bit key from the system CSPRNG.
func (m *KeyManager) Generate() (Key, error) {
	key := make(Key, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generating session key: %w", err)
	}
	return key, nil
}

// Export serializes raw key bytes to transportable base64 text.
func (m *KeyManager) Export(key Key) string {
	return base64.StdEncoding.EncodeToString(key)
}

// Import is the inverse of Export. It fails with ErrKeyFormat when the
// text is not valid base64 or decodes to the wrong length.
func (m *KeyManager) Import(encoded string) (Key, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrKeyFormat, err)
	}
	if len(raw) != KeySize {
		return nil, fmt.Errorf("%w: expected %d key bytes, got %d", errors.ErrKeyFormat, KeySize, len(raw))
	}
	return Key(raw), nil
}

// GenerateSessionToken materializes a new conversation key in its
// exported string form.
func (m *KeyManager) GenerateSessionToken() (string, error) {
	key, err := m.Generate()
	if err != nil {
		return "", err
	}
	return m.Export(key), nil
}
