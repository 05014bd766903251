package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	"chat-secure/errors"
)

// Suite selects the AEAD construction. Both suites use a 256-bit key and
// a 96-bit nonce, so the envelope layout is identical.
type Suite string

const (
	SuiteAESGCM   Suite = "aes-gcm"
	SuiteChaCha20 Suite = "chacha20-poly1305"
)

// NonceSize is the per-message nonce length in bytes.
const NonceSize = 12

// Cipher performs authenticated encryption of message bodies.
//
// The envelope is base64(nonce || ciphertext || tag). The nonce is drawn
// fresh from the CSPRNG on every Encrypt; it is not secret and travels
// alongside the ciphertext. A nonce must never repeat under the same key,
// which random 96-bit draws guarantee for any realistic message volume.
type Cipher struct {
	suite Suite
}

func NewCipher(suite Suite) (*Cipher, error) {
	switch suite {
	case SuiteAESGCM, SuiteChaCha20:
		return &Cipher{suite: suite}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errors.ErrUnknownCipherSuite, suite)
	}
}

func (c *Cipher) aead(key Key) (cipher.AEAD, error) {
	switch c.suite {
	case SuiteChaCha20:
		return chacha20poly1305.New(key)
	default:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	}
}

// Encrypt seals plaintext under key and returns the base64 envelope.
func (c *Cipher) Encrypt(plaintext []byte, key Key) (string, error) {
	aead, err := c.aead(key)
	if err != nil {
		return "", fmt.Errorf("building aead: %w", err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("drawing nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a base64 envelope produced by Encrypt.
//
// It fails with ErrMalformedCiphertext when the text is not base64 or is
// shorter than a nonce, and with ErrAuthentication when the integrity tag
// does not verify. No partial plaintext is ever returned.
func (c *Cipher) Decrypt(encoded string, key Key) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrMalformedCiphertext, err)
	}
	if len(raw) < NonceSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than a nonce", errors.ErrMalformedCiphertext, len(raw))
	}

	aead, err := c.aead(key)
	if err != nil {
		return nil, fmt.Errorf("building aead: %w", err)
	}

	nonce, ciphertext := raw[:NonceSize], raw[NonceSize:]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrAuthentication, err)
	}
	return plaintext, nil
}

// SuiteFromString parses a configured suite name, defaulting to AES-GCM
// for an empty value.
func SuiteFromString(s string) (Suite, error) {
	switch Suite(s) {
	case "":
		return SuiteAESGCM, nil
	case SuiteAESGCM:
		return SuiteAESGCM, nil
	case SuiteChaCha20:
		return SuiteChaCha20, nil
	default:
		return "", fmt.Errorf("%w: %q", errors.ErrUnknownCipherSuite, s)
	}
}
