package encryption

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "chat-secure/errors"
)

var suites = []Suite{SuiteAESGCM, SuiteChaCha20}

func newSuiteCipher(t *testing.T, suite Suite) (*Cipher, Key) {
	t.Helper()
	c, err := NewCipher(suite)
	require.NoError(t, err)
	key, err := NewKeyManager().Generate()
	require.NoError(t, err)
	return c, key
}

func TestCipher_RoundTrip(t *testing.T) {
	plaintexts := []string{
		"hello",
		"",
		"a longer message with spaces, punctuation... and digits 0123456789",
		"unicode: été, 密码, 🦉",
	}

	for _, suite := range suites {
		t.Run(string(suite), func(t *testing.T) {
			req := require.New(t)
			c, key := newSuiteCipher(t, suite)

			for _, plaintext := range plaintexts {
				sealed, err := c.Encrypt([]byte(plaintext), key)
				req.NoError(err)

				opened, err := c.Decrypt(sealed, key)
				req.NoError(err)
				req.Equal(plaintext, string(opened))
			}
		})
	}
}

func TestCipher_EncryptIsNonDeterministic(t *testing.T) {
	for _, suite := range suites {
		t.Run(string(suite), func(t *testing.T) {
			req := require.New(t)
			c, key := newSuiteCipher(t, suite)

			first, err := c.Encrypt([]byte("same plaintext"), key)
			req.NoError(err)
			second, err := c.Encrypt([]byte("same plaintext"), key)
			req.NoError(err)

			// Fresh nonces: identical inputs must still differ on the wire.
			req.NotEqual(first, second)

			opened, err := c.Decrypt(second, key)
			req.NoError(err)
			req.Equal("same plaintext", string(opened))
		})
	}
}

func TestCipher_KeySurvivesExportImport(t *testing.T) {
	req := require.New(t)
	manager := NewKeyManager()
	c, key := newSuiteCipher(t, SuiteAESGCM)

	restored, err := manager.Import(manager.Export(key))
	req.NoError(err)

	// Sealed under the restored key, opened with the original, and back.
	sealed, err := c.Encrypt([]byte("portable"), restored)
	req.NoError(err)
	opened, err := c.Decrypt(sealed, key)
	req.NoError(err)
	req.Equal("portable", string(opened))

	sealed, err = c.Encrypt([]byte("portable"), key)
	req.NoError(err)
	opened, err = c.Decrypt(sealed, restored)
	req.NoError(err)
	req.Equal("portable", string(opened))
}

func TestCipher_DetectsTampering(t *testing.T) {
	for _, suite := range suites {
		t.Run(string(suite), func(t *testing.T) {
			req := require.New(t)
			c, key := newSuiteCipher(t, suite)

			sealed, err := c.Encrypt([]byte("integrity matters"), key)
			req.NoError(err)
			raw, err := base64.StdEncoding.DecodeString(sealed)
			req.NoError(err)

			// Flip one bit in the nonce, the ciphertext body, and the tag.
			for _, index := range []int{0, NonceSize + 1, len(raw) - 1} {
				tampered := make([]byte, len(raw))
				copy(tampered, raw)
				tampered[index] ^= 0x01

				_, err := c.Decrypt(base64.StdEncoding.EncodeToString(tampered), key)
				require.ErrorIs(t, err, apperrors.ErrAuthentication)
			}
		})
	}
}

func TestCipher_RejectsWrongKey(t *testing.T) {
	req := require.New(t)
	c, key := newSuiteCipher(t, SuiteAESGCM)
	otherKey, err := NewKeyManager().Generate()
	req.NoError(err)

	sealed, err := c.Encrypt([]byte("secret"), key)
	req.NoError(err)

	_, err = c.Decrypt(sealed, otherKey)
	req.ErrorIs(err, apperrors.ErrAuthentication)
}

func TestCipher_RejectsMalformedEnvelope(t *testing.T) {
	c, key := newSuiteCipher(t, SuiteAESGCM)

	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "not base64",
			input: "!!! not base64 !!!",
		},
		{
			name:  "shorter than a nonce",
			input: base64.StdEncoding.EncodeToString([]byte("tiny")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decrypt(tt.input, key)
			require.ErrorIs(t, err, apperrors.ErrMalformedCiphertext)
		})
	}
}

func TestNewCipher_RejectsUnknownSuite(t *testing.T) {
	_, err := NewCipher(Suite("rot13"))
	require.ErrorIs(t, err, apperrors.ErrUnknownCipherSuite)
}

func TestSuiteFromString(t *testing.T) {
	req := require.New(t)

	suite, err := SuiteFromString("")
	req.NoError(err)
	req.Equal(SuiteAESGCM, suite)

	suite, err = SuiteFromString("chacha20-poly1305")
	req.NoError(err)
	req.Equal(SuiteChaCha20, suite)

	_, err = SuiteFromString("des-cbc")
	req.ErrorIs(err, apperrors.ErrUnknownCipherSuite)
}
