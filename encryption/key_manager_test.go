package encryption

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "chat-secure/errors"
)

func TestKeyManager_GenerateProducesDistinctKeys(t *testing.T) {
	req := require.New(t)
	manager := NewKeyManager()

	first, err := manager.Generate()
	req.NoError(err)
	req.Len(first, KeySize)

	second, err := manager.Generate()
	req.NoError(err)
	req.Len(second, KeySize)
	req.NotEqual(first, second)
}

func TestKeyManager_ExportImportRoundTrip(t *testing.T) {
	req := require.New(t)
	manager := NewKeyManager()

	key, err := manager.Generate()
	req.NoError(err)

	restored, err := manager.Import(manager.Export(key))
	req.NoError(err)
	req.Equal(key, restored)
}

func TestKeyManager_ImportRejectsMalformedInput(t *testing.T) {
	manager := NewKeyManager()

	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "not base64",
			input: "%%% definitely not base64 %%%",
		},
		{
			name:  "empty string",
			input: "",
		},
		{
			name:  "valid base64 but wrong length",
			input: base64.StdEncoding.EncodeToString([]byte("too short")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Import(tt.input)
			require.ErrorIs(t, err, apperrors.ErrKeyFormat)
		})
	}
}

func TestKeyManager_GenerateSessionToken(t *testing.T) {
	req := require.New(t)
	manager := NewKeyManager()

	token, err := manager.GenerateSessionToken()
	req.NoError(err)

	key, err := manager.Import(token)
	req.NoError(err)
	req.Len(key, KeySize)
}
