package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSessionToken(t *testing.T) {
	token, err := GenerateSessionToken()
	require.NoError(t, err)

	// 20 bytes encode to 32 base32 characters without padding.
	assert.Len(t, token, 32)
	assert.Regexp(t, "^[a-z2-7]+$", token)

	other, err := GenerateSessionToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestSessionIDFromToken(t *testing.T) {
	id := SessionIDFromToken("some-token")

	// Hex encoded SHA-256, fits the varchar(64) column.
	assert.Len(t, id, 64)
	assert.Regexp(t, "^[0-9a-f]+$", id)

	assert.Equal(t, id, SessionIDFromToken("some-token"))
	assert.NotEqual(t, id, SessionIDFromToken("other-token"))
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	// A bare token without the scheme prefix is accepted as-is.
	token, err = ExtractBearerToken("abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ExtractBearerToken("")
	assert.Error(t, err)
}
