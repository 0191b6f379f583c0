package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintAndParseSessionToken(t *testing.T) {
	token, expiresAt, err := MintSessionToken("test-secret", "user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(SessionTTL), expiresAt, time.Minute)

	uid, err := ParseSessionToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", uid)
}

func TestParseSessionTokenWrongSecret(t *testing.T) {
	token, _, err := MintSessionToken("test-secret", "user-123")
	require.NoError(t, err)

	_, err = ParseSessionToken("other-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseSessionTokenGarbage(t *testing.T) {
	_, err := ParseSessionToken("test-secret", "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMintedTokensAreUnique(t *testing.T) {
	a, _, err := MintSessionToken("test-secret", "user-123")
	require.NoError(t, err)
	b, _, err := MintSessionToken("test-secret", "user-123")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
