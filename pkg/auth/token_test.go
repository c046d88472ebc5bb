package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := IssueToken("64a1f0c2e4b0a1b2c3d4e5f6", "test-secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := ParseToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "64a1f0c2e4b0a1b2c3d4e5f6", subject)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := IssueToken("64a1f0c2e4b0a1b2c3d4e5f6", "test-secret")
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenMalformed(t *testing.T) {
	_, err := ParseToken("not-a-token", "test-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
}
