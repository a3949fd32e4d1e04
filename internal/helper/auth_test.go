package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	auth := SetupAuth("secret")

	token, err := auth.GenerateToken(7, "admin", true)
	require.NoError(t, err)

	claims, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.True(t, claims.IsAdmin)
}

func TestVerifyTokenAcceptsBearerPrefix(t *testing.T) {
	auth := SetupAuth("secret")

	token, err := auth.GenerateToken(7, "admin", false)
	require.NoError(t, err)

	claims, err := auth.VerifyToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.False(t, claims.IsAdmin)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	token, err := SetupAuth("secret-a").GenerateToken(7, "admin", true)
	require.NoError(t, err)

	_, err = SetupAuth("secret-b").VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsEmpty(t *testing.T) {
	_, err := SetupAuth("secret").VerifyToken("  ")
	assert.Error(t, err)
}

func TestGenerateTokenRequiresIdentity(t *testing.T) {
	auth := SetupAuth("secret")

	_, err := auth.GenerateToken(0, "admin", true)
	assert.Error(t, err)

	_, err = auth.GenerateToken(7, "", true)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	auth := SetupAuth("secret")

	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	require.NoError(t, auth.VerifyPassword("s3cret", hash))
	assert.Error(t, auth.VerifyPassword("wrong", hash))
}
