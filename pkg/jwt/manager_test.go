package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	token, err := manager.GenerateToken("user-1", "user@example.com", "author")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "author", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	manager := NewManager("secret-a", time.Hour)
	other := NewManager("secret-b", time.Hour)

	token, err := manager.GenerateToken("user-1", "user@example.com", "author")
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenExpired(t *testing.T) {
	manager := NewManager("test-secret", -time.Minute)

	token, err := manager.GenerateToken("user-1", "user@example.com", "author")
	require.NoError(t, err)

	_, err = manager.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyTokenGarbage(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	_, err := manager.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
