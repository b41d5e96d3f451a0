package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_ValidCredentialsIssueToken(t *testing.T) {
	svc, err := NewAuthService("admin", "s3cret", "test-signing-key", time.Hour)
	require.NoError(t, err)

	tokenString, err := svc.Login("admin", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte("test-signing-key"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "admin", claims["sub"])
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, err := NewAuthService("admin", "s3cret", "test-signing-key", time.Hour)
	require.NoError(t, err)

	_, err = svc.Login("admin", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUsername(t *testing.T) {
	svc, err := NewAuthService("admin", "s3cret", "test-signing-key", time.Hour)
	require.NoError(t, err)

	_, err = svc.Login("root", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
