package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robinhio12/rockbrakel/utils"
)

func TestLogin(t *testing.T) {
	hash, err := utils.HashPassword("sportdag2025")
	require.NoError(t, err)
	secret := []byte("test-secret")
	service := NewAuthService(hash, secret)

	_, err = service.Login("wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	token, err := service.Login("sportdag2025")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "admin", claims["role"])
}
