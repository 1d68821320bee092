package jwt

import (
	"testing"
	"time"

	"cookbook-backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	svc := NewJWTService("secret")

	token, err := svc.GenerateTokenUser("user-1", "admin")
	require.NoError(t, err)

	id, role, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
	assert.Equal(t, "admin", role)
}

func TestGetUserIDByToken_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret").GenerateTokenUser("user-1", "user")
	require.NoError(t, err)

	_, _, err = NewJWTService("other").GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGetUserIDByToken_Expired(t *testing.T) {
	svc := &jwtService{secretKey: "secret", issuer: "COOKBOOK", ttl: -time.Minute}

	token, err := svc.GenerateTokenUser("user-1", "user")
	require.NoError(t, err)

	_, _, err = svc.GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}
