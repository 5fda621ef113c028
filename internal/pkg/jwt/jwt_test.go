package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
)

func newService(t *testing.T) *JWTService {
	s, err := NewJWTService("test-secret", "1h", "24h", false)
	require.NoError(t, err)
	return s
}

func TestNewJWTServiceRejectsBadDuration(t *testing.T) {
	_, err := NewJWTService("k", "one hour", "24h", false)
	assert.Error(t, err)
}

func TestAccessTokenClaims(t *testing.T) {
	s := newService(t)
	empID := "emp-1"
	name := "Budi Santoso"

	tokenString, exp, err := s.GenerateAccessToken(user.User{
		ID: "u-1", Username: "budi", Role: user.RoleAtasan, EmployeeID: &empID, EmployeeName: &name,
	})
	require.NoError(t, err)
	assert.Greater(t, exp, time.Now().Unix())

	token, err := jwtauth.VerifyToken(s.JWTAuth(), tokenString)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "u-1", claims["user_id"])
	assert.Equal(t, "atasan", claims["role"])
	assert.Equal(t, "emp-1", claims["employee_id"])
	assert.Equal(t, "Budi Santoso", claims["name"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestSSETokenRoundTrip(t *testing.T) {
	s := newService(t)

	tok, expiresIn, err := s.GenerateSSEToken("u-9")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	userID, err := s.ValidateSSEToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-9", userID)

	refresh, _, err := s.GenerateRefreshToken("u-9")
	require.NoError(t, err)
	_, err = s.ValidateSSEToken(refresh)
	assert.Error(t, err)
}

func TestRevokeTokenPrunesExpired(t *testing.T) {
	s := newService(t)
	s.RevokeToken("old", time.Now().Add(-time.Minute))
	s.RevokeToken("new", time.Now().Add(time.Hour))

	assert.True(t, s.IsTokenRevoked("new"))
	assert.False(t, s.IsTokenRevoked("old"))
}

func TestRefreshTokenValidation(t *testing.T) {
	s := newService(t)

	refresh, _, err := s.GenerateRefreshToken("u-3")
	require.NoError(t, err)
	userID, err := s.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "u-3", userID)

	access, exp, err := s.GenerateAccessToken(user.User{ID: "u-3", Username: "budi", Role: user.RolePegawai})
	require.NoError(t, err)
	_, err = s.ValidateRefreshToken(access)
	assert.Error(t, err)

	expiry, err := s.AccessTokenExpiry(access)
	require.NoError(t, err)
	assert.Equal(t, exp, expiry.Unix())

	_, err = s.AccessTokenExpiry(refresh)
	assert.Error(t, err)
}
