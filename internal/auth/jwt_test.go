package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelworthy/reelworthy-core/internal/config"
	"github.com/reelworthy/reelworthy-core/internal/users"
)

func testTokenService(expiry time.Duration) *TokenService {
	return NewTokenService(config.Config{JWTSecret: "test-secret", JWTExpiry: expiry})
}

func testUser() *users.User {
	return &users.User{ID: 7, Email: "alice@example.com", Username: "alice"}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := testTokenService(time.Hour)

	token, err := svc.Issue(testUser())
	require.NoError(t, err)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "alice", claims.Username)
}

func TestParse_Expired(t *testing.T) {
	svc := testTokenService(-time.Minute)

	token, err := svc.Issue(testUser())
	require.NoError(t, err)

	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := testTokenService(time.Hour).Issue(testUser())
	require.NoError(t, err)

	other := NewTokenService(config.Config{JWTSecret: "different", JWTExpiry: time.Hour})
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParse_Garbage(t *testing.T) {
	svc := testTokenService(time.Hour)

	_, err := svc.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
