package services_test

import (
	"testing"
	"time"

	"bozor/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test_jwt_secret"

func TestTokenService_IssueTokenPair(t *testing.T) {
	tokens := services.NewTokenService(testSecret)

	pair, err := tokens.IssueTokenPair(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)

	// Access token round-trip
	claims, err := tokens.Verify(pair.Access)
	assert.NoError(t, err)
	assert.Equal(t, services.TokenTypeAccess, claims["type"])
	assert.NotEmpty(t, claims["jti"])

	userID, err := tokens.CurrentUser(claims)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), userID)

	// Access expiry is about 15 minutes out
	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, time.Minute)

	// Refresh token round-trip
	refreshClaims, err := tokens.Verify(pair.Refresh)
	assert.NoError(t, err)
	assert.Equal(t, services.TokenTypeRefresh, refreshClaims["type"])
	assert.NotEmpty(t, refreshClaims["jti"])

	refreshExp := time.Unix(int64(refreshClaims["exp"].(float64)), 0)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), refreshExp, time.Minute)

	// Each token carries its own identifier
	assert.NotEqual(t, claims["jti"], refreshClaims["jti"])
}

func TestTokenService_IssueAccessToken(t *testing.T) {
	tokens := services.NewTokenService(testSecret)

	access, err := tokens.IssueAccessToken(7)
	assert.NoError(t, err)

	claims, err := tokens.Verify(access)
	assert.NoError(t, err)
	assert.Equal(t, services.TokenTypeAccess, claims["type"])

	userID, err := tokens.CurrentUser(claims)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), userID)

	// The standalone path uses a 30-minute lifetime
	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, time.Minute)
}

func TestTokenService_JTIIsUnpredictable(t *testing.T) {
	tokens := services.NewTokenService(testSecret)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		access, err := tokens.IssueAccessToken(1)
		assert.NoError(t, err)
		claims, err := tokens.Verify(access)
		assert.NoError(t, err)

		jti, ok := claims["jti"].(string)
		assert.True(t, ok)
		// 32 bytes of entropy, URL-safe base64 without padding
		assert.Len(t, jti, 43)
		assert.False(t, seen[jti], "jti %s issued twice", jti)
		seen[jti] = true
	}
}

func TestTokenService_VerifyExpired(t *testing.T) {
	tokens := services.NewTokenService(testSecret)

	// Correctly signed but past its expiry
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"type":    services.TokenTypeAccess,
		"exp":     time.Now().Add(-time.Hour).Unix(),
		"user_id": 42,
		"jti":     "some-jti",
	})
	expiredString, err := expired.SignedString([]byte(testSecret))
	assert.NoError(t, err)

	_, err = tokens.Verify(expiredString)
	assert.ErrorIs(t, err, services.ErrExpiredToken)
}

func TestTokenService_VerifyInvalid(t *testing.T) {
	tokens := services.NewTokenService(testSecret)

	// Garbage input
	_, err := tokens.Verify("invalid.token.string")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Signed with a different secret
	other := services.NewTokenService("another_secret")
	foreign, err := other.IssueAccessToken(42)
	assert.NoError(t, err)
	_, err = tokens.Verify(foreign)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Tampered payload invalidates the signature
	access, err := tokens.IssueAccessToken(42)
	assert.NoError(t, err)
	_, err = tokens.Verify(access + "x")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Unsigned token is rejected on algorithm mismatch
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"type":    services.TokenTypeAccess,
		"exp":     time.Now().Add(time.Hour).Unix(),
		"user_id": 42,
	})
	unsignedString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)
	_, err = tokens.Verify(unsignedString)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestTokenService_CurrentUser(t *testing.T) {
	tokens := services.NewTokenService(testSecret)

	// Payload without a user_id is rejected
	_, err := tokens.CurrentUser(jwt.MapClaims{"type": services.TokenTypeAccess})
	assert.ErrorIs(t, err, services.ErrInvalidTokenPayload)

	// Payload with a malformed user_id is rejected
	_, err = tokens.CurrentUser(jwt.MapClaims{"user_id": "not-a-number"})
	assert.ErrorIs(t, err, services.ErrInvalidTokenPayload)

	userID, err := tokens.CurrentUser(jwt.MapClaims{"user_id": float64(99)})
	assert.NoError(t, err)
	assert.Equal(t, uint(99), userID)
}
