package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Token lifetimes. The login flow issues a 15-minute access token
// together with a refresh token; IssueAccessToken is a separate path
// with its own 30-minute lifetime.
const (
	accessTokenTTL     = 15 * time.Minute
	refreshTokenTTL    = 24 * time.Hour
	soloAccessTokenTTL = 30 * time.Minute
)

// TokenPair is the access/refresh pair issued at login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenService issues and verifies signed HS256 tokens. The secret is
// injected once at construction and never read again.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a new TokenService signing with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
	}
}

// IssueTokenPair builds two independently signed tokens for the user:
// a 15-minute access token and a 1-day refresh token, each with its
// own jti.
func (s *TokenService) IssueTokenPair(userID uint) (*TokenPair, error) {
	access, err := s.sign(TokenTypeAccess, userID, accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(TokenTypeRefresh, userID, refreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// IssueAccessToken issues a standalone 30-minute access token.
func (s *TokenService) IssueAccessToken(userID uint) (string, error) {
	return s.sign(TokenTypeAccess, userID, soloAccessTokenTTL)
}

func (s *TokenService) sign(tokenType string, userID uint, ttl time.Duration) (string, error) {
	jti, err := newJTI()
	if err != nil {
		return "", err
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"type":    tokenType,
		"exp":     time.Now().Add(ttl).Unix(),
		"user_id": userID,
		"jti":     jti,
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// newJTI returns a URL-safe token identifier with 32 bytes of entropy.
func newJTI() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate jti: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Verify decodes the token, checking the signature and expiry. It
// returns ErrExpiredToken when the token is past its expiry and
// ErrInvalidToken for any signature, structure or algorithm problem.
func (s *TokenService) Verify(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// CurrentUser extracts the user ID from a verified payload.
func (s *TokenService) CurrentUser(claims jwt.MapClaims) (uint, error) {
	raw, ok := claims["user_id"]
	if !ok {
		return 0, ErrInvalidTokenPayload
	}
	switch v := raw.(type) {
	case float64:
		return uint(v), nil
	case uint:
		return v, nil
	case int:
		return uint(v), nil
	default:
		return 0, ErrInvalidTokenPayload
	}
}
