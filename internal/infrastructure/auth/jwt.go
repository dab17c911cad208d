package auth

import (
	"errors"
	"os"
	"time"

	"satici_paneli/internal/usecase/interfaces"

	"github.com/golang-jwt/jwt/v5"
)

const defaultAccessTokenTTL = 7 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

// vendorClaims mirrors the claim layout the auth service signs: the vendor ID
// travels in "id", not in the subject.
type vendorClaims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenManager verifies (and, for tooling and tests, signs) HS256 access
// tokens shared with the auth service via JWT_SECRET.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

var _ interfaces.ITokenVerifier = (*TokenManager)(nil)

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: defaultAccessTokenTTL}
}

// NewTokenManagerFromEnv reads JWT_SECRET. An empty secret is a
// misconfiguration the caller should treat as fatal.
func NewTokenManagerFromEnv() (*TokenManager, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	return NewTokenManager(secret), nil
}

func (m *TokenManager) Generate(vendorID string) (string, error) {
	now := time.Now()
	claims := vendorClaims{
		ID: vendorID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *TokenManager) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &vendorClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*vendorClaims)
	if !ok || claims.ID == "" {
		return "", ErrInvalidToken
	}
	return claims.ID, nil
}
