// Package token issues and verifies the signed session credentials that bind
// a user id and display name for a fixed validity window.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers malformed, expired, and tampered tokens alike so
	// callers cannot distinguish why verification failed.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrMissingToken indicates no credential was presented at all.
	ErrMissingToken = errors.New("authorization token required")
)

// Identity is the resolved caller attached to every protected operation.
type Identity struct {
	UserID string
	Name   string
}

// Claims are the custom JWT claims for a session.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Manager signs and verifies session tokens with a process-wide HS256 secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager builds a token manager. The secret is loaded once at startup and
// never rotated at runtime.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed, time-bounded token for the given user.
func (m *Manager) Issue(userID, name string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded identity.
func (m *Manager) Verify(tokenString string) (Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: claims.Subject, Name: claims.Name}, nil
}
