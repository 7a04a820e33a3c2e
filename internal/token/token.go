// Package token issues and verifies the signed bearer tokens that carry
// a user's identity between requests.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the validity window of issued tokens.
const DefaultTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned for any token that fails verification:
// bad signature, unexpected signing method, malformed payload, or
// elapsed expiry. Callers cannot distinguish the reason.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the set of identity assertions embedded in a token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Manager signs and verifies tokens with a fixed secret. The secret is set
// once at construction and must not change during the process lifetime;
// rotating it invalidates every previously issued token.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager returns a Manager signing with secret. A zero ttl falls back
// to DefaultTTL.
func NewManager(secret []byte, ttl time.Duration) *Manager {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: secret, ttl: ttl}
}

// Issue creates a signed HS256 token asserting the given user id and email,
// expiring after the manager's TTL.
func (m *Manager) Issue(userID, email string) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: userID,
		Email:  email,
	})
	return t.SignedString(m.secret)
}

// Verify parses and validates a token string and returns its claims.
// Verification is binary: any failure yields ErrInvalidToken.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
