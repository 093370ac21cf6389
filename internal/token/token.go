// Package token issues and verifies the HS256 access tokens handed out on login.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for malformed, expired or wrongly signed tokens.
var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue returns a signed token for userID valid for the manager's TTL.
func (m *Manager) Issue(userID uuid.UUID) (string, error) {
	const op = "token.Manager.Issue"

	now := m.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%s: failed to sign token: %w", op, err)
	}

	return signed, nil
}

// Parse verifies tokenStr and returns the user it was issued for.
func (m *Manager) Parse(tokenStr string) (uuid.UUID, error) {
	const op = "token.Manager.Parse"

	var claims Claims

	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, err)
	}

	if claims.UserID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%s: %w: missing user id", op, ErrInvalidToken)
	}

	return claims.UserID, nil
}
