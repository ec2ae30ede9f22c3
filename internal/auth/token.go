package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"

	"github.com/platewise/platewise/internal/model"
)

// ErrInvalidToken indicates the token is malformed, tampered with, or expired.
// Callers get one uniform error regardless of the underlying cause.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims are the JWT claims embedded in a session token.
type Claims struct {
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed session tokens.
//
// Tokens are stateless: validity is purely cryptographic plus expiry, so a
// token cannot be revoked before it expires. The signing secret and
// lifetime come from configuration and are fixed at construction.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager with the given HMAC secret and
// token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token for the given actor.
func (m *TokenManager) Issue(actor model.Actor) (string, error) {
	now := time.Now()

	claims := Claims{
		Email: actor.Email,
		Role:  actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", actor.ID),
			ID:        ulid.Make().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a signed token, returning the actor it
// encodes. Any failure maps to ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (model.Actor, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return model.Actor{}, ErrInvalidToken
	}

	var id int64
	if _, err := fmt.Sscanf(claims.Subject, "%d", &id); err != nil || id <= 0 {
		return model.Actor{}, ErrInvalidToken
	}

	if !claims.Role.IsValid() {
		return model.Actor{}, ErrInvalidToken
	}

	return model.Actor{
		ID:    id,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}
