// Package auth implements session token handling for the booking API.
// Tokens are HS256 JWTs whose id (jti) keys a server-side session record, so
// a token is only good while its session record is alive — logout revokes it.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mgirard/lux-rentals/api/internal/domain"
)

// Claims is the payload carried by a session token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// NewToken mints a signed session token for the given identity.
// The returned tokenID (jti) is the key under which the session record must
// be stored.
func NewToken(secret string, ident domain.Identity, ttl time.Duration) (token, tokenID string, err error) {
	if secret == "" {
		return "", "", fmt.Errorf("auth.NewToken: empty signing secret")
	}
	if ident.ID == 0 {
		return "", "", fmt.Errorf("auth.NewToken: identity has no id")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	now := time.Now()
	tokenID = uuid.NewString()

	claims := Claims{
		Role: string(ident.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   strconv.FormatInt(ident.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", "", fmt.Errorf("auth.NewToken: sign: %w", err)
	}
	return signed, tokenID, nil
}

// ParseToken verifies the signature and registered claims of a session token.
// Returns domain.ErrUnauthenticated for any invalid, expired, or tampered token.
func ParseToken(secret, token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth.ParseToken: %w: %w", domain.ErrUnauthenticated, err)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("auth.ParseToken: token has no id: %w", domain.ErrUnauthenticated)
	}
	return claims, nil
}
