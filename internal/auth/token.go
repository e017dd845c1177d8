// Package auth reads what the console needs from the backend's bearer token.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// TokenClaims is what the backend puts in its JWT: the account email as the
// subject, and an expiry.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time // zero when the token has no exp
}

// ParseToken decodes the claims without checking the signature. The console
// holds no signing key; the backend verifies the token on every call.
func ParseToken(token string) (*TokenClaims, error) {
	var claims jwt.StandardClaims
	if _, _, err := new(jwt.Parser).ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("parse bearer token: %w", err)
	}

	out := &TokenClaims{Subject: claims.Subject}
	if claims.ExpiresAt > 0 {
		out.ExpiresAt = time.Unix(claims.ExpiresAt, 0)
	}
	return out, nil
}

// Expired reports whether token is a JWT whose exp is not after now.
// Opaque or unreadable tokens are never expired here; the backend decides.
func Expired(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	claims, err := ParseToken(token)
	if err != nil || claims.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(claims.ExpiresAt)
}
