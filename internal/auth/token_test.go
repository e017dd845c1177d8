package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.StandardClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestParseToken(t *testing.T) {
	exp := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	token := signed(t, jwt.StandardClaims{Subject: "nimal@example.lk", ExpiresAt: exp.Unix()})

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "nimal@example.lk", claims.Subject)
	assert.True(t, exp.Equal(claims.ExpiresAt))
}

func TestParseToken_NotAJWT(t *testing.T) {
	_, err := ParseToken("opaque-session-token")
	assert.Error(t, err)
}

func TestExpired(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"empty", "", false},
		{"opaque", "opaque-session-token", false},
		{"no exp", signed(t, jwt.StandardClaims{Subject: "a@b.lk"}), false},
		{"future exp", signed(t, jwt.StandardClaims{ExpiresAt: now.Add(time.Hour).Unix()}), false},
		{"past exp", signed(t, jwt.StandardClaims{ExpiresAt: now.Add(-time.Minute).Unix()}), true},
		{"exp now", signed(t, jwt.StandardClaims{ExpiresAt: now.Unix()}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Expired(tt.token, now))
		})
	}
}
