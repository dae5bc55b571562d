package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user/lichen-go/apperror"
	"github.com/user/lichen-go/config"
)

// TokenCodec signs and verifies the compact bearer tokens used as sessions.
// Tokens are HS256-signed JWTs carrying exactly two claims: `sub`, the
// stringified user id, and `exp`, issuance time plus the configured window.
// Sessions are stateless; there is no server-side revocation, so a token
// stays valid until it expires.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec creates a TokenCodec from the auth configuration.
func NewTokenCodec(cfg config.AuthConfig) *TokenCodec {
	return &TokenCodec{
		secret: []byte(cfg.SecretKey),
		ttl:    cfg.AccessTokenDuration,
	}
}

// Issue signs a token identifying userID, valid for the configured window.
func (c *TokenCodec) Issue(userID int) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies a token string and returns the user id it identifies.
// Malformed, tampered, and expired tokens all fail the same way: a single
// AuthError, so callers cannot distinguish why a token was rejected.
func (c *TokenCodec) Decode(tokenString string) (int, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, apperror.NewAuthError("invalid token", err)
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, apperror.NewAuthError("invalid token", err)
	}
	return userID, nil
}
