// Package jwt signs and verifies the bearer tokens issued at login.
package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var secret []byte

// ErrInvalidToken covers every verification failure: bad signature, expired,
// malformed, or wrong signing method.
var ErrInvalidToken = errors.New("invalid token")

// SetSecret installs the HMAC signing key. Must be called once at startup
// before any Sign or Parse.
func SetSecret(s string) {
	secret = []byte(s)
}

// Claims carries the authenticated user id.
type Claims struct {
	UserID uint `json:"uid"`
	jwtlib.RegisteredClaims
}

// Sign issues a token for userID valid for ttl.
func Sign(userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(secret)
}

// Parse verifies tokenString and returns its claims.
func Parse(tokenString string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenString, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
