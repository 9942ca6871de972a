// Package auth implements the authentication core: signing and verifying
// bearer tokens, classifying presented tokens into lifecycle states, and
// checking login credentials against the user store.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// Claims is the payload carried by every token issued by this service.  The
// two custom claims identify the subject and its privilege level; expiry
// and issued-at ride along as registered claims.  Nothing in a token is
// trusted unless the HMAC signature verified first.
type Claims struct {
	UserID          string `json:"userID"`
	IsAdministrator bool   `json:"isAdministrator"`
	jwt.RegisteredClaims
}

// Sign builds and signs an HS256 JWT asserting the given subject and role
// flag.  Expiry is now plus ttlSec seconds; issued-at is now.  Both are
// absolute epoch seconds on the wire.
func Sign(secret, userID string, isAdministrator bool, ttlSec int) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:          userID,
		IsAdministrator: isAdministrator,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ttlSec) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Verify parses a token string and checks its signature.  It deliberately
// skips claim validation: expiry is not a property of the signature and is
// classified separately by the state evaluator.  Only HS256 is accepted;
// a token signed with any other method fails verification.
func Verify(secret, token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, err
	}
	return claims, nil
}
