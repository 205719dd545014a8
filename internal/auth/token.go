// Package auth provides the password and session-token primitives:
// hashing and verification of user passwords, issuance and
// verification of signed HS256 session tokens, and extraction of the
// bearer credential from an inbound request.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is the fixed lifetime of a session token. Sessions are
// stateless: there is no server-side revocation, expiry is the only
// way a token stops working.
const SessionTTL = 24 * time.Hour

// CookieName is the cookie carrying the session token for browser
// clients. API clients use the Authorization header instead.
const CookieName = "auth_token"

// Claims is the identity claim set embedded in a session token.
type Claims struct {
	UserID   uint64 `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// IssueSession builds and signs an HS256 session token embedding the
// given identity, with issued-at now and the fixed 24h expiry.
func IssueSession(userID uint64, email, username string, isAdmin bool, secret string) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		UserID:   userID,
		Email:    email,
		Username: username,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifySession validates signature, signing method and expiry, and
// returns the embedded claims. Every failure mode (bad signature,
// expired, malformed, wrong algorithm) comes back as an error; callers
// treat any error as "unauthenticated".
func VerifySession(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
