package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "unit-test-secret"

func TestIssueAndVerifySession(t *testing.T) {
	token, err := IssueSession(42, "a@b.c", "alice", true, testSecret)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := VerifySession(token, testSecret)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 42 {
		t.Errorf("user id: got %d want 42", claims.UserID)
	}
	if claims.Email != "a@b.c" || claims.Username != "alice" {
		t.Errorf("identity mismatch: %q %q", claims.Email, claims.Username)
	}
	if !claims.IsAdmin {
		t.Error("admin flag lost")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl > SessionTTL || ttl < SessionTTL-time.Minute {
		t.Errorf("session ttl out of range: %v", ttl)
	}
}

func TestVerifySessionWrongSecret(t *testing.T) {
	token, err := IssueSession(1, "a@b.c", "alice", false, testSecret)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifySession(token, "another-secret"); err == nil {
		t.Error("token verified with the wrong secret")
	}
}

func TestVerifySessionExpired(t *testing.T) {
	claims := Claims{
		UserID:   1,
		Email:    "a@b.c",
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifySession(token, testSecret); err == nil {
		t.Error("expired token verified")
	}
}

func TestVerifySessionRejectsUnsignedToken(t *testing.T) {
	claims := Claims{UserID: 1}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifySession(token, testSecret); err == nil {
		t.Error("alg=none token verified")
	}
}
