package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares a stored digest and a plain password.
// Digests written by this code are bcrypt. Rows migrated from the old
// deployment hold an unsalted hex sha256 digest; those are recognized
// by shape (64 hex chars) and compared in constant time so existing
// accounts keep working until their next password change.
func VerifyPassword(hash, plain string) bool {
	if isLegacyDigest(hash) {
		sum := sha256.Sum256([]byte(plain))
		return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(hash)) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// NeedsRehash reports whether a stored digest is a legacy sha256 one
// and should be upgraded to bcrypt on next successful login.
func NeedsRehash(hash string) bool { return isLegacyDigest(hash) }

func isLegacyDigest(hash string) bool {
	if len(hash) != 64 {
		return false
	}
	if _, err := hex.DecodeString(hash); err != nil {
		return false
	}
	return true
}
