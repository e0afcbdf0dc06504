package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashSecret returns the lowercase hex SHA-256 digest of an opaque secret's
// UTF-8 bytes. Used for legacy API keys and refresh token secrets, which are
// looked up by exact hash match and never stored raw.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// CompareSecretHash compares a raw secret against a stored hex digest in
// constant time. The secret parameter is the raw value, not a hash.
func CompareSecretHash(secret string, storedHash string) bool {
	computed := HashSecret(secret)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
