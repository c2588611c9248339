package app

import (
	"crypto/sha1" //nolint:gosec // answers are compared against SHA-1 digests
	"encoding/hex"
)

// Hash returns the hex-encoded SHA-1 digest of s.
func Hash(s string) string {
	sum := sha1.Sum([]byte(s)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}
