package utils

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a short stable digest of s. Session ids go through
// it before they become part of a Redis key so raw ids never show up in
// key listings.
func Fingerprint(s string) string {
	sum := blake2b.Sum256([]byte(s))
	return hex.EncodeToString(sum[:12])
}
