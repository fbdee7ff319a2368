package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomToken returns a URL-safe hex token with byteLen bytes of entropy.
// Used for single-use invitation tokens.
func RandomToken(byteLen int) string {
	b := make([]byte, byteLen)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
