package extract

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the hex-encoded SHA-256 of a source unit. Identical
// content always produces the identical digest, which makes it the key
// for the extraction cache and the store.
func Digest(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}
