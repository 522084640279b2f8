// Package checksum produces content digests for response validation.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// ETag returns a strong entity tag for data: the first half of the SHA-256
// digest, quoted as the ETag header requires.
func ETag(data []byte) string {
	return `"` + Sum(data)[:32] + `"`
}
