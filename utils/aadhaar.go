package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashAadhaar digests an Aadhaar number so the raw value is never stored.
func HashAadhaar(aadhaar string) string {
	sum := sha256.Sum256([]byte(aadhaar))
	return hex.EncodeToString(sum[:])
}
