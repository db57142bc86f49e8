package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPhoneKey returns a stable identifier for a phone number, used where the
// raw number must not appear (log fields, metrics labels).
func HashPhoneKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
