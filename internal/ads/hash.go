// internal/ads/hash.go
package ads

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// UserData carries the raw identifiers attached to a conversion event.
// They are hashed before they leave the process.
type UserData struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// HashIdentifier normalizes (trim + lowercase) and SHA-256 hashes a user
// identifier, per the ad platforms' matching requirements. Empty input
// yields an empty string, not a hash of "".
func HashIdentifier(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(v))
	return hex.EncodeToString(sum[:])
}
