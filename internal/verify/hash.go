package verify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Hasher derives the deterministic subject pseudonym used everywhere a
// PESEL would otherwise appear: store keys, audit events, API responses.
// The key must stay stable across deployments or cached results and audit
// trails lose their linkage.
type Hasher struct {
	key []byte
}

func NewHasher(key []byte) *Hasher {
	return &Hasher{key: key}
}

// SubjectHash returns the lowercase hex HMAC-SHA256 of the input.
func (h *Hasher) SubjectHash(input string) string {
	mac := hmac.New(sha256.New, h.key)
	mac.Write([]byte(input))
	return hex.EncodeToString(mac.Sum(nil))
}
