package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Key builds the canonical composite string for a logical request, e.g.
// Key("search", "q=foo", "hl=en", "gl=US") -> "search|q=foo|hl=en|gl=US".
// Identical logical queries always produce the same composite and therefore
// the same storage slot.
func Key(domain string, params ...string) string {
	if len(params) == 0 {
		return domain
	}
	return domain + "|" + strings.Join(params, "|")
}

// hashKey derives the on-disk filename for a composite key. The hash is a
// one-way lookup token and is never reversed.
func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
