package utils

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Hash returns the hex BLAKE2b-256 of data.
func Hash(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashFields hashes fields joined by a separator that cannot appear in
// valid UTF-8, so ("ab", "c") and ("a", "bc") differ.
func HashFields(fields ...string) string {
	return Hash([]byte(strings.Join(fields, "\xff")))
}

// ETag returns a strong HTTP entity tag for the given fields.
func ETag(fields ...string) string {
	return `"` + HashFields(fields...)[:32] + `"`
}

// MatchETag reports whether an If-None-Match header value matches tag.
func MatchETag(header, tag string) bool {
	if header == "" {
		return false
	}
	if strings.TrimSpace(header) == "*" {
		return true
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == tag {
			return true
		}
	}
	return false
}
