// Package hash fingerprints entity payloads for content-addressed dedup.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ShortLen is the display length of a fingerprint prefix used in
// human-readable contexts. Dedup comparisons always use the full digest.
const ShortLen = 12

// Fingerprint returns the full SHA-256 hex digest of the canonical JSON
// encoding of data. encoding/json emits map keys in sorted order, so two
// payloads with the same fields and values hash identically regardless of
// construction order.
func Fingerprint(data map[string]any) (string, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// Short returns the display form of a fingerprint.
func Short(fp string) string {
	if len(fp) <= ShortLen {
		return fp
	}
	return fp[:ShortLen]
}
