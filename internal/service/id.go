package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// newID builds a human-legible record id: prefix, creation time in unix
// milliseconds, and a short random suffix for uniqueness within the same
// millisecond.
func newID(prefix string) string {
	buf := make([]byte, 2)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(buf))
}
