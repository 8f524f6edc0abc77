package helpers

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// LinesChecksum returns the first 8 hex characters of the SHA256 of the lines
// joined with newlines. Used to tell script revisions apart in logs.
func LinesChecksum(lines []string) string {
	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])[:8]
}
