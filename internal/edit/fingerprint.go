package edit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
)

// Fingerprint returns the hex SHA-256 of content. Plans store this baseline
// and the executor re-checks it immediately before writing, so external
// modification between planning and apply surfaces as a conflict instead of
// a silent overwrite.
func Fingerprint(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// FingerprintFile reads path and fingerprints its current content.
func FingerprintFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return Fingerprint(string(data)), nil
}
