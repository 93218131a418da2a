package util

import (
	"crypto/sha256"
	"fmt"
)

// HashContent fingerprints an uploaded document as lowercase hex SHA-256.
func HashContent(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}
