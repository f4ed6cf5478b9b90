package main

import (
	"crypto/sha256"
	"fmt"
)

// generateSignature creates a short hash signature for content. Audit rows
// and log lines carry it so questions can be correlated without indexing
// raw text.
func generateSignature(content string) string {
	hash := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x", hash)[:16]
}
