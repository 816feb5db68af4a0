// Package fileid derives deterministic IDs for files dropped into an inbox.
package fileid

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
)

const (
	reportPrefix = "report:"
	inboxPrefix  = "inbox:"
)

// ReportID returns a stable report ID for the given file content. The same
// bytes always yield the same ID, whatever the file is called.
func ReportID(content []byte) string {
	hash := sha256.Sum256(content)
	return reportPrefix + hex.EncodeToString(hash[:])
}

// InboxConversationID returns the conversation that collects every report
// dropped into dir.
func InboxConversationID(dir string) string {
	normalized := filepath.Clean(dir)
	hash := sha256.Sum256([]byte(normalized))
	return inboxPrefix + hex.EncodeToString(hash[:16])
}
