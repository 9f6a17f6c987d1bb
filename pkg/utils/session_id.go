package utils

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// GenerateSessionID creates a human-readable save slot identifier.
// Format: {slugified prefix}-{8charHexUUID}
//
// Example:
//   - Input: prefix="My Colony"
//   - Output: "my-colony-a3f8e2b1"
//
// An empty prefix yields "session-{8charHexUUID}".
func GenerateSessionID(prefix string) string {
	slug := slugify(prefix)
	if slug == "" {
		slug = "session"
	}
	return slug + "-" + generateShortUUID()
}

// slugify lowercases the input and collapses every run of characters
// other than letters and digits into a single hyphen.
func slugify(s string) string {
	var b strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	slug := b.String()
	if len(slug) > 48 {
		slug = strings.TrimRight(slug[:48], "-")
	}
	return slug
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
