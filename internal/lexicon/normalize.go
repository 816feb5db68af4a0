package lexicon

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns text in NFC, lowercased and trimmed. NFC folds the
// precomposed and decomposed nukta spellings (e.g. वज़न) onto one form.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(text)))
}

// Stem strips the first applicable suffix from token. A suffix applies only
// when the remaining stem is longer than two characters, so short words such
// as "bus" or "red" are left alone.
func Stem(token string) string {
	t := strings.ToLower(strings.TrimSpace(token))
	for _, suffix := range suffixes {
		if strings.HasSuffix(t, suffix) && len(t) > len(suffix)+2 {
			return t[:len(t)-len(suffix)]
		}
	}
	return t
}
