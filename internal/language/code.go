// Package language detects the language of user text and translates between
// English and the supported languages through a pluggable Backend, enforcing
// the expected output script with at most one corrective retry.
package language

import "strings"

// Code is a supported language. The zero value is Unrecognized.
type Code int

const (
	Unrecognized Code = iota
	English
	Hindi
	Gujarati
	French
	Spanish
)

// String returns the ISO 639-1 code, or "" for Unrecognized.
func (c Code) String() string {
	switch c {
	case English:
		return "en"
	case Hindi:
		return "hi"
	case Gujarati:
		return "gu"
	case French:
		return "fr"
	case Spanish:
		return "es"
	default:
		return ""
	}
}

// Indic reports whether c is written in an Indic script.
func (c Code) Indic() bool {
	return c == Hindi || c == Gujarati
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(b []byte) error {
	*c = ParseCode(string(b))
	return nil
}

var aliases = map[string]Code{
	"en":       English,
	"english":  English,
	"eng":      English,
	"hi":       Hindi,
	"hindi":    Hindi,
	"hin":      Hindi,
	"hi-in":    Hindi,
	"gu":       Gujarati,
	"gujarati": Gujarati,
	"guj":      Gujarati,
	"gu-in":    Gujarati,
	"fr":       French,
	"french":   French,
	"fra":      French,
	"fr-fr":    French,
	"es":       Spanish,
	"spanish":  Spanish,
	"spa":      Spanish,
	"es-es":    Spanish,
}

// ParseCode maps a free-form detector label ("Hindi.", "gu-IN", "english
// (confident)") to a Code. Only the first word counts.
func ParseCode(label string) Code {
	fields := strings.Fields(strings.ToLower(label))
	if len(fields) == 0 {
		return Unrecognized
	}
	word := strings.Trim(fields[0], `.,:;!?()[]{}"'`)
	if c, ok := aliases[word]; ok {
		return c
	}
	return Unrecognized
}

// NormalizePreferred maps a user's preferred-language setting to a Code.
// Only en, hi, and gu are offered as response languages; "auto", empty, and
// anything else yield Unrecognized, meaning "answer in the source language".
func NormalizePreferred(pref string) Code {
	switch strings.ToLower(strings.TrimSpace(pref)) {
	case "en", "en-us", "english":
		return English
	case "hi", "hi-in", "hindi":
		return Hindi
	case "gu", "gu-in", "gujarati":
		return Gujarati
	default:
		return Unrecognized
	}
}
