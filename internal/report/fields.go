// Package report recovers labelled fields (disease, symptoms, care advice)
// from noisy text extracted out of uploaded medical documents and builds the
// short summaries shown back to the user.
package report

import (
	"regexp"
	"strings"
)

// NotClearlyFound stands in for a field that is missing or unreadable.
const NotClearlyFound = "Not clearly found"

// Field is a labelled section of a report.
type Field int

const (
	Disease Field = iota
	Symptoms
	HomeCare
	PossibleCauses
	WhenToVisit
)

// String returns the English heading of the field.
func (f Field) String() string {
	switch f {
	case Disease:
		return "Disease"
	case Symptoms:
		return "Symptoms"
	case HomeCare:
		return "Home Care"
	case PossibleCauses:
		return "Possible Causes"
	case WhenToVisit:
		return "When to Visit Doctor"
	default:
		return "unknown"
	}
}

// AllFields lists the fields in display order.
var AllFields = []Field{Disease, Symptoms, HomeCare, PossibleCauses, WhenToVisit}

// Label synonyms per field.
var fieldLabels = map[Field][]string{
	Disease:        {"Disease Name", "Disease", "Name of the disease", "Illness", "Condition"},
	Symptoms:       {"Symptoms", "Symptom", "Common symptoms"},
	HomeCare:       {"Home Care", "Home Care Advice", "Home Management", "Home Management & Support"},
	PossibleCauses: {"Possible Causes", "Possible Cause", "Causes"},
	WhenToVisit:    {"When to Visit a Doctor", "When to Visit Doctor", "When to see a doctor"},
}

// Labels returns the synonyms recognized for f.
func Labels(f Field) []string {
	return append([]string(nil), fieldLabels[f]...)
}

var (
	controlChars  = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
	cidArtifact   = regexp.MustCompile(`(?i)\(?\s*cid\s*:\s*\d+\s*\)?`)
	fieldBoundary = regexp.MustCompile(`(?i)\b(?:Disease(?:\s*Name)?|Symptoms?|Possible\s*Causes?|` +
		`Home\s*Care(?:\s*Advice)?|Home\s*Management(?:\s*&\s*Support)?|When\s*to\s*Visit(?:\s*a)?\s*Doctor)\b`)
)

// Clean removes control characters and PDF glyph placeholders such as
// "(cid:127)", then collapses whitespace.
func Clean(text string) string {
	v := controlChars.ReplaceAllString(text, " ")
	v = cidArtifact.ReplaceAllString(v, " ")
	return collapse(v)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ExtractField returns the value following the first of labels that is
// followed by ":" or "-". The value runs up to the next known field heading
// or the end of the text. It returns "" when no label is found.
func ExtractField(text string, labels ...string) string {
	value := collapse(text)
	if value == "" || len(labels) == 0 {
		return ""
	}

	quoted := make([]string, 0, len(labels))
	for _, l := range labels {
		quoted = append(quoted, regexp.QuoteMeta(l))
	}
	labelRe, err := regexp.Compile(`(?i)(?:` + strings.Join(quoted, "|") + `)\s*[:\-]\s*`)
	if err != nil {
		return ""
	}

	for _, loc := range labelRe.FindAllStringIndex(value, -1) {
		start := loc[1]
		if start >= len(value) {
			continue
		}
		end := len(value)
		// The value holds at least one character, so boundaries right at
		// start do not count.
		for _, b := range fieldBoundary.FindAllStringIndex(value, -1) {
			if b[0] > start {
				end = b[0]
				break
			}
		}
		return strings.Trim(value[start:end], " .;,\n\t")
	}
	return ""
}

// Fields holds the fields found in a text. Missing fields are absent, and
// a labelled field whose value is OCR noise holds NotClearlyFound.
type Fields map[Field]string

// ExtractFields cleans text and looks for every known field.
func ExtractFields(text string) Fields {
	text = Clean(text)
	out := make(Fields)
	for _, f := range AllFields {
		v := ExtractField(text, fieldLabels[f]...)
		switch {
		case v == "":
		case noisy(v):
			out[f] = NotClearlyFound
		default:
			out[f] = v
		}
	}
	return out
}

// Get returns the value of f or NotClearlyFound.
func (fs Fields) Get(f Field) string {
	if v, ok := fs[f]; ok && v != "" {
		return v
	}
	return NotClearlyFound
}

// Has reports whether the label of f was found, readable or not.
func (fs Fields) Has(f Field) bool {
	return fs[f] != ""
}

// Any reports whether at least one of the given fields was found.
func (fs Fields) Any(fields ...Field) bool {
	for _, f := range fields {
		if fs.Has(f) {
			return true
		}
	}
	return false
}

// noiseRatio is the share of tokens of length two or less above which text
// is considered OCR noise.
const noiseRatio = 0.35

func noisy(text string) bool {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return false
	}
	short := 0
	for _, t := range tokens {
		if len([]rune(t)) <= 2 {
			short++
		}
	}
	return float64(short)/float64(len(tokens)) > noiseRatio
}
