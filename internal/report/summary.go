package report

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/hyperjump/symptomatch/pkg/utils"
)

const (
	SummaryPrefix        = "Brief Summary from file:"
	NotClearlyFoundText  = "Not clearly found from uploaded text."
	uploadSectionHeading = "Text found in file:"

	uploadSnippetLen = 280
	summaryLen       = 260
)

var (
	watermarks = []*regexp.Regexp{
		regexp.MustCompile(`(?i)www\.onlinedoctranslator\.com`),
		regexp.MustCompile(`(?i)\bonlinedoctranslator\.com\b`),
		regexp.MustCompile(`(?i)\bTranslation\s+from\s+English\s+to\s+Hindi\b`),
	}
	sentenceSplit = regexp.MustCompile(`[.!?]\s+|[\n\r]+`)
	capsNoise     = regexp.MustCompile(`\b[A-Z]{2,4}\b`)
	dollarNoise   = regexp.MustCompile(`\$+\d+\s*:?`)
	headings      = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\s*(Disease\s*:)\s*`),
		regexp.MustCompile(`(?i)\s*(Symptoms?\s*:)\s*`),
		regexp.MustCompile(`(?i)\s*(Home\s*Care\s*:)\s*`),
		regexp.MustCompile(`(?i)\s*(Home\s+management\s+and\s+assistance\s*:)\s*`),
		regexp.MustCompile(`(?i)\s*(Medical\s+Report\s*:)\s*`),
		regexp.MustCompile(`(?i)\s*(Common\s+symptoms\s*:)\s*`),
		regexp.MustCompile(`(?i)\s*(Name\s+of\s+the\s+disease\s*:)\s*`),
	}
)

// UploadSection renders the fields found in text as the "Text found in
// file" block. When no field is found it adds a snippet of the raw text.
func UploadSection(text string) string {
	fields := ExtractFields(text)

	var b strings.Builder
	b.WriteString(uploadSectionHeading)
	for _, f := range []Field{Disease, Symptoms, HomeCare} {
		b.WriteString("\n" + f.String() + ": " + fields.Get(f))
	}
	if !fields.Any(Disease, Symptoms, HomeCare) {
		b.WriteString("\nSummary: " + utils.TruncateRunes(collapse(text), uploadSnippetLen))
	}
	return b.String()
}

// BriefSummary builds a short, readable digest of report text: the disease
// and symptoms when labelled, otherwise the first two sentences. Text that
// is still mostly OCR fragments after cleanup is replaced by a fixed notice.
func BriefSummary(text string) string {
	value := collapse(text)
	if value == "" {
		return SummaryPrefix + "\nNot clearly found."
	}
	for _, re := range watermarks {
		value = re.ReplaceAllString(value, " ")
	}
	value = collapse(value)

	var summary string
	fields := ExtractFields(value)
	if fields.Any(Disease, Symptoms) {
		var parts []string
		if fields.Has(Disease) {
			parts = append(parts, "Disease: "+fields[Disease])
		}
		if fields.Has(Symptoms) {
			parts = append(parts, "Symptoms: "+fields[Symptoms])
		}
		summary = strings.Join(parts, "\n")
	} else {
		summary = strings.Join(firstChunks(value, 2), " ")
		if summary == "" {
			summary = value
		}
	}

	summary = capsNoise.ReplaceAllString(summary, " ")
	summary = dollarNoise.ReplaceAllString(summary, " ")
	summary = collapse(summary)
	for _, re := range headings {
		summary = re.ReplaceAllString(summary, "\n${1} ")
	}
	summary = strings.TrimLeft(summary, "\n")

	if noisy(summary) {
		summary = NotClearlyFoundText
	}
	summary = strings.TrimRight(utils.TruncateRunes(summary, summaryLen), " ,;:.")
	return SummaryPrefix + "\n" + summary
}

func firstChunks(text string, n int) []string {
	var out []string
	for _, part := range sentenceSplit.Split(text, -1) {
		part = strings.Trim(part, " -:;,.")
		if part == "" {
			continue
		}
		out = append(out, part)
		if len(out) == n {
			break
		}
	}
	return out
}

// StripSummaryPrefix removes the "Brief Summary from file:" heading.
func StripSummaryPrefix(text string) string {
	v := strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(v, SummaryPrefix); ok {
		return strings.TrimSpace(rest)
	}
	return v
}

// HasMeaningfulText reports whether text is long enough, and has enough
// letters and digits, to be worth matching.
func HasMeaningfulText(text string) bool {
	v := strings.TrimSpace(text)
	if len([]rune(v)) < 24 {
		return false
	}
	alnum := 0
	for _, r := range v {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			alnum++
		}
	}
	return alnum >= 16
}

var medicalMarkers = []string{
	"disease", "symptom", "home care", "possible causes", "when to visit",
	"रोग", "लक्षण", "घरेलू", "कारण",
	"રોગ", "લક્ષણ", "ઘરેલુ", "સંભવિત", "કારણ",
}

// LooksMedical reports whether text mentions a report heading in English,
// Hindi, or Gujarati.
func LooksMedical(text string) bool {
	v := strings.ToLower(text)
	for _, m := range medicalMarkers {
		if strings.Contains(v, m) {
			return true
		}
	}
	return false
}
