package language

import (
	"regexp"
	"strings"
	"unicode"
)

// Unicode blocks for the two Indic scripts. They are disjoint.
var (
	devanagari = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x0900, Hi: 0x097F, Stride: 1}}}
	gujarati   = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x0A80, Hi: 0x0AFF, Stride: 1}}}
)

// HasDevanagari reports whether text contains a Devanagari rune.
func HasDevanagari(text string) bool {
	return containsRange(text, devanagari)
}

// HasGujarati reports whether text contains a Gujarati rune.
func HasGujarati(text string) bool {
	return containsRange(text, gujarati)
}

// HasIndicScript reports whether text contains Devanagari or Gujarati.
func HasIndicScript(text string) bool {
	return HasDevanagari(text) || HasGujarati(text)
}

// ScriptOf returns the language implied by the script of text, checking
// Devanagari first, so mixed-script text is Hindi. It returns Unrecognized
// for text in neither script.
func ScriptOf(text string) Code {
	switch {
	case HasDevanagari(text):
		return Hindi
	case HasGujarati(text):
		return Gujarati
	default:
		return Unrecognized
	}
}

func containsRange(text string, table *unicode.RangeTable) bool {
	for _, r := range text {
		if unicode.Is(table, r) {
			return true
		}
	}
	return false
}

var latinWord = regexp.MustCompile(`[a-z]+`)

var (
	hindiMarkers = markerSet(
		"mera", "meri", "mere", "mujhe", "hai", "hain", "aur", "nahi", "kyu", "kya",
		"vajan", "baal", "jhad", "bukhar", "khansi", "dard", "pet", "ulti", "dast", "kamzori",
	)
	gujaratiMarkers = markerSet(
		"maru", "maro", "mari", "mane", "che", "ane", "vajan", "vaal", "khar", "khare",
		"taav", "khansi", "shardi", "dard", "pet", "ulti", "zhada", "thak",
	)
)

func markerSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// romanizedMinMarkers is the least number of marker words that identifies
// romanized Hindi or Gujarati.
const romanizedMinMarkers = 2

// DetectRomanized guesses whether Latin-script text is romanized Hindi or
// Gujarati by counting marker words. Gujarati needs strictly more markers than
// Hindi; ties go to Hindi.
func DetectRomanized(text string) Code {
	var hi, gu int
	for _, w := range latinWord.FindAllString(strings.ToLower(text), -1) {
		if _, ok := hindiMarkers[w]; ok {
			hi++
		}
		if _, ok := gujaratiMarkers[w]; ok {
			gu++
		}
	}
	switch {
	case gu >= romanizedMinMarkers && gu > hi:
		return Gujarati
	case hi >= romanizedMinMarkers && hi >= gu:
		return Hindi
	default:
		return Unrecognized
	}
}
