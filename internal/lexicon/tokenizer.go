package lexicon

import (
	"regexp"
	"strings"
)

var asciiRun = regexp.MustCompile(`[a-z0-9]+`)

// Tokenize returns the canonical token set for text: stemmed ASCII words
// plus the stemmed targets of every transliteration key and concept rule
// found in the text.
func (l *Lexicon) Tokenize(text string) TokenSet {
	normalized := Normalize(text)
	set := make(TokenSet)
	if normalized == "" {
		return set
	}
	l.addWords(set, normalized)
	for _, target := range l.Mapped(normalized) {
		l.addWords(set, target)
	}
	return set
}

// Mapped returns the English targets contributed by transliteration keys and
// concept rules for text, in table order. Duplicates are kept.
func (l *Lexicon) Mapped(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	var out []string
	for _, e := range l.entries {
		if strings.Contains(normalized, e.Key) {
			out = append(out, e.Target)
		}
	}
	if l.concepts != nil {
		out = append(out, l.concepts.Match(normalized)...)
	}
	return out
}

// Words returns the stemmed, stopword-filtered ASCII words of text in order.
func (l *Lexicon) Words(text string) []string {
	runs := asciiRun.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(runs))
	for _, w := range runs {
		if l.IsStopword(w) {
			continue
		}
		out = append(out, Stem(w))
	}
	return out
}

func (l *Lexicon) addWords(set TokenSet, text string) {
	for _, w := range l.Words(text) {
		set.Add(w)
	}
}
