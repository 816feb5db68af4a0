// Package lexicon turns symptom text in any supported script into a set of
// canonical English tokens.
//
// The transliteration table is matched by substring against the whole
// lowercased text, so Hindi, Gujarati, and romanized spellings map onto the
// same English vocabulary the FAQ catalog is written in. Tables are built once
// and never mutated, so a Lexicon is safe for concurrent use.
package lexicon

import (
	"fmt"
	"os"
	"strings"

	"github.com/hyperjump/symptomatch/internal/concept"
	"gopkg.in/yaml.v3"
)

// Lexicon holds the transliteration table, stopwords, and concept rules.
type Lexicon struct {
	entries   []Entry
	stopwords map[string]struct{}
	concepts  *concept.Matcher
}

// Option configures a Lexicon.
type Option func(*Lexicon)

// WithEntries appends entries after the built-in table.
func WithEntries(entries ...Entry) Option {
	return func(l *Lexicon) {
		for _, e := range entries {
			l.addEntry(e)
		}
	}
}

// WithStopwords adds stopwords to the built-in set.
func WithStopwords(words ...string) Option {
	return func(l *Lexicon) {
		for _, w := range words {
			if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
				l.stopwords[w] = struct{}{}
			}
		}
	}
}

// WithConceptMatcher replaces the default concept rules.
func WithConceptMatcher(m *concept.Matcher) Option {
	return func(l *Lexicon) { l.concepts = m }
}

// New builds a lexicon from the built-in tables plus opts.
func New(opts ...Option) *Lexicon {
	l := &Lexicon{
		entries:   make([]Entry, 0, len(defaultEntries)),
		stopwords: make(map[string]struct{}, len(defaultStopwords)),
		concepts:  concept.NewMatcher(),
	}
	for _, e := range defaultEntries {
		l.addEntry(e)
	}
	for _, w := range defaultStopwords {
		l.stopwords[w] = struct{}{}
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Lexicon) addEntry(e Entry) {
	key := Normalize(e.Key)
	target := strings.ToLower(strings.TrimSpace(e.Target))
	if key == "" || target == "" {
		return
	}
	l.entries = append(l.entries, Entry{Key: key, Target: target})
}

// fileFormat is the on-disk shape of an extension lexicon:
//
//	entries:
//	  - key: taav
//	    target: fever
//	stopwords: [mane]
type fileFormat struct {
	Entries   []Entry  `yaml:"entries"`
	Stopwords []string `yaml:"stopwords"`
}

// LoadFile builds a lexicon from the built-in tables extended by the YAML
// file at path.
func LoadFile(path string, opts ...Option) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	all := append([]Option{WithEntries(f.Entries...), WithStopwords(f.Stopwords...)}, opts...)
	return New(all...), nil
}

// Len returns the number of transliteration entries.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// IsStopword reports whether word is ignored during tokenization.
func (l *Lexicon) IsStopword(word string) bool {
	_, ok := l.stopwords[word]
	return ok
}
