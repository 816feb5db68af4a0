// Package models defines the FAQ catalog entry, match results, API
// envelopes, and history records.
package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FAQEntry is one catalog entry. Identity is the keyword.
type FAQEntry struct {
	Keyword        string   `json:"keyword" yaml:"keyword"`
	Symptoms       []string `json:"symptoms" yaml:"symptoms"`
	PossibleCauses string   `json:"possible_causes" yaml:"possible_causes"`
	HomeCare       string   `json:"home_care" yaml:"home_care"`
	WhenToVisit    string   `json:"when_to_visit" yaml:"when_to_visit"`
}

// Valid reports whether the entry can take part in matching.
func (e *FAQEntry) Valid() bool {
	return e != nil && strings.TrimSpace(e.Keyword) != ""
}

// Title returns the keyword with each word capitalized ("high blood
// pressure" -> "High Blood Pressure").
func (e *FAQEntry) Title() string {
	if e == nil {
		return ""
	}
	return cases.Title(language.English).String(strings.TrimSpace(e.Keyword))
}

// SymptomList joins the symptom phrases with commas.
func (e *FAQEntry) SymptomList() string {
	if e == nil {
		return ""
	}
	return strings.Join(e.Symptoms, ", ")
}
