// Package ranking scores FAQ catalog entries against a symptom query and
// selects the best match.
package ranking

import (
	"github.com/hyperjump/symptomatch/internal/lexicon"
	"github.com/hyperjump/symptomatch/internal/models"
)

// MatchType represents how much of a phrase the query covers.
type MatchType int

const (
	// MatchTypeNone indicates no token overlap.
	MatchTypeNone MatchType = iota
	// MatchTypePartial indicates some but not all phrase tokens are present.
	MatchTypePartial
	// MatchTypeFull indicates every phrase token is present.
	MatchTypeFull
)

// String returns a string representation of the match type.
func (m MatchType) String() string {
	switch m {
	case MatchTypeNone:
		return "none"
	case MatchTypePartial:
		return "partial"
	case MatchTypeFull:
		return "full"
	default:
		return "unknown"
	}
}

// AnalyzedQuery holds the normalized form of a query.
type AnalyzedQuery struct {
	// Original is the query as given.
	Original string
	// Text is the NFC-normalized, lowercased, trimmed query used for phrase containment.
	Text string
	// Tokens is the canonical token set of Text.
	Tokens lexicon.TokenSet
}

// Empty reports whether the query can match nothing.
func (q *AnalyzedQuery) Empty() bool {
	return q == nil || q.Text == "" || q.Tokens.Len() == 0
}

// SymptomScore is the contribution of one symptom phrase.
type SymptomScore struct {
	Phrase  string    `json:"phrase"`
	Overlap int       `json:"overlap"`
	Match   MatchType `json:"-"`
	Points  int       `json:"points"`
}

// Candidate is the full scoring breakdown of one catalog entry.
type Candidate struct {
	Entry          *models.FAQEntry `json:"-"`
	Keyword        string           `json:"keyword"`
	Position       int              `json:"position"`
	Score          int              `json:"score"`
	FullMatches    int              `json:"full_matches"`
	KeywordPhrase  bool             `json:"keyword_phrase"`
	KeywordMatch   MatchType        `json:"-"`
	KeywordOverlap int              `json:"keyword_overlap"`
	Bonus          int              `json:"bonus"`
	Symptoms       []SymptomScore   `json:"symptoms"`
}

// beats reports whether c ranks strictly above the running best
// (full matches first, then score).
func (c *Candidate) beats(bestFull, bestScore int) bool {
	if c.FullMatches != bestFull {
		return c.FullMatches > bestFull
	}
	return c.Score > bestScore
}

// Result converts the candidate to a MatchResult.
func (c *Candidate) Result() models.MatchResult {
	return models.MatchResult{
		Entry:       c.Entry,
		Score:       c.Score,
		FullMatches: c.FullMatches,
		Position:    c.Position,
	}
}
