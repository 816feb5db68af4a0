package ranking

import "strings"

// EntryScorer scores one prepared entry against a query.
type EntryScorer struct {
	config *ScoringConfig
}

// NewEntryScorer creates a scorer with the given configuration.
func NewEntryScorer(config *ScoringConfig) *EntryScorer {
	return &EntryScorer{config: config}
}

// Score returns the breakdown for entry p.
func (s *EntryScorer) Score(q *AnalyzedQuery, p *preparedEntry) Candidate {
	c := Candidate{
		Entry:    p.entry,
		Keyword:  p.entry.Keyword,
		Position: p.position,
		Symptoms: make([]SymptomScore, 0, len(p.symptoms)),
	}

	if p.keyword != "" && strings.Contains(q.Text, p.keyword) {
		c.KeywordPhrase = true
		c.Score += s.config.KeywordPhrasePoints
	}

	if n := p.keywordTokens.Len(); n > 0 {
		c.KeywordOverlap = p.keywordTokens.Overlap(q.Tokens)
		switch {
		case c.KeywordOverlap == n:
			c.KeywordMatch = MatchTypeFull
			c.Score += s.config.KeywordAllTokensPoints
		case c.KeywordOverlap > 0:
			c.KeywordMatch = MatchTypePartial
			c.Score += s.config.KeywordTokenPoints * c.KeywordOverlap
		}
	}

	for _, sym := range p.symptoms {
		ss := s.scoreSymptom(q, sym)
		if ss.Match == MatchTypeFull {
			c.FullMatches++
		}
		c.Score += ss.Points
		c.Symptoms = append(c.Symptoms, ss)
	}

	if c.FullMatches >= s.config.MultiSymptomMin {
		c.Bonus = s.config.MultiSymptomBonus * c.FullMatches
		c.Score += c.Bonus
	}
	return c
}

func (s *EntryScorer) scoreSymptom(q *AnalyzedQuery, sym preparedSymptom) SymptomScore {
	ss := SymptomScore{Phrase: sym.phrase}
	n := sym.tokens.Len()
	if n == 0 {
		return ss
	}
	ss.Overlap = sym.tokens.Overlap(q.Tokens)
	switch {
	case ss.Overlap == 0:
	case ss.Overlap == n:
		ss.Match = MatchTypeFull
		ss.Points = s.config.SymptomFullPoints
	default:
		ss.Match = MatchTypePartial
		ss.Points = ss.Overlap
	}
	return ss
}
