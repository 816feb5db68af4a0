package ranking

import (
	"github.com/hyperjump/symptomatch/internal/lexicon"
	"github.com/hyperjump/symptomatch/internal/models"
)

// Ranker picks the best catalog entry for a query. It holds no per-query
// state and is safe for concurrent use.
type Ranker struct {
	config   *ScoringConfig
	analyzer *QueryAnalyzer
	scorer   *EntryScorer
}

// NewRanker creates a new Ranker. A nil config uses DefaultScoringConfig and
// a nil lexicon uses the built-in tables.
func NewRanker(config *ScoringConfig, lex *lexicon.Lexicon) *Ranker {
	if config == nil {
		config = DefaultScoringConfig()
	}
	config.ApplyDefaults()

	return &Ranker{
		config:   config,
		analyzer: NewQueryAnalyzer(lex),
		scorer:   NewEntryScorer(config),
	}
}

// AnalyzeQuery normalizes and tokenizes a query string.
func (r *Ranker) AnalyzeQuery(query string) *AnalyzedQuery {
	return r.analyzer.Analyze(query)
}

// Match returns the best entry for query and true, or false when nothing
// clears the acceptance threshold. Ranking compares full symptom matches
// first, then total score; ties keep the earlier catalog entry.
func (r *Ranker) Match(query string, idx *Index) (models.MatchResult, bool) {
	return r.MatchAnalyzed(r.analyzer.Analyze(query), idx)
}

// MatchAnalyzed is Match for an already analyzed query.
func (r *Ranker) MatchAnalyzed(q *AnalyzedQuery, idx *Index) (models.MatchResult, bool) {
	if q.Empty() || idx.Len() == 0 {
		return models.MatchResult{}, false
	}

	var (
		best      *Candidate
		bestFull  int
		bestScore int
	)
	for i := range idx.entries {
		c := r.scorer.Score(q, &idx.entries[i])
		if c.beats(bestFull, bestScore) {
			cand := c
			best = &cand
			bestFull = c.FullMatches
			bestScore = c.Score
		}
	}

	if best == nil || bestScore < r.config.AcceptThreshold {
		return models.MatchResult{}, false
	}
	return best.Result(), true
}

// Explain returns the scoring breakdown of every scoreable entry in catalog
// order. It returns nil for an empty query.
func (r *Ranker) Explain(query string, idx *Index) []Candidate {
	q := r.analyzer.Analyze(query)
	if q.Empty() || idx.Len() == 0 {
		return nil
	}
	out := make([]Candidate, 0, idx.Len())
	for i := range idx.entries {
		out = append(out, r.scorer.Score(q, &idx.entries[i]))
	}
	return out
}

// Threshold returns the acceptance threshold.
func (r *Ranker) Threshold() int {
	return r.config.AcceptThreshold
}
