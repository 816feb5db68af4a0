package ranking

import (
	"github.com/hyperjump/symptomatch/internal/lexicon"
)

// QueryAnalyzer normalizes and tokenizes queries.
type QueryAnalyzer struct {
	lex *lexicon.Lexicon
}

// NewQueryAnalyzer creates a new QueryAnalyzer. A nil lexicon uses the built-in tables.
func NewQueryAnalyzer(lex *lexicon.Lexicon) *QueryAnalyzer {
	if lex == nil {
		lex = lexicon.New()
	}
	return &QueryAnalyzer{lex: lex}
}

// Analyze normalizes query and computes its token set.
func (qa *QueryAnalyzer) Analyze(query string) *AnalyzedQuery {
	text := lexicon.Normalize(query)
	return &AnalyzedQuery{
		Original: query,
		Text:     text,
		Tokens:   qa.lex.Tokenize(text),
	}
}
