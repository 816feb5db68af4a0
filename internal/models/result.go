package models

// MatchResult is the accepted best catalog entry for a query.
type MatchResult struct {
	Entry       *FAQEntry `json:"entry"`
	Score       int       `json:"score"`
	FullMatches int       `json:"full_matches"`
	// Position is the entry's index in the catalog.
	Position int `json:"position"`
}

// Keyword returns the matched keyword, or "" for a nil result.
func (r *MatchResult) Keyword() string {
	if r == nil || r.Entry == nil {
		return ""
	}
	return r.Entry.Keyword
}

// MatchResponse is the response for a match request.
type MatchResponse struct {
	Query   string       `json:"query"`
	Matched bool         `json:"matched"`
	Result  *MatchResult `json:"result,omitempty"`
	// Tokens is the canonical token set of the query, sorted.
	Tokens    []string `json:"tokens,omitempty"`
	QueryTime int64    `json:"query_time_ms"`
}
