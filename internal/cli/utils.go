// Package cli provides output helpers for the symptomatch CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/symptomatch/internal/models"
	"github.com/hyperjump/symptomatch/internal/ranking"
	"github.com/hyperjump/symptomatch/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

const rule = "─────────────────────────────────────────────────────────"

// ParseFormat maps a flag value to an OutputFormat. Anything but "json" is text.
func ParseFormat(s string) OutputFormat {
	if strings.EqualFold(strings.TrimSpace(s), string(OutputJSON)) {
		return OutputJSON
	}
	return OutputText
}

// WriteMatch writes a match response, with the scoring breakdown of the
// top candidates when candidates is non-empty.
func WriteMatch(w io.Writer, resp *models.MatchResponse, candidates []ranking.Candidate, format OutputFormat) error {
	if format == OutputJSON {
		if len(candidates) == 0 {
			return writeJSON(w, resp)
		}
		return writeJSON(w, struct {
			*models.MatchResponse
			Candidates []ranking.Candidate `json:"candidates"`
		}{resp, candidates})
	}

	fmt.Fprintf(w, "\nQuery: %s (%dms)\n", resp.Query, resp.QueryTime)
	if len(resp.Tokens) > 0 {
		fmt.Fprintf(w, "Tokens: %s\n", strings.Join(resp.Tokens, " "))
	}
	if !resp.Matched || resp.Result == nil {
		fmt.Fprintln(w, "No match.")
	} else {
		e := resp.Result.Entry
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "Match: %s | Score: %d | Full symptom matches: %d\n",
			e.Title(), resp.Result.Score, resp.Result.FullMatches)
		fmt.Fprintf(w, "Symptoms: %s\n", TruncateWords(e.SymptomList(), 24))
	}
	if len(candidates) > 0 {
		fmt.Fprintln(w, rule)
		for _, c := range candidates {
			writeCandidate(w, c)
		}
	}
	fmt.Fprintln(w)
	return nil
}

func writeCandidate(w io.Writer, c ranking.Candidate) {
	fmt.Fprintf(w, "%-22s score=%-3d full=%d bonus=%d keyword_phrase=%t\n",
		utils.Truncate(c.Keyword, 22), c.Score, c.FullMatches, c.Bonus, c.KeywordPhrase)
	for _, s := range c.Symptoms {
		if s.Points == 0 {
			continue
		}
		fmt.Fprintf(w, "    +%d %s\n", s.Points, utils.Truncate(s.Phrase, 60))
	}
}

// WriteChat writes a chat answer.
func WriteChat(w io.Writer, resp *models.ChatResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, resp)
	}
	if resp.Matched {
		fmt.Fprintf(w, "[%s, matched %s]\n", resp.Language, resp.Keyword)
	} else {
		fmt.Fprintf(w, "[%s, no match]\n", resp.Language)
	}
	fmt.Fprintln(w, resp.Response)
	return nil
}

// WriteReport writes the answer for an uploaded report.
func WriteReport(w io.Writer, resp *models.ReportResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, resp)
	}
	header := fmt.Sprintf("[detected %s, answered in %s", orUnknown(resp.DetectedLanguage), resp.Language)
	if resp.Matched {
		header += ", matched " + resp.Keyword
	}
	fmt.Fprintln(w, header+"]")
	fmt.Fprintln(w, resp.Response)
	return nil
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// TruncateWords returns up to maxWords from the space-separated string.
func TruncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
