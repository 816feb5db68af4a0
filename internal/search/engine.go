// Package search answers symptom questions from the FAQ catalog: it matches
// the query, composes the English answer, and localizes it.
package search

import (
	"context"
	"strings"
	"time"

	"github.com/hyperjump/symptomatch/internal/language"
	"github.com/hyperjump/symptomatch/internal/metrics"
	"github.com/hyperjump/symptomatch/internal/models"
	"github.com/hyperjump/symptomatch/internal/ranking"
	"go.uber.org/zap"
)

// NoMatchMessage is the answer when no catalog entry clears the threshold.
const NoMatchMessage = "Sorry, this information is not available in the FAQ data."

// Engine matches queries against a prepared catalog index. It is safe for
// concurrent use.
type Engine struct {
	index  *ranking.Index
	ranker *ranking.Ranker
	lang   *language.Orchestrator
	logger *zap.Logger
}

// NewEngine creates an engine. A nil orchestrator answers in English only; a
// nil logger disables logging.
func NewEngine(index *ranking.Index, ranker *ranking.Ranker, lang *language.Orchestrator, logger *zap.Logger) *Engine {
	if ranker == nil {
		ranker = ranking.NewRanker(nil, nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if lang == nil {
		lang = language.NewOrchestrator(nil, language.WithLogger(logger))
	}
	return &Engine{index: index, ranker: ranker, lang: lang, logger: logger}
}

// Language returns the engine's translation orchestrator.
func (e *Engine) Language() *language.Orchestrator {
	return e.lang
}

// Entries returns the number of scoreable catalog entries.
func (e *Engine) Entries() int {
	return e.index.Len()
}

// FindByKeyword returns the catalog entry with the given keyword, or nil.
func (e *Engine) FindByKeyword(keyword string) *models.FAQEntry {
	return e.index.FindByKeyword(keyword)
}

// Match returns the best catalog entry for text.
func (e *Engine) Match(text string) (models.MatchResult, bool) {
	start := time.Now()
	res, ok := e.ranker.Match(text, e.index)
	metrics.MatchDuration.Observe(time.Since(start).Seconds())
	if ok {
		metrics.MatchRequests.WithLabelValues(metrics.OutcomeMatched).Inc()
	} else {
		metrics.MatchRequests.WithLabelValues(metrics.OutcomeNoMatch).Inc()
	}
	return res, ok
}

// MatchQuery runs Match and wraps the outcome with the query's tokens.
func (e *Engine) MatchQuery(query string) *models.MatchResponse {
	start := time.Now()
	resp := &models.MatchResponse{
		Query:  query,
		Tokens: e.ranker.AnalyzeQuery(query).Tokens.Sorted(),
	}
	if res, ok := e.Match(query); ok {
		resp.Matched = true
		resp.Result = &res
	}
	resp.QueryTime = time.Since(start).Milliseconds()
	return resp
}

// Explain returns the scoring breakdown of every catalog entry for query.
func (e *Engine) Explain(query string) []ranking.Candidate {
	return e.ranker.Explain(query, e.index)
}

// Compose renders the English answer for a match result.
func (e *Engine) Compose(res models.MatchResult, ok bool) string {
	if !ok || res.Entry == nil {
		return NoMatchMessage
	}
	entry := res.Entry
	return "Disease: " + entry.Title() + ". " +
		"Possible Causes: " + sentence(entry.PossibleCauses) + ". " +
		"Home Care Advice: " + sentence(entry.HomeCare) + ". " +
		"When to Visit Doctor: " + sentence(entry.WhenToVisit) + "."
}

// sentence trims a trailing period so composed answers do not double it.
func sentence(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), ".")
}

// Localize translates an English answer to target.
func (e *Engine) Localize(ctx context.Context, text string, target language.Code) string {
	return e.lang.FromEnglish(ctx, text, target)
}

// Answer matches a chat message and returns the localized answer. The
// message is matched in English first and, when that fails and translation
// changed it, in its original form. The answer follows the preferred
// language, or the message's language when none is set.
func (e *Engine) Answer(ctx context.Context, req *models.ChatRequest) *models.ChatResponse {
	message := req.Message

	source := e.lang.Detect(ctx, message)
	if language.HasDevanagari(message) {
		source = language.Hindi
	}

	english := e.lang.ToEnglish(ctx, message, source)
	res, ok := e.Match(english)
	if !ok && !sameText(english, message) {
		res, ok = e.Match(message)
	}

	target := language.NormalizePreferred(req.PreferredLanguage)
	if target == language.Unrecognized {
		target = source
	}

	e.logger.Debug("chat answer",
		zap.String("source", source.String()),
		zap.String("target", target.String()),
		zap.Bool("matched", ok),
		zap.String("keyword", res.Keyword()),
		zap.Int("score", res.Score),
	)

	return &models.ChatResponse{
		Response:       e.Localize(ctx, e.Compose(res, ok), target),
		Language:       target.String(),
		SourceLanguage: source.String(),
		Matched:        ok,
		Keyword:        res.Keyword(),
		ConversationID: req.ConversationID,
	}
}

func sameText(a, b string) bool {
	return strings.ToLower(strings.TrimSpace(a)) == strings.ToLower(strings.TrimSpace(b))
}
