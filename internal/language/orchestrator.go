package language

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hyperjump/symptomatch/internal/metrics"
	"go.uber.org/zap"
)

// DefaultCallTimeout bounds a single backend call.
const DefaultCallTimeout = 15 * time.Second

const (
	toEnglishInstruction       = "Translate to English. Return only the translated text."
	strictToEnglishInstruction = "Strictly translate the input to natural English. " +
		"Do not keep Gujarati/Hindi words unless they are proper nouns. Return only English text."
)

var fromEnglishInstructions = map[Code]string{
	Hindi:    "Translate to Hindi in Devanagari script. Do not use Gujarati script. Return only the translated text.",
	Gujarati: "Translate to Gujarati in Gujarati script. Return only the translated text.",
	French:   "Translate to French. Return only the translated text.",
	Spanish:  "Translate to Spanish. Return only the translated text.",
}

var scriptFixInstructions = map[Code]string{
	Hindi:    "Translate to Hindi using only Devanagari script. Do not output Gujarati script.",
	Gujarati: "Translate to Gujarati using only Gujarati script. Do not output Devanagari script.",
}

// Some models answer with a remark instead of a translation.
var metaStatements = []string{
	"already in english",
	"text is already in english",
}

// Orchestrator wraps a Backend with script checks, bounded retries, and
// graceful degradation. Every method returns usable text even when the
// backend is down.
type Orchestrator struct {
	backend Backend
	timeout time.Duration
	logger  *zap.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCallTimeout sets the deadline applied to each backend call.
func WithCallTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// NewOrchestrator creates an orchestrator. A nil backend behaves like
// NoopBackend.
func NewOrchestrator(backend Backend, opts ...Option) *Orchestrator {
	if backend == nil {
		backend = NoopBackend{}
	}
	o := &Orchestrator{
		backend: backend,
		timeout: DefaultCallTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Detect returns the language of text. Indic script is authoritative;
// romanized Hindi and Gujarati are recognized by marker words; anything else
// is sent to the backend. Unknown labels and backend failures yield English.
func (o *Orchestrator) Detect(ctx context.Context, text string) Code {
	if strings.TrimSpace(text) == "" {
		return English
	}
	if c := ScriptOf(text); c != Unrecognized {
		metrics.LanguageDetections.WithLabelValues("script", c.String()).Inc()
		return c
	}
	if c := DetectRomanized(text); c != Unrecognized {
		metrics.LanguageDetections.WithLabelValues("romanized", c.String()).Inc()
		return c
	}

	label, err := o.call(ctx, "detect", func(ctx context.Context) (string, error) {
		return o.backend.Detect(ctx, text)
	})
	if err != nil {
		return English
	}
	c := ParseCode(label)
	if c == Unrecognized {
		o.logger.Debug("unrecognized language label", zap.String("label", label))
		c = English
	}
	metrics.LanguageDetections.WithLabelValues("backend", c.String()).Inc()
	return c
}

// ToEnglish translates text from source to English. English and unrecognized
// sources are returned unchanged without a backend call. A result that still
// carries Indic script gets one corrective attempt, adopted only if it is
// non-empty and script-clean.
func (o *Orchestrator) ToEnglish(ctx context.Context, text string, source Code) string {
	if strings.TrimSpace(text) == "" || source == English || source == Unrecognized {
		return text
	}

	first, err := o.translate(ctx, "to_english", TranslateRequest{Text: text, Instruction: toEnglishInstruction})
	if err != nil || first == "" {
		return text
	}
	if isMetaStatement(first) {
		return text
	}
	if !HasIndicScript(first) {
		return first
	}

	metrics.LanguageCorrectiveRetries.WithLabelValues("indic_in_english").Inc()
	o.logger.Debug("english translation kept indic script, retrying", zap.String("source", source.String()))
	second, err := o.translate(ctx, "to_english_corrective", TranslateRequest{
		Text:        text,
		Instruction: strictToEnglishInstruction,
		Corrective:  true,
	})
	if err == nil && second != "" && !HasIndicScript(second) {
		return second
	}
	return first
}

// FromEnglish translates English text to target. For English (or an
// unrecognized target) the text is only rewritten when it unexpectedly holds
// Indic script. Hindi output written in Gujarati script, and the reverse,
// gets one corrective attempt.
func (o *Orchestrator) FromEnglish(ctx context.Context, text string, target Code) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	instruction, ok := fromEnglishInstructions[target]
	if !ok {
		if !HasIndicScript(text) {
			return text
		}
		out, err := o.translate(ctx, "cleanup_english", TranslateRequest{
			Text:        text,
			Instruction: strictToEnglishInstruction,
			Corrective:  true,
		})
		if err != nil || out == "" {
			return text
		}
		return out
	}

	first, err := o.translate(ctx, "from_english", TranslateRequest{Text: text, Instruction: instruction})
	if err != nil || first == "" {
		return text
	}
	if !wrongScript(first, target) {
		return first
	}

	metrics.LanguageCorrectiveRetries.WithLabelValues("wrong_script_" + target.String()).Inc()
	o.logger.Debug("translation used the wrong script, retrying", zap.String("target", target.String()))
	second, err := o.translate(ctx, "from_english_corrective", TranslateRequest{
		Text:        text,
		Instruction: scriptFixInstructions[target],
		Corrective:  true,
	})
	if err == nil && second != "" && !wrongScript(second, target) {
		return second
	}
	o.logger.Debug("corrective translation still used the wrong script, keeping english",
		zap.String("target", target.String()))
	return text
}

// Translate converts text between two languages through English.
func (o *Orchestrator) Translate(ctx context.Context, text string, source, target Code) string {
	if source == Unrecognized {
		source = o.Detect(ctx, text)
	}
	if source == target {
		return text
	}
	return o.FromEnglish(ctx, o.ToEnglish(ctx, text, source), target)
}

// wrongScript reports whether out is written in the other Indic script than
// the one target requires.
func wrongScript(out string, target Code) bool {
	switch target {
	case Hindi:
		return HasGujarati(out) && !HasDevanagari(out)
	case Gujarati:
		return HasDevanagari(out) && !HasGujarati(out)
	default:
		return false
	}
}

func isMetaStatement(s string) bool {
	lower := strings.ToLower(s)
	for _, m := range metaStatements {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func (o *Orchestrator) translate(ctx context.Context, op string, req TranslateRequest) (string, error) {
	return o.call(ctx, op, func(ctx context.Context) (string, error) {
		return o.backend.Translate(ctx, req)
	})
}

// call runs one backend request under the per-call deadline.
func (o *Orchestrator) call(ctx context.Context, op string, fn func(context.Context) (string, error)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	out, err := fn(ctx)
	switch {
	case errors.Is(err, ErrUnavailable):
		metrics.LanguageBackendCalls.WithLabelValues(op, metrics.OutcomeUnavailable).Inc()
		o.logger.Debug("language backend unavailable", zap.String("operation", op))
		return "", err
	case err != nil:
		metrics.LanguageBackendCalls.WithLabelValues(op, metrics.OutcomeError).Inc()
		o.logger.Warn("language backend call failed", zap.String("operation", op), zap.Error(err))
		return "", err
	}
	metrics.LanguageBackendCalls.WithLabelValues(op, metrics.OutcomeOK).Inc()
	return strings.TrimSpace(out), nil
}
