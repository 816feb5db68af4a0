// Package reports turns an uploaded medical document into a localized
// answer: it extracts the text, matches it against the FAQ catalog, lays out
// the reply for the reader's language, and records the result.
package reports

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/symptomatch/internal/extract"
	"github.com/hyperjump/symptomatch/internal/language"
	"github.com/hyperjump/symptomatch/internal/metrics"
	"github.com/hyperjump/symptomatch/internal/models"
	"github.com/hyperjump/symptomatch/internal/search"
	"github.com/hyperjump/symptomatch/internal/storage"
	"github.com/hyperjump/symptomatch/pkg/utils"
)

// ErrUnsupportedFile is returned for uploads whose extension cannot be read.
var ErrUnsupportedFile = errors.New("unsupported file type")

// UnsupportedFileMessage is shown to the user for ErrUnsupportedFile.
const UnsupportedFileMessage = "Unsupported file type. Please upload PDF, PNG, JPG, JPEG, BMP, TIFF, or WEBP."

const (
	ocrMissingMessage = "OCR engine not found for image reading. " +
		"Install Tesseract OCR and set TESSERACT_CMD or add tesseract to PATH."
	unreadableMessage = "I could not read text from this file. Please upload a clear PDF/image."
	noMatchSection    = "No exact disease match found in FAQ data."

	// detectWindow is how much of the text language detection looks at.
	detectWindow = 1200
	// matchWindow is how much of the text is translated and matched.
	matchWindow = 4000
)

// Upload is one file handed in for processing.
type Upload struct {
	Name              string
	Content           []byte
	PreferredLanguage string
	ConversationID    string
	// ReportID overrides the generated report ID.
	ReportID string
}

// Processor runs the upload flow. It is safe for concurrent use.
type Processor struct {
	extractor *extract.Extractor
	engine    *search.Engine
	store     storage.Storage
	logger    *zap.Logger
}

// NewProcessor creates a processor. A nil store skips recording.
func NewProcessor(extractor *extract.Extractor, engine *search.Engine, store storage.Storage, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if extractor == nil {
		extractor = extract.NewExtractor(extract.WithLogger(logger))
	}
	return &Processor{extractor: extractor, engine: engine, store: store, logger: logger}
}

// Process answers an upload. Only ErrUnsupportedFile and storage failures
// are returned as errors; unreadable files get a localized explanation.
func (p *Processor) Process(ctx context.Context, up Upload) (*models.ReportResponse, error) {
	ext := strings.ToLower(filepath.Ext(up.Name))
	if !extract.Supported(ext) {
		metrics.ReportsProcessed.WithLabelValues("", "unsupported").Inc()
		return nil, fmt.Errorf("%s: %w", up.Name, ErrUnsupportedFile)
	}

	preferred := language.NormalizePreferred(up.PreferredLanguage)
	conversationID := up.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	text, err := p.extractor.ExtractBytes(ctx, up.Content, ext, preferred.String())
	switch {
	case errors.Is(err, extract.ErrOCRUnavailable):
		p.logger.Warn("ocr unavailable", zap.String("file", up.Name))
		return p.notice(ctx, up, conversationID, preferred, ocrMissingMessage, "ocr_unavailable")
	case err != nil:
		p.logger.Warn("extraction failed", zap.String("file", up.Name), zap.Error(err))
		return p.notice(ctx, up, conversationID, preferred, unreadableMessage, "unreadable")
	case strings.TrimSpace(text) == "":
		return p.notice(ctx, up, conversationID, preferred, unreadableMessage, "unreadable")
	}

	lang := p.engine.Language()
	detected := lang.Detect(ctx, utils.TruncateRunes(text, detectWindow))
	slice := utils.TruncateRunes(text, matchWindow)

	english := slice
	if detected.Indic() {
		if out := lang.ToEnglish(ctx, slice, detected); strings.TrimSpace(out) != "" && !sameText(out, slice) {
			english = out
		}
	}

	res, ok := p.engine.Match(english)
	if !ok && !sameText(english, slice) {
		res, ok = p.engine.Match(slice)
	}
	res, ok = p.applyOverrides(res, ok, detected, english, slice)

	target := preferred
	if target == language.Unrecognized {
		target = detected
	}

	var entry *models.FAQEntry
	if ok {
		entry = res.Entry
	}
	response, native := p.nativeLayout(ctx, detected, target, english, entry)
	if !native {
		response = p.engine.Localize(ctx, englishLayout(detected, english, text, entry), target)
	}

	rep := &models.Report{
		ID:              up.ReportID,
		ConversationID:  conversationID,
		FileName:        up.Name,
		ExtractedText:   text,
		ProcessedOutput: response,
		Language:        target.String(),
		Keyword:         res.Keyword(),
	}
	if err := p.record(ctx, rep, conversationID, up.Name, response, target); err != nil {
		return nil, err
	}

	outcome := metrics.OutcomeNoMatch
	if ok {
		outcome = metrics.OutcomeMatched
	}
	metrics.ReportsProcessed.WithLabelValues(detected.String(), outcome).Inc()
	p.logger.Info("report processed",
		zap.String("file", up.Name),
		zap.String("detected", detected.String()),
		zap.String("language", target.String()),
		zap.String("keyword", res.Keyword()),
	)

	return &models.ReportResponse{
		Response:         response,
		Language:         target.String(),
		DetectedLanguage: detected.String(),
		Matched:          ok,
		Keyword:          res.Keyword(),
		ReportID:         rep.ID,
		ConversationID:   conversationID,
	}, nil
}

// notice answers with a fixed message when no text could be read.
func (p *Processor) notice(ctx context.Context, up Upload, conversationID string, preferred language.Code, message, outcome string) (*models.ReportResponse, error) {
	target := preferred
	if target == language.Unrecognized {
		target = language.English
	}
	response := p.engine.Localize(ctx, message, target)
	if err := p.record(ctx, nil, conversationID, up.Name, response, target); err != nil {
		return nil, err
	}
	metrics.ReportsProcessed.WithLabelValues("", outcome).Inc()
	return &models.ReportResponse{
		Response:       response,
		Language:       target.String(),
		ConversationID: conversationID,
	}, nil
}

// record saves the report, when there is one, and the upload exchange.
func (p *Processor) record(ctx context.Context, rep *models.Report, conversationID, fileName, response string, lang language.Code) error {
	if p.store == nil {
		return nil
	}
	if rep != nil {
		if err := p.store.SaveReport(ctx, rep); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
	}
	return p.store.SaveExchange(ctx, &models.Exchange{
		ConversationID: conversationID,
		Message:        "[Uploaded File] " + fileName,
		Response:       response,
		Language:       lang.String(),
	})
}

// applyOverrides pins keywords that reports in a given language commonly
// name differently from the catalog.
func (p *Processor) applyOverrides(res models.MatchResult, ok bool, detected language.Code, english, slice string) (models.MatchResult, bool) {
	view := strings.ToLower(english)
	var keyword string
	switch detected {
	case language.Gujarati:
		if strings.Contains(view, "hypothyroidism") {
			keyword = "thyroid"
		}
	case language.Hindi:
		head := utils.TruncateRunes(slice, detectWindow)
		if strings.Contains(view, "pyrexia") || strings.Contains(view, "fever") ||
			strings.Contains(head, "बुखार") || strings.Contains(head, "ज्वर") {
			keyword = "fever"
		}
	}
	if keyword == "" {
		return res, ok
	}
	entry := p.engine.FindByKeyword(keyword)
	if entry == nil {
		return res, ok
	}
	if ok && res.Entry == entry {
		return res, ok
	}
	p.logger.Debug("keyword override", zap.String("keyword", keyword), zap.String("was", res.Keyword()))
	return models.MatchResult{Entry: entry}, true
}

func sameText(a, b string) bool {
	return strings.ToLower(strings.TrimSpace(a)) == strings.ToLower(strings.TrimSpace(b))
}
