package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hyperjump/symptomatch/internal/fileid"
	"github.com/hyperjump/symptomatch/internal/reports"
	"github.com/hyperjump/symptomatch/internal/storage"
)

// Answerer writes the processed answer for an inbox file next to it as
// <name>.answer.txt. Reports are keyed by content hash, so a file that was
// already answered is not processed again.
type Answerer struct {
	processor *reports.Processor
	store     storage.Storage
	language  string
	logger    *zap.Logger
}

// NewAnswerer creates an answerer. language is the preferred answer
// language ("" follows the report). A nil store disables deduplication.
func NewAnswerer(processor *reports.Processor, store storage.Storage, language string, logger *zap.Logger) *Answerer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Answerer{processor: processor, store: store, language: language, logger: logger}
}

// AnswerPath returns the answer file for path.
func AnswerPath(path string) string {
	return path + AnswerSuffix
}

// Handle is a Handler that answers path and logs failures.
func (a *Answerer) Handle(ctx context.Context, path string) {
	if err := a.Answer(ctx, path); err != nil {
		a.logger.Warn("failed to answer inbox file", zap.String("path", path), zap.Error(err))
	}
}

// Answer processes path and writes its answer file.
func (a *Answerer) Answer(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	id := fileid.ReportID(content)
	if a.store != nil {
		existing, err := a.store.GetReport(ctx, id)
		switch {
		case err == nil:
			a.logger.Debug("inbox file already answered", zap.String("path", path), zap.String("report_id", id))
			return writeAnswer(path, existing.ProcessedOutput)
		case !errors.Is(err, storage.ErrNotFound):
			return err
		}
	}

	resp, err := a.processor.Process(ctx, reports.Upload{
		Name:              filepath.Base(path),
		Content:           content,
		PreferredLanguage: a.language,
		ConversationID:    fileid.InboxConversationID(filepath.Dir(path)),
		ReportID:          id,
	})
	if err != nil {
		return err
	}
	a.logger.Info("inbox file answered",
		zap.String("path", path),
		zap.String("keyword", resp.Keyword),
		zap.String("language", resp.Language),
	)
	return writeAnswer(path, resp.Response)
}

func writeAnswer(path, response string) error {
	if err := os.WriteFile(AnswerPath(path), []byte(response+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write answer: %w", err)
	}
	return nil
}
