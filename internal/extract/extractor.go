// Package extract pulls raw text out of uploaded medical reports: PDFs with a
// text layer, Office documents, plain text, and images through an OCR engine.
package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/symptomatch/internal/report"
	"go.uber.org/zap"
)

var (
	// ErrUnsupported is returned for file types that cannot hold a report.
	ErrUnsupported = errors.New("unsupported file type")
	// ErrOCRUnavailable is returned when reading the file needs an OCR engine
	// and none is installed.
	ErrOCRUnavailable = errors.New("ocr engine not found")
)

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".bmp": true,
	".tif": true, ".tiff": true, ".webp": true,
}

var documentExtensions = map[string]bool{
	".pdf": true, ".docx": true, ".xlsx": true, ".txt": true, ".md": true,
}

// Supported reports whether ext (with leading dot, any case) can be read.
func Supported(ext string) bool {
	ext = strings.ToLower(ext)
	return imageExtensions[ext] || documentExtensions[ext]
}

// IsImage reports whether ext needs OCR.
func IsImage(ext string) bool {
	return imageExtensions[strings.ToLower(ext)]
}

// Extractor extracts report text from files.
type Extractor struct {
	ocr    OCR
	logger *zap.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithOCR sets the engine used for images. Without one, images fail with
// ErrOCRUnavailable.
func WithOCR(ocr OCR) Option {
	return func(e *Extractor) { e.ocr = ocr }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExtractor returns a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract reads the file at path and returns its cleaned text. lang is the
// user's preferred language and only steers OCR.
func (e *Extractor) Extract(ctx context.Context, path, lang string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return e.ExtractBytes(ctx, content, filepath.Ext(path), lang)
}

// ExtractBytes extracts text from content based on the given extension.
// ext should include the leading dot (e.g. ".pdf"). The result has control
// characters and PDF glyph placeholders removed and whitespace collapsed.
func (e *Extractor) ExtractBytes(ctx context.Context, content []byte, ext, lang string) (string, error) {
	ext = strings.ToLower(ext)
	if !Supported(ext) {
		return "", fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}

	var (
		text string
		err  error
	)
	switch {
	case ext == ".pdf":
		text, err = extractPDF(content)
	case ext == ".docx":
		text, err = extractDOCX(content)
	case ext == ".xlsx":
		text, err = extractExcel(content)
	case IsImage(ext):
		text, err = e.extractImage(ctx, content, lang)
	default:
		text, err = extractPlain(content)
	}
	if err != nil {
		return "", err
	}
	return report.Clean(text), nil
}

// extractImage runs OCR with the preferred language first, then with Hindi
// and Gujarati models, and keeps the first result that reads like a report.
func (e *Extractor) extractImage(ctx context.Context, content []byte, lang string) (string, error) {
	if e.ocr == nil {
		return "", ErrOCRUnavailable
	}

	attempts := []struct {
		lang   string
		native bool
	}{{lang, false}, {"hi", true}, {"gu", true}}

	var results []string
	for _, a := range attempts {
		text, err := e.ocr.Recognize(ctx, content, a.lang, a.native)
		if err != nil {
			if errors.Is(err, ErrOCRUnavailable) || ctx.Err() != nil {
				return "", err
			}
			e.logger.Debug("ocr attempt failed", zap.String("lang", a.lang), zap.Error(err))
			continue
		}
		text = report.Clean(text)
		if report.HasMeaningfulText(text) && report.LooksMedical(text) {
			return text, nil
		}
		results = append(results, text)
	}
	for _, t := range results {
		if t != "" {
			return t, nil
		}
	}
	return "", nil
}
