package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hyperjump/symptomatch/internal/report"
	"github.com/ledongthuc/pdf"
)

// extractPDF returns the text layer of every page that carries meaningful
// text. A PDF whose pages are all scans needs OCR, which this package cannot
// apply to PDF pages, so it fails with ErrOCRUnavailable.
func extractPDF(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}

	var (
		parts    []string
		needsOCR bool
		numPages = r.NumPage()
	)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", i, err)
		}
		text = report.Clean(text)
		if !report.HasMeaningfulText(text) {
			needsOCR = true
			continue
		}
		parts = append(parts, text)
	}

	if len(parts) == 0 && needsOCR {
		return "", ErrOCRUnavailable
	}
	return strings.Join(parts, "\n"), nil
}
