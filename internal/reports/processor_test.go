package reports

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hyperjump/symptomatch/internal/catalog"
	"github.com/hyperjump/symptomatch/internal/extract"
	"github.com/hyperjump/symptomatch/internal/language"
	"github.com/hyperjump/symptomatch/internal/lexicon"
	"github.com/hyperjump/symptomatch/internal/ranking"
	"github.com/hyperjump/symptomatch/internal/search"
	"github.com/hyperjump/symptomatch/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// prefixBackend translates Indic text to a fixed English string and prefixes
// everything else with a Gujarati marker.
type prefixBackend struct {
	english string
}

func (b *prefixBackend) Detect(context.Context, string) (string, error) {
	return "", language.ErrUnavailable
}

func (b *prefixBackend) Translate(_ context.Context, req language.TranslateRequest) (string, error) {
	if language.HasIndicScript(req.Text) {
		return b.english, nil
	}
	return "અનુવાદ: " + req.Text, nil
}

func newTestProcessor(t *testing.T, backend language.Backend) (*Processor, *storage.SQLiteStorage) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	lex := lexicon.New()
	orch := language.NewOrchestrator(backend, language.WithLogger(logger), language.WithCallTimeout(time.Second))
	engine := search.NewEngine(ranking.NewIndex(lex, cat.Entries()), ranking.NewRanker(nil, lex), orch, logger)

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return NewProcessor(extract.NewExtractor(extract.WithLogger(logger)), engine, store, logger), store
}

func TestProcess_Unsupported(t *testing.T) {
	p, _ := newTestProcessor(t, nil)
	_, err := p.Process(context.Background(), Upload{Name: "setup.exe", Content: []byte("MZ")})
	assert.True(t, errors.Is(err, ErrUnsupportedFile))
}

func TestProcess_EnglishReport(t *testing.T) {
	ctx := context.Background()
	p, store := newTestProcessor(t, nil)

	resp, err := p.Process(ctx, Upload{
		Name:    "lab.txt",
		Content: []byte("Disease: Fever\nSymptoms: high temperature and shivering\nHome Care: rest"),
	})
	require.NoError(t, err)

	assert.True(t, resp.Matched)
	assert.Equal(t, "fever", resp.Keyword)
	assert.Equal(t, "en", resp.Language)
	assert.Equal(t, "en", resp.DetectedLanguage)
	assert.True(t, strings.HasPrefix(resp.Response,
		"Text found in file:\nDisease: Fever\nSymptoms: high temperature and shivering\nHome Care: rest\n\n"+
			"Matched FAQ:\nDisease: Fever\nPossible Causes: "), resp.Response)

	saved, err := store.GetReport(ctx, resp.ReportID)
	require.NoError(t, err)
	assert.Equal(t, "lab.txt", saved.FileName)
	assert.Equal(t, resp.Response, saved.ProcessedOutput)
	assert.Equal(t, "fever", saved.Keyword)

	history, err := store.ListExchanges(ctx, resp.ConversationID, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "[Uploaded File] lab.txt", history[0].Message)
}

func TestProcess_NoMatch(t *testing.T) {
	p, _ := newTestProcessor(t, nil)
	resp, err := p.Process(context.Background(), Upload{
		Name:    "invoice.md",
		Content: []byte("Invoice number 42 for office chairs and desks"),
	})
	require.NoError(t, err)
	assert.False(t, resp.Matched)
	assert.True(t, strings.HasSuffix(resp.Response, "Matched FAQ:\n"+noMatchSection), resp.Response)
	assert.Contains(t, resp.Response, "Summary: Invoice number 42")
}

func TestProcess_Unreadable(t *testing.T) {
	ctx := context.Background()

	t.Run("ocr missing", func(t *testing.T) {
		p, store := newTestProcessor(t, nil)
		resp, err := p.Process(ctx, Upload{Name: "scan.PNG", Content: []byte{0x89, 'P', 'N', 'G'}, ConversationID: "c1"})
		require.NoError(t, err)
		assert.Equal(t, ocrMissingMessage, resp.Response)
		assert.Equal(t, "en", resp.Language)
		assert.Equal(t, "c1", resp.ConversationID)
		assert.False(t, resp.Matched)

		n, _ := store.CountReports(ctx)
		assert.Zero(t, n)
		history, _ := store.ListExchanges(ctx, "c1", 0)
		assert.Len(t, history, 1)
	})

	t.Run("empty file", func(t *testing.T) {
		p, _ := newTestProcessor(t, &prefixBackend{})
		resp, err := p.Process(ctx, Upload{Name: "blank.txt", Content: []byte("  \n "), PreferredLanguage: "Gujarati"})
		require.NoError(t, err)
		assert.Equal(t, "gu", resp.Language)
		assert.Equal(t, "અનુવાદ: "+unreadableMessage, resp.Response)
	})
}

func TestProcess_HindiReport(t *testing.T) {
	ctx := context.Background()
	content := []byte("रोग: बुखार लक्षण: तेज़ बुखार और ठंड लगना")

	t.Run("hindi reader", func(t *testing.T) {
		p, _ := newTestProcessor(t, nil)
		resp, err := p.Process(ctx, Upload{Name: "report.txt", Content: content})
		require.NoError(t, err)

		assert.Equal(t, "hi", resp.DetectedLanguage)
		assert.Equal(t, "hi", resp.Language)
		assert.Equal(t, "fever", resp.Keyword)
		assert.True(t, strings.HasPrefix(resp.Response, "फ़ाइल का संक्षिप्त सार:\nरोग: बुखार"), resp.Response)
		assert.Contains(t, resp.Response, "\n\nमिलान किया गया FAQ:\nरोग: Fever\nलक्षण: high temperature")
	})

	t.Run("gujarati reader", func(t *testing.T) {
		p, _ := newTestProcessor(t, nil)
		resp, err := p.Process(ctx, Upload{Name: "report.txt", Content: content, PreferredLanguage: "gu"})
		require.NoError(t, err)

		assert.Equal(t, "gu", resp.Language)
		assert.True(t, strings.HasPrefix(resp.Response, "ફાઇલનો સંક્ષિપ્ત સાર:\n"), resp.Response)
		assert.Contains(t, resp.Response, "મેળવાયેલ FAQ:\nરોગ: તાવ\n")
	})
}

func TestProcess_GujaratiReport(t *testing.T) {
	ctx := context.Background()
	content := []byte("નિદાન: હાઇપોથાઇરોડિઝમ, થાક")
	backend := &prefixBackend{english: "Diagnosis: hypothyroidism, fatigue"}

	t.Run("gujarati reader", func(t *testing.T) {
		p, _ := newTestProcessor(t, backend)
		resp, err := p.Process(ctx, Upload{Name: "thyroid.txt", Content: content})
		require.NoError(t, err)

		assert.Equal(t, "gu", resp.DetectedLanguage)
		assert.Equal(t, "thyroid", resp.Keyword)
		assert.True(t, strings.HasPrefix(resp.Response,
			"રોગ: થાયરોઇડની તકલીફ\nસમજૂતી: અનુવાદ: Diagnosis: hypothyroidism, fatigue\nલક્ષણો: અનુવાદ: "), resp.Response)
		assert.Contains(t, resp.Response, "\nડૉક્ટરને ક્યારે મળવું: અનુવાદ: ")
	})

	t.Run("english reader", func(t *testing.T) {
		p, _ := newTestProcessor(t, backend)
		resp, err := p.Process(ctx, Upload{Name: "thyroid.txt", Content: content, PreferredLanguage: "en"})
		require.NoError(t, err)

		assert.Equal(t, "en", resp.Language)
		assert.True(t, strings.HasPrefix(resp.Response,
			"Brief Summary from file:\nDiagnosis: hypothyroidism, fatigue\n\nMatched FAQ:\nDisease: Thyroid\n"), resp.Response)
	})
}

func TestGujaratiDiseaseName(t *testing.T) {
	p, _ := newTestProcessor(t, &prefixBackend{})
	ctx := context.Background()

	assert.Equal(t, "ઉચ્ચ રક્તચાપ", p.gujaratiDiseaseName(ctx, faqFields{keyword: "High Blood Pressure", disease: "High Blood Pressure"}))
	assert.Equal(t, "અનુવાદ: Hair Fall", p.gujaratiDiseaseName(ctx, faqFields{keyword: "hair fall", disease: "Hair Fall"}))
}
