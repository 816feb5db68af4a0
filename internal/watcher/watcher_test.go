package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hyperjump/symptomatch/internal/catalog"
	"github.com/hyperjump/symptomatch/internal/extract"
	"github.com/hyperjump/symptomatch/internal/fileid"
	"github.com/hyperjump/symptomatch/internal/lexicon"
	"github.com/hyperjump/symptomatch/internal/ranking"
	"github.com/hyperjump/symptomatch/internal/reports"
	"github.com/hyperjump/symptomatch/internal/search"
	"github.com/hyperjump/symptomatch/internal/storage"
	"go.uber.org/zap/zaptest"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) handle(_ context.Context, path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func TestWatcher_DebounceAndFilter(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	w := NewWatcher([]string{dir}, []string{".txt"}, rec.handle, WithDebounce(100*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	path := filepath.Join(dir, "lab.txt")
	for i := 0; i < 3; i++ {
		if err := writeFile(path, strings.Repeat("fever ", i+1)); err != nil {
			t.Fatal(err)
		}
	}
	_ = writeFile(filepath.Join(dir, "lab.txt"+AnswerSuffix), "answer")
	_ = writeFile(filepath.Join(dir, "notes.xyz"), "ignored")

	time.Sleep(500 * time.Millisecond)
	got := rec.snapshot()
	if len(got) != 1 || got[0] != path {
		t.Errorf("expected a single debounced call for lab.txt, got %v", got)
	}
}

func TestWatcher_SyncExistingFiles(t *testing.T) {
	dir := t.TempDir()
	_ = writeFile(filepath.Join(dir, "a.txt"), "hello")
	_ = writeFile(filepath.Join(dir, "a.txt"+AnswerSuffix), "done")
	_ = writeFile(filepath.Join(dir, ".hidden.txt"), "x")
	_ = writeFile(filepath.Join(dir, "ignore.xyz"), "x")

	rec := &recorder{}
	w := NewWatcher([]string{dir}, []string{".txt"}, rec.handle)
	w.SyncExistingFiles(context.Background())

	got := rec.snapshot()
	if len(got) != 1 || !strings.HasSuffix(got[0], "a.txt") {
		t.Errorf("expected only a.txt, got %v", got)
	}
}

func TestWatcher_StartCreatesMissingInbox(t *testing.T) {
	inbox := filepath.Join(t.TempDir(), "inbox", "reports")
	w := NewWatcher([]string{inbox}, nil, nil)
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if _, err := os.Stat(inbox); err != nil {
		t.Errorf("inbox should exist after Start: %v", err)
	}
	if dirs := w.Directories(); len(dirs) != 1 || dirs[0] != inbox {
		t.Errorf("Directories() = %v", dirs)
	}
	w.Stop()
}

func TestMatchExtension(t *testing.T) {
	tests := []struct {
		path       string
		extensions []string
		want       bool
	}{
		{"/a/b.pdf", []string{".pdf"}, true},
		{"/a/b.PDF", []string{"pdf"}, true},
		{"/a/b.md", []string{".txt"}, false},
		{"/a/b", nil, true},
		{"/a/b", []string{}, true},
	}
	for _, tt := range tests {
		got := matchExtension(tt.path, tt.extensions)
		if got != tt.want {
			t.Errorf("matchExtension(%q, %v) = %v, want %v", tt.path, tt.extensions, got, tt.want)
		}
	}
}

func newTestAnswerer(t *testing.T) (*Answerer, *storage.SQLiteStorage) {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	logger := zaptest.NewLogger(t)
	lex := lexicon.New()
	engine := search.NewEngine(ranking.NewIndex(lex, cat.Entries()), ranking.NewRanker(nil, lex), nil, logger)

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })

	processor := reports.NewProcessor(extract.NewExtractor(), engine, store, logger)
	return NewAnswerer(processor, store, "en", logger), store
}

func TestAnswerer_WritesAnswerOnce(t *testing.T) {
	a, store := newTestAnswerer(t)
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "lab.txt")
	content := "Disease: Fever\nSymptoms: high temperature and shivering"
	if err := writeFile(path, content); err != nil {
		t.Fatal(err)
	}

	if err := a.Answer(ctx, path); err != nil {
		t.Fatal(err)
	}
	answer, err := os.ReadFile(AnswerPath(path))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(answer), "Matched FAQ:\nDisease: Fever") {
		t.Errorf("unexpected answer: %s", answer)
	}

	rep, err := store.GetReport(ctx, fileid.ReportID([]byte(content)))
	if err != nil {
		t.Fatalf("report not stored under its content hash: %v", err)
	}
	if rep.ConversationID != fileid.InboxConversationID(dir) {
		t.Errorf("conversation = %q", rep.ConversationID)
	}

	// The same content under another name reuses the stored answer.
	copyPath := filepath.Join(dir, "copy.txt")
	_ = writeFile(copyPath, content)
	if err := a.Answer(ctx, copyPath); err != nil {
		t.Fatal(err)
	}
	if n, _ := store.CountReports(ctx); n != 1 {
		t.Errorf("reports = %d, want 1", n)
	}
	history, _ := store.ListExchanges(ctx, fileid.InboxConversationID(dir), 0)
	if len(history) != 1 {
		t.Errorf("exchanges = %d, want 1", len(history))
	}
	copyAnswer, _ := os.ReadFile(AnswerPath(copyPath))
	if string(copyAnswer) != string(answer) {
		t.Errorf("copy answer differs: %q", copyAnswer)
	}
}

func TestAnswerer_MissingFile(t *testing.T) {
	a, _ := newTestAnswerer(t)
	if err := a.Answer(context.Background(), filepath.Join(t.TempDir(), "gone.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}
