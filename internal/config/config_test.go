package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperjump/symptomatch/internal/language"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
  request_timeout: 30s
storage:
  database_path: "./history.db"
language:
  call_timeout: 5s
  redis:
    addr: "localhost:6379"
scoring:
  accept_threshold: 5
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Server.RequestTimeout != 30*time.Second {
		t.Errorf("request_timeout = %v", cfg.Server.RequestTimeout)
	}
	if cfg.Language.CallTimeout != 5*time.Second {
		t.Errorf("call_timeout = %v", cfg.Language.CallTimeout)
	}
	if cfg.Language.Redis.Addr != "localhost:6379" || cfg.Language.Redis.TTL != 24*time.Hour {
		t.Errorf("unexpected redis config: %+v", cfg.Language.Redis)
	}
	if cfg.Scoring.AcceptThreshold != 5 || cfg.Scoring.KeywordPhrasePoints != 6 {
		t.Errorf("scoring defaults not merged: %+v", cfg.Scoring)
	}
	if cfg.Storage.DatabasePath != filepath.Join(dir, "history.db") {
		t.Errorf("database_path = %s", cfg.Storage.DatabasePath)
	}
	if cfg.Catalog.Path != "" {
		t.Errorf("catalog path should stay empty for the bundled catalog, got %q", cfg.Catalog.Path)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_expandPathDotSlashRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
catalog:
  path: "./data/faqs.yaml"
  lexicon_path: "./data/lexicon.yaml"
intake:
  inbox_dirs: ["./inbox"]
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "data", "faqs.yaml"); cfg.Catalog.Path != want {
		t.Errorf("catalog path = %s, want %s", cfg.Catalog.Path, want)
	}
	if want := filepath.Join(dir, "data", "lexicon.yaml"); cfg.Catalog.LexiconPath != want {
		t.Errorf("lexicon path = %s, want %s", cfg.Catalog.LexiconPath, want)
	}
	if len(cfg.Intake.InboxDirs) != 1 || cfg.Intake.InboxDirs[0] != filepath.Join(dir, "inbox") {
		t.Errorf("inbox dirs = %v", cfg.Intake.InboxDirs)
	}
}

func TestLoad_errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	_ = os.WriteFile(path, []byte("server: [unclosed"), 0600)
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("default server: got %+v", cfg.Server)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("default log level: got %s", cfg.LogLevel)
	}
	if cfg.Language.APIKeyEnv != "GROQ_API_KEY" {
		t.Errorf("default api key env: got %s", cfg.Language.APIKeyEnv)
	}
	if cfg.Language.PrimaryModel != language.DefaultPrimaryModel || cfg.Language.CorrectiveModel != language.DefaultCorrectiveModel {
		t.Errorf("default models: got %s / %s", cfg.Language.PrimaryModel, cfg.Language.CorrectiveModel)
	}
	if cfg.Language.CallTimeout != language.DefaultCallTimeout {
		t.Errorf("default call timeout: got %v", cfg.Language.CallTimeout)
	}
	if cfg.Scoring.AcceptThreshold != 3 {
		t.Errorf("default threshold: got %d", cfg.Scoring.AcceptThreshold)
	}
	if len(cfg.Intake.Extensions) != 12 || cfg.Intake.Extensions[0] != ".pdf" {
		t.Errorf("intake extensions: got %v", cfg.Intake.Extensions)
	}
}

func TestLanguageConfig_APIKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	l := &LanguageConfig{APIKeyEnv: "GROQ_API_KEY"}
	if l.APIKey() != "" {
		t.Error("expected empty key")
	}

	t.Setenv("OPENAI_API_KEY", " sk-fallback ")
	if got := l.APIKey(); got != "sk-fallback" {
		t.Errorf("fallback key = %q", got)
	}

	t.Setenv("GROQ_API_KEY", "gsk-primary")
	if got := l.APIKey(); got != "gsk-primary" {
		t.Errorf("primary key = %q", got)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saved.yaml")
	cfg := &Config{
		Server:  ServerConfig{Host: "localhost", Port: 9090},
		Storage: StorageConfig{DatabasePath: "/tmp/db"},
	}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("loaded port: got %d", loaded.Server.Port)
	}
}
