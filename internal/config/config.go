// Package config provides configuration loading and structs for the
// symptomatch server and CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/symptomatch/internal/ranking"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool                  `yaml:"debug"`
	LogLevel string                `yaml:"log_level"`
	Server   ServerConfig          `yaml:"server"`
	Storage  StorageConfig         `yaml:"storage"`
	Catalog  CatalogConfig         `yaml:"catalog"`
	Language LanguageConfig        `yaml:"language"`
	Scoring  ranking.ScoringConfig `yaml:"scoring"`
	Intake   IntakeConfig          `yaml:"intake"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes"`
}

// StorageConfig holds the history database path.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// CatalogConfig points at the FAQ catalog and an optional lexicon override.
// An empty catalog path uses the bundled catalog.
type CatalogConfig struct {
	Path        string `yaml:"path"`
	LexiconPath string `yaml:"lexicon_path"`
}

// LanguageConfig holds the translation backend settings.
type LanguageConfig struct {
	BaseURL         string        `yaml:"base_url"`
	APIKeyEnv       string        `yaml:"api_key_env"`
	PrimaryModel    string        `yaml:"primary_model"`
	CorrectiveModel string        `yaml:"corrective_model"`
	CallTimeout     time.Duration `yaml:"call_timeout"`
	CacheSize       int           `yaml:"cache_size"`
	Redis           RedisConfig   `yaml:"redis"`
}

// RedisConfig enables the shared translation cache when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
	Prefix   string        `yaml:"prefix"`
}

// IntakeConfig holds report intake settings: inbox directories watched for
// dropped files and the OCR engine.
type IntakeConfig struct {
	InboxDirs      []string      `yaml:"inbox_dirs"`
	Extensions     []string      `yaml:"extensions"`
	AnswerLanguage string        `yaml:"answer_language"`
	Debounce       time.Duration `yaml:"debounce"`
	TesseractCmd   string        `yaml:"tesseract_cmd"`
}

// fallbackKeyEnv is consulted when the configured key variable is empty.
const fallbackKeyEnv = "OPENAI_API_KEY"

// APIKey returns the backend API key from the environment.
func (l *LanguageConfig) APIKey() string {
	if key := strings.TrimSpace(os.Getenv(l.APIKeyEnv)); key != "" {
		return key
	}
	return strings.TrimSpace(os.Getenv(fallbackKeyEnv))
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	if cfg.Catalog.Path != "" {
		cfg.Catalog.Path = expandPath(cfg.Catalog.Path, configDir)
	}
	if cfg.Catalog.LexiconPath != "" {
		cfg.Catalog.LexiconPath = expandPath(cfg.Catalog.LexiconPath, configDir)
	}
	for i := range cfg.Intake.InboxDirs {
		cfg.Intake.InboxDirs[i] = expandPath(cfg.Intake.InboxDirs[i], configDir)
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
