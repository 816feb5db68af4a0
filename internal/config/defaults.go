package config

import (
	"time"

	"github.com/hyperjump/symptomatch/internal/language"
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 60 * time.Second
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = 20 << 20
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/symptomatch/data/history.db"
	}
	if cfg.Language.BaseURL == "" {
		cfg.Language.BaseURL = language.DefaultBaseURL
	}
	if cfg.Language.APIKeyEnv == "" {
		cfg.Language.APIKeyEnv = "GROQ_API_KEY"
	}
	if cfg.Language.PrimaryModel == "" {
		cfg.Language.PrimaryModel = language.DefaultPrimaryModel
	}
	if cfg.Language.CorrectiveModel == "" {
		cfg.Language.CorrectiveModel = language.DefaultCorrectiveModel
	}
	if cfg.Language.CallTimeout == 0 {
		cfg.Language.CallTimeout = language.DefaultCallTimeout
	}
	if cfg.Language.CacheSize == 0 {
		cfg.Language.CacheSize = 2048
	}
	if cfg.Language.Redis.TTL == 0 {
		cfg.Language.Redis.TTL = 24 * time.Hour
	}
	cfg.Scoring.ApplyDefaults()
	if cfg.Intake.Extensions == nil {
		cfg.Intake.Extensions = []string{".pdf", ".docx", ".xlsx", ".txt", ".md", ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp"}
	}
	if cfg.Intake.Debounce == 0 {
		cfg.Intake.Debounce = 400 * time.Millisecond
	}
}
