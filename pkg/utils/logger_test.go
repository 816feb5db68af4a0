package utils

import (
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("debug mode returns development logger", func(t *testing.T) {
		logger, err := NewLogger(true)
		if err != nil {
			t.Fatalf("NewLogger(true) error: %v", err)
		}
		if logger == nil {
			t.Fatal("NewLogger(true) returned nil logger")
		}
		_ = logger.Sync()
	})

	t.Run("production mode returns production logger", func(t *testing.T) {
		logger, err := NewLogger(false)
		if err != nil {
			t.Fatalf("NewLogger(false) error: %v", err)
		}
		if logger == nil {
			t.Fatal("NewLogger(false) returned nil logger")
		}
		_ = logger.Sync()
	})
}

func TestNewLoggerLevel(t *testing.T) {
	for _, level := range []string{"", "debug", "warn"} {
		logger, err := NewLoggerLevel(level)
		if err != nil {
			t.Fatalf("NewLoggerLevel(%q) error: %v", level, err)
		}
		_ = logger.Sync()
	}
	if logger, err := NewLoggerLevel("warn"); err == nil && logger.Core().Enabled(-1) {
		t.Error("warn logger should not enable debug")
	}
	if _, err := NewLoggerLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
