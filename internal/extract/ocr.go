package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// OCR recognizes text in an image. lang is a user language code ("en",
// "hi", "gu" or ""); native asks for the native-script model to be preferred.
type OCR interface {
	Recognize(ctx context.Context, image []byte, lang string, native bool) (string, error)
}

// Tesseract runs the tesseract command line tool.
type Tesseract struct {
	cmd string

	once      sync.Once
	available map[string]bool
}

// NewTesseract locates the tesseract binary: the explicit path if given, then
// $TESSERACT_CMD, then $PATH. It returns ErrOCRUnavailable when none exists.
func NewTesseract(path string) (*Tesseract, error) {
	for _, candidate := range []string{path, os.Getenv("TESSERACT_CMD")} {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if _, err := os.Stat(candidate); err == nil {
			return &Tesseract{cmd: candidate}, nil
		}
	}
	if found, err := exec.LookPath("tesseract"); err == nil {
		return &Tesseract{cmd: found}, nil
	}
	return nil, ErrOCRUnavailable
}

// Recognize feeds image to tesseract on stdin and returns stdout.
func (t *Tesseract) Recognize(ctx context.Context, image []byte, lang string, native bool) (string, error) {
	model := t.model(ctx, lang, native)
	text, err := t.run(ctx, image, model, "6")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) != "" {
		return text, nil
	}
	return t.run(ctx, image, model, "3")
}

func (t *Tesseract) run(ctx context.Context, image []byte, model, psm string) (string, error) {
	cmd := exec.CommandContext(ctx, t.cmd, "stdin", "stdout", "-l", model, "--oem", "3", "--psm", psm)
	cmd.Stdin = bytes.NewReader(image)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract (%s): %w: %s", model, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// model picks the tesseract language: the native model (with English) when
// asked for and installed, otherwise English.
func (t *Tesseract) model(ctx context.Context, lang string, native bool) string {
	t.once.Do(func() { t.available = t.languages(ctx) })
	return resolveModel(lang, native, t.available)
}

func (t *Tesseract) languages(ctx context.Context) map[string]bool {
	out, err := exec.CommandContext(ctx, t.cmd, "--list-langs").Output()
	langs := make(map[string]bool)
	if err != nil {
		return langs
	}
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		if line != "" && !strings.Contains(line, " ") {
			langs[line] = true
		}
	}
	return langs
}

var tesseractModels = map[string]string{"en": "eng", "hi": "hin", "gu": "guj"}

func resolveModel(lang string, native bool, available map[string]bool) string {
	preferred := tesseractModels[strings.ToLower(strings.TrimSpace(lang))]
	if native && (preferred == "hin" || preferred == "guj") && available[preferred] {
		if available["eng"] {
			return preferred + "+eng"
		}
		return preferred
	}
	if available["eng"] || preferred == "" {
		return "eng"
	}
	return preferred
}
