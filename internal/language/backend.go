package language

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by a Backend that cannot serve requests, for
// example because no API key is configured.
var ErrUnavailable = errors.New("language service unavailable")

// Backend is a remote language service. Detect returns a free-form language
// label; Translate applies instruction to text and returns the result.
type Backend interface {
	Detect(ctx context.Context, text string) (string, error)
	Translate(ctx context.Context, req TranslateRequest) (string, error)
}

// TranslateRequest is one translation call.
type TranslateRequest struct {
	Text        string
	Instruction string
	// Corrective selects the stronger model used for the retry after a
	// script-contaminated first attempt.
	Corrective bool
}

// NoopBackend is a Backend for deployments without a language service.
type NoopBackend struct{}

// Detect always fails with ErrUnavailable.
func (NoopBackend) Detect(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

// Translate always fails with ErrUnavailable.
func (NoopBackend) Translate(context.Context, TranslateRequest) (string, error) {
	return "", ErrUnavailable
}
