package models

import (
	"fmt"
	"strings"
)

// MatchRequest asks for the best catalog entry for a free-text query.
type MatchRequest struct {
	Query string `json:"query"`
}

// ChatRequest is one user message to be answered from the catalog.
type ChatRequest struct {
	Message           string `json:"message"`
	PreferredLanguage string `json:"preferred_language,omitempty"`
	ConversationID    string `json:"conversation_id,omitempty"`
}

// Validate checks that the message is present.
func (r *ChatRequest) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return fmt.Errorf("message cannot be empty")
	}
	return nil
}

// ChatResponse is the localized answer to a ChatRequest.
type ChatResponse struct {
	Response       string `json:"response"`
	Language       string `json:"language"`
	SourceLanguage string `json:"source_language"`
	Matched        bool   `json:"matched"`
	Keyword        string `json:"keyword,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	ExchangeID     string `json:"exchange_id,omitempty"`
}

// ReportResponse is the localized answer for an uploaded report.
type ReportResponse struct {
	Response         string `json:"response"`
	Language         string `json:"language"`
	DetectedLanguage string `json:"detected_language,omitempty"`
	Matched          bool   `json:"matched"`
	Keyword          string `json:"keyword,omitempty"`
	ReportID         string `json:"report_id,omitempty"`
	ConversationID   string `json:"conversation_id,omitempty"`
}

// TextRequest carries free text for detection or field extraction.
type TextRequest struct {
	Text string `json:"text"`
}

// TranslationRequest asks for text to be translated. An empty source is
// detected.
type TranslationRequest struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
	Target string `json:"target"`
}

// ExtractResponse holds the report fields found in a text.
type ExtractResponse struct {
	Fields        map[string]string `json:"fields"`
	UploadSection string            `json:"upload_section"`
	Summary       string            `json:"summary"`
}
