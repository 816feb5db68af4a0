package models

import "time"

// Exchange is one answered message in a conversation.
type Exchange struct {
	ID             string    `json:"id" db:"id"`
	ConversationID string    `json:"conversation_id" db:"conversation_id"`
	Message        string    `json:"message" db:"message"`
	Response       string    `json:"response" db:"response"`
	Language       string    `json:"language" db:"language"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Report is a processed upload.
type Report struct {
	ID              string    `json:"id" db:"id"`
	ConversationID  string    `json:"conversation_id" db:"conversation_id"`
	FileName        string    `json:"file_name" db:"file_name"`
	ExtractedText   string    `json:"extracted_text" db:"extracted_text"`
	ProcessedOutput string    `json:"processed_output" db:"processed_output"`
	Language        string    `json:"language" db:"language"`
	Keyword         string    `json:"keyword,omitempty" db:"keyword"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// Conversation summarizes one conversation for listing.
type Conversation struct {
	ID           string    `json:"id" db:"id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	FirstMessage string    `json:"first_message" db:"first_message"`
	Exchanges    int       `json:"exchanges" db:"exchanges"`
}

// ExchangeEdit replaces the message of an exchange and drops everything said
// after it in the conversation.
type ExchangeEdit struct {
	Message           string `json:"message"`
	PreferredLanguage string `json:"preferred_language,omitempty"`
}

// EditResponse is the result of an ExchangeEdit.
type EditResponse struct {
	Exchange        *Exchange `json:"exchange"`
	Matched         bool      `json:"matched"`
	Keyword         string    `json:"keyword,omitempty"`
	DeletedMessages int       `json:"deleted_messages_count"`
}
