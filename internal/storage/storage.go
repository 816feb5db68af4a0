// Package storage defines the persistence interface for conversation history
// and processed reports.
package storage

import (
	"context"
	"errors"

	"github.com/hyperjump/symptomatch/internal/models"
)

// ErrNotFound is returned when a conversation, exchange or report does not
// exist.
var ErrNotFound = errors.New("not found")

// MaxExtractedText caps the extracted text stored with a report, in runes.
const MaxExtractedText = 10000

// Storage defines history persistence operations.
type Storage interface {
	// Exchange operations
	SaveExchange(ctx context.Context, ex *models.Exchange) error
	GetExchange(ctx context.Context, id string) (*models.Exchange, error)
	ListExchanges(ctx context.Context, conversationID string, limit int) ([]*models.Exchange, error)
	// EditExchange rewrites an exchange and deletes every later exchange in
	// its conversation, returning how many were deleted.
	EditExchange(ctx context.Context, ex *models.Exchange) (int, error)

	// Conversation operations
	ListConversations(ctx context.Context, offset, limit int) ([]*models.Conversation, error)
	DeleteConversation(ctx context.Context, id string) error

	// Report operations
	SaveReport(ctx context.Context, r *models.Report) error
	GetReport(ctx context.Context, id string) (*models.Report, error)
	CountReports(ctx context.Context) (int64, error)

	Close() error
}
