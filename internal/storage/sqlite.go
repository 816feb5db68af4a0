// Package storage provides SQLite implementation of the Storage interface.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/symptomatch/internal/models"
	"github.com/hyperjump/symptomatch/pkg/utils"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS conversations (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_conversations_created_at ON conversations(created_at);

	CREATE TABLE IF NOT EXISTS exchanges (
		id TEXT PRIMARY KEY,
		conversation_id TEXT NOT NULL,
		message TEXT NOT NULL,
		response TEXT NOT NULL,
		language TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_exchanges_conversation ON exchanges(conversation_id);

	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		conversation_id TEXT,
		file_name TEXT NOT NULL,
		extracted_text TEXT,
		processed_output TEXT,
		language TEXT,
		keyword TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_reports_conversation ON reports(conversation_id);
	`
	_, err := db.Exec(schema)
	return err
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func ensureConversation(ctx context.Context, db execer, id string, at time.Time) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO conversations (id, created_at) VALUES (?, ?)`, id, at)
	return err
}

// SaveExchange inserts an exchange. Missing IDs are generated; the
// conversation is created on its first exchange.
func (s *SQLiteStorage) SaveExchange(ctx context.Context, ex *models.Exchange) error {
	if ex.ID == "" {
		ex.ID = uuid.NewString()
	}
	if ex.ConversationID == "" {
		ex.ConversationID = uuid.NewString()
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := ensureConversation(ctx, tx, ex.ConversationID, ex.CreatedAt); err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO exchanges (id, conversation_id, message, response, language, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ex.ID, ex.ConversationID, ex.Message, ex.Response, ex.Language, ex.CreatedAt,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// GetExchange returns an exchange by ID.
func (s *SQLiteStorage) GetExchange(ctx context.Context, id string) (*models.Exchange, error) {
	var ex models.Exchange
	err := s.db.QueryRowContext(ctx,
		`SELECT id, conversation_id, message, response, language, created_at
		 FROM exchanges WHERE id = ?`, id,
	).Scan(&ex.ID, &ex.ConversationID, &ex.Message, &ex.Response, &ex.Language, &ex.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("exchange %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

// ListExchanges returns the exchanges of a conversation in the order they
// were saved. A limit of zero or less returns all of them.
func (s *SQLiteStorage) ListExchanges(ctx context.Context, conversationID string, limit int) ([]*models.Exchange, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, conversation_id, message, response, language, created_at
		 FROM exchanges WHERE conversation_id = ? ORDER BY rowid LIMIT ?`,
		conversationID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Exchange
	for rows.Next() {
		var ex models.Exchange
		if err := rows.Scan(&ex.ID, &ex.ConversationID, &ex.Message, &ex.Response, &ex.Language, &ex.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &ex)
	}
	return out, rows.Err()
}

// EditExchange updates the message, response and language of an existing
// exchange and deletes the exchanges saved after it.
func (s *SQLiteStorage) EditExchange(ctx context.Context, ex *models.Exchange) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var rowID int64
	var conversationID string
	err = tx.QueryRowContext(ctx,
		`SELECT rowid, conversation_id FROM exchanges WHERE id = ?`, ex.ID,
	).Scan(&rowID, &conversationID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("exchange %s: %w", ex.ID, ErrNotFound)
	}
	if err != nil {
		return 0, err
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM exchanges WHERE conversation_id = ? AND rowid > ?`, conversationID, rowID)
	if err != nil {
		return 0, err
	}
	deleted, _ := result.RowsAffected()

	if _, err := tx.ExecContext(ctx,
		`UPDATE exchanges SET message = ?, response = ?, language = ? WHERE id = ?`,
		ex.Message, ex.Response, ex.Language, ex.ID,
	); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	ex.ConversationID = conversationID
	return int(deleted), nil
}

// ListConversations returns conversations newest first with their first
// message and exchange count.
func (s *SQLiteStorage) ListConversations(ctx context.Context, offset, limit int) ([]*models.Conversation, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.created_at,
		        (SELECT e.message FROM exchanges e WHERE e.conversation_id = c.id ORDER BY e.rowid LIMIT 1),
		        (SELECT COUNT(*) FROM exchanges e WHERE e.conversation_id = c.id)
		 FROM conversations c ORDER BY c.created_at DESC, c.rowid DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Conversation
	for rows.Next() {
		var c models.Conversation
		var first sql.NullString
		if err := rows.Scan(&c.ID, &c.CreatedAt, &first, &c.Exchanges); err != nil {
			return nil, err
		}
		c.FirstMessage = first.String
		out = append(out, &c)
	}
	return out, rows.Err()
}

// DeleteConversation removes a conversation with its exchanges and reports.
func (s *SQLiteStorage) DeleteConversation(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM conversations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("conversation %s: %w", id, ErrNotFound)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM exchanges WHERE conversation_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM reports WHERE conversation_id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveReport inserts a report, or replaces the one with the same ID. The
// extracted text is capped at MaxExtractedText runes.
func (s *SQLiteStorage) SaveReport(ctx context.Context, r *models.Report) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	r.ExtractedText = utils.TruncateRunes(r.ExtractedText, MaxExtractedText)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if r.ConversationID != "" {
		if err := ensureConversation(ctx, tx, r.ConversationID, r.CreatedAt); err != nil {
			return fmt.Errorf("failed to create conversation: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO reports
		 (id, conversation_id, file_name, extracted_text, processed_output, language, keyword, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ConversationID, r.FileName, r.ExtractedText, r.ProcessedOutput, r.Language, r.Keyword, r.CreatedAt,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// GetReport returns a report by ID.
func (s *SQLiteStorage) GetReport(ctx context.Context, id string) (*models.Report, error) {
	var r models.Report
	var conversationID, keyword sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, conversation_id, file_name, extracted_text, processed_output, language, keyword, created_at
		 FROM reports WHERE id = ?`, id,
	).Scan(&r.ID, &conversationID, &r.FileName, &r.ExtractedText, &r.ProcessedOutput, &r.Language, &keyword, &r.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	r.ConversationID = conversationID.String
	r.Keyword = keyword.String
	return &r, nil
}

// CountReports returns the total number of reports.
func (s *SQLiteStorage) CountReports(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
