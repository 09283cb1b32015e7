package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/koscheiundead/totkaa-v2/internal/domain"
)

// StateRowID is the primary key of the single player_state row
const StateRowID = 1

const (
	getDocumentSQL = `SELECT document FROM player_state WHERE id = ?`

	upsertDocumentSQL = `
INSERT INTO player_state (id, document, updated_at) VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`

	getUpdatedAtSQL = `SELECT updated_at FROM player_state WHERE id = ?`
)

// DBTX is satisfied by both *sql.DB and *sql.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Queries runs the player_state statements against a DB or an open transaction
type Queries struct {
	db DBTX
}

// NewQueries binds the statements to db
func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

// GetDocument returns the stored JSON document, or domain.ErrStateNotFound
func (q *Queries) GetDocument(ctx context.Context) ([]byte, error) {
	var document string
	err := q.db.QueryRowContext(ctx, getDocumentSQL, StateRowID).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read player state: %w", err)
	}
	return []byte(document), nil
}

// UpsertDocument replaces the stored document in a single statement
func (q *Queries) UpsertDocument(ctx context.Context, document []byte, updatedAtMillis int64) error {
	if _, err := q.db.ExecContext(ctx, upsertDocumentSQL, StateRowID, string(document), updatedAtMillis); err != nil {
		return fmt.Errorf("failed to write player state: %w", err)
	}
	return nil
}

// GetUpdatedAt returns the last write time in unix milliseconds
func (q *Queries) GetUpdatedAt(ctx context.Context) (int64, error) {
	var updatedAt int64
	err := q.db.QueryRowContext(ctx, getUpdatedAtSQL, StateRowID).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrStateNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read player state timestamp: %w", err)
	}
	return updatedAt, nil
}
