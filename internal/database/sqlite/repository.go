// Package sqlite persists the owned-state document in a single-row SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"time"
)

// Repository stores the raw owned-state JSON document.
// Validation happens in the caller; the repository never interprets the document.
type Repository struct {
	db      *sql.DB
	queries *Queries
	now     func() time.Time
}

// NewRepository creates a repository over an already migrated database
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		db:      db,
		queries: NewQueries(db),
		now:     time.Now,
	}
}

// LoadState returns the stored document or domain.ErrStateNotFound
func (r *Repository) LoadState(ctx context.Context) ([]byte, error) {
	return r.queries.GetDocument(ctx)
}

// SaveState replaces the stored document
func (r *Repository) SaveState(ctx context.Context, document []byte) error {
	return r.queries.UpsertDocument(ctx, document, r.now().UTC().UnixMilli())
}

// UpdatedAt returns when the document was last written
func (r *Repository) UpdatedAt(ctx context.Context) (time.Time, error) {
	millis, err := r.queries.GetUpdatedAt(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(millis).UTC(), nil
}

// Ping checks the database is reachable
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
