// Package migrations brings the player_state table and its JSON document up
// to date. Table DDL lives in embedded goose SQL files; document upgrades are
// goose Go migrations wrapping the pure functions in steps.go.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/koscheiundead/totkaa-v2/internal/catalog"
	"github.com/koscheiundead/totkaa-v2/internal/database/sqlite"
	"github.com/koscheiundead/totkaa-v2/internal/domain"
	"github.com/koscheiundead/totkaa-v2/internal/logger"
	"github.com/koscheiundead/totkaa-v2/internal/metrics"
	"github.com/koscheiundead/totkaa-v2/internal/state"
)

//go:embed sql/*.sql
var embeddedSQL embed.FS

// Migrator runs the migration chain against one database
type Migrator struct {
	db         *sql.DB
	provider   *goose.Provider
	legacyPath string
	now        func() time.Time
}

// Option configures a Migrator
type Option func(*Migrator)

// WithLegacyFile imports the previous desktop app's JSON save when the
// table is still empty after it is created
func WithLegacyFile(path string) Option {
	return func(m *Migrator) {
		m.legacyPath = path
	}
}

// NewMigrator builds the goose provider for db; cat drives the catalog sync step
func NewMigrator(db *sql.DB, cat *catalog.Catalog, opts ...Option) (*Migrator, error) {
	m := &Migrator{db: db, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}

	sqlFS, err := fs.Sub(embeddedSQL, sqlDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	steps := Steps(cat)
	goMigrations := make([]*goose.Migration, 0, len(steps))
	for _, step := range steps {
		goMigrations = append(goMigrations, goose.NewGoMigration(
			step.Version,
			&goose.GoFunc{RunTx: m.runStep(step)},
			nil,
		))
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, sqlFS,
		goose.WithGoMigrations(goMigrations...),
		goose.WithDisableGlobalRegistry(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	m.provider = provider
	return m, nil
}

// Up applies every pending migration and returns the resulting version
func (m *Migrator) Up(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	if m.legacyPath != "" {
		if _, err := m.provider.UpTo(ctx, VersionCreateTable); err != nil {
			return 0, fmt.Errorf("%w: %w", domain.ErrMigrationFailed, err)
		}
		if err := m.importLegacy(ctx); err != nil {
			return 0, err
		}
	}

	results, err := m.provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrMigrationFailed, err)
	}
	for _, r := range results {
		log.Info(LogMsgMigrationApplied, "version", r.Source.Version, "duration", r.Duration)
	}
	return m.Version(ctx)
}

// Version returns the current database version
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	v, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read migration version: %w", err)
	}
	return v, nil
}

// Status lists every known migration with its applied state
func (m *Migrator) Status(ctx context.Context) ([]*goose.MigrationStatus, error) {
	return m.provider.Status(ctx)
}

// importLegacy copies the legacy file's raw content into an empty table.
// The content is stored as-is; the document steps validate and repair it.
func (m *Migrator) importLegacy(ctx context.Context) error {
	log := logger.FromContext(ctx)

	version, err := m.Version(ctx)
	if err != nil {
		return err
	}
	if version != VersionCreateTable {
		log.Debug(LogMsgLegacySkipped, "reason", "document already migrated", "version", version)
		return nil
	}

	queries := sqlite.NewQueries(m.db)
	if _, err := queries.GetDocument(ctx); err == nil {
		log.Debug(LogMsgLegacySkipped, "reason", "state already present")
		return nil
	} else if !errors.Is(err, domain.ErrStateNotFound) {
		return err
	}

	data, err := os.ReadFile(m.legacyPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug(LogMsgLegacySkipped, "reason", "file not found", "path", m.legacyPath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read legacy state %s: %w", m.legacyPath, err)
	}

	if err := queries.UpsertDocument(ctx, data, m.now().UTC().UnixMilli()); err != nil {
		return err
	}
	log.Info(LogMsgLegacyImported, "path", m.legacyPath, "bytes", len(data))
	return nil
}

// runStep reads the stored document, applies step and replaces the record.
// A result that fails validation is replaced by the default state.
func (m *Migrator) runStep(step Step) func(context.Context, *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		queries := sqlite.NewQueries(tx)

		doc, err := loadDocument(ctx, queries)
		var next domain.OwnedState
		if err == nil {
			next, err = step.Apply(doc)
		}
		if err != nil {
			if !errors.Is(err, domain.ErrInvalidState) {
				return fmt.Errorf("%w: %s: %w", domain.ErrMigrationFailed, step.Name, err)
			}
			logger.FromContext(ctx).Warn(LogMsgMigrationFallback, "step", step.Name, "version", step.Version, "error", err)
			metrics.MigrationFallbacks.WithLabelValues(step.Name).Inc()
			next = state.Default()
		}

		data, err := state.Encode(next)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrMigrationFailed, step.Name, err)
		}
		return queries.UpsertDocument(ctx, data, m.now().UTC().UnixMilli())
	}
}

// loadDocument returns the stored document as a JSON object; a missing
// record is an empty object, anything that is not an object is invalid state
func loadDocument(ctx context.Context, queries *sqlite.Queries) (map[string]interface{}, error) {
	data, err := queries.GetDocument(ctx)
	if errors.Is(err, domain.ErrStateNotFound) {
		return map[string]interface{}{}, nil
	}
	if err != nil {
		return nil, err
	}

	doc, err := state.Decode(data)
	if err != nil {
		return nil, err
	}
	obj, ok := doc.(map[string]interface{})
	if !ok {
		_, err := state.Validate(doc)
		return nil, err
	}
	return obj, nil
}
