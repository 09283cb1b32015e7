package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/koscheiundead/totkaa-v2/internal/catalog"
	"github.com/koscheiundead/totkaa-v2/internal/database"
	"github.com/koscheiundead/totkaa-v2/internal/database/migrations"
	"github.com/koscheiundead/totkaa-v2/internal/database/sqlite"
)

// Storage bundles the open database with the repository built on it
type Storage struct {
	DB         *sql.DB
	Repository *sqlite.Repository
	Version    int64
}

// OpenStorage opens the database at dbPath and migrates it to the latest
// version. legacyPath, when set, names a previous save file imported into an
// empty database.
func OpenStorage(ctx context.Context, dbPath, legacyPath string, cat *catalog.Catalog) (*Storage, error) {
	db, err := database.OpenSQLite(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgOpenDatabase, err)
	}

	var opts []migrations.Option
	if legacyPath != "" {
		opts = append(opts, migrations.WithLegacyFile(legacyPath))
	}
	migrator, err := migrations.NewMigrator(db, cat, opts...)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateMigrator, err)
	}

	version, err := migrator.Up(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgRunMigrations, err)
	}

	slog.Info(LogMsgStorageReady, "path", dbPath, "schema_version", version)
	return &Storage{
		DB:         db,
		Repository: sqlite.NewRepository(db),
		Version:    version,
	}, nil
}
