package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Pool interface for database connection pool operations
type Pool interface {
	PingContext(ctx context.Context) error
	Close() error
}

// DefaultDBPath returns the database location inside dataDir
func DefaultDBPath(dataDir string) string {
	return filepath.Join(dataDir, DefaultDBFileName)
}

// OpenSQLite opens (and creates if missing) the SQLite database at path.
// The pool is capped at a single connection and pinged before returning.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreateDataDir, err)
		}
	}

	db, err := sql.Open(DriverName, dsn(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpenDatabase, err)
	}
	db.SetMaxOpenConns(MaxOpenConnections)
	// The in-memory database lives only as long as its connection
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Default().Debug(LogMsgSuccessfullyOpenedDatabase, "path", path)
	return db, nil
}

func dsn(path string) string {
	params := url.Values{}
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", BusyTimeoutMillis))
	params.Add("_pragma", "foreign_keys(1)")
	if path != MemoryPath {
		params.Add("_pragma", "journal_mode(WAL)")
	}
	return path + "?" + params.Encode()
}
