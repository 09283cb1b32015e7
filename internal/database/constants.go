package database

// SQLite connection settings
const (
	// DriverName is the database/sql driver registered by modernc.org/sqlite
	DriverName = "sqlite"

	// MaxOpenConnections serialises access; SQLite allows one writer at a time
	MaxOpenConnections = 1

	// BusyTimeoutMillis is how long a statement waits on a locked database
	BusyTimeoutMillis = 5000

	// DefaultDBFileName is the database file created under the data directory
	DefaultDBFileName = "player-state.db"

	// MemoryPath opens a private in-memory database
	MemoryPath = ":memory:"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToCreateDataDir    = "failed to create data directory"
	ErrMsgFailedToOpenDatabase     = "failed to open database"
	ErrMsgFailedToPingDatabase     = "failed to ping database"
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
)

// Log Messages
const (
	LogMsgSuccessfullyOpenedDatabase = "Successfully opened the database"
)
