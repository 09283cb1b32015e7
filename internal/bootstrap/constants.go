package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept next to the new session
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingTracker     = "Starting armor tracker"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file %s: %v\n"
)

// =============================================================================
// Catalog and Storage
// =============================================================================

const (
	LogMsgCatalogReady   = "Catalog ready"
	LogMsgStorageReady   = "Storage ready"
	ErrMsgLoadCatalog    = "failed to load catalog"
	ErrMsgOpenDatabase   = "failed to open database"
	ErrMsgCreateMigrator = "failed to create migrator"
	ErrMsgRunMigrations  = "failed to run migrations"
)

// =============================================================================
// API Key
// =============================================================================

const (
	// APIKeyFileName holds the generated server key inside the data directory
	APIKeyFileName = "api_key"

	// APIKeyFilePermission keeps the key readable by the owner only
	APIKeyFilePermission = 0600

	// APIKeyBytes is the amount of randomness in a generated key
	APIKeyBytes = 32

	LogMsgAPIKeyLoaded    = "Using API key from key file"
	LogMsgAPIKeyGenerated = "Generated API key"
	ErrMsgReadAPIKey      = "failed to read API key file"
	ErrMsgGenerateAPIKey  = "failed to generate API key"
	ErrMsgWriteAPIKey     = "failed to write API key file"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgClosingDatabase      = "Closing database..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgDatabaseCloseFailed  = "Database close failed"
)
