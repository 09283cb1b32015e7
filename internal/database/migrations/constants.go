package migrations

// Migration versions, in goose order
const (
	VersionCreateTable int64 = 1
	VersionOwnedState  int64 = 2
	VersionCurrency    int64 = 3
	VersionCatalogSync int64 = 4
)

// Step names, matching the document schema version each step produces
const (
	StepOwnedState  = "owned state 1.0.0"
	StepCurrency    = "currency 1.1.0"
	StepCatalogSync = "catalog sync 1.2.0"
)

const sqlDir = "sql"

// Log messages
const (
	LogMsgMigrationFallback = "Migrated state failed validation, replaced with defaults"
	LogMsgLegacyImported    = "Imported legacy state file"
	LogMsgLegacySkipped     = "Legacy state file not imported"
	LogMsgMigrationApplied  = "Applied migration"
)
