package tracker

import "time"

// Operation labels for state write metrics
const (
	OpSetState  = "set_state"
	OpSetRupees = "set_rupees"
	OpReset     = "reset"
	OpImport    = "import"
)

// Shortfall cache defaults
const (
	DefaultCacheSize = 64
	DefaultCacheTTL  = 10 * time.Minute

	// CacheSchemaVersion is mixed into every cache key.
	// Bump it when domain.Shortfall changes shape.
	CacheSchemaVersion = "1"
)

// Log messages
const (
	LogMsgCorruptState    = "Stored state failed validation, using defaults"
	LogMsgStateSaved      = "Owned state saved"
	LogMsgStateRejected   = "Owned state update rejected"
	LogMsgShortfallCached = "Shortfall served from cache"
	LogMsgTargetsRejected = "Shortfall targets rejected"
)
