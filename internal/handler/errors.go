package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgRequestTooLarge       = "Request body too large"

	// State operation error messages
	ErrMsgGetStateFailed    = "Failed to load player state"
	ErrMsgUpdateStateFailed = "Failed to update player state"
	ErrMsgSetRupeesFailed   = "Failed to set rupees"
	ErrMsgResetStateFailed  = "Failed to reset player state"
	ErrMsgExportStateFailed = "Failed to export player state"
	ErrMsgImportStateFailed = "Failed to import player state"

	// Planner error messages
	ErrMsgShortfallFailed = "Failed to calculate shortfall"
)

// Success messages for API responses
const (
	MsgStateReset    = "Player state reset to defaults"
	MsgExportedState = "Player state exported"
	MsgImportedState = "Player state imported"
	MsgCanceled      = "Canceled"
)
