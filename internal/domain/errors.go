package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// State errors
	ErrMsgInvalidState    = "invalid owned state"
	ErrMsgCorruptStore    = "stored state is corrupt"
	ErrMsgStateNotFound   = "no stored state"
	ErrMsgMigrationFailed = "state migration failed"

	// Catalog errors
	ErrMsgInvalidCatalog = "invalid catalog"
	ErrMsgArmorNotFound  = "armor piece not found"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrInvalidState marks input that failed owned-state validation
	ErrInvalidState = errors.New(ErrMsgInvalidState)
	// ErrCorruptStore marks a stored record that no longer validates
	ErrCorruptStore = errors.New(ErrMsgCorruptStore)

	ErrStateNotFound = errors.New(ErrMsgStateNotFound)

	// ErrMigrationFailed marks a migration step whose output did not validate
	ErrMigrationFailed = errors.New(ErrMsgMigrationFailed)

	ErrInvalidCatalog = errors.New(ErrMsgInvalidCatalog)
	ErrArmorNotFound  = errors.New(ErrMsgArmorNotFound)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
