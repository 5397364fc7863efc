package sentinel

import "errors"

// Sentinel errors for infrastructure and entity facts. Stores and entities return
// these (optionally wrapped) so the service layer can translate them into domain errors.
//
// These represent factual states, not validation failures:
// - ErrNotFound: record does not exist in the registry or snapshot backend
// - ErrConflict: a unique key (email, identifier) is already taken
// - ErrAlreadyUsed: a one-time transition (check-in, kit, lunch for a date) already happened
// - ErrInvalidState: record in wrong state for the requested transition
// - ErrCorrupt: persisted data exists but cannot be decoded
// - ErrUnavailable: backend temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
	ErrCorrupt      = errors.New("corrupt")
	ErrUnavailable  = errors.New("unavailable")
)
