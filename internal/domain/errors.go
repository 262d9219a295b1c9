package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound = "user not found"

	// Case errors
	ErrMsgCaseNotFound = "case not found"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"

	// State errors
	ErrMsgInvalidState = "invalid state"

	// Concurrency errors
	ErrMsgVersionConflict = "version conflict"
	ErrMsgConflict        = "too many concurrent updates"

	// Database/System errors
	ErrMsgDatabaseError     = "database error"
	ErrMsgConnectionTimeout = "connection timeout"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	// Case errors
	ErrCaseNotFound = errors.New(ErrMsgCaseNotFound)

	// Economy errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// ErrInvalidState signals structurally invalid input or configuration
	// (empty case item list, negative XP delta). Non-retryable; indicates a
	// data/config bug and is logged loudly.
	ErrInvalidState = errors.New(ErrMsgInvalidState)

	// ErrVersionConflict is returned by the store when a compare-and-swap
	// write lost the race. The engine retries a bounded number of times.
	ErrVersionConflict = errors.New(ErrMsgVersionConflict)

	// ErrConflict is surfaced to the caller once CAS retries are exhausted.
	// Retryable from the caller's perspective.
	ErrConflict = errors.New(ErrMsgConflict)

	// Database/System errors
	ErrDatabaseError     = errors.New(ErrMsgDatabaseError)
	ErrConnectionTimeout = errors.New(ErrMsgConnectionTimeout)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
