package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// State token errors
	ErrMsgStateNotFound = "state token not found"

	// Provider errors
	ErrMsgUnknownProvider = "unknown provider"
	ErrMsgExchangeFailed  = "token exchange failed"
	ErrMsgProfileFailed   = "profile fetch failed"

	// Binding errors
	ErrMsgBindingNotFound = "binding not found"

	// Input errors
	ErrMsgMissingParameter = "missing parameter"
	ErrMsgInvalidInput     = "invalid input"

	// Notification errors
	ErrMsgDeliveryFailed = "notification delivery failed"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrStateNotFound covers unknown, expired and already-consumed state
	// tokens alike. A callback presenting such a state is treated as a
	// potential CSRF/replay attempt and never retried.
	ErrStateNotFound = errors.New(ErrMsgStateNotFound)

	// Provider errors
	ErrUnknownProvider = errors.New(ErrMsgUnknownProvider)
	ErrExchangeFailed  = errors.New(ErrMsgExchangeFailed)
	ErrProfileFailed   = errors.New(ErrMsgProfileFailed)

	// Binding errors
	ErrBindingNotFound = errors.New(ErrMsgBindingNotFound)

	// Input errors
	ErrMissingParameter = errors.New(ErrMsgMissingParameter)
	ErrInvalidInput     = errors.New(ErrMsgInvalidInput)

	// Notification errors
	ErrDeliveryFailed = errors.New(ErrMsgDeliveryFailed)

	// Database/System errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)
