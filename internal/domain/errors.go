package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound = "user not found"

	// Item errors
	ErrMsgItemNotFound    = "item not found"
	ErrMsgItemUnavailable = "item is not available"

	// Points errors
	ErrMsgInsufficientPoints = "insufficient points"
	ErrMsgInvalidAmount      = "amount must be positive"

	// Shop errors
	ErrMsgAlreadyOwned = "item already owned"
	ErrMsgNotOwned     = "item not owned"

	// Queue errors
	ErrMsgQueueEmpty  = "queue is empty"
	ErrMsgQueueClosed = "queue is closed"
	ErrMsgJobNotFound = "job not found"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
	ErrMsgTxClosed      = "tx is closed"
	ErrMsgAlreadyExists = "record already exists"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	// Item errors
	ErrItemNotFound    = errors.New(ErrMsgItemNotFound)
	ErrItemUnavailable = errors.New(ErrMsgItemUnavailable)

	// Points errors
	ErrInsufficientPoints = errors.New(ErrMsgInsufficientPoints)
	ErrInvalidAmount      = errors.New(ErrMsgInvalidAmount)

	// Shop errors
	ErrAlreadyOwned = errors.New(ErrMsgAlreadyOwned)
	ErrNotOwned     = errors.New(ErrMsgNotOwned)

	// Queue errors
	ErrQueueEmpty  = errors.New(ErrMsgQueueEmpty)
	ErrQueueClosed = errors.New(ErrMsgQueueClosed)
	ErrJobNotFound = errors.New(ErrMsgJobNotFound)

	// Database errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
	ErrAlreadyExists = errors.New(ErrMsgAlreadyExists)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
