package core

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for comparison using errors.Is()
// These are generic errors that can be wrapped with additional context
var (
	// Catalog-related errors
	ErrProductNotFound = errors.New("product not found")
	ErrFetchFailed     = errors.New("catalog fetch failed")
	ErrStaleRefresh    = errors.New("refresh superseded by a newer request")

	// Persistence errors
	ErrCorruptSnapshot  = errors.New("corrupt basket snapshot")
	ErrStoreUnavailable = errors.New("persistence store unavailable")

	// Configuration errors
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrMissingConfiguration = errors.New("missing required configuration")

	// Session errors
	ErrNotSignedIn = errors.New("no signed-in session")

	// HTTP/Network errors
	ErrConnectionFailed = errors.New("connection failed")
	ErrRequestFailed    = errors.New("request failed")
)

// StorefrontError provides structured error information with context.
// It implements the error interface and supports error wrapping.
type StorefrontError struct {
	Op      string // Operation that failed (e.g., "journal.Restore")
	Kind    string // Error kind (e.g., "basket", "catalog", "config")
	ID      string // Optional ID of the entity involved
	Message string // Human-readable message
	Err     error  // Underlying error for wrapping
}

// Error returns the string representation of the error
func (e *StorefrontError) Error() string {
	if e.Op != "" && e.Err != nil {
		if e.ID != "" {
			return fmt.Sprintf("%s [%s]: %v", e.Op, e.ID, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s error", e.Kind)
}

// Unwrap returns the underlying error for use with errors.Is/As
func (e *StorefrontError) Unwrap() error {
	return e.Err
}

// NewStorefrontError creates a new StorefrontError
func NewStorefrontError(op, kind string, err error) *StorefrontError {
	return &StorefrontError{
		Op:   op,
		Kind: kind,
		Err:  err,
	}
}

// IsNotFound checks if an error indicates a missing entity
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound)
}

// IsRetryable checks if an error is retryable.
// Retryable errors are typically transient network or availability issues.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrFetchFailed) ||
		errors.Is(err, ErrConnectionFailed) ||
		errors.Is(err, ErrStoreUnavailable) ||
		errors.Is(err, ErrRequestFailed)
}

// IsCorrupt checks if an error indicates an unreadable persisted payload
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorruptSnapshot)
}

// IsConfigurationError checks if an error is configuration-related
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration) ||
		errors.Is(err, ErrMissingConfiguration)
}
