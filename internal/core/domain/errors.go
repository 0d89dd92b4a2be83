package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPersistenceRead indicates a persisted record was missing or corrupt.
	// It is always recovered by falling back to defaults.
	ErrPersistenceRead = errors.New("persistence read failed")

	// ErrPersistenceWrite indicates the host storage rejected a write.
	// The in-memory state still reflects the attempted value.
	ErrPersistenceWrite = errors.New("persistence write failed")

	// ErrQuotaExceeded indicates the host storage is full.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrStepLocked indicates navigation to a gated step before its precondition holds.
	ErrStepLocked = errors.New("step locked")

	// ErrContentUnavailable indicates a download of a metadata-only document.
	ErrContentUnavailable = errors.New("document content unavailable")

	// ErrRemoteCallFailed indicates the analysis service call failed.
	ErrRemoteCallFailed = errors.New("remote call failed")

	// ErrUnsupportedFileType indicates a file with a disallowed extension.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrSeriesTooShort indicates a series with fewer than two points.
	ErrSeriesTooShort = errors.New("series needs at least two points")

	// ErrNoResult indicates no analysis result is available yet.
	ErrNoResult = errors.New("no analysis result")
)

// RemoteError describes a failed call to the analysis service.
// Detail is the server-supplied message when one was returned.
type RemoteError struct {
	// Op is the operation that failed.
	Op Operation

	// StatusCode is the HTTP status, or 0 for transport failures.
	StatusCode int

	// Detail is the user-facing message.
	Detail string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements error.
func (e *RemoteError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Detail, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Detail)
}

// Unwrap returns the underlying cause.
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrRemoteCallFailed.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteCallFailed
}
