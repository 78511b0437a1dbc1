// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when a batch or engine id is unknown.
	ErrNotFound = errors.New("not found")
	// ErrSetupRequired means the remote database is configured but its tables are missing.
	ErrSetupRequired = errors.New("remote database requires setup")
	// ErrNotInitialized is returned by mutations issued before the store is initialized.
	ErrNotInitialized = errors.New("store not initialized")
	// ErrRemote is matched by every *RemoteError.
	ErrRemote = errors.New("remote operation failed")
	// ErrCacheRead is matched by every *CacheReadError.
	ErrCacheRead = errors.New("local cache read failed")
)

// ValidationError reports a missing or malformed field at the store boundary.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func requiredField(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "is required"}
}

// RemoteError wraps any failure of the remote record service.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}

// NewRemoteError returns nil when err is nil.
func NewRemoteError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RemoteError{Op: op, Err: err}
}

// CacheReadError reports an unreadable local snapshot key.
type CacheReadError struct {
	Key string
	Err error
}

func (e *CacheReadError) Error() string {
	return fmt.Sprintf("read cache key %s: %v", e.Key, e.Err)
}

func (e *CacheReadError) Unwrap() error {
	return e.Err
}

func (e *CacheReadError) Is(target error) bool {
	return target == ErrCacheRead
}
