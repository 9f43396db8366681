// internal/apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a direct entity fetch finds nothing.
	ErrNotFound = errors.New("not found")
	// ErrAccessDenied covers write-only attribute reads and insufficient
	// membership roles.
	ErrAccessDenied = errors.New("access denied")
	// ErrCredentialMismatch is the single failure for both "unknown login"
	// and "wrong password"; callers must not be able to tell them apart.
	ErrCredentialMismatch = errors.New("invalid credentials")
)

// ValidationError reports a rejected attribute value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// Validation builds a ValidationError.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StorageError wraps an unexpected database failure. Storage errors are
// never swallowed; they propagate to the controller which decides the user
// messaging.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Storage classifies a gorm error: record-not-found becomes ErrNotFound,
// anything else is wrapped as a StorageError. A nil err passes through.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return &StorageError{Op: op, Err: err}
}

// IsStorage reports whether err is a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
