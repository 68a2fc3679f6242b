package apperrors

import (
	"errors"
	"fmt"
)

// Common application errors
var (
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("validation error")
	ErrDuplicate  = errors.New("resource already exists")
	ErrConflict   = errors.New("resource was modified by another writer")
	ErrInternal   = errors.New("internal error")

	// ErrReconciliationMismatch marks a mirror record that was expected but
	// could not be located. It never aborts a command.
	ErrReconciliationMismatch = errors.New("linked record out of sync")
)

// AppError wraps a lower level failure with an HTTP-ish status code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() []error {
	errs := []error{e.Err}
	if e.Code >= 500 {
		errs = append(errs, ErrInternal)
	}
	return errs
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// ReconciliationMismatchError describes a source record whose mirror was
// absent (or diverged) while the source was being edited or deleted.
type ReconciliationMismatchError struct {
	Source   string `json:"source"`
	SourceID int64  `json:"sourceID"`
	Mirror   string `json:"mirror"`
	MirrorID int64  `json:"mirrorID,omitempty"`
	Detail   string `json:"detail"`
}

func (e *ReconciliationMismatchError) Error() string {
	return fmt.Sprintf("%s %d: %s mirror: %s", e.Source, e.SourceID, e.Mirror, e.Detail)
}

// Is reports ErrReconciliationMismatch as the sentinel for this error type.
func (e *ReconciliationMismatchError) Is(target error) bool {
	return target == ErrReconciliationMismatch
}

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Duplicatef wraps ErrDuplicate with a formatted message.
func Duplicatef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDuplicate, fmt.Sprintf(format, args...))
}
