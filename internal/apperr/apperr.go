// Package apperr defines the error taxonomy shared by the assessment, storage
// and report layers.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind string

const (
	// KindValidation indicates user input that blocks the attempted action.
	KindValidation Kind = "validation"
	// KindStorageRead indicates a stored value could not be read or decoded.
	KindStorageRead Kind = "storage_read"
	// KindStorageWrite indicates a value could not be persisted.
	KindStorageWrite Kind = "storage_write"
	// KindReportGeneration indicates a report could not be rendered or exported.
	KindReportGeneration Kind = "report_generation"
	// KindNotFound indicates a referenced assessment does not exist.
	KindNotFound Kind = "not_found"
)

// Error is a structured application error.
type Error struct {
	Err     error
	Kind    Kind
	Op      string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Op, e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether repeating the same action may succeed. Validation
// and not-found errors need the input corrected first.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindStorageWrite, KindReportGeneration:
		return true
	default:
		return false
	}
}

// New creates an error of the given kind wrapping err.
func New(kind Kind, op string, err error) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: err.Error(),
		Err:     err,
	}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// Validation creates a validation error with a formatted message.
func Validation(op, format string, args ...any) *Error {
	return Newf(KindValidation, op, format, args...)
}

// NotFound creates a not-found error with a formatted message.
func NotFound(op, format string, args ...any) *Error {
	return Newf(KindNotFound, op, format, args...)
}

// StorageRead wraps a read or decode failure for key.
func StorageRead(key string, err error) *Error {
	return New(KindStorageRead, "load "+key, err)
}

// StorageWrite wraps a write failure for key.
func StorageWrite(key string, err error) *Error {
	return New(KindStorageWrite, "save "+key, err)
}

// ReportGeneration wraps a report rendering or export failure.
func ReportGeneration(op string, err error) *Error {
	return New(KindReportGeneration, op, err)
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsStorageRead checks if the error is a storage read error.
func IsStorageRead(err error) bool { return KindOf(err) == KindStorageRead }

// IsStorageWrite checks if the error is a storage write error.
func IsStorageWrite(err error) bool { return KindOf(err) == KindStorageWrite }

// IsReportGeneration checks if the error is a report generation error.
func IsReportGeneration(err error) bool { return KindOf(err) == KindReportGeneration }

// IsNotFound checks if the error is a not-found error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
