package ledger

import (
	"errors"
	"fmt"
)

// ErrorCode classifies ledger operation failures.
type ErrorCode string

const (
	ErrValidation  ErrorCode = "VALIDATION"
	ErrPersistence ErrorCode = "PERSISTENCE"
	ErrNotFound    ErrorCode = "NOT_FOUND"
)

// Error is a structured error for ledger failures.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewValidationError reports input rejected before any persistence attempt.
func NewValidationError(format string, args ...any) *Error {
	return &Error{Code: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// NewPersistenceError wraps a failed store operation.
func NewPersistenceError(op string, cause error) *Error {
	return &Error{Code: ErrPersistence, Message: "failed to " + op, Cause: cause}
}

// NewNotFoundError reports an operation against a vanished document.
// This is a benign race under concurrent clients, not a fatal condition.
func NewNotFoundError(id string, cause error) *Error {
	return &Error{Code: ErrNotFound, Message: fmt.Sprintf("entry %s not found", id), Cause: cause}
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not a ledger error.
func CodeOf(err error) ErrorCode {
	var le *Error
	if errors.As(err, &le) {
		return le.Code
	}
	return ""
}

// IsNotFound reports whether err represents a vanished-document race.
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrNotFound
}
