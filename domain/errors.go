package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	ErrCodeInvalidState    ErrorCode = "INVALID_STATE"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeConflict        ErrorCode = "CONFLICT"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal        ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Missing or malformed transaction fields.
var (
	ErrTaskRequired          = NewError(ErrCodeInvalidArgument, "'task' must be specified")
	ErrTaskIDRequired        = NewError(ErrCodeInvalidArgument, "'taskId' must be specified")
	ErrTaskNameRequired      = NewError(ErrCodeInvalidArgument, "'taskName' must be specified")
	ErrExecutorRequired      = NewError(ErrCodeInvalidArgument, "'transactionExecutor' must be specified")
	ErrExecutorEmailRequired = NewError(ErrCodeInvalidArgument, "transactionExecutor's 'email' must be specified")
	ErrUserRequired          = NewError(ErrCodeInvalidArgument, "'user' must be specified")
	ErrUserEmailRequired     = NewError(ErrCodeInvalidArgument, "'userEmail' must be specified")
	ErrInvalidTaskState      = NewError(ErrCodeInvalidArgument, "unknown task state")
	ErrInvalidDuration       = NewError(ErrCodeInvalidArgument, "unknown task duration")
	ErrInvalidEnergy         = NewError(ErrCodeInvalidArgument, "unknown task energy")
	ErrInvalidPayload        = NewError(ErrCodeInvalidArgument, "invalid payload")
	ErrUnknownTransaction    = NewError(ErrCodeInvalidArgument, "unknown transaction kind")
	ErrInvalidReference      = NewError(ErrCodeInvalidArgument, "invalid reference")
)

// Lifecycle violations.
var (
	ErrTaskAlreadyCompleted = NewError(ErrCodeInvalidState, "Task has already been completed")
	ErrTaskNotActive        = NewError(ErrCodeInvalidState, "Task is not active")
	ErrTaskNotAssigned      = NewError(ErrCodeInvalidState, "Task is not yet assigned")
	ErrCannotDeleteSelf     = NewError(ErrCodeInvalidState, "Cannot delete self")
)

// Store outcomes.
var (
	ErrUserNotFound    = NewError(ErrCodeNotFound, "user not found")
	ErrTaskNotFound    = NewError(ErrCodeNotFound, "task not found")
	ErrSessionNotFound = NewError(ErrCodeNotFound, "session not found")
	ErrUserExists      = NewError(ErrCodeConflict, "user already exists")
	ErrTaskExists      = NewError(ErrCodeConflict, "task already exists")
	ErrUnauthorized    = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrBadCredentials  = NewError(ErrCodeUnauthorized, "invalid email or password")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
