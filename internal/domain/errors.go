package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an AppError so callers and the HTTP layer can react
// to the failure category without string matching.
type ErrorKind string

const (
	KindNotFound         ErrorKind = "not_found"
	KindInvalid          ErrorKind = "invalid"
	KindConflict         ErrorKind = "conflict"
	KindForbidden        ErrorKind = "forbidden"
	KindDeadlineExceeded ErrorKind = "deadline_exceeded"
	KindUnauthorized     ErrorKind = "unauthorized"
	KindStorage          ErrorKind = "storage"
)

// AppError is the tagged error type returned by the reservation core. Every
// validation or transition failure carries a kind and a human-readable
// message; no partial mutation ever accompanies one.
type AppError struct {
	Kind    ErrorKind
	Message string
	cause   error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *AppError) Unwrap() error { return e.cause }

// NewNotFoundError reports an absent entity.
func NewNotFoundError(entity string, id any) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf("%s %v not found", entity, id)}
}

// NewValidationError reports a request that violates a business rule.
func NewValidationError(msg string) *AppError {
	return &AppError{Kind: KindInvalid, Message: msg}
}

// NewConflictError reports a state transition lost to a concurrent request.
func NewConflictError(msg string) *AppError {
	return &AppError{Kind: KindConflict, Message: msg}
}

// NewForbiddenError reports a caller acting on a resource it does not own.
func NewForbiddenError(msg string) *AppError {
	return &AppError{Kind: KindForbidden, Message: msg}
}

// NewDeadlineExceededError reports a modification inside the protection
// window before the booked time.
func NewDeadlineExceededError(msg string) *AppError {
	return &AppError{Kind: KindDeadlineExceeded, Message: msg}
}

// NewUnauthorizedError reports a caller whose identity could not be resolved.
func NewUnauthorizedError(msg string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: msg}
}

// NewStorageError wraps a persistence failure. The transaction is rolled
// back by the storage layer; the core never retries.
func NewStorageError(msg string, cause error) *AppError {
	return &AppError{Kind: KindStorage, Message: msg, cause: cause}
}

// KindOf extracts the ErrorKind from err, returning KindStorage for
// anything that is not an AppError.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
