package faults

import (
	"errors"
	"fmt"
)

type ErrorCategory string

const (
	// ConfigurationError marks misuse that configuration can fix: a missing
	// required resource group, or a module used before its parent resolved.
	ConfigurationError ErrorCategory = "ConfigurationError"
	// NotFoundError marks lookups that found nothing. Point lookups normally
	// report absence as a nil result; the category exists for the few places
	// where an error value is the only channel available.
	NotFoundError ErrorCategory = "NotFoundError"
	// RemoteOperationError wraps a transport or provider failure without
	// discarding the underlying status code or message.
	RemoteOperationError ErrorCategory = "RemoteOperationError"
	// InvariantViolation marks programming errors; callers are expected to
	// fail fast rather than handle these.
	InvariantViolation ErrorCategory = "InvariantViolation"
)

type TypedError struct {
	Category ErrorCategory
	Message  string
	Cause    error
}

func (e *TypedError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message != "" && e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return string(e.Category)
}

func (e *TypedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewTypedError(category ErrorCategory, message string, cause error) *TypedError {
	return &TypedError{
		Category: category,
		Message:  message,
		Cause:    cause,
	}
}

func Configurationf(format string, args ...any) *TypedError {
	return NewTypedError(ConfigurationError, fmt.Sprintf(format, args...), nil)
}

func Invariantf(format string, args ...any) *TypedError {
	return NewTypedError(InvariantViolation, fmt.Sprintf(format, args...), nil)
}

func WrapRemote(cause error, format string, args ...any) *TypedError {
	return NewTypedError(RemoteOperationError, fmt.Sprintf(format, args...), cause)
}

func IsCategory(err error, category ErrorCategory) bool {
	if err == nil {
		return false
	}

	var typedErr *TypedError
	if !errors.As(err, &typedErr) {
		return false
	}
	return typedErr.Category == category
}
