// Package errs defines the recoverable failure taxonomy of an action
// attempt. Every error maps to turn_continues_with_error; none is fatal.
package errs

import (
	"errors"
	"fmt"
)

// Code classifies an action failure.
type Code string

// Error codes
const (
	CodeInvalidTarget    Code = "INVALID_TARGET"
	CodeBlocked          Code = "BLOCKED"
	CodeInsufficient     Code = "INSUFFICIENT_RESOURCE"
	CodeInvalidItemState Code = "INVALID_ITEM_STATE"
	CodeCancelled        Code = "USER_CANCELLED"
	CodeInternal         Code = "INTERNAL"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Error is a coded action failure. Key is a stable message identifier for
// front ends that localize; Message is the English text shown to the player.
type Error struct {
	Code    Code           `json:"code"`
	Key     string         `json:"key,omitempty"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target carries the same code.
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// WithKey sets the message key.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMeta adds metadata to the error
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a new error with a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error, preserving its code if it's an Error
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{
			Code:    existing.Code,
			Key:     existing.Key,
			Message: message,
			Cause:   err,
			Meta:    existing.Meta,
		}
	}
	return &Error{Code: CodeInternal, Message: message, Cause: err}
}

// Wrapf wraps an error with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// InvalidTarget: no direction or entity chosen, or the chosen one is gone.
func InvalidTarget(message string) *Error {
	return New(CodeInvalidTarget, message)
}

// Blocked: the destination or action is physically disallowed.
func Blocked(message string) *Error {
	return New(CodeBlocked, message)
}

// Insufficient: missing charge, equipment, or cooldown not elapsed.
func Insufficient(message string) *Error {
	return New(CodeInsufficient, message)
}

// InvalidItemState: item empty, already in the requested state, or
// incompatible.
func InvalidItemState(message string) *Error {
	return New(CodeInvalidItemState, message)
}

// Cancelled: the player cancelled a sub-prompt.
func Cancelled() *Error {
	return New(CodeCancelled, "Cancelled.")
}

// Internal: a collaborator (store, script runtime) failed.
func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// Internalf creates an internal error with formatted message
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// CodeOf returns the code of err, or CodeInternal for foreign errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// IsCancelled reports whether err is a prompt cancellation.
func IsCancelled(err error) bool {
	return CodeOf(err) == CodeCancelled
}
