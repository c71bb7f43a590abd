package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig   = "CONFIG"
	ErrEndpoint = "ENDPOINT" // address cannot be turned into a request target
	ErrFetch    = "FETCH"    // network or decode failure during a poll
	ErrPersist  = "PERSIST"  // layout store write/read failure
	ErrLayout   = "LAYOUT"   // edit against an unknown tile, bad import, etc.
)

// Status tokens surfaced to the dashboard for poll failures.
const (
	StatusConnecting      = "connecting"
	StatusInvalidEndpoint = "invalid-endpoint"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrFetch code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrFetch,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var tmErr *Error
	if errors.As(err, &tmErr) {
		return tmErr.Code == code
	}
	return false
}

// StatusToken maps a poll failure to the short token the dashboard shows.
// An unusable endpoint reads "invalid-endpoint"; everything else is
// treated as transient and reads "connecting". A nil error has no token.
func StatusToken(err error) string {
	if err == nil {
		return ""
	}
	if IsCode(err, ErrEndpoint) {
		return StatusInvalidEndpoint
	}
	return StatusConnecting
}

// Summary returns the first line of a structured error without the failure
// symbol, suitable for a one-line status bar. Plain errors pass through.
func Summary(err error) string {
	if err == nil {
		return ""
	}
	var tmErr *Error
	if errors.As(err, &tmErr) {
		return tmErr.Message
	}
	return err.Error()
}
