// Package errors provides structured error types for the stablegraph tools.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library callers
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND, NO_EDGE: Missing handles, edges or snapshots
//   - STORAGE_ERROR: Snapshot backend failures
//   - INTERNAL_ERROR: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "invalid node handle: %s", arg)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Attach a code to a library error
//	err := errors.Classify(g.RemoveEdge(a, b))
package errors

import (
	"errors"
	"fmt"

	"github.com/matzehuels/stablegraph/pkg/codec"
	"github.com/matzehuels/stablegraph/pkg/edgelist"
	"github.com/matzehuels/stablegraph/pkg/graph"
	"github.com/matzehuels/stablegraph/pkg/matrix"
	"github.com/matzehuels/stablegraph/pkg/snapshot"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidKey      Code = "INVALID_KEY"
	ErrCodeInvalidState    Code = "INVALID_STATE"
	ErrCodeInvalidEndpoint Code = "INVALID_ENDPOINT"

	// Lookup errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNoEdge   Code = "NO_EDGE"

	// Backend errors
	ErrCodeStorage Code = "STORAGE_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// classes maps library sentinels to codes. Order matters where one error
// could match several entries: the first match wins.
var classes = []struct {
	sentinel error
	code     Code
}{
	{graph.ErrNotFound, ErrCodeNotFound},
	{graph.ErrNoEdgeBetweenNodes, ErrCodeNoEdge},
	{graph.ErrInvalidEndpoint, ErrCodeInvalidEndpoint},
	{graph.ErrInvalidState, ErrCodeInvalidState},
	{codec.ErrUnknownFormat, ErrCodeInvalidFormat},
	{codec.ErrMalformed, ErrCodeInvalidFormat},
	{codec.ErrUnsupportedVersion, ErrCodeUnsupported},
	{codec.ErrDirectionMismatch, ErrCodeInvalidInput},
	{edgelist.ErrSyntax, ErrCodeInvalidFormat},
	{matrix.ErrNotSquare, ErrCodeInvalidInput},
	{snapshot.ErrNotFound, ErrCodeNotFound},
	{snapshot.ErrInvalidKey, ErrCodeInvalidKey},
}

// Classify attaches a code to err based on the library sentinel it wraps.
// Errors that already carry a code are returned unchanged, nil stays nil,
// and unknown errors become INTERNAL_ERROR.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if GetCode(err) != "" {
		return err
	}
	for _, c := range classes {
		if errors.Is(err, c.sentinel) {
			return Wrap(c.code, err, "%s", describe(c.code))
		}
	}
	return Wrap(ErrCodeInternal, err, "%s", describe(ErrCodeInternal))
}

func describe(code Code) string {
	switch code {
	case ErrCodeNotFound:
		return "not found"
	case ErrCodeNoEdge:
		return "no such edge"
	case ErrCodeInvalidEndpoint:
		return "edge endpoint is not a live node"
	case ErrCodeInvalidState:
		return "corrupt graph state"
	case ErrCodeInvalidFormat:
		return "unreadable input"
	case ErrCodeUnsupported:
		return "unsupported input"
	case ErrCodeInvalidKey:
		return "invalid snapshot key"
	case ErrCodeInvalidInput:
		return "invalid input"
	}
	return "unexpected error"
}
