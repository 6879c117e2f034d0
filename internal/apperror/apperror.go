// Package apperror defines the error taxonomy shared by coordinators and
// HTTP handlers: NotFound, AlreadyProcessed, and Validation abort a request
// with a client error; everything else maps to a generic server error so
// internal details (driver errors, partial-write state) never leak to
// clients.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP mapping and caller branching.
type Kind int

const (
	// Internal is the zero kind: an unexpected failure.
	Internal Kind = iota
	// NotFound: a contract, quotation, or pending-record lookup missed.
	NotFound
	// AlreadyProcessed: the duplicate-action guard matched; the approval
	// or rejection was already applied.
	AlreadyProcessed
	// Validation: the request was malformed and rejected before any
	// store access.
	Validation
)

// Error carries a kind alongside a client-safe message and an optional
// wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// NotFoundf formats a NotFound error.
func NotFoundf(format string, args ...any) error {
	return &Error{Kind: NotFound, Msg: fmt.Sprintf(format, args...)}
}

// AlreadyProcessedf formats an AlreadyProcessed error.
func AlreadyProcessedf(format string, args ...any) error {
	return &Error{Kind: AlreadyProcessed, Msg: fmt.Sprintf(format, args...)}
}

// Validationf formats a Validation error.
func Validationf(format string, args ...any) error {
	return &Error{Kind: Validation, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a message to an underlying error, classifying it as
// Internal so the cause is logged but never echoed to clients.
func Wrap(err error, format string, args ...any) error {
	return &Error{Kind: Internal, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind from err, defaulting to Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool { return KindOf(err) == kind }

// HTTPStatus maps an error to its response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case NotFound:
		return http.StatusNotFound
	case AlreadyProcessed:
		return http.StatusConflict
	case Validation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the machine-readable code used in JSON error envelopes.
func Code(err error) string {
	switch KindOf(err) {
	case NotFound:
		return "not_found"
	case AlreadyProcessed:
		return "already_processed"
	case Validation:
		return "validation"
	default:
		return "internal"
	}
}

// Message returns the client-safe message for err. Internal errors get a
// generic message so store failures are never echoed to clients.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Msg
	}
	return "internal server error"
}
