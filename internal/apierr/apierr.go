package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Codes classify where an operation failed so handlers can pick a status and
// callers can tell "service unreachable" apart from "service replied with garbage".
const (
	CodeNotFound        = "not_found"
	CodeValidation      = "validation"
	CodeUnauthorized    = "unauthorized"
	CodeUpstream        = "upstream"
	CodeMalformedOutput = "malformed_output"
	CodePersistence     = "persistence"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(err error) *Error {
	return New(http.StatusNotFound, CodeNotFound, err)
}

func Validation(err error) *Error {
	return New(http.StatusBadRequest, CodeValidation, err)
}

func Unauthorized(err error) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, err)
}

func Upstream(err error) *Error {
	return New(http.StatusInternalServerError, CodeUpstream, err)
}

func MalformedOutput(err error) *Error {
	return New(http.StatusInternalServerError, CodeMalformedOutput, err)
}

func Persistence(err error) *Error {
	return New(http.StatusInternalServerError, CodePersistence, err)
}

// Status returns the HTTP status carried by err, or 500 when err is not an
// *Error.
func Status(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == code
}
