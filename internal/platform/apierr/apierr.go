package apierr

import (
	"errors"
	"fmt"
	"net/http"
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

// StatusOf reports the HTTP status carried by err, or 500 when err carries no
// status of its own.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Status != 0 {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}

// CodeOf reports the machine-readable code carried by err, or "internal".
func CodeOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Code != "" {
		return apiErr.Code
	}
	return "internal"
}
