// Package cerr defines the categorized errors which may cross the
// use cases boundary. Each category maps to one HTTP status code, so
// the adapter layer can serialize errors without inspecting the
// domain-specific error chain. The wrapped error stays reachable
// through Unwrap for errors.Is/As based decisions.
package cerr

import (
	"fmt"
	"net/http"
)

type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

func Authentication(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusUnauthorized}
}

func Authorization(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusForbidden}
}

func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

// Conflict marks errors which require the caller to refresh its view
// of the data before acting again, such as a refused inventory
// reservation. These errors must reach the end caller as-is and may
// not be coalesced into a generic failure.
func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}
