// Package response carries the coded error contract of the intent service.
// Every failure a handler can surface (missing message, missing user,
// session backend trouble) is expressed as an *Error whose Code maps
// straight to the HTTP status at the boundary; anything else is treated as
// unexpected and hidden behind a generic apology.
package response

import (
	"errors"
)

// Error pairs an HTTP status code with the underlying cause. Domain
// packages declare their sentinels with NewError and return them as-is.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

// Is matches two coded errors by code and message, so sentinels survive
// errors.Is checks across wrapping.
func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

// NewError builds a coded sentinel. Code is the HTTP status the boundary
// will respond with.
func NewError(code int, err string) error {
	return &Error{code, errors.New(err)}
}
