package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is matched by every configuration error: unreadable or
// unparseable sources, duplicate ids and references to unknown jobs.
var ErrInvalid = errors.New("invalid job configuration")

// Error describes a configuration failure tied to a particular source.
type Error struct {
	// Source is the file or component the failure originates from.
	Source string
	Err    error
}

// NewError wraps err as a configuration error for source.
func NewError(source string, err error) *Error {
	return &Error{Source: source, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("configuration error in %s: %v", e.Source, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalid.
func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}
