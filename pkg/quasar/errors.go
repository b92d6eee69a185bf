package quasar

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNoMatch is wrapped by SetupError when a bind selector matches nothing.
var ErrNoMatch = errors.New("quasar: selector matched no elements")

// SetupError reports a failed Bind. It indicates a mismatch between the host
// markup and the program and is not recoverable at runtime.
type SetupError struct {
	Selector string
	Err      error
}

// Error implements the error interface.
func (e *SetupError) Error() string {
	return fmt.Sprintf("quasar: bind %q: %v", e.Selector, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *SetupError) Unwrap() error {
	return e.Err
}

// Code returns the error registry code.
func (e *SetupError) Code() string {
	var re *RenderError
	switch {
	case errors.Is(e.Err, ErrNoMatch):
		return "Q001"
	case errors.As(e.Err, &re):
		return "Q003"
	default:
		return "Q002"
	}
}

// RenderError wraps a failure returned by a component's Render.
type RenderError struct {
	View TypedKey
	Err  error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("quasar: render %s: %v", e.View, e.Err)
}

// Unwrap returns the underlying error.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// Code returns the error registry code.
func (e *RenderError) Code() string {
	return "Q021"
}

// ReentrancyError is the panic value for overlapping exclusive access.
type ReentrancyError struct {
	Resource string
	Reason   string
}

// Error implements the error interface.
func (e *ReentrancyError) Error() string {
	return fmt.Sprintf("quasar: reentrant access to %s: %s", e.Resource, e.Reason)
}

// Code returns the error registry code.
func (e *ReentrancyError) Code() string {
	return "Q040"
}

// TypeMismatchError is the panic value when a stored value does not have
// the type its key encodes.
type TypeMismatchError struct {
	Key TypedKey
	Got reflect.Type
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("quasar: key %s holds %s", e.Key, e.Got)
}

// Code returns the error registry code.
func (e *TypeMismatchError) Code() string {
	return "Q041"
}
