package errors

import (
	"errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategorySetup     Category = "setup"
	CategoryRuntime   Category = "runtime"
	CategoryInvariant Category = "invariant"
	CategoryConfig    Category = "config"
	CategoryCLI       Category = "cli"
)

// Coded is implemented by errors that carry a registry code.
type Coded interface {
	error
	Code() string
}

// QuasarError is a structured error with a code, explanation and hint.
type QuasarError struct {
	// Code is a unique error identifier (e.g., "Q001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *QuasarError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *QuasarError) Unwrap() error {
	return e.Wrapped
}

// Fatal reports whether the error's category aborts the process.
func (e *QuasarError) Fatal() bool {
	return e.Category == CategorySetup || e.Category == CategoryInvariant
}

// WithSuggestion adds a fix suggestion to the error.
func (e *QuasarError) WithSuggestion(s string) *QuasarError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the detailed explanation.
func (e *QuasarError) WithDetail(d string) *QuasarError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *QuasarError) Wrap(err error) *QuasarError {
	e.Wrapped = err
	return e
}

// New creates a QuasarError from a registered error code.
func New(code string) *QuasarError {
	template, ok := registry[code]
	if !ok {
		return &QuasarError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &QuasarError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new QuasarError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *QuasarError {
	return &QuasarError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError converts err into a QuasarError. Errors already of that type are
// returned as is; errors implementing Coded use their own code; anything else
// is wrapped under fallback.
func FromError(err error, fallback string) *QuasarError {
	if err == nil {
		return nil
	}
	var qe *QuasarError
	if errors.As(err, &qe) {
		return qe
	}
	var coded Coded
	if errors.As(err, &coded) {
		return New(coded.Code()).Wrap(err)
	}
	return New(fallback).Wrap(err)
}
