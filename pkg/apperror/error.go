package apperror

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Details carries optional context about a failure.
type Details struct {
	Entity     string `json:"entity,omitempty"`
	Field      string `json:"field,omitempty"`
	Value      any    `json:"value,omitempty"`
	Action     string `json:"action,omitempty"`
	StatusCode int    `json:"statusCode,omitempty"`
}

// Error is the single failure type returned by catalog services.
type Error struct {
	Code      Code
	Message   string
	Details   *Details
	Timestamp time.Time
	cause     error
}

// New creates an error for code using its default message.
func New(code Code) *Error {
	return &Error{
		Code:      code,
		Message:   code.Message(),
		Timestamp: time.Now().UTC(),
	}
}

// Newf creates an error for code with a custom message.
func Newf(code Code, format string, args ...any) *Error {
	e := New(code)
	e.Message = fmt.Sprintf(format, args...)
	return e
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Status returns the HTTP status of the error's code.
func (e *Error) Status() int { return e.Code.Status() }

// WithDetails attaches details and returns e.
func (e *Error) WithDetails(d Details) *Error {
	e.Details = &d
	return e
}

// WithCause records the underlying error. The cause is never serialized.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// Validation builds a field-level validation failure.
func Validation(code Code, entity, field string, value any, message string) *Error {
	e := New(code)
	if message != "" {
		e.Message = message
	}
	return e.WithDetails(Details{Entity: entity, Field: field, Value: value})
}

// NotFound builds a not-found failure naming the missing id.
func NotFound(code Code, entity, id string) *Error {
	return New(code).WithDetails(Details{Entity: entity, Field: "_id", Value: id})
}

// As extracts an *Error from the chain of err.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == code
}

// From normalizes any error into an *Error. Unknown failures become
// GENERIC_INTERNAL_ERROR and expired deadlines become API_TIMEOUT.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		return e
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return New(CodeAPITimeout).WithCause(err)
	}
	return New(CodeInternal).WithCause(err)
}
