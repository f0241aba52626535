package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// InternalError carries a base error plus a user-facing hint and structured
// details that can be surfaced by the caller.
type InternalError struct {
	err     error
	mark    error
	hint    string
	details map[string]any
}

func (e *InternalError) Error() string {
	if e.hint != "" {
		return fmt.Sprintf("%s: %s", e.err.Error(), e.hint)
	}
	return e.err.Error()
}

func (e *InternalError) Unwrap() error {
	if e.mark != nil {
		return e.mark
	}
	return e.err
}

// Cause returns the underlying error the builder started from.
func (e *InternalError) Cause() error {
	return e.err
}

// NewError starts an error chain from a plain message.
func NewError(message string) *InternalError {
	return &InternalError{err: errors.New(message)}
}

// NewErrorf starts an error chain from a formatted message.
func NewErrorf(format string, args ...any) *InternalError {
	return &InternalError{err: errors.Newf(format, args...)}
}

// WithError starts an error chain wrapping an existing error.
func WithError(err error) *InternalError {
	return &InternalError{err: err}
}

// WithHint attaches a user-facing hint.
func (e *InternalError) WithHint(hint string) *InternalError {
	e.hint = hint
	return e
}

// WithHintf attaches a formatted user-facing hint.
func (e *InternalError) WithHintf(format string, args ...any) *InternalError {
	e.hint = fmt.Sprintf(format, args...)
	return e
}

// WithReportableDetails attaches structured details safe to report upstream.
func (e *InternalError) WithReportableDetails(details map[string]any) *InternalError {
	e.details = details
	return e
}

// Mark terminates the chain, classifying the error against a sentinel so
// errors.Is(err, sentinel) holds.
func (e *InternalError) Mark(sentinel error) error {
	e.mark = errors.Mark(e.err, sentinel)
	return e
}
