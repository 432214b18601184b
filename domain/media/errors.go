package media

import (
	"fmt"
	"strings"
)

// ValidationError reports invalid caller input: an out-of-range reduction
// factor, an empty input list, or a source file that does not exist.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with a formatted message
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ProbeError reports a failure to determine a file's media properties.
// Detail carries the engine's diagnostic output when available.
type ProbeError struct {
	Path   string
	Detail string
	Err    error
}

func (e *ProbeError) Error() string {
	msg := fmt.Sprintf("probe failed for %s", e.Path)
	if e.Detail != "" {
		msg += ": " + strings.TrimSpace(e.Detail)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// EncodingError reports a failure of the external engine to produce valid
// output: an encode, remux, or concatenation that did not complete, or
// completed without meeting the requested size bound.
type EncodingError struct {
	Op     string
	Detail string
	Err    error
}

func (e *EncodingError) Error() string {
	msg := e.Op + " failed"
	if e.Detail != "" {
		msg += ": " + strings.TrimSpace(e.Detail)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// IOError reports a filesystem failure outside the engine: an unreadable
// input, an unwritable destination, or a failed rename.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
