package decorator

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes decoration errors.
type ErrorCode string

const (
	// ErrCodeMalformedDecorator indicates a decorator without a strategy or component.
	ErrCodeMalformedDecorator ErrorCode = "MALFORMED_DECORATOR"

	// ErrCodeNonAdvancingPattern indicates a strategy that matched the empty string.
	ErrCodeNonAdvancingPattern ErrorCode = "NON_ADVANCING_PATTERN"

	// ErrCodeRendererFailed indicates a renderer returned an error.
	ErrCodeRendererFailed ErrorCode = "RENDERER_FAILED"
)

// Error is a decoration failure. Renderer failures wrap the renderer's own
// error, so errors.Is and errors.As see through it.
type Error struct {
	Code ErrorCode

	Message string

	// Decorator names the decorator involved, when known.
	Decorator string

	// Index is the decorator's position in its list, or -1.
	Index int

	Err error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Decorator != "" {
		msg = fmt.Sprintf("%s (decorator=%s, index=%d)", msg, e.Decorator, e.Index)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsMalformed reports whether err is a malformed decorator error.
func IsMalformed(err error) bool {
	return hasCode(err, ErrCodeMalformedDecorator)
}

// IsNonAdvancing reports whether err is a non-advancing pattern error.
func IsNonAdvancing(err error) bool {
	return hasCode(err, ErrCodeNonAdvancingPattern)
}

// IsRendererFailure reports whether err came from a renderer.
func IsRendererFailure(err error) bool {
	return hasCode(err, ErrCodeRendererFailed)
}

func hasCode(err error, code ErrorCode) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

func newMalformedError(name string, index int, message string) *Error {
	return &Error{
		Code:      ErrCodeMalformedDecorator,
		Message:   message,
		Decorator: name,
		Index:     index,
	}
}

func newNonAdvancingError(pattern string, offset int) *Error {
	return &Error{
		Code:    ErrCodeNonAdvancingPattern,
		Message: fmt.Sprintf("pattern %q matched the empty string at offset %d", pattern, offset),
		Index:   -1,
	}
}

// WithDecorator returns a copy of err annotated with the decorator name and
// list position. Use it for errors from Scan and Validate; errors that are
// not *Error are wrapped as renderer failures.
func WithDecorator(err error, d Decorator, index int) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		annotated := *de
		annotated.Decorator = d.label()
		annotated.Index = index
		return &annotated
	}
	return RendererFailure(err, d, index)
}

// RendererFailure wraps an error returned by d's Component. The original
// error is kept intact, even when it is itself an *Error.
func RendererFailure(err error, d Decorator, index int) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:      ErrCodeRendererFailed,
		Message:   "renderer returned an error",
		Decorator: d.label(),
		Index:     index,
		Err:       err,
	}
}
