// Package kerr is the categorized, code-tagged error model shared by every
// layer of the harness. It is the only channel used for expected failures;
// invariant violations (reading a value off a failed operation) panic
// instead, per the taxonomy in the project's error-handling design. An
// unknown handle passed back to the loader's Unload is reported as an
// InvalidArgument error, not a panic.
package kerr

import (
	"errors"
	"fmt"
	"strings"
)

// Category partitions the error space. Codes are banded per category
// (see codes.go) so a code's range identifies its category without the
// tag, but Category is still carried explicitly for fast dispatch.
type Category int

const (
	CategoryGeneral Category = iota
	CategoryBackend
	CategoryShaderCompile
	CategoryImaging
	CategorySystem
	CategoryTest
	CategoryValidation
)

func (c Category) String() string {
	switch c {
	case CategoryGeneral:
		return "general"
	case CategoryBackend:
		return "backend"
	case CategoryShaderCompile:
		return "shader-compile"
	case CategoryImaging:
		return "imaging"
	case CategorySystem:
		return "system"
	case CategoryTest:
		return "test"
	case CategoryValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is a categorized failure value with optional context, a suggested
// fix, and a chain of nested causes. It implements the standard error
// interface plus Unwrap so callers can use errors.Is/errors.As.
type Error struct {
	Category   Category
	Code       Code
	Message    string
	Context    string
	Suggestion string
	Nested     []*Error
}

// New creates an Error with no context or suggestion.
func New(cat Category, code Code, message string) *Error {
	return &Error{Category: cat, Code: code, Message: message}
}

// Newf is New with fmt.Sprintf-style formatting of message.
func Newf(cat Category, code Code, format string, args ...any) *Error {
	return New(cat, code, fmt.Sprintf(format, args...))
}

// WithContext attaches additional context (a path, device name, etc.)
// and returns the receiver for chaining.
func (e *Error) WithContext(context string) *Error {
	e.Context = context
	return e
}

// WithSuggestion overrides the code's default suggestion.
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestion = suggestion
	return e
}

// Wrap nests cause under a new error, mirroring the C++ ErrorInfo.nested
// chaining — the outer error does not lose the inner one.
func Wrap(cat Category, code Code, message string, cause error) *Error {
	e := New(cat, code, message)
	if ne := asError(cause); ne != nil {
		e.Nested = append(e.Nested, ne)
	} else if cause != nil {
		e.Nested = append(e.Nested, New(CategoryGeneral, CodeUnknownError, cause.Error()))
	}
	return e
}

func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// Error implements the error interface. Format: "[category/code] message
// (context) - suggestion", with nested causes indented beneath, matching
// the command-line formatting contract in the error-handling design.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s/%d] %s", e.Category, e.Code, e.Message)
	if e.Context != "" {
		fmt.Fprintf(&b, " (%s)", e.Context)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " - %s", e.Suggestion)
	}
	for _, n := range e.Nested {
		b.WriteString("\n  caused by: ")
		b.WriteString(indent(n.Error()))
	}
	return b.String()
}

func indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n  ")
}

// Is allows errors.Is(err, target) to match on category+code equality
// when target is also a *Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Category == t.Category && e.Code == t.Code
}

// Unwrap exposes the Nested causes to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	out := make([]error, len(e.Nested))
	for i, n := range e.Nested {
		out[i] = n
	}
	return out
}

// WithSuggestionFromTable fills Suggestion from the code->suggestion
// policy table if one isn't already set.
func (e *Error) WithSuggestionFromTable() *Error {
	if e.Suggestion == "" {
		if s, ok := suggestions[e.Code]; ok {
			e.Suggestion = s
		}
	}
	return e
}

// NewWithSuggestion is New plus an automatic suggestion lookup.
func NewWithSuggestion(cat Category, code Code, message string) *Error {
	return New(cat, code, message).WithSuggestionFromTable()
}
