// Package errors defines the errors reported while parsing and rendering
// expressions, along with a formatter that displays them with source context.
package errors

import (
	goerrors "errors"
	"fmt"
	"strings"
)

// Sentinels matched by errors.Is against the concrete error types below.
var (
	ErrInputType         = goerrors.New("input must be a valid UTF-8 string")
	ErrSeparator         = goerrors.New("inconsistent identifier markers")
	ErrUnknownComparator = goerrors.New("unknown comparator")
	ErrUnsupportedOutput = goerrors.New("unsupported output")
	ErrUnsupportedNode   = goerrors.New("unsupported syntax")
	ErrMaxDepth          = goerrors.New("maximum nesting depth exceeded")
)

// SourceLocation represents a position in source code.
type SourceLocation struct {
	Filename string
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Source   string // The line of source code
}

// String returns a formatted string representation of the source location.
func (s SourceLocation) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsZero returns true if the location has not been set.
func (s SourceLocation) IsZero() bool {
	return s.Line == 0 && s.Column == 0
}

// FriendlyError is an interface for errors that have a human friendly message
// in addition to a the lower level default error message.
type FriendlyError interface {
	Error() string
	FriendlyErrorMessage() string
}

// FormattableError is an interface for errors that can be formatted with
// the enhanced error formatter (with colors, source context, etc).
type FormattableError interface {
	Error() string
	ToFormatted() *FormattedError
}

// MultiFormattableError is implemented by errors that aggregate several
// formattable errors, such as a list of parse errors.
type MultiFormattableError interface {
	Error() string
	ToFormattedMultiple() []*FormattedError
}

// InputTypeError reports input that is not a valid UTF-8 string.
type InputTypeError struct {
	Offset int // byte offset of the first invalid sequence
}

func (e *InputTypeError) Error() string {
	return fmt.Sprintf("%s (invalid byte at offset %d)", ErrInputType, e.Offset)
}

func (e *InputTypeError) Is(target error) bool { return target == ErrInputType }

// SeparatorError reports an identifier whose subscript/superscript markers
// are nested inconsistently, for example a run mixing both markers.
type SeparatorError struct {
	Identifier string // the identifier being decomposed
	Segment    string // the part of the identifier being split
	Run        string // the offending marker run
	Level      int    // the nesting level at which the run was found
}

func (e *SeparatorError) Error() string {
	return fmt.Sprintf("%s in %q: unexpected marker run %q at level %d",
		ErrSeparator, e.Identifier, e.Run, e.Level)
}

func (e *SeparatorError) Is(target error) bool { return target == ErrSeparator }

// UnknownComparatorError reports a comparison operator with no typeset form.
type UnknownComparatorError struct {
	Comparator string
	Location   SourceLocation
}

func (e *UnknownComparatorError) Error() string {
	return fmt.Sprintf("%s %q", ErrUnknownComparator, e.Comparator)
}

func (e *UnknownComparatorError) Is(target error) bool { return target == ErrUnknownComparator }

func (e *UnknownComparatorError) ToFormatted() *FormattedError {
	return locatedError(E2002, e.Error(), e.Location, len(e.Comparator), "")
}

// UnsupportedOutputError reports an output variant that is not recognized.
type UnsupportedOutputError struct {
	Output    string
	Supported []string
}

func (e *UnsupportedOutputError) Error() string {
	return fmt.Sprintf("%s %q (supported: %s)", ErrUnsupportedOutput, e.Output,
		strings.Join(e.Supported, ", "))
}

func (e *UnsupportedOutputError) Is(target error) bool { return target == ErrUnsupportedOutput }

func (e *UnsupportedOutputError) ToFormatted() *FormattedError {
	return &FormattedError{
		Code:    E3002,
		Kind:    "config error",
		Message: e.Error(),
		Hint:    FormatSuggestions(SuggestSimilar(e.Output, e.Supported)),
	}
}

// UnsupportedNodeError reports a syntax construct the renderer has no
// notation for, such as a list display or an attribute access.
type UnsupportedNodeError struct {
	Kind     string // node kind, e.g. "List"
	Source   string // the construct as written
	Location SourceLocation
}

func (e *UnsupportedNodeError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s: %s", ErrUnsupportedNode, e.Kind)
	}
	return fmt.Sprintf("%s: %s %s", ErrUnsupportedNode, e.Kind, e.Source)
}

func (e *UnsupportedNodeError) Is(target error) bool { return target == ErrUnsupportedNode }

func (e *UnsupportedNodeError) ToFormatted() *FormattedError {
	return locatedError(E2003, e.Error(), e.Location, len(e.Source), "")
}

// MaxDepthError reports an expression nested deeper than the renderer allows.
type MaxDepthError struct {
	Limit    int
	Location SourceLocation
}

func (e *MaxDepthError) Error() string {
	return fmt.Sprintf("%s (limit %d)", ErrMaxDepth, e.Limit)
}

func (e *MaxDepthError) Is(target error) bool { return target == ErrMaxDepth }

func (e *MaxDepthError) ToFormatted() *FormattedError {
	return locatedError(E2004, e.Error(), e.Location, 1, "simplify the expression or raise the depth limit")
}

func locatedError(code ErrorCode, msg string, loc SourceLocation, width int, hint string) *FormattedError {
	f := &FormattedError{
		Code:     code,
		Kind:     "render error",
		Message:  msg,
		Filename: loc.Filename,
		Line:     loc.Line,
		Column:   loc.Column,
		Hint:     hint,
	}
	if width > 1 {
		f.EndColumn = loc.Column + width - 1
	}
	if loc.Source != "" {
		f.SourceLines = []SourceLineEntry{{Number: loc.Line, Text: loc.Source, IsMain: true}}
	}
	return f
}

// Format returns the friendliest rendering of err available: a formatted
// block for errors that carry source context, otherwise err.Error().
func Format(err error, useColor bool) string {
	f := NewFormatter(useColor)
	var multi MultiFormattableError
	if goerrors.As(err, &multi) {
		return f.FormatMultiple(multi.ToFormattedMultiple())
	}
	var one FormattableError
	if goerrors.As(err, &one) {
		return f.Format(one.ToFormatted())
	}
	return err.Error()
}

// CodeOf returns the code of the first error in err's chain that carries
// one, or an empty code.
func CodeOf(err error) ErrorCode {
	var multi MultiFormattableError
	if goerrors.As(err, &multi) {
		if all := multi.ToFormattedMultiple(); len(all) > 0 {
			return all[0].Code
		}
	}
	var one FormattableError
	if goerrors.As(err, &one) {
		return one.ToFormatted().Code
	}
	switch {
	case goerrors.Is(err, ErrSeparator):
		return E2001
	case goerrors.Is(err, ErrInputType):
		return E3001
	}
	return ""
}
