package parser

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/texit/errors"
	"github.com/deepnoodle-ai/texit/token"
)

// Error kinds.
const (
	KindSyntax = "syntax error" // the lexer could not tokenize the input
	KindParse  = "parse error"  // the tokens do not form a supported expression
)

// Error is a single positioned parse failure.
type Error struct {
	Kind     string
	Code     errors.ErrorCode
	Message  string
	Cause    error // lexer error, if any; takes precedence over Message
	Filename string
	Start    token.Position
	End      token.Position
	Line     string // text of the source line containing Start
}

func (e *Error) text() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Error() string {
	msg := e.text()
	if e.Kind != "" {
		msg = e.Kind + ": " + msg
	}
	if e.Start.IsValid() || e.Filename != "" {
		loc := errors.SourceLocation{
			Filename: e.Filename,
			Line:     e.Start.LineNumber(),
			Column:   e.Start.ColumnNumber(),
		}
		msg = fmt.Sprintf("%s (%s)", msg, loc)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// ToFormatted converts the error for display with errors.Formatter. A token
// spanning several columns on one line is underlined in full.
func (e *Error) ToFormatted() *errors.FormattedError {
	endColumn := 0
	if e.End.Line == e.Start.Line && e.End.Char > e.Start.Char+1 {
		endColumn = e.End.ColumnNumber() - 1
	}
	return &errors.FormattedError{
		Code:      e.Code,
		Kind:      e.Kind,
		Message:   e.text(),
		Filename:  e.Filename,
		Line:      e.Start.LineNumber(),
		Column:    e.Start.ColumnNumber(),
		EndColumn: endColumn,
		SourceLines: []errors.SourceLineEntry{
			{Number: e.Start.LineNumber(), Text: e.Line, IsMain: true},
		},
	}
}

func (e *Error) FriendlyErrorMessage() string {
	return errors.NewFormatter(false).Format(e.ToFormatted())
}

func tokenTypeDescription(t token.Type) string {
	switch t {
	case token.EOF:
		return "end of input"
	case token.IDENT:
		return "identifier"
	case token.NEWLINE:
		return "newline"
	default:
		return string(t)
	}
}

func tokenDescription(t token.Token) string {
	if t.Type == token.EOF || t.Type == token.NEWLINE || t.Literal == "" {
		return tokenTypeDescription(t.Type)
	}
	return t.Literal
}

// Errors is the error returned by Parse. It holds every failure found, in
// source order.
type Errors struct {
	list []*Error
}

// NewErrors returns nil when list is empty.
func NewErrors(list []*Error) *Errors {
	if len(list) == 0 {
		return nil
	}
	return &Errors{list: list}
}

func (e *Errors) Error() string {
	switch len(e.list) {
	case 0:
		return ""
	case 1:
		return e.list[0].Error()
	}
	var b strings.Builder
	b.WriteString(e.list[0].Error())
	fmt.Fprintf(&b, " (and %d more errors)", len(e.list)-1)
	return b.String()
}

// All returns the individual errors.
func (e *Errors) All() []*Error { return e.list }

// Len returns the number of errors.
func (e *Errors) Len() int { return len(e.list) }

// First returns the first error, or nil.
func (e *Errors) First() *Error {
	if len(e.list) == 0 {
		return nil
	}
	return e.list[0]
}

func (e *Errors) FriendlyErrorMessage() string {
	return errors.NewFormatter(false).FormatMultiple(e.ToFormattedMultiple())
}

func (e *Errors) ToFormattedMultiple() []*errors.FormattedError {
	out := make([]*errors.FormattedError, len(e.list))
	for i, err := range e.list {
		out[i] = err.ToFormatted()
	}
	return out
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *Errors) Unwrap() []error {
	out := make([]error, len(e.list))
	for i, err := range e.list {
		out[i] = err
	}
	return out
}
