// Package texit converts code-like formulas into typeset notation.
//
//	out, _ := texit.Render(ctx, "Re_x=(rho*v*x)/mu")
//	// $$Re_x=\frac{\rho v x}{\mu}$$
//
// An expression goes through four stages: preprocessing (Unicode glyphs and
// module qualifiers), parsing, rendering, and an optional postprocessing pass
// that writes scientific literals as powers of ten. Every call is
// independent, so Render may be used from many goroutines at once.
package texit

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/deepnoodle-ai/texit/ast"
	"github.com/deepnoodle-ai/texit/errors"
	"github.com/deepnoodle-ai/texit/fortran"
	"github.com/deepnoodle-ai/texit/parser"
	"github.com/deepnoodle-ai/texit/postprocess"
	"github.com/deepnoodle-ai/texit/preprocess"
	"github.com/deepnoodle-ai/texit/render"
	"github.com/hashicorp/go-multierror"
)

// Outputs lists the supported output notations.
func Outputs() []string {
	return render.Outputs()
}

// Parse preprocesses expr and returns its syntax tree.
func Parse(ctx context.Context, expr string, opts ...Option) (*ast.Program, error) {
	o := collectOptions(opts...)
	if err := checkInput(expr); err != nil {
		return nil, err
	}
	program, _, err := parse(ctx, expr, o)
	return program, err
}

// parse returns the syntax tree along with the preprocessed text it was
// built from.
func parse(ctx context.Context, expr string, o *options) (*ast.Program, string, error) {
	src := preprocess.New(preprocess.WithScientific(o.cfg.SimplifyOutput)).Process(expr)
	program, err := parser.Parse(ctx, src, o.parserOpts()...)
	return program, src, err
}

// Render returns the typeset form of expr.
//
// Errors are typed: *errors.InputTypeError for input that is not valid
// UTF-8, *errors.UnsupportedOutputError for an unknown output, *parser.Errors
// for syntax errors, and *errors.SeparatorError,
// *errors.UnknownComparatorError, *errors.UnsupportedNodeError or
// *errors.MaxDepthError from rendering.
func Render(ctx context.Context, expr string, opts ...Option) (string, error) {
	o := collectOptions(opts...)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := checkInput(expr); err != nil {
		return "", err
	}
	// The output is checked before any parsing work is done.
	f, err := render.NewFormatter(o.cfg.Output)
	if err != nil {
		return "", err
	}

	program, src, err := parse(ctx, expr, o)
	if err != nil {
		return "", err
	}
	out, err := render.Render(program, o.cfg, render.WithFormatter(f), render.WithSource(src))
	if err != nil {
		return "", err
	}
	if o.cfg.SimplifyOutput {
		out = postprocess.Simplify(out)
	}

	prefix, suffix := f.Enclosure()
	if o.enclosure != nil {
		prefix, suffix = o.enclosure[0], o.enclosure[1]
	}
	o.cfg.Logger.Debug().
		Str("input", expr).
		Str("output", out).
		Str("format", f.Name()).
		Msg("rendered expression")
	return prefix + out + suffix, nil
}

// RenderFortran renders a formula written with FORTRAN double precision
// literals such as 2.8d-11.
func RenderFortran(ctx context.Context, expr string, opts ...Option) (string, error) {
	return Render(ctx, fortran.ToPython(expr), opts...)
}

// ExpressionError reports the failure of one expression in a batch.
type ExpressionError struct {
	Index int // zero-based position in the batch
	Err   error
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("expression %d: %v", e.Index+1, e.Err)
}

func (e *ExpressionError) Unwrap() error { return e.Err }

// RenderAll renders each expression independently. The result has one entry
// per input, empty where rendering failed, and the error is a
// *multierror.Error holding one *ExpressionError per failure.
func RenderAll(ctx context.Context, exprs []string, opts ...Option) ([]string, error) {
	results := make([]string, len(exprs))
	var result *multierror.Error
	for i, expr := range exprs {
		out, err := Render(ctx, expr, opts...)
		if err != nil {
			result = multierror.Append(result, &ExpressionError{Index: i, Err: err})
			continue
		}
		results[i] = out
	}
	return results, result.ErrorOrNil()
}

func checkInput(expr string) error {
	if utf8.ValidString(expr) {
		return nil
	}
	for i := 0; i < len(expr); {
		r, size := utf8.DecodeRuneInString(expr[i:])
		if r == utf8.RuneError && size == 1 {
			return &errors.InputTypeError{Offset: i}
		}
		i += size
	}
	return &errors.InputTypeError{}
}
