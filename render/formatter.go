package render

import (
	"fmt"
	"unicode/utf8"

	"github.com/deepnoodle-ai/texit/errors"
)

// Output variant names.
const (
	Tex  = "tex"
	Word = "word"
)

// Outputs lists the supported output variants.
func Outputs() []string {
	return []string{Tex, Word}
}

// Formatter supplies the building blocks that differ between output
// notations. Everything else about rendering is shared.
type Formatter interface {
	// Name returns the output variant name.
	Name() string
	// Brackets wraps s in braces.
	Brackets(s string) string
	// Group wraps s as a single unit when it is more than one character.
	Group(s string) string
	// Parenthesis wraps s in visible parentheses.
	Parenthesis(s string) string
	Power(base, exponent string) string
	Division(numerator, denominator string) string
	Sqrt(s string) string
	// Operator returns a bare named operator.
	Operator(name string) string
	// Apply returns a named operator applied to args.
	Apply(name, args string) string
	// Mult returns the default multiplication symbol.
	Mult() string
	// Enclosure returns the default prefix and suffix around a whole
	// rendered expression.
	Enclosure() (string, string)
}

// NewFormatter returns the Formatter for an output variant.
func NewFormatter(output string) (Formatter, error) {
	switch output {
	case Tex:
		return LaTeX{}, nil
	case Word:
		return WordEq{}, nil
	default:
		return nil, &errors.UnsupportedOutputError{Output: output, Supported: Outputs()}
	}
}

// LaTeX formats for LaTeX math mode.
type LaTeX struct{}

func (LaTeX) Name() string { return Tex }

func (LaTeX) Brackets(s string) string { return "{" + s + "}" }

func (f LaTeX) Group(s string) string {
	if utf8.RuneCountInString(s) == 1 {
		return s
	}
	return f.Brackets(s)
}

func (LaTeX) Parenthesis(s string) string { return `\left(` + s + `\right)` }

func (f LaTeX) Power(base, exponent string) string {
	return f.Group(base) + "^" + f.Group(exponent)
}

func (f LaTeX) Division(numerator, denominator string) string {
	return `\frac` + f.Brackets(numerator) + f.Brackets(denominator)
}

func (f LaTeX) Sqrt(s string) string { return `\sqrt` + f.Brackets(s) }

func (LaTeX) Operator(name string) string {
	return fmt.Sprintf(`\operatorname{%s}`, name)
}

func (LaTeX) Apply(name, args string) string {
	return fmt.Sprintf(`\operatorname{%s}\left(%s\right)`, name, args)
}

func (LaTeX) Mult() string { return " " }

func (LaTeX) Enclosure() (string, string) { return "$$", "$$" }

// WordEq formats for the linear equation syntax of word processors, which
// turns unneeded parentheses into invisible groups on its own.
type WordEq struct{}

func (WordEq) Name() string { return Word }

func (WordEq) Brackets(s string) string { return "{" + s + "}" }

func (f WordEq) Group(s string) string { return f.Parenthesis(s) }

func (WordEq) Parenthesis(s string) string { return "(" + s + ")" }

func (f WordEq) Power(base, exponent string) string {
	return f.Group(base) + "^" + f.Group(exponent)
}

func (WordEq) Division(numerator, denominator string) string {
	return "(" + numerator + "/" + denominator + ")"
}

func (WordEq) Sqrt(s string) string { return `\sqrt(` + s + ")" }

func (WordEq) Operator(name string) string { return name }

func (WordEq) Apply(name, args string) string { return name + "(" + args + ")" }

func (WordEq) Mult() string { return `\cdot` }

func (WordEq) Enclosure() (string, string) { return "", "" }
