// Package preprocess rewrites raw expression text before it is parsed.
//
// Three rewrites are applied, in order: Unicode glyphs are replaced by their
// ASCII names, module qualifiers such as "np." are removed, and (when
// enabled) scientific literals are respelled in a canonical form that the
// renderer and postprocessor recognize.
package preprocess

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Glyph maps a Unicode character to the name it is spelled as.
type Glyph struct {
	From string
	To   string
}

// Order matters: each glyph is replaced in turn over the whole string.
var defaultGlyphs = []Glyph{
	{"α", "alpha"},
	{"β", "beta"},
	{"χ", "chi"},
	{"δ", "delta"},
	{"ε", "epsilon"},
	{"γ", "gamma"},
	{"ψ", "psi"},
	{"θ", "theta"},
	{"κ", "kappa"},
	{"λ", "lambda"},
	{"η", "eta"},
	{"ν", "nu"},
	{"π", "pi"},
	{"ϕ", "phi"},
	{"σ", "sigma"},
	{"τ", "tau"},
	{"ω", "omega"},
	{"ξ", "xi"},
	{"Δ", "Delta"},
	{"φ", "Phi"},
	{"Γ", "Gamma"},
	{"Ψ", "Psi"},
	{"Λ", "Lambda"},
	{"Σ", "Sigma"},
	{"Ξ", "Xi"},
}

// Compound prefixes come before their shorter substrings.
var defaultPrefixes = []string{
	"math",
	"np",
	"numpy",
	"scipy.integrate",
	"scipy",
	"df",
}

// DefaultGlyphs returns a copy of the built-in glyph table.
func DefaultGlyphs() []Glyph {
	return append([]Glyph(nil), defaultGlyphs...)
}

// DefaultPrefixes returns a copy of the built-in module prefix list.
func DefaultPrefixes() []string {
	return append([]string(nil), defaultPrefixes...)
}

// Preprocessor holds the tables used to rewrite expressions.
type Preprocessor struct {
	glyphs     []Glyph
	prefixes   []string
	scientific bool
}

// Option configures a Preprocessor.
type Option func(*Preprocessor)

// WithGlyphs replaces the glyph table.
func WithGlyphs(glyphs []Glyph) Option {
	return func(p *Preprocessor) {
		p.glyphs = glyphs
	}
}

// WithPrefixes replaces the module prefix list. Prefixes are given without
// the trailing period.
func WithPrefixes(prefixes []string) Option {
	return func(p *Preprocessor) {
		p.prefixes = prefixes
	}
}

// WithScientific enables canonicalization of scientific literals.
func WithScientific(enabled bool) Option {
	return func(p *Preprocessor) {
		p.scientific = enabled
	}
}

// New returns a Preprocessor using the built-in tables unless overridden.
func New(opts ...Option) *Preprocessor {
	p := &Preprocessor{
		glyphs:   defaultGlyphs,
		prefixes: defaultPrefixes,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process applies every enabled rewrite to s.
func (p *Preprocessor) Process(s string) string {
	s = ReplaceGlyphs(s, p.glyphs)
	s = StripPrefixes(s, p.prefixes)
	if p.scientific {
		s = NormalizeScientific(s)
	}
	return s
}

// ReplaceGlyphs substitutes each glyph in s with its name.
func ReplaceGlyphs(s string, glyphs []Glyph) string {
	for _, g := range glyphs {
		s = strings.ReplaceAll(s, g.From, g.To)
	}
	return s
}

// StripPrefixes trims surrounding whitespace and removes every "<prefix>."
// occurrence. The removal is textual: a variable named like a module loses
// its qualifier too.
func StripPrefixes(s string, prefixes []string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range prefixes {
		s = strings.ReplaceAll(s, prefix+".", "")
	}
	return s
}

var scientificLiteral = regexp.MustCompile(`(\d*\.?\d+)[eE]([-+]?)(\d+)`)

// NormalizeScientific respells scientific literals as mantissa, lowercase
// "e", optional minus sign and an exponent without leading zeros, so that
// "1E+05" becomes "1e5". Digits that are part of an identifier are left
// alone.
func NormalizeScientific(s string) string {
	matches := scientificLiteral.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		if insideIdentifier(s, m[0]) {
			continue
		}
		mantissa := s[m[2]:m[3]]
		sign := s[m[4]:m[5]]
		exponent := strings.TrimLeft(s[m[6]:m[7]], "0")
		if exponent == "" {
			exponent = "0"
		}
		b.WriteString(s[last:m[0]])
		b.WriteString(mantissa)
		b.WriteString("e")
		if sign == "-" && exponent != "0" {
			b.WriteString("-")
		}
		b.WriteString(exponent)
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

func insideIdentifier(s string, at int) bool {
	if at == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:at])
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
