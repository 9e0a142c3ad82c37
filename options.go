package texit

import (
	"unicode"

	"github.com/deepnoodle-ai/texit/parser"
	"github.com/deepnoodle-ai/texit/render"
	"github.com/rs/zerolog"
)

// Option configures a render.
type Option func(*options)

type options struct {
	cfg       render.Config
	enclosure *[2]string
}

func collectOptions(opts ...Option) *options {
	o := &options{cfg: render.DefaultConfig()}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) parserOpts() []parser.Option {
	var opts []parser.Option
	if o.cfg.Filename != "" {
		opts = append(opts, parser.WithFilename(o.cfg.Filename))
	}
	if o.cfg.MaxDepth > 0 {
		opts = append(opts, parser.WithMaxDepth(o.cfg.MaxDepth))
	}
	// Markers that are not already identifier characters must be accepted
	// inside names.
	var extra []rune
	for _, r := range []rune{o.cfg.Lower, o.cfg.Upper} {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			extra = append(extra, r)
		}
	}
	if len(extra) > 0 {
		opts = append(opts, parser.WithIdentRunes(extra...))
	}
	return opts
}

// WithOutput selects the output notation: "tex" (the default) or "word".
func WithOutput(output string) Option {
	return func(o *options) {
		o.cfg.Output = output
	}
}

// WithDummyVar sets the integration variable used when rendering quad().
// The default is "u".
func WithDummyVar(name string) Option {
	return func(o *options) {
		o.cfg.DummyVar = name
	}
}

// WithEnclosure sets the text placed before and after the rendered
// expression. By default LaTeX output is wrapped in "$$" and word processor
// output is not wrapped.
func WithEnclosure(prefix, suffix string) Option {
	return func(o *options) {
		o.enclosure = &[2]string{prefix, suffix}
	}
}

// WithMultiplicationSymbol replaces the symbol placed between two
// non-numeric factors.
func WithMultiplicationSymbol(symbol string) Option {
	return func(o *options) {
		o.cfg.MultiplicationSymbol = symbol
	}
}

// WithSimplifyOutput controls the postprocessing pass that writes
// scientific literals as powers of ten and drops parentheses around bare
// numbers. Enabled by default.
func WithSimplifyOutput(enabled bool) Option {
	return func(o *options) {
		o.cfg.SimplifyOutput = enabled
	}
}

// WithMarkers sets the subscript and superscript marker characters used to
// decompose identifiers. The defaults are '_' and 'ˆ'.
func WithMarkers(lower, upper rune) Option {
	return func(o *options) {
		o.cfg.Lower = lower
		o.cfg.Upper = upper
	}
}

// WithVerbose logs identifier decomposition at debug level.
func WithVerbose(enabled bool) Option {
	return func(o *options) {
		o.cfg.Verbose = enabled
	}
}

// WithSimplifyFractions writes 0.5, 0.25 and 0.75 as fractions.
func WithSimplifyFractions(enabled bool) Option {
	return func(o *options) {
		o.cfg.SimplifyFractions = enabled
	}
}

// WithSimplifyInts writes floats without a fractional part as integers.
func WithSimplifyInts(enabled bool) Option {
	return func(o *options) {
		o.cfg.SimplifyInts = enabled
	}
}

// WithSimplifyMultipliers writes a*2 as 2a. Enabled by default.
func WithSimplifyMultipliers(enabled bool) Option {
	return func(o *options) {
		o.cfg.SimplifyMultipliers = enabled
	}
}

// WithLogger sets the logger for verbose output and debug traces.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.cfg.Logger = logger
	}
}

// WithMaxDepth bounds expression nesting for both parsing and rendering.
// The default is 500.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.cfg.MaxDepth = depth
	}
}

// WithFilename sets the filename reported in error messages.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.cfg.Filename = filename
	}
}
