package render

import (
	"github.com/deepnoodle-ai/texit/identifier"
	"github.com/rs/zerolog"
)

// DefaultMaxDepth is the default limit on expression nesting.
const DefaultMaxDepth = 500

// Config holds the settings for one render. It is read-only once a
// Renderer has been created from it.
type Config struct {
	// Output selects the notation, Tex or Word.
	Output string

	// DummyVar names the integration variable in rendered integrals.
	DummyVar string

	// Lower and Upper are the identifier subscript and superscript markers.
	Lower rune
	Upper rune

	// Verbose logs identifier decomposition to Logger.
	Verbose bool

	// SimplifyOutput keeps scientific literals as written so that the
	// postprocessor can turn them into powers of ten.
	SimplifyOutput bool

	// SimplifyMultipliers writes a*2 as 2a.
	SimplifyMultipliers bool

	// SimplifyFractions writes 0.5, 0.25 and 0.75 as fractions.
	SimplifyFractions bool

	// SimplifyInts writes floats with no fractional part as integers.
	SimplifyInts bool

	// MultiplicationSymbol replaces the output's default multiplication
	// symbol when set.
	MultiplicationSymbol string

	// MaxDepth bounds the nesting depth. Zero or less disables the check.
	MaxDepth int

	// Filename is reported in error locations.
	Filename string

	Logger zerolog.Logger
}

// DefaultConfig returns the settings used when none are given.
func DefaultConfig() Config {
	return Config{
		Output:              Tex,
		DummyVar:            "u",
		Lower:               identifier.DefaultLower,
		Upper:               identifier.DefaultUpper,
		SimplifyOutput:      true,
		SimplifyMultipliers: true,
		MaxDepth:            DefaultMaxDepth,
		Logger:              zerolog.Nop(),
	}
}
