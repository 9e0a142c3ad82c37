package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/deepnoodle-ai/texit"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// getRenderOptions translates the bound flags, environment and config file
// settings into render options.
func getRenderOptions(cmd *cobra.Command, v *viper.Viper) ([]texit.Option, error) {
	lower, err := marker(v, "lower")
	if err != nil {
		return nil, err
	}
	upper, err := marker(v, "upper")
	if err != nil {
		return nil, err
	}
	opts := []texit.Option{
		texit.WithOutput(v.GetString("format")),
		texit.WithDummyVar(v.GetString("dummy-var")),
		texit.WithMarkers(lower, upper),
		texit.WithSimplifyOutput(v.GetBool("simplify-output")),
		texit.WithSimplifyMultipliers(v.GetBool("simplify-multipliers")),
		texit.WithSimplifyFractions(v.GetBool("simplify-fractions")),
		texit.WithSimplifyInts(v.GetBool("simplify-ints")),
	}
	if sym := v.GetString("mult"); sym != "" {
		opts = append(opts, texit.WithMultiplicationSymbol(sym))
	}
	if enc := v.GetString("enclosure"); enc != "" {
		prefix, suffix, ok := strings.Cut(enc, ",")
		if !ok {
			return nil, fmt.Errorf("invalid enclosure %q: expected prefix,suffix", enc)
		}
		opts = append(opts, texit.WithEnclosure(prefix, suffix))
	}
	if depth := v.GetInt("max-depth"); depth > 0 {
		opts = append(opts, texit.WithMaxDepth(depth))
	}
	if v.GetBool("verbose") {
		logger := zerolog.New(zerolog.ConsoleWriter{
			Out:     cmd.ErrOrStderr(),
			NoColor: v.GetBool("no-color"),
		}).Level(zerolog.DebugLevel)
		opts = append(opts, texit.WithVerbose(true), texit.WithLogger(logger))
	}
	return opts, nil
}

func marker(v *viper.Viper, key string) (rune, error) {
	s := v.GetString(key)
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("invalid %s marker %q: expected a single character", key, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// getInput determines the text to render. There are four possibilities:
//  1. the positional arguments, joined by spaces
//  2. --file <path>
//  3. --stdin
//  4. stdin, when it is not a terminal and nothing else was given
//
// The returned name is the filename to report in errors, if any.
func getInput(cmd *cobra.Command, args []string) (text, name string, err error) {
	path, _ := cmd.Flags().GetString("file")
	useStdin, _ := cmd.Flags().GetBool("stdin")
	sources := 0
	for _, set := range []bool{len(args) > 0, path != "", useStdin} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return "", "", errors.New("multiple input sources specified")
	}

	switch {
	case len(args) > 0:
		return strings.Join(args, " "), "", nil
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "", err
		}
		return string(data), path, nil
	case useStdin || !isTerminal(cmd.InOrStdin()):
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", err
		}
		return string(data), "", nil
	}
	return "", "", errors.New("no input provided")
}

// inputLine is one expression of the input and its 1-based line number.
type inputLine struct {
	Text   string
	Number int
}

// splitLines returns the non-blank lines of text. Lines starting with '#'
// are comments.
func splitLines(text string) []inputLine {
	var lines []inputLine
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, inputLine{Text: line, Number: i + 1})
	}
	return lines
}
