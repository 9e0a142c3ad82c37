package main

import (
	"context"
	goerrors "errors"
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/texit"
	"github.com/deepnoodle-ai/texit/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type batchRenderer func(ctx context.Context, exprs []string, opts ...texit.Option) ([]string, error)

// renderResult is one entry of the JSON output.
type renderResult struct {
	Line   int    `json:"line,omitempty"`
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
	Code   string `json:"code,omitempty"`
}

func renderExpressions(cmd *cobra.Command, v *viper.Viper, args []string, render batchRenderer) error {
	format, _ := cmd.Flags().GetString("output")
	format = strings.ToLower(format)
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown output format: %s", format)
	}
	text, name, err := getInput(cmd, args)
	if err != nil {
		return err
	}
	lines := splitLines(text)
	if len(lines) == 0 {
		return goerrors.New("no expressions to render")
	}
	opts, err := getRenderOptions(cmd, v)
	if err != nil {
		return err
	}
	// Each line is parsed on its own, so positions inside an error are
	// relative to the line. The file and line are reported in the header.
	exprs := make([]string, len(lines))
	for i, line := range lines {
		exprs[i] = line.Text
	}

	outputs, err := render(cmd.Context(), exprs, opts...)
	failures := map[int]error{}
	if err != nil {
		var merr *multierror.Error
		if !goerrors.As(err, &merr) {
			return err
		}
		for _, e := range merr.Errors {
			var exprErr *texit.ExpressionError
			if !goerrors.As(e, &exprErr) {
				return e
			}
			failures[exprErr.Index] = exprErr.Err
		}
	}

	if format == "json" {
		results := make([]renderResult, len(exprs))
		for i, line := range lines {
			results[i] = renderResult{Line: line.Number, Input: line.Text, Output: outputs[i]}
			if ferr, ok := failures[i]; ok {
				results[i].Error = ferr.Error()
				results[i].Code = string(errors.CodeOf(ferr))
			}
		}
		if err := writeJSON(cmd.OutOrStdout(), v, results); err != nil {
			return err
		}
	} else {
		colored := useColor(v, cmd.ErrOrStderr())
		for i := range exprs {
			ferr, failed := failures[i]
			if !failed {
				fmt.Fprintln(cmd.OutOrStdout(), outputs[i])
				continue
			}
			switch {
			case name != "":
				fmt.Fprintf(cmd.ErrOrStderr(), "%s:%d: %s\n", name, lines[i].Number, lines[i].Text)
			case len(lines) > 1:
				fmt.Fprintf(cmd.ErrOrStderr(), "line %d: %s\n", lines[i].Number, lines[i].Text)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), errors.Format(ferr, colored))
		}
	}
	if len(failures) > 0 {
		return errRenderFailed
	}
	return nil
}
