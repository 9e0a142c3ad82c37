package main

import (
	"context"

	"github.com/deepnoodle-ai/texit"
	"github.com/deepnoodle-ai/texit/fortran"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newFortranCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fortran [expression]",
		Short: "Render formulas written with FORTRAN double precision literals",
		Example: `  texit fortran '2.8d-11 * exp(-(26500 - 0.5 * 1.97 * 11600 )/Tgas)'
  texit fortran --file rates.f90`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderExpressions(cmd, v, args, renderAllFortran)
		},
	}
	addInputFlags(cmd)
	cmd.Flags().StringP("output", "o", "text", "result format (text, json)")
	return cmd
}

func renderAllFortran(ctx context.Context, exprs []string, opts ...texit.Option) ([]string, error) {
	converted := make([]string, len(exprs))
	for i, expr := range exprs {
		converted[i] = fortran.ToPython(expr)
	}
	return texit.RenderAll(ctx, converted, opts...)
}
