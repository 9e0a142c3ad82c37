package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/texit"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// errRenderFailed is returned once every failure has already been reported.
var errRenderFailed = errors.New("render failed")

func newRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "texit [expression]",
		Short: "Convert code formulas to LaTeX or Word equations",
		Long: `Convert code formulas to LaTeX or Word equations.

The expression is read from the command line, from --file, or from stdin.
Multi-line input renders one expression per line.`,
		Example: `  texit 'Re_x=(rho*v*x)/mu'
  texit --format word '2*sqrt(2*pi*k*T_e/m_e)'
  cat formulas.txt | texit -o json`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(v); err != nil {
				return err
			}
			processGlobalFlags(v)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderExpressions(cmd, v, args, texit.RenderAll)
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "config file (default is $HOME/.texit.yaml)")
	pf.Bool("no-color", false, "disable colored output")
	pf.StringP("format", "f", texit.Outputs()[0],
		fmt.Sprintf("output notation (%s)", strings.Join(texit.Outputs(), ", ")))
	pf.String("dummy-var", "u", "integration variable used for quad()")
	pf.String("lower", "_", "subscript marker")
	pf.String("upper", "ˆ", "superscript marker")
	pf.Bool("simplify-output", true, "write scientific literals as powers of ten")
	pf.Bool("simplify-multipliers", true, "write a*2 as 2a")
	pf.Bool("simplify-fractions", false, "write 0.5, 0.25 and 0.75 as fractions")
	pf.Bool("simplify-ints", false, "write integral floats without a fractional part")
	pf.String("mult", "", "symbol placed between non-numeric factors")
	pf.String("enclosure", "", `prefix and suffix separated by a comma, e.g. "\[,\]"`)
	pf.Int("max-depth", 0, "maximum expression nesting (0 uses the default)")
	pf.BoolP("verbose", "v", false, "log identifier decomposition")

	addInputFlags(cmd)
	cmd.Flags().StringP("output", "o", "text", "result format (text, json)")
	cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(
		outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp))
	cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		texit.Outputs(), cobra.ShellCompDirectiveNoFileComp))

	v.BindPFlags(pf)

	cmd.AddCommand(newAstCmd(v), newFortranCmd(v), newServeCmd(v))
	return cmd
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("file", "", "read expressions from a file")
	cmd.Flags().Bool("stdin", false, "read expressions from stdin")
}

// loadConfig reads the optional config file and TEXIT_* environment
// variables. A missing default config file is not an error.
func loadConfig(v *viper.Viper) error {
	v.SetEnvPrefix("texit")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		return v.ReadInConfig()
	}
	home, err := homedir.Dir()
	if err != nil {
		return nil
	}
	v.AddConfigPath(home)
	v.SetConfigName(".texit")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}
