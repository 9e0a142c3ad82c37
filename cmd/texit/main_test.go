package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd(viper.New())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootRendersArgument(t *testing.T) {
	stdout, _, err := execute(t, "", "Re_x=(rho*v*x)/mu")
	require.NoError(t, err)
	require.Equal(t, "$$Re_x=\\frac{\\rho v x}{\\mu}$$\n", stdout)
}

func TestRootFlags(t *testing.T) {
	tests := []struct {
		args     []string
		expected string
	}{
		{[]string{"--format", "word", "x**2/y"}, "((x)^(2)/y)\n"},
		{[]string{"--enclosure", `\[,\]`, "x*y"}, "\\[x y\\]\n"},
		{[]string{"--mult", `\cdot`, "x*y"}, "$$x\\cdot y$$\n"},
		{[]string{"--dummy-var", "t", "quad(f,0,1)"}, "$$\\int_{0}^{1} f(t) dt$$\n"},
		{[]string{"--simplify-output=false", "1e-20*x"}, "$$1e-20x$$\n"},
		{[]string{"--simplify-fractions", "0.5*x"}, "$$\\frac{1}{2} x$$\n"},
		{[]string{"--simplify-multipliers=false", "x*2"}, "$$x\\times2$$\n"},
		{[]string{"--lower", "_", "--upper", "^", "k_i^j"}, "$$k_i^j$$\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			stdout, _, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			require.Equal(t, tt.expected, stdout)
		})
	}
}

func TestRootReadsStdinLines(t *testing.T) {
	stdin := "# rates\na*2\n\nx/y\n"
	stdout, _, err := execute(t, stdin)
	require.NoError(t, err)
	require.Equal(t, "$$2a$$\n$$\\frac{x}{y}$$\n", stdout)

	stdout, _, err = execute(t, "f(x)", "--stdin")
	require.NoError(t, err)
	require.Equal(t, "$$f{\\left(x\\right)}$$\n", stdout)
}

func TestRootReportsFailures(t *testing.T) {
	stdout, stderr, err := execute(t, "a*2\na != b\n")
	require.ErrorIs(t, err, errRenderFailed)
	require.Equal(t, "$$2a$$\n", stdout)
	require.Contains(t, stderr, "line 2: a != b")
	require.Contains(t, stderr, "unknown comparator")
}

func TestRootJSONOutput(t *testing.T) {
	stdout, _, err := execute(t, "x**2\na != b\n1+\n", "-o", "json")
	require.ErrorIs(t, err, errRenderFailed)

	var results []renderResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 3)
	require.Equal(t, renderResult{Line: 1, Input: "x**2", Output: "$$x^2$$"}, results[0])
	require.Equal(t, 2, results[1].Line)
	require.Equal(t, "E2002", results[1].Code)
	require.Contains(t, results[1].Error, "unknown comparator")
	require.NotEmpty(t, results[2].Error)
	require.True(t, strings.HasPrefix(results[2].Code, "E1"))
}

func TestRootFileInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formulas.txt")
	require.NoError(t, os.WriteFile(path, []byte("α*β\nΔE/(k*T)\n"), 0o644))

	stdout, _, err := execute(t, "", "--file", path)
	require.NoError(t, err)
	require.Equal(t, "$$\\alpha \\beta$$\n$$\\frac{\\Delta E}{k T}$$\n", stdout)

	bad := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("# rates\nx*2\n\na != b\n"), 0o644))
	stdout, stderr, err := execute(t, "", "--file", bad)
	require.ErrorIs(t, err, errRenderFailed)
	require.Equal(t, "$$2x$$\n", stdout)
	require.Contains(t, stderr, "bad.txt:4: a != b")
	require.NotContains(t, stderr, "bad.txt:1:")

	stdout, _, err = execute(t, "", "--file", bad, "-o", "json")
	require.ErrorIs(t, err, errRenderFailed)
	var results []renderResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 2)
	require.Equal(t, 2, results[0].Line)
	require.Equal(t, 4, results[1].Line)
	require.Equal(t, "E2002", results[1].Code)
}

func TestRootInputErrors(t *testing.T) {
	_, _, err := execute(t, "x", "--stdin", "y")
	require.EqualError(t, err, "multiple input sources specified")

	_, _, err = execute(t, "\n# nothing\n")
	require.EqualError(t, err, "no expressions to render")

	_, _, err = execute(t, "", "--lower", "ab", "x")
	require.ErrorContains(t, err, "invalid lower marker")

	_, _, err = execute(t, "", "--enclosure", "$$", "x")
	require.ErrorContains(t, err, "invalid enclosure")

	_, _, err = execute(t, "", "-o", "yaml", "x")
	require.EqualError(t, err, "unknown output format: yaml")
}

func TestRootConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: word\nsimplify-multipliers: false\n"), 0o644))

	stdout, _, err := execute(t, "", "--config", path, "x*2")
	require.NoError(t, err)
	require.Equal(t, "x\\times2\n", stdout)

	// Flags take precedence over the config file.
	stdout, _, err = execute(t, "", "--config", path, "--format", "tex", "x/y")
	require.NoError(t, err)
	require.Equal(t, "$$\\frac{x}{y}$$\n", stdout)
}

func TestRootEnvironment(t *testing.T) {
	t.Setenv("TEXIT_FORMAT", "word")
	t.Setenv("TEXIT_DUMMY_VAR", "s")
	stdout, _, err := execute(t, "", "quad(f,a,b)")
	require.NoError(t, err)
	require.Equal(t, "\\int_{a}^{b} f(s) ds\n", stdout)
}

func TestFortranCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "fortran", "x=1.0d-2", "--simplify-output=false")
	require.NoError(t, err)
	require.Equal(t, "$$x=0.01$$\n", stdout)

	stdout, _, err = execute(t, "2.8d-11*T\n", "fortran")
	require.NoError(t, err)
	require.Equal(t, "$$2.8\\times10^{-11}T$$\n", stdout)
}

func TestAstCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "ast", "np.sqrt(x)+1")
	require.NoError(t, err)
	require.Equal(t, strings.Join([]string{
		"Program",
		"└── ExprStmt",
		`    └── BinaryOp "Add"`,
		"        ├── Call",
		`        │   ├── Ident "sqrt"`,
		`        │   └── Ident "x"`,
		"        └── Number 1",
		"",
	}, "\n"), stdout)
}

func TestAstCommandJSON(t *testing.T) {
	stdout, _, err := execute(t, "", "ast", "-o", "json", "a<b")
	require.NoError(t, err)

	var root ASTNode
	require.NoError(t, json.Unmarshal([]byte(stdout), &root))
	require.Equal(t, "Program", root.Type)
	require.Len(t, root.Children, 1)
	cmp := root.Children[0].Children[0]
	require.Equal(t, "Compare", cmp.Type)
	require.Equal(t, "Lt", cmp.Value)
	require.Len(t, cmp.Children, 2)
	require.Equal(t, "a", cmp.Children[0].Value)
}

func TestAstCommandStats(t *testing.T) {
	stdout, _, err := execute(t, "", "ast", "--stats", "np.sqrt(x)+1")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(stdout, "nodes: 7, depth: 5, identifiers: sqrt, x\n"))

	stdout, _, err = execute(t, "", "ast", "--stats", "-o", "json", "quad(f, a, b, limit=n)")
	require.NoError(t, err)
	var root ASTNode
	require.NoError(t, json.Unmarshal([]byte(stdout), &root))
	require.NotNil(t, root.Stats)
	require.Equal(t, []string{"a", "b", "f", "n", "quad"}, root.Stats.Identifiers)
	require.Nil(t, root.Children[0].Stats)
}

func TestAstCommandParseError(t *testing.T) {
	_, stderr, err := execute(t, "", "ast", "1+")
	require.ErrorIs(t, err, errRenderFailed)
	require.NotEmpty(t, stderr)

	path := filepath.Join(t.TempDir(), "formulas.txt")
	require.NoError(t, os.WriteFile(path, []byte("x\n\n1+\n"), 0o644))
	_, stderr, err = execute(t, "", "ast", "--file", path)
	require.ErrorIs(t, err, errRenderFailed)
	require.Contains(t, stderr, "formulas.txt:3: 1+")
}

func TestSplitLines(t *testing.T) {
	require.Equal(t, []inputLine{{"a", 1}, {"b", 4}}, splitLines("  a \n\n# c\n\tb\n"))
	require.Nil(t, splitLines("\n \n"))
}
