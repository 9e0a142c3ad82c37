package postprocess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimplify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1e-20*11e2", `10^{-20}*11\times10^2`},
		{"1e-20*11e-20+5+2", `10^{-20}*11\times10^{-20}+5+2`},
		{`2.8e-11\operatorname{exp}\left(x\right)`, `2.8\times10^{-11}\operatorname{exp}\left(x\right)`},
		{"1e3", "10^3"},
		{"1.0e3", `1.0\times10^3`},
		{"3e1.5", `3\times10^{1.5}`},
		{`\left(2\right)^2`, "2^2"},
		{`\left(\left(0.5\right)\right)`, "0.5"},
		{`\left(x\right)`, `\left(x\right)`},
		{`\left(-2\right)`, `\left(-2\right)`},
		{`\Delta E`, `\Delta E`},
		{`\frac{x}{y}`, `\frac{x}{y}`},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, Simplify(tt.input))
		})
	}
}

func TestSimplifySkipsRewrittenTails(t *testing.T) {
	require.Equal(t, "10^1e10^1", Simplify("1e1e1e1"))
	require.Equal(t, "1^1e5", Simplify("1^1e5"))
}

func FuzzSimplify(f *testing.F) {
	seeds := []string{
		"1e-20*11e2",
		"1e1e1e1",
		"1^1e5",
		"1e2.5.5e3",
		`\left(2\right)e5`,
		`2.8e-11\operatorname{exp}`,
		`\left(\left(1.5\right)\right)`,
		"e",
		"",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		once := Simplify(s)
		require.Equal(t, once, Simplify(once))
	})
}
