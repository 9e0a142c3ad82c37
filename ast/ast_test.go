package ast

import (
	"testing"

	"github.com/deepnoodle-ai/texit/token"
	"github.com/stretchr/testify/require"
)

func pos(col int) token.Position {
	return token.Position{Char: col, Column: col}
}

func TestString(t *testing.T) {
	// Re_x = rho*v*x/mu
	program := &Program{
		Body: &Assign{
			Target: &Ident{NamePos: pos(0), Name: "Re_x"},
			Eq:     pos(5),
			Value: &BinaryOp{
				X: &BinaryOp{
					X:  &Ident{NamePos: pos(7), Name: "rho"},
					Op: Mult,
					Y:  &Ident{NamePos: pos(11), Name: "v"},
				},
				Op: Div,
				Y:  &Ident{NamePos: pos(14), Name: "mu"},
			},
		},
	}
	require.Equal(t, "Re_x = ((rho * v) / mu)", program.String())
	require.Equal(t, pos(0), program.Pos())
	require.Equal(t, pos(16), program.End())
}

func TestEmptyProgram(t *testing.T) {
	program := &Program{}
	require.Equal(t, "", program.String())
	require.Equal(t, token.NoPos, program.Pos())
	require.Equal(t, token.NoPos, program.End())
}

func TestNumber(t *testing.T) {
	n := &Number{ValuePos: pos(3), Literal: "1.5e-3", Value: 0.0015, Float: true}
	require.True(t, n.Scientific())
	require.Equal(t, "1.5e-3", n.String())
	require.Equal(t, pos(9), n.End())

	i := &Number{ValuePos: pos(0), Literal: "42", Value: 42}
	require.False(t, i.Scientific())
}

func TestCallString(t *testing.T) {
	call := &Call{
		Fun: &Ident{Name: "quad"},
		Args: []Expr{
			&Ident{Name: "f"},
			&Number{Literal: "0"},
		},
		Keywords: []*Keyword{
			{Name: &Ident{Name: "limit"}, Value: &Number{Literal: "50"}},
		},
		Rparen: pos(20),
	}
	require.Equal(t, "quad(f, 0, limit=50)", call.String())
	require.Equal(t, pos(21), call.End())
}

func TestCompareString(t *testing.T) {
	cmp := &Compare{
		Left:        &Number{Literal: "1"},
		Ops:         []CmpOp{Lt, LtE},
		Comparators: []Expr{&Ident{Name: "a"}, &Number{Literal: "5"}},
	}
	require.Equal(t, "1 < a <= 5", cmp.String())
}

func TestListCompString(t *testing.T) {
	comp := &ListComp{
		Elt:    &Ident{Name: "k"},
		Target: &Ident{Name: "k"},
		Iter: &Call{
			Fun:  &Ident{Name: "range"},
			Args: []Expr{&Ident{Name: "N"}},
		},
	}
	require.Equal(t, "[k for k in range(N)]", comp.String())
}

func TestUnaryAndMiscString(t *testing.T) {
	require.Equal(t, "(-x)", (&UnaryOp{Op: USub, X: &Ident{Name: "x"}}).String())
	require.Equal(t, "(not x)", (&UnaryOp{Op: Not, X: &Ident{Name: "x"}}).String())
	require.Equal(t, "np.pi", (&Attr{X: &Ident{Name: "np"}, Name: &Ident{Name: "pi"}}).String())
	require.Equal(t, "a[i]", (&Index{X: &Ident{Name: "a"}, Index: &Ident{Name: "i"}}).String())
	require.Equal(t, "[1, 2]", (&List{Items: []Expr{&Number{Literal: "1"}, &Number{Literal: "2"}}}).String())
}

func TestOps(t *testing.T) {
	tests := []struct {
		op     Op
		name   string
		symbol string
		unary  bool
	}{
		{Add, "Add", "+", false},
		{FloorDiv, "FloorDiv", "//", false},
		{Pow, "Pow", "**", false},
		{RShift, "RShift", ">>", false},
		{Invert, "Invert", "~", true},
		{USub, "USub", "-", true},
		{Op(99), "Invalid", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.name, tt.op.String())
			require.Equal(t, tt.symbol, tt.op.Symbol())
			require.Equal(t, tt.unary, tt.op.IsUnary())
		})
	}
}

func TestCmpOps(t *testing.T) {
	require.Equal(t, "GtE", GtE.String())
	require.Equal(t, ">=", GtE.Symbol())
	require.Equal(t, "is not", IsNot.Symbol())
	require.Equal(t, "Invalid", CmpOp(-1).String())
	require.Equal(t, "", CmpOp(42).Symbol())
}
