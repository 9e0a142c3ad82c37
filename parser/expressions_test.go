package parser

import (
	"context"
	"testing"

	"github.com/deepnoodle-ai/texit/ast"
	"github.com/stretchr/testify/require"
)

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"a - b - c", "((a - b) - c)"},
		{"a / b * c", "((a / b) * c)"},
		{"x // y % z", "((x // y) % z)"},
		{"-2**2", "(-(2 ** 2))"},
		{"2**-1", "(2 ** (-1))"},
		{"10**-3", "(10 ** (-3))"},
		{"a**b**c", "(a ** (b ** c))"},
		{"(a**b)**c", "((a ** b) ** c)"},
		{"-x * y", "((-x) * y)"},
		{"+x", "(+x)"},
		{"~x + 1", "((~x) + 1)"},
		{"a | b ^ c & d << 1", "(a | (b ^ (c & (d << 1))))"},
		{"a >> 1 + 2", "(a >> (1 + 2))"},
		{"not a < b", "(not a < b)"},
		{"a*-2", "(a * (-2))"},
		{"x**2/y**3", "((x ** 2) / (y ** 3))"},
		{"-(26500 - 0.5)", "(-(26500 - 0.5))"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, parseOK(t, tt.input).String())
		})
	}
}

func TestCompareChain(t *testing.T) {
	program := parseOK(t, "1<2<a<=5")
	cmp, ok := program.Body.(*ast.ExprStmt).X.(*ast.Compare)
	require.True(t, ok)
	require.Equal(t, []ast.CmpOp{ast.Lt, ast.Lt, ast.LtE}, cmp.Ops)
	require.Len(t, cmp.Comparators, 3)
	require.Len(t, cmp.OpPos, 3)
	require.Equal(t, 6, cmp.OpPos[2].ColumnNumber())
	require.Equal(t, "1 < 2 < a <= 5", cmp.String())
}

func TestComparators(t *testing.T) {
	tests := []struct {
		input string
		op    ast.CmpOp
	}{
		{"a < b", ast.Lt},
		{"a <= b", ast.LtE},
		{"a > b", ast.Gt},
		{"a >= b", ast.GtE},
		{"a == b", ast.Eq},
		{"a != b", ast.NotEq},
		{"a in b", ast.In},
		{"a not in b", ast.NotIn},
		{"a is b", ast.Is},
		{"a is not b", ast.IsNot},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmp := parseOK(t, tt.input).Body.(*ast.ExprStmt).X.(*ast.Compare)
			require.Equal(t, []ast.CmpOp{tt.op}, cmp.Ops)
			require.Equal(t, tt.input, cmp.String())
		})
	}
}

func TestCompareBindsLooserThanArithmetic(t *testing.T) {
	cmp := parseOK(t, "a + 1 < b * 2").Body.(*ast.ExprStmt).X.(*ast.Compare)
	require.Equal(t, "(a + 1)", cmp.Left.String())
	require.Equal(t, "(b * 2)", cmp.Comparators[0].String())
}

func TestCalls(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"f()", "f()"},
		{"sqrt(x)", "sqrt(x)"},
		{"quad(f, 0, np.inf)", "quad(f, 0, np.inf)"},
		{"f(x, y,)", "f(x, y)"},
		{"f(x, limit=50)", "f(x, limit=50)"},
		{"f(x)(y)", "f(x)(y)"},
		{"np.sqrt(2*x)", "np.sqrt((2 * x))"},
		{"a[i+1]", "a[(i + 1)]"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, parseOK(t, tt.input).String())
		})
	}
}

func TestCallNode(t *testing.T) {
	call := parseOK(t, "quad(f, 0, 1, limit=50)").Body.(*ast.ExprStmt).X.(*ast.Call)
	require.Equal(t, "quad", call.Fun.(*ast.Ident).Name)
	require.Len(t, call.Args, 3)
	require.Len(t, call.Keywords, 1)
	require.Equal(t, "limit", call.Keywords[0].Name.Name)
	require.Equal(t, 5, call.Lparen.ColumnNumber())
	require.Equal(t, 23, call.Rparen.ColumnNumber())
}

func TestAttrNode(t *testing.T) {
	attr := parseOK(t, "math.pi").Body.(*ast.ExprStmt).X.(*ast.Attr)
	require.Equal(t, "math", attr.X.String())
	require.Equal(t, "pi", attr.Name.Name)
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		value float64
		float bool
	}{
		{"42", 42, false},
		{"0", 0, false},
		{"1.5", 1.5, true},
		{"1.", 1, true},
		{".5", 0.5, true},
		{"1e3", 1000, true},
		{"1.5e-3", 0.0015, true},
		{"2.8E+11", 2.8e11, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			num := parseOK(t, tt.input).Body.(*ast.ExprStmt).X.(*ast.Number)
			require.Equal(t, tt.input, num.Literal)
			require.InDelta(t, tt.value, num.Value, 1e-12)
			require.Equal(t, tt.float, num.Float)
		})
	}
}

func TestHugeNumberIsInfinite(t *testing.T) {
	num := parseOK(t, "1e999").Body.(*ast.ExprStmt).X.(*ast.Number)
	require.True(t, num.Value > 1e308)
}

func TestLists(t *testing.T) {
	list := parseOK(t, "[1, 2, 3,]").Body.(*ast.ExprStmt).X.(*ast.List)
	require.Len(t, list.Items, 3)
	require.Equal(t, "[1, 2, 3]", list.String())

	empty := parseOK(t, "[]").Body.(*ast.ExprStmt).X.(*ast.List)
	require.Empty(t, empty.Items)
}

func TestComprehension(t *testing.T) {
	program := parseOK(t, "sum([k for k in range(1, N+1)])")
	call := program.Body.(*ast.ExprStmt).X.(*ast.Call)
	comp, ok := call.Args[0].(*ast.ListComp)
	require.True(t, ok)
	require.Equal(t, "k", comp.Elt.String())
	require.Equal(t, "k", comp.Target.Name)
	require.Equal(t, "range(1, (N + 1))", comp.Iter.String())
	require.Equal(t, "sum([k for k in range(1, (N + 1))])", program.String())
}

func TestComprehensionElementExpression(t *testing.T) {
	program := parseOK(t, "std([f(i)**2 for i in range(20)])")
	comp := program.Body.(*ast.ExprStmt).X.(*ast.Call).Args[0].(*ast.ListComp)
	require.Equal(t, "(f(i) ** 2)", comp.Elt.String())
}

func FuzzParse(f *testing.F) {
	seeds := []string{
		"1 + 2",
		"x",
		"Re_x=(rho*v*x)/mu",
		"f(x**2/y**3)",
		"arctanh(x/sqrt(x))",
		"quad(f,0,np.inf)",
		"1<2<a<=5",
		"sum([k for k in range(1, N+1)])",
		"2.8e-11 * exp(-(26500 - 0.5 * 1.97 * 11600 )/Tgas)",
		"a not in b is not c",
		"~a | b ^ c & d >> 2",
		"[",
		"(((",
		"a = = b",
		"f(x=)",
		"1.2.3",
		"'unterminated",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, input string) {
		program, err := Parse(context.Background(), input)
		if (program == nil) == (err == nil) {
			t.Fatalf("expected exactly one of program or error for %q", input)
		}
	})
}
