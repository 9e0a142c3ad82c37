package lexer

import (
	"fmt"
	"testing"

	"github.com/deepnoodle-ai/texit/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expectedToken struct {
	typ     token.Type
	literal string
}

func lexAll(t *testing.T, l *Lexer, tests []expectedToken) {
	t.Helper()
	for i, tt := range tests {
		tok, err := l.Next()
		require.NoError(t, err)
		if tok.Type != tt.typ {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.typ, tok.Type)
		}
		if tok.Literal != tt.literal {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.literal, tok.Literal)
		}
	}
}

func TestOperators(t *testing.T) {
	input := "+-***///%~&|^<<>><=>=< > ==!= =,:;.()[]"
	lexAll(t, New(input), []expectedToken{
		{token.PLUS, "+"},
		{token.MINUS, "-"},
		{token.POW, "**"},
		{token.ASTERISK, "*"},
		{token.SLASH_SLASH, "//"},
		{token.SLASH, "/"},
		{token.MOD, "%"},
		{token.TILDE, "~"},
		{token.AMPERSAND, "&"},
		{token.PIPE, "|"},
		{token.CARET, "^"},
		{token.LT_LT, "<<"},
		{token.GT_GT, ">>"},
		{token.LT_EQUALS, "<="},
		{token.GT_EQUALS, ">="},
		{token.LT, "<"},
		{token.GT, ">"},
		{token.EQ, "=="},
		{token.NOT_EQ, "!="},
		{token.ASSIGN, "="},
		{token.COMMA, ","},
		{token.COLON, ":"},
		{token.SEMICOLON, ";"},
		{token.PERIOD, "."},
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.LBRACKET, "["},
		{token.RBRACKET, "]"},
		{token.EOF, ""},
	})
}

func TestExpression(t *testing.T) {
	input := "Re_x=(rho*v*x)/mu"
	lexAll(t, New(input), []expectedToken{
		{token.IDENT, "Re_x"},
		{token.ASSIGN, "="},
		{token.LPAREN, "("},
		{token.IDENT, "rho"},
		{token.ASTERISK, "*"},
		{token.IDENT, "v"},
		{token.ASTERISK, "*"},
		{token.IDENT, "x"},
		{token.RPAREN, ")"},
		{token.SLASH, "/"},
		{token.IDENT, "mu"},
		{token.EOF, ""},
	})
}

func TestComprehension(t *testing.T) {
	input := "sum([k for k in range(1, N+1)])"
	lexAll(t, New(input), []expectedToken{
		{token.IDENT, "sum"},
		{token.LPAREN, "("},
		{token.LBRACKET, "["},
		{token.IDENT, "k"},
		{token.FOR, "for"},
		{token.IDENT, "k"},
		{token.IN, "in"},
		{token.IDENT, "range"},
		{token.LPAREN, "("},
		{token.INT, "1"},
		{token.COMMA, ","},
		{token.IDENT, "N"},
		{token.PLUS, "+"},
		{token.INT, "1"},
		{token.RPAREN, ")"},
		{token.RBRACKET, "]"},
		{token.RPAREN, ")"},
		{token.EOF, ""},
	})
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		typ   token.Type
	}{
		{"0", token.INT},
		{"42", token.INT},
		{"00", token.INT},
		{"1.", token.FLOAT},
		{".5", token.FLOAT},
		{"0.75", token.FLOAT},
		{"1e3", token.FLOAT},
		{"1E+3", token.FLOAT},
		{"2.8e-11", token.FLOAT},
		{"1.e5", token.FLOAT},
	}
	for _, tt := range tests {
		tok, err := New(tt.input).Next()
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.typ, tok.Type, tt.input)
		assert.Equal(t, tt.input, tok.Literal)
	}
}

func TestExponentWithoutDigits(t *testing.T) {
	// "2e" is not an exponent, so the trailing letter is an error
	_, err := New("2e").Next()
	require.Error(t, err)
	assert.Equal(t, "invalid decimal literal: 2e", err.Error())
}

func TestInvalids(t *testing.T) {
	tests := []struct {
		input string
		err   string
	}{
		{"\x01", "invalid identifier: \x01"},
		{"4.f", "invalid decimal literal: 4.f"},
		{"12ab", "invalid decimal literal: 12a"},
		{"078", "invalid decimal literal: 078"},
		{"1.5.", "invalid decimal literal: 1.5."},
		{`"foo`, "unterminated string literal"},
		{"'foo", "unterminated string literal"},
		{"$", "unexpected character: '$'"},
		{"!", "unexpected character: '!'"},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("%d-%s", i, tt.input), func(t *testing.T) {
			_, err := New(tt.input).Next()
			require.Error(t, err)
			assert.Equal(t, tt.err, err.Error())
		})
	}
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		input   string
		typ     token.Type
		literal string
	}{
		{"abc", token.IDENT, "abc"},
		{"a1_", token.IDENT, "a1_"},
		{"__c__", token.IDENT, "__c__"},
		{"k_iˆj", token.IDENT, "k_iˆj"},
		{"ΔE", token.IDENT, "ΔE"},
		{" d-f ", token.IDENT, "d"},
		{" in ", token.IN, "in"},
		{"not", token.NOT, "not"},
		{"  ", token.EOF, ""},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("%d-%s", i, tt.input), func(t *testing.T) {
			tok, err := New(tt.input).Next()
			require.NoError(t, err)
			assert.Equal(t, tt.typ, tok.Type)
			assert.Equal(t, tt.literal, tok.Literal)
		})
	}
}

func TestIdentRunes(t *testing.T) {
	lexAll(t, New("a^b"), []expectedToken{
		{token.IDENT, "a"},
		{token.CARET, "^"},
		{token.IDENT, "b"},
	})
	lexAll(t, New("a^b", WithIdentRunes('^')), []expectedToken{
		{token.IDENT, "a^b"},
		{token.EOF, ""},
	})
}

func TestNewlines(t *testing.T) {
	input := "f(a,\n  b)\nc"
	l := New(input)
	lexAll(t, l, []expectedToken{
		{token.IDENT, "f"},
		{token.LPAREN, "("},
		{token.IDENT, "a"},
		{token.COMMA, ","},
		{token.IDENT, "b"},
		{token.RPAREN, ")"},
		{token.NEWLINE, "\n"},
	})
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, token.IDENT, tok.Type)
	assert.Equal(t, 3, tok.StartPosition.LineNumber())
	assert.Equal(t, 1, tok.StartPosition.ColumnNumber())
}

func TestComments(t *testing.T) {
	lexAll(t, New("x # trailing comment"), []expectedToken{
		{token.IDENT, "x"},
		{token.EOF, ""},
	})
}

func TestTokenLineText(t *testing.T) {
	l := New("a = 1\nb = c + d\n")
	var tok token.Token
	var err error
	for tok.Literal != "c" {
		tok, err = l.Next()
		require.NoError(t, err)
	}
	assert.Equal(t, "b = c + d", l.GetLineText(tok))
	assert.Equal(t, 2, tok.StartPosition.LineNumber())
	assert.Equal(t, 5, tok.StartPosition.ColumnNumber())
}

func TestStateSaveRestore(t *testing.T) {
	l := New("x = 1 + 2")
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, "x", tok.Literal)

	state := l.SaveState()
	tok, err = l.Next()
	require.NoError(t, err)
	assert.Equal(t, token.ASSIGN, tok.Type)
	tok, err = l.Next()
	require.NoError(t, err)
	assert.Equal(t, token.INT, tok.Type)

	l.RestoreState(state)
	tok, err = l.Next()
	require.NoError(t, err)
	assert.Equal(t, token.ASSIGN, tok.Type)
}

func TestFilename(t *testing.T) {
	l := New("x")
	l.SetFilename("expr.py")
	assert.Equal(t, "expr.py", l.Filename())
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, "expr.py", tok.StartPosition.File)
}
