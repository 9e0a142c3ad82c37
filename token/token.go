// Package token defines the tokens produced when lexing expression source.
package token

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string.
type Position struct {
	Char      int    // byte offset within the input
	LineStart int    // byte offset of the start of the current line
	Line      int    // 0-indexed line number
	Column    int    // 0-indexed column number
	File      string // filename
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Advance returns a new Position advanced by n bytes.
// This assumes the advance does not cross line boundaries.
func (p Position) Advance(n int) Position {
	return Position{
		Char:      p.Char + n,
		LineStart: p.LineStart,
		Line:      p.Line,
		Column:    p.Column + n,
		File:      p.File,
	}
}

// IsValid returns true if this position has been set.
func (p Position) IsValid() bool {
	return p.File != "" || p.Line > 0 || p.Column > 0 || p.Char > 0
}

// NoPos is the zero value Position, representing an invalid/unset position.
var NoPos = Position{}

// Token represents one token lexed from the input source code.
type Token struct {
	Type          Type
	Literal       string
	StartPosition Position
	EndPosition   Position
}

// Token types
const (
	AMPERSAND   Type = "&"
	AND         Type = "AND"
	ASSIGN      Type = "="
	ASTERISK    Type = "*"
	CARET       Type = "^"
	COLON       Type = ":"
	COMMA       Type = ","
	EOF         Type = "EOF"
	EQ          Type = "=="
	FLOAT       Type = "FLOAT"
	FOR         Type = "FOR"
	GT          Type = ">"
	GT_EQUALS   Type = ">="
	GT_GT       Type = ">>"
	IDENT       Type = "IDENT"
	IF          Type = "IF"
	ILLEGAL     Type = "ILLEGAL"
	IN          Type = "IN"
	INT         Type = "INT"
	IS          Type = "IS"
	LBRACKET    Type = "["
	LPAREN      Type = "("
	LT          Type = "<"
	LT_EQUALS   Type = "<="
	LT_LT       Type = "<<"
	MINUS       Type = "-"
	MOD         Type = "%"
	NEWLINE     Type = "EOL"
	NOT         Type = "NOT"
	NOT_EQ      Type = "!="
	OR          Type = "OR"
	PERIOD      Type = "."
	PIPE        Type = "|"
	PLUS        Type = "+"
	POW         Type = "**"
	RBRACKET    Type = "]"
	RPAREN      Type = ")"
	SEMICOLON   Type = ";"
	SLASH       Type = "/"
	SLASH_SLASH Type = "//"
	STRING      Type = "STRING"
	TILDE       Type = "~"
)

// Reserved keywords
var keywords = map[string]Type{
	"and": AND,
	"for": FOR,
	"if":  IF,
	"in":  IN,
	"is":  IS,
	"not": NOT,
	"or":  OR,
}

// LookupIdentifier used to determinate whether identifier is keyword nor not
func LookupIdentifier(identifier string) Type {
	if tok, ok := keywords[identifier]; ok {
		return tok
	}
	return IDENT
}
