// Package lexer provides a Lexer that tokenizes expression source.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/deepnoodle-ai/texit/token"
)

// Lexer scans an input string one token at a time. Newlines are only
// reported at bracket depth zero, so expressions may span lines inside
// parentheses and brackets.
type Lexer struct {
	input      string
	position   int  // byte offset of ch
	next       int  // byte offset after ch
	ch         rune // current character, 0 at end of input
	line       int
	lineStart  int
	depth      int
	file       string
	identRunes map[rune]bool
}

// State is a snapshot of the lexer used for backtracking.
type State struct {
	position  int
	next      int
	ch        rune
	line      int
	lineStart int
	depth     int
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithIdentRunes allows the given runes to appear inside identifiers, in
// addition to letters, digits and underscores. This is how a non-letter
// superscript marker is kept inside a name.
func WithIdentRunes(runes ...rune) Option {
	return func(l *Lexer) {
		for _, r := range runes {
			l.identRunes[r] = true
		}
	}
}

// New returns a Lexer for the given input.
func New(input string, opts ...Option) *Lexer {
	l := &Lexer{input: input, identRunes: map[rune]bool{}}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	return l
}

// SetFilename sets the filename reported in token positions.
func (l *Lexer) SetFilename(name string) {
	l.file = name
}

// Filename returns the filename reported in token positions.
func (l *Lexer) Filename() string {
	return l.file
}

// SaveState captures the lexer position so it can be restored later.
func (l *Lexer) SaveState() State {
	return State{
		position:  l.position,
		next:      l.next,
		ch:        l.ch,
		line:      l.line,
		lineStart: l.lineStart,
		depth:     l.depth,
	}
}

// RestoreState rewinds the lexer to a previously saved state.
func (l *Lexer) RestoreState(s State) {
	l.position = s.position
	l.next = s.next
	l.ch = s.ch
	l.line = s.line
	l.lineStart = s.lineStart
	l.depth = s.depth
}

// GetLineText returns the full text of the line the token starts on.
func (l *Lexer) GetLineText(tok token.Token) string {
	start := tok.StartPosition.LineStart
	if start > len(l.input) {
		return ""
	}
	rest := l.input[start:]
	if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
		rest = rest[:idx]
	}
	return strings.TrimRight(rest, "\r")
}

func (l *Lexer) readChar() {
	l.position = l.next
	if l.next >= len(l.input) {
		l.ch = 0
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.next:])
	l.ch = r
	l.next += size
}

func (l *Lexer) peekChar() rune {
	if l.next >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.next:])
	return r
}

func (l *Lexer) pos() token.Position {
	return token.Position{
		Char:      l.position,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.position - l.lineStart,
		File:      l.file,
	}
}

func (l *Lexer) newToken(typ token.Type, start token.Position) token.Token {
	return token.Token{
		Type:          typ,
		Literal:       l.input[start.Char:l.position],
		StartPosition: start,
		EndPosition:   l.pos(),
	}
}

// consume advances past n characters and returns the token spanning them.
func (l *Lexer) consume(typ token.Type, n int) token.Token {
	start := l.pos()
	for i := 0; i < n; i++ {
		l.readChar()
	}
	return l.newToken(typ, start)
}

func (l *Lexer) skipWhitespace() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '\n' && l.depth > 0:
			l.newline()
		case l.ch == '\\' && l.peekChar() == '\n':
			l.readChar()
			l.newline()
		case l.ch == '#':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

// newline consumes a '\n' and starts a new line.
func (l *Lexer) newline() {
	l.readChar()
	l.line++
	l.lineStart = l.position
}

// Next returns the next token from the input. An EOF token is returned
// once the input is exhausted.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()
	start := l.pos()
	switch l.ch {
	case 0:
		return token.Token{Type: token.EOF, StartPosition: start, EndPosition: start}, nil
	case '\n':
		l.newline()
		return token.Token{Type: token.NEWLINE, Literal: "\n", StartPosition: start, EndPosition: start.Advance(1)}, nil
	case '(':
		l.depth++
		return l.consume(token.LPAREN, 1), nil
	case ')':
		l.closeBracket()
		return l.consume(token.RPAREN, 1), nil
	case '[':
		l.depth++
		return l.consume(token.LBRACKET, 1), nil
	case ']':
		l.closeBracket()
		return l.consume(token.RBRACKET, 1), nil
	case ',':
		return l.consume(token.COMMA, 1), nil
	case ':':
		return l.consume(token.COLON, 1), nil
	case ';':
		return l.consume(token.SEMICOLON, 1), nil
	case '+':
		return l.consume(token.PLUS, 1), nil
	case '-':
		return l.consume(token.MINUS, 1), nil
	case '%':
		return l.consume(token.MOD, 1), nil
	case '~':
		return l.consume(token.TILDE, 1), nil
	case '&':
		return l.consume(token.AMPERSAND, 1), nil
	case '|':
		return l.consume(token.PIPE, 1), nil
	case '^':
		if l.identRunes['^'] {
			return l.readIdentifier()
		}
		return l.consume(token.CARET, 1), nil
	case '*':
		if l.peekChar() == '*' {
			return l.consume(token.POW, 2), nil
		}
		return l.consume(token.ASTERISK, 1), nil
	case '/':
		if l.peekChar() == '/' {
			return l.consume(token.SLASH_SLASH, 2), nil
		}
		return l.consume(token.SLASH, 1), nil
	case '=':
		if l.peekChar() == '=' {
			return l.consume(token.EQ, 2), nil
		}
		return l.consume(token.ASSIGN, 1), nil
	case '!':
		if l.peekChar() == '=' {
			return l.consume(token.NOT_EQ, 2), nil
		}
		return l.consume(token.ILLEGAL, 1), fmt.Errorf("unexpected character: %q", '!')
	case '<':
		switch l.peekChar() {
		case '=':
			return l.consume(token.LT_EQUALS, 2), nil
		case '<':
			return l.consume(token.LT_LT, 2), nil
		}
		return l.consume(token.LT, 1), nil
	case '>':
		switch l.peekChar() {
		case '=':
			return l.consume(token.GT_EQUALS, 2), nil
		case '>':
			return l.consume(token.GT_GT, 2), nil
		}
		return l.consume(token.GT, 1), nil
	case '.':
		if isDigit(l.peekChar()) {
			return l.readNumber()
		}
		return l.consume(token.PERIOD, 1), nil
	case '"', '\'':
		return l.readString()
	}
	if isDigit(l.ch) {
		return l.readNumber()
	}
	if l.isIdentStart(l.ch) {
		return l.readIdentifier()
	}
	ch := l.ch
	tok := l.consume(token.ILLEGAL, 1)
	if unicode.IsPrint(ch) {
		return tok, fmt.Errorf("unexpected character: %q", ch)
	}
	return tok, fmt.Errorf("invalid identifier: %s", tok.Literal)
}

func (l *Lexer) closeBracket() {
	if l.depth > 0 {
		l.depth--
	}
}

func (l *Lexer) isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || l.identRunes[r]
}

func (l *Lexer) isIdentPart(r rune) bool {
	return l.isIdentStart(r) || unicode.IsDigit(r)
}

func (l *Lexer) readIdentifier() (token.Token, error) {
	start := l.pos()
	for l.isIdentPart(l.ch) {
		l.readChar()
	}
	tok := l.newToken(token.IDENT, start)
	tok.Type = token.LookupIdentifier(tok.Literal)
	return tok, nil
}

// readNumber scans decimal integers and floats, including the forms
// "1.", ".5" and "1.5e-3".
func (l *Lexer) readNumber() (token.Token, error) {
	start := l.pos()
	typ := token.INT
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		typ = token.FLOAT
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || next == '+' || next == '-' {
			save := l.SaveState()
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			if !isDigit(l.ch) {
				l.RestoreState(save)
			} else {
				typ = token.FLOAT
				for isDigit(l.ch) {
					l.readChar()
				}
			}
		}
	}
	if l.isIdentPart(l.ch) || l.ch == '.' {
		l.readChar()
		tok := l.newToken(token.ILLEGAL, start)
		return tok, fmt.Errorf("invalid decimal literal: %s", tok.Literal)
	}
	tok := l.newToken(typ, start)
	if typ == token.INT && len(tok.Literal) > 1 && tok.Literal[0] == '0' && strings.Trim(tok.Literal, "0") != "" {
		return tok, fmt.Errorf("invalid decimal literal: %s", tok.Literal)
	}
	return tok, nil
}

func (l *Lexer) readString() (token.Token, error) {
	start := l.pos()
	quote := l.ch
	l.readChar()
	for l.ch != quote {
		if l.ch == 0 || l.ch == '\n' {
			return l.newToken(token.ILLEGAL, start), fmt.Errorf("unterminated string literal")
		}
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}
	l.readChar()
	return l.newToken(token.STRING, start), nil
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
