// Package parser builds the syntax tree for an expression.
//
// The accepted grammar is a restricted subset of Python expressions: numeric
// literals, identifiers, arithmetic, bitwise and comparison operators, calls,
// attribute and index access, list displays, single-generator list
// comprehensions, and at most one top-level assignment.
//
// A parser is created by calling New() with a lexer as input. The parser should
// then be used only once, by calling parser.Parse() to produce the AST.
package parser

import (
	"context"
	"fmt"

	"github.com/deepnoodle-ai/texit/ast"
	"github.com/deepnoodle-ai/texit/errors"
	"github.com/deepnoodle-ai/texit/internal/lexer"
	"github.com/deepnoodle-ai/texit/token"
)

type (
	prefixParseFn func() (ast.Expr, bool)
	infixParseFn  func(ast.Expr) (ast.Expr, bool)
)

// Parse the provided input and return the AST. This is shorthand way to
// create a Lexer and Parser and then call Parse on that.
func Parse(ctx context.Context, input string, options ...Option) (*ast.Program, error) {
	// Apply options to a probe first so that the lexer sees the filename and
	// identifier runes before the first tokens are read.
	var probe Parser
	for _, opt := range options {
		opt(&probe)
	}
	var lexOpts []lexer.Option
	if len(probe.identRunes) > 0 {
		lexOpts = append(lexOpts, lexer.WithIdentRunes(probe.identRunes...))
	}
	l := lexer.New(input, lexOpts...)
	if probe.filename != "" {
		l.SetFilename(probe.filename)
	}
	p := New(l, options...)
	return p.Parse(ctx)
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name reported in errors.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithMaxDepth sets the maximum nesting depth for the parser.
// This prevents stack overflow on deeply nested input.
// The default is 500.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// WithIdentRunes allows extra runes inside identifiers, typically a
// superscript marker that is not a letter. Only honored by Parse, which
// owns the lexer.
func WithIdentRunes(runes ...rune) Option {
	return func(p *Parser) {
		p.identRunes = append(p.identRunes, runes...)
	}
}

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 500

// Parser object
type Parser struct {
	// the Context supplied in the Parse() call
	ctx context.Context

	// l is our lexer
	l *lexer.Lexer

	// prevToken holds the previous token, which we already processed.
	prevToken token.Token

	// curToken holds the current token from the lexer.
	curToken token.Token

	// peekToken holds the next token from the lexer.
	peekToken token.Token

	// parsing errors collected during parsing
	errors []*Error

	// prefixParseFns holds a map of parsing methods for
	// prefix-based syntax.
	prefixParseFns map[token.Type]prefixParseFn

	// infixParseFns holds a map of parsing methods for
	// infix-based syntax.
	infixParseFns map[token.Type]infixParseFn

	// The filename of the input
	filename string

	// Extra identifier runes, forwarded to the lexer by Parse
	identRunes []rune

	// Current recursion depth
	depth int

	// Maximum allowed recursion depth
	maxDepth int
}

// New returns a Parser for the input provided by the given Lexer.
func New(l *lexer.Lexer, options ...Option) *Parser {
	p := &Parser{
		l:              l,
		prefixParseFns: map[token.Type]prefixParseFn{},
		infixParseFns:  map[token.Type]infixParseFn{},
		maxDepth:       DefaultMaxDepth,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.filename != "" && l.Filename() == "" {
		l.SetFilename(p.filename)
	}

	// Prime the token pump
	p.nextToken() // makes curToken=<empty>, peekToken=token[0]
	p.nextToken() // makes curToken=token[0], peekToken=token[1]

	// Register prefix-functions
	p.registerPrefix(token.EOF, p.illegalToken)
	p.registerPrefix(token.FLOAT, p.parseNumber)
	p.registerPrefix(token.IDENT, p.parseIdent)
	p.registerPrefix(token.ILLEGAL, p.illegalToken)
	p.registerPrefix(token.INT, p.parseNumber)
	p.registerPrefix(token.LBRACKET, p.parseListOrComp)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpr)
	p.registerPrefix(token.MINUS, p.parseUnary)
	p.registerPrefix(token.NOT, p.parseNot)
	p.registerPrefix(token.PLUS, p.parseUnary)
	p.registerPrefix(token.STRING, p.parseString)
	p.registerPrefix(token.TILDE, p.parseUnary)

	// Register infix functions
	p.registerInfix(token.AMPERSAND, p.parseBinary)
	p.registerInfix(token.AND, p.parseBoolOp)
	p.registerInfix(token.ASTERISK, p.parseBinary)
	p.registerInfix(token.CARET, p.parseBinary)
	p.registerInfix(token.EQ, p.parseCompare)
	p.registerInfix(token.GT, p.parseCompare)
	p.registerInfix(token.GT_EQUALS, p.parseCompare)
	p.registerInfix(token.GT_GT, p.parseBinary)
	p.registerInfix(token.IN, p.parseCompare)
	p.registerInfix(token.IS, p.parseCompare)
	p.registerInfix(token.LBRACKET, p.parseIndex)
	p.registerInfix(token.LPAREN, p.parseCall)
	p.registerInfix(token.LT, p.parseCompare)
	p.registerInfix(token.LT_EQUALS, p.parseCompare)
	p.registerInfix(token.LT_LT, p.parseBinary)
	p.registerInfix(token.MINUS, p.parseBinary)
	p.registerInfix(token.MOD, p.parseBinary)
	p.registerInfix(token.NOT, p.parseCompare)
	p.registerInfix(token.NOT_EQ, p.parseCompare)
	p.registerInfix(token.OR, p.parseBoolOp)
	p.registerInfix(token.PERIOD, p.parseAttr)
	p.registerInfix(token.PIPE, p.parseBinary)
	p.registerInfix(token.PLUS, p.parseBinary)
	p.registerInfix(token.POW, p.parseBinary)
	p.registerInfix(token.SLASH, p.parseBinary)
	p.registerInfix(token.SLASH_SLASH, p.parseBinary)

	return p
}

// nextToken moves to the next token from the lexer, updating all of
// prevToken, curToken, and peekToken.
func (p *Parser) nextToken() error {
	var err error
	p.prevToken = p.curToken
	p.curToken = p.peekToken
	p.peekToken, err = p.l.Next()
	if err == nil {
		return nil
	}
	// The lexer encountered an error. We consider all lexer errors
	// "syntax errors" and parsing will now be considered broken.
	p.addError(&Error{
		Kind:     KindSyntax,
		Code:     lexerErrorCode(p.peekToken),
		Cause:    err,
		Filename: p.l.Filename(),
		Start:    p.peekToken.StartPosition,
		End:      p.peekToken.EndPosition,
		Line:     p.l.GetLineText(p.peekToken),
	})
	return err
}

func lexerErrorCode(t token.Token) errors.ErrorCode {
	if len(t.Literal) > 0 {
		switch t.Literal[0] {
		case '"', '\'':
			return errors.E1002
		}
		if t.Literal[0] == '.' || ('0' <= t.Literal[0] && t.Literal[0] <= '9') {
			return errors.E1008
		}
	}
	return errors.E1003
}

// Parse the input that is provided via the lexer. The input must hold
// exactly one statement, optionally surrounded by blank lines.
func (p *Parser) Parse(ctx context.Context) (*ast.Program, error) {
	p.ctx = ctx
	// It's possible for errors to already exist because we read tokens from
	// the lexer in the constructor.
	if p.hasErrors() {
		return nil, NewErrors(p.errors)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.eatNewlines()
	if p.curTokenIs(token.EOF) {
		p.setTokenError(p.curToken, errors.E1004, "empty expression")
		return nil, NewErrors(p.errors)
	}
	stmt := p.parseStatement()
	if stmt == nil || p.hasErrors() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !p.hasErrors() {
			p.setTokenError(p.curToken, errors.E1003, "invalid syntax")
		}
		return nil, NewErrors(p.errors)
	}
	// Only trailing semicolons and blank lines may follow the statement.
	p.nextToken()
	for p.curTokenIs(token.NEWLINE) || p.curTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	if !p.curTokenIs(token.EOF) && !p.hasErrors() {
		p.setTokenError(p.curToken, errors.E1001, "multiple statements are not supported (unexpected %s)",
			tokenDescription(p.curToken))
	}
	if p.hasErrors() {
		return nil, NewErrors(p.errors)
	}
	return &ast.Program{Body: stmt}, nil
}

// registerPrefix registers a function for handling a prefix-based expression.
func (p *Parser) registerPrefix(tokenType token.Type, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

// registerInfix registers a function for handling an infix-based expression.
func (p *Parser) registerInfix(tokenType token.Type, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

// addError appends an error to the errors slice.
func (p *Parser) addError(err *Error) {
	p.errors = append(p.errors, err)
}

// hasErrors returns true if any errors have been recorded.
func (p *Parser) hasErrors() bool {
	return len(p.errors) > 0
}

// cancelled checks if the parsing context has been cancelled.
func (p *Parser) cancelled() bool {
	if p.ctx == nil {
		return false
	}
	return p.ctx.Err() != nil
}

func (p *Parser) parseStatement() ast.Stmt {
	target := p.parseExpression(LOWEST)
	if target == nil {
		return nil
	}
	if !p.peekTokenIs(token.ASSIGN) {
		return &ast.ExprStmt{X: target}
	}
	switch target.(type) {
	case *ast.Ident, *ast.Attr, *ast.Index:
	default:
		p.setTokenError(p.peekToken, errors.E1005, "cannot assign to %s", target.String())
		return nil
	}
	p.nextToken() // move to '='
	eq := p.curToken.StartPosition
	p.nextToken() // move past '='
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	if p.peekTokenIs(token.ASSIGN) {
		p.setTokenError(p.peekToken, errors.E1005, "chained assignment is not supported")
		return nil
	}
	return &ast.Assign{Target: target, Eq: eq, Value: value}
}

func (p *Parser) parseExpression(precedence int) ast.Expr {
	if p.hasErrors() {
		return nil
	}
	if p.cancelled() {
		return nil
	}
	// Check recursion depth
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		p.setTokenError(p.curToken, errors.E1009, "maximum nesting depth exceeded")
		return nil
	}
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	left, ok := prefix()
	if !ok || p.hasErrors() {
		return nil
	}
	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		if err := p.nextToken(); err != nil {
			return nil
		}
		left, ok = infix(left)
		if !ok || p.hasErrors() {
			return nil
		}
	}
	return left
}

func (p *Parser) noPrefixParseFnError(t token.Token) {
	p.setTokenError(t, errors.E1003, "invalid syntax (unexpected %s)", tokenDescription(t))
}

// peekError raises an error if the next token is not the expected type.
func (p *Parser) peekError(context string, expected token.Type, got token.Token) {
	code := errors.E1001
	if got.Type == token.EOF || got.Type == token.NEWLINE {
		code = errors.E1007
	}
	p.setTokenError(got, code, "unexpected %s while parsing %s (expected %s)",
		tokenDescription(got), context, tokenTypeDescription(expected))
}

func (p *Parser) illegalToken() (ast.Expr, bool) {
	if p.curTokenIs(token.EOF) {
		p.setTokenError(p.curToken, errors.E1004, "unexpected end of input")
	} else {
		p.setTokenError(p.curToken, errors.E1003, "illegal token %s", p.curToken.Literal)
	}
	return nil, false
}

func (p *Parser) setTokenError(t token.Token, code errors.ErrorCode, msg string, args ...any) {
	p.addError(&Error{
		Kind:     KindParse,
		Code:     code,
		Message:  fmt.Sprintf(msg, args...),
		Filename: p.l.Filename(),
		Start:    t.StartPosition,
		End:      t.EndPosition,
		Line:     p.l.GetLineText(t),
	})
}

// newIdent creates a new Ident node from a token.
func (p *Parser) newIdent(tok token.Token) *ast.Ident {
	return &ast.Ident{NamePos: tok.StartPosition, Name: tok.Literal}
}

// curTokenIs returns true if the current token has the given type.
func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

// peekTokenIs returns true if the next token has the given type.
func (p *Parser) peekTokenIs(t token.Type) bool {
	return p.peekToken.Type == t
}

// expectPeek validates if the next token is of the given type, and advances if
// it is. If it's a different type, then an error is stored.
func (p *Parser) expectPeek(context string, t token.Type) bool {
	if p.peekTokenIs(t) {
		return p.nextToken() == nil
	}
	p.peekError(context, t, p.peekToken)
	return false
}

// peekPrecedence returns the precedence of the next token.
func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}

// currentPrecedence returns the precedence of the current token.
func (p *Parser) currentPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) eatNewlines() {
	for p.curTokenIs(token.NEWLINE) {
		if err := p.nextToken(); err != nil {
			return
		}
	}
}
