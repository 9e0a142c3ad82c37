package parser

import (
	goerrors "errors"
	"strconv"

	"github.com/deepnoodle-ai/texit/ast"
	"github.com/deepnoodle-ai/texit/errors"
	"github.com/deepnoodle-ai/texit/token"
)

func (p *Parser) parseNumber() (ast.Expr, bool) {
	tok := p.curToken
	value, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		// Out of range literals keep their infinite value, as in Python.
		var numErr *strconv.NumError
		if !goerrors.As(err, &numErr) || numErr.Err != strconv.ErrRange {
			p.setTokenError(tok, errors.E1008, "invalid number literal %q", tok.Literal)
			return nil, false
		}
	}
	return &ast.Number{
		ValuePos: tok.StartPosition,
		Literal:  tok.Literal,
		Value:    value,
		Float:    tok.Type == token.FLOAT,
	}, true
}

// parseListOrComp parses either a list display "[a, b]" or a single
// generator comprehension "[elt for name in iter]".
func (p *Parser) parseListOrComp() (ast.Expr, bool) {
	lbrack := p.curToken.StartPosition
	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return &ast.List{Lbrack: lbrack, Rbrack: p.curToken.StartPosition}, true
	}
	if err := p.nextToken(); err != nil {
		return nil, false
	}
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil, false
	}
	if p.peekTokenIs(token.FOR) {
		p.nextToken()
		return p.parseComprehension(lbrack, first)
	}
	items := []ast.Expr{first}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken() // move to ','
		if p.peekTokenIs(token.RBRACKET) {
			break
		}
		if err := p.nextToken(); err != nil {
			return nil, false
		}
		item := p.parseExpression(LOWEST)
		if item == nil {
			return nil, false
		}
		items = append(items, item)
	}
	if !p.expectPeek("list", token.RBRACKET) {
		return nil, false
	}
	return &ast.List{Lbrack: lbrack, Items: items, Rbrack: p.curToken.StartPosition}, true
}

func (p *Parser) parseComprehension(lbrack token.Position, elt ast.Expr) (ast.Expr, bool) {
	forPos := p.curToken.StartPosition
	if !p.expectPeek("comprehension", token.IDENT) {
		return nil, false
	}
	target := p.newIdent(p.curToken)
	if !p.expectPeek("comprehension", token.IN) {
		return nil, false
	}
	if err := p.nextToken(); err != nil {
		return nil, false
	}
	iter := p.parseExpression(LOWEST)
	if iter == nil {
		return nil, false
	}
	switch p.peekToken.Type {
	case token.IF:
		p.setTokenError(p.peekToken, errors.E1010, "comprehension conditions are not supported")
		return nil, false
	case token.FOR:
		p.setTokenError(p.peekToken, errors.E1010, "nested comprehensions are not supported")
		return nil, false
	}
	if !p.expectPeek("comprehension", token.RBRACKET) {
		return nil, false
	}
	return &ast.ListComp{
		Lbrack: lbrack,
		Elt:    elt,
		For:    forPos,
		Target: target,
		Iter:   iter,
		Rbrack: p.curToken.StartPosition,
	}, true
}
