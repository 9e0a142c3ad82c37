package parser

import (
	"github.com/deepnoodle-ai/texit/ast"
	"github.com/deepnoodle-ai/texit/errors"
	"github.com/deepnoodle-ai/texit/token"
)

// Expression parsing methods for the Parser.
// This file contains methods that parse expression constructs:
// - Identifiers and prefix/infix operators
// - Comparison chains
// - Grouped expressions
// - Calls, attribute access and indexing
// - Constructs that are recognized only to be rejected

var binaryOps = map[token.Type]ast.Op{
	token.PLUS:        ast.Add,
	token.MINUS:       ast.Sub,
	token.ASTERISK:    ast.Mult,
	token.SLASH:       ast.Div,
	token.SLASH_SLASH: ast.FloorDiv,
	token.POW:         ast.Pow,
	token.MOD:         ast.Mod,
	token.PIPE:        ast.BitOr,
	token.CARET:       ast.BitXor,
	token.AMPERSAND:   ast.BitAnd,
	token.LT_LT:       ast.LShift,
	token.GT_GT:       ast.RShift,
}

var unaryOps = map[token.Type]ast.Op{
	token.MINUS: ast.USub,
	token.PLUS:  ast.UAdd,
	token.TILDE: ast.Invert,
}

var comparators = map[token.Type]ast.CmpOp{
	token.LT:        ast.Lt,
	token.LT_EQUALS: ast.LtE,
	token.GT:        ast.Gt,
	token.GT_EQUALS: ast.GtE,
	token.EQ:        ast.Eq,
	token.NOT_EQ:    ast.NotEq,
	token.IN:        ast.In,
	token.IS:        ast.Is,
	token.NOT:       ast.NotIn,
}

func (p *Parser) parseIdent() (ast.Expr, bool) {
	if p.curToken.Literal == "" {
		p.setTokenError(p.curToken, errors.E1006, "invalid identifier")
		return nil, false
	}
	return p.newIdent(p.curToken), true
}

func (p *Parser) parseUnary() (ast.Expr, bool) {
	opPos := p.curToken.StartPosition
	op := unaryOps[p.curToken.Type]
	if err := p.nextToken(); err != nil {
		return nil, false
	}
	// Parsing at PREFIX lets a following ** bind first: -2**2 is -(2**2).
	operand := p.parseExpression(PREFIX)
	if operand == nil {
		return nil, false
	}
	return &ast.UnaryOp{OpPos: opPos, Op: op, X: operand}, true
}

func (p *Parser) parseNot() (ast.Expr, bool) {
	opPos := p.curToken.StartPosition
	if err := p.nextToken(); err != nil {
		return nil, false
	}
	operand := p.parseExpression(NOT)
	if operand == nil {
		return nil, false
	}
	return &ast.UnaryOp{OpPos: opPos, Op: ast.Not, X: operand}, true
}

func (p *Parser) parseBinary(left ast.Expr) (ast.Expr, bool) {
	opPos := p.curToken.StartPosition
	op := binaryOps[p.curToken.Type]
	precedence := p.currentPrecedence()
	// Power operator ** is right-associative: 2**2**3 = 2**(2**3)
	if p.curTokenIs(token.POW) {
		precedence--
	}
	if err := p.nextToken(); err != nil {
		return nil, false
	}
	right := p.parseExpression(precedence)
	if right == nil {
		return nil, false
	}
	return &ast.BinaryOp{X: left, OpPos: opPos, Op: op, Y: right}, true
}

// parseCompare parses a whole comparison chain such as "1 < 2 < a <= 5"
// into a single Compare node.
func (p *Parser) parseCompare(left ast.Expr) (ast.Expr, bool) {
	cmp := &ast.Compare{Left: left}
	for {
		opPos := p.curToken.StartPosition
		op, ok := p.parseComparator()
		if !ok {
			return nil, false
		}
		if err := p.nextToken(); err != nil {
			return nil, false
		}
		right := p.parseExpression(COMPARE)
		if right == nil {
			return nil, false
		}
		cmp.OpPos = append(cmp.OpPos, opPos)
		cmp.Ops = append(cmp.Ops, op)
		cmp.Comparators = append(cmp.Comparators, right)
		if _, more := comparators[p.peekToken.Type]; !more {
			return cmp, true
		}
		if err := p.nextToken(); err != nil {
			return nil, false
		}
	}
}

// parseComparator resolves the comparator at the current token, consuming
// the second keyword of "not in" and "is not".
func (p *Parser) parseComparator() (ast.CmpOp, bool) {
	switch p.curToken.Type {
	case token.NOT:
		if !p.peekTokenIs(token.IN) {
			p.setTokenError(p.curToken, errors.E1003, "invalid syntax (unexpected not)")
			return ast.CmpInvalid, false
		}
		if err := p.nextToken(); err != nil {
			return ast.CmpInvalid, false
		}
		return ast.NotIn, true
	case token.IS:
		if p.peekTokenIs(token.NOT) {
			if err := p.nextToken(); err != nil {
				return ast.CmpInvalid, false
			}
			return ast.IsNot, true
		}
		return ast.Is, true
	}
	return comparators[p.curToken.Type], true
}

func (p *Parser) parseBoolOp(left ast.Expr) (ast.Expr, bool) {
	p.setTokenError(p.curToken, errors.E1010, "boolean operator %q is not supported", p.curToken.Literal)
	return nil, false
}

func (p *Parser) parseString() (ast.Expr, bool) {
	p.setTokenError(p.curToken, errors.E1010, "string literals are not supported")
	return nil, false
}

func (p *Parser) parseGroupedExpr() (ast.Expr, bool) {
	if err := p.nextToken(); err != nil { // move past '('
		return nil, false
	}
	if p.curTokenIs(token.RPAREN) {
		p.setTokenError(p.curToken, errors.E1010, "tuples are not supported")
		return nil, false
	}
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil, false
	}
	if p.peekTokenIs(token.COMMA) {
		p.setTokenError(p.peekToken, errors.E1010, "tuples are not supported")
		return nil, false
	}
	if !p.expectPeek("grouped expression", token.RPAREN) {
		return nil, false
	}
	return expr, true
}

func (p *Parser) parseCall(fun ast.Expr) (ast.Expr, bool) {
	call := &ast.Call{Fun: fun, Lparen: p.curToken.StartPosition}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		call.Rparen = p.curToken.StartPosition
		return call, true
	}
	if err := p.nextToken(); err != nil { // move to the first argument
		return nil, false
	}
	for {
		if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.ASSIGN) {
			name := p.newIdent(p.curToken)
			p.nextToken() // move to '='
			if err := p.nextToken(); err != nil {
				return nil, false
			}
			value := p.parseExpression(LOWEST)
			if value == nil {
				return nil, false
			}
			call.Keywords = append(call.Keywords, &ast.Keyword{Name: name, Value: value})
		} else {
			if len(call.Keywords) > 0 {
				p.setTokenError(p.curToken, errors.E1003, "positional argument follows keyword argument")
				return nil, false
			}
			arg := p.parseExpression(LOWEST)
			if arg == nil {
				return nil, false
			}
			call.Args = append(call.Args, arg)
		}
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken() // move to ','
		if p.peekTokenIs(token.RPAREN) {
			break
		}
		if err := p.nextToken(); err != nil {
			return nil, false
		}
	}
	if !p.expectPeek("call arguments", token.RPAREN) {
		return nil, false
	}
	call.Rparen = p.curToken.StartPosition
	return call, true
}

func (p *Parser) parseAttr(x ast.Expr) (ast.Expr, bool) {
	period := p.curToken.StartPosition
	if !p.expectPeek("attribute access", token.IDENT) {
		return nil, false
	}
	return &ast.Attr{X: x, Period: period, Name: p.newIdent(p.curToken)}, true
}

func (p *Parser) parseIndex(x ast.Expr) (ast.Expr, bool) {
	lbrack := p.curToken.StartPosition
	if err := p.nextToken(); err != nil {
		return nil, false
	}
	index := p.parseExpression(LOWEST)
	if index == nil {
		return nil, false
	}
	if !p.expectPeek("index expression", token.RBRACKET) {
		return nil, false
	}
	return &ast.Index{X: x, Lbrack: lbrack, Index: index, Rbrack: p.curToken.StartPosition}, true
}
