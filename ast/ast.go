// Package ast defines the syntax tree produced by the expression parser and
// consumed, read-only, by the renderer.
package ast

import "github.com/deepnoodle-ai/texit/token"

// Node represents a portion of the syntax tree. All nodes have position
// information indicating where they appear in the source.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// End returns the position of the first character immediately after the node.
	End() token.Position

	// String returns a human friendly representation of the Node. This should
	// be similar to the original source, but not necessarily identical.
	String() string
}

// Stmt represents a top-level statement: either an assignment or a bare
// expression.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Program is the root node of a parsed input. An input holds exactly one
// statement.
type Program struct {
	Body Stmt
}

func (p *Program) Pos() token.Position {
	if p.Body == nil {
		return token.NoPos
	}
	return p.Body.Pos()
}

func (p *Program) End() token.Position {
	if p.Body == nil {
		return token.NoPos
	}
	return p.Body.End()
}

func (p *Program) String() string {
	if p.Body == nil {
		return ""
	}
	return p.Body.String()
}
