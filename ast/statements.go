package ast

import "github.com/deepnoodle-ai/texit/token"

// Assign is a single-target assignment such as "Re_x = rho*v*x/mu".
type Assign struct {
	Target Expr           // left-hand side
	Eq     token.Position // position of "="
	Value  Expr           // right-hand side
}

func (s *Assign) stmtNode() {}

func (s *Assign) Pos() token.Position { return s.Target.Pos() }
func (s *Assign) End() token.Position { return s.Value.End() }

func (s *Assign) String() string {
	return s.Target.String() + " = " + s.Value.String()
}

// ExprStmt is a statement holding a single expression.
type ExprStmt struct {
	X Expr
}

func (s *ExprStmt) stmtNode() {}

func (s *ExprStmt) Pos() token.Position { return s.X.Pos() }
func (s *ExprStmt) End() token.Position { return s.X.End() }

func (s *ExprStmt) String() string { return s.X.String() }
