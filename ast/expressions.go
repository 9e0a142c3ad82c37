package ast

import (
	"bytes"
	"strings"

	"github.com/deepnoodle-ai/texit/token"
)

// Ident is an identifier such as "x" or "T_e".
type Ident struct {
	NamePos token.Position // position of the identifier
	Name    string         // identifier name
}

func (x *Ident) exprNode() {}

func (x *Ident) Pos() token.Position { return x.NamePos }
func (x *Ident) End() token.Position { return x.NamePos.Advance(len(x.Name)) }

func (x *Ident) String() string { return x.Name }

// BinaryOp is an operator expression where the operator is between the
// operands. Examples include "x + y" and "a ** b".
type BinaryOp struct {
	X     Expr           // left operand
	OpPos token.Position // position of operator
	Op    Op             // operator kind
	Y     Expr           // right operand
}

func (x *BinaryOp) exprNode() {}

func (x *BinaryOp) Pos() token.Position { return x.X.Pos() }
func (x *BinaryOp) End() token.Position { return x.Y.End() }

func (x *BinaryOp) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.X.String())
	out.WriteString(" " + x.Op.Symbol() + " ")
	out.WriteString(x.Y.String())
	out.WriteString(")")
	return out.String()
}

// UnaryOp is a prefix operator expression such as "-x" or "not x".
type UnaryOp struct {
	OpPos token.Position // position of operator
	Op    Op             // operator kind
	X     Expr           // operand
}

func (x *UnaryOp) exprNode() {}

func (x *UnaryOp) Pos() token.Position { return x.OpPos }
func (x *UnaryOp) End() token.Position { return x.X.End() }

func (x *UnaryOp) String() string {
	return "(" + x.Op.Symbol() + x.X.String() + ")"
}

// Keyword is a "name=value" argument in a call. Keywords are accepted by the
// parser but carry no meaning when rendering.
type Keyword struct {
	Name  *Ident // argument name
	Value Expr   // argument value
}

func (x *Keyword) Pos() token.Position { return x.Name.Pos() }
func (x *Keyword) End() token.Position { return x.Value.End() }

func (x *Keyword) String() string { return x.Name.Name + "=" + x.Value.String() }

// Call is a function call such as "sqrt(x)".
type Call struct {
	Fun      Expr           // function expression
	Lparen   token.Position // position of "("
	Args     []Expr         // positional arguments
	Keywords []*Keyword     // keyword arguments
	Rparen   token.Position // position of ")"
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.Fun.Pos() }
func (x *Call) End() token.Position { return x.Rparen.Advance(1) }

func (x *Call) String() string {
	args := make([]string, 0, len(x.Args)+len(x.Keywords))
	for _, a := range x.Args {
		args = append(args, a.String())
	}
	for _, k := range x.Keywords {
		args = append(args, k.String())
	}
	return x.Fun.String() + "(" + strings.Join(args, ", ") + ")"
}

// Compare is a comparison chain such as "1 < 2 < a <= 5". Ops and
// Comparators always have the same length.
type Compare struct {
	Left        Expr             // leftmost operand
	OpPos       []token.Position // position of each comparator
	Ops         []CmpOp          // comparators, in order
	Comparators []Expr           // right operands, in order
}

func (x *Compare) exprNode() {}

func (x *Compare) Pos() token.Position { return x.Left.Pos() }
func (x *Compare) End() token.Position {
	if len(x.Comparators) == 0 {
		return x.Left.End()
	}
	return x.Comparators[len(x.Comparators)-1].End()
}

func (x *Compare) String() string {
	var out bytes.Buffer
	out.WriteString(x.Left.String())
	for i, op := range x.Ops {
		out.WriteString(" " + op.Symbol() + " ")
		out.WriteString(x.Comparators[i].String())
	}
	return out.String()
}

// Attr is an attribute access such as "obj.name".
type Attr struct {
	X      Expr           // object expression
	Period token.Position // position of "."
	Name   *Ident         // attribute name
}

func (x *Attr) exprNode() {}

func (x *Attr) Pos() token.Position { return x.X.Pos() }
func (x *Attr) End() token.Position { return x.Name.End() }

func (x *Attr) String() string { return x.X.String() + "." + x.Name.Name }

// Index is a subscript expression such as "a[i]".
type Index struct {
	X      Expr           // object expression
	Lbrack token.Position // position of "["
	Index  Expr           // index expression
	Rbrack token.Position // position of "]"
}

func (x *Index) exprNode() {}

func (x *Index) Pos() token.Position { return x.X.Pos() }
func (x *Index) End() token.Position { return x.Rbrack.Advance(1) }

func (x *Index) String() string { return x.X.String() + "[" + x.Index.String() + "]" }
