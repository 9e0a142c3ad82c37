package ast

import (
	"strings"

	"github.com/deepnoodle-ai/texit/token"
)

// Number is a numeric literal. The literal text is kept alongside the parsed
// value so that scientific spellings such as "1e3" survive parsing.
type Number struct {
	ValuePos token.Position // position of the literal
	Literal  string         // the literal text (e.g., "42", "1.5e-3")
	Value    float64        // the parsed value
	Float    bool           // true for float literals, false for integers
}

func (x *Number) exprNode() {}

func (x *Number) Pos() token.Position { return x.ValuePos }
func (x *Number) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Number) String() string { return x.Literal }

// Scientific reports whether the literal is written with an exponent.
func (x *Number) Scientific() bool {
	return strings.ContainsAny(x.Literal, "eE")
}

// List is a list display such as "[1, 2, 3]".
type List struct {
	Lbrack token.Position // position of "["
	Items  []Expr         // list elements
	Rbrack token.Position // position of "]"
}

func (x *List) exprNode() {}

func (x *List) Pos() token.Position { return x.Lbrack }
func (x *List) End() token.Position { return x.Rbrack.Advance(1) }

func (x *List) String() string {
	items := make([]string, 0, len(x.Items))
	for _, item := range x.Items {
		items = append(items, item.String())
	}
	return "[" + strings.Join(items, ", ") + "]"
}

// ListComp is a single-generator list comprehension such as
// "[k for k in range(1, N+1)]".
type ListComp struct {
	Lbrack token.Position // position of "["
	Elt    Expr           // element expression
	For    token.Position // position of "for"
	Target *Ident         // iteration variable
	Iter   Expr           // source expression
	Rbrack token.Position // position of "]"
}

func (x *ListComp) exprNode() {}

func (x *ListComp) Pos() token.Position { return x.Lbrack }
func (x *ListComp) End() token.Position { return x.Rbrack.Advance(1) }

func (x *ListComp) String() string {
	return "[" + x.Elt.String() + " for " + x.Target.String() + " in " + x.Iter.String() + "]"
}
