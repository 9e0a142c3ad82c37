// Package render turns a syntax tree into LaTeX or word processor equation
// text.
//
// A Renderer walks the tree bottom-up and produces one string per node.
// Children are parenthesized by comparing operator precedence, names are
// decomposed into subscripts and superscripts, and numbers, products and
// well-known functions get dedicated notation. The notation itself comes
// from a Formatter, so the same walk serves every output variant.
package render

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/texit/ast"
	"github.com/deepnoodle-ai/texit/errors"
	"github.com/deepnoodle-ai/texit/identifier"
	"github.com/deepnoodle-ai/texit/token"
)

// Renderer renders one syntax tree. It is not safe for concurrent use;
// create one per render.
type Renderer struct {
	cfg    Config
	f      Formatter
	dec    *identifier.Decomposer
	source []string
	depth  int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSource attaches the text the tree was parsed from, so that errors can
// quote the offending line.
func WithSource(src string) Option {
	return func(r *Renderer) {
		r.source = strings.Split(src, "\n")
	}
}

// WithFormatter overrides the Formatter selected by Config.Output.
func WithFormatter(f Formatter) Option {
	return func(r *Renderer) {
		r.f = f
	}
}

// New returns a Renderer for cfg. It fails with an
// *errors.UnsupportedOutputError when cfg.Output names no known variant.
func New(cfg Config, opts ...Option) (*Renderer, error) {
	r := &Renderer{cfg: cfg}
	for _, opt := range opts {
		opt(r)
	}
	if r.f == nil {
		f, err := NewFormatter(cfg.Output)
		if err != nil {
			return nil, err
		}
		r.f = f
	}
	decOpts := []identifier.Option{identifier.WithMarkers(cfg.Lower, cfg.Upper)}
	if cfg.Verbose {
		decOpts = append(decOpts, identifier.WithVerbose(cfg.Logger))
	}
	r.dec = identifier.New(decOpts...)
	return r, nil
}

// Formatter returns the formatter in use.
func (r *Renderer) Formatter() Formatter {
	return r.f
}

// Render returns the notation for node, without enclosure.
func (r *Renderer) Render(node ast.Node) (string, error) {
	r.depth = 0
	return r.visit(node)
}

// Render is shorthand for creating a Renderer from cfg and rendering node.
func Render(node ast.Node, cfg Config, opts ...Option) (string, error) {
	r, err := New(cfg, opts...)
	if err != nil {
		return "", err
	}
	return r.Render(node)
}

func (r *Renderer) visit(node ast.Node) (string, error) {
	r.depth++
	defer func() { r.depth-- }()
	if r.cfg.MaxDepth > 0 && r.depth > r.cfg.MaxDepth {
		return "", &errors.MaxDepthError{Limit: r.cfg.MaxDepth, Location: r.location(node.Pos())}
	}

	switch n := node.(type) {
	case *ast.Program:
		if n.Body == nil {
			return "", nil
		}
		return r.visit(n.Body)
	case *ast.ExprStmt:
		return r.visit(n.X)
	case *ast.Assign:
		return r.assign(n)
	case *ast.Number:
		return r.number(n), nil
	case *ast.Ident:
		return r.ident(n)
	case *ast.BinaryOp:
		return r.binary(n)
	case *ast.UnaryOp:
		return r.unary(n)
	case *ast.Compare:
		return r.compare(n)
	case *ast.Call:
		return r.call(n)
	case *ast.ListComp:
		c, err := r.comprehension(n)
		if err != nil {
			return "", err
		}
		return c.args(), nil
	default:
		return "", r.unsupported(node)
	}
}

func (r *Renderer) ident(n *ast.Ident) (string, error) {
	tree, err := r.dec.Decompose(n.Name)
	if err != nil {
		return "", err
	}
	return tree.Render(r.f.Group), nil
}

func (r *Renderer) assign(n *ast.Assign) (string, error) {
	target, err := r.visit(n.Target)
	if err != nil {
		return "", err
	}
	value, err := r.visit(n.Value)
	if err != nil {
		return "", err
	}
	return target + "=" + value, nil
}

// operand renders a child of an operator with precedence prec, adding
// parentheses when the child binds less tightly.
func (r *Renderer) operand(x ast.Expr, prec int, orEqual bool) (string, error) {
	s, err := r.visit(x)
	if err != nil {
		return "", err
	}
	p := precedence(x)
	if prec > p || (orEqual && prec == p) {
		return r.f.Parenthesis(s), nil
	}
	return s, nil
}

func (r *Renderer) binary(n *ast.BinaryOp) (string, error) {
	prec := opPrecedence(n.Op)
	switch n.Op {
	case ast.Div, ast.FloorDiv:
		up, err := r.visit(n.X)
		if err != nil {
			return "", err
		}
		down, err := r.visit(n.Y)
		if err != nil {
			return "", err
		}
		if n.Op == ast.FloorDiv {
			return fmt.Sprintf(`\left\lfloor\frac{%s}{%s}\right\rfloor`, up, down), nil
		}
		return r.f.Division(up, down), nil
	case ast.Pow:
		base, err := r.operand(n.X, prec, true)
		if err != nil {
			return "", err
		}
		exponent, err := r.visit(n.Y)
		if err != nil {
			return "", err
		}
		return r.f.Power(base, exponent), nil
	}

	left, err := r.operand(n.X, prec, false)
	if err != nil {
		return "", err
	}
	right, err := r.operand(n.Y, prec, false)
	if err != nil {
		return "", err
	}
	switch n.Op {
	case ast.Mult:
		return r.multiply(left, right), nil
	case ast.Add:
		return left + "+" + right, nil
	case ast.Sub:
		return left + "-" + right, nil
	case ast.Mod:
		return joinCommand(left+`\bmod`, right), nil
	case ast.LShift:
		return left + r.f.Operator("shiftLeft") + right, nil
	case ast.RShift:
		return left + r.f.Operator("shiftRight") + right, nil
	case ast.BitOr:
		return left + r.f.Operator("or") + right, nil
	case ast.BitXor:
		return left + r.f.Operator("xor") + right, nil
	case ast.BitAnd:
		return left + r.f.Operator("and") + right, nil
	default:
		return "", r.unsupported(n)
	}
}

// multiply joins the factors of a product. A numeric factor forces \times;
// with SimplifyMultipliers a single numeric factor is written first and
// juxtaposed, so a*2 becomes 2a.
func (r *Renderer) multiply(left, right string) string {
	leftNum, rightNum := looksNumeric(left), looksNumeric(right)
	op := r.f.Mult()
	if r.cfg.MultiplicationSymbol != "" {
		op = r.cfg.MultiplicationSymbol
	}
	if leftNum || rightNum {
		if r.cfg.SimplifyMultipliers && leftNum != rightNum {
			if rightNum && canJuxtapose(left) {
				return juxtapose(right, left)
			}
			if leftNum && canJuxtapose(right) {
				return juxtapose(left, right)
			}
		}
		return joinCommand(left+`\times`, right)
	}
	return joinCommand(left+op, right)
}

// canJuxtapose reports whether a number may be written directly in front of
// factor. 2*e1 must not become 2e1, which reads as scientific notation.
func canJuxtapose(factor string) bool {
	return !startsWithDigit(factor) && !exponentLike.MatchString(factor)
}

// juxtapose writes a numeric factor directly in front of another factor. A
// sign on the other factor moves in front of the number.
func juxtapose(num, other string) string {
	other = strings.TrimPrefix(other, "+")
	rest, negative := strings.CutPrefix(other, "-")
	if !negative {
		return num + other
	}
	if abs, ok := strings.CutPrefix(num, "-"); ok {
		return abs + rest
	}
	return "-" + num + rest
}

func (r *Renderer) unary(n *ast.UnaryOp) (string, error) {
	var sym string
	switch n.Op {
	case ast.USub:
		sym = "-"
	case ast.UAdd:
		sym = "+"
	case ast.Not:
		sym = `\neg`
	case ast.Invert:
		sym = r.f.Operator("invert")
	default:
		return "", r.unsupported(n)
	}
	operand, err := r.operand(n.X, opPrecedence(n.Op), false)
	if err != nil {
		return "", err
	}
	return joinCommand(sym, operand), nil
}

var comparators = map[ast.CmpOp]string{
	ast.Lt:  "<",
	ast.LtE: "<=",
	ast.Gt:  ">",
	ast.GtE: ">=",
	ast.Eq:  "=",
}

func (r *Renderer) compare(n *ast.Compare) (string, error) {
	left, err := r.visit(n.Left)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(left)
	for i, op := range n.Ops {
		sym, ok := comparators[op]
		if !ok {
			var pos token.Position
			if i < len(n.OpPos) {
				pos = n.OpPos[i]
			}
			return "", &errors.UnknownComparatorError{
				Comparator: op.Symbol(),
				Location:   r.location(pos),
			}
		}
		right, err := r.visit(n.Comparators[i])
		if err != nil {
			return "", err
		}
		b.WriteString(sym)
		b.WriteString(right)
	}
	return b.String(), nil
}

func (r *Renderer) unsupported(node ast.Node) error {
	kind := fmt.Sprintf("%T", node)
	kind = kind[strings.LastIndexByte(kind, '.')+1:]
	return &errors.UnsupportedNodeError{
		Kind:     kind,
		Source:   node.String(),
		Location: r.location(node.Pos()),
	}
}

func (r *Renderer) location(pos token.Position) errors.SourceLocation {
	loc := errors.SourceLocation{
		Filename: r.cfg.Filename,
		Line:     pos.LineNumber(),
		Column:   pos.ColumnNumber(),
	}
	if pos.Line >= 0 && pos.Line < len(r.source) {
		loc.Source = r.source[pos.Line]
	}
	return loc
}
