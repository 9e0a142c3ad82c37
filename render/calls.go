package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deepnoodle-ai/texit/ast"
)

// rangeComp is a comprehension over range(...) read as a summation range.
type rangeComp struct {
	iterator string
	min      string
	max      string
	content  string
}

// args renders the comprehension as a call argument, "f(i), i=0..19".
func (c *rangeComp) args() string {
	return fmt.Sprintf("%s, %s=%s..%s", c.content, c.iterator, c.min, c.max)
}

// comprehension reads [elt for i in range(a, b)] as i running from a to
// b-1. Any other source is rejected.
func (r *Renderer) comprehension(n *ast.ListComp) (*rangeComp, error) {
	src, ok := n.Iter.(*ast.Call)
	if !ok || len(src.Args) < 1 || len(src.Args) > 2 {
		return nil, r.unsupported(n)
	}
	fn, err := r.visit(src.Fun)
	if err != nil {
		return nil, err
	}
	if fn != "range" {
		return nil, r.unsupported(n)
	}
	bounds, err := r.visitAll(src.Args)
	if err != nil {
		return nil, err
	}
	c := &rangeComp{min: "0", max: bounds[0]}
	if len(bounds) == 2 {
		c.min, c.max = bounds[0], bounds[1]
	}
	c.max = inclusiveBound(c.max)
	if c.iterator, err = r.visit(n.Target); err != nil {
		return nil, err
	}
	if c.content, err = r.visit(n.Elt); err != nil {
		return nil, err
	}
	return c, nil
}

// inclusiveBound turns the exclusive upper bound of a range into the last
// value taken: 20 becomes 19, N+1 becomes N and N becomes N-1.
func inclusiveBound(max string) string {
	if v, err := strconv.Atoi(max); err == nil {
		return strconv.Itoa(v - 1)
	}
	if strings.HasSuffix(max, "+1") {
		return strings.TrimSuffix(max, "+1")
	}
	return max + "-1"
}

func (r *Renderer) visitAll(exprs []ast.Expr) ([]string, error) {
	out := make([]string, len(exprs))
	for i, x := range exprs {
		s, err := r.visit(x)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// Named forms for inverse trigonometric and logarithm functions.
var namedFunctions = map[string]string{
	"log":     `\ln`,
	"ln":      `\ln`,
	"log10":   `\log`,
	"arccos":  `\arccos`,
	"acos":    `\arccos`,
	"arcsin":  `\arcsin`,
	"asin":    `\arcsin`,
	"arctan":  `\arctan`,
	"atan":    `\arctan`,
	"arcsinh": `\sinh^{-1}`,
	"arccosh": `\cosh^{-1}`,
	"arctanh": `\tanh^{-1}`,
}

func (r *Renderer) call(n *ast.Call) (string, error) {
	name, err := r.visit(n.Fun)
	if err != nil {
		return "", err
	}

	// A leading comprehension stands in for the whole argument list.
	var (
		comp     *rangeComp
		rendered []string
		args     string
	)
	if lc, ok := firstComprehension(n.Args); ok {
		if comp, err = r.comprehension(lc); err != nil {
			return "", err
		}
		args = comp.args()
	} else {
		if rendered, err = r.visitAll(n.Args); err != nil {
			return "", err
		}
		args = strings.Join(rendered, ", ")
	}

	switch name {
	case "cos", "sin", "tan", "cosh", "sinh", "tanh":
		return `\` + name + r.f.Parenthesis(args), nil
	case "sqrt":
		return r.f.Sqrt(args), nil
	case "log", "ln", "log10", "arccos", "acos", "arcsin", "asin",
		"arctan", "atan", "arcsinh", "arccosh", "arctanh":
		return namedFunctions[name] + "(" + args + ")", nil
	case "power":
		if len(rendered) == 2 {
			return r.f.Power(r.f.Parenthesis(rendered[0]), rendered[1]), nil
		}
	case "divide":
		if len(rendered) == 2 {
			return r.f.Division(rendered[0], rendered[1]), nil
		}
	case "abs", "fabs":
		return "|" + args + "|", nil
	case "kronecher", "kron":
		return `\delta_` + r.f.Brackets(args), nil
	case "quad":
		if len(rendered) == 3 {
			u := r.cfg.DummyVar
			return fmt.Sprintf(`\int_{%s}^{%s} %s(%s) d%s`, rendered[1], rendered[2], rendered[0], u, u), nil
		}
	case "sum":
		if comp != nil {
			return fmt.Sprintf(`\sum_{%s=%s}^{%s} %s`, comp.iterator, comp.min, comp.max, comp.content), nil
		}
		return `\sum ` + args, nil
	case "f", "g", "h":
		return name + `{\left(` + args + `\right)}`, nil
	}
	return r.f.Apply(name, args), nil
}

func firstComprehension(args []ast.Expr) (*ast.ListComp, bool) {
	if len(args) == 0 {
		return nil, false
	}
	lc, ok := args[0].(*ast.ListComp)
	return lc, ok
}
