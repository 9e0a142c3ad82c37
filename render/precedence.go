package render

import "github.com/deepnoodle-ai/texit/ast"

// Operator precedences. A child is parenthesized when its parent binds
// more tightly. Kinds without an entry rank 0.
const (
	precCompare = 300
	precSum     = 300
	precProduct = 400
	precMod     = 500
	precPower   = 700
	precUnary   = 800
	precAtom    = 1000
)

var opPrecedences = map[ast.Op]int{
	ast.Add:      precSum,
	ast.Sub:      precSum,
	ast.Mult:     precProduct,
	ast.Div:      precProduct,
	ast.FloorDiv: precProduct,
	ast.Mod:      precMod,
	ast.Pow:      precPower,
	ast.Invert:   precUnary,
	ast.Not:      precUnary,
	ast.UAdd:     precUnary,
	ast.USub:     precUnary,
}

func opPrecedence(op ast.Op) int {
	return opPrecedences[op]
}

func precedence(node ast.Node) int {
	switch n := node.(type) {
	case *ast.BinaryOp:
		return opPrecedence(n.Op)
	case *ast.UnaryOp:
		return opPrecedence(n.Op)
	case *ast.Compare, *ast.Assign:
		return precCompare
	case *ast.Number, *ast.Ident, *ast.Call, *ast.List, *ast.ListComp:
		return precAtom
	default:
		return 0
	}
}
