package ast

import "iter"

// visitor is called for each node by walk. If Visit returns nil, the
// children of the node are not visited.
type visitor interface {
	Visit(node Node) (w visitor)
}

// Children returns the direct, non-nil children of node in source order.
func Children(node Node) []Node {
	var out []Node
	add := func(n Node) {
		if n != nil {
			out = append(out, n)
		}
	}
	switch n := node.(type) {
	case *Program:
		if n.Body != nil {
			add(n.Body)
		}
	case *Assign:
		add(n.Target)
		add(n.Value)
	case *ExprStmt:
		add(n.X)
	case *BinaryOp:
		add(n.X)
		add(n.Y)
	case *UnaryOp:
		add(n.X)
	case *Call:
		add(n.Fun)
		for _, a := range n.Args {
			add(a)
		}
		for _, k := range n.Keywords {
			add(k)
		}
	case *Keyword:
		add(n.Name)
		add(n.Value)
	case *Compare:
		add(n.Left)
		for _, c := range n.Comparators {
			add(c)
		}
	case *ListComp:
		add(n.Elt)
		if n.Target != nil {
			add(n.Target)
		}
		add(n.Iter)
	case *List:
		for _, item := range n.Items {
			add(item)
		}
	case *Attr:
		add(n.X)
		if n.Name != nil {
			add(n.Name)
		}
	case *Index:
		add(n.X)
		add(n.Index)
	}
	return out
}

func walk(v visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range Children(node) {
		walk(v, child)
	}
}

// Inspect traverses an AST in depth-first order. It calls f(node) for each
// node; if f returns true, Inspect invokes f recursively for each of the
// non-nil children of node.
func Inspect(node Node, f func(Node) bool) {
	walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) visitor {
	if f(node) {
		return f
	}
	return nil
}

// Preorder returns an iterator over all the nodes of the AST rooted at node
// in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var visit func(Node) bool
		visit = func(n Node) bool {
			if !yield(n) {
				return false
			}
			for _, child := range Children(n) {
				if !visit(child) {
					return false
				}
			}
			return true
		}
		visit(root)
	}
}

// Depth returns the height of the tree rooted at node. A leaf has depth 1.
func Depth(node Node) int {
	if node == nil {
		return 0
	}
	deepest := 0
	for _, child := range Children(node) {
		if d := Depth(child); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}
