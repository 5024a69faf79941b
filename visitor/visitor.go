// Package visitor provides AST traversal used by the parser's
// aggregate/window hoisting pass and by callers inspecting a parsed
// query.
package visitor

import "github.com/gql-run/gitql/ast"

// Visitor is the interface for AST traversal.
type Visitor interface {
	Visit(node ast.Node) Visitor
}

// Walk traverses an AST in depth-first order.
func Walk(v Visitor, node ast.Node) {
	if node == nil {
		return
	}
	if v = v.Visit(node); v == nil {
		return
	}
	walkChildren(v, node)
}

func walkChildren(v Visitor, node ast.Node) {
	switch n := node.(type) {
	case *ast.SelectStmt:
		for _, p := range n.Projection {
			Walk(v, p.Expr)
		}
		for _, h := range n.HiddenSelections {
			Walk(v, h.Expr)
		}
		if n.Where != nil {
			Walk(v, n.Where)
		}
		if n.GroupBy != nil {
			Walk(v, n.GroupBy)
		}
		if n.Having != nil {
			Walk(v, n.Having)
		}
		if n.OrderBy != nil {
			Walk(v, n.OrderBy)
		}
		if n.Limit != nil {
			Walk(v, n.Limit)
		}
		if n.Offset != nil {
			Walk(v, n.Offset)
		}
		if n.Into != nil {
			Walk(v, n.Into)
		}

	case *ast.WhereStmt:
		Walk(v, n.Predicate)

	case *ast.GroupByStmt:
		for _, e := range n.Values {
			Walk(v, e)
		}

	case *ast.HavingStmt:
		Walk(v, n.Predicate)

	case *ast.OrderByStmt:
		for _, a := range n.Args {
			Walk(v, a.Expr)
		}

	case *ast.LimitStmt:
		Walk(v, n.Count)

	case *ast.OffsetStmt:
		Walk(v, n.Count)

	case *ast.DoStmt:
		Walk(v, n.Expr)

	case *ast.GlobalVariableDecl:
		Walk(v, n.Value)

	case *ast.BinaryExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *ast.UnaryExpr:
		Walk(v, n.Operand)

	case *ast.PatternExpr:
		Walk(v, n.Target)
		Walk(v, n.Pattern)

	case *ast.InExpr:
		Walk(v, n.Target)
		for _, e := range n.Values {
			Walk(v, e)
		}

	case *ast.BetweenExpr:
		Walk(v, n.Target)
		Walk(v, n.Low)
		Walk(v, n.High)

	case *ast.CaseExpr:
		for _, w := range n.Arms {
			Walk(v, w.Cond)
			Walk(v, w.Result)
		}
		if n.Else != nil {
			Walk(v, n.Else)
		}

	case *ast.CastExpr:
		Walk(v, n.Operand)

	case *ast.CollectionExpr:
		Walk(v, n.Target)
		if n.Index != nil {
			Walk(v, n.Index)
		}
		if n.Lo != nil {
			Walk(v, n.Lo)
		}
		if n.Hi != nil {
			Walk(v, n.Hi)
		}

	case *ast.CallExpr:
		for _, a := range n.Args {
			Walk(v, a)
		}
	}
}

// WalkFunc is a convenience wrapper that calls a function for each node.
func WalkFunc(node ast.Node, fn func(ast.Node) bool) {
	Walk(&funcVisitor{fn: fn}, node)
}

type funcVisitor struct {
	fn func(ast.Node) bool
}

func (v *funcVisitor) Visit(node ast.Node) Visitor {
	if v.fn(node) {
		return v
	}
	return nil
}

// Inspect calls f for each node in the AST; if f returns false, node's
// children are not visited.
func Inspect(node ast.Node, f func(ast.Node) bool) {
	WalkFunc(node, f)
}

// ContainsAggregateOrWindow reports whether expr's tree contains an
// AggregatePlaceholder or WindowPlaceholder, used by the parser to
// reject aggregates/windows outside projection/having/order-by.
func ContainsAggregateOrWindow(expr ast.Expr) bool {
	found := false
	Inspect(expr, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.AggregatePlaceholder, *ast.WindowPlaceholder:
			found = true
			return false
		}
		return !found
	})
	return found
}
