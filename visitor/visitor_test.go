package visitor

import (
	"testing"

	"github.com/gql-run/gitql/ast"
	"github.com/gql-run/gitql/types"
)

func TestWalkCountsNodes(t *testing.T) {
	expr := &ast.BinaryExpr{
		Op:    types.OpAdd,
		Left:  &ast.SymbolExpr{Name: "a", Type: types.IntType},
		Right: &ast.SymbolExpr{Name: "b", Type: types.IntType},
		Type:  types.IntType,
	}
	count := 0
	Inspect(expr, func(ast.Node) bool { count++; return true })
	if count != 3 {
		t.Errorf("got %d nodes, want 3", count)
	}
}

func TestContainsAggregateOrWindow(t *testing.T) {
	withAgg := &ast.BinaryExpr{
		Op:   types.OpAdd,
		Left: &ast.AggregatePlaceholder{HiddenName: "_@temp_0", Type: types.IntType},
		Right: &ast.LiteralExpr{Kind: ast.LiteralInt, Text: "1", Type: types.IntType},
		Type: types.IntType,
	}
	if !ContainsAggregateOrWindow(withAgg) {
		t.Error("expected to find hoisted aggregate placeholder")
	}

	plain := &ast.SymbolExpr{Name: "author", Type: types.TextType}
	if ContainsAggregateOrWindow(plain) {
		t.Error("plain symbol should not contain an aggregate/window")
	}
}

func TestWalkStopsAtFalseReturn(t *testing.T) {
	expr := &ast.BinaryExpr{
		Op:    types.OpAdd,
		Left:  &ast.SymbolExpr{Name: "a", Type: types.IntType},
		Right: &ast.SymbolExpr{Name: "b", Type: types.IntType},
		Type:  types.IntType,
	}
	visited := 0
	Inspect(expr, func(ast.Node) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Errorf("got %d visits, want 1 (stop at root)", visited)
	}
}
