package ast

import (
	"testing"

	"github.com/gql-run/gitql/types"
)

func TestLiteralExprIsConst(t *testing.T) {
	lit := &LiteralExpr{Kind: LiteralInt, Text: "42", Type: types.IntType}
	if !lit.IsConst() {
		t.Error("literals must be const")
	}
	if lit.ExprType() != types.IntType {
		t.Errorf("ExprType() = %v, want Int", lit.ExprType())
	}
}

func TestSymbolExprIsNotConst(t *testing.T) {
	sym := &SymbolExpr{Name: "author", Type: types.TextType}
	if sym.IsConst() {
		t.Error("column references must not be const")
	}
}

func TestBinaryExprConstPropagation(t *testing.T) {
	l := &LiteralExpr{Kind: LiteralInt, Text: "1", Type: types.IntType}
	r := &LiteralExpr{Kind: LiteralInt, Text: "2", Type: types.IntType}
	bin := &BinaryExpr{Op: types.OpAdd, Left: l, Right: r, Type: types.IntType}
	if !bin.IsConst() {
		t.Error("binary expr over two literals should be const")
	}
	sym := &SymbolExpr{Name: "n", Type: types.IntType}
	bin2 := &BinaryExpr{Op: types.OpAdd, Left: l, Right: sym, Type: types.IntType}
	if bin2.IsConst() {
		t.Error("binary expr referencing a column must not be const")
	}
}

func TestCallExprNeverConst(t *testing.T) {
	call := &CallExpr{Name: "now", Type: types.DateTimeType}
	if call.IsConst() {
		t.Error("function calls must never be const")
	}
}

func TestStringLiteralValueOnlyForStringKind(t *testing.T) {
	s := &LiteralExpr{Kind: LiteralString, Text: "yes", Type: types.TextType}
	v, ok := s.StringLiteralValue()
	if !ok || v != "yes" {
		t.Errorf("got %q, %v", v, ok)
	}
	n := &LiteralExpr{Kind: LiteralInt, Text: "1", Type: types.IntType}
	if _, ok := n.StringLiteralValue(); ok {
		t.Error("non-string literal should not satisfy StringLiteralValue")
	}
}
