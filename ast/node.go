// Package ast defines the typed expression and statement trees the
// parser builds and the executor walks. Every expression node caches
// its resolved DataType so the executor never re-infers types at
// evaluation time.
package ast

import (
	"github.com/gql-run/gitql/token"
	"github.com/gql-run/gitql/types"
)

// Node is the base interface implemented by every tree node.
type Node interface {
	Pos() token.Pos
	End() token.Pos
}

// Expr is a polymorphic expression node carrying a cached result type.
type Expr interface {
	Node
	exprNode()
	// ExprType returns the expression's resolved DataType.
	ExprType() types.DataType
	// IsConst reports whether the expression can be evaluated without
	// a row (a literal, or an expression built solely from literals).
	IsConst() bool
}

// Statement is any top-level clause the parser can produce.
type Statement interface {
	Node
	statementNode()
}
