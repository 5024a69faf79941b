package ast

import "github.com/gql-run/gitql/types"

// AggregateCall is the hoisted specification of an aggregate function
// invocation found inside a projection, HAVING predicate or ORDER BY
// argument; the parser replaces its original position with an
// AggregatePlaceholder keyed by HiddenName and stores one of these per
// hidden column.
type AggregateCall struct {
	Name     string // e.g. "count", "sum", "avg"
	Distinct bool
	Args     []Expr
	Type     types.DataType
}

// WindowCall is the window-function analogue of AggregateCall.
type WindowCall struct {
	Name string // e.g. "row_number", "rank", "lag"
	Args []Expr
	Over WindowSpec
	Type types.DataType
}
