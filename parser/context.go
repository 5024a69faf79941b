package parser

import (
	"fmt"

	"github.com/gql-run/gitql/ast"
)

// NameGenerator produces fresh synthetic names; it is created fresh
// per parser instance (per query), never a package global, so that
// concurrent queries never share a counter (§5).
type NameGenerator struct {
	columnSeq int
	tempSeq   int
}

// NextColumn returns the next "column_N" name for an unaliased,
// non-literal projection expression.
func (g *NameGenerator) NextColumn() string {
	g.columnSeq++
	return fmt.Sprintf("column_%d", g.columnSeq)
}

// NextHidden returns the next "_@temp_N" name for a hoisted
// aggregate or window call.
func (g *NameGenerator) NextHidden() string {
	g.tempSeq++
	return fmt.Sprintf("_@temp_%d", g.tempSeq)
}

// Context records everything the parser discovers about a single
// query as it descends the grammar: hoisted aggregate/window calls,
// named windows, the projection's display names, generated hidden
// columns, alias bindings, and the handful of "where in the grammar
// am I" booleans that change how bare identifiers and bare aggregate
// calls are allowed to appear.
type Context struct {
	Aggregations map[string]ast.AggregateCall
	WindowCalls  map[string]ast.WindowCall
	NamedWindows map[string]ast.WindowSpec

	SelectedFields   []string
	HiddenSelections []string
	Aliases          map[string]string

	NameGen *NameGenerator

	InsideSelections  bool
	InsideOrderBy     bool
	InsideHaving      bool
	InsideOverClauses bool
	HasSelectStatement bool
	HasGroupByStatement bool
	IsSingleValueQuery bool
}

// NewContext returns an empty Context for a fresh query.
func NewContext() *Context {
	return &Context{
		Aggregations: map[string]ast.AggregateCall{},
		WindowCalls:  map[string]ast.WindowCall{},
		NamedWindows: map[string]ast.WindowSpec{},
		Aliases:      map[string]string{},
		NameGen:      &NameGenerator{},
	}
}
