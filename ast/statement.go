package ast

import (
	"github.com/gql-run/gitql/token"
	"github.com/gql-run/gitql/types"
)

// TableSelection names one source table and the columns the executor
// must fetch from it (selected + hidden + predicate + join-key
// references, per the source-acquisition step).
type TableSelection struct {
	Name    string
	Alias   string
	Columns []string
}

// JoinKind enumerates the supported join strategies.
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftJoin
	RightJoin
	CrossJoin
	FullOuterJoin
)

// Join pairs two already-selected tables (by index into Select.Tables)
// under a kind and an optional ON predicate.
type Join struct {
	Left  int
	Right int
	Kind  JoinKind
	On    Expr // nil for CrossJoin
}

// ProjectionItem is one SELECT expression paired with its display
// name (alias, source literal, or a generated column_N).
type ProjectionItem struct {
	Expr  Expr
	Label string
}

// SelectStmt is the root of a query: table list, joins, projection,
// distinct mode, hidden selections and the aggregation/group flags the
// executor and parser both need.
type SelectStmt struct {
	StartPos token.Pos
	EndPos   token.Pos

	Tables []TableSelection
	Joins  []Join

	Projection []ProjectionItem

	Distinct   bool
	DistinctOn []string // non-empty only when Distinct && DISTINCT ON (...)

	// HiddenSelections are the aggregate/window temp columns the
	// parser hoisted out of Projection; stored first in every row.
	HiddenSelections []ProjectionItem

	HasAggregation bool // true if any hoisted aggregate call exists
	HasGroupBy     bool // true if a GroupByStmt is present

	Where    *WhereStmt
	GroupBy  *GroupByStmt
	Having   *HavingStmt
	Windows  []NamedWindow
	OrderBy  *OrderByStmt
	Limit    *LimitStmt
	Offset   *OffsetStmt
	Into     *IntoStmt
}

func (*SelectStmt) statementNode()   {}
func (s *SelectStmt) Pos() token.Pos { return s.StartPos }
func (s *SelectStmt) End() token.Pos { return s.EndPos }

// NamedWindow is a `WINDOW name AS (spec)` definition available to
// `OVER name` references elsewhere in the same query.
type NamedWindow struct {
	Name string
	Spec WindowSpec
}

// WindowSpec is the contents of an OVER(...) clause, whether inline or
// referenced by name.
type WindowSpec struct {
	PartitionBy []Expr
	OrderBy     []OrderArg
}

// WhereStmt is the WHERE clause predicate.
type WhereStmt struct {
	StartPos  token.Pos
	EndPos    token.Pos
	Predicate Expr
}

func (*WhereStmt) statementNode()   {}
func (w *WhereStmt) Pos() token.Pos { return w.StartPos }
func (w *WhereStmt) End() token.Pos { return w.EndPos }

// GroupByStmt is GROUP BY values [WITH ROLLUP].
type GroupByStmt struct {
	StartPos      token.Pos
	EndPos        token.Pos
	Values        []Expr
	HasWithRollup bool
}

func (*GroupByStmt) statementNode()   {}
func (g *GroupByStmt) Pos() token.Pos { return g.StartPos }
func (g *GroupByStmt) End() token.Pos { return g.EndPos }

// HavingStmt is the post-aggregation HAVING predicate.
type HavingStmt struct {
	StartPos  token.Pos
	EndPos    token.Pos
	Predicate Expr
}

func (*HavingStmt) statementNode()   {}
func (h *HavingStmt) Pos() token.Pos { return h.StartPos }
func (h *HavingStmt) End() token.Pos { return h.EndPos }

// SortOrder is ASC or DESC.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// NullsPolicy controls where NULLs sort; the parser's default is
// NullsLast for ASC and NullsFirst for DESC (§4.3).
type NullsPolicy int

const (
	NullsFirst NullsPolicy = iota
	NullsLast
)

// OrderArg is one ORDER BY argument with its resolved direction and
// nulls policy.
type OrderArg struct {
	Expr  Expr
	Order SortOrder
	Nulls NullsPolicy
}

// OrderByStmt is the list of ordering arguments, evaluated in order
// until one comparison is decisive.
type OrderByStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	Args     []OrderArg
}

func (*OrderByStmt) statementNode()   {}
func (o *OrderByStmt) Pos() token.Pos { return o.StartPos }
func (o *OrderByStmt) End() token.Pos { return o.EndPos }

// LimitStmt is LIMIT n.
type LimitStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	Count    Expr
}

func (*LimitStmt) statementNode()   {}
func (l *LimitStmt) Pos() token.Pos { return l.StartPos }
func (l *LimitStmt) End() token.Pos { return l.EndPos }

// OffsetStmt is OFFSET n.
type OffsetStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	Count    Expr
}

func (*OffsetStmt) statementNode()   {}
func (o *OffsetStmt) Pos() token.Pos { return o.StartPos }
func (o *OffsetStmt) End() token.Pos { return o.EndPos }

// IntoStmt is INTO OUTFILE 'path' [FIELDS TERMINATED BY s] [LINES
// TERMINATED BY s] [ENCLOSED BY s].
type IntoStmt struct {
	StartPos         token.Pos
	EndPos           token.Pos
	Outfile          string
	FieldsTerminator string // default ","
	LinesTerminator  string // default "\n"
	Enclosed         string // "" means unenclosed
}

func (*IntoStmt) statementNode()   {}
func (i *IntoStmt) Pos() token.Pos { return i.StartPos }
func (i *IntoStmt) End() token.Pos { return i.EndPos }

// DoStmt is `DO expr`: evaluates expr for its side effects (if any)
// and discards the result.
type DoStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	Expr     Expr
}

func (*DoStmt) statementNode()   {}
func (d *DoStmt) Pos() token.Pos { return d.StartPos }
func (d *DoStmt) End() token.Pos { return d.EndPos }

// GlobalVariableDecl is `SET @name = expr`.
type GlobalVariableDecl struct {
	StartPos token.Pos
	EndPos   token.Pos
	Name     string
	Value    Expr
	Type     types.DataType
}

func (*GlobalVariableDecl) statementNode()   {}
func (g *GlobalVariableDecl) Pos() token.Pos { return g.StartPos }
func (g *GlobalVariableDecl) End() token.Pos { return g.EndPos }

// DescribeTableStmt is `DESCRIBE table`.
type DescribeTableStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	Table    string
}

func (*DescribeTableStmt) statementNode()   {}
func (d *DescribeTableStmt) Pos() token.Pos { return d.StartPos }
func (d *DescribeTableStmt) End() token.Pos { return d.EndPos }

// ShowTablesStmt is `SHOW TABLES`.
type ShowTablesStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
}

func (*ShowTablesStmt) statementNode()   {}
func (s *ShowTablesStmt) Pos() token.Pos { return s.StartPos }
func (s *ShowTablesStmt) End() token.Pos { return s.EndPos }
