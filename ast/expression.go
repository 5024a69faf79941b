package ast

import (
	"github.com/gql-run/gitql/token"
	"github.com/gql-run/gitql/types"
)

// LiteralKind distinguishes the literal forms the tokenizer can
// produce.
type LiteralKind int

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
	LiteralString
	LiteralBool
	LiteralDate
	LiteralTime
	LiteralDateTime
	LiteralInterval
	LiteralNull
)

// LiteralExpr is a constant value fixed at parse time.
type LiteralExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Kind     LiteralKind
	Text     string // raw lexeme, e.g. "42", "'hi'", "true"
	Type     types.DataType
}

func (*LiteralExpr) exprNode()                {}
func (l *LiteralExpr) Pos() token.Pos         { return l.StartPos }
func (l *LiteralExpr) End() token.Pos         { return l.EndPos }
func (l *LiteralExpr) ExprType() types.DataType { return l.Type }
func (l *LiteralExpr) IsConst() bool          { return true }

// StringLiteralValue implements types.StringLiteral so implicit casts
// (e.g. BOOL from 'yes') can be checked against string literal nodes
// without the types package importing ast.
func (l *LiteralExpr) StringLiteralValue() (string, bool) {
	if l.Kind != LiteralString {
		return "", false
	}
	return l.Text, true
}

// SymbolExpr references a column or a global variable (`@name`).
type SymbolExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Name     string
	IsGlobal bool
	Type     types.DataType
}

func (*SymbolExpr) exprNode()                {}
func (s *SymbolExpr) Pos() token.Pos         { return s.StartPos }
func (s *SymbolExpr) End() token.Pos         { return s.EndPos }
func (s *SymbolExpr) ExprType() types.DataType { return s.Type }
func (s *SymbolExpr) IsConst() bool          { return false }

// UnaryExpr is `-x` or `!x`.
type UnaryExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Op       types.Operator
	Operand  Expr
	Type     types.DataType
}

func (*UnaryExpr) exprNode()                {}
func (u *UnaryExpr) Pos() token.Pos         { return u.StartPos }
func (u *UnaryExpr) End() token.Pos         { return u.EndPos }
func (u *UnaryExpr) ExprType() types.DataType { return u.Type }
func (u *UnaryExpr) IsConst() bool          { return u.Operand.IsConst() }

// BinaryExpr covers arithmetic, bitwise, logical and (group-)comparison
// operators; which family Op belongs to is recoverable from
// types.Ops's dispatch, so one node shape suffices for all of them.
type BinaryExpr struct {
	StartPos  token.Pos
	EndPos    token.Pos
	Op        types.Operator
	Left      Expr
	Right     Expr
	GroupMode GroupMode // NoGroup, GroupAny, GroupAll — only meaningful for Op{Group..}
	Type      types.DataType
}

// GroupMode distinguishes a plain comparison from `= ANY(...)` /
// `= ALL(...)`.
type GroupMode int

const (
	NoGroup GroupMode = iota
	GroupAny
	GroupAll
)

func (*BinaryExpr) exprNode()                {}
func (b *BinaryExpr) Pos() token.Pos         { return b.StartPos }
func (b *BinaryExpr) End() token.Pos         { return b.EndPos }
func (b *BinaryExpr) ExprType() types.DataType { return b.Type }
func (b *BinaryExpr) IsConst() bool          { return b.Left.IsConst() && b.Right.IsConst() }

// PatternExpr covers LIKE, GLOB and REGEXP.
type PatternExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Op       types.Operator // OpLike, OpGlob or OpRegexp
	Not      bool
	Target   Expr
	Pattern  Expr
}

func (*PatternExpr) exprNode()                {}
func (p *PatternExpr) Pos() token.Pos         { return p.StartPos }
func (p *PatternExpr) End() token.Pos         { return p.EndPos }
func (p *PatternExpr) ExprType() types.DataType { return types.BoolType }
func (p *PatternExpr) IsConst() bool          { return p.Target.IsConst() && p.Pattern.IsConst() }

// InExpr is `expr [NOT] IN (v1, v2, ...)`.
type InExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Target   Expr
	Not      bool
	Values   []Expr
}

func (*InExpr) exprNode()                {}
func (i *InExpr) Pos() token.Pos         { return i.StartPos }
func (i *InExpr) End() token.Pos         { return i.EndPos }
func (i *InExpr) ExprType() types.DataType { return types.BoolType }
func (i *InExpr) IsConst() bool {
	if !i.Target.IsConst() {
		return false
	}
	for _, v := range i.Values {
		if !v.IsConst() {
			return false
		}
	}
	return true
}

// BetweenExpr is `expr [NOT] BETWEEN low AND high`.
type BetweenExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Target   Expr
	Not      bool
	Low      Expr
	High     Expr
}

func (*BetweenExpr) exprNode()                {}
func (b *BetweenExpr) Pos() token.Pos         { return b.StartPos }
func (b *BetweenExpr) End() token.Pos         { return b.EndPos }
func (b *BetweenExpr) ExprType() types.DataType { return types.BoolType }
func (b *BetweenExpr) IsConst() bool {
	return b.Target.IsConst() && b.Low.IsConst() && b.High.IsConst()
}

// WhenArm is a single `WHEN cond THEN result` arm of a CaseExpr.
type WhenArm struct {
	Cond   Expr
	Result Expr
}

// CaseExpr is `CASE [operand] WHEN ... THEN ... [ELSE ...] END`; the
// parser desugars the simple form (`CASE operand WHEN v THEN ...`) into
// the searched form (`CASE WHEN operand = v THEN ...`) so the executor
// only ever evaluates the searched shape.
type CaseExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Arms     []WhenArm
	Else     Expr // nil if absent
	Type     types.DataType
}

func (*CaseExpr) exprNode()                {}
func (c *CaseExpr) Pos() token.Pos         { return c.StartPos }
func (c *CaseExpr) End() token.Pos         { return c.EndPos }
func (c *CaseExpr) ExprType() types.DataType { return c.Type }
func (c *CaseExpr) IsConst() bool {
	if c.Else != nil && !c.Else.IsConst() {
		return false
	}
	for _, w := range c.Arms {
		if !w.Cond.IsConst() || !w.Result.IsConst() {
			return false
		}
	}
	return true
}

// CastExpr is `CAST(expr AS type)`.
type CastExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Operand  Expr
	Target   types.DataType
}

func (*CastExpr) exprNode()                {}
func (c *CastExpr) Pos() token.Pos         { return c.StartPos }
func (c *CastExpr) End() token.Pos         { return c.EndPos }
func (c *CastExpr) ExprType() types.DataType { return c.Target }
func (c *CastExpr) IsConst() bool          { return c.Operand.IsConst() }

// CollectionExpr covers `arr[i]`, `arr[lo:hi]` and the `@>` containment
// operator, distinguished by Op.
type CollectionExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Op       types.Operator // OpIndex, OpSlice or OpContains
	Target   Expr
	Index    Expr // OpIndex, OpContains (needle)
	Lo, Hi   Expr // OpSlice
	Type     types.DataType
}

func (*CollectionExpr) exprNode()                {}
func (c *CollectionExpr) Pos() token.Pos         { return c.StartPos }
func (c *CollectionExpr) End() token.Pos         { return c.EndPos }
func (c *CollectionExpr) ExprType() types.DataType { return c.Type }
func (c *CollectionExpr) IsConst() bool {
	if !c.Target.IsConst() {
		return false
	}
	for _, e := range []Expr{c.Index, c.Lo, c.Hi} {
		if e != nil && !e.IsConst() {
			return false
		}
	}
	return true
}

// CallExpr is a plain (non-aggregate, non-window) standard function
// call, e.g. `lower(name)`.
type CallExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Name     string
	Args     []Expr
	Type     types.DataType
}

func (*CallExpr) exprNode()                {}
func (c *CallExpr) Pos() token.Pos         { return c.StartPos }
func (c *CallExpr) End() token.Pos         { return c.EndPos }
func (c *CallExpr) ExprType() types.DataType { return c.Type }
// IsConst is always false: function calls are never folded at parse
// time, even when every argument is constant.
func (c *CallExpr) IsConst() bool { return false }

// AggregatePlaceholder stands in, inside the projection/having/order-by
// trees, for an aggregate call the parser hoisted into a hidden
// selection; the executor resolves it by HiddenName at evaluation time
// instead of re-running the aggregate. Call carries the hoisted
// invocation itself so the executor never needs the parser's Context
// to materialize it.
type AggregatePlaceholder struct {
	StartPos   token.Pos
	EndPos     token.Pos
	HiddenName string
	Call       AggregateCall
	Type       types.DataType
}

func (*AggregatePlaceholder) exprNode()                {}
func (a *AggregatePlaceholder) Pos() token.Pos         { return a.StartPos }
func (a *AggregatePlaceholder) End() token.Pos         { return a.EndPos }
func (a *AggregatePlaceholder) ExprType() types.DataType { return a.Type }
func (a *AggregatePlaceholder) IsConst() bool          { return false }

// WindowPlaceholder is the window-function analogue of
// AggregatePlaceholder.
type WindowPlaceholder struct {
	StartPos   token.Pos
	EndPos     token.Pos
	HiddenName string
	Call       WindowCall
	Type       types.DataType
}

func (*WindowPlaceholder) exprNode()                {}
func (w *WindowPlaceholder) Pos() token.Pos         { return w.StartPos }
func (w *WindowPlaceholder) End() token.Pos         { return w.EndPos }
func (w *WindowPlaceholder) ExprType() types.DataType { return w.Type }
func (w *WindowPlaceholder) IsConst() bool          { return false }
