package executor

import (
	"fmt"
	"strconv"

	"github.com/gql-run/gitql/ast"
	"github.com/gql-run/gitql/environment"
	"github.com/gql-run/gitql/object"
	"github.com/gql-run/gitql/stdlib"
	"github.com/gql-run/gitql/types"
	"github.com/gql-run/gitql/values"
)

// evalError wraps a failure encountered while walking an expression,
// locating it at the failing node the way §7 requires ("the executor
// attaches the current expression location when wrapping").
type evalError struct {
	pos ast.Node
	err error
}

func (e *evalError) Error() string {
	return fmt.Sprintf("%d:%d: %v", e.pos.Pos().Line, e.pos.Pos().Column, e.err)
}
func (e *evalError) Unwrap() error { return e.err }

func wrapErr(n ast.Node, err error) error {
	if err == nil {
		return nil
	}
	return &evalError{pos: n, err: err}
}

// rowContext is everything expression evaluation needs about the row
// currently in hand: its column layout and values, plus the query's
// environment (globals) and function registry.
type rowContext struct {
	env   *environment.Environment
	funcs *stdlib.Registry
	lo    *layout
	row   object.Row
}

func (c rowContext) withRow(lo *layout, row object.Row) rowContext {
	return rowContext{env: c.env, funcs: c.funcs, lo: lo, row: row}
}

// eval evaluates expr against c, returning the textual OpError or an
// internal "unreachable" error wrapped with expr's source location.
func eval(expr ast.Expr, c rowContext) (values.Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return evalLiteral(e)

	case *ast.SymbolExpr:
		return evalSymbol(e, c)

	case *ast.UnaryExpr:
		operand, err := eval(e.Operand, c)
		if err != nil {
			return nil, err
		}
		var v values.Value
		switch e.Op {
		case types.OpNeg:
			v, err = values.Neg(operand)
		case types.OpBang:
			v, err = values.Bang(operand)
		default:
			return nil, wrapErr(e, fmt.Errorf("internal: unreachable unary operator"))
		}
		return v, wrapErr(e, err)

	case *ast.BinaryExpr:
		return evalBinary(e, c)

	case *ast.PatternExpr:
		return evalPattern(e, c)

	case *ast.InExpr:
		return evalIn(e, c)

	case *ast.BetweenExpr:
		return evalBetween(e, c)

	case *ast.CaseExpr:
		return evalCase(e, c)

	case *ast.CastExpr:
		operand, err := eval(e.Operand, c)
		if err != nil {
			return nil, err
		}
		v, err := values.Cast(operand, e.Target)
		return v, wrapErr(e, err)

	case *ast.CollectionExpr:
		return evalCollection(e, c)

	case *ast.CallExpr:
		return evalCall(e, c)

	case *ast.AggregatePlaceholder:
		return evalHidden(e.HiddenName, c, e)

	case *ast.WindowPlaceholder:
		return evalHidden(e.HiddenName, c, e)
	}
	return nil, fmt.Errorf("internal: unreachable expression node %T", expr)
}

func evalHidden(name string, c rowContext, node ast.Node) (values.Value, error) {
	idx, ok := c.lo.indexOf(name)
	if !ok {
		return nil, wrapErr(node, fmt.Errorf("internal: hidden column %q not materialized", name))
	}
	return c.row.Values[idx], nil
}

func evalLiteral(e *ast.LiteralExpr) (values.Value, error) {
	switch e.Kind {
	case ast.LiteralInt:
		n, err := strconv.ParseInt(e.Text, 0, 64)
		if err != nil {
			return nil, wrapErr(e, fmt.Errorf("invalid integer literal %q", e.Text))
		}
		return values.IntValue(n), nil
	case ast.LiteralFloat:
		f, err := strconv.ParseFloat(e.Text, 64)
		if err != nil {
			return nil, wrapErr(e, fmt.Errorf("invalid float literal %q", e.Text))
		}
		return values.FloatValue(f), nil
	case ast.LiteralString:
		return values.TextValue(e.Text), nil
	case ast.LiteralBool:
		return values.BoolValue(e.Text == "true"), nil
	case ast.LiteralDate:
		ts, ok := values.ParseDate(e.Text)
		if !ok {
			return nil, wrapErr(e, fmt.Errorf("invalid date literal %q", e.Text))
		}
		return values.DateValue(ts), nil
	case ast.LiteralTime:
		return values.TimeValue(e.Text), nil
	case ast.LiteralDateTime:
		ts, ok := values.ParseDateTime(e.Text)
		if !ok {
			return nil, wrapErr(e, fmt.Errorf("invalid datetime literal %q", e.Text))
		}
		return values.DateTimeValue(ts), nil
	case ast.LiteralInterval:
		iv, err := values.ParseInterval(e.Text)
		if err != nil {
			return nil, wrapErr(e, err)
		}
		return values.IntervalValue{Interval: iv}, nil
	case ast.LiteralNull:
		return values.NullValue{}, nil
	}
	return nil, wrapErr(e, fmt.Errorf("internal: unreachable literal kind"))
}

func evalSymbol(e *ast.SymbolExpr, c rowContext) (values.Value, error) {
	if e.IsGlobal {
		if v, ok := c.env.Globals[e.Name]; ok {
			return v, nil
		}
		return values.UndefValue{}, nil
	}
	idx, ok := c.lo.indexOf(e.Name)
	if !ok {
		return nil, wrapErr(e, fmt.Errorf("internal: column %q not present in row", e.Name))
	}
	return c.row.Values[idx], nil
}

func evalBinary(e *ast.BinaryExpr, c rowContext) (values.Value, error) {
	switch e.Op {
	case types.OpAnd, types.OpOr:
		return evalShortCircuit(e, c)
	}

	left, err := eval(e.Left, c)
	if err != nil {
		return nil, err
	}
	right, err := eval(e.Right, c)
	if err != nil {
		return nil, err
	}

	if e.GroupMode != ast.NoGroup {
		arr, ok := right.(values.ArrayValue)
		if !ok {
			return nil, wrapErr(e, fmt.Errorf("group comparison requires an array on the right-hand side"))
		}
		v, err := values.GroupCompare(e.Op, left, arr, e.GroupMode == ast.GroupAll)
		return v, wrapErr(e, err)
	}

	var v values.Value
	switch e.Op {
	case types.OpAdd, types.OpSub, types.OpMul, types.OpDiv, types.OpMod:
		v, err = values.Arith(e.Op, left, right)
	case types.OpBitAnd, types.OpBitOr, types.OpBitXor, types.OpShl, types.OpShr:
		v, err = values.Bitwise(e.Op, left, right)
	case types.OpEq, types.OpNeq, types.OpLt, types.OpLte, types.OpGt, types.OpGte:
		v, err = values.Compare(e.Op, left, right)
	case types.OpXor:
		v, err = values.Logical(e.Op, left, right)
	default:
		return nil, wrapErr(e, fmt.Errorf("internal: unreachable binary operator"))
	}
	return v, wrapErr(e, err)
}

// evalShortCircuit implements AND/OR without evaluating the right
// operand when the left one already decides the result (spec.md §4.3
// "Logical implements AND, OR, XOR with short-circuit semantics left
// to the caller").
func evalShortCircuit(e *ast.BinaryExpr, c rowContext) (values.Value, error) {
	left, err := eval(e.Left, c)
	if err != nil {
		return nil, err
	}
	lb, ok := left.(values.BoolValue)
	if !ok {
		return nil, wrapErr(e, fmt.Errorf("logical operators require boolean operands"))
	}
	if e.Op == types.OpAnd && !bool(lb) {
		return values.BoolValue(false), nil
	}
	if e.Op == types.OpOr && bool(lb) {
		return values.BoolValue(true), nil
	}
	right, err := eval(e.Right, c)
	if err != nil {
		return nil, err
	}
	v, err := values.Logical(e.Op, left, right)
	return v, wrapErr(e, err)
}

func evalPattern(e *ast.PatternExpr, c rowContext) (values.Value, error) {
	target, err := eval(e.Target, c)
	if err != nil {
		return nil, err
	}
	pattern, err := eval(e.Pattern, c)
	if err != nil {
		return nil, err
	}
	t, ok1 := target.(values.TextValue)
	p, ok2 := pattern.(values.TextValue)
	if !ok1 || !ok2 {
		return nil, wrapErr(e, fmt.Errorf("pattern matching requires text operands"))
	}
	var matched bool
	switch e.Op {
	case types.OpLike:
		matched = values.Like(string(t), string(p))
	case types.OpGlob:
		matched = values.Glob(string(t), string(p))
	case types.OpRegexp:
		matched, err = values.Regexp(string(t), string(p))
		if err != nil {
			return nil, wrapErr(e, err)
		}
	default:
		return nil, wrapErr(e, fmt.Errorf("internal: unreachable pattern operator"))
	}
	if e.Not {
		matched = !matched
	}
	return values.BoolValue(matched), nil
}

func evalIn(e *ast.InExpr, c rowContext) (values.Value, error) {
	target, err := eval(e.Target, c)
	if err != nil {
		return nil, err
	}
	found := false
	for _, item := range e.Values {
		v, err := eval(item, c)
		if err != nil {
			return nil, err
		}
		if target.Equal(v) {
			found = true
			break
		}
	}
	if e.Not {
		found = !found
	}
	return values.BoolValue(found), nil
}

func evalBetween(e *ast.BetweenExpr, c rowContext) (values.Value, error) {
	target, err := eval(e.Target, c)
	if err != nil {
		return nil, err
	}
	low, err := eval(e.Low, c)
	if err != nil {
		return nil, err
	}
	high, err := eval(e.High, c)
	if err != nil {
		return nil, err
	}
	lowOrder, ok1 := target.Compare(low)
	highOrder, ok2 := target.Compare(high)
	if !ok1 || !ok2 {
		return nil, wrapErr(e, fmt.Errorf("BETWEEN requires comparable operands"))
	}
	in := lowOrder >= 0 && highOrder <= 0
	if e.Not {
		in = !in
	}
	return values.BoolValue(in), nil
}

func evalCase(e *ast.CaseExpr, c rowContext) (values.Value, error) {
	for _, arm := range e.Arms {
		cond, err := eval(arm.Cond, c)
		if err != nil {
			return nil, err
		}
		b, ok := cond.(values.BoolValue)
		if !ok {
			return nil, wrapErr(e, fmt.Errorf("CASE condition must be boolean"))
		}
		if bool(b) {
			return eval(arm.Result, c)
		}
	}
	if e.Else != nil {
		return eval(e.Else, c)
	}
	return values.NullValue{}, nil
}

func evalCollection(e *ast.CollectionExpr, c rowContext) (values.Value, error) {
	target, err := eval(e.Target, c)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case types.OpIndex:
		idx, err := eval(e.Index, c)
		if err != nil {
			return nil, err
		}
		i, ok := idx.(values.IntValue)
		if !ok {
			return nil, wrapErr(e, fmt.Errorf("index must be an integer"))
		}
		v, err := values.Index(target, int64(i))
		return v, wrapErr(e, err)
	case types.OpSlice:
		lo, err := eval(e.Lo, c)
		if err != nil {
			return nil, err
		}
		hi, err := eval(e.Hi, c)
		if err != nil {
			return nil, err
		}
		loI, ok1 := lo.(values.IntValue)
		hiI, ok2 := hi.(values.IntValue)
		if !ok1 || !ok2 {
			return nil, wrapErr(e, fmt.Errorf("slice bounds must be integers"))
		}
		v, err := values.Slice(target, int64(loI), int64(hiI))
		return v, wrapErr(e, err)
	case types.OpContains:
		needle, err := eval(e.Index, c)
		if err != nil {
			return nil, err
		}
		v, err := values.Contains(target, needle)
		return v, wrapErr(e, err)
	}
	return nil, wrapErr(e, fmt.Errorf("internal: unreachable collection operator"))
}

func evalCall(e *ast.CallExpr, c rowContext) (values.Value, error) {
	args := make([]values.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := eval(a, c)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	v, err := c.funcs.CallStandard(e.Name, args)
	return v, wrapErr(e, err)
}

// evalArgs evaluates a hoisted call's argument list against a single
// row, producing one row of the per-group/per-partition argument
// matrix the aggregation/window runtime expects (spec.md §4.4 steps
// 5-6).
func evalArgs(args []ast.Expr, c rowContext) ([]values.Value, error) {
	out := make([]values.Value, len(args))
	for i, a := range args {
		v, err := eval(a, c)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
