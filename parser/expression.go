package parser

import (
	"strconv"
	"strings"

	"github.com/gql-run/gitql/ast"
	"github.com/gql-run/gitql/diagnostic"
	"github.com/gql-run/gitql/token"
	"github.com/gql-run/gitql/types"
	"github.com/gql-run/gitql/values"
)

// Precedence levels for the recursive-descent expression grammar,
// tightest binding last (mirrors the teacher's precedence-climbing
// shape, retargeted at this grammar's operator set).
const (
	precLowest = iota
	precOr
	precXor
	precAnd
	precNot
	precComparison // =, <>, <, <=, >, >=, <=>, LIKE, GLOB, REGEXP, IN, BETWEEN, IS, @>
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precAdditive
	precMultiplicative
	precUnary
	precPostfix // [], ::
)

func (p *Parser) parseExpr(minPrec int) ast.Expr {
	left := p.parseUnary()
	if !p.ok() {
		return nil
	}
	return p.parseExprPrec(left, minPrec)
}

// parseExprPrec implements precedence climbing over an already-parsed
// left operand.
func (p *Parser) parseExprPrec(left ast.Expr, minPrec int) ast.Expr {
	for p.ok() {
		if notOp, prec := p.peekNotPrefixed(); notOp {
			if prec < minPrec {
				break
			}
			left = p.parseNotPrefixedOp(left)
			continue
		}

		op, prec, ok := p.currentBinaryOp()
		if !ok || prec < minPrec {
			break
		}
		left = p.parseBinaryOp(left, op, prec)
	}
	return left
}

// peekNotPrefixed reports whether the current token starts a
// NOT-prefixed operator (NOT IN / NOT BETWEEN / NOT LIKE / NOT GLOB /
// NOT REGEXP), and its precedence.
func (p *Parser) peekNotPrefixed() (bool, int) {
	if !p.curIs(token.NOT) {
		return false, 0
	}
	switch p.peekToken().Type {
	case token.IN, token.BETWEEN, token.LIKE, token.GLOB, token.REGEXP:
		return true, precComparison
	}
	return false, 0
}

func (p *Parser) parseNotPrefixedOp(left ast.Expr) ast.Expr {
	p.advance() // consume NOT
	switch p.cur.Type {
	case token.IN:
		return p.parseIn(left, true)
	case token.BETWEEN:
		return p.parseBetween(left, true)
	case token.LIKE, token.GLOB, token.REGEXP:
		return p.parsePattern(left, true)
	}
	return left
}

// currentBinaryOp reports whether the current token starts a binary
// operator, and its precedence. The concrete types.Operator for
// multi-token or type-checked operators is resolved inside
// parseBinaryOp; here it only drives the precedence-climbing loop.
func (p *Parser) currentBinaryOp() (types.Operator, int, bool) {
	switch p.cur.Type {
	case token.OR:
		return types.OpOr, precOr, true
	case token.XOR:
		return types.OpXor, precXor, true
	case token.AND:
		return types.OpAnd, precAnd, true
	case token.EQ:
		return types.OpEq, precComparison, true
	case token.NEQ:
		return types.OpNeq, precComparison, true
	case token.LT:
		return types.OpLt, precComparison, true
	case token.LTE:
		return types.OpLte, precComparison, true
	case token.GT:
		return types.OpGt, precComparison, true
	case token.GTE:
		return types.OpGte, precComparison, true
	case token.SPACESHIP:
		return types.OpEq, precComparison, true
	case token.PIPE:
		return types.OpBitOr, precBitOr, true
	case token.CARET:
		return types.OpBitXor, precBitXor, true
	case token.AMP:
		return types.OpBitAnd, precBitAnd, true
	case token.SHL:
		return types.OpShl, precShift, true
	case token.SHR:
		return types.OpShr, precShift, true
	case token.PLUS:
		return types.OpAdd, precAdditive, true
	case token.MINUS:
		return types.OpSub, precAdditive, true
	case token.ASTERISK:
		return types.OpMul, precMultiplicative, true
	case token.SLASH:
		return types.OpDiv, precMultiplicative, true
	case token.PERCENT:
		return types.OpMod, precMultiplicative, true
	case token.LIKE, token.GLOB, token.REGEXP:
		return types.OpLike, precComparison, true
	case token.IN:
		return types.OpEq, precComparison, true
	case token.BETWEEN:
		return types.OpEq, precComparison, true
	case token.ARROWCONTAINS:
		return types.OpContains, precComparison, true
	case token.IS:
		return types.OpEq, precComparison, true
	}
	return 0, 0, false
}

func (p *Parser) parseBinaryOp(left ast.Expr, op types.Operator, prec int) ast.Expr {
	switch p.cur.Type {
	case token.LIKE, token.GLOB, token.REGEXP:
		return p.parsePattern(left, false)
	case token.IN:
		return p.parseIn(left, false)
	case token.BETWEEN:
		return p.parseBetween(left, false)
	case token.IS:
		return p.parseIs(left)
	case token.ARROWCONTAINS:
		return p.parseContains(left)
	}

	opTok := p.cur
	spaceship := opTok.Type == token.SPACESHIP
	p.advance()

	group := ast.NoGroup
	if isComparisonOp(op) && !spaceship {
		if p.curIs(token.ANY) || p.curIs(token.SOME) {
			p.advance()
			group = ast.GroupAny
		} else if p.curIs(token.ALL) {
			p.advance()
			group = ast.GroupAll
		}
	}

	right := p.parseOperandFollowingBinary(prec)
	if !p.ok() {
		return left
	}

	leftType := left.ExprType()
	if group != ast.NoGroup {
		groupOp := toGroupOp(op)
		cap := types.Ops(leftType, groupOp)
		if !cap.Accepts(right.ExprType()) {
			p.failAt("parser", opTok.Pos, "operator %s against an array of %s cannot compare %s", opTok.Type, right.ExprType().Literal(), leftType.Literal())
			return left
		}
		return &ast.BinaryExpr{StartPos: left.Pos(), EndPos: right.End(), Op: groupOp, Left: left, Right: right, GroupMode: group, Type: types.BoolType}
	}

	cap := types.Ops(leftType, op)
	if !cap.Accepts(right.ExprType()) {
		p.failAt("parser", opTok.Pos, "cannot apply operator %s between %s and %s", opTok.Type, leftType.Literal(), right.ExprType().Literal())
		return left
	}
	result := cap.Result(right.ExprType())
	return &ast.BinaryExpr{StartPos: left.Pos(), EndPos: right.End(), Op: op, Left: left, Right: right, Type: result}
}

func isComparisonOp(op types.Operator) bool {
	switch op {
	case types.OpEq, types.OpNeq, types.OpLt, types.OpLte, types.OpGt, types.OpGte:
		return true
	}
	return false
}

func toGroupOp(op types.Operator) types.Operator {
	switch op {
	case types.OpEq:
		return types.OpGroupEq
	case types.OpNeq:
		return types.OpGroupNeq
	case types.OpLt:
		return types.OpGroupLt
	case types.OpLte:
		return types.OpGroupLte
	case types.OpGt:
		return types.OpGroupGt
	case types.OpGte:
		return types.OpGroupGte
	}
	return op
}

// parseOperandFollowingBinary parses the right-hand operand of a
// left-associative binary operator at precedence prec.
func (p *Parser) parseOperandFollowingBinary(prec int) ast.Expr {
	right := p.parseUnary()
	if !p.ok() {
		return right
	}
	return p.parseExprPrec(right, prec+1)
}

func (p *Parser) parsePattern(target ast.Expr, not bool) ast.Expr {
	opTok := p.cur
	var op types.Operator
	switch opTok.Type {
	case token.LIKE:
		op = types.OpLike
	case token.GLOB:
		op = types.OpGlob
	case token.REGEXP:
		op = types.OpRegexp
	}
	p.advance()
	pattern := p.parseOperandFollowingBinary(precComparison)
	if !p.ok() {
		return target
	}
	cap := types.Ops(target.ExprType(), op)
	if !cap.Accepts(pattern.ExprType()) {
		p.failAt("parser", opTok.Pos, "%s requires text operands, got %s", opTok.Type, target.ExprType().Literal())
		return target
	}
	return &ast.PatternExpr{StartPos: target.Pos(), EndPos: pattern.End(), Op: op, Not: not, Target: target, Pattern: pattern}
}

func (p *Parser) parseIn(target ast.Expr, not bool) ast.Expr {
	start := target.Pos()
	p.advance() // consume IN
	if !p.expect(token.LPAREN) {
		return target
	}
	var list []ast.Expr
	if !p.curIs(token.RPAREN) {
		for {
			e := p.parseExpr(precLowest)
			if !p.ok() {
				return target
			}
			if !types.Equal(target.ExprType(), e.ExprType()) {
				p.failAt("parser", e.Pos(), "IN list element type %s does not match %s", e.ExprType().Literal(), target.ExprType().Literal())
				return target
			}
			list = append(list, e)
			if !p.consumeIf(token.COMMA) {
				break
			}
		}
	}
	end := p.cur.Pos
	if !p.expect(token.RPAREN) {
		return target
	}
	return &ast.InExpr{StartPos: start, EndPos: end, Target: target, Not: not, Values: list}
}

func (p *Parser) parseBetween(target ast.Expr, not bool) ast.Expr {
	p.advance() // consume BETWEEN
	low := p.parseOperandFollowingBinary(precComparison)
	if !p.ok() {
		return target
	}
	if !p.expect(token.AND) {
		return target
	}
	high := p.parseOperandFollowingBinary(precComparison)
	if !p.ok() {
		return target
	}
	if !types.Equal(target.ExprType(), low.ExprType()) || !types.Equal(target.ExprType(), high.ExprType()) {
		p.failAt("parser", target.Pos(), "BETWEEN bounds must match the operand's type %s", target.ExprType().Literal())
		return target
	}
	return &ast.BetweenExpr{StartPos: target.Pos(), EndPos: high.End(), Target: target, Not: not, Low: low, High: high}
}

func (p *Parser) parseIs(left ast.Expr) ast.Expr {
	opTok := p.cur
	p.advance() // consume IS
	not := p.consumeIf(token.NOT)
	end := p.cur.Pos
	if !p.expect(token.NULL) {
		return left
	}
	lit := &ast.LiteralExpr{StartPos: opTok.Pos, EndPos: end, Kind: ast.LiteralNull, Text: "null", Type: types.NullType}
	return &ast.BinaryExpr{StartPos: left.Pos(), EndPos: lit.End(), Op: opEqNeq(not), Left: left, Right: lit, Type: types.BoolType}
}

func opEqNeq(not bool) types.Operator {
	if not {
		return types.OpNeq
	}
	return types.OpEq
}

func (p *Parser) parseContains(left ast.Expr) ast.Expr {
	opTok := p.cur
	p.advance() // consume @>
	right := p.parseOperandFollowingBinary(precComparison)
	if !p.ok() {
		return left
	}
	cap := types.Ops(left.ExprType(), types.OpContains)
	if !cap.Accepts(right.ExprType()) {
		p.failAt("parser", opTok.Pos, "cannot apply @> between %s and %s", left.ExprType().Literal(), right.ExprType().Literal())
		return left
	}
	return &ast.CollectionExpr{StartPos: left.Pos(), EndPos: right.End(), Op: types.OpContains, Target: left, Index: right, Type: types.BoolType}
}

// --- unary / primary ---------------------------------------------------

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur.Type {
	case token.MINUS:
		pos := p.cur.Pos
		p.advance()
		operand := p.parseUnary()
		if !p.ok() {
			return operand
		}
		result, ok := types.CanPerformUnary(operand.ExprType(), types.OpNeg)
		if !ok {
			p.failAt("parser", pos, "cannot negate a value of type %s", operand.ExprType().Literal())
			return operand
		}
		return p.parsePostfix(&ast.UnaryExpr{StartPos: pos, EndPos: operand.End(), Op: types.OpNeg, Operand: operand, Type: result})
	case token.NOT:
		pos := p.cur.Pos
		p.advance()
		operand := p.parseExpr(precNot)
		if !p.ok() {
			return operand
		}
		result, ok := types.CanPerformUnary(operand.ExprType(), types.OpBang)
		if !ok {
			p.failAt("parser", pos, "cannot apply NOT to a value of type %s", operand.ExprType().Literal())
			return operand
		}
		return &ast.UnaryExpr{StartPos: pos, EndPos: operand.End(), Op: types.OpBang, Operand: operand, Type: result}
	}
	return p.parsePostfix(p.parsePrimary())
}

// parsePostfix handles `[index]`, `[lo:hi]` and `::type` suffixes.
func (p *Parser) parsePostfix(expr ast.Expr) ast.Expr {
	for p.ok() && expr != nil {
		switch p.cur.Type {
		case token.LBRACKET:
			expr = p.parseCollectionSuffix(expr)
		case token.DCOLON:
			expr = p.parseShorthandCast(expr)
		default:
			return expr
		}
	}
	return expr
}

func (p *Parser) parseCollectionSuffix(target ast.Expr) ast.Expr {
	start := p.cur.Pos
	p.advance() // consume [
	var lo ast.Expr
	if !p.curIs(token.COLON) {
		lo = p.parseExpr(precLowest)
		if !p.ok() {
			return target
		}
	}
	if p.curIs(token.COLON) {
		p.advance()
		var hi ast.Expr
		if !p.curIs(token.RBRACKET) {
			hi = p.parseExpr(precLowest)
			if !p.ok() {
				return target
			}
		}
		end := p.cur.Pos
		if !p.expect(token.RBRACKET) {
			return target
		}
		cap := types.Ops(target.ExprType(), types.OpSlice)
		if lo != nil && !cap.Accepts(lo.ExprType()) {
			p.failAt("parser", start, "cannot slice a value of type %s", target.ExprType().Literal())
			return target
		}
		return &ast.CollectionExpr{StartPos: start, EndPos: end, Op: types.OpSlice, Target: target, Lo: lo, Hi: hi, Type: cap.Result(target.ExprType())}
	}
	end := p.cur.Pos
	if !p.expect(token.RBRACKET) {
		return target
	}
	cap := types.Ops(target.ExprType(), types.OpIndex)
	if !cap.Accepts(lo.ExprType()) {
		p.failAt("parser", start, "cannot index a value of type %s with %s", target.ExprType().Literal(), lo.ExprType().Literal())
		return target
	}
	return &ast.CollectionExpr{StartPos: start, EndPos: end, Op: types.OpIndex, Target: target, Index: lo, Type: cap.Result(lo.ExprType())}
}

// parseShorthandCast supports `expr::TYPE` as sugar for
// `CAST(expr AS TYPE)`.
func (p *Parser) parseShorthandCast(operand ast.Expr) ast.Expr {
	pos := p.cur.Pos
	p.advance() // consume ::
	target, ok := p.parseTypeName()
	if !ok {
		return operand
	}
	return p.buildCast(operand, target, pos)
}

func (p *Parser) parsePrimary() ast.Expr {
	switch p.cur.Type {
	case token.INT:
		return p.parseIntLiteral()
	case token.FLOAT:
		return p.parseFloatLiteral()
	case token.STRING:
		return p.parseStringLiteral()
	case token.TRUE, token.FALSE:
		return p.parseBoolLiteral()
	case token.NULL:
		return p.parseNullLiteral()
	case token.GLOBAL:
		return p.parseGlobalSymbol()
	case token.INTERVAL:
		return p.parseIntervalLiteral()
	case token.CAST:
		return p.parseCastExpr()
	case token.CASE:
		return p.parseCaseExpr()
	case token.LPAREN:
		return p.parseParenExpr()
	case token.IDENT, token.QIDENT:
		return p.parseIdentOrCall()
	}
	p.failf("parser", "unexpected token %s in expression", p.cur.Type)
	return nil
}

func (p *Parser) parseIntLiteral() ast.Expr {
	text := p.cur.Value
	pos := p.cur.Pos
	p.advance()
	if _, err := strconv.ParseInt(text, 0, 64); err != nil {
		p.failAt("lex", pos, "invalid integer literal %q", text)
		return nil
	}
	return &ast.LiteralExpr{StartPos: pos, EndPos: pos, Kind: ast.LiteralInt, Text: text, Type: types.IntType}
}

func (p *Parser) parseFloatLiteral() ast.Expr {
	text := p.cur.Value
	pos := p.cur.Pos
	p.advance()
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		p.failAt("lex", pos, "invalid float literal %q", text)
		return nil
	}
	return &ast.LiteralExpr{StartPos: pos, EndPos: pos, Kind: ast.LiteralFloat, Text: text, Type: types.FloatType}
}

func (p *Parser) parseStringLiteral() ast.Expr {
	text := p.cur.Value
	pos := p.cur.Pos
	p.advance()
	return &ast.LiteralExpr{StartPos: pos, EndPos: pos, Kind: ast.LiteralString, Text: text, Type: types.TextType}
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	kind := p.cur.Type
	pos := p.cur.Pos
	p.advance()
	return &ast.LiteralExpr{StartPos: pos, EndPos: pos, Kind: ast.LiteralBool, Text: boolText(kind), Type: types.BoolType}
}

func boolText(t token.Token) string {
	if t == token.TRUE {
		return "true"
	}
	return "false"
}

func (p *Parser) parseNullLiteral() ast.Expr {
	pos := p.cur.Pos
	p.advance()
	return &ast.LiteralExpr{StartPos: pos, EndPos: pos, Kind: ast.LiteralNull, Text: "null", Type: types.NullType}
}

func (p *Parser) parseGlobalSymbol() ast.Expr {
	name := p.cur.Value
	pos := p.cur.Pos
	p.advance()
	t, ok := p.env.ResolveType(name)
	if !ok {
		p.err = diagnostic.New("parser", "unknown global variable "+name, pos).WithHelp("declare it first with SET " + name + " = ...")
		return nil
	}
	return &ast.SymbolExpr{StartPos: pos, EndPos: pos, Name: name, IsGlobal: true, Type: t}
}

func (p *Parser) parseParenExpr() ast.Expr {
	start := p.cur.Pos
	p.advance() // consume (
	e := p.parseExpr(precLowest)
	if !p.ok() {
		return e
	}
	end := p.cur.Pos
	if !p.expect(token.RPAREN) {
		return e
	}
	if l, ok := e.(*ast.LiteralExpr); ok {
		l.StartPos, l.EndPos = start, end
	}
	return e
}

// parseIdentOrCall parses a bare identifier as either a qualified or
// unqualified column/global reference, or -- if followed by `(` -- a
// standard, aggregate or window function call.
func (p *Parser) parseIdentOrCall() ast.Expr {
	name := p.cur.Value
	pos := p.cur.Pos
	p.advance()
	if p.curIs(token.DOT) {
		p.advance() // consume .
		if !p.curIsIdent() {
			p.failf("parser", "expected a column name after '.', got %s", p.cur.Type)
			return nil
		}
		name = p.cur.Value // the qualifier is informative only; columns are uniquely named in Schema.
		pos = p.cur.Pos
		p.advance()
	}
	if p.curIs(token.LPAREN) {
		return p.parseCall(name, pos)
	}
	return p.resolveSymbol(name, pos)
}

func (p *Parser) resolveSymbol(name string, pos token.Pos) ast.Expr {
	t, ok := p.env.ResolveType(name)
	if !ok {
		p.err = diagnostic.UnknownName("parser", "column", name, pos, p.env.Schema.AllColumnNames())
		return nil
	}
	return &ast.SymbolExpr{StartPos: pos, EndPos: pos, Name: name, Type: t}
}

// --- function calls: standard, aggregate and window ---------------------

func (p *Parser) parseCall(name string, pos token.Pos) ast.Expr {
	lower := strings.ToLower(name)
	p.advance() // consume (

	distinct := false
	if p.funcs.IsAggregation(lower) && p.curIs(token.DISTINCT) {
		distinct = true
		p.advance()
	}

	var args []ast.Expr
	if p.curIs(token.ASTERISK) && lower == "count" {
		p.advance() // COUNT(*) is represented the same as COUNT(): zero hoisted args.
	} else if !p.curIs(token.RPAREN) {
		for {
			a := p.parseExpr(precLowest)
			if !p.ok() {
				return nil
			}
			args = append(args, a)
			if !p.consumeIf(token.COMMA) {
				break
			}
		}
	}
	end := p.cur.Pos
	if !p.expect(token.RPAREN) {
		return nil
	}

	switch {
	case p.funcs.IsWindow(lower):
		return p.parseWindowCall(lower, args, pos)
	case p.funcs.IsAggregation(lower):
		return p.hoistAggregate(lower, distinct, args, pos, end)
	case p.funcs.IsStandard(lower):
		return p.buildStandardCall(lower, args, pos, end)
	default:
		p.err = diagnostic.UnknownName("parser", "function", name, pos, p.funcs.Names())
		return nil
	}
}

func argTypes(args []ast.Expr) []types.DataType {
	out := make([]types.DataType, len(args))
	for i, a := range args {
		out[i] = a.ExprType()
	}
	return out
}

func (p *Parser) buildStandardCall(name string, args []ast.Expr, pos, end token.Pos) ast.Expr {
	sig, _ := p.funcs.StandardSignature(name)
	at := argTypes(args)
	if !sig.Matches(at) {
		p.failAt("parser", pos, "no matching overload for %s(%s)", name, typeList(at))
		return nil
	}
	return &ast.CallExpr{StartPos: pos, EndPos: end, Name: name, Args: args, Type: sig.ResolveReturnType(at)}
}

func typeList(ts []types.DataType) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.Literal()
	}
	return strings.Join(parts, ", ")
}

// hoistAggregate replaces an aggregate call's original position with
// an AggregatePlaceholder keyed by a fresh hidden name, and records the
// call itself in the Context for the executor to materialize.
func (p *Parser) hoistAggregate(name string, distinct bool, args []ast.Expr, pos, end token.Pos) ast.Expr {
	if !(p.ctx.InsideSelections || p.ctx.InsideOrderBy || p.ctx.InsideHaving) {
		p.failAt("parser", pos, "aggregate function %s is only allowed in the projection, HAVING or ORDER BY", name)
		return nil
	}
	sig, _ := p.funcs.AggregationSignature(name)
	at := argTypes(args)
	if !sig.Matches(at) {
		p.failAt("parser", pos, "no matching overload for %s(%s)", name, typeList(at))
		return nil
	}
	resultType := sig.ResolveReturnType(at)
	hidden := p.ctx.NameGen.NextHidden()
	call := ast.AggregateCall{Name: name, Distinct: distinct, Args: args, Type: resultType}
	p.ctx.Aggregations[hidden] = call
	p.ctx.HiddenSelections = append(p.ctx.HiddenSelections, hidden)
	return &ast.AggregatePlaceholder{StartPos: pos, EndPos: end, HiddenName: hidden, Call: call, Type: resultType}
}

func (p *Parser) parseWindowCall(name string, args []ast.Expr, pos token.Pos) ast.Expr {
	if !(p.ctx.InsideSelections || p.ctx.InsideOrderBy) {
		p.failAt("parser", pos, "window function %s is only allowed in the projection or ORDER BY", name)
		return nil
	}
	if !p.expect(token.OVER) {
		return nil
	}
	spec, end := p.parseWindowSpecOrName()
	if !p.ok() {
		return nil
	}
	sig, _ := p.funcs.WindowSignature(name)
	at := argTypes(args)
	if !sig.Matches(at) {
		p.failAt("parser", pos, "no matching overload for %s(%s)", name, typeList(at))
		return nil
	}
	resultType := sig.ResolveReturnType(at)
	hidden := p.ctx.NameGen.NextHidden()
	call := ast.WindowCall{Name: name, Args: args, Over: spec, Type: resultType}
	p.ctx.WindowCalls[hidden] = call
	p.ctx.HiddenSelections = append(p.ctx.HiddenSelections, hidden)
	return &ast.WindowPlaceholder{StartPos: pos, EndPos: end, HiddenName: hidden, Call: call, Type: resultType}
}

// parseWindowSpecOrName parses the OVER clause target: either an
// inline `(PARTITION BY ... ORDER BY ...)` spec or a reference to a
// query-level `WINDOW name AS (...)` definition.
func (p *Parser) parseWindowSpecOrName() (ast.WindowSpec, token.Pos) {
	if p.curIs(token.LPAREN) {
		spec := p.parseWindowSpec()
		return spec, p.cur.Pos
	}
	if p.curIsIdent() {
		name := p.cur.Value
		pos := p.cur.Pos
		p.advance()
		spec, ok := p.ctx.NamedWindows[name]
		if !ok {
			p.failAt("parser", pos, "unknown window %q", name)
			return ast.WindowSpec{}, pos
		}
		return spec, pos
	}
	p.failf("parser", "expected ( or a window name after OVER, got %s", p.cur.Type)
	return ast.WindowSpec{}, p.cur.Pos
}

// parseWindowSpec parses `(PARTITION BY e, ... ORDER BY e [ASC|DESC], ...)`.
func (p *Parser) parseWindowSpec() ast.WindowSpec {
	var spec ast.WindowSpec
	if !p.expect(token.LPAREN) {
		return spec
	}
	p.ctx.InsideOverClauses = true
	defer func() { p.ctx.InsideOverClauses = false }()

	if p.curIs(token.PARTITION) {
		p.advance()
		if !p.expect(token.BY) {
			return spec
		}
		for {
			e := p.parseExpr(precLowest)
			if !p.ok() {
				return spec
			}
			spec.PartitionBy = append(spec.PartitionBy, e)
			if !p.consumeIf(token.COMMA) {
				break
			}
		}
	}
	if p.curIs(token.ORDER) {
		p.advance()
		if !p.expect(token.BY) {
			return spec
		}
		for {
			e := p.parseExpr(precLowest)
			if !p.ok() {
				return spec
			}
			order := ast.Ascending
			if p.curIs(token.ASC) {
				p.advance()
			} else if p.curIs(token.DESC) {
				p.advance()
				order = ast.Descending
			}
			spec.OrderBy = append(spec.OrderBy, ast.OrderArg{Expr: e, Order: order})
			if !p.consumeIf(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RPAREN)
	return spec
}

// --- CASE ----------------------------------------------------------------

func (p *Parser) parseCaseExpr() ast.Expr {
	start := p.cur.Pos
	p.advance() // consume CASE

	var operand ast.Expr
	if !p.curIs(token.WHEN) {
		operand = p.parseExpr(precLowest)
		if !p.ok() {
			return nil
		}
	}

	var arms []ast.WhenArm
	haveResultType := false
	var resultType types.DataType
	for p.curIs(token.WHEN) {
		p.advance()
		cond := p.parseExpr(precLowest)
		if !p.ok() {
			return nil
		}
		if operand != nil {
			// Desugar the simple form `CASE operand WHEN v THEN ...`
			// into the searched form `CASE WHEN operand = v THEN ...`
			// so the executor only ever evaluates one shape.
			if !types.Equal(operand.ExprType(), cond.ExprType()) {
				p.failAt("parser", cond.Pos(), "CASE WHEN value type %s does not match operand type %s", cond.ExprType().Literal(), operand.ExprType().Literal())
				return nil
			}
			cond = &ast.BinaryExpr{StartPos: operand.Pos(), EndPos: cond.End(), Op: types.OpEq, Left: operand, Right: cond, Type: types.BoolType}
		} else if !types.Equal(cond.ExprType(), types.BoolType) {
			p.failAt("parser", cond.Pos(), "CASE WHEN condition must be boolean, got %s", cond.ExprType().Literal())
			return nil
		}
		if !p.expect(token.THEN) {
			return nil
		}
		result := p.parseExpr(precLowest)
		if !p.ok() {
			return nil
		}
		if !haveResultType {
			resultType = result.ExprType()
			haveResultType = true
		} else if !types.Equal(resultType, result.ExprType()) {
			p.failAt("parser", result.Pos(), "CASE branch type %s does not match preceding branch type %s", result.ExprType().Literal(), resultType.Literal())
			return nil
		}
		arms = append(arms, ast.WhenArm{Cond: cond, Result: result})
	}
	if len(arms) == 0 {
		p.failf("parser", "CASE requires at least one WHEN branch")
		return nil
	}

	var elseExpr ast.Expr
	if p.curIs(token.ELSE) {
		p.advance()
		elseExpr = p.parseExpr(precLowest)
		if !p.ok() {
			return nil
		}
		if !types.Equal(resultType, elseExpr.ExprType()) {
			p.failAt("parser", elseExpr.Pos(), "CASE ELSE type %s does not match branch type %s", elseExpr.ExprType().Literal(), resultType.Literal())
			return nil
		}
	} else {
		resultType = types.NewOptional(resultType)
	}

	end := p.cur.Pos
	if !p.expect(token.END) {
		return nil
	}
	return &ast.CaseExpr{StartPos: start, EndPos: end, Arms: arms, Else: elseExpr, Type: resultType}
}

// --- CAST ------------------------------------------------------------

func (p *Parser) parseCastExpr() ast.Expr {
	start := p.cur.Pos
	p.advance() // consume CAST
	if !p.expect(token.LPAREN) {
		return nil
	}
	operand := p.parseExpr(precLowest)
	if !p.ok() {
		return nil
	}
	if !p.expect(token.AS) {
		return nil
	}
	target, ok := p.parseTypeName()
	if !ok {
		return nil
	}
	end := p.cur.Pos
	if !p.expect(token.RPAREN) {
		return nil
	}
	result := p.buildCast(operand, target, start)
	if result == nil {
		return nil
	}
	if c, ok := result.(*ast.CastExpr); ok {
		c.EndPos = end
	}
	return result
}

// buildCast implements the two-step implicit-cast search from
// spec.md §4.3: a cast is valid because (1) the type algebra directly
// permits it (CanPerformExplicitCastTo), or (2) the source is a string
// literal the target type itself parses implicitly (HasImplicitCastFrom,
// e.g. Bool accepting 'yes'/'no'), or (3) an intermediate type T exists
// that accepts target as an explicit-cast destination
// (ExplicitCastIntermediates) and has_implicit_cast_from(operand) --
// in which case a two-step CastExpr chain is inserted (value -> T ->
// target), mirroring check_cast_expression's "Text -> Bool -> Int" path
// for CAST('true' AS INTEGER).
func (p *Parser) buildCast(operand ast.Expr, target types.DataType, pos token.Pos) ast.Expr {
	from := operand.ExprType()
	if types.CanPerformExplicitCastTo(target, from) {
		return &ast.CastExpr{StartPos: pos, EndPos: operand.End(), Operand: operand, Target: target}
	}
	if lit, ok := operand.(types.StringLiteral); ok {
		if types.HasImplicitCastFrom(target, lit) {
			return &ast.CastExpr{StartPos: pos, EndPos: operand.End(), Operand: operand, Target: target}
		}
		for _, intermediate := range types.ExplicitCastIntermediates(target) {
			if types.HasImplicitCastFrom(intermediate, lit) {
				inner := &ast.CastExpr{StartPos: pos, EndPos: operand.End(), Operand: operand, Target: intermediate}
				return &ast.CastExpr{StartPos: pos, EndPos: operand.End(), Operand: inner, Target: target}
			}
		}
	}
	p.failAt("parser", pos, "cannot cast %s to %s", from.Literal(), target.Literal())
	return nil
}

// typeNames maps a case-folded type-name identifier to its DataType,
// used by both CAST(... AS T) and the `::T` shorthand.
var typeNames = map[string]types.DataType{
	"int":       types.IntType,
	"integer":   types.IntType,
	"float":     types.FloatType,
	"double":    types.FloatType,
	"bool":      types.BoolType,
	"boolean":   types.BoolType,
	"text":      types.TextType,
	"string":    types.TextType,
	"varchar":   types.TextType,
	"date":      types.DateType,
	"time":      types.TimeType,
	"datetime":  types.DateTimeType,
	"timestamp": types.DateTimeType,
}

func (p *Parser) parseTypeName() (types.DataType, bool) {
	if !p.curIsIdent() {
		p.failf("parser", "expected a type name, got %s", p.cur.Type)
		return types.DataType{}, false
	}
	name := strings.ToLower(p.cur.Value)
	pos := p.cur.Pos
	p.advance()
	if name == "array" {
		if !p.expect(token.LPAREN) {
			return types.DataType{}, false
		}
		of, ok := p.parseTypeName()
		if !ok {
			return types.DataType{}, false
		}
		if !p.expect(token.RPAREN) {
			return types.DataType{}, false
		}
		return types.NewArray(of), true
	}
	t, ok := typeNames[name]
	if !ok {
		p.failAt("parser", pos, "unknown type name %q", name)
		return types.DataType{}, false
	}
	return t, true
}

// --- INTERVAL --------------------------------------------------------

// parseIntervalLiteral parses `INTERVAL 'text'`, storing the raw unit
// text for the executor to resolve at evaluation time; spec.md §4.3
// treats each of the six fields (years, months, days, hours, minutes,
// seconds) as independently optional.
func (p *Parser) parseIntervalLiteral() ast.Expr {
	start := p.cur.Pos
	p.advance() // consume INTERVAL
	if !p.curIs(token.STRING) {
		p.failf("parser", "expected a quoted interval string after INTERVAL, got %s", p.cur.Type)
		return nil
	}
	text := p.cur.Value
	end := p.cur.Pos
	p.advance()
	if _, err := values.ParseInterval(text); err != nil {
		p.failAt("parser", start, "invalid interval literal: %v", err)
		return nil
	}
	return &ast.LiteralExpr{StartPos: start, EndPos: end, Kind: ast.LiteralInterval, Text: text, Type: types.IntervalType}
}
