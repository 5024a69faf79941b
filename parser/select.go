package parser

import (
	"github.com/gql-run/gitql/ast"
	"github.com/gql-run/gitql/diagnostic"
	"github.com/gql-run/gitql/token"
	"github.com/gql-run/gitql/types"
	"github.com/gql-run/gitql/visitor"
)

// parseSelect parses a full SELECT statement: projection, tables,
// joins, WHERE, GROUP BY [WITH ROLLUP], HAVING, WINDOW, ORDER BY,
// LIMIT, OFFSET, INTO -- in that grammar order (spec.md §6 "Query
// language surface").
func (p *Parser) parseSelect() ast.Statement {
	start := p.cur.Pos
	p.advance() // consume SELECT
	p.ctx.HasSelectStatement = true

	distinct, distinctOn := p.parseDistinctClause()

	// The projection list is written before FROM in the source text,
	// but its bare column references need FROM's tables already in
	// scope to resolve. Scan ahead into FROM, define every table's
	// columns, then rewind and parse the projection for real.
	mark := p.checkpoint()
	savedErr := p.err
	p.prescanTableScope()
	p.err = savedErr
	p.restore(mark)

	p.ctx.InsideSelections = true
	projection := p.parseProjectionList()
	p.ctx.InsideSelections = false
	if !p.ok() {
		return nil
	}

	var tables []ast.TableSelection
	var joins []ast.Join
	if p.curIs(token.FROM) {
		p.advance()
		tables, joins = p.parseTablesAndJoins()
		if !p.ok() {
			return nil
		}
	}

	sel := &ast.SelectStmt{
		StartPos:   start,
		Tables:     tables,
		Joins:      joins,
		Projection: projection,
		Distinct:   distinct,
		DistinctOn: distinctOn,
	}
	sel.EndPos = p.cur.Pos

	if p.curIs(token.WHERE) {
		sel.Where = p.parseWhere()
		if !p.ok() {
			return nil
		}
		sel.EndPos = sel.Where.End()
	}

	if p.curIs(token.GROUP) {
		sel.GroupBy = p.parseGroupBy()
		if !p.ok() {
			return nil
		}
		sel.EndPos = sel.GroupBy.End()
		p.ctx.HasGroupByStatement = true
	}

	if p.curIs(token.HAVING) {
		if sel.GroupBy == nil && !p.ctx.HasGroupByStatement {
			// HAVING without GROUP BY is legal (treats the whole
			// result as one group), matching common SQL dialects.
		}
		sel.Having = p.parseHaving()
		if !p.ok() {
			return nil
		}
		sel.EndPos = sel.Having.End()
	}

	for p.curIs(token.WINDOW) {
		nw := p.parseNamedWindow()
		if !p.ok() {
			return nil
		}
		sel.Windows = append(sel.Windows, nw)
		sel.EndPos = p.cur.Pos
	}

	if p.curIs(token.ORDER) {
		sel.OrderBy = p.parseOrderBy()
		if !p.ok() {
			return nil
		}
		sel.EndPos = sel.OrderBy.End()
	}

	if p.curIs(token.LIMIT) {
		sel.Limit = p.parseLimit()
		if !p.ok() {
			return nil
		}
		sel.EndPos = sel.Limit.End()
	}

	if p.curIs(token.OFFSET) {
		sel.Offset = p.parseOffset()
		if !p.ok() {
			return nil
		}
		sel.EndPos = sel.Offset.End()
	}

	if p.curIs(token.INTO) {
		sel.Into = p.parseInto()
		if !p.ok() {
			return nil
		}
		sel.EndPos = sel.Into.End()
	}

	sel.HiddenSelections = p.hoistedSelections()
	sel.HasAggregation = len(p.ctx.Aggregations) > 0
	sel.HasGroupBy = sel.GroupBy != nil
	p.ctx.IsSingleValueQuery = len(tables) == 0 && len(joins) == 0

	p.resolveTableColumns(sel)
	return sel
}

// hoistedSelections renders the parser's hidden aggregate/window
// columns (keyed by temp name) back into an ordered ProjectionItem
// list, in the order their temp names were minted.
func (p *Parser) hoistedSelections() []ast.ProjectionItem {
	items := make([]ast.ProjectionItem, 0, len(p.ctx.HiddenSelections))
	for _, name := range p.ctx.HiddenSelections {
		if agg, ok := p.ctx.Aggregations[name]; ok {
			items = append(items, ast.ProjectionItem{
				Expr:  &ast.AggregatePlaceholder{HiddenName: name, Call: agg, Type: agg.Type},
				Label: name,
			})
			continue
		}
		if win, ok := p.ctx.WindowCalls[name]; ok {
			items = append(items, ast.ProjectionItem{
				Expr:  &ast.WindowPlaceholder{HiddenName: name, Call: win, Type: win.Type},
				Label: name,
			})
		}
	}
	return items
}

// resolveTableColumns fills in each TableSelection's Columns with
// every column name referenced anywhere in the query (selected,
// hidden, predicate or join-key) that belongs to that table, per
// spec.md §4.4 step 1.
func (p *Parser) resolveTableColumns(sel *ast.SelectStmt) {
	referenced := map[string]bool{}
	record := func(n ast.Node) bool {
		if sym, ok := n.(*ast.SymbolExpr); ok && !sym.IsGlobal {
			referenced[sym.Name] = true
		}
		return true
	}
	visitor.WalkFunc(sel, record)
	for i := range sel.Tables {
		t := &sel.Tables[i]
		for _, col := range p.env.Schema.TableFields[t.Name] {
			if referenced[col] {
				t.Columns = append(t.Columns, col)
			}
		}
	}
}

// parseDistinctClause parses an optional DISTINCT [ON (cols)].
func (p *Parser) parseDistinctClause() (bool, []string) {
	if !p.curIs(token.DISTINCT) {
		return false, nil
	}
	p.advance()
	if !p.curIs(token.ON) {
		return true, nil
	}
	p.advance()
	if !p.expect(token.LPAREN) {
		return true, nil
	}
	var cols []string
	for {
		if !p.curIsIdent() {
			p.failf("parser", "expected a column name in DISTINCT ON, got %s", p.cur.Type)
			return true, nil
		}
		cols = append(cols, p.cur.Value)
		p.advance()
		if !p.consumeIf(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return true, cols
}

// parseProjectionList parses the comma-separated SELECT expression
// list, assigning each item a display name per spec.md §4.3
// "Projection".
func (p *Parser) parseProjectionList() []ast.ProjectionItem {
	if p.curIs(token.ASTERISK) {
		// SELECT * expands only once the FROM tables are known, done
		// by the caller via resolveTableColumns/executor; here it is
		// represented as a zero-length projection with a marker the
		// executor recognizes through sel.Projection being empty and
		// sel.Tables non-empty (no explicit AllColumns node needed
		// since the grammar only allows a bare `*` in this position).
		p.advance()
		return nil
	}
	var items []ast.ProjectionItem
	for {
		expr := p.parseExpr(precLowest)
		if !p.ok() {
			return nil
		}
		label := p.parseOptionalAlias(expr)
		items = append(items, ast.ProjectionItem{Expr: expr, Label: label})
		if !p.consumeIf(token.COMMA) {
			break
		}
	}
	return items
}

// parseOptionalAlias consumes an optional `AS name` / bare `name`
// alias and returns the projection item's display name: the alias if
// present, else the source literal for a literal expression, else the
// column name for a column reference, else a fresh column_N (spec.md
// §4.3 "Projection").
func (p *Parser) parseOptionalAlias(expr ast.Expr) string {
	if p.curIs(token.AS) {
		p.advance()
		name := p.cur.Value
		p.advance()
		p.ctx.Aliases[name] = name
		return name
	}
	if p.curIsIdent() && !p.startsNextClause() {
		name := p.cur.Value
		p.advance()
		p.ctx.Aliases[name] = name
		return name
	}
	if lit, ok := expr.(*ast.LiteralExpr); ok {
		return lit.Text
	}
	if sym, ok := expr.(*ast.SymbolExpr); ok {
		return sym.Name
	}
	return p.ctx.NameGen.NextColumn()
}

// startsNextClause reports whether the current identifier-shaped token
// is actually a following clause keyword (FROM, WHERE, ...) rather
// than a bare alias; bare-alias support only applies when the next
// token plausibly continues the projection list.
func (p *Parser) startsNextClause() bool {
	switch p.cur.Type {
	case token.FROM, token.WHERE, token.GROUP, token.HAVING, token.ORDER,
		token.LIMIT, token.OFFSET, token.WINDOW, token.INTO, token.COMMA:
		return true
	}
	return false
}

// prescanTableScope performs a lightweight forward scan over the FROM
// clause without building any AST: it defines every named table's
// columns into scope so the projection list -- which the caller
// rewinds back to -- can resolve bare column references even though
// it appears earlier in the source text than FROM.
func (p *Parser) prescanTableScope() {
	if !p.curIs(token.FROM) {
		return
	}
	p.advance() // consume FROM
	if !p.prescanOneTable() {
		return
	}
	for {
		kind, ok := p.tryParseJoinKind()
		if !ok {
			return
		}
		if !p.prescanOneTable() {
			return
		}
		if kind != ast.CrossJoin {
			if !p.curIs(token.ON) {
				return
			}
			p.advance()
			p.skipUntilClauseBoundary()
		}
	}
}

func (p *Parser) prescanOneTable() bool {
	if !p.curIsIdent() {
		return false
	}
	name := p.cur.Value
	p.advance()
	if p.env.Schema.HasTable(name) {
		p.defineTableScope(name)
	}
	if p.curIs(token.AS) {
		p.advance()
		if p.curIsIdent() {
			p.advance()
		}
	} else if p.curIsIdent() {
		p.advance()
	}
	return true
}

// skipUntilClauseBoundary advances past an ON expression's tokens
// without evaluating them, stopping at the next join/clause keyword.
// Safe because every such keyword is reserved and can never appear as
// an identifier inside the expression it is skipping past.
func (p *Parser) skipUntilClauseBoundary() {
	for {
		switch p.cur.Type {
		case token.JOIN, token.INNER, token.LEFT, token.RIGHT, token.FULL, token.CROSS,
			token.WHERE, token.GROUP, token.HAVING, token.WINDOW, token.ORDER,
			token.LIMIT, token.OFFSET, token.INTO, token.EOF, token.SEMICOLON:
			return
		}
		p.advance()
	}
}

// parseTablesAndJoins parses the FROM clause's table list and any
// JOIN clauses. Each table's columns are defined into the current
// scope as they are named, so subsequent expressions (projection
// already parsed, WHERE/HAVING/ORDER BY yet to come) can resolve bare
// column references.
func (p *Parser) parseTablesAndJoins() ([]ast.TableSelection, []ast.Join) {
	var tables []ast.TableSelection
	first := p.parseOneTable()
	if !p.ok() {
		return nil, nil
	}
	tables = append(tables, first)

	var joins []ast.Join
	for {
		kind, ok := p.tryParseJoinKind()
		if !ok {
			break
		}
		right := p.parseOneTable()
		if !p.ok() {
			return nil, nil
		}
		rightIdx := len(tables)
		tables = append(tables, right)
		join := ast.Join{Left: rightIdx - 1, Right: rightIdx, Kind: kind}
		if kind != ast.CrossJoin {
			if !p.expect(token.ON) {
				return nil, nil
			}
			join.On = p.parseExpr(precLowest)
			if !p.ok() {
				return nil, nil
			}
		}
		joins = append(joins, join)
	}
	return tables, joins
}

func (p *Parser) parseOneTable() ast.TableSelection {
	if !p.curIsIdent() {
		p.failf("parser", "expected a table name, got %s", p.cur.Type)
		return ast.TableSelection{}
	}
	name := p.cur.Value
	pos := p.cur.Pos
	p.advance()
	if !p.env.Schema.HasTable(name) {
		p.err = diagnostic.UnknownName("parser", "table", name, pos, p.env.Schema.Tables())
		return ast.TableSelection{}
	}
	alias := name
	if p.curIs(token.AS) {
		p.advance()
		alias = p.cur.Value
		p.advance()
	} else if p.curIsIdent() {
		alias = p.cur.Value
		p.advance()
	}
	p.defineTableScope(name)
	return ast.TableSelection{Name: name, Alias: alias}
}

// defineTableScope makes every column of table resolvable as a bare
// SymbolExpr for the rest of this query.
func (p *Parser) defineTableScope(table string) {
	for _, col := range p.env.Schema.TableFields[table] {
		if t, ok := p.env.Schema.ColumnType(col); ok {
			p.env.Define(col, t)
		}
	}
}

func (p *Parser) tryParseJoinKind() (ast.JoinKind, bool) {
	switch p.cur.Type {
	case token.JOIN:
		p.advance()
		return ast.InnerJoin, true
	case token.INNER:
		p.advance()
		p.expect(token.JOIN)
		return ast.InnerJoin, true
	case token.LEFT:
		p.advance()
		p.consumeIf(token.OUTER)
		p.expect(token.JOIN)
		return ast.LeftJoin, true
	case token.RIGHT:
		p.advance()
		p.consumeIf(token.OUTER)
		p.expect(token.JOIN)
		return ast.RightJoin, true
	case token.FULL:
		p.advance()
		p.consumeIf(token.OUTER)
		p.expect(token.JOIN)
		return ast.FullOuterJoin, true
	case token.CROSS:
		p.advance()
		p.expect(token.JOIN)
		return ast.CrossJoin, true
	}
	return ast.InnerJoin, false
}

func (p *Parser) parseWhere() *ast.WhereStmt {
	start := p.cur.Pos
	p.advance() // consume WHERE
	pred := p.parseExpr(precLowest)
	if !p.ok() {
		return nil
	}
	if !types.Equal(pred.ExprType(), types.BoolType) {
		p.failAt("parser", pred.Pos(), "WHERE predicate must be boolean, got %s", pred.ExprType().Literal())
		return nil
	}
	if visitor.ContainsAggregateOrWindow(pred) {
		p.failAt("parser", pred.Pos(), "aggregate and window functions are not allowed in WHERE")
		return nil
	}
	return &ast.WhereStmt{StartPos: start, EndPos: pred.End(), Predicate: pred}
}

func (p *Parser) parseGroupBy() *ast.GroupByStmt {
	start := p.cur.Pos
	p.advance() // consume GROUP
	if !p.expect(token.BY) {
		return nil
	}
	var values []ast.Expr
	for {
		e := p.parseExpr(precLowest)
		if !p.ok() {
			return nil
		}
		values = append(values, e)
		if !p.consumeIf(token.COMMA) {
			break
		}
	}
	end := values[len(values)-1].End()
	rollup := false
	if p.curIs(token.WITH) {
		p.advance()
		if !p.expect(token.ROLLUP) {
			return nil
		}
		rollup = true
		end = p.cur.Pos
	}
	return &ast.GroupByStmt{StartPos: start, EndPos: end, Values: values, HasWithRollup: rollup}
}

func (p *Parser) parseHaving() *ast.HavingStmt {
	start := p.cur.Pos
	p.advance() // consume HAVING
	p.ctx.InsideHaving = true
	pred := p.parseExpr(precLowest)
	p.ctx.InsideHaving = false
	if !p.ok() {
		return nil
	}
	if !types.Equal(pred.ExprType(), types.BoolType) {
		p.failAt("parser", pred.Pos(), "HAVING predicate must be boolean, got %s", pred.ExprType().Literal())
		return nil
	}
	return &ast.HavingStmt{StartPos: start, EndPos: pred.End(), Predicate: pred}
}

func (p *Parser) parseNamedWindow() ast.NamedWindow {
	p.advance() // consume WINDOW
	name := p.cur.Value
	p.advance()
	p.expect(token.AS)
	spec := p.parseWindowSpec()
	p.ctx.NamedWindows[name] = spec
	return ast.NamedWindow{Name: name, Spec: spec}
}

func (p *Parser) parseOrderBy() *ast.OrderByStmt {
	start := p.cur.Pos
	p.advance() // consume ORDER
	if !p.expect(token.BY) {
		return nil
	}
	p.ctx.InsideOrderBy = true
	defer func() { p.ctx.InsideOrderBy = false }()

	var args []ast.OrderArg
	for {
		e := p.parseExpr(precLowest)
		if !p.ok() {
			return nil
		}
		order := ast.Ascending
		explicitDesc := false
		if p.curIs(token.ASC) {
			p.advance()
		} else if p.curIs(token.DESC) {
			p.advance()
			order = ast.Descending
			explicitDesc = true
		} else if p.curIs(token.USING) {
			p.advance()
			switch p.cur.Type {
			case token.LT:
				p.advance()
			case token.GT:
				p.advance()
				order = ast.Descending
				explicitDesc = true
			default:
				p.failf("parser", "expected < or > after USING, got %s", p.cur.Type)
				return nil
			}
		}
		nulls := ast.NullsLast
		if explicitDesc {
			nulls = ast.NullsFirst
		}
		if p.curIs(token.NULLS) {
			p.advance()
			switch p.cur.Type {
			case token.FIRST:
				nulls = ast.NullsFirst
			case token.LAST:
				nulls = ast.NullsLast
			default:
				p.failf("parser", "expected FIRST or LAST after NULLS, got %s", p.cur.Type)
				return nil
			}
			p.advance()
		}
		args = append(args, ast.OrderArg{Expr: e, Order: order, Nulls: nulls})
		if !p.consumeIf(token.COMMA) {
			break
		}
	}
	return &ast.OrderByStmt{StartPos: start, EndPos: args[len(args)-1].Expr.End(), Args: args}
}

func (p *Parser) parseLimit() *ast.LimitStmt {
	start := p.cur.Pos
	p.advance() // consume LIMIT
	e := p.parseExpr(precUnary)
	if !p.ok() {
		return nil
	}
	return &ast.LimitStmt{StartPos: start, EndPos: e.End(), Count: e}
}

func (p *Parser) parseOffset() *ast.OffsetStmt {
	start := p.cur.Pos
	p.advance() // consume OFFSET
	e := p.parseExpr(precUnary)
	if !p.ok() {
		return nil
	}
	return &ast.OffsetStmt{StartPos: start, EndPos: e.End(), Count: e}
}

func (p *Parser) parseInto() *ast.IntoStmt {
	start := p.cur.Pos
	p.advance() // consume INTO
	if !p.expect(token.OUTFILE) {
		return nil
	}
	if !p.curIs(token.STRING) {
		p.failf("parser", "expected a file path string after OUTFILE, got %s", p.cur.Type)
		return nil
	}
	path := p.cur.Value
	end := p.cur.Pos
	p.advance()

	into := &ast.IntoStmt{StartPos: start, EndPos: end, Outfile: path, FieldsTerminator: ",", LinesTerminator: "\n"}
	for {
		switch {
		case p.curIs(token.FIELDS):
			p.advance()
			p.expect(token.TERMINATED)
			p.expect(token.BY)
			into.FieldsTerminator = p.cur.Value
			into.EndPos = p.cur.Pos
			p.expect(token.STRING)
		case p.curIs(token.LINES):
			p.advance()
			p.expect(token.TERMINATED)
			p.expect(token.BY)
			into.LinesTerminator = p.cur.Value
			into.EndPos = p.cur.Pos
			p.expect(token.STRING)
		case p.curIs(token.ENCLOSED):
			p.advance()
			p.expect(token.BY)
			into.Enclosed = p.cur.Value
			into.EndPos = p.cur.Pos
			p.expect(token.STRING)
		default:
			return into
		}
	}
}
