// Package parser implements the recursive-descent parser and type
// checker described in spec.md §4.3: it walks the token stream from
// lexer.Lexer and builds a typed ast.Statement tree, resolving
// identifiers, aggregations, windows and aliases against an
// environment.Environment as it goes. Mirrors
// original_source/crates/gitql-parser/src/parser.rs.
package parser

import (
	"fmt"

	"github.com/gql-run/gitql/ast"
	"github.com/gql-run/gitql/diagnostic"
	"github.com/gql-run/gitql/environment"
	"github.com/gql-run/gitql/lexer"
	"github.com/gql-run/gitql/stdlib"
	"github.com/gql-run/gitql/token"
)

// Parser is a recursive-descent parser bound to one query string, one
// Environment and one standard-function Registry.
type Parser struct {
	lexer *lexer.Lexer
	env   *environment.Environment
	funcs *stdlib.Registry

	cur    token.Item
	peek   token.Item
	hasPk  bool

	ctx *Context
	err *diagnostic.Diagnostic
}

// New creates a Parser over input, ready to resolve symbols against
// env and calls against funcs.
func New(input string, env *environment.Environment, funcs *stdlib.Registry) *Parser {
	p := &Parser{
		lexer: lexer.New(input),
		env:   env,
		funcs: funcs,
		ctx:   NewContext(),
	}
	p.advance()
	return p
}

// Parse parses a single statement and returns it together with the
// finalized ParserContext (spec.md §4.3 "Output"). A non-nil
// diagnostic means parsing failed; the returned statement is then nil.
func (p *Parser) Parse() (ast.Statement, *Context, *diagnostic.Diagnostic) {
	defer p.env.ClearSession()
	stmt := p.parseStatement()
	if p.err != nil {
		return nil, p.ctx, p.err
	}
	if !p.curIs(token.EOF) {
		p.failf("parser", "unexpected token %s after statement", p.cur.Type)
		return nil, p.ctx, p.err
	}
	return stmt, p.ctx, nil
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case token.SELECT:
		return p.parseSelect()
	case token.DO:
		return p.parseDo()
	case token.SET:
		return p.parseGlobalVariableDecl()
	case token.DESCRIBE:
		return p.parseDescribeTable()
	case token.SHOW:
		return p.parseShowTables()
	default:
		p.failf("parser", "expected a statement, got %s", p.cur.Type)
		return nil
	}
}

// --- token navigation -------------------------------------------------

func (p *Parser) advance() {
	if p.hasPk {
		p.cur = p.peek
		p.hasPk = false
		return
	}
	item, err := p.lexer.Next()
	p.cur = item
	if err != nil {
		p.lexErr(err)
	}
}

func (p *Parser) peekToken() token.Item {
	if !p.hasPk {
		item, err := p.lexer.Peek()
		p.peek = item
		p.hasPk = true
		if err != nil {
			p.lexErr(err)
		}
	}
	return p.peek
}

func (p *Parser) lexErr(err error) {
	if p.err != nil {
		return
	}
	if le, ok := err.(*lexer.Error); ok {
		p.err = diagnostic.New("lex", le.Message, le.Pos)
	}
}

// checkpoint is a snapshot of the parser's token-stream position,
// used by the table-scope prescan to scan ahead into the FROM clause
// and then rewind before the projection list (which appears earlier
// in the source text) is parsed for real.
type checkpoint struct {
	mark  lexer.Mark
	cur   token.Item
	peek  token.Item
	hasPk bool
}

func (p *Parser) checkpoint() checkpoint {
	return checkpoint{mark: p.lexer.Mark(), cur: p.cur, peek: p.peek, hasPk: p.hasPk}
}

func (p *Parser) restore(c checkpoint) {
	p.lexer.Reset(c.mark)
	p.cur, p.peek, p.hasPk = c.cur, c.peek, c.hasPk
}

func (p *Parser) curIs(t token.Token) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t token.Token) bool { return p.peekToken().Type == t }

func (p *Parser) curIsIdent() bool {
	return p.cur.Type == token.IDENT || p.cur.Type == token.QIDENT
}

// expect advances past t if it is current, otherwise fails.
func (p *Parser) expect(t token.Token) bool {
	if p.curIs(t) {
		p.advance()
		return true
	}
	p.failf("parser", "expected %s, got %s", t, p.cur.Type)
	return false
}

// consumeIf advances and reports true if the current token is t.
func (p *Parser) consumeIf(t token.Token) bool {
	if p.curIs(t) {
		p.advance()
		return true
	}
	return false
}

// failf records the first fatal diagnostic at the current token's
// position; subsequent failures are ignored (parsing stops at the
// first error per spec.md §7 "all errors are returned").
func (p *Parser) failf(label, format string, args ...any) {
	if p.err != nil {
		return
	}
	p.err = diagnostic.New(label, fmt.Sprintf(format, args...), p.cur.Pos)
}

// failAt is like failf but anchors the diagnostic at an explicit pos
// (e.g. the CAST keyword rather than the current token).
func (p *Parser) failAt(label string, pos token.Pos, format string, args ...any) {
	if p.err != nil {
		return
	}
	p.err = diagnostic.New(label, fmt.Sprintf(format, args...), pos)
}

func (p *Parser) ok() bool { return p.err == nil }

// --- DO / SET / DESCRIBE / SHOW ---------------------------------------

func (p *Parser) parseDo() ast.Statement {
	start := p.cur.Pos
	p.advance() // consume DO
	expr := p.parseExpr(precLowest)
	if !p.ok() {
		return nil
	}
	return &ast.DoStmt{StartPos: start, EndPos: expr.End(), Expr: expr}
}

func (p *Parser) parseGlobalVariableDecl() ast.Statement {
	start := p.cur.Pos
	p.advance() // consume SET
	if !p.curIs(token.GLOBAL) {
		p.failf("parser", "expected a global variable name (@name) after SET, got %s", p.cur.Type)
		return nil
	}
	name := p.cur.Value
	p.advance()
	if !p.expect(token.EQ) {
		return nil
	}
	value := p.parseExpr(precLowest)
	if !p.ok() {
		return nil
	}
	p.env.DefineGlobal(name, value.ExprType())
	return &ast.GlobalVariableDecl{StartPos: start, EndPos: value.End(), Name: name, Value: value, Type: value.ExprType()}
}

func (p *Parser) parseDescribeTable() ast.Statement {
	start := p.cur.Pos
	p.advance() // consume DESCRIBE
	if !p.curIsIdent() {
		p.failf("parser", "expected a table name after DESCRIBE, got %s", p.cur.Type)
		return nil
	}
	name := p.cur.Value
	end := p.cur.Pos
	p.advance()
	if !p.env.Schema.HasTable(name) {
		p.err = diagnostic.UnknownName("parser", "table", name, end, p.env.Schema.Tables())
		return nil
	}
	return &ast.DescribeTableStmt{StartPos: start, EndPos: end, Table: name}
}

func (p *Parser) parseShowTables() ast.Statement {
	start := p.cur.Pos
	p.advance() // consume SHOW
	end := p.cur.Pos
	if !p.expect(token.TABLES) {
		return nil
	}
	return &ast.ShowTablesStmt{StartPos: start, EndPos: end}
}
