// Package gitql is the embeddable SQL-dialect query engine: tokenize,
// parse, type-check and execute a query against a host-supplied
// DataProvider. The canonical host queries git repositories, but the
// engine itself is data-source-agnostic (spec.md §1 "Purpose &
// Scope"). Modeled on the teacher's top-level facade package, which
// exposes Parse/ParseAll/Walk/Rewrite over its own internal packages.
package gitql

import (
	"io"

	"github.com/gql-run/gitql/ast"
	"github.com/gql-run/gitql/diagnostic"
	"github.com/gql-run/gitql/environment"
	"github.com/gql-run/gitql/executor"
	"github.com/gql-run/gitql/object"
	"github.com/gql-run/gitql/parser"
	"github.com/gql-run/gitql/stdlib"
)

// DataProvider is the sole collaborator a host must implement: given a
// table name and the columns a query actually references, it returns
// that table's rows (spec.md §6 "External Interfaces").
type DataProvider = executor.DataProvider

// Schema is the host-supplied table/column catalog.
type Schema = environment.Schema

// NewSchema builds an empty Schema ready for registration.
func NewSchema() *Schema { return environment.NewSchema() }

// Engine bundles a Schema's Environment -- whose globals persist
// across every query run through it, per spec.md §5's session
// lifecycle -- with the standard function registry.
type Engine struct {
	env   *environment.Environment
	funcs *stdlib.Registry
}

// New creates an Engine bound to schema.
func New(schema *Schema) *Engine {
	return &Engine{env: environment.New(schema), funcs: stdlib.Standard()}
}

// Parse parses a single statement without executing it. A non-nil
// Diagnostic describes the first lexical, syntactic or semantic error
// encountered; the returned statement is then nil.
func (e *Engine) Parse(query string) (ast.Statement, *diagnostic.Diagnostic) {
	p := parser.New(query, e.env, e.funcs)
	stmt, _, err := p.Parse()
	return stmt, err
}

// Query parses and executes a single statement against provider,
// rendering to into when the query carries an INTO OUTFILE clause
// (into may be nil otherwise).
func (e *Engine) Query(query string, provider DataProvider, into io.Writer) (*object.GitQLObject, error) {
	stmt, diag := e.Parse(query)
	if diag != nil {
		return nil, diag
	}
	return executor.Execute(stmt, e.env, e.funcs, executor.Options{Provider: provider, Into: into})
}
