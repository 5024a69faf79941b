// Package executor implements the fixed twelve-step query pipeline
// described in spec.md §4.4: source acquisition, join, filter, group,
// aggregate, window, having, distinct, order, limit/offset, into and
// flatten. It operates on the typed ast.Statement tree the parser
// produces, fetching rows through the host-supplied DataProvider.
// Mirrors original_source/crates/gitql-engine/src/engine.rs and its
// engine_*.rs siblings.
package executor

import (
	"fmt"
	"io"

	"github.com/gql-run/gitql/ast"
	"github.com/gql-run/gitql/diagnostic"
	"github.com/gql-run/gitql/environment"
	"github.com/gql-run/gitql/object"
	"github.com/gql-run/gitql/stdlib"
	"github.com/gql-run/gitql/values"
)

// Options bundles the host collaborators Execute needs beyond the
// statement and Environment: the DataProvider every SELECT fetches
// table rows from, and the writer an INTO OUTFILE clause renders to
// (nil is fine unless the query actually uses INTO).
type Options struct {
	Provider DataProvider
	Into     io.Writer
}

// Execute runs stmt to completion against env, resolving standard,
// aggregate and window calls against funcs. A panic anywhere in the
// pipeline is recovered and reported as an "internal"-labeled
// diagnostic rather than propagated (spec.md §7).
func Execute(stmt ast.Statement, env *environment.Environment, funcs *stdlib.Registry, opts Options) (obj *object.GitQLObject, err error) {
	defer func() {
		if r := recover(); r != nil {
			obj = nil
			err = &diagnostic.Diagnostic{
				Severity: diagnostic.Error,
				Label:    "internal",
				Message:  fmt.Sprintf("panic: %v", r),
			}
		}
	}()

	switch s := stmt.(type) {
	case *ast.SelectStmt:
		return executeSelect(s, env, funcs, opts)

	case *ast.DoStmt:
		_, err := eval(s.Expr, emptyContext(env, funcs))
		return nil, err

	case *ast.GlobalVariableDecl:
		v, err := eval(s.Value, emptyContext(env, funcs))
		if err != nil {
			return nil, err
		}
		env.Globals[s.Name] = v
		return nil, nil

	case *ast.DescribeTableStmt:
		return describeTable(s, env), nil

	case *ast.ShowTablesStmt:
		return showTables(env), nil
	}
	return nil, fmt.Errorf("internal: unreachable statement type %T", stmt)
}

func emptyContext(env *environment.Environment, funcs *stdlib.Registry) rowContext {
	return rowContext{env: env, funcs: funcs, lo: newLayout(nil), row: object.Row{}}
}

func describeTable(s *ast.DescribeTableStmt, env *environment.Environment) *object.GitQLObject {
	cols := env.Schema.TableFields[s.Table]
	rows := make([]object.Row, len(cols))
	for i, c := range cols {
		t, _ := env.Schema.ColumnType(c)
		rows[i] = object.Row{Values: []values.Value{values.TextValue(c), values.TextValue(t.Literal())}}
	}
	return &object.GitQLObject{
		Titles: []string{"Field", "Type"},
		Groups: []object.Group{{Rows: rows}},
	}
}

func showTables(env *environment.Environment) *object.GitQLObject {
	names := env.Schema.Tables()
	rows := make([]object.Row, len(names))
	for i, n := range names {
		rows[i] = object.Row{Values: []values.Value{values.TextValue(n)}}
	}
	return &object.GitQLObject{
		Titles: []string{"Table"},
		Groups: []object.Group{{Rows: rows}},
	}
}

// executeSelect runs the twelve-step pipeline for a single SELECT.
func executeSelect(sel *ast.SelectStmt, env *environment.Environment, funcs *stdlib.Registry, opts Options) (*object.GitQLObject, error) {
	source, err := buildSourceRows(sel, env, opts.Provider) // steps 1-2
	if err != nil {
		return nil, err
	}

	filtered, err := filterRows(source, sel.Where, env) // step 3
	if err != nil {
		return nil, err
	}

	grouped, err := groupAndAggregate(sel, filtered, env, funcs) // steps 4-5
	if err != nil {
		return nil, err
	}

	windowed, err := materializeWindows(sel, grouped, env, funcs) // step 6
	if err != nil {
		return nil, err
	}

	having, err := havingGroups(windowed, sel.Having, env) // step 7
	if err != nil {
		return nil, err
	}

	projected, err := projectRows(sel, source.layout, having, env, funcs)
	if err != nil {
		return nil, err
	}

	labels := projectionLabels(sel, source.layout)
	distinct := distinctRows(sel, projected, labels) // step 8

	ordered, err := orderRows(sel, distinct, env, funcs) // step 9
	if err != nil {
		return nil, err
	}

	var limit int64
	hasLimit := sel.Limit != nil
	if hasLimit {
		v, err := eval(sel.Limit.Count, emptyContext(env, funcs))
		if err != nil {
			return nil, err
		}
		n, ok := v.(values.IntValue)
		if !ok {
			return nil, fmt.Errorf("LIMIT must evaluate to an integer")
		}
		limit = int64(n)
	}
	var offset int64
	if sel.Offset != nil {
		v, err := eval(sel.Offset.Count, emptyContext(env, funcs))
		if err != nil {
			return nil, err
		}
		n, ok := v.(values.IntValue)
		if !ok {
			return nil, fmt.Errorf("OFFSET must evaluate to an integer")
		}
		offset = int64(n)
	}
	final := limitOffsetRows(ordered, offset, limit, hasLimit) // step 10

	hiddenCount := len(sel.HiddenSelections)
	groups := make([]object.Group, len(final))
	visibleRows := make([][]values.Value, len(final))
	for i, r := range final {
		row := make([]values.Value, 0, hiddenCount+len(r.visible))
		row = append(row, r.hidden...)
		row = append(row, r.visible...)
		groups[i] = object.Group{Rows: []object.Row{{Values: row}}}
		visibleRows[i] = r.visible
	}

	obj := &object.GitQLObject{Titles: labels, Groups: groups, HiddenCount: hiddenCount}

	if sel.Into != nil { // step 11
		if opts.Into == nil {
			return nil, fmt.Errorf("INTO OUTFILE requires an output writer")
		}
		if err := writeInto(opts.Into, sel.Into, labels, visibleRows); err != nil {
			return nil, err
		}
	}

	if !sel.HasGroupBy { // step 12
		obj.Flatten()
	}
	return obj, nil
}
