package executor

import (
	"fmt"

	"github.com/gql-run/gitql/ast"
	"github.com/gql-run/gitql/environment"
	"github.com/gql-run/gitql/object"
	"github.com/gql-run/gitql/values"
	"github.com/pkg/errors"
)

// rowSet is a column layout paired with the rows that share it, the
// executor's working representation from source acquisition through
// having (spec.md §4.4 steps 1-7).
type rowSet struct {
	layout *layout
	rows   []object.Row
}

// isStarProjection reports whether the query is a bare `SELECT *`:
// the parser represents that by an empty, non-nil-tables projection
// (parser/select.go's parseProjectionList).
func isStarProjection(sel *ast.SelectStmt) bool {
	return len(sel.Projection) == 0 && len(sel.HiddenSelections) == 0 && len(sel.Tables) > 0
}

// tableColumns returns the columns to request from the provider for
// table: every column the query actually references, or (for
// `SELECT *`) every column the schema declares for it.
func tableColumns(sel *ast.SelectStmt, t ast.TableSelection, env *environment.Environment) []string {
	if isStarProjection(sel) {
		return env.Schema.TableFields[t.Name]
	}
	return t.Columns
}

// acquireTable fetches one table's rows from the provider and builds
// the layout matching the requested column order (spec.md §4.4 step
// 1).
func acquireTable(sel *ast.SelectStmt, t ast.TableSelection, env *environment.Environment, provider DataProvider) (rowSet, error) {
	cols := tableColumns(sel, t, env)
	rows, err := provider.Provide(t.Name, cols)
	if err != nil {
		return rowSet{}, errors.Wrapf(err, "data provider failed for table %q", t.Name)
	}
	return rowSet{layout: newLayout(cols), rows: rows}, nil
}

// buildSourceRows runs source acquisition and join (spec.md §4.4
// steps 1-2): with no joins the tables' rows are concatenated; with
// joins each Join combines its right table against the running
// left-hand accumulation (§9 "the address trick is not part of the
// contract" — here the join result is plain materialized rows, no
// pointer-identity games).
func buildSourceRows(sel *ast.SelectStmt, env *environment.Environment, provider DataProvider) (rowSet, error) {
	if len(sel.Tables) == 0 {
		return rowSet{layout: newLayout(nil), rows: []object.Row{{}}}, nil
	}

	tableSets := make([]rowSet, len(sel.Tables))
	for i, t := range sel.Tables {
		rs, err := acquireTable(sel, t, env, provider)
		if err != nil {
			return rowSet{}, err
		}
		tableSets[i] = rs
	}

	if len(sel.Joins) == 0 {
		// No JOIN clauses: concatenate every table's rows vertically.
		// In practice this grammar only reaches here with exactly one
		// table, since every additional FROM-clause table requires an
		// explicit JOIN keyword (parser/select.go's parseTablesAndJoins).
		combined := rowSet{layout: tableSets[0].layout}
		for _, rs := range tableSets {
			combined.rows = append(combined.rows, rs.rows...)
		}
		return combined, nil
	}

	current := tableSets[sel.Joins[0].Left]
	for _, j := range sel.Joins {
		right := tableSets[j.Right]
		joined, err := joinRowSets(sel, j, right, current, env)
		if err != nil {
			return rowSet{}, err
		}
		current = joined
	}
	return current, nil
}

// joinRowSets combines right against left (the running accumulation)
// under join kind: the result row is right.values ++ left.values
// (spec.md §4.4 step 2), with LEFT/RIGHT/FULL padding the missing side
// with Null.
func joinRowSets(sel *ast.SelectStmt, j ast.Join, right, left rowSet, env *environment.Environment) (rowSet, error) {
	combinedLayout := concatLayouts(right.layout, left.layout)
	rs := rowSet{layout: combinedLayout}

	matchPredicate := func(r object.Row) (bool, error) {
		if j.On == nil {
			return true, nil
		}
		v, err := eval(j.On, rowContext{env: env, lo: combinedLayout, row: r})
		if err != nil {
			return false, err
		}
		b, ok := v.(values.BoolValue)
		if !ok {
			return false, fmt.Errorf("ON clause must evaluate to a boolean")
		}
		return bool(b), nil
	}

	nullRow := func(cols []string) []values.Value {
		vs := make([]values.Value, len(cols))
		for i := range vs {
			vs[i] = values.NullValue{}
		}
		return vs
	}

	switch j.Kind {
	case ast.CrossJoin:
		for _, lr := range left.rows {
			for _, rr := range right.rows {
				rs.rows = append(rs.rows, concatRow(rr, lr))
			}
		}
		return rs, nil

	case ast.InnerJoin:
		for _, lr := range left.rows {
			for _, rr := range right.rows {
				combined := concatRow(rr, lr)
				ok, err := matchPredicate(combined)
				if err != nil {
					return rowSet{}, err
				}
				if ok {
					rs.rows = append(rs.rows, combined)
				}
			}
		}
		return rs, nil

	case ast.LeftJoin:
		for _, lr := range left.rows {
			matched := false
			for _, rr := range right.rows {
				combined := concatRow(rr, lr)
				ok, err := matchPredicate(combined)
				if err != nil {
					return rowSet{}, err
				}
				if ok {
					rs.rows = append(rs.rows, combined)
					matched = true
				}
			}
			if !matched {
				rs.rows = append(rs.rows, concatRow(object.Row{Values: nullRow(right.layout.names)}, lr))
			}
		}
		return rs, nil

	case ast.RightJoin:
		for _, rr := range right.rows {
			matched := false
			for _, lr := range left.rows {
				combined := concatRow(rr, lr)
				ok, err := matchPredicate(combined)
				if err != nil {
					return rowSet{}, err
				}
				if ok {
					rs.rows = append(rs.rows, combined)
					matched = true
				}
			}
			if !matched {
				rs.rows = append(rs.rows, concatRow(rr, object.Row{Values: nullRow(left.layout.names)}))
			}
		}
		return rs, nil

	case ast.FullOuterJoin:
		rightMatched := make([]bool, len(right.rows))
		for _, lr := range left.rows {
			matched := false
			for ri, rr := range right.rows {
				combined := concatRow(rr, lr)
				ok, err := matchPredicate(combined)
				if err != nil {
					return rowSet{}, err
				}
				if ok {
					rs.rows = append(rs.rows, combined)
					matched = true
					rightMatched[ri] = true
				}
			}
			if !matched {
				rs.rows = append(rs.rows, concatRow(object.Row{Values: nullRow(right.layout.names)}, lr))
			}
		}
		for ri, rr := range right.rows {
			if !rightMatched[ri] {
				rs.rows = append(rs.rows, concatRow(rr, object.Row{Values: nullRow(left.layout.names)}))
			}
		}
		return rs, nil
	}
	return rowSet{}, fmt.Errorf("internal: unreachable join kind")
}

func concatRow(right, left object.Row) object.Row {
	vs := make([]values.Value, 0, len(right.Values)+len(left.Values))
	vs = append(vs, right.Values...)
	vs = append(vs, left.Values...)
	return object.Row{Values: vs}
}
