package executor

import (
	"fmt"

	"github.com/gql-run/gitql/ast"
	"github.com/gql-run/gitql/environment"
	"github.com/gql-run/gitql/values"
)

// filterRows applies the WHERE predicate (spec.md §4.4 step 3): a
// non-Bool result is a hard error, never silently dropped or kept.
func filterRows(rs rowSet, where *ast.WhereStmt, env *environment.Environment) (rowSet, error) {
	if where == nil {
		return rs, nil
	}
	out := rowSet{layout: rs.layout}
	for _, row := range rs.rows {
		v, err := eval(where.Predicate, rowContext{env: env, lo: rs.layout, row: row})
		if err != nil {
			return rowSet{}, err
		}
		b, ok := v.(values.BoolValue)
		if !ok {
			return rowSet{}, fmt.Errorf("WHERE predicate must evaluate to a boolean, got %s", v.Type().Literal())
		}
		if bool(b) {
			out.rows = append(out.rows, row)
		}
	}
	return out, nil
}

// havingGroups applies the HAVING predicate at group level (spec.md
// §4.4 step 7): the predicate is evaluated against each group's
// representative row (already carrying any materialized aggregate
// columns), and non-matching groups are dropped.
func havingGroups(groups []groupRow, having *ast.HavingStmt, env *environment.Environment) ([]groupRow, error) {
	if having == nil {
		return groups, nil
	}
	var out []groupRow
	for _, g := range groups {
		v, err := eval(having.Predicate, rowContext{env: env, lo: g.layout, row: g.row})
		if err != nil {
			return nil, err
		}
		b, ok := v.(values.BoolValue)
		if !ok {
			return nil, fmt.Errorf("HAVING predicate must evaluate to a boolean, got %s", v.Type().Literal())
		}
		if bool(b) {
			out = append(out, g)
		}
	}
	return out, nil
}
