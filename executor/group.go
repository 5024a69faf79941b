package executor

import (
	"strings"

	"github.com/gql-run/gitql/ast"
	"github.com/gql-run/gitql/environment"
	"github.com/gql-run/gitql/object"
	"github.com/gql-run/gitql/stdlib"
	"github.com/gql-run/gitql/values"
)

// groupRow is one materialized output row carrying its own column
// layout: the executor's working representation from group-by through
// the final projection (spec.md §4.4 steps 4-9).
type groupRow struct {
	layout *layout
	row    object.Row
}

// rawGroup is one GROUP BY key's member rows, kept only long enough to
// evaluate aggregate arguments against every member before collapsing
// to a single representative row.
type rawGroup struct {
	rows []object.Row
}

// groupKey renders a key tuple to a string by joining each value's
// Literal() form, mirroring original_source's
// crates/gitql-engine/src/engine_group.rs hashing of literal strings.
func groupKey(vals []values.Value) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.Literal()
	}
	return strings.Join(parts, "\x00")
}

// allNonEmptyCombinations returns every non-empty, strictly increasing
// subset of {0,...,n-1}, in the same order as
// combinations_generator.rs's generate_list_of_all_combinations.
func allNonEmptyCombinations(n int) [][]int {
	var result [][]int
	var current []int
	var generate func(start int)
	generate = func(start int) {
		if len(current) > 0 {
			result = append(result, append([]int(nil), current...))
		}
		for i := start; i < n; i++ {
			current = append(current, i)
			generate(i + 1)
			current = current[:len(current)-1]
		}
	}
	generate(0)
	return result
}

// buildGroups groups rs's rows by GROUP BY's key values. Without WITH
// ROLLUP there is exactly one combination (every key value, in
// order); with it, a group is formed for every non-empty subset of
// the key indexes (engine_group.rs), plus (per SPEC_FULL.md §9) a
// final grand-total group spanning every row, appended regardless of
// how many GROUP BY values there are.
func buildGroups(gb *ast.GroupByStmt, rs rowSet, env *environment.Environment, funcs *stdlib.Registry) ([]rawGroup, error) {
	n := len(gb.Values)
	var combos [][]int
	if gb.HasWithRollup {
		combos = allNonEmptyCombinations(n)
	} else {
		full := make([]int, n)
		for i := range full {
			full[i] = i
		}
		combos = [][]int{full}
	}

	order := make([]string, 0, len(rs.rows))
	byKey := map[string]*rawGroup{}
	for _, row := range rs.rows {
		for _, combo := range combos {
			keyVals := make([]values.Value, len(combo))
			for i, idx := range combo {
				v, err := eval(gb.Values[idx], rowContext{env: env, funcs: funcs, lo: rs.layout, row: row})
				if err != nil {
					return nil, err
				}
				keyVals[i] = v
			}
			k := groupKey(keyVals)
			g, ok := byKey[k]
			if !ok {
				g = &rawGroup{}
				byKey[k] = g
				order = append(order, k)
			}
			g.rows = append(g.rows, row)
		}
	}

	out := make([]rawGroup, len(order))
	for i, k := range order {
		out[i] = *byKey[k]
	}
	if gb.HasWithRollup {
		out = append(out, rawGroup{rows: append([]object.Row(nil), rs.rows...)})
	}
	return out, nil
}

// aggregateHiddenSelections returns sel's hidden selections that
// hoisted an aggregate call, as opposed to a window call.
func aggregateHiddenSelections(sel *ast.SelectStmt) []*ast.AggregatePlaceholder {
	var out []*ast.AggregatePlaceholder
	for _, h := range sel.HiddenSelections {
		if p, ok := h.Expr.(*ast.AggregatePlaceholder); ok {
			out = append(out, p)
		}
	}
	return out
}

// materializeGroup evaluates every aggregate hidden column's
// arguments against members, collapsing the group to a single
// representative row extended with the aggregate results. members[0]
// stands in for the non-aggregate columns; an empty group (possible
// only for the implicit, GROUP-BY-less aggregation case) falls back to
// an all-Null representative so e.g. COUNT(*) still reports 0 instead
// of vanishing.
func materializeGroup(lo *layout, members []object.Row, aggCalls []*ast.AggregatePlaceholder, env *environment.Environment, funcs *stdlib.Registry) (groupRow, error) {
	var rep object.Row
	if len(members) > 0 {
		rep = members[0]
	} else {
		vs := make([]values.Value, len(lo.names))
		for i := range vs {
			vs[i] = values.NullValue{}
		}
		rep = object.Row{Values: vs}
	}

	outValues := append([]values.Value(nil), rep.Values...)
	outLayout := lo
	for _, p := range aggCalls {
		matrix := make([][]values.Value, len(members))
		for i, m := range members {
			args, err := evalArgs(p.Call.Args, rowContext{env: env, funcs: funcs, lo: lo, row: m})
			if err != nil {
				return groupRow{}, err
			}
			matrix[i] = args
		}
		v, err := funcs.CallAggregation(p.Call.Name, matrix)
		if err != nil {
			return groupRow{}, wrapErr(p, err)
		}
		outLayout = outLayout.extend(p.HiddenName)
		outValues = append(outValues, v)
	}
	return groupRow{layout: outLayout, row: object.Row{Values: outValues}}, nil
}

// groupAndAggregate runs GROUP BY (spec.md §4.4 step 4) and aggregate
// materialization (step 5). With no GROUP BY clause, a query with any
// hoisted aggregate call collapses to one implicit group spanning
// every filtered row (always exactly one output row, even over zero
// input rows); a query with neither produces one groupRow per source
// row, unchanged.
func groupAndAggregate(sel *ast.SelectStmt, rs rowSet, env *environment.Environment, funcs *stdlib.Registry) ([]groupRow, error) {
	aggCalls := aggregateHiddenSelections(sel)

	switch {
	case sel.GroupBy != nil:
		groups, err := buildGroups(sel.GroupBy, rs, env, funcs)
		if err != nil {
			return nil, err
		}
		out := make([]groupRow, 0, len(groups))
		for _, g := range groups {
			gr, err := materializeGroup(rs.layout, g.rows, aggCalls, env, funcs)
			if err != nil {
				return nil, err
			}
			out = append(out, gr)
		}
		return out, nil

	case sel.HasAggregation:
		gr, err := materializeGroup(rs.layout, rs.rows, aggCalls, env, funcs)
		if err != nil {
			return nil, err
		}
		return []groupRow{gr}, nil

	default:
		out := make([]groupRow, len(rs.rows))
		for i, row := range rs.rows {
			out[i] = groupRow{layout: rs.layout, row: row}
		}
		return out, nil
	}
}
