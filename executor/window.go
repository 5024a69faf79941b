package executor

import (
	"github.com/gql-run/gitql/ast"
	"github.com/gql-run/gitql/environment"
	"github.com/gql-run/gitql/object"
	"github.com/gql-run/gitql/stdlib"
	"github.com/gql-run/gitql/values"
)

// windowHiddenSelections returns sel's hidden selections that hoisted
// a window call, as opposed to an aggregate call.
func windowHiddenSelections(sel *ast.SelectStmt) []*ast.WindowPlaceholder {
	var out []*ast.WindowPlaceholder
	for _, h := range sel.HiddenSelections {
		if p, ok := h.Expr.(*ast.WindowPlaceholder); ok {
			out = append(out, p)
		}
	}
	return out
}

// partitionRows groups row indices by partitionBy's evaluated key
// tuple, preserving first-seen partition order. With no PARTITION BY,
// every row belongs to a single partition spanning the whole result.
func partitionRows(rows []groupRow, partitionBy []ast.Expr, env *environment.Environment, funcs *stdlib.Registry) ([][]int, error) {
	if len(partitionBy) == 0 {
		all := make([]int, len(rows))
		for i := range all {
			all[i] = i
		}
		return [][]int{all}, nil
	}
	var order []string
	byKey := map[string][]int{}
	for i, gr := range rows {
		keyVals := make([]values.Value, len(partitionBy))
		for j, e := range partitionBy {
			v, err := eval(e, rowContext{env: env, funcs: funcs, lo: gr.layout, row: gr.row})
			if err != nil {
				return nil, err
			}
			keyVals[j] = v
		}
		k := groupKey(keyVals)
		if _, ok := byKey[k]; !ok {
			order = append(order, k)
		}
		byKey[k] = append(byKey[k], i)
	}
	out := make([][]int, len(order))
	for i, k := range order {
		out[i] = byKey[k]
	}
	return out, nil
}

// materializeWindows evaluates every hoisted window call (spec.md
// §4.4 step 6): each one partitions the full, already-aggregated row
// set independently per its own OVER clause, orders the partition,
// then asks the registry for the per-row result over the ordered
// argument matrix.
func materializeWindows(sel *ast.SelectStmt, rows []groupRow, env *environment.Environment, funcs *stdlib.Registry) ([]groupRow, error) {
	winCalls := windowHiddenSelections(sel)
	if len(winCalls) == 0 {
		return rows, nil
	}

	results := make([][]values.Value, len(rows))
	for i := range results {
		results[i] = make([]values.Value, len(winCalls))
	}

	for ci, p := range winCalls {
		partitions, err := partitionRows(rows, p.Call.Over.PartitionBy, env, funcs)
		if err != nil {
			return nil, err
		}
		for _, part := range partitions {
			ordered, err := sortIndices(part, p.Call.Over.OrderBy, func(i int) rowContext {
				return rowContext{env: env, funcs: funcs, lo: rows[i].layout, row: rows[i].row}
			})
			if err != nil {
				return nil, err
			}
			matrix := make([][]values.Value, len(ordered))
			for pos, idx := range ordered {
				args, err := evalArgs(p.Call.Args, rowContext{env: env, funcs: funcs, lo: rows[idx].layout, row: rows[idx].row})
				if err != nil {
					return nil, err
				}
				matrix[pos] = args
			}
			for pos, idx := range ordered {
				v, err := funcs.CallWindow(p.Call.Name, matrix, pos)
				if err != nil {
					return nil, wrapErr(p, err)
				}
				results[idx][ci] = v
			}
		}
	}

	out := make([]groupRow, len(rows))
	for i, gr := range rows {
		lo := gr.layout
		vals := append([]values.Value(nil), gr.row.Values...)
		for ci, p := range winCalls {
			lo = lo.extend(p.HiddenName)
			vals = append(vals, results[i][ci])
		}
		out[i] = groupRow{layout: lo, row: object.Row{Values: vals}}
	}
	return out, nil
}
