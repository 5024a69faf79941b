package executor

import (
	"sort"

	"github.com/gql-run/gitql/ast"
	"github.com/gql-run/gitql/environment"
	"github.com/gql-run/gitql/stdlib"
	"github.com/gql-run/gitql/values"
)

// sortKey is one row's pre-evaluated ORDER BY argument vector (§9
// design note: evaluate every ordering argument once per row rather
// than re-evaluating it on every comparator call, replacing the
// source's pointer-address-keyed eval cache with a plain parallel
// slice).
type sortKey struct {
	idx  int
	vals []values.Value
}

// compareSortKeys compares a and b argument-by-argument until one
// comparison is decisive, honoring each argument's NULLS policy and
// direction.
func compareSortKeys(a, b sortKey, args []ast.OrderArg) int {
	for i, arg := range args {
		av, bv := a.vals[i], b.vals[i]
		aNull, bNull := values.IsNull(av), values.IsNull(bv)
		if aNull || bNull {
			if aNull && bNull {
				continue
			}
			if arg.Nulls == ast.NullsFirst {
				if aNull {
					return -1
				}
				return 1
			}
			if aNull {
				return 1
			}
			return -1
		}
		order, ok := av.Compare(bv)
		if !ok || order == 0 {
			continue
		}
		if arg.Order == ast.Descending {
			order = -order
		}
		return order
	}
	return 0
}

// sortIndices stably reorders indices by args, evaluated against each
// index's row via getRow.
func sortIndices(indices []int, args []ast.OrderArg, getRow func(i int) rowContext) ([]int, error) {
	if len(args) == 0 {
		return indices, nil
	}
	keys := make([]sortKey, len(indices))
	for i, idx := range indices {
		rc := getRow(idx)
		vals := make([]values.Value, len(args))
		for j, a := range args {
			v, err := eval(a.Expr, rc)
			if err != nil {
				return nil, err
			}
			vals[j] = v
		}
		keys[i] = sortKey{idx: idx, vals: vals}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return compareSortKeys(keys[i], keys[j], args) < 0
	})
	out := make([]int, len(keys))
	for i, k := range keys {
		out[i] = k.idx
	}
	return out, nil
}

// orderRows applies ORDER BY (spec.md §4.4 step 9) to the post-DISTINCT
// row list, evaluating each argument against the row's extended
// (group/window) layout -- not just its visible projected values, so
// an ordering argument need not appear in the projection.
func orderRows(sel *ast.SelectStmt, rows []projectedRow, env *environment.Environment, funcs *stdlib.Registry) ([]projectedRow, error) {
	if sel.OrderBy == nil {
		return rows, nil
	}
	indices := make([]int, len(rows))
	for i := range indices {
		indices[i] = i
	}
	sorted, err := sortIndices(indices, sel.OrderBy.Args, func(i int) rowContext {
		gr := rows[i].gr
		return rowContext{env: env, funcs: funcs, lo: gr.layout, row: gr.row}
	})
	if err != nil {
		return nil, err
	}
	out := make([]projectedRow, len(rows))
	for i, idx := range sorted {
		out[i] = rows[idx]
	}
	return out, nil
}

// limitOffsetRows applies OFFSET then LIMIT (spec.md §4.4 step 10).
func limitOffsetRows(rows []projectedRow, offset, limit int64, hasLimit bool) []projectedRow {
	if offset > 0 {
		if offset >= int64(len(rows)) {
			return nil
		}
		rows = rows[offset:]
	}
	if hasLimit {
		if limit < 0 {
			limit = 0
		}
		if limit < int64(len(rows)) {
			rows = rows[:limit]
		}
	}
	return rows
}
