package executor

import (
	"fmt"

	"github.com/gql-run/gitql/ast"
	"github.com/gql-run/gitql/environment"
	"github.com/gql-run/gitql/stdlib"
	"github.com/gql-run/gitql/values"
)

// projectedRow is one output row after projection: the final hidden
// column values (from HiddenSelections, in their declared order) and
// the final visible projection values, plus the extended groupRow it
// was projected from -- still needed downstream since DISTINCT ON and
// ORDER BY may reference expressions outside the projection list.
type projectedRow struct {
	gr      groupRow
	hidden  []values.Value
	visible []values.Value
}

// projectionLabels returns the final column titles: sel.Projection's
// labels, or (for `SELECT *`) every source column name.
func projectionLabels(sel *ast.SelectStmt, sourceLayout *layout) []string {
	if isStarProjection(sel) {
		return append([]string(nil), sourceLayout.names...)
	}
	labels := make([]string, len(sel.Projection))
	for i, p := range sel.Projection {
		labels[i] = p.Label
	}
	return labels
}

// projectRows evaluates the projection, and collects each row's final
// hidden column values, against every group/window-materialized row.
func projectRows(sel *ast.SelectStmt, sourceLayout *layout, rows []groupRow, env *environment.Environment, funcs *stdlib.Registry) ([]projectedRow, error) {
	star := isStarProjection(sel)
	out := make([]projectedRow, len(rows))
	for i, gr := range rows {
		rc := rowContext{env: env, funcs: funcs, lo: gr.layout, row: gr.row}

		var visible []values.Value
		if star {
			visible = make([]values.Value, len(sourceLayout.names))
			for j, name := range sourceLayout.names {
				idx, ok := gr.layout.indexOf(name)
				if !ok {
					return nil, fmt.Errorf("internal: star column %q missing from row", name)
				}
				visible[j] = gr.row.Values[idx]
			}
		} else {
			visible = make([]values.Value, len(sel.Projection))
			for j, p := range sel.Projection {
				v, err := eval(p.Expr, rc)
				if err != nil {
					return nil, err
				}
				visible[j] = v
			}
		}

		hidden := make([]values.Value, len(sel.HiddenSelections))
		for j, h := range sel.HiddenSelections {
			v, err := eval(h.Expr, rc)
			if err != nil {
				return nil, err
			}
			hidden[j] = v
		}

		out[i] = projectedRow{gr: gr, hidden: hidden, visible: visible}
	}
	return out, nil
}
