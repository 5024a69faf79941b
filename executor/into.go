package executor

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/gql-run/gitql/ast"
	"github.com/gql-run/gitql/values"
)

// writeInto renders titles and visible rows to w as delimited text
// (spec.md §4.4 step 11), mirroring
// original_source/crates/gitql-engine/src/engine_output_into.rs: a
// header line, then one line per row, each value optionally wrapped
// in the ENCLOSED BY string.
func writeInto(w io.Writer, stmt *ast.IntoStmt, titles []string, rows [][]values.Value) error {
	var buf strings.Builder
	buf.WriteString(strings.Join(titles, stmt.FieldsTerminator))
	buf.WriteString(stmt.LinesTerminator)

	for _, row := range rows {
		parts := make([]string, len(row))
		for i, v := range row {
			parts[i] = encloseValue(v, stmt.Enclosed)
		}
		buf.WriteString(strings.Join(parts, stmt.FieldsTerminator))
		buf.WriteString(stmt.LinesTerminator)
	}

	_, err := io.WriteString(w, buf.String())
	return errors.Wrap(err, "writing INTO OUTFILE output")
}

func encloseValue(v values.Value, enclosed string) string {
	if enclosed == "" {
		return v.Literal()
	}
	return enclosed + v.Literal() + enclosed
}
