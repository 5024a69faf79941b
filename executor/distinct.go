package executor

import (
	"strings"

	"github.com/gql-run/gitql/ast"
)

// distinctRows applies DISTINCT / DISTINCT ON (spec.md §4.4 step 8):
// the first occurrence of a key wins, keyed either by every visible
// projected value (plain DISTINCT) or by the named fields only
// (DISTINCT ON), mirroring
// original_source/crates/gitql-engine/src/engine_distinct.rs's
// hash-of-literal-strings approach.
func distinctRows(sel *ast.SelectStmt, rows []projectedRow, labels []string) []projectedRow {
	if !sel.Distinct {
		return rows
	}

	var onIdx []int
	for _, name := range sel.DistinctOn {
		for i, l := range labels {
			if l == name {
				onIdx = append(onIdx, i)
				break
			}
		}
	}

	seen := map[string]bool{}
	out := make([]projectedRow, 0, len(rows))
	for _, r := range rows {
		indexes := onIdx
		if len(indexes) == 0 {
			indexes = allIndexes(len(r.visible))
		}
		parts := make([]string, len(indexes))
		for i, idx := range indexes {
			parts[i] = r.visible[idx].Literal()
		}
		key := strings.Join(parts, "\x00")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

func allIndexes(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
