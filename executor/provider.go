// Package executor implements the query pipeline described in
// spec.md §4.4: source acquisition, join, filter, group (with
// rollup), aggregation and window materialization, having, distinct,
// order, limit/offset and INTO OUTFILE, in that fixed order. Mirrors
// original_source/crates/gitql-engine/src/engine_*.rs, generalized
// from raw GQLObject attribute maps to this module's typed
// object.Row/object.GitQLObject shapes.
package executor

import (
	"github.com/gql-run/gitql/object"
)

// DataProvider is the sole required collaborator (spec.md §6): it
// returns rows for a table limited to the columns the query actually
// references. Implementations must return values whose Type() matches
// the Schema's column types and must use values.NullValue{} (never
// omit the field) for missing data.
type DataProvider interface {
	Provide(table string, selectedColumns []string) ([]object.Row, error)
}
