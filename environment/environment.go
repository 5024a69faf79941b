// Package environment holds the Schema (table/column metadata) and the
// per-query scope and global-variable state the parser resolves
// symbols against. Mirrors original_source's
// crates/gitql-ast/src/{schema,environment}.rs.
package environment

import (
	"sort"

	"github.com/gql-run/gitql/diagnostic"
	"github.com/gql-run/gitql/types"
	"github.com/gql-run/gitql/values"
)

// Schema is the host-supplied table/column catalog: a table name maps
// to its ordered column list, and a column name maps to its type.
// Column names are unique per table; a type is shared across every
// table that declares a column with that name.
type Schema struct {
	TableFields map[string][]string
	FieldTypes  map[string]types.DataType
}

// NewSchema builds an empty Schema ready for registration.
func NewSchema() *Schema {
	return &Schema{TableFields: map[string][]string{}, FieldTypes: map[string]types.DataType{}}
}

// HasTable reports whether name is a registered table.
func (s *Schema) HasTable(name string) bool {
	_, ok := s.TableFields[name]
	return ok
}

// Tables returns the registered table names in sorted order, used by
// SHOW TABLES.
func (s *Schema) Tables() []string {
	names := make([]string, 0, len(s.TableFields))
	for t := range s.TableFields {
		names = append(names, t)
	}
	sort.Strings(names)
	return names
}

// ColumnType resolves a column's type, searching every registered
// table (column names are assumed globally consistent per §3).
func (s *Schema) ColumnType(column string) (types.DataType, bool) {
	t, ok := s.FieldTypes[column]
	return t, ok
}

// AllColumnNames returns every distinct column name across every
// table, used as the Levenshtein candidate pool for unknown-column
// diagnostics.
func (s *Schema) AllColumnNames() []string {
	seen := map[string]bool{}
	var names []string
	for _, cols := range s.TableFields {
		for _, c := range cols {
			if !seen[c] {
				seen[c] = true
				names = append(names, c)
			}
		}
	}
	return names
}

// Environment is owned per query: it pairs a shared, read-only Schema
// with the globals (persisted across queries by the host, per §5) and
// a scope cleared at the start of each query.
type Environment struct {
	Schema       *Schema
	Globals      map[string]values.Value
	GlobalsTypes map[string]types.DataType
	Scopes       map[string]types.DataType
}

// New creates an Environment bound to schema, with empty globals.
func New(schema *Schema) *Environment {
	return &Environment{
		Schema:       schema,
		Globals:      map[string]values.Value{},
		GlobalsTypes: map[string]types.DataType{},
		Scopes:       map[string]types.DataType{},
	}
}

// Define records name's type in the current (local) scope.
func (e *Environment) Define(name string, t types.DataType) { e.Scopes[name] = t }

// DefineGlobal records name's type among the globals.
func (e *Environment) DefineGlobal(name string, t types.DataType) { e.GlobalsTypes[name] = t }

// Contains reports whether name is resolvable, locally or globally.
func (e *Environment) Contains(name string) bool {
	if _, ok := e.Scopes[name]; ok {
		return true
	}
	_, ok := e.GlobalsTypes[name]
	return ok
}

// ResolveType resolves name's type: a leading '@' always looks up the
// globals, otherwise the local scope.
func (e *Environment) ResolveType(name string) (types.DataType, bool) {
	if len(name) > 0 && name[0] == '@' {
		t, ok := e.GlobalsTypes[name]
		return t, ok
	}
	t, ok := e.Scopes[name]
	return t, ok
}

// ClearSession drops the local scope, retaining globals -- used
// between independent queries sharing one Environment (§3
// "Lifecycle").
func (e *Environment) ClearSession() { e.Scopes = map[string]types.DataType{} }

// SuggestColumn returns the closest registered column name to name,
// or "" if none is within the suggestion distance.
func (e *Environment) SuggestColumn(name string) string {
	return diagnostic.ClosestName(name, e.Schema.AllColumnNames())
}
