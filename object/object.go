// Package object holds the executor's output shapes: Row, Group and
// the GitQLObject returned to the host. Mirrors
// original_source/crates/gitql-core/src/object.rs.
package object

import "github.com/gql-run/gitql/values"

// Row is an ordered sequence of values. Hidden columns (aggregate and
// window temp columns the parser hoisted) are stored first; every Row
// in an Object has length == len(Object.Titles) + hiddenCount.
type Row struct {
	Values []values.Value
}

// Group is an ordered sequence of Rows sharing one GROUP BY key (or
// the entire result set, when there is no GROUP BY).
type Group struct {
	Rows []Row
}

// GitQLObject is the executor's final output: ordered visible column
// titles plus ordered groups of rows. hiddenCount records how many
// leading columns in each Row are hidden from rendering.
type GitQLObject struct {
	Titles      []string
	Groups      []Group
	HiddenCount int
}

// VisibleValues returns row's values with the hidden leading columns
// stripped, matching Titles in length and order.
func (o *GitQLObject) VisibleValues(row Row) []values.Value {
	return row.Values[o.HiddenCount:]
}

// IsSingleGroup reports whether the object has no real grouping, i.e.
// it should be flattened to one group on final return (§4.4 step 12).
func (o *GitQLObject) IsSingleGroup() bool { return len(o.Groups) <= 1 }

// Flatten merges every group's rows into one, preserving group order
// then row order within each group.
func (o *GitQLObject) Flatten() {
	if len(o.Groups) <= 1 {
		return
	}
	var all []Row
	for _, g := range o.Groups {
		all = append(all, g.Rows...)
	}
	o.Groups = []Group{{Rows: all}}
}
