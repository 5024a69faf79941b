package values

import (
	"strings"

	"github.com/gql-run/gitql/types"
)

// ArrayValue is an ordered, homogeneously-typed sequence of values.
type ArrayValue struct {
	Of      types.DataType
	Values  []Value
}

func (v ArrayValue) Type() types.DataType { return types.NewArray(v.Of) }
func (v ArrayValue) Literal() string {
	parts := make([]string, len(v.Values))
	for i, e := range v.Values {
		parts[i] = e.Literal()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (v ArrayValue) Equal(o Value) bool {
	w, ok := o.(ArrayValue)
	if !ok || len(v.Values) != len(w.Values) {
		return false
	}
	for i := range v.Values {
		if !v.Values[i].Equal(w.Values[i]) {
			return false
		}
	}
	return true
}
func (v ArrayValue) Compare(Value) (int, bool) { return 0, false }

// Contains reports whether needle is present in the array.
func (v ArrayValue) Contains(needle Value) bool {
	for _, e := range v.Values {
		if e.Equal(needle) {
			return true
		}
	}
	return false
}

// RangeValue is an inclusive-lo, exclusive-hi range.
type RangeValue struct {
	Of     types.DataType
	Lo, Hi Value
}

func (v RangeValue) Type() types.DataType { return types.NewRange(v.Of) }
func (v RangeValue) Literal() string      { return "[" + v.Lo.Literal() + "," + v.Hi.Literal() + ")" }
func (v RangeValue) Equal(o Value) bool {
	w, ok := o.(RangeValue)
	return ok && v.Lo.Equal(w.Lo) && v.Hi.Equal(w.Hi)
}
func (v RangeValue) Compare(Value) (int, bool) { return 0, false }

// Contains reports whether x falls in [Lo, Hi).
func (v RangeValue) Contains(x Value) bool {
	lo, ok1 := v.Lo.Compare(x)
	hi, ok2 := x.Compare(v.Hi)
	return ok1 && ok2 && lo <= 0 && hi < 0
}

// RowValue is an ordered, fixed-length tuple.
type RowValue struct{ Values []Value }

func (v RowValue) Type() types.DataType {
	members := make([]types.DataType, len(v.Values))
	for i, e := range v.Values {
		members[i] = e.Type()
	}
	return types.NewRow(members...)
}
func (v RowValue) Literal() string {
	parts := make([]string, len(v.Values))
	for i, e := range v.Values {
		parts[i] = e.Literal()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (v RowValue) Equal(o Value) bool {
	w, ok := o.(RowValue)
	if !ok || len(v.Values) != len(w.Values) {
		return false
	}
	for i := range v.Values {
		if !v.Values[i].Equal(w.Values[i]) {
			return false
		}
	}
	return true
}
func (v RowValue) Compare(Value) (int, bool) { return 0, false }

// CompositeMember is a single insertion-ordered field of a Composite.
type CompositeMember struct {
	Name  string
	Value Value
}

// CompositeValue is a named, insertion-ordered bag of members.
type CompositeValue struct {
	Name    string
	Members []CompositeMember
}

func (v CompositeValue) Type() types.DataType {
	fields := make([]types.Field, len(v.Members))
	for i, m := range v.Members {
		fields[i] = types.Field{Name: m.Name, Type: m.Value.Type()}
	}
	return types.NewComposite(v.Name, fields...)
}
func (v CompositeValue) Literal() string {
	parts := make([]string, len(v.Members))
	for i, m := range v.Members {
		parts[i] = m.Name + ": " + m.Value.Literal()
	}
	return v.Name + "{" + strings.Join(parts, ", ") + "}"
}
func (v CompositeValue) Equal(o Value) bool {
	w, ok := o.(CompositeValue)
	if !ok || v.Name != w.Name || len(v.Members) != len(w.Members) {
		return false
	}
	for i := range v.Members {
		if v.Members[i].Name != w.Members[i].Name || !v.Members[i].Value.Equal(w.Members[i].Value) {
			return false
		}
	}
	return true
}
func (v CompositeValue) Compare(Value) (int, bool) { return 0, false }

// Get returns the named member's value, if present.
func (v CompositeValue) Get(name string) (Value, bool) {
	for _, m := range v.Members {
		if m.Name == name {
			return m.Value, true
		}
	}
	return nil, false
}
