package values

import (
	"strconv"
	"strings"

	"github.com/gql-run/gitql/types"
)

// IntValue is a signed 64-bit integer.
type IntValue int64

func (v IntValue) Literal() string        { return strconv.FormatInt(int64(v), 10) }
func (v IntValue) Type() types.DataType   { return types.IntType }
func (v IntValue) Equal(o Value) bool     { f, ok := asFloat(o); return ok && float64(v) == f }
func (v IntValue) Compare(o Value) (int, bool) {
	f, ok := asFloat(o)
	if !ok {
		return 0, false
	}
	return cmpFloat(float64(v), f), true
}

// FloatValue is a 64-bit float.
type FloatValue float64

func (v FloatValue) Literal() string      { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v FloatValue) Type() types.DataType { return types.FloatType }
func (v FloatValue) Equal(o Value) bool   { f, ok := asFloat(o); return ok && float64(v) == f }
func (v FloatValue) Compare(o Value) (int, bool) {
	f, ok := asFloat(o)
	if !ok {
		return 0, false
	}
	return cmpFloat(float64(v), f), true
}

func asFloat(v Value) (float64, bool) {
	switch x := v.(type) {
	case IntValue:
		return float64(x), true
	case FloatValue:
		return float64(x), true
	}
	return 0, false
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// BoolValue is a boolean.
type BoolValue bool

func (v BoolValue) Literal() string {
	if v {
		return "true"
	}
	return "false"
}
func (v BoolValue) Type() types.DataType { return types.BoolType }
func (v BoolValue) Equal(o Value) bool {
	b, ok := o.(BoolValue)
	return ok && bool(v) == bool(b)
}
func (v BoolValue) Compare(o Value) (int, bool) {
	b, ok := o.(BoolValue)
	if !ok {
		return 0, false
	}
	if v == b {
		return 0, true
	}
	if !bool(v) && bool(b) {
		return -1, true
	}
	return 1, true
}

// TextValue is a UTF-8 string.
type TextValue string

func (v TextValue) Literal() string      { return string(v) }
func (v TextValue) Type() types.DataType { return types.TextType }
func (v TextValue) Equal(o Value) bool {
	t, ok := o.(TextValue)
	return ok && string(v) == string(t)
}
func (v TextValue) Compare(o Value) (int, bool) {
	t, ok := o.(TextValue)
	if !ok {
		return 0, false
	}
	return strings.Compare(string(v), string(t)), true
}

// StringLiteralValue implements types.StringLiteral so the type
// algebra can reason about implicit casts without importing values.
func (v TextValue) StringLiteralValue() (string, bool) { return string(v), true }

// DateValue is an epoch-seconds-at-midnight-UTC calendar date.
type DateValue int64

func (v DateValue) Literal() string      { return TimestampToDate(int64(v)) }
func (v DateValue) Type() types.DataType { return types.DateType }
func (v DateValue) Equal(o Value) bool {
	d, ok := o.(DateValue)
	return ok && v == d
}
func (v DateValue) Compare(o Value) (int, bool) {
	d, ok := o.(DateValue)
	if !ok {
		return 0, false
	}
	return cmpInt64(int64(v), int64(d)), true
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// TimeValue is a "HH:MM:SS[.mmm]" wall-clock value.
type TimeValue string

func (v TimeValue) Literal() string      { return string(v) }
func (v TimeValue) Type() types.DataType { return types.TimeType }
func (v TimeValue) Equal(o Value) bool {
	t, ok := o.(TimeValue)
	return ok && v == t
}
func (v TimeValue) Compare(o Value) (int, bool) {
	t, ok := o.(TimeValue)
	if !ok {
		return 0, false
	}
	return strings.Compare(string(v), string(t)), true
}

// DateTimeValue is epoch seconds (UTC).
type DateTimeValue int64

func (v DateTimeValue) Literal() string      { return TimestampToDateTime(int64(v)) }
func (v DateTimeValue) Type() types.DataType { return types.DateTimeType }
func (v DateTimeValue) Equal(o Value) bool {
	d, ok := o.(DateTimeValue)
	return ok && v == d
}
func (v DateTimeValue) Compare(o Value) (int, bool) {
	d, ok := o.(DateTimeValue)
	if !ok {
		return 0, false
	}
	return cmpInt64(int64(v), int64(d)), true
}

// IntervalValue wraps Interval as a Value.
type IntervalValue struct{ Interval }

func (v IntervalValue) Literal() string      { return v.Interval.String() }
func (v IntervalValue) Type() types.DataType { return types.IntervalType }
func (v IntervalValue) Equal(o Value) bool {
	w, ok := o.(IntervalValue)
	return ok && v.Interval == w.Interval
}
func (v IntervalValue) Compare(Value) (int, bool) { return 0, false }

// NullValue represents SQL NULL.
type NullValue struct{}

func (NullValue) Literal() string          { return "null" }
func (NullValue) Type() types.DataType     { return types.NullType }
func (NullValue) Equal(o Value) bool       { _, ok := o.(NullValue); return ok }
func (NullValue) Compare(Value) (int, bool) { return 0, false }

// UndefValue represents an undefined/uninitialized value (e.g. a
// global variable that was referenced before SET).
type UndefValue struct{}

func (UndefValue) Literal() string          { return "undefined" }
func (UndefValue) Type() types.DataType     { return types.UndefType }
func (UndefValue) Equal(o Value) bool       { _, ok := o.(UndefValue); return ok }
func (UndefValue) Compare(Value) (int, bool) { return 0, false }

// IsNull reports whether v is SQL NULL (used by is_null()).
func IsNull(v Value) bool { _, ok := v.(NullValue); return ok }
