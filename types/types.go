// Package types implements the GitQL type algebra: a closed set of
// DataType variants plus the capability table that decides, for each
// operator, which counterpart types are accepted and what the result
// type is. The Rust source this engine is modeled on (see
// original_source/crates/gitql-ast/src/types/*.rs) expresses this with
// dynamic dispatch over a DataType trait and downcasting; a tagged sum
// plus a single Capability function serves the same contract and is
// the idiomatic Go shape for it (spec design note on type capability
// tables).
package types

import "fmt"

// Kind enumerates the DataType variants.
type Kind int

const (
	Int Kind = iota
	Float
	Bool
	Text
	Date
	Time
	DateTime
	Interval
	Null
	Undef
	Any
	Array
	Range
	Row
	Composite
	Variant
	Optional
	Varargs
	Dynamic
)

// Field is a named member of a Composite type, kept in declaration
// order (insertion order matters for rendering and DESCRIBE).
type Field struct {
	Name string
	Type DataType
}

// Resolver computes a Dynamic type's concrete DataType from the
// resolved types of the call's arguments (e.g. first_value's return
// type equals its argument's type).
type Resolver func(args []DataType) DataType

// DataType is the sum type for every GitQL value type. Only the
// fields relevant to Kind are populated; the zero value of the
// irrelevant ones is never read.
type DataType struct {
	Kind Kind

	// Array, Range, Optional, Varargs element type.
	Of *DataType

	// Row tuple member types, in order.
	Tuple []DataType

	// Composite name and ordered fields.
	Name   string
	Fields []Field

	// Variant alternative set.
	Alternatives []DataType

	// Dynamic resolver.
	Resolve Resolver
}

func simple(k Kind) DataType { return DataType{Kind: k} }

var (
	IntType      = simple(Int)
	FloatType    = simple(Float)
	BoolType     = simple(Bool)
	TextType     = simple(Text)
	DateType     = simple(Date)
	TimeType     = simple(Time)
	DateTimeType = simple(DateTime)
	IntervalType = simple(Interval)
	NullType     = simple(Null)
	UndefType    = simple(Undef)
	AnyType      = simple(Any)
)

// NewArray builds an Array(of).
func NewArray(of DataType) DataType { return DataType{Kind: Array, Of: &of} }

// NewRange builds a Range(of).
func NewRange(of DataType) DataType { return DataType{Kind: Range, Of: &of} }

// NewRow builds a Row tuple type.
func NewRow(members ...DataType) DataType { return DataType{Kind: Row, Tuple: members} }

// NewComposite builds a named Composite type with ordered fields.
func NewComposite(name string, fields ...Field) DataType {
	return DataType{Kind: Composite, Name: name, Fields: fields}
}

// NewVariant builds a Variant over alternatives.
func NewVariant(alternatives ...DataType) DataType {
	return DataType{Kind: Variant, Alternatives: alternatives}
}

// NewOptional builds an Optional(of).
func NewOptional(of DataType) DataType { return DataType{Kind: Optional, Of: &of} }

// NewVarargs builds a Varargs(of), valid only as a trailing signature
// parameter.
func NewVarargs(of DataType) DataType { return DataType{Kind: Varargs, Of: &of} }

// NewDynamic builds a Dynamic type resolved lazily from sibling
// argument types.
func NewDynamic(resolve Resolver) DataType { return DataType{Kind: Dynamic, Resolve: resolve} }

// Literal renders the type's display name, used in diagnostics and by
// DESCRIBE/type_of().
func (t DataType) Literal() string {
	switch t.Kind {
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Bool:
		return "Boolean"
	case Text:
		return "Text"
	case Date:
		return "Date"
	case Time:
		return "Time"
	case DateTime:
		return "DateTime"
	case Interval:
		return "Interval"
	case Null:
		return "Null"
	case Undef:
		return "Undefined"
	case Any:
		return "Any"
	case Array:
		return fmt.Sprintf("Array(%s)", t.Of.Literal())
	case Range:
		return fmt.Sprintf("Range(%s)", t.Of.Literal())
	case Row:
		return "Row"
	case Composite:
		return t.Name
	case Variant:
		s := "Variant("
		for i, alt := range t.Alternatives {
			if i > 0 {
				s += "|"
			}
			s += alt.Literal()
		}
		return s + ")"
	case Optional:
		return fmt.Sprintf("Optional(%s)", t.Of.Literal())
	case Varargs:
		return fmt.Sprintf("Varargs(%s)", t.Of.Literal())
	case Dynamic:
		return "Dynamic"
	}
	return "Unknown"
}

func (t DataType) String() string { return t.Literal() }

// isVariantMatching reports whether t is a Variant with at least one
// alternative matching pred.
func isVariantMatching(t DataType, pred func(DataType) bool) bool {
	if t.Kind != Variant {
		return false
	}
	for _, alt := range t.Alternatives {
		if pred(alt) {
			return true
		}
	}
	return false
}

// Equal implements the type-equality rules from spec.md §3: reflexive,
// and Any/Variant/Optional collapse transparently (Any == T for all T;
// Variant[T1|T2] == Ti; Optional(T) == T, and Optional(T) == Null).
func Equal(a, b DataType) bool {
	if a.Kind == Any || b.Kind == Any {
		return true
	}
	if a.Kind == Variant {
		if isVariantMatching(a, func(alt DataType) bool { return Equal(alt, b) }) {
			return true
		}
	}
	if b.Kind == Variant {
		if isVariantMatching(b, func(alt DataType) bool { return Equal(alt, a) }) {
			return true
		}
	}
	if a.Kind == Optional {
		return b.Kind == Null || Equal(*a.Of, b)
	}
	if b.Kind == Optional {
		return a.Kind == Null || Equal(a, *b.Of)
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Array, Range, Varargs:
		return Equal(*a.Of, *b.Of)
	case Row:
		if len(a.Tuple) != len(b.Tuple) {
			return false
		}
		for i := range a.Tuple {
			if !Equal(a.Tuple[i], b.Tuple[i]) {
				return false
			}
		}
		return true
	case Composite:
		return a.Name == b.Name
	}
	return true
}

// IsNumeric reports whether t is Int or Float (used by the is_numeric
// stdlib function and by numeric-only operator checks).
func IsNumeric(t DataType) bool { return t.Kind == Int || t.Kind == Float }
