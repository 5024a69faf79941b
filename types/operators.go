package types

// Operator enumerates every binary/unary operator node the parser can
// build; the capability table answers, for a left type and an
// operator, which right-hand types are accepted and what the result
// type is.
type Operator int

const (
	OpNeg Operator = iota
	OpBang

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod

	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr

	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte

	OpGroupEq
	OpGroupNeq
	OpGroupLt
	OpGroupLte
	OpGroupGt
	OpGroupGte

	OpAnd
	OpOr
	OpXor

	OpLike
	OpGlob
	OpRegexp

	OpIndex
	OpSlice
	OpContains
)

// Capability answers whether `other` is an accepted right-hand operand
// for `op` against the receiver type, and if so what the result type
// is.
type Capability struct {
	Accepts func(other DataType) bool
	Result  func(other DataType) DataType
}

func numeric() Capability {
	return Capability{
		Accepts: func(o DataType) bool { return IsNumeric(o) },
		Result:  func(o DataType) DataType { return o },
	}
}

func same(self DataType) Capability {
	return Capability{
		Accepts: func(o DataType) bool { return Equal(self, o) },
		Result:  func(DataType) DataType { return self },
	}
}

func comparisonWith(accept func(DataType) bool) Capability {
	return Capability{Accepts: accept, Result: func(DataType) DataType { return BoolType }}
}

func groupOf(base Capability) Capability {
	return Capability{
		Accepts: func(o DataType) bool {
			return o.Kind == Array && base.Accepts(*o.Of)
		},
		Result: func(DataType) DataType { return BoolType },
	}
}

func none() Capability {
	return Capability{Accepts: func(DataType) bool { return false }, Result: func(DataType) DataType { return UndefType }}
}

// CanPerformUnary reports whether t supports the unary op (OpNeg or
// OpBang) and, if so, its result type.
func CanPerformUnary(t DataType, op Operator) (DataType, bool) {
	switch op {
	case OpBang:
		if t.Kind == Bool {
			return BoolType, true
		}
	case OpNeg:
		if IsNumeric(t) {
			return t, true
		}
	}
	return DataType{}, false
}

// Ops returns the capability of t for op. Every DataType kind answers
// through this single switch rather than through per-kind method sets,
// matching the "tagged sum + central function" shape the spec's design
// notes call out as the idiomatic Go equivalent of the source's trait
// dispatch.
func Ops(t DataType, op Operator) Capability {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod:
		if IsNumeric(t) {
			return numeric()
		}
		if t.Kind == Interval && (op == OpAdd || op == OpSub) {
			return same(t)
		}
		if t.Kind == Text && op == OpAdd {
			return same(TextType)
		}
		return none()
	case OpBitAnd, OpBitOr, OpBitXor, OpShl, OpShr:
		if t.Kind == Int {
			return Capability{
				Accepts: func(o DataType) bool { return o.Kind == Int },
				Result:  func(DataType) DataType { return IntType },
			}
		}
		return none()
	case OpEq, OpNeq:
		c := comparisonWith(func(o DataType) bool { return Equal(t, o) })
		return c
	case OpGroupEq, OpGroupNeq:
		return groupOf(comparisonWith(func(o DataType) bool { return Equal(t, o) }))
	case OpLt, OpLte, OpGt, OpGte:
		if t.Kind == Text || t.Kind == Array || t.Kind == Row || t.Kind == Composite {
			return none()
		}
		return comparisonWith(func(o DataType) bool { return Equal(t, o) })
	case OpGroupLt, OpGroupLte, OpGroupGt, OpGroupGte:
		if t.Kind == Text || t.Kind == Array || t.Kind == Row || t.Kind == Composite {
			return none()
		}
		return groupOf(comparisonWith(func(o DataType) bool { return Equal(t, o) }))
	case OpAnd, OpOr, OpXor:
		if t.Kind == Bool {
			return Capability{
				Accepts: func(o DataType) bool { return o.Kind == Bool },
				Result:  func(DataType) DataType { return BoolType },
			}
		}
		return none()
	case OpLike, OpGlob, OpRegexp:
		if t.Kind == Text {
			return comparisonWith(func(o DataType) bool { return o.Kind == Text })
		}
		return none()
	case OpIndex:
		if t.Kind == Array {
			return Capability{
				Accepts: func(o DataType) bool { return o.Kind == Int },
				Result:  func(DataType) DataType { return *t.Of },
			}
		}
		if t.Kind == Row {
			return Capability{
				Accepts: func(o DataType) bool { return o.Kind == Int },
				Result:  func(DataType) DataType { return AnyType },
			}
		}
		return none()
	case OpSlice:
		if t.Kind == Array {
			return Capability{
				Accepts: func(o DataType) bool { return o.Kind == Int },
				Result:  func(DataType) DataType { return t },
			}
		}
		return none()
	case OpContains:
		if t.Kind == Array {
			return Capability{
				Accepts: func(o DataType) bool { return Equal(*t.Of, o) },
				Result:  func(DataType) DataType { return BoolType },
			}
		}
		if t.Kind == Range {
			return Capability{
				Accepts: func(o DataType) bool { return Equal(*t.Of, o) },
				Result:  func(DataType) DataType { return BoolType },
			}
		}
		return none()
	}
	return none()
}

// CanPerformExplicitCastTo reports whether t can be the CAST(... AS t)
// target for a value already typed `from`. The accepted pairs follow
// original_source/crates/gitql-ast/src/types/{integer,float,boolean,
// datetime}.rs's `can_perform_explicit_cast_op_to` tables: Int
// accepts Float or Bool, Float accepts Int, Bool accepts Int or Text,
// Date accepts DateTime or Text, DateTime accepts Date or Int, and Text
// accepts every type. Text is not a direct source for Int/Float/
// DateTime in that table -- a string only reaches them through the
// implicit-cast intermediate search in buildCast (parser/expression.go).
func CanPerformExplicitCastTo(t DataType, from DataType) bool {
	if Equal(t, from) {
		return true
	}
	switch t.Kind {
	case Int:
		return from.Kind == Float || from.Kind == Bool
	case Float:
		return from.Kind == Int
	case Bool:
		return from.Kind == Int || from.Kind == Text
	case Text:
		return true // every type renders a literal (Value.Literal()).
	case Date:
		return from.Kind == DateTime || from.Kind == Text
	case DateTime:
		return from.Kind == Date || from.Kind == Int
	}
	return false
}

// ExplicitCastIntermediates returns the types that can cast directly
// to t (the reverse of CanPerformExplicitCastTo), used to search for a
// two-step CAST path: value -> intermediate -> t (spec.md §4.3
// "Explicit cast"; original_source/crates/gitql-parser/src/parse_cast.rs's
// check_cast_expression).
func ExplicitCastIntermediates(t DataType) []DataType {
	switch t.Kind {
	case Int:
		return []DataType{FloatType, BoolType}
	case Float:
		return []DataType{IntType}
	case Bool:
		return []DataType{IntType}
	case Date:
		return []DataType{DateTimeType}
	case DateTime:
		return []DataType{DateType, IntType}
	}
	return nil
}

// StringLiteral is implemented by ast string-literal expression nodes
// so the type algebra can ask about implicit casts without importing
// the ast package (which itself depends on types).
type StringLiteral interface {
	StringLiteralValue() (string, bool)
}

var implicitBoolLiterals = map[string]bool{
	"t": true, "true": true, "y": true, "yes": true, "1": true,
	"f": true, "false": true, "n": true, "no": true, "0": true,
}

// HasImplicitCastFrom reports whether a value of type t can be
// produced implicitly from expr without an explicit CAST, e.g. Bool
// accepting the string literals enumerated in spec.md §4.3.
func HasImplicitCastFrom(t DataType, expr StringLiteral) bool {
	lit, ok := expr.StringLiteralValue()
	if !ok {
		return false
	}
	switch t.Kind {
	case Bool:
		return implicitBoolLiterals[lit]
	case Date, Time, DateTime:
		return true // any string literal is attempted against the date/time parser at eval time.
	}
	return false
}
