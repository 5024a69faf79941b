package values

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gql-run/gitql/types"
)

// OpError is returned by the operator implementations below; it
// carries only a textual reason, per spec.md §7: the caller (the
// executor) attaches the expression's source location when wrapping.
type OpError struct{ Reason string }

func (e *OpError) Error() string { return e.Reason }

func opErr(format string, args ...any) error { return &OpError{Reason: fmt.Sprintf(format, args...)} }

// Neg implements unary minus.
func Neg(v Value) (Value, error) {
	switch x := v.(type) {
	case IntValue:
		return -x, nil
	case FloatValue:
		return -x, nil
	}
	return nil, opErr("cannot negate a value of type %s", v.Type().Literal())
}

// Bang implements unary logical not.
func Bang(v Value) (Value, error) {
	b, ok := v.(BoolValue)
	if !ok {
		return nil, opErr("cannot apply ! to a value of type %s", v.Type().Literal())
	}
	return !b, nil
}

// Arith implements +, -, *, /, % over numbers, text concatenation via
// +, and field-wise interval addition/subtraction.
func Arith(op types.Operator, l, r Value) (Value, error) {
	if li, liok := l.(IntervalValue); liok {
		ri, riok := r.(IntervalValue)
		if !riok {
			return nil, opErr("interval arithmetic requires another interval")
		}
		switch op {
		case types.OpAdd:
			return IntervalValue{li.Add(ri.Interval)}, nil
		case types.OpSub:
			return IntervalValue{li.Sub(ri.Interval)}, nil
		}
		return nil, opErr("unsupported interval operator")
	}

	if op == types.OpAdd {
		if lt, ok := l.(TextValue); ok {
			if rt, ok := r.(TextValue); ok {
				return lt + rt, nil
			}
		}
	}

	lf, lok := asFloat(l)
	rf, rok := asFloat(r)
	if !lok || !rok {
		return nil, opErr("arithmetic requires numeric operands, got %s and %s", l.Type().Literal(), r.Type().Literal())
	}
	_, bothInt := l.(IntValue)
	if bothInt {
		_, bothInt = r.(IntValue)
	}

	var result float64
	switch op {
	case types.OpAdd:
		result = lf + rf
	case types.OpSub:
		result = lf - rf
	case types.OpMul:
		result = lf * rf
	case types.OpDiv:
		if rf == 0 {
			return nil, opErr("division by zero")
		}
		result = lf / rf
	case types.OpMod:
		if rf == 0 {
			return nil, opErr("division by zero")
		}
		result = float64(int64(lf) % int64(rf))
	default:
		return nil, opErr("unsupported arithmetic operator")
	}

	if bothInt && op != types.OpDiv {
		return IntValue(int64(result)), nil
	}
	return FloatValue(result), nil
}

// Bitwise implements &, |, ^, <<, >> over integers.
func Bitwise(op types.Operator, l, r Value) (Value, error) {
	li, lok := l.(IntValue)
	ri, rok := r.(IntValue)
	if !lok || !rok {
		return nil, opErr("bitwise operators require integer operands")
	}
	switch op {
	case types.OpBitAnd:
		return li & ri, nil
	case types.OpBitOr:
		return li | ri, nil
	case types.OpBitXor:
		return li ^ ri, nil
	case types.OpShl:
		return li << uint(ri), nil
	case types.OpShr:
		return li >> uint(ri), nil
	}
	return nil, opErr("unsupported bitwise operator")
}

// Compare implements =, !=, <, <=, >, >=, <=> (null-safe equal).
func Compare(op types.Operator, l, r Value) (Value, error) {
	if op == types.OpEq || op == types.OpNeq {
		eq := l.Equal(r)
		if op == types.OpNeq {
			return BoolValue(!eq), nil
		}
		return BoolValue(eq), nil
	}
	order, ok := l.Compare(r)
	if !ok {
		return nil, opErr("values of type %s and %s are not comparable", l.Type().Literal(), r.Type().Literal())
	}
	switch op {
	case types.OpLt:
		return BoolValue(order < 0), nil
	case types.OpLte:
		return BoolValue(order <= 0), nil
	case types.OpGt:
		return BoolValue(order > 0), nil
	case types.OpGte:
		return BoolValue(order >= 0), nil
	}
	return nil, opErr("unsupported comparison operator")
}

// NullSafeEqual implements <=> : unlike =, NULL <=> NULL is true and
// NULL <=> anything-else is false, instead of propagating NULL.
func NullSafeEqual(l, r Value) Value {
	ln, rn := IsNull(l), IsNull(r)
	if ln || rn {
		return BoolValue(ln && rn)
	}
	return BoolValue(l.Equal(r))
}

// GroupCompare implements `scalar OP ANY(array)` / `scalar OP ALL(array)`.
func GroupCompare(op types.Operator, scalar Value, arr ArrayValue, all bool) (Value, error) {
	if len(arr.Values) == 0 {
		return BoolValue(all), nil
	}
	scalarOp := groupToScalar(op)
	for _, elem := range arr.Values {
		res, err := evalComparisonLike(scalarOp, scalar, elem)
		if err != nil {
			return nil, err
		}
		b := bool(res.(BoolValue))
		if all && !b {
			return BoolValue(false), nil
		}
		if !all && b {
			return BoolValue(true), nil
		}
	}
	return BoolValue(all), nil
}

func groupToScalar(op types.Operator) types.Operator {
	switch op {
	case types.OpGroupEq:
		return types.OpEq
	case types.OpGroupNeq:
		return types.OpNeq
	case types.OpGroupLt:
		return types.OpLt
	case types.OpGroupLte:
		return types.OpLte
	case types.OpGroupGt:
		return types.OpGt
	case types.OpGroupGte:
		return types.OpGte
	}
	return op
}

func evalComparisonLike(op types.Operator, l, r Value) (Value, error) { return Compare(op, l, r) }

// Logical implements AND, OR, XOR with short-circuit semantics left to
// the caller (the expression evaluator); this function evaluates both
// sides are already available.
func Logical(op types.Operator, l, r Value) (Value, error) {
	lb, lok := l.(BoolValue)
	rb, rok := r.(BoolValue)
	if !lok || !rok {
		return nil, opErr("logical operators require boolean operands")
	}
	switch op {
	case types.OpAnd:
		return lb && rb, nil
	case types.OpOr:
		return lb || rb, nil
	case types.OpXor:
		return BoolValue(lb != rb), nil
	}
	return nil, opErr("unsupported logical operator")
}

// Like implements SQL LIKE: `%` matches any run of characters, `_`
// matches exactly one.
func Like(text, pattern string) bool {
	return globMatch(text, likeToGlob(pattern), '%', '_')
}

func likeToGlob(pattern string) string {
	var b strings.Builder
	for _, r := range pattern {
		switch r {
		case '%', '_', '*', '?', '\\':
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Glob implements SQL GLOB: `*` matches any run of characters, `?`
// matches exactly one.
func Glob(text, pattern string) bool {
	return globMatch(text, pattern, '*', '?')
}

// globMatch is a classic recursive glob matcher parameterized over the
// any-run and single-char wildcard runes so LIKE and GLOB share it.
func globMatch(text, pattern string, anyRune, oneRune rune) bool {
	t, p := []rune(text), []rune(pattern)
	return globMatchRunes(t, p, anyRune, oneRune)
}

func globMatchRunes(t, p []rune, anyRune, oneRune rune) bool {
	if len(p) == 0 {
		return len(t) == 0
	}
	if p[0] == anyRune {
		for i := 0; i <= len(t); i++ {
			if globMatchRunes(t[i:], p[1:], anyRune, oneRune) {
				return true
			}
		}
		return false
	}
	if len(t) == 0 {
		return false
	}
	if p[0] == oneRune || p[0] == t[0] {
		return globMatchRunes(t[1:], p[1:], anyRune, oneRune)
	}
	return false
}

// Regexp implements REGEXP using Go's standard regexp package, the
// idiomatic choice in the ecosystem in place of the source's `regex`
// crate (see original_source's regex_utils.rs).
func Regexp(text, pattern string) (bool, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, opErr("invalid regular expression %q: %v", pattern, err)
	}
	return re.MatchString(text), nil
}

// Index implements `array[i]`.
func Index(v Value, idx int64) (Value, error) {
	switch x := v.(type) {
	case ArrayValue:
		if idx < 0 || int(idx) >= len(x.Values) {
			return nil, opErr("index %d out of range for array of length %d", idx, len(x.Values))
		}
		return x.Values[idx], nil
	case RowValue:
		if idx < 0 || int(idx) >= len(x.Values) {
			return nil, opErr("index %d out of range for row of length %d", idx, len(x.Values))
		}
		return x.Values[idx], nil
	}
	return nil, opErr("cannot index a value of type %s", v.Type().Literal())
}

// Slice implements `array[lo:hi]`.
func Slice(v Value, lo, hi int64) (Value, error) {
	arr, ok := v.(ArrayValue)
	if !ok {
		return nil, opErr("cannot slice a value of type %s", v.Type().Literal())
	}
	if lo < 0 || hi > int64(len(arr.Values)) || lo > hi {
		return nil, opErr("slice [%d:%d] out of range for array of length %d", lo, hi, len(arr.Values))
	}
	return ArrayValue{Of: arr.Of, Values: append([]Value(nil), arr.Values[lo:hi]...)}, nil
}

// Contains implements the `@>` array/range containment operator.
func Contains(v Value, needle Value) (Value, error) {
	switch x := v.(type) {
	case ArrayValue:
		return BoolValue(x.Contains(needle)), nil
	case RangeValue:
		return BoolValue(x.Contains(needle)), nil
	}
	return nil, opErr("cannot apply @> to a value of type %s", v.Type().Literal())
}
