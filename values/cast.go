package values

import (
	"strconv"

	"github.com/gql-run/gitql/types"
)

// Cast performs the runtime conversion underlying CAST(expr AS target),
// assuming types.CanPerformExplicitCastTo(target.Type(), v.Type()) has
// already authorized the pair during type checking.
func Cast(v Value, target types.DataType) (Value, error) {
	if types.Equal(v.Type(), target) {
		return v, nil
	}
	switch target.Kind {
	case types.Int:
		switch x := v.(type) {
		case FloatValue:
			return IntValue(int64(x)), nil
		case BoolValue:
			if x {
				return IntValue(1), nil
			}
			return IntValue(0), nil
		case TextValue:
			n, err := strconv.ParseInt(string(x), 10, 64)
			if err != nil {
				return nil, opErr("cannot cast %q to INT", string(x))
			}
			return IntValue(n), nil
		}
	case types.Float:
		switch x := v.(type) {
		case IntValue:
			return FloatValue(x), nil
		case TextValue:
			f, err := strconv.ParseFloat(string(x), 64)
			if err != nil {
				return nil, opErr("cannot cast %q to FLOAT", string(x))
			}
			return FloatValue(f), nil
		}
	case types.Bool:
		switch x := v.(type) {
		case IntValue:
			return BoolValue(x != 0), nil
		case TextValue:
			if b, ok := implicitBoolLiterals[string(x)]; ok {
				return BoolValue(b), nil
			}
			return nil, opErr("cannot cast %q to BOOL", string(x))
		}
	case types.Text:
		return TextValue(v.Literal()), nil
	case types.Date:
		switch x := v.(type) {
		case DateTimeValue:
			return DateValue(startOfDay(int64(x))), nil
		case TextValue:
			ts, ok := ParseDate(string(x))
			if !ok {
				return nil, opErr("cannot cast %q to DATE", string(x))
			}
			return DateValue(ts), nil
		}
	case types.DateTime:
		switch x := v.(type) {
		case DateValue:
			return DateTimeValue(x), nil
		case IntValue:
			return DateTimeValue(x), nil
		case TextValue:
			ts, ok := ParseDateTime(string(x))
			if !ok {
				return nil, opErr("cannot cast %q to DATETIME", string(x))
			}
			return DateTimeValue(ts), nil
		}
	}
	return nil, opErr("cannot cast a value of type %s to %s", v.Type().Literal(), target.Literal())
}

func startOfDay(ts int64) int64 { return ts - (ts % 86400) }

// implicitBoolLiterals has the same spellings as
// types.implicitBoolLiterals, each mapped to the boolean it denotes;
// duplicated here (rather than exported from types) to keep the
// type-checking algebra's table private to its own package.
var implicitBoolLiterals = map[string]bool{
	"t": true, "true": true, "y": true, "yes": true, "1": true,
	"f": false, "false": false, "n": false, "no": false, "0": false,
}
