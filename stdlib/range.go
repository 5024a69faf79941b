package stdlib

import (
	"github.com/gql-run/gitql/types"
	"github.com/gql-run/gitql/values"
)

// registerRangeFunctions wires the range category: int4range, int8range
// constructors and the range_contains membership check (the `@>`
// operator covers the infix form; these are the call-style
// constructors). Mirrors
// original_source/crates/gitql-std/src/range.rs.
func registerRangeFunctions(r *Registry) {
	r.addStandard("int4range", Signature{
		Parameters: []types.DataType{types.IntType, types.IntType},
		ReturnType: types.NewRange(types.IntType),
	}, func(args []values.Value) (values.Value, error) {
		return values.RangeValue{Of: types.IntType, Lo: args[0], Hi: args[1]}, nil
	})

	r.addStandard("int8range", Signature{
		Parameters: []types.DataType{types.IntType, types.IntType},
		ReturnType: types.NewRange(types.IntType),
	}, func(args []values.Value) (values.Value, error) {
		return values.RangeValue{Of: types.IntType, Lo: args[0], Hi: args[1]}, nil
	})

	r.addStandard("daterange", Signature{
		Parameters: []types.DataType{types.DateType, types.DateType},
		ReturnType: types.NewRange(types.DateType),
	}, func(args []values.Value) (values.Value, error) {
		return values.RangeValue{Of: types.DateType, Lo: args[0], Hi: args[1]}, nil
	})

	r.addStandard("range_contains", Signature{
		Parameters: []types.DataType{types.NewRange(types.AnyType), types.AnyType},
		ReturnType: types.BoolType,
	}, func(args []values.Value) (values.Value, error) {
		rg, ok := args[0].(values.RangeValue)
		if !ok {
			return nil, opErrf("range_contains expects a range argument")
		}
		return values.BoolValue(rg.Contains(args[1])), nil
	})
}
