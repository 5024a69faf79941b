package stdlib

import (
	"github.com/gql-run/gitql/types"
	"github.com/gql-run/gitql/values"
)

var anyArray = types.NewArray(types.AnyType)

// registerArrayFunctions wires the array category: array_length,
// array_position, array_append, array_distinct. Mirrors
// original_source/crates/gitql-std/src/array.rs.
func registerArrayFunctions(r *Registry) {
	r.addStandard("array_length", Signature{
		Parameters: []types.DataType{anyArray},
		ReturnType: types.IntType,
	}, func(args []values.Value) (values.Value, error) {
		arr, ok := args[0].(values.ArrayValue)
		if !ok {
			return nil, opErrf("array_length expects an array argument")
		}
		return values.IntValue(len(arr.Values)), nil
	})

	r.addStandard("array_position", Signature{
		Parameters: []types.DataType{anyArray, types.AnyType},
		ReturnType: types.IntType,
	}, func(args []values.Value) (values.Value, error) {
		arr, ok := args[0].(values.ArrayValue)
		if !ok {
			return nil, opErrf("array_position expects an array argument")
		}
		for i, e := range arr.Values {
			if e.Equal(args[1]) {
				return values.IntValue(i + 1), nil
			}
		}
		return values.NullValue{}, nil
	})

	r.addStandard("array_append", Signature{
		Parameters: []types.DataType{anyArray, types.AnyType},
		ReturnType: anyArray,
	}, func(args []values.Value) (values.Value, error) {
		arr, ok := args[0].(values.ArrayValue)
		if !ok {
			return nil, opErrf("array_append expects an array argument")
		}
		extended := append(append([]values.Value(nil), arr.Values...), args[1])
		return values.ArrayValue{Of: arr.Of, Values: extended}, nil
	})

	r.addStandard("array_distinct", Signature{
		Parameters: []types.DataType{anyArray},
		ReturnType: anyArray,
	}, func(args []values.Value) (values.Value, error) {
		arr, ok := args[0].(values.ArrayValue)
		if !ok {
			return nil, opErrf("array_distinct expects an array argument")
		}
		var out []values.Value
		for _, e := range arr.Values {
			dup := false
			for _, seen := range out {
				if seen.Equal(e) {
					dup = true
					break
				}
			}
			if !dup {
				out = append(out, e)
			}
		}
		return values.ArrayValue{Of: arr.Of, Values: out}, nil
	})
}
