package stdlib

import (
	"github.com/google/uuid"

	"github.com/gql-run/gitql/types"
	"github.com/gql-run/gitql/values"
)

// firstArgType is a Dynamic resolver used by greatest/least: the
// result type is whatever the (homogeneous) argument list resolved
// to, mirroring first_value's return-type shape (§9 design notes,
// "Dynamic return types").
func firstArgType(args []types.DataType) types.DataType {
	if len(args) == 0 {
		return types.AnyType
	}
	return args[0]
}

// registerGeneralFunctions wires the general category: type_of,
// is_null, is_numeric, greatest, least, uuid. Mirrors
// original_source/crates/gitql-std/src/general/mod.rs.
func registerGeneralFunctions(r *Registry) {
	r.addStandard("type_of", Signature{
		Parameters: []types.DataType{types.AnyType},
		ReturnType: types.TextType,
	}, func(args []values.Value) (values.Value, error) {
		return values.TextValue(args[0].Type().Literal()), nil
	})

	r.addStandard("is_null", Signature{
		Parameters: []types.DataType{types.AnyType},
		ReturnType: types.BoolType,
	}, func(args []values.Value) (values.Value, error) {
		return values.BoolValue(values.IsNull(args[0])), nil
	})

	r.addStandard("is_numeric", Signature{
		Parameters: []types.DataType{types.AnyType},
		ReturnType: types.BoolType,
	}, func(args []values.Value) (values.Value, error) {
		return values.BoolValue(types.IsNumeric(args[0].Type())), nil
	})

	r.addStandard("greatest", Signature{
		Parameters: []types.DataType{types.NewVarargs(types.AnyType)},
		ReturnType: types.NewDynamic(firstArgType),
	}, func(args []values.Value) (values.Value, error) {
		return extremum(args, true)
	})

	r.addStandard("least", Signature{
		Parameters: []types.DataType{types.NewVarargs(types.AnyType)},
		ReturnType: types.NewDynamic(firstArgType),
	}, func(args []values.Value) (values.Value, error) {
		return extremum(args, false)
	})

	r.addStandard("uuid", Signature{
		Parameters: nil,
		ReturnType: types.TextType,
	}, func(args []values.Value) (values.Value, error) {
		return values.TextValue(uuid.NewString()), nil
	})
}

func extremum(args []values.Value, greatest bool) (values.Value, error) {
	if len(args) == 0 {
		return values.NullValue{}, nil
	}
	best := args[0]
	for _, a := range args[1:] {
		order, ok := best.Compare(a)
		if !ok {
			return nil, opErrf("greatest/least requires mutually comparable arguments")
		}
		if (greatest && order < 0) || (!greatest && order > 0) {
			best = a
		}
	}
	return best, nil
}
