package stdlib

import (
	"math"

	"github.com/gql-run/gitql/types"
	"github.com/gql-run/gitql/values"
)

func numArg(v values.Value) float64 {
	switch x := v.(type) {
	case values.IntValue:
		return float64(x)
	case values.FloatValue:
		return float64(x)
	}
	return 0
}

var numericVariant = types.NewVariant(types.IntType, types.FloatType)

// registerNumberFunctions wires the number category: abs, sqrt, pow,
// floor, ceiling, round, sign, pi. Mirrors
// original_source/crates/gitql-std/src/number.rs.
func registerNumberFunctions(r *Registry) {
	r.addStandard("abs", Signature{
		Parameters: []types.DataType{numericVariant},
		ReturnType: numericVariant,
	}, func(args []values.Value) (values.Value, error) {
		if iv, ok := args[0].(values.IntValue); ok {
			if iv < 0 {
				return -iv, nil
			}
			return iv, nil
		}
		return values.FloatValue(math.Abs(numArg(args[0]))), nil
	})

	r.addStandard("sqrt", Signature{
		Parameters: []types.DataType{numericVariant},
		ReturnType: types.FloatType,
	}, func(args []values.Value) (values.Value, error) {
		return values.FloatValue(math.Sqrt(numArg(args[0]))), nil
	})

	r.addStandard("pow", Signature{
		Parameters: []types.DataType{numericVariant, numericVariant},
		ReturnType: types.FloatType,
	}, func(args []values.Value) (values.Value, error) {
		return values.FloatValue(math.Pow(numArg(args[0]), numArg(args[1]))), nil
	})

	r.addStandard("floor", Signature{
		Parameters: []types.DataType{numericVariant},
		ReturnType: types.IntType,
	}, func(args []values.Value) (values.Value, error) {
		return values.IntValue(int64(math.Floor(numArg(args[0])))), nil
	})

	r.addStandard("ceiling", Signature{
		Parameters: []types.DataType{numericVariant},
		ReturnType: types.IntType,
	}, func(args []values.Value) (values.Value, error) {
		return values.IntValue(int64(math.Ceil(numArg(args[0])))), nil
	})

	r.addStandard("round", Signature{
		Parameters: []types.DataType{numericVariant},
		ReturnType: types.IntType,
	}, func(args []values.Value) (values.Value, error) {
		return values.IntValue(int64(math.Round(numArg(args[0])))), nil
	})

	r.addStandard("sign", Signature{
		Parameters: []types.DataType{numericVariant},
		ReturnType: types.IntType,
	}, func(args []values.Value) (values.Value, error) {
		n := numArg(args[0])
		switch {
		case n > 0:
			return values.IntValue(1), nil
		case n < 0:
			return values.IntValue(-1), nil
		default:
			return values.IntValue(0), nil
		}
	})

	r.addStandard("pi", Signature{
		Parameters: nil,
		ReturnType: types.FloatType,
	}, func(args []values.Value) (values.Value, error) {
		return values.FloatValue(math.Pi), nil
	})
}
