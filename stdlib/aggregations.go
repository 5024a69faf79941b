package stdlib

import (
	"sort"
	"strings"

	"github.com/gql-run/gitql/types"
	"github.com/gql-run/gitql/values"
)

// registerAggregations wires count, sum, avg, min, max and
// group_concat. Every aggregation receives rows as a `[][]Value`:
// outer index is the row within the group, inner index is the
// argument position (§4.4 step 5). COUNT(*) is represented by a
// hoisted call with zero arguments, so `rows[i]` is an empty slice for
// every row and the implementation simply counts `len(rows)`. Mirrors
// original_source/crates/gitql-core/src/aggregation.rs.
func registerAggregations(r *Registry) {
	r.addAggregation("count", Signature{
		Parameters: []types.DataType{types.NewOptional(types.AnyType)},
		ReturnType: types.IntType,
	}, func(rows [][]values.Value) (values.Value, error) {
		if len(rows) == 0 || len(rows[0]) == 0 {
			return values.IntValue(len(rows)), nil
		}
		n := 0
		for _, row := range rows {
			if !values.IsNull(row[0]) {
				n++
			}
		}
		return values.IntValue(n), nil
	})

	r.addAggregation("sum", Signature{
		Parameters: []types.DataType{numericVariant},
		ReturnType: numericVariant,
	}, func(rows [][]values.Value) (values.Value, error) {
		allInt := true
		var sum float64
		for _, row := range rows {
			if values.IsNull(row[0]) {
				continue
			}
			if _, ok := row[0].(values.IntValue); !ok {
				allInt = false
			}
			sum += numArg(row[0])
		}
		if allInt {
			return values.IntValue(int64(sum)), nil
		}
		return values.FloatValue(sum), nil
	})

	r.addAggregation("avg", Signature{
		Parameters: []types.DataType{numericVariant},
		ReturnType: types.FloatType,
	}, func(rows [][]values.Value) (values.Value, error) {
		var sum float64
		n := 0
		for _, row := range rows {
			if values.IsNull(row[0]) {
				continue
			}
			sum += numArg(row[0])
			n++
		}
		if n == 0 {
			return values.NullValue{}, nil
		}
		return values.FloatValue(sum / float64(n)), nil
	})

	r.addAggregation("min", Signature{
		Parameters: []types.DataType{types.AnyType},
		ReturnType: types.NewDynamic(firstArgType),
	}, func(rows [][]values.Value) (values.Value, error) { return minMax(rows, false) })

	r.addAggregation("max", Signature{
		Parameters: []types.DataType{types.AnyType},
		ReturnType: types.NewDynamic(firstArgType),
	}, func(rows [][]values.Value) (values.Value, error) { return minMax(rows, true) })

	r.addAggregation("group_concat", Signature{
		Parameters: []types.DataType{types.TextType},
		ReturnType: types.TextType,
	}, func(rows [][]values.Value) (values.Value, error) {
		parts := make([]string, 0, len(rows))
		for _, row := range rows {
			if values.IsNull(row[0]) {
				continue
			}
			parts = append(parts, row[0].Literal())
		}
		sort.Strings(parts)
		return values.TextValue(strings.Join(parts, ",")), nil
	})
}

func minMax(rows [][]values.Value, max bool) (values.Value, error) {
	var best values.Value
	for _, row := range rows {
		v := row[0]
		if values.IsNull(v) {
			continue
		}
		if best == nil {
			best = v
			continue
		}
		order, ok := best.Compare(v)
		if !ok {
			continue
		}
		if (max && order < 0) || (!max && order > 0) {
			best = v
		}
	}
	if best == nil {
		return values.NullValue{}, nil
	}
	return best, nil
}
