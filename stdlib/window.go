package stdlib

import (
	"github.com/gql-run/gitql/types"
	"github.com/gql-run/gitql/values"
)

// registerWindowFunctions wires row_number, rank, dense_rank, lag,
// lead, first_value, last_value and ntile -- the member list
// SPEC_FULL.md adopts in full from
// original_source/crates/gitql-std/src/window.rs, since spec.md names
// only the "aggregation + window runtime" category, not its members.
// Every implementation assumes the executor already ordered the
// partition's rows per the OVER clause's ORDER BY (§4.4 step 6).
func registerWindowFunctions(r *Registry) {
	r.addWindow("row_number", Signature{
		Parameters: nil,
		ReturnType: types.IntType,
	}, func(rows [][]values.Value, index int) (values.Value, error) {
		return values.IntValue(index + 1), nil
	})

	r.addWindow("rank", Signature{
		Parameters: []types.DataType{types.NewVarargs(types.AnyType)},
		ReturnType: types.IntType,
	}, func(rows [][]values.Value, index int) (values.Value, error) {
		rank := 1
		for i := 0; i < index; i++ {
			if !rowArgsEqual(rows[i], rows[i+1]) {
				rank = i + 2
			}
		}
		return values.IntValue(rank), nil
	})

	r.addWindow("dense_rank", Signature{
		Parameters: []types.DataType{types.NewVarargs(types.AnyType)},
		ReturnType: types.IntType,
	}, func(rows [][]values.Value, index int) (values.Value, error) {
		rank := 1
		for i := 1; i <= index; i++ {
			if !rowArgsEqual(rows[i-1], rows[i]) {
				rank++
			}
		}
		return values.IntValue(rank), nil
	})

	r.addWindow("lag", Signature{
		Parameters: []types.DataType{types.AnyType},
		ReturnType: types.NewDynamic(firstArgType),
	}, func(rows [][]values.Value, index int) (values.Value, error) {
		if index == 0 {
			return values.NullValue{}, nil
		}
		return rows[index-1][0], nil
	})

	r.addWindow("lead", Signature{
		Parameters: []types.DataType{types.AnyType},
		ReturnType: types.NewDynamic(firstArgType),
	}, func(rows [][]values.Value, index int) (values.Value, error) {
		if index+1 >= len(rows) {
			return values.NullValue{}, nil
		}
		return rows[index+1][0], nil
	})

	r.addWindow("first_value", Signature{
		Parameters: []types.DataType{types.AnyType},
		ReturnType: types.NewDynamic(firstArgType),
	}, func(rows [][]values.Value, index int) (values.Value, error) {
		if len(rows) == 0 {
			return values.NullValue{}, nil
		}
		return rows[0][0], nil
	})

	r.addWindow("last_value", Signature{
		Parameters: []types.DataType{types.AnyType},
		ReturnType: types.NewDynamic(firstArgType),
	}, func(rows [][]values.Value, index int) (values.Value, error) {
		if len(rows) == 0 {
			return values.NullValue{}, nil
		}
		return rows[len(rows)-1][0], nil
	})

	r.addWindow("ntile", Signature{
		Parameters: []types.DataType{types.IntType},
		ReturnType: types.IntType,
	}, func(rows [][]values.Value, index int) (values.Value, error) {
		n, ok := rows[index][0].(values.IntValue)
		if !ok || n <= 0 {
			return nil, opErrf("ntile requires a positive integer bucket count")
		}
		buckets := int64(n)
		total := int64(len(rows))
		bucketSize := total / buckets
		remainder := total % buckets
		pos := int64(index)
		var bucket int64
		for b := int64(0); b < buckets; b++ {
			size := bucketSize
			if b < remainder {
				size++
			}
			if pos < size {
				bucket = b
				break
			}
			pos -= size
		}
		return values.IntValue(bucket + 1), nil
	})
}

// rowArgsEqual compares two rows' per-argument values for rank/dense_rank
// tie detection.
func rowArgsEqual(a, b []values.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
