package stdlib

import (
	"strings"

	"github.com/gql-run/gitql/types"
	"github.com/gql-run/gitql/values"
)

func textOf(v values.Value) (string, bool) {
	t, ok := v.(values.TextValue)
	return string(t), ok
}

// registerTextFunctions wires the text category: lower, upper, trim,
// ltrim, rtrim, len, reverse, concat, left, right, ascii. Mirrors
// original_source/crates/gitql-std/src/text.rs.
func registerTextFunctions(r *Registry) {
	r.addStandard("lower", Signature{
		Parameters: []types.DataType{types.TextType},
		ReturnType: types.TextType,
	}, func(args []values.Value) (values.Value, error) {
		s, _ := textOf(args[0])
		return values.TextValue(strings.ToLower(s)), nil
	})

	r.addStandard("upper", Signature{
		Parameters: []types.DataType{types.TextType},
		ReturnType: types.TextType,
	}, func(args []values.Value) (values.Value, error) {
		s, _ := textOf(args[0])
		return values.TextValue(strings.ToUpper(s)), nil
	})

	r.addStandard("trim", Signature{
		Parameters: []types.DataType{types.TextType},
		ReturnType: types.TextType,
	}, func(args []values.Value) (values.Value, error) {
		s, _ := textOf(args[0])
		return values.TextValue(strings.TrimSpace(s)), nil
	})

	r.addStandard("ltrim", Signature{
		Parameters: []types.DataType{types.TextType},
		ReturnType: types.TextType,
	}, func(args []values.Value) (values.Value, error) {
		s, _ := textOf(args[0])
		return values.TextValue(strings.TrimLeft(s, " \t\n\r")), nil
	})

	r.addStandard("rtrim", Signature{
		Parameters: []types.DataType{types.TextType},
		ReturnType: types.TextType,
	}, func(args []values.Value) (values.Value, error) {
		s, _ := textOf(args[0])
		return values.TextValue(strings.TrimRight(s, " \t\n\r")), nil
	})

	r.addStandard("len", Signature{
		Parameters: []types.DataType{types.TextType},
		ReturnType: types.IntType,
	}, func(args []values.Value) (values.Value, error) {
		s, _ := textOf(args[0])
		return values.IntValue(len([]rune(s))), nil
	})

	r.addStandard("length", Signature{
		Parameters: []types.DataType{types.TextType},
		ReturnType: types.IntType,
	}, func(args []values.Value) (values.Value, error) {
		s, _ := textOf(args[0])
		return values.IntValue(len([]rune(s))), nil
	})

	r.addStandard("reverse", Signature{
		Parameters: []types.DataType{types.TextType},
		ReturnType: types.TextType,
	}, func(args []values.Value) (values.Value, error) {
		s, _ := textOf(args[0])
		runes := []rune(s)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return values.TextValue(string(runes)), nil
	})

	r.addStandard("concat", Signature{
		Parameters: []types.DataType{types.NewVarargs(types.TextType)},
		ReturnType: types.TextType,
	}, func(args []values.Value) (values.Value, error) {
		var b strings.Builder
		for _, a := range args {
			s, _ := textOf(a)
			b.WriteString(s)
		}
		return values.TextValue(b.String()), nil
	})

	r.addStandard("left", Signature{
		Parameters: []types.DataType{types.TextType, types.IntType},
		ReturnType: types.TextType,
	}, func(args []values.Value) (values.Value, error) {
		s, _ := textOf(args[0])
		n, _ := args[1].(values.IntValue)
		runes := []rune(s)
		if int(n) < 0 {
			n = 0
		}
		if int(n) > len(runes) {
			n = values.IntValue(len(runes))
		}
		return values.TextValue(string(runes[:n])), nil
	})

	r.addStandard("right", Signature{
		Parameters: []types.DataType{types.TextType, types.IntType},
		ReturnType: types.TextType,
	}, func(args []values.Value) (values.Value, error) {
		s, _ := textOf(args[0])
		n, _ := args[1].(values.IntValue)
		runes := []rune(s)
		if int(n) < 0 {
			n = 0
		}
		if int(n) > len(runes) {
			n = values.IntValue(len(runes))
		}
		return values.TextValue(string(runes[len(runes)-int(n):])), nil
	})

	r.addStandard("ascii", Signature{
		Parameters: []types.DataType{types.TextType},
		ReturnType: types.IntType,
	}, func(args []values.Value) (values.Value, error) {
		s, _ := textOf(args[0])
		if s == "" {
			return values.IntValue(0), nil
		}
		return values.IntValue([]rune(s)[0]), nil
	})
}
