package stdlib

import (
	"regexp"
	"strings"

	"github.com/gql-run/gitql/types"
	"github.com/gql-run/gitql/values"
)

// registerRegexFunctions wires the function-call forms (as opposed to
// the LIKE/GLOB/REGEXP operator forms the parser builds as PatternExpr
// nodes) named in spec.md §4.5 "regex": instr, like, glob,
// regexp_replace, substr. Mirrors
// original_source/crates/gitql-std/src/regex.rs.
func registerRegexFunctions(r *Registry) {
	r.addStandard("instr", Signature{
		Parameters: []types.DataType{types.TextType, types.TextType},
		ReturnType: types.IntType,
	}, func(args []values.Value) (values.Value, error) {
		s, _ := textOf(args[0])
		needle, _ := textOf(args[1])
		idx := strings.Index(s, needle)
		return values.IntValue(idx + 1), nil // 1-based, 0 means not found.
	})

	r.addStandard("like", Signature{
		Parameters: []types.DataType{types.TextType, types.TextType},
		ReturnType: types.BoolType,
	}, func(args []values.Value) (values.Value, error) {
		s, _ := textOf(args[0])
		pattern, _ := textOf(args[1])
		return values.BoolValue(values.Like(s, pattern)), nil
	})

	r.addStandard("glob", Signature{
		Parameters: []types.DataType{types.TextType, types.TextType},
		ReturnType: types.BoolType,
	}, func(args []values.Value) (values.Value, error) {
		s, _ := textOf(args[0])
		pattern, _ := textOf(args[1])
		return values.BoolValue(values.Glob(s, pattern)), nil
	})

	r.addStandard("regexp_replace", Signature{
		Parameters: []types.DataType{types.TextType, types.TextType, types.TextType},
		ReturnType: types.TextType,
	}, func(args []values.Value) (values.Value, error) {
		s, _ := textOf(args[0])
		pattern, _ := textOf(args[1])
		repl, _ := textOf(args[2])
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, opErrf("invalid regular expression %q: %v", pattern, err)
		}
		return values.TextValue(re.ReplaceAllString(s, repl)), nil
	})

	r.addStandard("substr", Signature{
		Parameters: []types.DataType{types.TextType, types.IntType, types.NewOptional(types.IntType)},
		ReturnType: types.TextType,
	}, func(args []values.Value) (values.Value, error) {
		s, _ := textOf(args[0])
		runes := []rune(s)
		start, _ := args[1].(values.IntValue)
		from := int(start) - 1
		if from < 0 {
			from = 0
		}
		if from > len(runes) {
			from = len(runes)
		}
		end := len(runes)
		if len(args) > 2 {
			if n, ok := args[2].(values.IntValue); ok {
				end = from + int(n)
				if end > len(runes) {
					end = len(runes)
				}
				if end < from {
					end = from
				}
			}
		}
		return values.TextValue(string(runes[from:end])), nil
	})
}
