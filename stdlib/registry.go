// Package stdlib is the closed registry of standard, aggregation and
// window functions the parser resolves calls against and the executor
// invokes. Mirrors original_source/crates/gitql-std and
// crates/gitql-core/src/signature.rs.
package stdlib

import (
	"sort"

	"github.com/gql-run/gitql/types"
	"github.com/gql-run/gitql/values"
)

// Signature describes a callable's parameter types (which may include
// a single trailing Varargs and any number of Optional parameters
// immediately before it) and its return type (possibly Dynamic).
type Signature struct {
	Parameters []types.DataType
	ReturnType types.DataType
}

// ResolveReturnType computes the concrete return type for a call whose
// arguments resolved to argTypes, invoking a Dynamic return type's
// resolver if present.
func (s Signature) ResolveReturnType(argTypes []types.DataType) types.DataType {
	if s.ReturnType.Kind == types.Dynamic {
		return s.ReturnType.Resolve(argTypes)
	}
	return s.ReturnType
}

// Matches reports whether argTypes is an acceptable call for s,
// honoring trailing Optional and Varargs parameters.
func (s Signature) Matches(argTypes []types.DataType) bool {
	params := s.Parameters
	varargs := len(params) > 0 && params[len(params)-1].Kind == types.Varargs

	minRequired := 0
	for _, p := range params {
		if p.Kind != types.Optional && p.Kind != types.Varargs {
			minRequired++
		}
	}
	if len(argTypes) < minRequired {
		return false
	}
	if !varargs && len(argTypes) > len(params) {
		return false
	}

	for i, at := range argTypes {
		var pt types.DataType
		switch {
		case i < len(params):
			pt = params[i]
		case varargs:
			pt = params[len(params)-1]
		default:
			return false
		}
		switch pt.Kind {
		case types.Optional, types.Varargs:
			pt = *pt.Of
		}
		if !types.Equal(pt, at) {
			return false
		}
	}
	return true
}

// StandardFunction evaluates a plain (scalar) call from its already
// evaluated arguments.
type StandardFunction func(args []values.Value) (values.Value, error)

// AggregationFunction reduces a group's per-row, per-argument value
// matrix (outer index = row, inner index = argument position) to a
// single Value.
type AggregationFunction func(rows [][]values.Value) (values.Value, error)

// WindowFunction is the window-evaluation analogue of
// AggregationFunction: it receives the already-ordered partition's
// full per-row argument matrix plus the index of the row currently
// being evaluated, and returns that row's result (unlike an
// aggregation, a window function produces one value per row, not one
// value per group).
type WindowFunction func(rows [][]values.Value, index int) (values.Value, error)

// Registry is the closed, immutable-after-initialization mapping from
// name to signature and implementation (§5: safe for concurrent read).
type Registry struct {
	standard      map[string]StandardFunction
	standardSig   map[string]Signature
	aggregations  map[string]AggregationFunction
	aggregateSig  map[string]Signature
	window        map[string]WindowFunction
	windowSig     map[string]Signature
}

// Standard constructs the registry used by every query: every
// category's functions registered under their public name.
func Standard() *Registry {
	r := &Registry{
		standard:     map[string]StandardFunction{},
		standardSig:  map[string]Signature{},
		aggregations: map[string]AggregationFunction{},
		aggregateSig: map[string]Signature{},
		window:       map[string]WindowFunction{},
		windowSig:    map[string]Signature{},
	}
	registerTextFunctions(r)
	registerNumberFunctions(r)
	registerDateTimeFunctions(r)
	registerGeneralFunctions(r)
	registerRegexFunctions(r)
	registerArrayFunctions(r)
	registerRangeFunctions(r)
	registerAggregations(r)
	registerWindowFunctions(r)
	return r
}

func (r *Registry) addStandard(name string, sig Signature, fn StandardFunction) {
	r.standardSig[name] = sig
	r.standard[name] = fn
}

func (r *Registry) addAggregation(name string, sig Signature, fn AggregationFunction) {
	r.aggregateSig[name] = sig
	r.aggregations[name] = fn
}

func (r *Registry) addWindow(name string, sig Signature, fn WindowFunction) {
	r.windowSig[name] = sig
	r.window[name] = fn
}

// IsStandard reports whether name is a registered scalar function.
func (r *Registry) IsStandard(name string) bool { _, ok := r.standard[name]; return ok }

// IsAggregation reports whether name is a registered aggregate
// function, hoisted by the parser into a hidden selection.
func (r *Registry) IsAggregation(name string) bool { _, ok := r.aggregations[name]; return ok }

// IsWindow reports whether name is a registered window function.
func (r *Registry) IsWindow(name string) bool { _, ok := r.window[name]; return ok }

// StandardSignature returns name's signature, if it is a standard function.
func (r *Registry) StandardSignature(name string) (Signature, bool) {
	s, ok := r.standardSig[name]
	return s, ok
}

// AggregationSignature returns name's signature, if it is an aggregation.
func (r *Registry) AggregationSignature(name string) (Signature, bool) {
	s, ok := r.aggregateSig[name]
	return s, ok
}

// WindowSignature returns name's signature, if it is a window function.
func (r *Registry) WindowSignature(name string) (Signature, bool) {
	s, ok := r.windowSig[name]
	return s, ok
}

// CallStandard invokes the named scalar function.
func (r *Registry) CallStandard(name string, args []values.Value) (values.Value, error) {
	return r.standard[name](args)
}

// CallAggregation invokes the named aggregate function over a group's
// evaluated argument matrix.
func (r *Registry) CallAggregation(name string, rows [][]values.Value) (values.Value, error) {
	return r.aggregations[name](rows)
}

// CallWindow invokes the named window function over a partition's
// evaluated argument matrix, computing the result for row `index`.
func (r *Registry) CallWindow(name string, rows [][]values.Value, index int) (values.Value, error) {
	return r.window[name](rows, index)
}

// Names returns every registered name across all three categories, the
// candidate pool for closest-name diagnostics on an unknown function.
func (r *Registry) Names() []string {
	seen := map[string]bool{}
	var names []string
	add := func(m map[string]Signature) {
		for n := range m {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	add(r.standardSig)
	add(r.aggregateSig)
	add(r.windowSig)
	sort.Strings(names)
	return names
}
