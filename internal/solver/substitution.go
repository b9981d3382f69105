// Package solver implements component C's second half: the worklist
// search over SystemStates, structural unification with occurs check,
// conversion rules, disjunction/conjunction constraint application,
// defaulting, and solution scoring/application, per spec.md §4.3.
//
// Grounded on the teacher's internal/types/unification.go (Unifier with
// occurs-check, Substitution map, ComposeSubstitutions) for the
// structural-recursion shape, extended with the worklist/disjunction
// search described by the original source's Sema/ConstraintSystem.hpp
// (the teacher's own solver is a single deterministic pass, not a search;
// glu's overload resolution needs the latter, so this part is written
// fresh in the teacher's recursive-unification style rather than copied).
package solver

import "github.com/glu-lang/glu/internal/types"

// Substitution maps type-variable identity to its bound type. Keys are
// pointer identity, matching spec.md §3's "TypeVariable ... uniquely
// identified by pointer identity".
type Substitution map[*types.TypeVariable]types.Type

// Clone performs an independent deep copy, used whenever a disjunction
// branch forks the search (spec.md §4.3/§5: "the solver's per-state
// bindings map is cloned on every disjunction branch; clones are
// independent").
func (s Substitution) Clone() Substitution {
	out := make(Substitution, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Apply fully resolves t through s, recursively substituting any nested
// type variables until a fixed point (or an unbound variable) is reached.
func Apply(s Substitution, t types.Type) types.Type {
	switch v := t.(type) {
	case *types.TypeVariable:
		if bound, ok := s[v]; ok {
			return Apply(s, bound)
		}
		return v
	case *types.Pointer:
		return &types.Pointer{Pointee: Apply(s, v.Pointee), Kind: v.Kind}
	case *types.StaticArray:
		return &types.StaticArray{Elem: Apply(s, v.Elem), Size: v.Size}
	case *types.DynamicArray:
		return &types.DynamicArray{Elem: Apply(s, v.Elem)}
	case *types.Function:
		params := make([]types.Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = Apply(s, p)
		}
		return &types.Function{Params: params, ReturnType: Apply(s, v.ReturnType), CVariadic: v.CVariadic}
	case *types.Struct:
		if len(v.TemplateArgs) == 0 {
			return v
		}
		args := make([]types.Type, len(v.TemplateArgs))
		for i, a := range v.TemplateArgs {
			args[i] = Apply(s, a)
		}
		return &types.Struct{Decl: v.Decl, TemplateArgs: args}
	case *types.TypeAlias:
		return Apply(s, v.Wrapped)
	default:
		return t
	}
}

// Bind extends s with tv ↦ t, returning a new substitution (the caller's
// s is never mutated in place so backtracking stays cheap and correct).
func (s Substitution) Bind(tv *types.TypeVariable, t types.Type) Substitution {
	out := s.Clone()
	out[tv] = t
	return out
}
