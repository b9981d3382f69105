package solver

import (
	"fmt"

	"github.com/glu-lang/glu/internal/types"
)

// Unify performs structural recursive unification of t1 and t2 under sub,
// per spec.md §4.3: unwrap aliases, apply substitutions, occurs-check any
// type-variable binding, otherwise require matching variants and unify
// components pointwise.
func Unify(t1, t2 types.Type, sub Substitution) (Substitution, error) {
	t1 = types.Unwrap(Apply(sub, t1))
	t2 = types.Unwrap(Apply(sub, t2))

	if tv, ok := t1.(*types.TypeVariable); ok {
		return bindVar(tv, t2, sub)
	}
	if tv, ok := t2.(*types.TypeVariable); ok {
		return bindVar(tv, t1, sub)
	}

	if t1.Equals(t2) {
		return sub, nil
	}

	switch a := t1.(type) {
	case *types.Pointer:
		b, ok := t2.(*types.Pointer)
		if !ok || a.Kind != b.Kind {
			return nil, fmt.Errorf("cannot unify %s with %s", t1, t2)
		}
		return Unify(a.Pointee, b.Pointee, sub)

	case *types.StaticArray:
		b, ok := t2.(*types.StaticArray)
		if !ok || a.Size != b.Size {
			return nil, fmt.Errorf("cannot unify %s with %s", t1, t2)
		}
		return Unify(a.Elem, b.Elem, sub)

	case *types.DynamicArray:
		b, ok := t2.(*types.DynamicArray)
		if !ok {
			return nil, fmt.Errorf("cannot unify %s with %s", t1, t2)
		}
		return Unify(a.Elem, b.Elem, sub)

	case *types.Function:
		b, ok := t2.(*types.Function)
		if !ok || len(a.Params) != len(b.Params) || a.CVariadic != b.CVariadic {
			return nil, fmt.Errorf("cannot unify %s with %s", t1, t2)
		}
		cur := sub
		var err error
		for i := range a.Params {
			cur, err = Unify(a.Params[i], b.Params[i], cur)
			if err != nil {
				return nil, err
			}
		}
		return Unify(a.ReturnType, b.ReturnType, cur)

	case *types.Struct:
		b, ok := t2.(*types.Struct)
		if !ok || a.Decl != b.Decl || len(a.TemplateArgs) != len(b.TemplateArgs) {
			return nil, fmt.Errorf("cannot unify %s with %s", t1, t2)
		}
		cur := sub
		var err error
		for i := range a.TemplateArgs {
			cur, err = Unify(a.TemplateArgs[i], b.TemplateArgs[i], cur)
			if err != nil {
				return nil, err
			}
		}
		return cur, nil

	default:
		return nil, fmt.Errorf("cannot unify %s with %s", t1, t2)
	}
}

func bindVar(tv *types.TypeVariable, t types.Type, sub Substitution) (Substitution, error) {
	if other, ok := t.(*types.TypeVariable); ok && other == tv {
		return sub, nil
	}
	if Occurs(tv, t) {
		return nil, fmt.Errorf("occurs check failed: %s occurs in %s", tv, t)
	}
	return sub.Bind(tv, t), nil
}

// Occurs reports whether tv occurs anywhere inside t, the rejection
// condition for infinite types (spec.md §4.3, testable property 2).
func Occurs(tv *types.TypeVariable, t types.Type) bool {
	switch v := t.(type) {
	case *types.TypeVariable:
		return v == tv
	case *types.Pointer:
		return Occurs(tv, v.Pointee)
	case *types.StaticArray:
		return Occurs(tv, v.Elem)
	case *types.DynamicArray:
		return Occurs(tv, v.Elem)
	case *types.Function:
		for _, p := range v.Params {
			if Occurs(tv, p) {
				return true
			}
		}
		return Occurs(tv, v.ReturnType)
	case *types.Struct:
		for _, a := range v.TemplateArgs {
			if Occurs(tv, a) {
				return true
			}
		}
		return false
	case *types.TypeAlias:
		return Occurs(tv, v.Wrapped)
	default:
		return false
	}
}
