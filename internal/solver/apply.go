package solver

import (
	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/constraint"
	"github.com/glu-lang/glu/internal/types"
)

// applyOne mutates s in place to satisfy a single non-aggregate
// constraint, returning false if it cannot be satisfied under s's current
// bindings. Callers handle DisjunctionKind/ConjunctionKind themselves
// (applyFrom, below) since those require forking or sequencing rather than
// a single state transition.
func applyOne(s *SystemState, c *constraint.Constraint) bool {
	switch c.Kind {
	case constraint.Bind, constraint.Equal:
		sub, err := Unify(c.First, c.Second, s.Bindings)
		if err != nil {
			return false
		}
		s.Bindings = sub
		return true

	case constraint.Conversion, constraint.ArgumentConversion, constraint.OperatorArgumentConversion:
		return applyConversion(s, c, false)

	case constraint.CheckedCast:
		return applyConversion(s, c, true)

	case constraint.BindToPointerType:
		return applyBindToPointerType(s, c)

	case constraint.Defaultable:
		// Deferred to the second pass (spec.md §4.3 step 4); trivially
		// satisfied here so it never blocks the first pass.
		return true

	case constraint.LValueObject:
		// L-valueness is checked during GIL generation, not by the solver.
		return true

	case constraint.ValueMember, constraint.UnresolvedValueMember:
		return applyValueMember(s, c)

	case constraint.BindOverload:
		return applyBindOverload(s, c)

	case constraint.ExpressibleByIntLiteral, constraint.ExpressibleByFloatLiteral,
		constraint.ExpressibleByStringLiteral, constraint.ExpressibleByBoolLiteral:
		// These only gate which Defaultable default applies; the literal's
		// own type variable is free to unify with any concrete type chosen
		// elsewhere, so there's nothing to check here.
		return true

	case constraint.StructInitialiser:
		return applyStructInitialiser(s, c)
	}
	return false
}

func applyConversion(s *SystemState, c *constraint.Constraint, isExplicit bool) bool {
	from := Apply(s.Bindings, c.First)
	to := Apply(s.Bindings, c.Second)

	if isVar(from) || isVar(to) {
		sub, err := Unify(from, to, s.Bindings)
		if err != nil {
			return false
		}
		s.Bindings = sub
		return true
	}

	res := Convert(s.Bindings, from, to, isExplicit)
	if !res.OK {
		return false
	}
	// An explicit cast (CheckedCast) is the user's own `as` expression:
	// NeedsCast here just confirms the checked conversion is legal, there
	// is nothing left to synthesize since the CastExpr node already is
	// the cast. Only implicit Conversion/ArgumentConversion constraints
	// get a synthetic CastExpr inserted.
	if res.NeedsCast && !isExplicit {
		s.Score++
		if expr, ok := c.Locator.(ast.Expr); ok {
			s.Conversions = append(s.Conversions, RecordedConversion{Expr: expr, TargetType: to})
		}
	}
	return true
}

func isVar(t types.Type) bool {
	_, ok := t.(*types.TypeVariable)
	return ok
}

// applyBindToPointerType satisfies BindToPointerType(pointerTy, pointeeTy):
// pointerTy must unify with Pointer{Pointee: pointeeTy} (spec.md §4.2's
// pointer-deref/address-of/subscript special cases).
func applyBindToPointerType(s *SystemState, c *constraint.Constraint) bool {
	pointerTy := Apply(s.Bindings, c.First)
	pointeeTy := Apply(s.Bindings, c.Second)

	if p, ok := types.Unwrap(pointerTy).(*types.Pointer); ok {
		sub, err := Unify(p.Pointee, pointeeTy, s.Bindings)
		if err != nil {
			return false
		}
		s.Bindings = sub
		return true
	}
	sub, err := Unify(pointerTy, &types.Pointer{Pointee: pointeeTy, Kind: types.Raw}, s.Bindings)
	if err != nil {
		return false
	}
	s.Bindings = sub
	return true
}

func applyValueMember(s *SystemState, c *constraint.Constraint) bool {
	base := types.Unwrap(Apply(s.Bindings, c.Base))
	st, ok := base.(*types.Struct)
	if !ok {
		// Base type not yet concrete; this constraint can't make progress
		// in this pass. Treated as satisfied-without-effect so the first
		// pass doesn't stall on member lookups that depend on a sibling
		// constraint applied later in the same pass; the defaulting pass
		// or a later disjunction branch is expected to have already
		// pinned the base type down by the time this runs in practice,
		// since generator order visits the base before the member.
		return isVar(base)
	}
	fieldTy, found := st.Decl.FieldType(c.Member)
	if !found {
		return false
	}
	sub, err := Unify(c.First, fieldTy, s.Bindings)
	if err != nil {
		return false
	}
	s.Bindings = sub
	if c.MemberRef != nil {
		if idx, ok := fieldIndex(st.Decl, c.Member); ok {
			s.Members[c.MemberRef] = idx
		}
	}
	return true
}

func fieldIndex(decl types.StructDecl, name string) (int, bool) {
	type indexer interface {
		FieldIndex(string) (int, bool)
	}
	if idx, ok := decl.(indexer); ok {
		return idx.FieldIndex(name)
	}
	for i, n := range decl.FieldNames() {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// applyBindOverload satisfies BindOverload by unifying First (either a bare
// type variable standing for a referenced function value, or a
// partially-concrete Function shape built from a call's argument/result
// types) against the candidate's declared signature. Success records the
// choice: into Overloads when the locator is the RefExpr that named the
// function, into Operators otherwise (operator nodes).
func applyBindOverload(s *SystemState, c *constraint.Constraint) bool {
	sub, err := Unify(c.First, c.ChosenOverload.Signature(), s.Bindings)
	if err != nil {
		return false
	}
	s.Bindings = sub
	if ref, ok := c.Locator.(*ast.RefExpr); ok {
		s.Overloads[ref] = c.ChosenOverload
	} else {
		s.Operators[c.Locator] = c.ChosenOverload
	}
	return true
}

// applyStructInitialiser checks the declared fields of the struct type
// against the initializer's provided fields in declaration order,
// resolving the Open Question left by spec.md §4.2: a field omitted from
// the initializer is accepted only if it has a default; anything else
// (unknown field name, missing field without a default) fails the
// constraint so the solver reports it as a diagnostic upstream.
func applyStructInitialiser(s *SystemState, c *constraint.Constraint) bool {
	ty := types.Unwrap(Apply(s.Bindings, c.First))
	st, ok := ty.(*types.Struct)
	if !ok {
		return !isVar(ty)
	}
	lit, ok := c.Locator.(*ast.StructInitializerExpr)
	if !ok {
		return false
	}
	provided := make(map[string]ast.Expr, len(lit.Fields))
	for _, f := range lit.Fields {
		provided[f.Name] = f.Value
	}
	for _, name := range st.Decl.FieldNames() {
		fieldTy, _ := st.Decl.FieldType(name)
		value, has := provided[name]
		if !has {
			if st.Decl.FieldDefault(name) {
				continue
			}
			return false
		}
		sub, err := Unify(value.Type(), fieldTy, s.Bindings)
		if err != nil {
			return false
		}
		s.Bindings = sub
		delete(provided, name)
	}
	return len(provided) == 0 // no stray fields naming a nonexistent member
}
