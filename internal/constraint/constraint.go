// Package constraint implements the constraint representation from
// spec.md §3/§4.2: a tagged value carrying one locator AST node plus a
// payload, produced by an AST walk and consumed by the solver.
//
// Grounded on the teacher's internal/types/inference.go (TypeConstraint
// sum-of-structs-with-a-marker-method style) generalized to the richer
// constraint-kind taxonomy in the original source's Sema/Constraint.hpp
// (Bind, Equal, Conversion, Disjunction, Conjunction, ValueMember,
// BindOverload, ExpressibleByXLiteral, ...).
package constraint

import (
	"fmt"

	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/types"
)

// Kind identifies which relation a Constraint expresses.
type Kind int

const (
	Bind Kind = iota
	Equal
	Conversion
	ArgumentConversion
	OperatorArgumentConversion
	CheckedCast
	BindToPointerType
	Defaultable
	LValueObject
	DisjunctionKind
	ConjunctionKind
	ValueMember
	UnresolvedValueMember
	BindOverload
	ExpressibleByIntLiteral
	ExpressibleByFloatLiteral
	ExpressibleByStringLiteral
	ExpressibleByBoolLiteral
	StructInitialiser
)

func (k Kind) String() string {
	names := [...]string{
		"Bind", "Equal", "Conversion", "ArgumentConversion",
		"OperatorArgumentConversion", "CheckedCast", "BindToPointerType",
		"Defaultable", "LValueObject", "Disjunction", "Conjunction",
		"ValueMember", "UnresolvedValueMember", "BindOverload",
		"ExpressibleByIntLiteral", "ExpressibleByFloatLiteral",
		"ExpressibleByStringLiteral", "ExpressibleByBoolLiteral",
		"StructInitialiser",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// ConversionRestriction narrows which implicit conversions a Conversion
// constraint accepts (spec.md §3).
type ConversionRestriction int

const (
	NoRestriction ConversionRestriction = iota
	DeepEquality
	ArrayToPointer
	StringToPointer
	PointerToPointer
)

// Flags are the bit-flags from spec.md §3.
type Flags struct {
	Active         bool
	Disabled       bool
	Favored        bool
	Discarded      bool
	RememberChoice bool
}

// Constraint is the tagged value described by spec.md §3. Only the
// fields relevant to Kind are populated; see the constructors below.
type Constraint struct {
	Kind    Kind
	Locator ast.Node

	// Binary relational payload (Bind, Equal, Conversion, ...).
	First  types.Type
	Second types.Type

	// Aggregate payload (Disjunction, Conjunction).
	Children []*Constraint
	// Remember applies only to DisjunctionKind (spec.md's
	// rememberChoice flag on Disjunction).
	Remember bool

	// Member payload (ValueMember, UnresolvedValueMember).
	Base      types.Type
	Member    string
	MemberRef *ast.StructMemberExpr

	// Overload payload (BindOverload).
	ChosenOverload *ast.FunctionDecl

	// Unary-property payload carries no extra fields beyond First.

	Restriction ConversionRestriction
	Flags       Flags
}

func (c *Constraint) String() string {
	switch c.Kind {
	case DisjunctionKind:
		return fmt.Sprintf("Disjunction(%d children)", len(c.Children))
	case ConjunctionKind:
		return fmt.Sprintf("Conjunction(%d children)", len(c.Children))
	case ValueMember, UnresolvedValueMember:
		return fmt.Sprintf("%s(%s.%s ~ %s)", c.Kind, typeStr(c.Base), c.Member, typeStr(c.First))
	case BindOverload:
		return fmt.Sprintf("BindOverload(%s = %s)", typeStr(c.First), overloadName(c.ChosenOverload))
	default:
		return fmt.Sprintf("%s(%s, %s)", c.Kind, typeStr(c.First), typeStr(c.Second))
	}
}

func typeStr(t types.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

func overloadName(f *ast.FunctionDecl) string {
	if f == nil {
		return "<nil>"
	}
	return f.Name
}

// ---- Constructors ----

func NewBind(locator ast.Node, tv *types.TypeVariable, t types.Type) *Constraint {
	return &Constraint{Kind: Bind, Locator: locator, First: tv, Second: t, Flags: Flags{Active: true}}
}

func NewEqual(locator ast.Node, a, b types.Type) *Constraint {
	return &Constraint{Kind: Equal, Locator: locator, First: a, Second: b, Flags: Flags{Active: true}}
}

func NewConversion(locator ast.Node, from, to types.Type) *Constraint {
	return &Constraint{Kind: Conversion, Locator: locator, First: from, Second: to, Flags: Flags{Active: true}}
}

func NewArgumentConversion(locator ast.Node, from, to types.Type) *Constraint {
	return &Constraint{Kind: ArgumentConversion, Locator: locator, First: from, Second: to, Flags: Flags{Active: true}}
}

func NewCheckedCast(locator ast.Node, from, to types.Type) *Constraint {
	return &Constraint{Kind: CheckedCast, Locator: locator, First: from, Second: to, Flags: Flags{Active: true}}
}

func NewBindToPointerType(locator ast.Node, a, b types.Type) *Constraint {
	return &Constraint{Kind: BindToPointerType, Locator: locator, First: a, Second: b, Flags: Flags{Active: true}}
}

func NewDefaultable(locator ast.Node, tv types.Type, def types.Type) *Constraint {
	return &Constraint{Kind: Defaultable, Locator: locator, First: tv, Second: def, Flags: Flags{Active: true}}
}

func NewDisjunction(locator ast.Node, remember bool, children ...*Constraint) *Constraint {
	return &Constraint{Kind: DisjunctionKind, Locator: locator, Children: children, Remember: remember, Flags: Flags{Active: true}}
}

func NewConjunction(locator ast.Node, children ...*Constraint) *Constraint {
	return &Constraint{Kind: ConjunctionKind, Locator: locator, Children: children, Flags: Flags{Active: true}}
}

func NewValueMember(locator ast.Node, base, result types.Type, member string, ref *ast.StructMemberExpr) *Constraint {
	return &Constraint{Kind: ValueMember, Locator: locator, Base: base, First: result, Member: member, MemberRef: ref, Flags: Flags{Active: true}}
}

func NewBindOverload(locator ast.Node, tv types.Type, fn *ast.FunctionDecl) *Constraint {
	return &Constraint{Kind: BindOverload, Locator: locator, First: tv, ChosenOverload: fn, Flags: Flags{Active: true}}
}

func NewExpressibleBy(locator ast.Node, kind Kind, tv types.Type) *Constraint {
	return &Constraint{Kind: kind, Locator: locator, First: tv, Flags: Flags{Active: true}}
}

func NewStructInitialiser(locator ast.Node, tv types.Type) *Constraint {
	return &Constraint{Kind: StructInitialiser, Locator: locator, First: tv, Flags: Flags{Active: true}}
}
