package ast

import "github.com/glu-lang/glu/internal/types"

// LiteralKind distinguishes the literal categories from spec.md §4.2's
// constraint-generation table.
type LiteralKind int

const (
	IntLit LiteralKind = iota
	FloatLit
	BoolLit
	StringLit
)

// LiteralExpr is an integer/float/bool/string literal.
type LiteralExpr struct {
	exprBase
	Kind  LiteralKind
	Value any
}

// RefExpr references an identifier. The solver fills in Variable (the
// chosen overload or variable declaration) when the best solution is
// applied (spec.md §4.3 step 4).
type RefExpr struct {
	exprBase
	Components []string // namespace path, possibly empty
	Name       string
	Variable   Decl // *FunctionDecl, *VarLetDecl, or *ParamDecl once resolved
}

// CallExpr is a direct or indirect function call.
type CallExpr struct {
	exprBase
	Callee Expr
	Args   []Expr
}

// BinaryOpExpr is `left op right`.
type BinaryOpExpr struct {
	exprBase
	Left     Expr
	Op       string
	Right    Expr
	Operator Decl // resolved operator function, filled by the solver
}

// UnaryOpExpr is `op expr` (prefix) covering `.*`, `&`, `-`, `!`, etc.
type UnaryOpExpr struct {
	exprBase
	Op       string
	Operand  Expr
	Operator Decl
}

// TernaryExpr is `cond ? then : else`.
type TernaryExpr struct {
	exprBase
	Cond Expr
	Then Expr
	Else Expr
}

// CastExpr is `expr as T` (explicit) or a synthetic cast inserted by the
// solver for an implicit conversion (spec.md §4.3: "a synthetic CastExpr
// is inserted into the tree").
type CastExpr struct {
	exprBase
	Value      Expr
	TargetType types.Type
	Explicit   bool
	Synthetic  bool
}

// StructInitializerExpr constructs an aggregate value, e.g. `Point{x: 1,
// y: 2}`.
type StructInitializerExpr struct {
	exprBase
	StructTypeName string
	Fields         []StructInitField
}

type StructInitField struct {
	Name  string
	Value Expr
}

// StructMemberExpr is `base.member`. The solver records the resolved
// field index on this node once the base struct type is known (spec.md
// §4.2).
type StructMemberExpr struct {
	exprBase
	Base       Expr
	Member     string
	FieldIndex int
	Resolved   bool
}
