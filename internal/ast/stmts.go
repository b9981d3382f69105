package ast

// CompoundStmt is a `{ ... }` block; it introduces a new lexical scope
// (spec.md §4.4's GILGen "push scope / visit children / pop scope").
type CompoundStmt struct {
	stmtBase
	Stmts []Stmt
}

// IfStmt is `if cond { then } [else { else }]`.
type IfStmt struct {
	stmtBase
	Cond Expr
	Then *CompoundStmt
	Else Stmt // *CompoundStmt or *IfStmt (else-if chain), nil if absent
}

// WhileStmt is `while cond { body }`.
type WhileStmt struct {
	stmtBase
	Cond Expr
	Body *CompoundStmt
}

// ForStmt is a `for x in range { body }` loop. Sema resolves and stores
// either the static-array expansion shape or the generic-iterator
// functions on this node per spec.md §4.4.
type ForStmt struct {
	stmtBase
	Var   string
	Range Expr
	Body  *CompoundStmt

	// VarDecl is the synthetic binding scope construction creates for Var,
	// so the body resolves references to the loop variable the same way
	// it resolves any other local (spec.md §4.4's GILGen scope lookup).
	VarDecl *VarLetDecl

	// Populated by sema for generic (non-static-array) iteration.
	BeginFunc    *FunctionDecl
	EndFunc      *FunctionDecl
	EqualityFunc *FunctionDecl
	DerefFunc    *FunctionDecl
	NextFunc     *FunctionDecl
}

// ReturnStmt is `return [expr];`.
type ReturnStmt struct {
	stmtBase
	Value Expr // nil for bare `return;`
}

// BreakStmt is `break;`.
type BreakStmt struct{ stmtBase }

// ContinueStmt is `continue;`.
type ContinueStmt struct{ stmtBase }

// AssignStmt is `lhs = rhs;`.
type AssignStmt struct {
	stmtBase
	LHS Expr
	RHS Expr
}

// ExpressionStmt evaluates an expression for its side effects, discarding
// any result (spec.md §4.4: "if the result is non-empty, drop").
type ExpressionStmt struct {
	stmtBase
	Expr Expr
}

// DeclStmt wraps a VarLetDecl appearing inside a function body.
type DeclStmt struct {
	stmtBase
	Decl *VarLetDecl
}
