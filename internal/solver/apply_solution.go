package solver

import (
	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/types"
)

// ApplySolution rewrites body in place against a chosen Solution: every
// expression's type variable is substituted with its final concrete type,
// RefExpr/operator overloads and struct-member field indices are recorded
// onto their nodes, and a synthetic CastExpr is spliced in wherever the
// solver decided to insert one (spec.md §4.3 step 3: "a synthetic
// CastExpr is inserted into the tree").
//
// Nodes have a Parent field, but nothing in this repository sets it, so
// rather than rewrite child slots through a parent, each walk function
// below reassigns its own child fields directly after
// visiting them, which is what actually performs the splice.
func ApplySolution(sol *Solution, body []ast.Stmt) {
	conv := make(map[ast.Expr]types.Type, len(sol.Conversions))
	for _, rc := range sol.Conversions {
		conv[rc.Expr] = rc.TargetType
	}
	w := &walker{sol: sol, conv: conv}
	for _, s := range body {
		w.stmt(s)
	}
}

type walker struct {
	sol  *Solution
	conv map[ast.Expr]types.Type
}

// adopt resolves e's own type/children, then wraps it in a synthetic cast
// if the solver recorded one for it, returning whichever node the caller
// should store in its child slot.
func (w *walker) adopt(e ast.Expr) ast.Expr {
	if e == nil {
		return nil
	}
	w.expr(e)
	if target, ok := w.conv[e]; ok {
		cast := &ast.CastExpr{Value: e, TargetType: target, Synthetic: true}
		cast.SetType(target)
		return cast
	}
	return e
}

func (w *walker) stmt(s ast.Stmt) {
	switch v := s.(type) {
	case *ast.CompoundStmt:
		for _, inner := range v.Stmts {
			w.stmt(inner)
		}
	case *ast.IfStmt:
		v.Cond = w.adopt(v.Cond)
		w.stmt(v.Then)
		if v.Else != nil {
			w.stmt(v.Else)
		}
	case *ast.WhileStmt:
		v.Cond = w.adopt(v.Cond)
		w.stmt(v.Body)
	case *ast.ForStmt:
		if v.Range != nil {
			v.Range = w.adopt(v.Range)
		}
		w.stmt(v.Body)
	case *ast.ReturnStmt:
		if v.Value != nil {
			v.Value = w.adopt(v.Value)
		}
	case *ast.AssignStmt:
		v.LHS = w.adopt(v.LHS)
		v.RHS = w.adopt(v.RHS)
	case *ast.ExpressionStmt:
		v.Expr = w.adopt(v.Expr)
	case *ast.DeclStmt:
		if vd := v.Decl; vd != nil {
			vd.DeclaredTy = Apply(w.sol.Bindings, vd.DeclaredTy)
			if vd.Initializer != nil {
				vd.Initializer = w.adopt(vd.Initializer)
			}
		}
	}
}

func (w *walker) expr(e ast.Expr) {
	e.SetType(Apply(w.sol.Bindings, e.Type()))
	switch v := e.(type) {
	case *ast.LiteralExpr:
		// leaf

	case *ast.RefExpr:
		if fn, ok := w.sol.Overloads[v]; ok {
			v.Variable = fn
		}

	case *ast.CallExpr:
		v.Callee = w.adopt(v.Callee)
		for i, a := range v.Args {
			v.Args[i] = w.adopt(a)
		}

	case *ast.BinaryOpExpr:
		v.Left = w.adopt(v.Left)
		v.Right = w.adopt(v.Right)
		if op, ok := w.sol.Operators[v]; ok {
			v.Operator = op
		}

	case *ast.UnaryOpExpr:
		v.Operand = w.adopt(v.Operand)
		if op, ok := w.sol.Operators[v]; ok {
			v.Operator = op
		}

	case *ast.TernaryExpr:
		v.Cond = w.adopt(v.Cond)
		v.Then = w.adopt(v.Then)
		v.Else = w.adopt(v.Else)

	case *ast.CastExpr:
		v.Value = w.adopt(v.Value)

	case *ast.StructInitializerExpr:
		for i, f := range v.Fields {
			v.Fields[i].Value = w.adopt(f.Value)
		}

	case *ast.StructMemberExpr:
		v.Base = w.adopt(v.Base)
		if idx, ok := w.sol.Members[v]; ok {
			v.FieldIndex = idx
			v.Resolved = true
		}
	}
}
