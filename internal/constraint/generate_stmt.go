package constraint

import (
	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/diag"
	"github.com/glu-lang/glu/internal/scope"
	"github.com/glu-lang/glu/internal/types"
)

// VisitStmt generates the constraints for a single statement and its
// subexpressions, per the statement rows of spec.md §4.2's table.
// Solving is driven per top-level statement (spec.md §4.3), so callers
// solve the constraints returned here independently of other statements.
func (g *Generator) VisitStmt(s ast.Stmt, sc *scope.Table, expectedReturn types.Type) []*Constraint {
	switch v := s.(type) {
	case *ast.AssignStmt:
		cs := g.Visit(v.RHS, sc)
		cs = append(cs, g.Visit(v.LHS, sc)...)
		return append(cs, NewConversion(v.RHS, v.RHS.Type(), v.LHS.Type()))

	case *ast.ReturnStmt:
		return g.visitReturn(v, sc, expectedReturn)

	case *ast.IfStmt:
		cs := g.Visit(v.Cond, sc)
		return append(cs, NewConversion(v.Cond, v.Cond.Type(), types.BoolType()))

	case *ast.WhileStmt:
		cs := g.Visit(v.Cond, sc)
		return append(cs, NewConversion(v.Cond, v.Cond.Type(), types.BoolType()))

	case *ast.DeclStmt:
		return g.visitDeclStmt(v, sc)

	case *ast.ExpressionStmt:
		return g.Visit(v.Expr, sc)

	default:
		return nil
	}
}

func (g *Generator) visitReturn(r *ast.ReturnStmt, sc *scope.Table, expected types.Type) []*Constraint {
	if r.Value == nil {
		if _, isVoid := types.Unwrap(expected).(*types.Void); !isVoid {
			g.Sink.Errorf(diag.CodeInvalidConversion, "sema", r.Position(),
				"non-void function must return a value")
			return nil
		}
		return nil
	}
	if _, isVoid := types.Unwrap(expected).(*types.Void); isVoid {
		g.Sink.Errorf(diag.CodeVoidReturnsValue, "sema", r.Position(),
			"void-returning function must not return a value")
		return nil
	}
	cs := g.Visit(r.Value, sc)
	return append(cs, NewConversion(r.Value, r.Value.Type(), expected))
}

func (g *Generator) visitDeclStmt(d *ast.DeclStmt, sc *scope.Table) []*Constraint {
	decl := d.Decl
	if decl.DeclaredTy == nil {
		decl.DeclaredTy = types.NewTypeVariable()
	}
	if decl.Initializer == nil {
		return nil
	}
	cs := g.Visit(decl.Initializer, sc)
	return append(cs, NewConversion(decl.Initializer, decl.Initializer.Type(), decl.DeclaredTy))
}
