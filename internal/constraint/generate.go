package constraint

import (
	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/diag"
	"github.com/glu-lang/glu/internal/scope"
	"github.com/glu-lang/glu/internal/types"
)

// Generator walks the AST and emits constraints per the table in
// spec.md §4.2. A pre-visit step (freshVar) ensures every expression
// carries a freshly created type variable before its children are
// visited; post-visit logic (the bulk of each case below) then emits
// constraints referencing the now-typed children.
//
// Grounded on the teacher's internal/types/inference.go Infer walk,
// generalized from direct type-synthesis to constraint emission per
// spec.md's HM-with-disjunctions model.
type Generator struct {
	Sink *diag.Sink
	Vars []*types.TypeVariable
}

// NewGenerator creates an empty constraint generator.
func NewGenerator(sink *diag.Sink) *Generator {
	return &Generator{Sink: sink}
}

func (g *Generator) freshVar(e ast.Expr) *types.TypeVariable {
	if tv, already := e.Type().(*types.TypeVariable); already {
		return tv
	}
	tv := types.NewTypeVariable()
	e.SetType(tv)
	g.Vars = append(g.Vars, tv)
	return tv
}

// Visit generates the constraints for e and all of its subexpressions,
// evaluated in the enclosing scope sc.
func (g *Generator) Visit(e ast.Expr, sc *scope.Table) []*Constraint {
	g.freshVar(e)
	switch v := e.(type) {
	case *ast.LiteralExpr:
		return g.visitLiteral(v)
	case *ast.CastExpr:
		return g.visitCast(v, sc)
	case *ast.RefExpr:
		return g.visitRef(v, sc)
	case *ast.CallExpr:
		return g.visitCall(v, sc)
	case *ast.BinaryOpExpr:
		return g.visitBinaryOp(v, sc)
	case *ast.UnaryOpExpr:
		return g.visitUnaryOp(v, sc)
	case *ast.TernaryExpr:
		return g.visitTernary(v, sc)
	case *ast.StructInitializerExpr:
		return g.visitStructInit(v, sc)
	case *ast.StructMemberExpr:
		return g.visitStructMember(v, sc)
	default:
		return nil
	}
}

func (g *Generator) visitLiteral(l *ast.LiteralExpr) []*Constraint {
	tv := l.Type()
	switch l.Kind {
	case ast.IntLit:
		return []*Constraint{
			NewExpressibleBy(l, ExpressibleByIntLiteral, tv),
			NewDefaultable(l, tv, types.Int32()),
		}
	case ast.FloatLit:
		return []*Constraint{
			NewExpressibleBy(l, ExpressibleByFloatLiteral, tv),
			NewDefaultable(l, tv, types.Double()),
		}
	case ast.BoolLit:
		return []*Constraint{
			NewExpressibleBy(l, ExpressibleByBoolLiteral, tv),
			NewDefaultable(l, tv, types.BoolType()),
		}
	case ast.StringLit:
		return []*Constraint{
			NewExpressibleBy(l, ExpressibleByStringLiteral, tv),
			NewDefaultable(l, tv, types.StringArray()),
		}
	}
	return nil
}

func (g *Generator) visitCast(c *ast.CastExpr, sc *scope.Table) []*Constraint {
	cs := g.Visit(c.Value, sc)
	cs = append(cs,
		NewCheckedCast(c, c.Value.Type(), c.TargetType),
		NewDefaultable(c, c.Value.Type(), c.TargetType),
		NewBind(c, c.Type().(*types.TypeVariable), c.TargetType),
	)
	return cs
}

// visitRef builds the Disjunction of candidate declarations described by
// spec.md §4.2: one BindOverload branch per function overload, one Bind
// branch per variable.
func (g *Generator) visitRef(r *ast.RefExpr, sc *scope.Table) []*Constraint {
	res := sc.Lookup(scope.Ident{Components: r.Components, Name: r.Name})
	if !res.Found {
		g.Sink.Errorf(diag.CodeUnresolvedIdentifier, "sema", r.Position(), "unresolved identifier %q", r.Name)
		return nil
	}
	tv := r.Type()
	var branches []*Constraint
	for _, item := range res.Items {
		switch decl := item.Item.(type) {
		case *ast.FunctionDecl:
			branches = append(branches, NewBindOverload(r, tv, decl))
		case *ast.VarLetDecl:
			branches = append(branches, bindToVarDecl(r, tv, decl, decl.DeclaredTy))
		case *ast.ParamDecl:
			branches = append(branches, bindToVarDecl(r, tv, decl, decl.Type))
		}
	}
	if len(branches) == 1 {
		return []*Constraint{branches[0]}
	}
	return []*Constraint{NewDisjunction(r, true, branches...)}
}

func bindToVarDecl(r *ast.RefExpr, tv types.Type, decl ast.Decl, declTy types.Type) *Constraint {
	c := NewBind(r, tv.(*types.TypeVariable), declTy)
	c.ChosenOverload = nil
	// Variable branches record the resolved declaration on the RefExpr
	// directly (spec.md §4.2: "on variables, set node.variable = varDecl"),
	// at generation time rather than at solve time, since there is exactly
	// one variable declaration per name in a well-formed scope.
	r.Variable = decl
	return c
}

// visitCall resolves a call's callee and arguments together. A directly
// named callee (the common case) is resolved by visitCalleeRef, which
// builds one disjunction branch per candidate declaration so a candidate
// whose parameters reject the call's argument types fails and the solver
// backtracks to the next one. A computed callee (e.g. a function value
// returned from another call) falls back to a whole-signature Equal once
// its own type is known.
func (g *Generator) visitCall(c *ast.CallExpr, sc *scope.Table) []*Constraint {
	var cs []*Constraint
	argTypes := make([]types.Type, len(c.Args))
	for i, a := range c.Args {
		cs = append(cs, g.Visit(a, sc)...)
		argTypes[i] = a.Type()
	}
	if ref, ok := c.Callee.(*ast.RefExpr); ok {
		return append(cs, g.visitCalleeRef(ref, sc, c.Args, argTypes, c.Type())...)
	}
	cs = append(cs, g.Visit(c.Callee, sc)...)
	fnTy := &types.Function{Params: argTypes, ReturnType: c.Type()}
	return append(cs, NewEqual(c, c.Callee.Type(), fnTy))
}

func (g *Generator) visitCalleeRef(r *ast.RefExpr, sc *scope.Table, args []ast.Expr, argTypes []types.Type, result types.Type) []*Constraint {
	tv := g.freshVar(r)
	res := sc.Lookup(scope.Ident{Components: r.Components, Name: r.Name})
	if !res.Found {
		g.Sink.Errorf(diag.CodeUnresolvedIdentifier, "sema", r.Position(), "unresolved identifier %q", r.Name)
		return nil
	}
	var branches []*Constraint
	for _, item := range res.Items {
		switch decl := item.Item.(type) {
		case *ast.FunctionDecl:
			sig := decl.Signature()
			if len(sig.Params) != len(argTypes) && !sig.CVariadic {
				continue
			}
			branches = append(branches, g.overloadCallBranch(r, tv, decl, sig, args, argTypes, result))
		case *ast.VarLetDecl:
			branches = append(branches, g.indirectCallBranch(r, tv, decl, decl.DeclaredTy, args, argTypes, result))
		case *ast.ParamDecl:
			branches = append(branches, g.indirectCallBranch(r, tv, decl, decl.Type, args, argTypes, result))
		}
	}
	if len(branches) == 0 {
		g.Sink.Errorf(diag.CodeNoOverloadMatches, "sema", r.Position(), "no overload of %q accepts %d argument(s)", r.Name, len(argTypes))
		return nil
	}
	if len(branches) == 1 {
		return []*Constraint{branches[0]}
	}
	return []*Constraint{NewDisjunction(r, true, branches...)}
}

func (g *Generator) overloadCallBranch(r *ast.RefExpr, tv types.Type, decl *ast.FunctionDecl, sig *types.Function, args []ast.Expr, argTypes []types.Type, result types.Type) *Constraint {
	children := []*Constraint{NewBindOverload(r, tv, decl), NewEqual(r, result, sig.ReturnType)}
	for i, a := range args {
		if i < len(sig.Params) {
			children = append(children, NewArgumentConversion(a, argTypes[i], sig.Params[i]))
		}
	}
	return NewConjunction(r, children...)
}

func (g *Generator) indirectCallBranch(r *ast.RefExpr, tv types.Type, decl ast.Decl, declTy types.Type, args []ast.Expr, argTypes []types.Type, result types.Type) *Constraint {
	r.Variable = decl
	children := []*Constraint{NewBind(r, tv.(*types.TypeVariable), declTy)}
	if fn, ok := types.Unwrap(declTy).(*types.Function); ok && (len(fn.Params) == len(argTypes) || fn.CVariadic) {
		children = append(children, NewEqual(r, result, fn.ReturnType))
		for i, a := range args {
			if i < len(fn.Params) {
				children = append(children, NewArgumentConversion(a, argTypes[i], fn.Params[i]))
			}
		}
	} else {
		wanted := &types.Function{Params: argTypes, ReturnType: result}
		children = append(children, NewEqual(r, declTy, wanted))
	}
	return NewConjunction(r, children...)
}

func (g *Generator) visitBinaryOp(b *ast.BinaryOpExpr, sc *scope.Table) []*Constraint {
	if b.Op == "[]" {
		cs := g.Visit(b.Left, sc)
		cs = append(cs, g.Visit(b.Right, sc)...)
		return append(cs, NewBindToPointerType(b, b.Left.Type(), b.Type()))
	}
	cs := g.Visit(b.Left, sc)
	cs = append(cs, g.Visit(b.Right, sc)...)
	return append(cs, g.operatorConstraint(b, sc, b.Op, b.Type(), b.Left.Type(), b.Right.Type()))
}

func (g *Generator) visitUnaryOp(u *ast.UnaryOpExpr, sc *scope.Table) []*Constraint {
	cs := g.Visit(u.Operand, sc)
	switch u.Op {
	case ".*":
		return append(cs, NewBindToPointerType(u, u.Operand.Type(), u.Type()))
	case "&":
		return append(cs, NewBindToPointerType(u, u.Type(), u.Operand.Type()))
	}
	opName := u.Op
	if opName == "-" {
		opName = "-u" // registerArith registers prefix minus under "-u" to keep it distinct from binary "-"
	}
	return append(cs, g.operatorConstraint(u, sc, opName, u.Type(), u.Operand.Type()))
}

// operatorConstraint resolves &&, ||, !, and the arithmetic/comparison
// operators against the builtin overload set (spec.md §4.2), mirroring
// visitCalleeRef's branch-per-candidate shape so the solver picks the
// overload whose operand types actually unify and records it in
// SystemState.Operators for GIL lowering.
func (g *Generator) operatorConstraint(node ast.Expr, sc *scope.Table, op string, result types.Type, operandTypes ...types.Type) *Constraint {
	res := sc.Lookup(scope.Ident{Name: op})
	if !res.Found {
		g.Sink.Errorf(diag.CodeNoOverloadMatches, "sema", node.Position(), "no overload for operator %q", op)
		return NewConjunction(node)
	}
	wanted := &types.Function{Params: append([]types.Type{}, operandTypes...), ReturnType: result}
	var branches []*Constraint
	for _, item := range res.Items {
		fn, ok := item.Item.(*ast.FunctionDecl)
		if !ok {
			continue
		}
		branches = append(branches, NewBindOverload(node, wanted, fn))
	}
	if len(branches) == 0 {
		g.Sink.Errorf(diag.CodeNoOverloadMatches, "sema", node.Position(), "no overload for operator %q", op)
		return NewConjunction(node)
	}
	if len(branches) == 1 {
		return branches[0]
	}
	return NewDisjunction(node, true, branches...)
}

func (g *Generator) visitTernary(t *ast.TernaryExpr, sc *scope.Table) []*Constraint {
	cs := g.Visit(t.Cond, sc)
	cs = append(cs, g.Visit(t.Then, sc)...)
	cs = append(cs, g.Visit(t.Else, sc)...)
	cs = append(cs,
		NewConversion(t.Cond, t.Cond.Type(), types.BoolType()),
		NewEqual(t, t.Then.Type(), t.Type()),
		NewEqual(t, t.Else.Type(), t.Type()),
	)
	return cs
}

func (g *Generator) visitStructInit(s *ast.StructInitializerExpr, sc *scope.Table) []*Constraint {
	var cs []*Constraint
	if ty, ok := sc.LookupType(s.StructTypeName); ok {
		cs = append(cs, NewBind(s, s.Type().(*types.TypeVariable), ty))
	}
	cs = append(cs, NewStructInitialiser(s, s.Type()))
	for _, f := range s.Fields {
		cs = append(cs, g.Visit(f.Value, sc)...)
	}
	return cs
}

func (g *Generator) visitStructMember(m *ast.StructMemberExpr, sc *scope.Table) []*Constraint {
	cs := g.Visit(m.Base, sc)
	return append(cs, NewValueMember(m, m.Base.Type(), m.Type(), m.Member, m))
}
