// Package sema is component C's top-level driver: it walks a function
// body statement by statement, building the nested scope.Table chain
// component B describes, invoking the constraint generator and solver on
// each statement in turn, and applying the winning solution before moving
// on (spec.md §4.3: "solving is driven per top-level statement").
//
// Grounded on the teacher's internal/pipeline/pipeline.go staged-driver
// style (a thin orchestrator gluing together independently testable
// passes), since neither internal/constraint nor internal/solver may
// import the other (solver already depends on constraint's types).
package sema

import (
	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/constraint"
	"github.com/glu-lang/glu/internal/diag"
	"github.com/glu-lang/glu/internal/scope"
	"github.com/glu-lang/glu/internal/solver"
	"github.com/glu-lang/glu/internal/types"
)

// CheckFunction type-checks a function body in place: every expression's
// Type() becomes concrete, every RefExpr/operator/struct-member resolves
// to its chosen declaration, and every implicit conversion is spliced in
// as a synthetic CastExpr (spec.md §4.2–4.3).
func CheckFunction(sink *diag.Sink, fn *ast.FunctionDecl, moduleScope *scope.Table) {
	if fn.Body == nil {
		return
	}
	fnScope := scope.New(moduleScope, fn)
	for _, p := range fn.Params {
		fnScope.InsertItem(p.Name, p, ast.Private)
	}
	checker{sink: sink, expectedReturn: fn.ReturnType}.block(fnScope, fn.Body.Stmts)
}

type checker struct {
	sink           *diag.Sink
	expectedReturn types.Type
}

// block processes a nested statement list sharing a single scope: every
// DeclStmt (and synthesized for-loop variable) it encounters extends that
// same scope, matching CompoundStmt's "push scope, visit children, pop
// scope" shape in spec.md §4.4 (the scope itself is the push; it is
// dropped by the caller simply letting sc go out of scope).
func (c checker) block(sc *scope.Table, stmts []ast.Stmt) {
	for _, s := range stmts {
		c.stmt(sc, s)
	}
}

func (c checker) stmt(sc *scope.Table, s ast.Stmt) {
	switch v := s.(type) {
	case *ast.CompoundStmt:
		c.block(scope.New(sc, v), v.Stmts)
	case *ast.IfStmt:
		c.solveOne(sc, v)
		c.stmt(sc, v.Then)
		if v.Else != nil {
			c.stmt(sc, v.Else)
		}
	case *ast.WhileStmt:
		c.solveOne(sc, v)
		c.block(scope.New(sc, v.Body), v.Body.Stmts)
	case *ast.ForStmt:
		c.forStmt(sc, v)
	case *ast.DeclStmt:
		c.solveOne(sc, v)
		sc.InsertItem(v.Decl.Name, v.Decl, ast.Private)
	default:
		c.solveOne(sc, v)
	}
}

// solveOne generates, solves, and applies the constraints for a single
// statement (not recursing into any nested statement list it owns — the
// caller in stmt does that once the statement's own types are settled).
func (c checker) solveOne(sc *scope.Table, s ast.Stmt) {
	g := constraint.NewGenerator(c.sink)
	cs := g.VisitStmt(s, sc, c.expectedReturn)
	if len(cs) == 0 {
		return
	}
	sol, err := solver.Solve(cs)
	if err != nil {
		c.sink.Errorf(diag.CodeUnificationFailure, "sema", s.Position(), "%v", err)
		return
	}
	solver.ApplySolution(sol, []ast.Stmt{s})
}

// forStmt resolves the loop range before the body is ever visited, so the
// loop variable's type is concrete by the time the body's scope needs it
// (spec.md §4.4's static-array-vs-generic-iterator split has to be made
// here, structurally, before the body can be type-checked against it).
func (c checker) forStmt(sc *scope.Table, f *ast.ForStmt) {
	g := constraint.NewGenerator(c.sink)
	rangeCs := g.Visit(f.Range, sc)
	if len(rangeCs) > 0 {
		sol, err := solver.Solve(rangeCs)
		if err != nil {
			c.sink.Errorf(diag.CodeUnificationFailure, "sema", f.Position(), "%v", err)
			return
		}
		wrap := &ast.ExpressionStmt{Expr: f.Range}
		solver.ApplySolution(sol, []ast.Stmt{wrap})
		f.Range = wrap.Expr
	}

	rangeTy := types.Unwrap(f.Range.Type())
	if arr, ok := rangeTy.(*types.StaticArray); ok {
		f.VarDecl = &ast.VarLetDecl{Name: f.Var, DeclaredTy: arr.Elem}
	} else if !c.resolveIteratorProtocol(sc, f, rangeTy) {
		f.VarDecl = &ast.VarLetDecl{Name: f.Var, DeclaredTy: types.NewTypeVariable()}
	}

	body := scope.New(sc, f.Body)
	body.InsertItem(f.Var, f.VarDecl, ast.Private)
	c.block(body, f.Body.Stmts)
}

// resolveIteratorProtocol looks up the fixed-name begin/end/equal/deref/next
// functions applicable to rangeTy (spec.md §4.4: "resolved by sema and
// stored on the ForStmt"). Unlike ordinary call resolution this picks the
// first structurally-matching candidate rather than running a full
// disjunction search — for loops, unlike calls, never need to backtrack
// across argument-driven overload sets in practice, since the iterator
// protocol is keyed on a single type (documented simplification).
func (c checker) resolveIteratorProtocol(sc *scope.Table, f *ast.ForStmt, rangeTy types.Type) bool {
	begin := firstMatching(sc, "begin", rangeTy)
	if begin == nil {
		c.sink.Errorf(diag.CodeNoOverloadMatches, "sema", f.Position(), "type %s is not iterable: no begin(%s)", rangeTy, rangeTy)
		return false
	}
	iterTy := begin.ReturnType
	end := firstMatching(sc, "end", rangeTy)
	equal := firstMatching2(sc, "equal", iterTy, iterTy)
	deref := firstMatching(sc, "deref", iterTy)
	next := firstMatching(sc, "next", iterTy)
	if end == nil || equal == nil || deref == nil || next == nil {
		c.sink.Errorf(diag.CodeNoOverloadMatches, "sema", f.Position(), "type %s does not implement the full iterator protocol", rangeTy)
		return false
	}
	f.BeginFunc, f.EndFunc, f.EqualityFunc, f.DerefFunc, f.NextFunc = begin, end, equal, deref, next
	f.VarDecl = &ast.VarLetDecl{Name: f.Var, DeclaredTy: deref.ReturnType}
	return true
}

func firstMatching(sc *scope.Table, name string, argTy types.Type) *ast.FunctionDecl {
	res := sc.Lookup(scope.Ident{Name: name})
	if !res.Found {
		return nil
	}
	for _, item := range res.Items {
		fn, ok := item.Item.(*ast.FunctionDecl)
		if !ok || len(fn.Params) != 1 {
			continue
		}
		if fn.Params[0].Type.Equals(argTy) {
			return fn
		}
	}
	return nil
}

func firstMatching2(sc *scope.Table, name string, a, b types.Type) *ast.FunctionDecl {
	res := sc.Lookup(scope.Ident{Name: name})
	if !res.Found {
		return nil
	}
	for _, item := range res.Items {
		fn, ok := item.Item.(*ast.FunctionDecl)
		if !ok || len(fn.Params) != 2 {
			continue
		}
		if fn.Params[0].Type.Equals(a) && fn.Params[1].Type.Equals(b) {
			return fn
		}
	}
	return nil
}
