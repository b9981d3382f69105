package gilgen

import (
	"fmt"

	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/diag"
	"github.com/glu-lang/glu/internal/gil"
	"github.com/glu-lang/glu/internal/source"
	"github.com/glu-lang/glu/internal/types"
)

// funcGen carries the per-function lowering state: the builder's current
// insertion point, the live GILGen scope chain, and a label counter for
// fresh block names.
type funcGen struct {
	g       *Generator
	fn      *gil.Function
	b       *gil.Builder
	scope   *genScope
	retType types.Type
	labels  int
}

func (g *Generator) lowerFunction(decl *ast.FunctionDecl) *gil.Function {
	fn := gil.NewFunction(decl.Name, decl.Signature())
	fn.Pos = decl.Position()
	fg := &funcGen{g: g, fn: fn, retType: decl.ReturnType}

	entry := fn.NewBlock(fg.label("entry"))
	fg.b = gil.NewBuilder(fn)
	fg.b.SetBlock(entry)
	fg.scope = newGenScope(nil)

	for _, p := range decl.Params {
		arg := entry.AddArg(p.Type)
		slot := fg.b.Alloca(p.Type)
		fg.b.Store(slot, arg, gil.StoreInit)
		fg.b.Debug(p.Name, slot)
		fg.scope.bind(p, slot)
	}

	fg.stmtList(decl.Body.Stmts)
	fg.finish()
	return fn
}

// finish implements function-lowering step 4: drop the function's own
// scope allocations in reverse order, then close the entry path with
// ret void or unreachable depending on the declared return type.
func (fg *funcGen) finish() {
	if fg.b.Block.Terminator != nil {
		return
	}
	fg.dropScope(fg.scope)
	if _, isVoid := types.Unwrap(fg.retType).(*types.Void); isVoid {
		fg.b.Ret(nil)
	} else {
		fg.b.Unreachable()
	}
}

func (fg *funcGen) label(prefix string) string {
	fg.labels++
	return fmt.Sprintf("%s.%d", prefix, fg.labels)
}

func (fg *funcGen) brIfOpen(target *gil.BasicBlock) {
	if fg.b.Block.Terminator == nil {
		fg.b.Br(target)
	}
}

func (fg *funcGen) pushScope() *genScope {
	fg.scope = newGenScope(fg.scope)
	return fg.scope
}

// popScope drops the current scope's allocations (in reverse declaration
// order) and restores the parent. Safe to call even on an unreachable
// continuation block: the drops are dead code DCE removes later, per
// spec.md §4.4/§4.5.
func (fg *funcGen) popScope() {
	fg.dropScope(fg.scope)
	fg.scope = fg.scope.parent
}

func (fg *funcGen) dropScope(s *genScope) {
	for i := len(s.order) - 1; i >= 0; i-- {
		fg.b.Drop(s.order[i].slot)
	}
}

// dropScopesUpTo emits drops for every scope from fg.scope up to (but not
// including) stop, used by break/continue/return to unwind the right
// number of scopes before branching out (spec.md §4.4: "walk the scope
// chain, dropping each scope's allocations in reverse until the
// enclosing loop scope").
func (fg *funcGen) dropScopesUpTo(stop *genScope) {
	for s := fg.scope; s != nil && s != stop; s = s.parent {
		fg.dropScope(s)
	}
}

func (fg *funcGen) stmtList(stmts []ast.Stmt) {
	for _, s := range stmts {
		fg.stmt(s)
	}
}

func (fg *funcGen) stmt(s ast.Stmt) {
	fg.b.SetPos(s.Position())
	switch v := s.(type) {
	case *ast.CompoundStmt:
		fg.pushScope()
		fg.stmtList(v.Stmts)
		fg.popScope()
	case *ast.IfStmt:
		fg.ifStmt(v)
	case *ast.WhileStmt:
		fg.whileStmt(v)
	case *ast.ForStmt:
		fg.forStmt(v)
	case *ast.ReturnStmt:
		fg.returnStmt(v)
	case *ast.BreakStmt:
		fg.breakOrContinue(true, v.Position())
	case *ast.ContinueStmt:
		fg.breakOrContinue(false, v.Position())
	case *ast.AssignStmt:
		rhs := fg.expr(v.RHS)
		ptr := fg.lvalue(v.LHS)
		fg.b.Store(ptr, rhs, gil.StoreUnknown)
	case *ast.DeclStmt:
		fg.declStmt(v.Decl)
	case *ast.ExpressionStmt:
		if val := fg.expr(v.Expr); val != nil && val.Type() != nil {
			fg.b.Drop(val)
		}
	}
}

func (fg *funcGen) declStmt(decl *ast.VarLetDecl) {
	slot := fg.b.Alloca(decl.DeclaredTy)
	fg.b.Debug(decl.Name, slot)
	if decl.Initializer != nil {
		val := fg.expr(decl.Initializer)
		fg.b.Store(slot, val, gil.StoreInit)
	}
	fg.scope.bind(decl, slot)
}

func (fg *funcGen) ifStmt(v *ast.IfStmt) {
	cond := fg.expr(v.Cond)
	thenBlk := fg.fn.NewBlock(fg.label("if.then"))
	endBlk := fg.fn.NewBlock(fg.label("if.end"))

	if v.Else != nil {
		elseBlk := fg.fn.NewBlock(fg.label("if.else"))
		fg.b.CondBr(cond, thenBlk, nil, elseBlk, nil)
		fg.b.SetBlock(thenBlk)
		fg.stmt(v.Then)
		fg.brIfOpen(endBlk)
		fg.b.SetBlock(elseBlk)
		fg.stmt(v.Else)
		fg.brIfOpen(endBlk)
	} else {
		fg.b.CondBr(cond, thenBlk, nil, endBlk, nil)
		fg.b.SetBlock(thenBlk)
		fg.stmt(v.Then)
		fg.brIfOpen(endBlk)
	}
	fg.b.SetBlock(endBlk)
}

func (fg *funcGen) whileStmt(v *ast.WhileStmt) {
	condBlk := fg.fn.NewBlock(fg.label("while.cond"))
	bodyBlk := fg.fn.NewBlock(fg.label("while.body"))
	endBlk := fg.fn.NewBlock(fg.label("while.end"))

	fg.b.Br(condBlk)
	fg.b.SetBlock(condBlk)
	cond := fg.expr(v.Cond)
	fg.b.CondBr(cond, bodyBlk, nil, endBlk, nil)

	fg.b.SetBlock(bodyBlk)
	loop := fg.pushScope()
	loop.breakDest, loop.contDest = endBlk, condBlk
	fg.stmtList(v.Body.Stmts)
	fg.popScope()
	fg.brIfOpen(condBlk)

	fg.b.SetBlock(endBlk)
}

func (fg *funcGen) returnStmt(v *ast.ReturnStmt) {
	var val gil.Value
	if v.Value != nil {
		val = fg.expr(v.Value)
	}
	fg.dropScopesUpTo(nil)
	fg.b.Ret(val)
	fg.b.SetBlock(fg.fn.NewBlock(fg.label("unreachable")))
}

func (fg *funcGen) breakOrContinue(isBreak bool, pos source.Pos) {
	loop := fg.scope.enclosingLoop()
	if loop == nil {
		fg.g.Sink.Errorf(diag.CodeBreakOutsideLoop, "gil", pos, "break/continue outside a loop")
		return
	}
	fg.dropScopesUpTo(loop)
	dest := loop.contDest
	if isBreak {
		dest = loop.breakDest
	}
	fg.b.Br(dest)
	fg.b.SetBlock(fg.fn.NewBlock(fg.label("unreachable")))
}
