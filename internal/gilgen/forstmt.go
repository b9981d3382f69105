package gilgen

import (
	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/diag"
	"github.com/glu-lang/glu/internal/gil"
	"github.com/glu-lang/glu/internal/scope"
	"github.com/glu-lang/glu/internal/source"
	"github.com/glu-lang/glu/internal/types"
)

func (fg *funcGen) forStmt(v *ast.ForStmt) {
	if arr, ok := types.Unwrap(v.Range.Type()).(*types.StaticArray); ok {
		fg.forStaticArray(v, arr)
		return
	}
	fg.forIterator(v)
}

// forStaticArray expands the loop inline to pointer iteration (spec.md
// §4.4): begin/end pointers computed once, a loop-variable alloca that is
// re-derefed every iteration, and a pointer-equality test against end via
// the builtin unsigned-64 equality operator.
func (fg *funcGen) forStaticArray(v *ast.ForStmt, arr *types.StaticArray) {
	base := fg.lvalue(v.Range)
	elemPtrTy := &types.Pointer{Pointee: arr.Elem, Kind: types.Raw}

	begin := fg.b.Bitcast(base, elemPtrTy)
	size := fg.b.IntLiteral(arr.Size, types.Int64())
	end := fg.b.PtrOffset(begin, size, elemPtrTy)

	iterSlot := fg.b.Alloca(elemPtrTy)
	fg.b.Store(iterSlot, begin, gil.StoreInit)

	condBlk := fg.fn.NewBlock(fg.label("for.cond"))
	bodyBlk := fg.fn.NewBlock(fg.label("for.body"))
	endBlk := fg.fn.NewBlock(fg.label("for.end"))
	fg.b.Br(condBlk)

	fg.b.SetBlock(condBlk)
	cur := fg.b.Load(iterSlot, gil.LoadCopy, elemPtrTy)
	curInt := fg.b.CastPtrToInt(cur, types.UInt64())
	endInt := fg.b.CastPtrToInt(end, types.UInt64())
	eq := fg.callBuiltin("==", []gil.Value{curInt, endInt}, v.Position())
	fg.b.CondBr(eq, endBlk, nil, bodyBlk, nil)

	fg.b.SetBlock(bodyBlk)
	loop := fg.pushScope()
	loop.breakDest, loop.contDest = endBlk, condBlk

	elemPtr := fg.b.Load(iterSlot, gil.LoadCopy, elemPtrTy)
	elemVal := fg.b.Load(elemPtr, gil.LoadCopy, arr.Elem)
	varSlot := fg.b.Alloca(arr.Elem)
	fg.b.Store(varSlot, elemVal, gil.StoreInit)
	fg.b.Debug(v.Var, varSlot)
	loop.bind(v.VarDecl, varSlot)

	fg.stmtList(v.Body.Stmts)
	if fg.b.Block.Terminator == nil {
		advBase := fg.b.Load(iterSlot, gil.LoadCopy, elemPtrTy)
		one := fg.b.IntLiteral(1, types.Int64())
		next := fg.b.PtrOffset(advBase, one, elemPtrTy)
		fg.b.Store(iterSlot, next, gil.StoreSet)
	}
	fg.popScope()
	fg.brIfOpen(condBlk)
	fg.b.SetBlock(endBlk)
}

// forIterator lowers the generic for-loop protocol (spec.md §4.4): call
// beginFunc(range)/endFunc(range) once, then per-iteration
// equalityFunc(iter,end)/derefFunc(iter)/nextFunc(iter).
func (fg *funcGen) forIterator(v *ast.ForStmt) {
	if v.BeginFunc == nil || v.EndFunc == nil || v.EqualityFunc == nil || v.DerefFunc == nil || v.NextFunc == nil {
		fg.g.Sink.Errorf(diag.CodeNoOverloadMatches, "gil", v.Position(), "for-loop range does not resolve to a complete iterator protocol")
		return
	}
	rangeVal := fg.expr(v.Range)
	begin := fg.b.CallDirect(v.BeginFunc, []gil.Value{rangeVal})
	end := fg.b.CallDirect(v.EndFunc, []gil.Value{rangeVal})

	iterTy := v.BeginFunc.ReturnType
	iterSlot := fg.b.Alloca(iterTy)
	fg.b.Store(iterSlot, begin, gil.StoreInit)

	condBlk := fg.fn.NewBlock(fg.label("for.cond"))
	bodyBlk := fg.fn.NewBlock(fg.label("for.body"))
	endBlk := fg.fn.NewBlock(fg.label("for.end"))
	fg.b.Br(condBlk)

	fg.b.SetBlock(condBlk)
	iter := fg.b.Load(iterSlot, gil.LoadCopy, iterTy)
	eq := fg.b.CallDirect(v.EqualityFunc, []gil.Value{iter, end})
	fg.b.CondBr(eq, endBlk, nil, bodyBlk, nil)

	fg.b.SetBlock(bodyBlk)
	loop := fg.pushScope()
	loop.breakDest, loop.contDest = endBlk, condBlk

	iterForDeref := fg.b.Load(iterSlot, gil.LoadCopy, iterTy)
	elemVal := fg.b.CallDirect(v.DerefFunc, []gil.Value{iterForDeref})
	varSlot := fg.b.Alloca(v.DerefFunc.ReturnType)
	fg.b.Store(varSlot, elemVal, gil.StoreInit)
	fg.b.Debug(v.Var, varSlot)
	loop.bind(v.VarDecl, varSlot)

	fg.stmtList(v.Body.Stmts)
	if fg.b.Block.Terminator == nil {
		iterForNext := fg.b.Load(iterSlot, gil.LoadCopy, iterTy)
		next := fg.b.CallDirect(v.NextFunc, []gil.Value{iterForNext})
		fg.b.Store(iterSlot, next, gil.StoreSet)
	}
	fg.popScope()
	fg.brIfOpen(condBlk)
	fg.b.SetBlock(endBlk)
}

// callBuiltin emits a direct call to a primitive operator synthesized
// from the operand types, the same FunctionDecl family the solver binds
// user BinaryOpExprs against (internal/scope's Builtins table); used here
// for the compiler-synthesized pointer-equality test a static-array for
// loop needs but that no user expression names directly.
func (fg *funcGen) callBuiltin(op string, args []gil.Value, pos source.Pos) gil.Value {
	res := scope.Builtins.Lookup(scope.Ident{Name: op})
	for _, item := range res.Items {
		fn, ok := item.Item.(*ast.FunctionDecl)
		if !ok || len(fn.Params) != len(args) {
			continue
		}
		match := true
		for i, p := range fn.Params {
			if !p.Type.Equals(args[i].Type()) {
				match = false
				break
			}
		}
		if match {
			return fg.b.CallDirect(fn, args)
		}
	}
	fg.g.Sink.Errorf(diag.CodeNoOverloadMatches, "gil", pos, "no builtin overload for operator %q", op)
	return fg.b.BoolLiteral(false)
}
