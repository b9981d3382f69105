package gilgen

import (
	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/diag"
	"github.com/glu-lang/glu/internal/gil"
	"github.com/glu-lang/glu/internal/types"
)

// expr lowers a fully-typed expression to its GIL value, per spec.md
// §4.4's expression-lowering table.
func (fg *funcGen) expr(e ast.Expr) gil.Value {
	switch v := e.(type) {
	case *ast.LiteralExpr:
		return fg.literal(v)
	case *ast.RefExpr:
		return fg.refExpr(v)
	case *ast.CallExpr:
		return fg.callExpr(v)
	case *ast.BinaryOpExpr:
		return fg.binaryOp(v)
	case *ast.UnaryOpExpr:
		return fg.unaryOp(v)
	case *ast.TernaryExpr:
		return fg.ternary(v)
	case *ast.CastExpr:
		return fg.cast(v)
	case *ast.StructInitializerExpr:
		return fg.structInit(v)
	case *ast.StructMemberExpr:
		base := fg.expr(v.Base)
		return fg.b.StructExtract(base, fg.member(v))
	}
	fg.g.Sink.Errorf(diag.CodeUnresolvedIdentifier, "gil", e.Position(), "unsupported expression kind")
	return fg.b.Alloca(e.Type())
}

func (fg *funcGen) literal(l *ast.LiteralExpr) gil.Value {
	switch l.Kind {
	case ast.IntLit:
		return fg.b.IntLiteral(l.Value.(int64), l.Type())
	case ast.FloatLit:
		return fg.b.FloatLiteral(l.Value.(float64), l.Type())
	case ast.BoolLit:
		return fg.b.BoolLiteral(l.Value.(bool))
	case ast.StringLit:
		return fg.b.StringLiteral(l.Value.(string))
	}
	fg.g.Sink.Errorf(diag.CodeUnresolvedIdentifier, "gil", l.Position(), "unknown literal kind")
	return fg.b.BoolLiteral(false)
}

func (fg *funcGen) refExpr(r *ast.RefExpr) gil.Value {
	if fn, ok := r.Variable.(*ast.FunctionDecl); ok {
		return fg.b.FunctionPtr(fn)
	}
	ptr := fg.lvalueRef(r)
	return fg.b.Load(ptr, gil.LoadCopy, r.Type())
}

func (fg *funcGen) callExpr(c *ast.CallExpr) gil.Value {
	if ref, ok := c.Callee.(*ast.RefExpr); ok {
		if fn, ok := ref.Variable.(*ast.FunctionDecl); ok {
			return fg.b.CallDirect(fn, fg.callArgs(fn, c.Args))
		}
	}
	callee := fg.expr(c.Callee)
	args := make([]gil.Value, len(c.Args))
	for i, a := range c.Args {
		args[i] = fg.expr(a)
	}
	return fg.b.CallIndirect(callee, args, c.Type())
}

// callArgs evaluates the call's explicit arguments, then fills in any
// trailing parameters the call omitted from their declared defaults
// (spec.md §4.4: "substituting the field's default initializer expression
// for any omitted field" generalizes to call arguments the same way).
func (fg *funcGen) callArgs(fn *ast.FunctionDecl, args []ast.Expr) []gil.Value {
	out := make([]gil.Value, 0, len(fn.Params))
	for i, p := range fn.Params {
		if i < len(args) {
			out = append(out, fg.expr(args[i]))
			continue
		}
		out = append(out, fg.expr(p.Default))
	}
	return out
}

func (fg *funcGen) binaryOp(b *ast.BinaryOpExpr) gil.Value {
	switch b.Op {
	case "&&":
		return fg.shortCircuit(b, false)
	case "||":
		return fg.shortCircuit(b, true)
	case "[]":
		ptr := fg.lvalue(b)
		return fg.b.Load(ptr, gil.LoadCopy, b.Type())
	}
	fn, ok := b.Operator.(*ast.FunctionDecl)
	if !ok {
		fg.g.Sink.Errorf(diag.CodeNoOverloadMatches, "gil", b.Position(), "operator %q has no resolved overload", b.Op)
		return fg.b.BoolLiteral(false)
	}
	left := fg.expr(b.Left)
	right := fg.expr(b.Right)
	return fg.b.CallDirect(fn, []gil.Value{left, right})
}

// shortCircuit lowers && and || to a three-block branch: the right
// operand is only evaluated when its result can change the outcome,
// joined by a block argument that carries the result (spec.md §4.4's
// "a result-taking join block" for short-circuit operators).
func (fg *funcGen) shortCircuit(b *ast.BinaryOpExpr, isOr bool) gil.Value {
	left := fg.expr(b.Left)
	rhsBlk := fg.fn.NewBlock(fg.label("sc.rhs"))
	joinBlk := fg.fn.NewBlock(fg.label("sc.join"))
	joinArg := joinBlk.AddArg(types.BoolType())

	shortValue := fg.b.BoolLiteral(isOr)
	if isOr {
		fg.b.CondBr(left, joinBlk, []gil.Value{shortValue}, rhsBlk, nil)
	} else {
		fg.b.CondBr(left, rhsBlk, nil, joinBlk, []gil.Value{shortValue})
	}

	fg.b.SetBlock(rhsBlk)
	right := fg.expr(b.Right)
	fg.b.Br(joinBlk, right)

	fg.b.SetBlock(joinBlk)
	return joinArg
}

func (fg *funcGen) unaryOp(u *ast.UnaryOpExpr) gil.Value {
	switch u.Op {
	case ".*":
		ptr := fg.expr(u.Operand)
		return fg.b.Load(ptr, gil.LoadCopy, u.Type())
	case "&":
		return fg.lvalue(u.Operand)
	}
	fn, ok := u.Operator.(*ast.FunctionDecl)
	if !ok {
		fg.g.Sink.Errorf(diag.CodeNoOverloadMatches, "gil", u.Position(), "operator %q has no resolved overload", u.Op)
		return fg.b.BoolLiteral(false)
	}
	operand := fg.expr(u.Operand)
	return fg.b.CallDirect(fn, []gil.Value{operand})
}

// ternary lowers `cond ? then : else` the same way as an if/else with a
// result-carrying join block, since unlike IfStmt it always yields a
// value.
func (fg *funcGen) ternary(t *ast.TernaryExpr) gil.Value {
	cond := fg.expr(t.Cond)
	thenBlk := fg.fn.NewBlock(fg.label("tern.then"))
	elseBlk := fg.fn.NewBlock(fg.label("tern.else"))
	joinBlk := fg.fn.NewBlock(fg.label("tern.join"))
	joinArg := joinBlk.AddArg(t.Type())

	fg.b.CondBr(cond, thenBlk, nil, elseBlk, nil)

	fg.b.SetBlock(thenBlk)
	thenVal := fg.expr(t.Then)
	fg.b.Br(joinBlk, thenVal)

	fg.b.SetBlock(elseBlk)
	elseVal := fg.expr(t.Else)
	fg.b.Br(joinBlk, elseVal)

	fg.b.SetBlock(joinBlk)
	return joinArg
}

// cast dispatches a (possibly synthetic) conversion to its concrete GIL
// cast opcode by source/target type-variant pair (spec.md §4.4's cast
// dispatch table). A static array decaying to a pointer to its first
// element uses the operand's l-value instead of its value, since the
// array itself has no standalone SSA value.
func (fg *funcGen) cast(c *ast.CastExpr) gil.Value {
	target := c.TargetType
	srcTy := types.Unwrap(c.Value.Type())

	if _, isArr := srcTy.(*types.StaticArray); isArr {
		if _, toPtr := types.Unwrap(target).(*types.Pointer); toPtr {
			return fg.b.Bitcast(fg.lvalue(c.Value), target)
		}
	}

	val := fg.expr(c.Value)
	dstTy := types.Unwrap(target)

	switch src := srcTy.(type) {
	case *types.Int:
		switch dst := dstTy.(type) {
		case *types.Int:
			switch {
			case dst.BitWidth < src.BitWidth:
				return fg.b.IntTrunc(val, target)
			case dst.BitWidth > src.BitWidth && src.Signed:
				return fg.b.IntSExt(val, target)
			case dst.BitWidth > src.BitWidth:
				return fg.b.IntZExt(val, target)
			default:
				return fg.b.Bitcast(val, target)
			}
		case *types.Float:
			return fg.b.IntToFloat(val, target)
		case *types.Pointer:
			return fg.b.CastIntToPtr(val, target)
		}
	case *types.Float:
		switch dst := dstTy.(type) {
		case *types.Float:
			if dst.BitWidth < src.BitWidth {
				return fg.b.FloatTrunc(val, target)
			}
			return fg.b.FloatExt(val, target)
		case *types.Int:
			return fg.b.FloatToInt(val, target)
		}
	case *types.Pointer:
		if _, toInt := dstTy.(*types.Int); toInt {
			return fg.b.CastPtrToInt(val, target)
		}
		return fg.b.Bitcast(val, target)
	}
	return fg.b.Bitcast(val, target)
}

func (fg *funcGen) structInit(s *ast.StructInitializerExpr) gil.Value {
	st, ok := types.Unwrap(s.Type()).(*types.Struct)
	if !ok {
		fg.g.Sink.Errorf(diag.CodeUnresolvedType, "gil", s.Position(), "struct initializer has no resolved struct type")
		return fg.b.Alloca(s.Type())
	}
	fields := make([]gil.Value, len(st.Decl.FieldNames()))
	for i, name := range st.Decl.FieldNames() {
		if v, ok := fieldValue(s, name); ok {
			fields[i] = fg.expr(v)
			continue
		}
		if sd, ok := st.Decl.(*ast.StructDecl); ok {
			for _, f := range sd.Fields {
				if f.Name == name && f.Default != nil {
					fields[i] = fg.expr(f.Default)
				}
			}
		}
	}
	return fg.b.StructCreate(st, fields)
}

func fieldValue(s *ast.StructInitializerExpr, name string) (ast.Expr, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}
