package gilgen

import (
	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/diag"
	"github.com/glu-lang/glu/internal/gil"
	"github.com/glu-lang/glu/internal/types"
)

// lvalue evaluates e as a pointer to its storage, per spec.md §4.4's
// l-value table: a RefExpr to a local/param/global yields its backing
// slot directly, a struct member yields a struct_field_ptr off its base's
// l-value, a pointer deref yields the pointer value itself, and a pointer
// subscript yields a ptr_offset.
func (fg *funcGen) lvalue(e ast.Expr) gil.Value {
	switch v := e.(type) {
	case *ast.RefExpr:
		return fg.lvalueRef(v)

	case *ast.StructMemberExpr:
		base := fg.lvalue(v.Base)
		return fg.b.StructFieldPtr(base, fg.member(v))

	case *ast.UnaryOpExpr:
		if v.Op == ".*" {
			return fg.expr(v.Operand)
		}

	case *ast.BinaryOpExpr:
		if v.Op == "[]" {
			ptr := fg.expr(v.Left)
			idx := fg.expr(v.Right)
			elemTy := e.Type()
			return fg.b.PtrOffset(ptr, idx, &types.Pointer{Pointee: elemTy, Kind: types.Raw})
		}
	}
	fg.g.Sink.Errorf(diag.CodeInvalidLValue, "gil", e.Position(), "expression is not assignable")
	return fg.b.Alloca(e.Type())
}

func (fg *funcGen) lvalueRef(r *ast.RefExpr) gil.Value {
	switch decl := r.Variable.(type) {
	case *ast.ParamDecl:
		if slot, ok := fg.scope.lookup(decl); ok {
			return slot
		}
	case *ast.VarLetDecl:
		if slot, ok := fg.scope.lookup(decl); ok {
			return slot
		}
		if g, ok := fg.g.globals[decl]; ok {
			return fg.b.GlobalPtr(g)
		}
	}
	fg.g.Sink.Errorf(diag.CodeUnresolvedIdentifier, "gil", r.Position(), "unresolved binding for %q", r.Name)
	return fg.b.Alloca(r.Type())
}

func (fg *funcGen) member(m *ast.StructMemberExpr) gil.Member {
	return gil.Member{Name: m.Member, FieldType: m.Type(), StructType: types.Unwrap(m.Base.Type())}
}
