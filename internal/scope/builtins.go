package scope

import (
	"fmt"

	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/types"
)

// Builtins is the distinguished scope holding primitive operators and a
// fixed set of built-in functions. It is built once, at package
// initialization; module scopes reach it through their parent chain.
// Grounded on the original source's ScopeTable::BUILTINS_NS.
var Builtins = buildBuiltins()

func newBuiltinOp(name string, params []types.Type, ret types.Type) *ast.FunctionDecl {
	return &ast.FunctionDecl{
		Name:       name,
		ReturnType: ret,
		Params:     paramsFor(params),
	}
}

func paramsFor(tys []types.Type) []*ast.ParamDecl {
	out := make([]*ast.ParamDecl, len(tys))
	for i, t := range tys {
		out[i] = &ast.ParamDecl{Name: fmt.Sprintf("arg%d", i), Type: t}
	}
	return out
}

func buildBuiltins() *Table {
	t := New(nil, nil)

	intWidths := []int{8, 16, 32, 64}
	for _, w := range intWidths {
		for _, signed := range []bool{true, false} {
			it := &types.Int{Signed: signed, BitWidth: w}
			registerArith(t, it)
			registerComparisons(t, it)
		}
	}
	for _, w := range []int{32, 64} {
		ft := &types.Float{BitWidth: w}
		registerArith(t, ft)
		registerComparisons(t, ft)
	}

	boolTy := types.BoolType()
	t.InsertItem("&&", newBuiltinOp("&&", []types.Type{boolTy, boolTy}, boolTy), ast.Public)
	t.InsertItem("||", newBuiltinOp("||", []types.Type{boolTy, boolTy}, boolTy), ast.Public)
	t.InsertItem("!", newBuiltinOp("!", []types.Type{boolTy}, boolTy), ast.Public)

	return t
}

func registerArith(t *Table, num types.Type) {
	for _, op := range []string{"+", "-", "*", "/", "%"} {
		t.InsertItem(op, newBuiltinOp(op, []types.Type{num, num}, num), ast.Public)
	}
	t.InsertItem("-u", newBuiltinOp("-u", []types.Type{num}, num), ast.Public)
}

func registerComparisons(t *Table, num types.Type) {
	b := types.BoolType()
	for _, op := range []string{"==", "!=", "<", "<=", ">", ">="} {
		t.InsertItem(op, newBuiltinOp(op, []types.Type{num, num}, b), ast.Public)
	}
}

// PointerDeref returns the synthetic unary `.*` operator for a given
// pointee type (spec.md §4.2's special-cased pointer-deref unary).
func PointerDeref(pointee types.Type) *ast.FunctionDecl {
	return newBuiltinOp(".*", []types.Type{&types.Pointer{Pointee: pointee, Kind: types.Raw}}, pointee)
}

// AddressOf returns the synthetic unary `&` operator for a given operand
// type.
func AddressOf(operand types.Type) *ast.FunctionDecl {
	return newBuiltinOp("&", []types.Type{operand}, &types.Pointer{Pointee: operand, Kind: types.Raw})
}

// PointerSubscript returns the synthetic binary `[]` operator for pointer
// indexing (spec.md §4.2/§4.4).
func PointerSubscript(elem types.Type) *ast.FunctionDecl {
	ptr := &types.Pointer{Pointee: elem, Kind: types.Raw}
	idx := types.Int64()
	return newBuiltinOp("[]", []types.Type{ptr, idx}, elem)
}
