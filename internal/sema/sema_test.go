package sema

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/diag"
	"github.com/glu-lang/glu/internal/scope"
	"github.com/glu-lang/glu/internal/types"
)

func intLit(v int64) *ast.LiteralExpr {
	l := &ast.LiteralExpr{Kind: ast.IntLit, Value: v}
	l.SetType(types.NewTypeVariable())
	return l
}

// CheckFunction should default a bare integer literal return to the
// declared return type without reporting any diagnostic.
func TestCheckFunctionDefaultsLiteralToDeclaredReturnType(t *testing.T) {
	ret := intLit(1)
	fn := &ast.FunctionDecl{
		Name:       "one",
		ReturnType: types.Int32(),
		Body:       &ast.CompoundStmt{Stmts: []ast.Stmt{&ast.ReturnStmt{Value: ret}}},
	}

	sink := diag.NewSink()
	mod := scope.New(scope.Builtins, &ast.ModuleDecl{Name: "m"})
	CheckFunction(sink, fn, mod)

	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	if !ret.Type().Equals(types.Int32()) {
		t.Fatalf("return literal type = %s, want int32", ret.Type())
	}
}

// A call argument that is an already-int32-typed parameter, passed where
// the callee declares an int64 parameter, should be implicitly widened
// with a synthetic cast, and the call's callee RefExpr should resolve to
// the single matching overload.
func TestCheckFunctionResolvesOverloadAndWidensArgument(t *testing.T) {
	i32, i64 := types.Int32(), types.Int64()
	callee := &ast.FunctionDecl{
		Name:       "f",
		ReturnType: i64,
		Params:     []*ast.ParamDecl{{Name: "a", Type: i64}},
	}
	param := &ast.ParamDecl{Name: "n", Type: i32}

	arg := &ast.RefExpr{Name: "n"}
	arg.SetType(types.NewTypeVariable())
	ref := &ast.RefExpr{Name: "f"}
	ref.SetType(types.NewTypeVariable())
	call := &ast.CallExpr{Callee: ref, Args: []ast.Expr{arg}}
	call.SetType(types.NewTypeVariable())

	fn := &ast.FunctionDecl{
		Name:       "caller",
		ReturnType: i64,
		Params:     []*ast.ParamDecl{param},
		Body:       &ast.CompoundStmt{Stmts: []ast.Stmt{&ast.ReturnStmt{Value: call}}},
	}

	sink := diag.NewSink()
	moduleScope := scope.New(scope.Builtins, &ast.ModuleDecl{Name: "m"})
	moduleScope.InsertItem("f", callee, ast.Public)

	CheckFunction(sink, fn, moduleScope)

	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	if ref.Variable != ast.Decl(callee) {
		t.Fatalf("resolved overload = %v, want callee", ref.Variable)
	}
	if !call.Type().Equals(i64) {
		t.Fatalf("call result type = %s, want int64", call.Type())
	}

	_, widened := call.Args[0].(*ast.CastExpr)
	if !widened {
		t.Fatalf("argument was not wrapped in a synthetic widening cast: %T", call.Args[0])
	}
}

// A reference to a name that no enclosing scope declares is reported as an
// error (CodeUnresolvedIdentifier) instead of resolving to anything.
func TestCheckFunctionReportsUnresolvedIdentifier(t *testing.T) {
	ref := &ast.RefExpr{Name: "nonexistent"}
	ref.SetType(types.NewTypeVariable())
	stmt := &ast.ExpressionStmt{Expr: ref}

	fn := &ast.FunctionDecl{
		Name:       "f",
		ReturnType: &types.Void{},
		Body:       &ast.CompoundStmt{Stmts: []ast.Stmt{stmt}},
	}

	sink := diag.NewSink()
	moduleScope := scope.New(scope.Builtins, &ast.ModuleDecl{Name: "m"})
	CheckFunction(sink, fn, moduleScope)

	if !sink.HasErrors() {
		t.Fatal("expected an error for an unresolved identifier")
	}
}

// A declared local variable should be visible to statements later in the
// same block, its type flowing from its initializer.
func TestCheckFunctionDeclStmtExtendsScope(t *testing.T) {
	i32 := types.Int32()
	decl := &ast.VarLetDecl{Name: "x", Initializer: intLit(5)}

	ref := &ast.RefExpr{Name: "x"}
	ref.SetType(types.NewTypeVariable())

	fn := &ast.FunctionDecl{
		Name:       "f",
		ReturnType: i32,
		Body: &ast.CompoundStmt{Stmts: []ast.Stmt{
			&ast.DeclStmt{Decl: decl},
			&ast.ReturnStmt{Value: ref},
		}},
	}

	sink := diag.NewSink()
	moduleScope := scope.New(scope.Builtins, &ast.ModuleDecl{Name: "m"})
	CheckFunction(sink, fn, moduleScope)

	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	if ref.Variable != ast.Decl(decl) {
		t.Fatalf("reference did not resolve to the local declaration: %v", ref.Variable)
	}
	if diff := cmp.Diff(i32, ref.Type()); diff != "" {
		t.Fatalf("resolved type mismatch (-want +got):\n%s", diff)
	}
}
