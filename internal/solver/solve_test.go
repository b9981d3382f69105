package solver

import (
	"testing"

	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/constraint"
	"github.com/glu-lang/glu/internal/types"
)

func lit(kind ast.LiteralKind) *ast.LiteralExpr {
	l := &ast.LiteralExpr{Kind: kind}
	l.SetType(types.NewTypeVariable())
	return l
}

func TestSolveDefaultsIntLiteralToInt32(t *testing.T) {
	l := lit(ast.IntLit)
	cs := []*constraint.Constraint{
		constraint.NewExpressibleBy(l, constraint.ExpressibleByIntLiteral, l.Type()),
		constraint.NewDefaultable(l, l.Type(), types.Int32()),
	}
	sol, err := Solve(cs)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	got := Apply(sol.Bindings, l.Type())
	if !got.Equals(types.Int32()) {
		t.Fatalf("defaulted type = %s, want int32", got)
	}
}

func TestSolveRejectsInfiniteType(t *testing.T) {
	tv := types.NewTypeVariable()
	ptr := &types.Pointer{Pointee: tv, Kind: types.Raw}
	cs := []*constraint.Constraint{
		constraint.NewBind(nil, tv, ptr),
	}
	if _, err := Solve(cs); err == nil {
		t.Fatal("expected occurs-check failure, got nil error")
	}
}

func TestSolveBacktracksOverloadDisjunction(t *testing.T) {
	// Two candidate signatures for "f": (int32)->int32 and (int64)->int64.
	// Binding the call's argument to int64 must select the second one.
	i32, i64 := types.Int32(), types.Int64()
	call := &ast.LiteralExpr{} // stand-in locator, not inspected by Bind
	call.SetType(types.NewTypeVariable())

	fn32 := &ast.FunctionDecl{Name: "f", ReturnType: i32, Params: []*ast.ParamDecl{{Name: "a", Type: i32}}}
	fn64 := &ast.FunctionDecl{Name: "f", ReturnType: i64, Params: []*ast.ParamDecl{{Name: "a", Type: i64}}}

	resultTV := types.NewTypeVariable()
	wanted := &types.Function{Params: []types.Type{i64}, ReturnType: resultTV}

	branch32 := constraint.NewBindOverload(call, wanted, fn32)
	branch64 := constraint.NewBindOverload(call, wanted, fn64)
	disj := constraint.NewDisjunction(call, true, branch32, branch64)

	sol, err := Solve([]*constraint.Constraint{disj})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	chosen, ok := sol.Operators[call]
	if !ok || chosen != fn64 {
		t.Fatalf("chosen overload = %v, want fn64 (branch32 should have failed unification)", chosen)
	}
	got := Apply(sol.Bindings, resultTV)
	if !got.Equals(i64) {
		t.Fatalf("result type = %s, want int64", got)
	}
}

func TestSolveAmbiguousWhenTiedScores(t *testing.T) {
	tv := types.NewTypeVariable()
	i32, i64 := types.Int32(), types.Int64()
	branchA := constraint.NewBind(nil, tv, i32)
	branchB := constraint.NewBind(nil, tv, i64)
	disj := constraint.NewDisjunction(nil, false, branchA, branchB)

	if _, err := Solve([]*constraint.Constraint{disj}); err == nil {
		t.Fatal("expected ambiguity error when both branches tie at score 0")
	}
}

func TestConvertImplicitWideningRecordsConversion(t *testing.T) {
	i32, i64 := types.Int32(), types.Int64()
	l := lit(ast.IntLit)
	l.SetType(i32)
	cs := []*constraint.Constraint{
		constraint.NewConversion(l, l.Type(), i64),
	}
	sol, err := Solve(cs)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(sol.Conversions) != 1 {
		t.Fatalf("len(Conversions) = %d, want 1", len(sol.Conversions))
	}
	if sol.Conversions[0].Expr != l {
		t.Fatalf("recorded conversion against wrong expression")
	}
}
