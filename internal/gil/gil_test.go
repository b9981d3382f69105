package gil

import (
	"strings"
	"testing"

	"github.com/glu-lang/glu/internal/types"
)

func TestBuilderLowersSimpleFunction(t *testing.T) {
	i32 := types.Int32()
	fn := NewFunction("identity", &types.Function{Params: []types.Type{i32}, ReturnType: i32})
	entry := fn.NewBlock("entry")
	arg := entry.AddArg(i32)

	b := NewBuilder(fn)
	b.SetBlock(entry)

	slot := b.Alloca(i32)
	b.Store(slot, arg, StoreInit)
	loaded := b.Load(slot, LoadCopy, i32)
	b.Ret(loaded)

	if len(entry.Instructions) != 3 {
		t.Fatalf("got %d instructions, want 3", len(entry.Instructions))
	}
	if entry.Terminator == nil {
		t.Fatal("block was not sealed")
	}
	if _, ok := entry.Terminator.(*RetTerm); !ok {
		t.Fatalf("terminator = %T, want *RetTerm", entry.Terminator)
	}

	out := Print(&Module{Name: "m", Functions: []*Function{fn}})
	for _, want := range []string{"module m", "func identity", "alloca Int32", "store [init]", "load [copy]", "ret %"} {
		if !strings.Contains(out, want) {
			t.Fatalf("printed output missing %q:\n%s", want, out)
		}
	}
}

func TestBuilderCallDirectVoidHasNoResult(t *testing.T) {
	void := &types.Void{}
	callee := &NamedFuncRef{Name: "log", Sig: &types.Function{ReturnType: void}}
	fn := NewFunction("caller", &types.Function{ReturnType: void})
	entry := fn.NewBlock("entry")

	b := NewBuilder(fn)
	b.SetBlock(entry)
	call := b.CallDirect(callee, nil)
	b.Ret(nil)

	if call.Type() != nil {
		t.Fatalf("void call result type = %v, want nil", call.Type())
	}
	if got := call.String(); strings.Contains(got, "=") {
		t.Fatalf("void call printed with a result binding: %q", got)
	}
}

func TestBranchSuccessors(t *testing.T) {
	fn := NewFunction("f", &types.Function{ReturnType: &types.Void{}})
	a := fn.NewBlock("a")
	c := fn.NewBlock("c")
	d := fn.NewBlock("d")

	cond := a.AddArg(types.BoolType())
	a.Seal(&CondBrTerm{Cond: cond, Then: c, Else: d})

	succ := a.Terminator.Successors()
	if len(succ) != 2 || succ[0] != c || succ[1] != d {
		t.Fatalf("Successors() = %v, want [c, d]", succ)
	}
}
