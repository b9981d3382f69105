package passes

import (
	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/diag"
	"github.com/glu-lang/glu/internal/gil"
	"github.com/glu-lang/glu/internal/types"
)

// copyLowering resolves every remaining `load[copy]` of a struct type: if
// the struct declares an overloaded copy function, the load becomes a
// call to it; otherwise ownership downgrades to `load[none]`, since a
// struct with no user-defined copy is trivially bitwise-copyable at this
// level (spec.md §4.5 step 7). Loads of non-struct types are left alone —
// scalar copies are always trivial and have no copy function to call.
func copyLowering(mod *gil.Module, sink *diag.Sink) {
	for _, fn := range mod.Functions {
		copyLoweringFunc(fn)
	}
}

func copyLoweringFunc(fn *gil.Function) {
	for _, blk := range fn.Blocks {
		old := blk.Instructions
		blk.Instructions = nil
		b := gil.NewBuilder(fn)
		b.SetBlock(blk)

		for _, inst := range old {
			ld, ok := inst.(*gil.LoadInst)
			if !ok || ld.Ownership != gil.LoadCopy {
				blk.Instructions = append(blk.Instructions, inst)
				continue
			}
			st, ok := types.Unwrap(ld.Type()).(*types.Struct)
			if !ok {
				blk.Instructions = append(blk.Instructions, inst)
				continue
			}
			sd, ok := st.Decl.(*ast.StructDecl)
			if !ok || sd.CopyFunc == nil {
				ld.Ownership = gil.LoadNone
				blk.Instructions = append(blk.Instructions, inst)
				continue
			}
			b.SetPos(ld.Position())
			call := b.CallDirect(sd.CopyFunc, []gil.Value{ld.Ptr})
			replaceAllUses(fn, ld, call)
		}
	}
}

// dropLowering resolves every remaining `drop` into a concrete call: a
// struct with an overloaded drop function gets its value spilled to a
// fresh temporary and passed to that function by pointer; anything else
// (including a struct with no drop function) is trivial and the drop
// simply disappears (spec.md §4.5 step 8).
func dropLowering(mod *gil.Module, sink *diag.Sink) {
	for _, fn := range mod.Functions {
		dropLoweringFunc(fn)
	}
}

func dropLoweringFunc(fn *gil.Function) {
	for _, blk := range fn.Blocks {
		old := blk.Instructions
		blk.Instructions = nil
		b := gil.NewBuilder(fn)
		b.SetBlock(blk)

		for _, inst := range old {
			drop, ok := inst.(*gil.DropInst)
			if !ok {
				blk.Instructions = append(blk.Instructions, inst)
				continue
			}
			st, ok := types.Unwrap(drop.Value.Type()).(*types.Struct)
			if !ok {
				continue
			}
			sd, ok := st.Decl.(*ast.StructDecl)
			if !ok || sd.DropFunc == nil {
				continue
			}
			b.SetPos(drop.Position())
			tmp := b.Alloca(st)
			b.Store(tmp, drop.Value, gil.StoreInit)
			b.CallDirect(sd.DropFunc, []gil.Value{tmp})
		}
	}
}
