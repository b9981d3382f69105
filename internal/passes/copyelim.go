package passes

import (
	"github.com/glu-lang/glu/internal/diag"
	"github.com/glu-lang/glu/internal/gil"
)

// eraseCopyOnStructExtract rewrites `struct_extract(load[copy] p, f)` into
// `load[copy] struct_field_ptr(p, f)`, reading only the one field instead
// of copying the whole struct first, and erases the original whole-struct
// load if nothing else still uses it (spec.md §4.5 step 5).
func eraseCopyOnStructExtract(mod *gil.Module, sink *diag.Sink) {
	for _, fn := range mod.Functions {
		eraseCopyOnStructExtractFunc(fn)
	}
}

func eraseCopyOnStructExtractFunc(fn *gil.Function) {
	for _, blk := range fn.Blocks {
		old := blk.Instructions
		blk.Instructions = nil
		b := gil.NewBuilder(fn)
		b.SetBlock(blk)

		var candidates []*gil.LoadInst
		for _, inst := range old {
			se, ok := inst.(*gil.StructExtractInst)
			if !ok {
				blk.Instructions = append(blk.Instructions, inst)
				continue
			}
			ld, ok := se.Struct.(*gil.LoadInst)
			if !ok || ld.Ownership != gil.LoadCopy {
				blk.Instructions = append(blk.Instructions, inst)
				continue
			}
			b.SetPos(se.Position())
			fieldPtr := b.StructFieldPtr(ld.Ptr, se.Member)
			newLoad := b.Load(fieldPtr, gil.LoadCopy, se.Member.FieldType)
			replaceAllUses(fn, se, newLoad)
			candidates = append(candidates, ld)
		}
		if len(candidates) == 0 {
			continue
		}
		uses := countUses(fn)
		dead := map[gil.Inst]bool{}
		for _, ld := range candidates {
			if uses[ld] == 0 {
				dead[ld] = true
			}
		}
		removeInstructions(fn, dead)
	}
}

// simplifyCopyToDrop rewrites the pattern
//
//	v1 = load[copy] p
//	v2 = load[take] p
//	drop v2
//
// (where v2 has no other user) into `v1 = load[take] p`, since taking
// ownership and then immediately dropping it is equivalent to the earlier
// copy simply taking ownership itself (spec.md §4.5 step 6).
func simplifyCopyToDrop(mod *gil.Module, sink *diag.Sink) {
	for _, fn := range mod.Functions {
		simplifyCopyToDropFunc(fn)
	}
}

func simplifyCopyToDropFunc(fn *gil.Function) {
	uses := countUses(fn)
	for _, blk := range fn.Blocks {
		dead := map[gil.Inst]bool{}
		for i, inst := range blk.Instructions {
			drop, ok := inst.(*gil.DropInst)
			if !ok {
				continue
			}
			v2, ok := drop.Value.(*gil.LoadInst)
			if !ok || v2.Ownership != gil.LoadTake || uses[v2] != 1 {
				continue
			}
			v1 := findPrecedingCopyLoad(blk.Instructions[:i], v2.Ptr)
			if v1 == nil {
				continue
			}
			v1.Ownership = gil.LoadTake
			dead[v2] = true
			dead[drop] = true
		}
		removeInstructions(fn, dead)
	}
}

func findPrecedingCopyLoad(insts []gil.Inst, ptr gil.Value) *gil.LoadInst {
	for i := len(insts) - 1; i >= 0; i-- {
		if ld, ok := insts[i].(*gil.LoadInst); ok && ld.Ptr == ptr && ld.Ownership == gil.LoadCopy {
			return ld
		}
	}
	return nil
}
