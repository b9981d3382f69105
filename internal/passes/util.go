package passes

import "github.com/glu-lang/glu/internal/gil"

// forEachOperand visits every Value operand of inst, replacing it in place
// with whatever fn returns. Passes use this both to count uses (fn acts as
// an observer) and to rewrite the graph after splicing in new
// instructions (fn substitutes old for new).
func forEachOperand(inst gil.Inst, fn func(gil.Value) gil.Value) {
	switch v := inst.(type) {
	case *gil.LoadInst:
		v.Ptr = fn(v.Ptr)
	case *gil.StoreInst:
		v.Ptr = fn(v.Ptr)
		v.Val = fn(v.Val)
	case *gil.PtrOffsetInst:
		v.Ptr = fn(v.Ptr)
		v.Offset = fn(v.Offset)
	case *gil.StructCreateInst:
		for i := range v.Fields {
			v.Fields[i] = fn(v.Fields[i])
		}
	case *gil.ArrayCreateInst:
		for i := range v.Elements {
			v.Elements[i] = fn(v.Elements[i])
		}
	case *gil.StructExtractInst:
		v.Struct = fn(v.Struct)
	case *gil.StructFieldPtrInst:
		v.Struct = fn(v.Struct)
	case *gil.BitcastInst:
		v.Value = fn(v.Value)
	case *gil.IntTruncInst:
		v.Value = fn(v.Value)
	case *gil.IntZExtInst:
		v.Value = fn(v.Value)
	case *gil.IntSExtInst:
		v.Value = fn(v.Value)
	case *gil.FloatTruncInst:
		v.Value = fn(v.Value)
	case *gil.FloatExtInst:
		v.Value = fn(v.Value)
	case *gil.FloatToIntInst:
		v.Value = fn(v.Value)
	case *gil.IntToFloatInst:
		v.Value = fn(v.Value)
	case *gil.CastIntToPtrInst:
		v.Value = fn(v.Value)
	case *gil.CastPtrToIntInst:
		v.Value = fn(v.Value)
	case *gil.CallInst:
		for i := range v.Args {
			v.Args[i] = fn(v.Args[i])
		}
	case *gil.IndirectCallInst:
		v.Callee = fn(v.Callee)
		for i := range v.Args {
			v.Args[i] = fn(v.Args[i])
		}
	case *gil.DropInst:
		v.Value = fn(v.Value)
	case *gil.DebugInst:
		v.Slot = fn(v.Slot)
	}
}

func forEachTermOperand(t gil.Terminator, fn func(gil.Value) gil.Value) {
	switch v := t.(type) {
	case *gil.BrTerm:
		for i := range v.Args {
			v.Args[i] = fn(v.Args[i])
		}
	case *gil.CondBrTerm:
		v.Cond = fn(v.Cond)
		for i := range v.ThenArgs {
			v.ThenArgs[i] = fn(v.ThenArgs[i])
		}
		for i := range v.ElseArgs {
			v.ElseArgs[i] = fn(v.ElseArgs[i])
		}
	case *gil.RetTerm:
		if v.Value != nil {
			v.Value = fn(v.Value)
		}
	}
}

// replaceAllUses rewrites every operand across fn's instructions and
// terminators that points at old to point at replacement instead. Passes
// that splice in a new instruction for an old one (erase-copy-on-
// struct-extract, copy-lowering) use this to redirect the old result's
// users before deciding whether the old instruction is now dead.
func replaceAllUses(fn *gil.Function, old, replacement gil.Value) {
	swap := func(v gil.Value) gil.Value {
		if v == old {
			return replacement
		}
		return v
	}
	for _, blk := range fn.Blocks {
		for _, inst := range blk.Instructions {
			forEachOperand(inst, swap)
		}
		if blk.Terminator != nil {
			forEachTermOperand(blk.Terminator, swap)
		}
	}
}

// countUses returns, for every Value used as an operand anywhere in fn, how
// many times it is used. A Value absent from the map has zero uses.
func countUses(fn *gil.Function) map[gil.Value]int {
	counts := make(map[gil.Value]int)
	observe := func(v gil.Value) gil.Value {
		counts[v]++
		return v
	}
	for _, blk := range fn.Blocks {
		for _, inst := range blk.Instructions {
			forEachOperand(inst, observe)
		}
		if blk.Terminator != nil {
			forEachTermOperand(blk.Terminator, observe)
		}
	}
	return counts
}

// removeInstructions deletes every instruction in dead from whichever
// block it lives in.
func removeInstructions(fn *gil.Function, dead map[gil.Inst]bool) {
	if len(dead) == 0 {
		return
	}
	for _, blk := range fn.Blocks {
		kept := blk.Instructions[:0]
		for _, inst := range blk.Instructions {
			if dead[inst] {
				continue
			}
			kept = append(kept, inst)
		}
		blk.Instructions = kept
	}
}
