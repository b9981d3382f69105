package gil

import (
	"fmt"
	"strings"
)

// Print renders m in a debugging-only textual form (spec.md §6: "textual
// format roundtrips the IR for debugging. Not required to be parseable").
func Print(m *Module) string {
	var b strings.Builder
	fmt.Fprintf(&b, "module %s\n", m.Name)
	for _, g := range m.Globals {
		fmt.Fprintf(&b, "global %s: %s\n", g.Name, g.Type)
	}
	for _, fn := range m.Functions {
		printFunction(&b, fn)
	}
	return b.String()
}

func printFunction(b *strings.Builder, fn *Function) {
	fmt.Fprintf(b, "\nfunc %s%s {\n", fn.Name, fn.Type)
	for _, blk := range fn.Blocks {
		printBlock(b, blk)
	}
	fmt.Fprintf(b, "}\n")
}

func printBlock(b *strings.Builder, blk *BasicBlock) {
	fmt.Fprintf(b, "%s(%s):\n", blk.Label, argList(blk.Args))
	for _, inst := range blk.Instructions {
		fmt.Fprintf(b, "  %s\n", inst.String())
	}
	if blk.Terminator != nil {
		fmt.Fprintf(b, "  %s\n", blk.Terminator.String())
	} else {
		fmt.Fprintf(b, "  <unsealed>\n")
	}
}

func argList(args []*BlockArg) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprintf("%s: %s", valueName(a), a.Ty)
	}
	return strings.Join(parts, ", ")
}

func valueName(v Value) string {
	switch x := v.(type) {
	case *BlockArg:
		return fmt.Sprintf("%%arg%d", x.Index)
	case Inst:
		return fmt.Sprintf("%%%d", x.ID())
	default:
		return "%?"
	}
}

func result(i Inst) string {
	if i.Type() == nil {
		return ""
	}
	return fmt.Sprintf("%s = ", valueName(i))
}

func valueArgs(vs []Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = valueName(v)
	}
	return strings.Join(parts, ", ")
}

func (i *AllocaInst) String() string {
	return fmt.Sprintf("%salloca %s", result(i), i.ElemType)
}

func (i *LoadInst) String() string {
	return fmt.Sprintf("%sload [%s] %s", result(i), i.Ownership, valueName(i.Ptr))
}

func (i *StoreInst) String() string {
	return fmt.Sprintf("store [%s] %s to %s", i.Ownership, valueName(i.Val), valueName(i.Ptr))
}

func (i *PtrOffsetInst) String() string {
	return fmt.Sprintf("%sptr_offset %s, %s", result(i), valueName(i.Ptr), valueName(i.Offset))
}

func (i *StructCreateInst) String() string {
	return fmt.Sprintf("%sstruct_create %s(%s)", result(i), i.StructTy, valueArgs(i.Fields))
}

func (i *ArrayCreateInst) String() string {
	return fmt.Sprintf("%sarray_create [%s](%s)", result(i), i.ElemTy, valueArgs(i.Elements))
}

func (i *StructExtractInst) String() string {
	return fmt.Sprintf("%sstruct_extract %s, %q", result(i), valueName(i.Struct), i.Member.Name)
}

func (i *StructFieldPtrInst) String() string {
	return fmt.Sprintf("%sstruct_field_ptr %s, %q", result(i), valueName(i.Struct), i.Member.Name)
}

func castStr(name string, i Inst, v Value) string {
	return fmt.Sprintf("%s%s %s to %s", result(i), name, valueName(v), i.Type())
}

func (i *BitcastInst) String() string       { return castStr("bitcast", i, i.Value) }
func (i *IntTruncInst) String() string      { return castStr("int_trunc", i, i.Value) }
func (i *IntZExtInst) String() string       { return castStr("int_zext", i, i.Value) }
func (i *IntSExtInst) String() string       { return castStr("int_sext", i, i.Value) }
func (i *FloatTruncInst) String() string    { return castStr("float_trunc", i, i.Value) }
func (i *FloatExtInst) String() string      { return castStr("float_ext", i, i.Value) }
func (i *FloatToIntInst) String() string    { return castStr("float_to_int", i, i.Value) }
func (i *IntToFloatInst) String() string    { return castStr("int_to_float", i, i.Value) }
func (i *CastIntToPtrInst) String() string  { return castStr("cast_int_to_ptr", i, i.Value) }
func (i *CastPtrToIntInst) String() string  { return castStr("cast_ptr_to_int", i, i.Value) }

func (i *CallInst) String() string {
	return fmt.Sprintf("%scall %s(%s)", result(i), i.Callee.GILName(), valueArgs(i.Args))
}

func (i *IndirectCallInst) String() string {
	return fmt.Sprintf("%scall_indirect %s(%s)", result(i), valueName(i.Callee), valueArgs(i.Args))
}

func (i *FunctionPtrInst) String() string {
	return fmt.Sprintf("%sfunction_ptr %s", result(i), i.Fn.GILName())
}

func (i *EnumVariantInst) String() string {
	return fmt.Sprintf("%senum_variant %s::%s", result(i), i.EnumTy.Name, i.Case)
}

func (i *GlobalPtrInst) String() string {
	return fmt.Sprintf("%sglobal_ptr %s", result(i), i.Global.Name)
}

func (i *IntLiteralInst) String() string    { return fmt.Sprintf("%sint_literal %d", result(i), i.Value) }
func (i *FloatLiteralInst) String() string  { return fmt.Sprintf("%sfloat_literal %g", result(i), i.Value) }
func (i *BoolLiteralInst) String() string   { return fmt.Sprintf("%sbool_literal %t", result(i), i.Value) }
func (i *StringLiteralInst) String() string { return fmt.Sprintf("%sstring_literal %q", result(i), i.Value) }

func (i *DropInst) String() string  { return fmt.Sprintf("drop %s", valueName(i.Value)) }
func (i *DebugInst) String() string { return fmt.Sprintf("debug %q %s", i.Name, valueName(i.Slot)) }

func (t *BrTerm) String() string {
	return fmt.Sprintf("br %s(%s)", t.Target.Label, valueArgs(t.Args))
}

func (t *CondBrTerm) String() string {
	return fmt.Sprintf("cond_br %s, %s(%s), %s(%s)",
		valueName(t.Cond), t.Then.Label, valueArgs(t.ThenArgs), t.Else.Label, valueArgs(t.ElseArgs))
}

func (t *RetTerm) String() string {
	if t.Value == nil {
		return "ret void"
	}
	return fmt.Sprintf("ret %s", valueName(t.Value))
}

func (t *UnreachableTerm) String() string { return "unreachable" }
