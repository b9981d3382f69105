// Package lowerllir is GIL's terminal stage: it turns a passes-rewritten
// *gil.Module into textual low-level IR under the contract spec.md §6
// lays out for it — every alloca hoisted into its function's entry block,
// every block argument compiled to a phi node in its block's own entry
// (gathering one incoming value per predecessor edge), and the rest of
// the GIL op set mapped one instruction to one low-level instruction.
//
// The textual form here is deliberately LLVM-flavored (the original
// source's own backend target) without claiming bitwise compatibility
// with any particular LLVM version; nothing downstream in this repo
// parses it back, mirroring the GIL printer's own "debugging aid, not a
// parseable format" stance (spec.md §6).
package lowerllir

import (
	"fmt"
	"strings"

	"github.com/glu-lang/glu/internal/gil"
	"github.com/glu-lang/glu/internal/types"
)

// Lower emits every function in mod as textual low-level IR.
func Lower(mod *gil.Module) string {
	var sb strings.Builder
	for _, g := range mod.Globals {
		fmt.Fprintf(&sb, "@%s = global %s\n", g.Name, llType(g.Type))
	}
	if len(mod.Globals) > 0 {
		sb.WriteString("\n")
	}
	for _, fn := range mod.Functions {
		lowerFunction(&sb, fn)
	}
	return sb.String()
}

func lowerFunction(sb *strings.Builder, fn *gil.Function) {
	n := newNamer()
	fmt.Fprintf(sb, "define %s @%s(%s) {\n", llType(fn.Type.ReturnType), fn.Name, paramList(fn, n))

	entry := fn.Entry()
	if entry == nil {
		sb.WriteString("}\n\n")
		return
	}
	sources := phiSourcesFor(fn)

	sb.WriteString(entry.Label + ":\n")
	for _, a := range collectAllocas(fn) {
		fmt.Fprintf(sb, "  %s = alloca %s\n", n.nameOf(a), llType(a.ElemType))
	}
	emitBlockBody(sb, entry, n, sources)

	for _, blk := range fn.Blocks {
		if blk == entry {
			continue
		}
		sb.WriteString(blk.Label + ":\n")
		emitPhis(sb, blk, n, sources)
		emitBlockBody(sb, blk, n, sources)
	}
	sb.WriteString("}\n\n")
}

func emitBlockBody(sb *strings.Builder, blk *gil.BasicBlock, n *namer, sources phiSourceMap) {
	if blk == blk.Func.Entry() {
		emitPhis(sb, blk, n, sources)
	}
	for _, inst := range blk.Instructions {
		if _, ok := inst.(*gil.AllocaInst); ok {
			continue // hoisted into the entry block already
		}
		emitInst(sb, inst, n)
	}
	emitTerm(sb, blk.Terminator, n)
}

func paramList(fn *gil.Function, n *namer) string {
	entry := fn.Entry()
	if entry == nil {
		return ""
	}
	parts := make([]string, len(entry.Args))
	for i, a := range entry.Args {
		parts[i] = fmt.Sprintf("%s %s", llType(a.Ty), n.nameOf(a))
	}
	return strings.Join(parts, ", ")
}

func collectAllocas(fn *gil.Function) []*gil.AllocaInst {
	var out []*gil.AllocaInst
	for _, blk := range fn.Blocks {
		for _, inst := range blk.Instructions {
			if a, ok := inst.(*gil.AllocaInst); ok {
				out = append(out, a)
			}
		}
	}
	return out
}

// phiSource is one incoming edge for a block argument: the predecessor's
// label and the value it supplied.
type phiSource struct {
	pred string
	val  gil.Value
}

// phiSourceMap maps a block to, per argument index, the list of incoming
// (predecessor, value) pairs gathered from every branch that targets it.
type phiSourceMap map[*gil.BasicBlock][][]phiSource

func phiSourcesFor(fn *gil.Function) phiSourceMap {
	out := make(phiSourceMap, len(fn.Blocks))
	for _, blk := range fn.Blocks {
		out[blk] = make([][]phiSource, len(blk.Args))
	}
	for _, blk := range fn.Blocks {
		switch t := blk.Terminator.(type) {
		case *gil.BrTerm:
			addSources(out, t.Target, blk.Label, t.Args)
		case *gil.CondBrTerm:
			addSources(out, t.Then, blk.Label, t.ThenArgs)
			addSources(out, t.Else, blk.Label, t.ElseArgs)
		}
	}
	return out
}

func addSources(out phiSourceMap, target *gil.BasicBlock, predLabel string, args []gil.Value) {
	if target == nil {
		return
	}
	for i, a := range args {
		if i < len(out[target]) {
			out[target][i] = append(out[target][i], phiSource{pred: predLabel, val: a})
		}
	}
}

func emitPhis(sb *strings.Builder, blk *gil.BasicBlock, n *namer, sources phiSourceMap) {
	for i, arg := range blk.Args {
		incoming := sources[blk][i]
		operands := make([]string, len(incoming))
		for j, s := range incoming {
			operands[j] = fmt.Sprintf("[ %s, %%%s ]", n.nameOf(s.val), s.pred)
		}
		fmt.Fprintf(sb, "  %s = phi %s %s\n", n.nameOf(arg), llType(arg.Ty), strings.Join(operands, ", "))
	}
}

func emitInst(sb *strings.Builder, inst gil.Inst, n *namer) {
	switch v := inst.(type) {
	case *gil.LoadInst:
		fmt.Fprintf(sb, "  %s = load %s, %s* %s\n", n.nameOf(v), llType(v.Type()), llType(v.Type()), n.nameOf(v.Ptr))
	case *gil.StoreInst:
		fmt.Fprintf(sb, "  store %s %s, %s* %s\n", llType(v.Val.Type()), n.nameOf(v.Val), llType(v.Val.Type()), n.nameOf(v.Ptr))
	case *gil.PtrOffsetInst:
		fmt.Fprintf(sb, "  %s = getelementptr %s, %s %s, %s %s\n", n.nameOf(v), llType(v.Type()), llType(v.Ptr.Type()), n.nameOf(v.Ptr), llType(v.Offset.Type()), n.nameOf(v.Offset))
	case *gil.StructCreateInst:
		cur := "undef"
		for i, f := range v.Fields {
			next := n.fresh()
			fmt.Fprintf(sb, "  %s = insertvalue %s %s, %s %s, %d\n", next, llType(v.Type()), cur, llType(f.Type()), n.nameOf(f), i)
			cur = next
		}
		n.alias(v, cur)
	case *gil.ArrayCreateInst:
		cur := "undef"
		for i, e := range v.Elements {
			next := n.fresh()
			fmt.Fprintf(sb, "  %s = insertvalue %s %s, %s %s, %d\n", next, llType(v.Type()), cur, llType(e.Type()), n.nameOf(e), i)
			cur = next
		}
		n.alias(v, cur)
	case *gil.StructExtractInst:
		fmt.Fprintf(sb, "  %s = extractvalue %s %s, %s\n", n.nameOf(v), llType(v.Struct.Type()), n.nameOf(v.Struct), v.Member.Name)
	case *gil.StructFieldPtrInst:
		fmt.Fprintf(sb, "  %s = getelementptr %s, %s* %s, i32 0, %s\n", n.nameOf(v), llType(v.Member.StructType), llType(v.Member.StructType), n.nameOf(v.Struct), v.Member.Name)
	case *gil.BitcastInst:
		fmt.Fprintf(sb, "  %s = bitcast %s %s to %s\n", n.nameOf(v), llType(v.Value.Type()), n.nameOf(v.Value), llType(v.Type()))
	case *gil.IntTruncInst:
		fmt.Fprintf(sb, "  %s = trunc %s %s to %s\n", n.nameOf(v), llType(v.Value.Type()), n.nameOf(v.Value), llType(v.Type()))
	case *gil.IntZExtInst:
		fmt.Fprintf(sb, "  %s = zext %s %s to %s\n", n.nameOf(v), llType(v.Value.Type()), n.nameOf(v.Value), llType(v.Type()))
	case *gil.IntSExtInst:
		fmt.Fprintf(sb, "  %s = sext %s %s to %s\n", n.nameOf(v), llType(v.Value.Type()), n.nameOf(v.Value), llType(v.Type()))
	case *gil.FloatTruncInst:
		fmt.Fprintf(sb, "  %s = fptrunc %s %s to %s\n", n.nameOf(v), llType(v.Value.Type()), n.nameOf(v.Value), llType(v.Type()))
	case *gil.FloatExtInst:
		fmt.Fprintf(sb, "  %s = fpext %s %s to %s\n", n.nameOf(v), llType(v.Value.Type()), n.nameOf(v.Value), llType(v.Type()))
	case *gil.FloatToIntInst:
		fmt.Fprintf(sb, "  %s = fptosi %s %s to %s\n", n.nameOf(v), llType(v.Value.Type()), n.nameOf(v.Value), llType(v.Type()))
	case *gil.IntToFloatInst:
		fmt.Fprintf(sb, "  %s = sitofp %s %s to %s\n", n.nameOf(v), llType(v.Value.Type()), n.nameOf(v.Value), llType(v.Type()))
	case *gil.CastIntToPtrInst:
		fmt.Fprintf(sb, "  %s = inttoptr %s %s to %s\n", n.nameOf(v), llType(v.Value.Type()), n.nameOf(v.Value), llType(v.Type()))
	case *gil.CastPtrToIntInst:
		fmt.Fprintf(sb, "  %s = ptrtoint %s %s to %s\n", n.nameOf(v), llType(v.Value.Type()), n.nameOf(v.Value), llType(v.Type()))
	case *gil.CallInst:
		emitCall(sb, n, v, v.Callee.GILName(), v.Args)
	case *gil.IndirectCallInst:
		emitCall(sb, n, v, n.nameOf(v.Callee), v.Args)
	case *gil.FunctionPtrInst:
		fmt.Fprintf(sb, "  %s = bitcast %s @%s to %s\n", n.nameOf(v), llType(v.Type()), v.Fn.GILName(), llType(v.Type()))
	case *gil.EnumVariantInst:
		fmt.Fprintf(sb, "  %s = add i32 0, %d ; %s.%s\n", n.nameOf(v), caseValue(v), v.EnumTy.Name, v.Case)
	case *gil.GlobalPtrInst:
		fmt.Fprintf(sb, "  %s = bitcast %s* @%s to %s\n", n.nameOf(v), llType(v.Global.Type), v.Global.Name, llType(v.Type()))
	case *gil.IntLiteralInst:
		n.alias(v, fmt.Sprintf("%d", v.Value))
	case *gil.FloatLiteralInst:
		n.alias(v, fmt.Sprintf("%g", v.Value))
	case *gil.BoolLiteralInst:
		if v.Value {
			n.alias(v, "true")
		} else {
			n.alias(v, "false")
		}
	case *gil.StringLiteralInst:
		fmt.Fprintf(sb, "  %s = bitcast [%d x i8]* @.str to i8*\n", n.nameOf(v), len(v.Value)+1)
	case *gil.DropInst:
		fmt.Fprintf(sb, "  ; drop %s %s (unlowered; drop-lowering should have rewritten it)\n", llType(v.Value.Type()), n.nameOf(v.Value))
	case *gil.DebugInst:
		fmt.Fprintf(sb, "  ; debug %q -> %s\n", v.Name, n.nameOf(v.Slot))
	}
}

func caseValue(v *gil.EnumVariantInst) int {
	for _, c := range v.EnumTy.Cases {
		if c.Name == v.Case {
			return int(c.Value)
		}
	}
	return 0
}

func emitCall(sb *strings.Builder, n *namer, result gil.Value, callee string, args []gil.Value) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprintf("%s %s", llType(a.Type()), n.nameOf(a))
	}
	retTy := llType(result.Type())
	if retTy == "void" {
		fmt.Fprintf(sb, "  call void %s(%s)\n", callee, strings.Join(parts, ", "))
		return
	}
	fmt.Fprintf(sb, "  %s = call %s %s(%s)\n", n.nameOf(result), retTy, callee, strings.Join(parts, ", "))
}

func emitTerm(sb *strings.Builder, t gil.Terminator, n *namer) {
	switch v := t.(type) {
	case *gil.BrTerm:
		fmt.Fprintf(sb, "  br label %%%s\n", v.Target.Label)
	case *gil.CondBrTerm:
		fmt.Fprintf(sb, "  br i1 %s, label %%%s, label %%%s\n", n.nameOf(v.Cond), v.Then.Label, v.Else.Label)
	case *gil.RetTerm:
		if v.Value == nil {
			sb.WriteString("  ret void\n")
			return
		}
		fmt.Fprintf(sb, "  ret %s %s\n", llType(v.Value.Type()), n.nameOf(v.Value))
	case *gil.UnreachableTerm:
		sb.WriteString("  unreachable\n")
	}
}

func llType(t types.Type) string {
	if t == nil {
		return "void"
	}
	switch v := types.Unwrap(t).(type) {
	case *types.Int:
		return fmt.Sprintf("i%d", v.BitWidth)
	case *types.Float:
		if v.BitWidth == 32 {
			return "float"
		}
		return "double"
	case *types.Bool:
		return "i1"
	case *types.Char:
		return "i8"
	case *types.Void:
		return "void"
	case *types.Null:
		return "i8*"
	case *types.Pointer:
		return llType(v.Pointee) + "*"
	case *types.StaticArray:
		return fmt.Sprintf("[%d x %s]", v.Size, llType(v.Elem))
	case *types.DynamicArray:
		return llType(v.Elem) + "*"
	case *types.Struct:
		return "%struct." + v.Decl.StructName()
	case *types.Enum:
		return "i32"
	case *types.Function:
		return llType(v.ReturnType) + " (...)*"
	}
	return "i8*"
}
