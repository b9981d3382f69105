package gil

import (
	"github.com/glu-lang/glu/internal/source"
	"github.com/glu-lang/glu/internal/types"
)

// Builder accumulates instructions into the current insertion block,
// mirroring the original source's IRGen builder idiom: gilgen sets the
// insertion point with SetBlock and then calls one helper per AST
// construct it lowers.
type Builder struct {
	Func  *Function
	Block *BasicBlock
	Pos   source.Pos
}

// NewBuilder creates a builder with no insertion point set yet.
func NewBuilder(fn *Function) *Builder {
	return &Builder{Func: fn}
}

// SetBlock moves the insertion point.
func (b *Builder) SetBlock(blk *BasicBlock) { b.Block = blk }

// SetPos records the source position gilgen is currently lowering, so
// every instruction emitted afterwards is stamped with it until the next
// call. Passes rewriting GIL later (internal/passes) leave new
// instructions at the zero Pos unless they copy one forward explicitly.
func (b *Builder) SetPos(p source.Pos) { b.Pos = p }

func (b *Builder) emit(inst Inst) Inst {
	inst.setPos(b.Pos)
	return b.Block.Append(inst)
}

func ptrTo(elem types.Type, kind types.PointerKind) *types.Pointer {
	return &types.Pointer{Pointee: elem, Kind: kind}
}

func (b *Builder) Alloca(elem types.Type) *AllocaInst {
	inst := &AllocaInst{InstNode: InstNode{Ty: ptrTo(elem, types.Unique)}, ElemType: elem}
	b.emit(inst)
	return inst
}

func (b *Builder) Load(ptr Value, own LoadOwnership, resultTy types.Type) *LoadInst {
	inst := &LoadInst{InstNode: InstNode{Ty: resultTy}, Ptr: ptr, Ownership: own}
	b.emit(inst)
	return inst
}

func (b *Builder) Store(ptr, val Value, own StoreOwnership) *StoreInst {
	inst := &StoreInst{Ptr: ptr, Val: val, Ownership: own}
	b.emit(inst)
	return inst
}

func (b *Builder) PtrOffset(ptr Value, offset Value, resultTy types.Type) *PtrOffsetInst {
	inst := &PtrOffsetInst{InstNode: InstNode{Ty: resultTy}, Ptr: ptr, Offset: offset}
	b.emit(inst)
	return inst
}

func (b *Builder) StructCreate(st *types.Struct, fields []Value) *StructCreateInst {
	inst := &StructCreateInst{InstNode: InstNode{Ty: st}, StructTy: st, Fields: fields}
	b.emit(inst)
	return inst
}

func (b *Builder) ArrayCreate(ty *types.StaticArray, elements []Value) *ArrayCreateInst {
	inst := &ArrayCreateInst{InstNode: InstNode{Ty: ty}, ElemTy: ty.Elem, Elements: elements}
	b.emit(inst)
	return inst
}

func (b *Builder) StructExtract(structVal Value, m Member) *StructExtractInst {
	inst := &StructExtractInst{InstNode: InstNode{Ty: m.FieldType}, Struct: structVal, Member: m}
	b.emit(inst)
	return inst
}

func (b *Builder) StructFieldPtr(structVal Value, m Member) *StructFieldPtrInst {
	inst := &StructFieldPtrInst{InstNode: InstNode{Ty: ptrTo(m.FieldType, types.Raw)}, Struct: structVal, Member: m}
	b.emit(inst)
	return inst
}

func (b *Builder) Bitcast(v Value, to types.Type) *BitcastInst {
	inst := &BitcastInst{InstNode: InstNode{Ty: to}, Value: v}
	b.emit(inst)
	return inst
}

func (b *Builder) IntTrunc(v Value, to types.Type) *IntTruncInst {
	inst := &IntTruncInst{InstNode: InstNode{Ty: to}, Value: v}
	b.emit(inst)
	return inst
}

func (b *Builder) IntZExt(v Value, to types.Type) *IntZExtInst {
	inst := &IntZExtInst{InstNode: InstNode{Ty: to}, Value: v}
	b.emit(inst)
	return inst
}

func (b *Builder) IntSExt(v Value, to types.Type) *IntSExtInst {
	inst := &IntSExtInst{InstNode: InstNode{Ty: to}, Value: v}
	b.emit(inst)
	return inst
}

func (b *Builder) FloatTrunc(v Value, to types.Type) *FloatTruncInst {
	inst := &FloatTruncInst{InstNode: InstNode{Ty: to}, Value: v}
	b.emit(inst)
	return inst
}

func (b *Builder) FloatExt(v Value, to types.Type) *FloatExtInst {
	inst := &FloatExtInst{InstNode: InstNode{Ty: to}, Value: v}
	b.emit(inst)
	return inst
}

func (b *Builder) FloatToInt(v Value, to types.Type) *FloatToIntInst {
	inst := &FloatToIntInst{InstNode: InstNode{Ty: to}, Value: v}
	b.emit(inst)
	return inst
}

func (b *Builder) IntToFloat(v Value, to types.Type) *IntToFloatInst {
	inst := &IntToFloatInst{InstNode: InstNode{Ty: to}, Value: v}
	b.emit(inst)
	return inst
}

func (b *Builder) CastIntToPtr(v Value, to types.Type) *CastIntToPtrInst {
	inst := &CastIntToPtrInst{InstNode: InstNode{Ty: to}, Value: v}
	b.emit(inst)
	return inst
}

func (b *Builder) CastPtrToInt(v Value, to types.Type) *CastPtrToIntInst {
	inst := &CastPtrToIntInst{InstNode: InstNode{Ty: to}, Value: v}
	b.emit(inst)
	return inst
}

// CallDirect calls a statically known function. Its result type is nil
// (no SSA result) when the callee returns Void.
func (b *Builder) CallDirect(fn FuncRef, args []Value) *CallInst {
	inst := &CallInst{InstNode: InstNode{Ty: resultTypeOf(fn.Signature().ReturnType)}, Callee: fn, Args: args}
	b.emit(inst)
	return inst
}

func (b *Builder) CallIndirect(callee Value, args []Value, resultTy types.Type) *IndirectCallInst {
	inst := &IndirectCallInst{InstNode: InstNode{Ty: resultTypeOf(resultTy)}, Callee: callee, Args: args}
	b.emit(inst)
	return inst
}

func resultTypeOf(ret types.Type) types.Type {
	if _, isVoid := ret.(*types.Void); isVoid {
		return nil
	}
	return ret
}

func (b *Builder) FunctionPtr(fn FuncRef) *FunctionPtrInst {
	inst := &FunctionPtrInst{InstNode: InstNode{Ty: fn.Signature()}, Fn: fn}
	b.emit(inst)
	return inst
}

func (b *Builder) EnumVariant(enumTy *types.Enum, caseName string) *EnumVariantInst {
	inst := &EnumVariantInst{InstNode: InstNode{Ty: enumTy}, EnumTy: enumTy, Case: caseName}
	b.emit(inst)
	return inst
}

func (b *Builder) GlobalPtr(g *Global) *GlobalPtrInst {
	inst := &GlobalPtrInst{InstNode: InstNode{Ty: ptrTo(g.Type, types.Raw)}, Global: g}
	b.emit(inst)
	return inst
}

func (b *Builder) IntLiteral(v int64, ty types.Type) *IntLiteralInst {
	inst := &IntLiteralInst{InstNode: InstNode{Ty: ty}, Value: v}
	b.emit(inst)
	return inst
}

func (b *Builder) FloatLiteral(v float64, ty types.Type) *FloatLiteralInst {
	inst := &FloatLiteralInst{InstNode: InstNode{Ty: ty}, Value: v}
	b.emit(inst)
	return inst
}

func (b *Builder) BoolLiteral(v bool) *BoolLiteralInst {
	inst := &BoolLiteralInst{InstNode: InstNode{Ty: types.BoolType()}, Value: v}
	b.emit(inst)
	return inst
}

func (b *Builder) StringLiteral(v string) *StringLiteralInst {
	inst := &StringLiteralInst{InstNode: InstNode{Ty: types.StringArray()}, Value: v}
	b.emit(inst)
	return inst
}

func (b *Builder) Drop(v Value) *DropInst {
	inst := &DropInst{Value: v}
	b.emit(inst)
	return inst
}

func (b *Builder) Debug(name string, slot Value) *DebugInst {
	inst := &DebugInst{Name: name, Slot: slot}
	b.emit(inst)
	return inst
}

// ---- Terminators ----

func (b *Builder) Br(target *BasicBlock, args ...Value) {
	b.Block.Seal(&BrTerm{Target: target, Args: args})
}

func (b *Builder) CondBr(cond Value, then *BasicBlock, thenArgs []Value, els *BasicBlock, elseArgs []Value) {
	b.Block.Seal(&CondBrTerm{Cond: cond, Then: then, ThenArgs: thenArgs, Else: els, ElseArgs: elseArgs})
}

func (b *Builder) Ret(v Value) {
	b.Block.Seal(&RetTerm{Value: v})
}

func (b *Builder) Unreachable() {
	b.Block.Seal(&UnreachableTerm{})
}
