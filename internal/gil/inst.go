package gil

import (
	"github.com/glu-lang/glu/internal/source"
	"github.com/glu-lang/glu/internal/types"
)

// LoadOwnership tags a load with how it treats the loaded value (spec.md
// §3/§4.5: set definitively by copy-lowering/drop-lowering, starts as
// whatever gilgen requested).
type LoadOwnership int

const (
	LoadNone LoadOwnership = iota
	LoadCopy
	LoadTake
)

func (o LoadOwnership) String() string {
	switch o {
	case LoadCopy:
		return "copy"
	case LoadTake:
		return "take"
	default:
		return "none"
	}
}

// StoreOwnership tags a store with its initialization state, set by the
// detect-uninitialized pass (spec.md §4.5 step 2).
type StoreOwnership int

const (
	StoreUnknown StoreOwnership = iota
	StoreInit
	StoreSet
)

func (o StoreOwnership) String() string {
	switch o {
	case StoreInit:
		return "init"
	case StoreSet:
		return "set"
	default:
		return "unknown"
	}
}

// Member identifies a struct field by name plus its type and owning
// struct type, attached to struct_extract/struct_field_ptr (spec.md §4.4
// "emit struct_extract with a Member(name, fieldType, structType)").
type Member struct {
	Name       string
	FieldType  types.Type
	StructType types.Type
}

// InstNode is embedded by every concrete instruction kind; it carries the
// block it lives in, a per-function id used only for printing, the
// instruction's result type (nil for instructions with no result, e.g.
// store/drop/debug), and the source position gilgen stamped it with (used
// by the unreachable-code warning and the uninitialized-memory
// diagnostics in internal/passes, spec.md §4.5).
type InstNode struct {
	id    uint64
	block *BasicBlock
	Ty    types.Type
	Pos   source.Pos
}

func (n *InstNode) Type() types.Type      { return n.Ty }
func (n *InstNode) valueNode()            {}
func (n *InstNode) instNode()             {}
func (n *InstNode) Block() *BasicBlock    { return n.block }
func (n *InstNode) setBlock(b *BasicBlock, id uint64) {
	n.block = b
	n.id = id
}
func (n *InstNode) ID() uint64 { return n.id }

// Position returns the source location this instruction was lowered from,
// or the zero Pos for instructions a pass synthesized rather than gilgen.
func (n *InstNode) Position() source.Pos { return n.Pos }

func (n *InstNode) setPos(p source.Pos) { n.Pos = p }

// Inst is any GIL instruction. Concrete kinds embed InstNode and add
// String() for the textual printer (spec.md §6 "GIL printer").
type Inst interface {
	Value
	instNode()
	setBlock(*BasicBlock, uint64)
	setPos(source.Pos)
	ID() uint64
	Block() *BasicBlock
	Position() source.Pos
	String() string
}

// ---- Memory ----

type AllocaInst struct {
	InstNode
	ElemType types.Type
}

type LoadInst struct {
	InstNode
	Ptr       Value
	Ownership LoadOwnership
}

type StoreInst struct {
	InstNode // Ty is always nil (void result)
	Ptr       Value
	Val       Value
	Ownership StoreOwnership
}

type PtrOffsetInst struct {
	InstNode
	Ptr    Value
	Offset Value
}

// ---- Aggregates ----

type StructCreateInst struct {
	InstNode
	StructTy *types.Struct
	Fields   []Value
}

type ArrayCreateInst struct {
	InstNode
	ElemTy   types.Type
	Elements []Value
}

type StructExtractInst struct {
	InstNode
	Struct Value
	Member Member
}

type StructFieldPtrInst struct {
	InstNode
	Struct Value
	Member Member
}

// ---- Casts ----

type BitcastInst struct {
	InstNode
	Value Value
}

type IntTruncInst struct {
	InstNode
	Value Value
}

type IntZExtInst struct {
	InstNode
	Value Value
}

type IntSExtInst struct {
	InstNode
	Value Value
}

type FloatTruncInst struct {
	InstNode
	Value Value
}

type FloatExtInst struct {
	InstNode
	Value Value
}

type FloatToIntInst struct {
	InstNode
	Value Value
}

type IntToFloatInst struct {
	InstNode
	Value Value
}

type CastIntToPtrInst struct {
	InstNode
	Value Value
}

type CastPtrToIntInst struct {
	InstNode
	Value Value
}

// ---- Calls & references ----

// CallInst is a direct call to a statically known function.
type CallInst struct {
	InstNode
	Callee FuncRef
	Args   []Value
}

// FuncRef is the minimal view of a callable declaration GIL needs: its
// name and signature. ast.FunctionDecl implements it.
type FuncRef interface {
	GILName() string
	Signature() *types.Function
}

// NamedFuncRef is a standalone FuncRef for callees with no backing
// ast.FunctionDecl, such as externs resolved only by name and signature.
type NamedFuncRef struct {
	Name string
	Sig  *types.Function
}

func (f *NamedFuncRef) GILName() string            { return f.Name }
func (f *NamedFuncRef) Signature() *types.Function { return f.Sig }

// IndirectCallInst calls through a function-pointer value.
type IndirectCallInst struct {
	InstNode
	Callee Value
	Args   []Value
}

type FunctionPtrInst struct {
	InstNode
	Fn FuncRef
}

type EnumVariantInst struct {
	InstNode
	EnumTy *types.Enum
	Case   string
}

type GlobalPtrInst struct {
	InstNode
	Global *Global
}

// ---- Literals ----

type IntLiteralInst struct {
	InstNode
	Value int64
}

type FloatLiteralInst struct {
	InstNode
	Value float64
}

type BoolLiteralInst struct {
	InstNode
	Value bool
}

type StringLiteralInst struct {
	InstNode
	Value string
}

// ---- Ownership markers ----

type DropInst struct {
	InstNode // Ty is always nil
	Value    Value
}

type DebugInst struct {
	InstNode // Ty is always nil
	Name     string
	Slot     Value
}
