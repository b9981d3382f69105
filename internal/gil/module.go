// Package gil implements the Glu Intermediate Language: an SSA-form,
// block-and-terminator IR with explicit ownership operations, produced
// from the fully typed AST by internal/gilgen and rewritten in place by
// internal/passes (spec.md §3 "GIL", §4.4).
//
// Grounded on the teacher's internal/core/core.go (CoreNode embedding +
// marker-method sum-of-structs pattern), generalized from ailang's
// expression-oriented ANF core to glu's explicit basic-block/terminator
// shape described by the original source's GIL/BasicBlock.hpp and
// GIL/Function.hpp.
package gil

import (
	"github.com/glu-lang/glu/internal/source"
	"github.com/glu-lang/glu/internal/types"
)

// Module is a single compiled unit: its functions and global variables.
type Module struct {
	Name      string
	Functions []*Function
	Globals   []*Global
}

// Global is a module-level variable.
type Global struct {
	Name string
	Type types.Type
}

// Function owns an ordered list of basic blocks; the first is the entry
// block. Type is the function's full signature (spec.md §4.4 step 1:
// "entry block whose argument types match the declared parameters").
type Function struct {
	Name   string
	Type   *types.Function
	Pos    source.Pos
	Blocks []*BasicBlock

	nextID uint64
}

// NewFunction allocates an empty function with no blocks yet.
func NewFunction(name string, ty *types.Function) *Function {
	return &Function{Name: name, Type: ty}
}

// Entry returns the function's entry block, or nil if none has been
// created yet.
func (f *Function) Entry() *BasicBlock {
	if len(f.Blocks) == 0 {
		return nil
	}
	return f.Blocks[0]
}

// NewBlock appends and returns a fresh basic block.
func (f *Function) NewBlock(label string) *BasicBlock {
	b := &BasicBlock{Label: label, Func: f}
	f.Blocks = append(f.Blocks, b)
	return b
}

func (f *Function) nextValueID() uint64 {
	f.nextID++
	return f.nextID
}

// BasicBlock holds its SSA block arguments (phi replacement), its
// instruction list, and exactly one terminator at its end once sealed
// (spec.md §3 GIL invariants).
type BasicBlock struct {
	Label        string
	Args         []*BlockArg
	Instructions []Inst
	Terminator   Terminator
	Func         *Function
}

// AddArg appends a new block argument of type ty and returns it.
func (b *BasicBlock) AddArg(ty types.Type) *BlockArg {
	a := &BlockArg{Block: b, Index: len(b.Args), Ty: ty}
	b.Args = append(b.Args, a)
	return a
}

// Append adds inst to the block's instruction list and returns it,
// stamping it with a function-unique id used only for printing (identity
// remains the Go pointer, per spec.md §3: "every instruction is
// identified by its pointer").
func (b *BasicBlock) Append(inst Inst) Inst {
	inst.setBlock(b, b.Func.nextValueID())
	b.Instructions = append(b.Instructions, inst)
	return inst
}

// Seal sets the block's terminator, replacing any terminator already set.
// Builder's terminator methods call it unconditionally; gilgen checks a
// block's Terminator itself before branching out of it.
func (b *BasicBlock) Seal(term Terminator) {
	b.Terminator = term
}
