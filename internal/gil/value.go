package gil

import "github.com/glu-lang/glu/internal/types"

// Value is anything an instruction can take as an operand: a block
// argument or an instruction's own result (spec.md §3: "a Value is either
// a block argument or an instruction result").
type Value interface {
	Type() types.Type
	valueNode()
}

// BlockArg is an SSA block-entry argument (phi replacement).
type BlockArg struct {
	Block *BasicBlock
	Index int
	Ty    types.Type
}

func (a *BlockArg) Type() types.Type { return a.Ty }
func (a *BlockArg) valueNode()       {}
