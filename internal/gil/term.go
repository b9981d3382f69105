package gil

// Terminator is the single instruction that ends a basic block (spec.md
// §3: "every basic block has exactly one terminator at its end").
type Terminator interface {
	termNode()
	Successors() []*BasicBlock
	String() string
}

// BrTerm is an unconditional branch, supplying arg values for the
// target's block arguments.
type BrTerm struct {
	Target *BasicBlock
	Args   []Value
}

func (t *BrTerm) termNode() {}
func (t *BrTerm) Successors() []*BasicBlock { return []*BasicBlock{t.Target} }

// CondBrTerm branches to Then or Else depending on Cond, each with its
// own argument list.
type CondBrTerm struct {
	Cond     Value
	Then     *BasicBlock
	ThenArgs []Value
	Else     *BasicBlock
	ElseArgs []Value
}

func (t *CondBrTerm) termNode() {}
func (t *CondBrTerm) Successors() []*BasicBlock { return []*BasicBlock{t.Then, t.Else} }

// RetTerm returns from the enclosing function. A nil Value is `ret void`.
type RetTerm struct {
	Value Value
}

func (t *RetTerm) termNode() {}
func (t *RetTerm) Successors() []*BasicBlock { return nil }

// UnreachableTerm marks a block whose end can never be reached at
// runtime; the unreachable-checker pass turns a surviving one (inside a
// reachable block) into a missing-return diagnostic (spec.md §4.5 step
// 4).
type UnreachableTerm struct{}

func (t *UnreachableTerm) termNode() {}
func (t *UnreachableTerm) Successors() []*BasicBlock { return nil }
