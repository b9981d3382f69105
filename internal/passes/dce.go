package passes

import (
	"github.com/glu-lang/glu/internal/diag"
	"github.com/glu-lang/glu/internal/gil"
	"github.com/glu-lang/glu/internal/source"
)

// deadCodeElimination removes every block not reachable from the entry
// block by a terminator-successor walk, warning once per distinct source
// location among the instructions it discards (spec.md §4.5 step 3,
// scenario S5). Compiler-synthesized drops and reloads never bore a
// meaningful source location to begin with, so they are excluded from the
// unreachable-instruction scan that decides what gets a warning.
func deadCodeElimination(mod *gil.Module, sink *diag.Sink) {
	for _, fn := range mod.Functions {
		deadCodeEliminationFunc(fn, sink)
	}
}

func deadCodeEliminationFunc(fn *gil.Function, sink *diag.Sink) {
	if len(fn.Blocks) == 0 {
		return
	}
	reachable := map[*gil.BasicBlock]bool{fn.Blocks[0]: true}
	queue := []*gil.BasicBlock{fn.Blocks[0]}
	for len(queue) > 0 {
		blk := queue[0]
		queue = queue[1:]
		if blk.Terminator == nil {
			continue
		}
		for _, succ := range blk.Terminator.Successors() {
			if succ != nil && !reachable[succ] {
				reachable[succ] = true
				queue = append(queue, succ)
			}
		}
	}

	seen := map[source.Pos]bool{}
	kept := make([]*gil.BasicBlock, 0, len(fn.Blocks))
	for _, blk := range fn.Blocks {
		if reachable[blk] {
			kept = append(kept, blk)
			continue
		}
		for _, inst := range blk.Instructions {
			if isSyntheticForDCE(inst) {
				continue
			}
			pos := inst.Position()
			if !pos.Valid() || seen[pos] {
				continue
			}
			seen[pos] = true
			sink.Warnf(diag.CodeUnreachableCode, "gil", pos, "code is unreachable")
		}
	}
	fn.Blocks = kept
}

func isSyntheticForDCE(inst gil.Inst) bool {
	switch inst.(type) {
	case *gil.DropInst, *gil.LoadInst:
		return true
	}
	return false
}
