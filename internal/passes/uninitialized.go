package passes

import (
	"github.com/glu-lang/glu/internal/diag"
	"github.com/glu-lang/glu/internal/gil"
	"github.com/glu-lang/glu/internal/types"
)

// initState is a point in the three-level lattice
// Uninitialized < MaybeInitialized < Initialized (spec.md §4.5 step 2).
type initState int

const (
	stateUninitialized initState = iota
	stateMaybeInitialized
	stateInitialized
)

func join(a, b initState) initState {
	if a == b {
		return a
	}
	return stateMaybeInitialized
}

// detectUninitialized is a forward data-flow pass tagging every store with
// its ownership (init/set) and flagging loads/drops of memory that is not
// definitely Initialized. It runs to a fixed point (capped at 100 rounds
// over the function's blocks, matching spec.md §4.5's "bounded by a small
// iteration cap") before a final pass actually mutates ownership tags and
// reports diagnostics, so earlier convergence rounds never double-report.
func detectUninitialized(mod *gil.Module, sink *diag.Sink) {
	for _, fn := range mod.Functions {
		detectUninitializedFunc(fn, sink)
	}
}

func detectUninitializedFunc(fn *gil.Function, sink *diag.Sink) {
	if len(fn.Blocks) == 0 {
		return
	}
	preds := predecessorsOf(fn)
	blockOut := make(map[*gil.BasicBlock]map[gil.Value]initState, len(fn.Blocks))
	for _, blk := range fn.Blocks {
		blockOut[blk] = map[gil.Value]initState{}
	}

	const maxIter = 100
	for i := 0; i < maxIter; i++ {
		changed := false
		for _, blk := range fn.Blocks {
			in := mergeStates(preds[blk], blockOut)
			out := transferBlock(blk, in, nil)
			if !statesEqual(out, blockOut[blk]) {
				blockOut[blk] = out
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	for _, blk := range fn.Blocks {
		in := mergeStates(preds[blk], blockOut)
		transferBlock(blk, in, sink)
	}
}

func predecessorsOf(fn *gil.Function) map[*gil.BasicBlock][]*gil.BasicBlock {
	preds := make(map[*gil.BasicBlock][]*gil.BasicBlock)
	for _, blk := range fn.Blocks {
		if blk.Terminator == nil {
			continue
		}
		for _, succ := range blk.Terminator.Successors() {
			if succ != nil {
				preds[succ] = append(preds[succ], blk)
			}
		}
	}
	return preds
}

// mergeStates joins every predecessor's exit state at each tracked
// location; a location unknown to a given predecessor defaults to
// Uninitialized (spec.md §4.5: "unknown-to-predecessor values default to
// Uninitialized").
func mergeStates(preds []*gil.BasicBlock, out map[*gil.BasicBlock]map[gil.Value]initState) map[gil.Value]initState {
	merged := map[gil.Value]initState{}
	if len(preds) == 0 {
		return merged
	}
	keys := map[gil.Value]bool{}
	for _, p := range preds {
		for k := range out[p] {
			keys[k] = true
		}
	}
	for k := range keys {
		acc := stateUninitialized
		first := true
		for _, p := range preds {
			v, ok := out[p][k]
			if !ok {
				v = stateUninitialized
			}
			if first {
				acc, first = v, false
			} else {
				acc = join(acc, v)
			}
		}
		merged[k] = acc
	}
	return merged
}

func statesEqual(a, b map[gil.Value]initState) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func get(m map[gil.Value]initState, v gil.Value) initState {
	s, ok := m[v]
	if !ok {
		return stateUninitialized
	}
	return s
}

// transferBlock runs the per-instruction transfer function starting from
// in and returns the resulting state map. When sink is non-nil this is the
// converged, diagnostic-emitting run: stores are tagged Init/Set and
// loads/drops of non-Initialized memory are reported.
func transferBlock(blk *gil.BasicBlock, in map[gil.Value]initState, sink *diag.Sink) map[gil.Value]initState {
	cur := make(map[gil.Value]initState, len(in))
	for k, v := range in {
		cur[k] = v
	}

	for _, inst := range blk.Instructions {
		switch v := inst.(type) {
		case *gil.AllocaInst:
			cur[v] = stateUninitialized
		case *gil.StoreInst:
			prev := get(cur, v.Ptr)
			if sink != nil {
				switch prev {
				case stateUninitialized:
					v.Ownership = gil.StoreInit
				case stateInitialized:
					v.Ownership = gil.StoreSet
				default:
					v.Ownership = gil.StoreSet
					sink.Warnf(diag.CodeMaybeInitStore, "gil", v.Position(), "store to possibly uninitialized location")
				}
			}
			cur[v.Ptr] = stateInitialized
		case *gil.LoadInst:
			prev := get(cur, v.Ptr)
			if sink != nil && prev != stateInitialized {
				sink.Errorf(diag.CodeUninitializedLoad, "gil", v.Position(), "load from uninitialized location")
			}
			if v.Ownership == gil.LoadTake {
				cur[v.Ptr] = stateUninitialized
			}
		case *gil.DropInst:
			prev := get(cur, v.Value)
			if sink != nil && prev != stateInitialized {
				sink.Errorf(diag.CodeUninitializedDrop, "gil", v.Position(), "drop from uninitialized location")
			}
			cur[v.Value] = stateUninitialized
		case *gil.PtrOffsetInst:
			cur[v] = get(cur, v.Ptr)
		case *gil.StructFieldPtrInst:
			cur[v] = get(cur, v.Struct)
		case *gil.BitcastInst:
			if _, ok := v.Type().(*types.Pointer); ok {
				cur[v] = get(cur, v.Value)
			}
		case *gil.StructExtractInst:
			cur[v] = stateInitialized
		}
	}
	return cur
}
