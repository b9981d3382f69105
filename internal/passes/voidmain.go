package passes

import (
	"github.com/glu-lang/glu/internal/diag"
	"github.com/glu-lang/glu/internal/gil"
	"github.com/glu-lang/glu/internal/types"
)

// voidMain rewrites a Void-returning "main" to return Int32, supplying 0
// at every `ret void` site (spec.md §4.5 step 1, scenario S4). Entry-point
// lowering conventions belong in the pipeline, not in gilgen, since only
// the pass pipeline knows which function is the program's entry point.
func voidMain(mod *gil.Module, sink *diag.Sink) {
	for _, fn := range mod.Functions {
		if fn.Name != "main" {
			continue
		}
		if _, isVoid := types.Unwrap(fn.Type.ReturnType).(*types.Void); !isVoid {
			continue
		}
		fn.Type.ReturnType = types.Int32()
		for _, blk := range fn.Blocks {
			ret, ok := blk.Terminator.(*gil.RetTerm)
			if !ok || ret.Value != nil {
				continue
			}
			b := gil.NewBuilder(fn)
			b.SetBlock(blk)
			ret.Value = b.IntLiteral(0, types.Int32())
		}
	}
}
