package passes

import (
	"github.com/glu-lang/glu/internal/diag"
	"github.com/glu-lang/glu/internal/gil"
)

// unreachableChecker reports an error for any `unreachable` terminator
// still present after dead-code-elimination has removed every block that
// genuinely cannot run: a reachable block ending in unreachable means
// control fell off the end of the function without a return (spec.md §4.5
// step 4, scenario S6).
func unreachableChecker(mod *gil.Module, sink *diag.Sink) {
	for _, fn := range mod.Functions {
		for _, blk := range fn.Blocks {
			if _, ok := blk.Terminator.(*gil.UnreachableTerm); ok {
				sink.Errorf(diag.CodeMissingReturn, "gil", fn.Pos, "function %q does not end with a return statement", fn.Name)
			}
		}
	}
}
