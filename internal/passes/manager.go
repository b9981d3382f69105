// Package passes implements the GIL rewrite/check pipeline that runs
// between gilgen and low-level IR emission (spec.md §4.5): ownership
// inference, dead-code elimination, and the copy/drop lowering sequence
// that turns ownership annotations into concrete calls.
//
// Each pass is a plain function over a *gil.Module, grounded on the
// teacher's internal/pipeline stage-function idiom (a named stage plus a
// manager that runs stages in declared order, skipping disabled ones)
// rather than a heavier visitor-object hierarchy — GIL's instruction set
// is small enough that a type switch per pass reads more directly than a
// Visit-method-per-kind interface would.
package passes

import (
	"fmt"
	"io"

	"github.com/glu-lang/glu/internal/diag"
	"github.com/glu-lang/glu/internal/gil"
)

// Pass is one named rewrite or check stage.
type Pass struct {
	Name string
	Run  func(mod *gil.Module, sink *diag.Sink)
}

// Default returns the eight passes spec.md §4.5 names, in the order it
// requires them to run: ownership is inferred before dead code is culled,
// unreachable-checker runs on the surviving CFG, and the copy/drop
// simplifications run before the lowering passes that consume their
// output.
func Default() []Pass {
	return []Pass{
		{Name: "void-main", Run: voidMain},
		{Name: "detect-uninitialized", Run: detectUninitialized},
		{Name: "dead-code-elimination", Run: deadCodeElimination},
		{Name: "unreachable-checker", Run: unreachableChecker},
		{Name: "erase-copy-on-struct-extract", Run: eraseCopyOnStructExtract},
		{Name: "simplify-copy-to-drop", Run: simplifyCopyToDrop},
		{Name: "copy-lowering", Run: copyLowering},
		{Name: "drop-lowering", Run: dropLowering},
	}
}

// Config is one pass's {enabled, printBefore, printAfter} toggle set
// (spec.md §6 "pipeline configuration").
type Config struct {
	Enabled     bool
	PrintBefore bool
	PrintAfter  bool
}

// Manager runs a sequence of passes against a module in order, honoring
// per-pass configuration and printing the module around a pass when asked.
type Manager struct {
	Passes []Pass
	Config map[string]Config
	Out    io.Writer
}

// NewManager builds a manager running the default pipeline with every
// pass enabled and no printing.
func NewManager() *Manager {
	return &Manager{Passes: Default(), Config: map[string]Config{}}
}

func (m *Manager) configFor(name string) Config {
	if c, ok := m.Config[name]; ok {
		return c
	}
	return Config{Enabled: true}
}

// Run executes each enabled pass in order. It stops early once the sink
// carries a Fatal diagnostic, per spec.md §7's "Fatal terminates the
// pipeline before the next stage boundary" — here, before the next pass.
func (m *Manager) Run(mod *gil.Module, sink *diag.Sink) {
	for _, p := range m.Passes {
		cfg := m.configFor(p.Name)
		if !cfg.Enabled {
			continue
		}
		if cfg.PrintBefore {
			m.print("before "+p.Name, mod)
		}
		p.Run(mod, sink)
		if cfg.PrintAfter {
			m.print("after "+p.Name, mod)
		}
		if sink.HasFatal() {
			return
		}
	}
}

func (m *Manager) print(label string, mod *gil.Module) {
	if m.Out == nil {
		return
	}
	fmt.Fprintf(m.Out, "-- %s --\n%s\n", label, gil.Print(mod))
}
