// Package pipeline wires components B through D together into the single
// compile-one-module driver spec.md describes: build the module's scope
// (B), type-check every function body against it (C), lower the checked
// AST to GIL (D's front half), run the configured GIL pass pipeline, and
// emit low-level IR (D's terminal stage).
//
// Grounded on the teacher's internal/pipeline/pipeline.go (itself a thin
// stage-sequencing orchestrator gluing otherwise-independent packages
// together, gated on an error sink rather than returning early per call).
package pipeline

import (
	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/diag"
	"github.com/glu-lang/glu/internal/gil"
	"github.com/glu-lang/glu/internal/gil/lowerllir"
	"github.com/glu-lang/glu/internal/gilgen"
	"github.com/glu-lang/glu/internal/passes"
	"github.com/glu-lang/glu/internal/pipelinecfg"
	"github.com/glu-lang/glu/internal/scope"
	"github.com/glu-lang/glu/internal/sema"
	"github.com/glu-lang/glu/internal/source"
)

// Result is everything a single Compile call produced.
type Result struct {
	Module *gil.Module
	LLIR   string
}

// Compile runs a module through every stage, stopping at whichever stage
// boundary the sink's accumulated diagnostics forbid crossing (spec.md §7:
// "Error prevents advancing past the current major stage
// [sema -> GILGen -> passes -> lowering]").
func Compile(mod *ast.ModuleDecl, cfg *pipelinecfg.Config, sink *diag.Sink) *Result {
	global := scope.BuildModuleScope(mod)
	checkModule(sink, global, mod.Decls)
	if sink.HasErrors() {
		return nil
	}

	gen := gilgen.NewGenerator(sink)
	gilMod := gen.GenerateModule(mod.Name, mod.Decls)
	if sink.HasErrors() {
		return &Result{Module: gilMod}
	}

	mgr := passes.NewManager()
	applyConfig(mgr, cfg, sink)
	mgr.Run(gilMod, sink)
	if sink.HasErrors() {
		return &Result{Module: gilMod}
	}

	return &Result{Module: gilMod, LLIR: lowerllir.Lower(gilMod)}
}

// checkModule drives sema.CheckFunction over every function declared in
// decls, recursing into namespaces using their own already-built child
// scope rather than the module's global table.
func checkModule(sink *diag.Sink, sc *scope.Table, decls []ast.Decl) {
	for _, d := range decls {
		switch v := d.(type) {
		case *ast.FunctionDecl:
			sema.CheckFunction(sink, v, sc)
		case *ast.NamespaceDecl:
			child, ok := sc.Namespace(v.Name)
			if !ok {
				continue
			}
			checkModule(sink, child, v.Decls)
		}
	}
}

// applyConfig maps a pipelinecfg document onto the pass manager's
// per-pass configuration. A pass name the manager doesn't recognize is
// warned about and otherwise ignored (spec.md §6: "unknown names produce
// a warning and are skipped").
func applyConfig(mgr *passes.Manager, cfg *pipelinecfg.Config, sink *diag.Sink) {
	if cfg == nil {
		return
	}
	known := make(map[string]bool, len(mgr.Passes))
	for _, p := range mgr.Passes {
		known[p.Name] = true
	}
	for _, entry := range cfg.Passes {
		if !known[entry.Name] {
			sink.Warnf(diag.CodeUnknownPass, "pipeline", source.Pos{}, "unknown pass %q in pipeline configuration", entry.Name)
			continue
		}
		mgr.Config[entry.Name] = passes.Config{
			Enabled:     entry.Enabled(),
			PrintBefore: entry.PrintBefore,
			PrintAfter:  entry.PrintAfter,
		}
	}
}
