// Package gilgen lowers a fully type-checked AST (every expression
// carries a concrete type, every RefExpr/operator/struct-member already
// resolved by internal/sema) into an internal/gil module, per spec.md
// §4.4's function/statement/expression lowering tables.
//
// Grounded on the teacher's internal/elaborate/elaborate.go +
// expressions.go (statement/expression lowering visitor with per-scope
// binding tracking), generalized from the teacher's substructural-free
// ANF lets to glu's explicit alloca/store/load[ownership]/drop shape.
package gilgen

import (
	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/diag"
	"github.com/glu-lang/glu/internal/gil"
)

// Generator lowers every function body in a module's declaration list.
type Generator struct {
	Sink    *diag.Sink
	globals map[*ast.VarLetDecl]*gil.Global
}

// NewGenerator creates an empty GIL generator.
func NewGenerator(sink *diag.Sink) *Generator {
	return &Generator{Sink: sink, globals: make(map[*ast.VarLetDecl]*gil.Global)}
}

// GenerateModule lowers every global variable and function body among
// decls into a single GIL module named name. Function declarations
// without a body (externs) are not added to Module.Functions; callers
// still reference them directly as a gil.FuncRef via the *ast.FunctionDecl
// itself.
func (g *Generator) GenerateModule(name string, decls []ast.Decl) *gil.Module {
	mod := &gil.Module{Name: name}
	g.collectGlobals(mod, decls)
	for _, d := range decls {
		if fn, ok := d.(*ast.FunctionDecl); ok && fn.Body != nil {
			mod.Functions = append(mod.Functions, g.lowerFunction(fn))
		}
		if ns, ok := d.(*ast.NamespaceDecl); ok {
			nested := g.GenerateModule(name, ns.Decls)
			mod.Functions = append(mod.Functions, nested.Functions...)
			mod.Globals = append(mod.Globals, nested.Globals...)
		}
	}
	return mod
}

func (g *Generator) collectGlobals(mod *gil.Module, decls []ast.Decl) {
	for _, d := range decls {
		if v, ok := d.(*ast.VarLetDecl); ok {
			glob := &gil.Global{Name: v.Name, Type: v.DeclaredTy}
			mod.Globals = append(mod.Globals, glob)
			g.globals[v] = glob
		}
	}
}
