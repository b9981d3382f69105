package scope

import "github.com/glu-lang/glu/internal/ast"

// BuildModuleScope performs the top-level walk of a module that populates
// its global scope (spec.md §4.1 "Scope construction"): each TypeDecl
// inserts into types, each FunctionDecl/VarLetDecl appends to items, and
// each NamespaceDecl recursively creates a child scope.
//
// The returned scope's parent is the package-level Builtins table, so
// lookups that miss locally fall through to primitive operators.
func BuildModuleScope(m *ast.ModuleDecl) *Table {
	global := New(Builtins, m)
	insertDecls(global, m.Decls)
	return global
}

func insertDecls(t *Table, decls []ast.Decl) {
	for _, d := range decls {
		insertDecl(t, d)
	}
}

func insertDecl(t *Table, d ast.Decl) {
	switch v := d.(type) {
	case *ast.FunctionDecl:
		t.InsertItem(v.Name, v, v.Visibility)
	case *ast.VarLetDecl:
		t.InsertItem(v.Name, v, v.Visibility)
	case *ast.StructDecl:
		t.InsertType(v.Name, structType(v), v.Visibility)
	case *ast.EnumDecl:
		t.InsertType(v.Name, enumType(v), v.Visibility)
	case *ast.TypeAliasDecl:
		t.InsertType(v.Name, aliasType(v), v.Visibility)
	case *ast.NamespaceDecl:
		child := New(t, v)
		insertDecls(child, v.Decls)
		t.InsertNamespace(v.Name, child, v.Visibility)
	}
}
