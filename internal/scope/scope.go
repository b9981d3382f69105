// Package scope implements component B: per-module scope tables and
// namespaced identifier lookup, per spec.md §4.1.
//
// Grounded on the original source's Sema/ScopeTable.hpp (WithVisibility[T]
// wrapper, per-scope items/types/namespaces StringMaps, BUILTINS_NS) and
// the teacher's internal/module/loader.go (Loader cache keyed by module
// identity).
package scope

import (
	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/types"
)

// WithVisibility pairs an item with its public/private visibility tag,
// mirroring the original source's WithVisibility<T> template.
type WithVisibility[T any] struct {
	Visibility ast.Visibility
	Item       T
}

// Table is a single lexical scope: a global module scope, a function
// scope, or a block scope, chained to its parent (spec.md §3 "Scope
// table").
type Table struct {
	parent     *Table
	node       ast.Node // ModuleDecl for the global scope, CompoundStmt for blocks
	items      map[string][]WithVisibility[ast.Decl] // overload sets
	typeDefs   map[string]WithVisibility[types.Type]
	namespaces map[string]WithVisibility[*Table]
}

// New creates a scope table chained to parent. node identifies the AST
// node the scope belongs to (module, function, or compound statement).
func New(parent *Table, node ast.Node) *Table {
	return &Table{
		parent:     parent,
		node:       node,
		items:      make(map[string][]WithVisibility[ast.Decl]),
		typeDefs:   make(map[string]WithVisibility[types.Type]),
		namespaces: make(map[string]WithVisibility[*Table]),
	}
}

// Parent returns the enclosing scope, or nil for the global scope of a
// module with no importer-provided parent.
func (t *Table) Parent() *Table { return t.parent }

// Node returns the AST node this scope belongs to.
func (t *Table) Node() ast.Node { return t.node }

// InsertItem appends decl to the overload set for name (spec.md §4.1:
// "each FunctionDecl and VarLetDecl appends to the items list under its
// name").
func (t *Table) InsertItem(name string, decl ast.Decl, vis ast.Visibility) {
	t.items[name] = append(t.items[name], WithVisibility[ast.Decl]{Visibility: vis, Item: decl})
}

// InsertType registers a type declaration (spec.md §4.1: "each TypeDecl
// inserts into types").
func (t *Table) InsertType(name string, ty types.Type, vis ast.Visibility) {
	t.typeDefs[name] = WithVisibility[types.Type]{Visibility: vis, Item: ty}
}

// InsertNamespace registers a child namespace scope (spec.md §4.1: "each
// NamespaceDecl creates a child scope recursively").
func (t *Table) InsertNamespace(name string, child *Table, vis ast.Visibility) {
	t.namespaces[name] = WithVisibility[*Table]{Visibility: vis, Item: child}
}

// LocalItems returns the overload set declared directly in this scope
// (not following the parent chain), used by import collision checks.
func (t *Table) LocalItems(name string) ([]WithVisibility[ast.Decl], bool) {
	items, ok := t.items[name]
	return items, ok
}

// Ident is a `components::name` identifier as resolved by lookup.
type Ident struct {
	Components []string
	Name       string
}

// LookupResult is the outcome of a name lookup.
type LookupResult struct {
	Items []WithVisibility[ast.Decl] // overload set, for value lookups
	Type  types.Type                 // for type lookups
	Found bool
}

// Lookup resolves ident starting in scope t, per spec.md §4.1:
// "lookup(ident): if components is empty, consult items/types in the
// current scope, falling back to the parent. Otherwise resolve
// components[0] as a namespace, recurse on the tail."
func (t *Table) Lookup(ident Ident) LookupResult {
	if len(ident.Components) == 0 {
		return t.lookupLocalOrParent(ident.Name)
	}
	ns, ok := t.resolveNamespace(ident.Components[0])
	if !ok {
		return LookupResult{}
	}
	return ns.Lookup(Ident{Components: ident.Components[1:], Name: ident.Name})
}

func (t *Table) lookupLocalOrParent(name string) LookupResult {
	for s := t; s != nil; s = s.parent {
		if items, ok := s.items[name]; ok {
			return LookupResult{Items: items, Found: true}
		}
		if ty, ok := s.typeDefs[name]; ok {
			return LookupResult{Type: ty.Item, Found: true}
		}
	}
	return LookupResult{}
}

// Namespace resolves a direct child namespace by name, searching t and
// its ancestors the same way Lookup does. internal/pipeline uses this to
// recurse into a NamespaceDecl's own scope when driving sema per
// function, instead of re-walking a module's declarations a second time.
func (t *Table) Namespace(name string) (*Table, bool) {
	return t.resolveNamespace(name)
}

func (t *Table) resolveNamespace(name string) (*Table, bool) {
	for s := t; s != nil; s = s.parent {
		if ns, ok := s.namespaces[name]; ok {
			return ns.Item, true
		}
	}
	return nil, false
}

// LookupType resolves a bare (non-namespaced) type name in t or an
// ancestor scope.
func (t *Table) LookupType(name string) (types.Type, bool) {
	for s := t; s != nil; s = s.parent {
		if ty, ok := s.typeDefs[name]; ok {
			return ty.Item, true
		}
	}
	return nil, false
}

// ItemNames returns the names of every item declared directly in t (not
// following the parent chain), for callers that need to enumerate a
// scope's exports (e.g. import "@all" re-exports).
func ItemNames(t *Table) []string {
	names := make([]string, 0, len(t.items))
	for name := range t.items {
		names = append(names, name)
	}
	return names
}
