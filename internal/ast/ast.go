// Package ast defines the AST produced by the (out-of-scope) parser and
// consumed by components B, C, and D: a tree of nodes each carrying a
// source location and a parent pointer, per spec.md §3/§6.
//
// Grounded on the teacher's internal/ast/ast.go (Node interface,
// Pos/Span, per-kind marker methods) generalized from AILANG's
// expression-oriented tree to glu's declaration/statement/expression
// split (spec.md §3).
package ast

import (
	"github.com/glu-lang/glu/internal/source"
	"github.com/glu-lang/glu/internal/types"
)

// Node is the base interface for every AST node.
type Node interface {
	Position() source.Pos
}

// Decl is any top-level or nested declaration.
type Decl interface {
	Node
	declNode()
}

// Stmt is any statement inside a function body.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is any expression. Every expression owns a mutable Type slot that
// starts as a fresh TypeVariable (or UnresolvedName) and is rewritten in
// place by the solver (spec.md §3).
type Expr interface {
	Node
	exprNode()
	Type() types.Type
	SetType(types.Type)
}

// Visibility controls whether an item is visible outside its declaring
// module (spec.md §4.1's "public/private visibility").
type Visibility int

const (
	Private Visibility = iota
	Public
)

// exprBase is embedded by every expression node to provide the mutable
// type slot and parent pointer uniformly.
type exprBase struct {
	Pos    source.Pos
	Ty     types.Type
	Parent Node
}

func (e *exprBase) Position() source.Pos { return e.Pos }
func (e *exprBase) exprNode()            {}
func (e *exprBase) Type() types.Type     { return e.Ty }
func (e *exprBase) SetType(t types.Type) { e.Ty = t }

type stmtBase struct {
	Pos    source.Pos
	Parent Node
}

func (s *stmtBase) Position() source.Pos { return s.Pos }
func (s *stmtBase) stmtNode()            {}

type declBase struct {
	Pos        source.Pos
	Parent     Node
	Visibility Visibility
}

func (d *declBase) Position() source.Pos { return d.Pos }
func (d *declBase) declNode()            {}

// ---- Declarations ----

// ModuleDecl is the root of a single source file's declaration tree.
type ModuleDecl struct {
	declBase
	Name    string
	Imports []*ImportDecl
	Decls   []Decl
}

// NamespaceDecl groups child declarations under a name (spec.md §3's
// "namespaces" scope map).
type NamespaceDecl struct {
	declBase
	Name  string
	Decls []Decl
}

// FunctionDecl is a named, possibly-overloaded function.
type FunctionDecl struct {
	declBase
	Name       string
	Params     []*ParamDecl
	ReturnType types.Type
	Body       *CompoundStmt // nil for declarations without a body (externs)
	Variadic   bool
}

func (f *FunctionDecl) StructName() string { return f.Name }

// GILName returns the name GIL call/function-pointer instructions record
// against this declaration (internal/gil.FuncRef).
func (f *FunctionDecl) GILName() string { return f.Name }

func (f *FunctionDecl) Signature() *types.Function {
	params := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Type
	}
	return &types.Function{Params: params, ReturnType: f.ReturnType, CVariadic: f.Variadic}
}

// ParamDecl is a single function parameter.
type ParamDecl struct {
	declBase
	Name    string
	Type    types.Type
	Default Expr // optional default-value expression
}

// FieldDecl is a struct field, with an optional default initializer
// (spec.md §4.4's "substituting the field's default initializer
// expression for any omitted field").
type FieldDecl struct {
	declBase
	Name    string
	Type    types.Type
	Default Expr
}

// StructDecl declares an aggregate type. It implements types.StructDecl
// so *StructDecl can be pointed to by types.Struct without an import
// cycle.
type StructDecl struct {
	declBase
	Name        string
	Fields      []*FieldDecl
	CopyFunc    *FunctionDecl // overloaded copy, if any (spec.md §4.5 copy-lowering)
	DropFunc    *FunctionDecl // overloaded drop, if any (spec.md §4.5 drop-lowering)
	TemplateArgNames []string
}

func (s *StructDecl) StructName() string { return s.Name }

func (s *StructDecl) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

func (s *StructDecl) FieldType(name string) (types.Type, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

func (s *StructDecl) FieldDefault(name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Default != nil
		}
	}
	return false
}

// FieldIndex returns the declaration order index of a field, used by GIL
// generation's struct_extract/struct_field_ptr instructions.
func (s *StructDecl) FieldIndex(name string) (int, bool) {
	for i, f := range s.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}

// EnumDecl declares an enumeration (spec.md §3's Enum type carries its
// own case list directly; EnumDecl is the declaration-side counterpart
// referenced by types.Enum.DefinedAt).
type EnumDecl struct {
	declBase
	Name  string
	Cases []types.EnumCase
}

// TypeAliasDecl declares a transparent alias.
type TypeAliasDecl struct {
	declBase
	Name    string
	Wrapped types.Type
}

// VarLetDecl declares a variable (`var`, mutable) or constant (`let`,
// immutable) binding, with an optional initializer.
type VarLetDecl struct {
	declBase
	Name        string
	Mutable     bool
	DeclaredTy  types.Type // nil until annotated or solved
	Initializer Expr
}

// ImportDecl is a single `import path::selector` declaration, resolved by
// component B per spec.md §4.1.
type ImportDecl struct {
	declBase
	Path     []string // e.g. ["std", "io"]
	Selector string   // "" = import as namespace, "@all" = re-export everything, else one name
	Reexport bool
}
