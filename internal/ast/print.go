package ast

import (
	"fmt"
	"strings"
)

// Print renders a module declaration as an indented textual tree, for
// debugging only (not required to be parseable), mirroring the teacher's
// internal/ast/print.go debug printer.
func Print(m *ModuleDecl) string {
	var b strings.Builder
	fmt.Fprintf(&b, "module %s\n", m.Name)
	for _, d := range m.Decls {
		printDecl(&b, d, 1)
	}
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func printDecl(b *strings.Builder, d Decl, depth int) {
	indent(b, depth)
	switch v := d.(type) {
	case *FunctionDecl:
		fmt.Fprintf(b, "func %s(%d params) -> %s\n", v.Name, len(v.Params), typeStr(v.ReturnType))
	case *StructDecl:
		fmt.Fprintf(b, "struct %s (%d fields)\n", v.Name, len(v.Fields))
	case *EnumDecl:
		fmt.Fprintf(b, "enum %s (%d cases)\n", v.Name, len(v.Cases))
	case *TypeAliasDecl:
		fmt.Fprintf(b, "type %s = %s\n", v.Name, typeStr(v.Wrapped))
	case *NamespaceDecl:
		fmt.Fprintf(b, "namespace %s\n", v.Name)
		for _, c := range v.Decls {
			printDecl(b, c, depth+1)
		}
	case *VarLetDecl:
		kw := "let"
		if v.Mutable {
			kw = "var"
		}
		fmt.Fprintf(b, "%s %s\n", kw, v.Name)
	default:
		fmt.Fprintf(b, "<decl %T>\n", v)
	}
}

func typeStr(t interface{ String() string }) string {
	if t == nil {
		return "?"
	}
	return t.String()
}
