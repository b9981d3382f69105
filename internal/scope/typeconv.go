package scope

import (
	"fmt"

	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/types"
)

func structType(d *ast.StructDecl) types.Type {
	return &types.Struct{Decl: d}
}

func enumType(d *ast.EnumDecl) types.Type {
	return &types.Enum{Name: d.Name, Cases: d.Cases, DefinedAt: fmt.Sprintf("%p", d)}
}

func aliasType(d *ast.TypeAliasDecl) types.Type {
	return &types.TypeAlias{Name: d.Name, Wrapped: d.Wrapped, DefinedAt: fmt.Sprintf("%p", d)}
}
