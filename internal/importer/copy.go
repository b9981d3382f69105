package importer

import (
	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/diag"
	"github.com/glu-lang/glu/internal/scope"
	"github.com/glu-lang/glu/internal/source"
)

// CopyInto copies the entries selected by selector from src into dst,
// per spec.md §4.1's "Copy into scope": public/private visibility of
// individual entries is enforced, collisions produce diagnostics, and
// re-exports preserve the original visibility tag when requested.
//
// selector is "" (import as namespace — handled by the caller, not here),
// "@all" (re-export everything), or a single item name.
func CopyInto(dst, src *scope.Table, selector string, reexport bool, pos source.Pos, sink *diag.Sink) {
	switch selector {
	case "@all":
		copyAllPublic(dst, src, reexport, pos, sink)
	default:
		copyOne(dst, src, selector, reexport, pos, sink)
	}
}

func copyAllPublic(dst, src *scope.Table, reexport bool, pos source.Pos, sink *diag.Sink) {
	for _, name := range publicItemNames(src) {
		items, _ := src.LocalItems(name)
		for _, it := range items {
			if it.Visibility != ast.Public {
				continue
			}
			insertWithCollisionCheck(dst, name, it.Item, visibilityFor(it.Visibility, reexport), pos, sink)
		}
	}
}

func copyOne(dst, src *scope.Table, name string, reexport bool, pos source.Pos, sink *diag.Sink) {
	items, ok := src.LocalItems(name)
	if !ok {
		sink.Errorf(diag.CodeImportSelectorMiss, "import", pos, "selector %q not found in imported module", name)
		return
	}
	for _, it := range items {
		if it.Visibility != ast.Public {
			sink.Errorf(diag.CodeImportSelectorMiss, "import", pos, "%q is private in the imported module", name)
			continue
		}
		insertWithCollisionCheck(dst, name, it.Item, visibilityFor(it.Visibility, reexport), pos, sink)
	}
}

// visibilityFor preserves the original visibility tag when reexport is
// requested; otherwise the imported item becomes private to the importer.
func visibilityFor(orig ast.Visibility, reexport bool) ast.Visibility {
	if reexport {
		return orig
	}
	return ast.Private
}

func insertWithCollisionCheck(dst *scope.Table, name string, decl ast.Decl, vis ast.Visibility, pos source.Pos, sink *diag.Sink) {
	if _, exists := dst.LocalItems(name); exists {
		sink.Errorf(diag.CodeImportCollision, "import", pos, "import of %q collides with an existing declaration", name)
		return
	}
	dst.InsertItem(name, decl, vis)
}

// publicItemNames returns every item name declared directly in src, public
// or not (scope.ItemNames); callers filter by visibility themselves.
func publicItemNames(src *scope.Table) []string {
	return scope.ItemNames(src)
}
