// Package importer implements component B's file-resolution half: the
// ordered search-path × prefix-length × extension-set algorithm from
// spec.md §4.1, plus cycle detection and per-file caching.
//
// Grounded on the teacher's internal/module/resolver.go (ordered
// searchPaths, NormalizePath, ResolveImport per import-kind) generalized
// from AILANG's single ".ail" extension to glu's ordered extension-set
// list, and internal/module/loader.go (loadStack-based cycle detection,
// cache map[identity]*Module).
package importer

import (
	"os"
	"path/filepath"
	"strings"
)

// ExtensionSets is the ordered list of candidate extension groups tried
// for each path-prefix length, per spec.md §4.1 point 1. All extensions
// within a set are tried before moving to the next set.
var ExtensionSets = [][]string{
	{".glu"},
	{".h"},
	{".bc", ".ll"},
	{".c", ".cpp", ".cc", ".cxx", ".rs", ".zig", ".swift", ".d"},
}

// Resolver locates the source file backing an `import path::selector`
// declaration.
type Resolver struct {
	// SearchPaths is tried in order: current directory first, then user
	// paths, then system paths (spec.md §4.1).
	SearchPaths []string
}

// NewResolver builds a Resolver with the conventional search-path order:
// the importing file's directory, then AILANG_PATH-style user paths, then
// a fixed system stdlib directory.
func NewResolver(currentDir string, userPaths []string, systemPaths []string) *Resolver {
	paths := make([]string, 0, 1+len(userPaths)+len(systemPaths))
	if currentDir != "" {
		paths = append(paths, currentDir)
	}
	paths = append(paths, userPaths...)
	paths = append(paths, systemPaths...)
	return &Resolver{SearchPaths: paths}
}

// Resolution is the result of successfully locating an import.
type Resolution struct {
	// File is the existing file path found on disk.
	File string
	// Selector is the remaining path suffix beyond the matched prefix
	// (spec.md §4.1 point 2): empty means "import as namespace", "@all"
	// means re-export everything, anything else names one item.
	Selector string
	// Foreign is true when File's extension is not ".glu" and must go
	// through the external-compiler importer contract.
	Foreign bool
}

// Resolve implements spec.md §4.1's ordered search: peel path-prefix
// components (1, then 2, ... then all), and for each prefix length try
// each extension set in ExtensionSets order, across every search path.
// The first existing file wins.
func (r *Resolver) Resolve(path []string) (Resolution, bool) {
	for _, base := range r.SearchPaths {
		if res, ok := r.resolveInBase(base, path); ok {
			return res, true
		}
	}
	return Resolution{}, false
}

func (r *Resolver) resolveInBase(base string, path []string) (Resolution, bool) {
	for prefixLen := 1; prefixLen <= len(path); prefixLen++ {
		prefix := path[:prefixLen]
		rel := filepath.Join(prefix...)
		for _, set := range ExtensionSets {
			for _, ext := range set {
				candidate := filepath.Join(base, rel+ext)
				if fileExists(candidate) {
					selector := strings.Join(path[prefixLen:], "::")
					return Resolution{
						File:     candidate,
						Selector: selector,
						Foreign:  ext != ".glu",
					}, true
				}
			}
		}
	}
	return Resolution{}, false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
