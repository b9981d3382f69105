package gilgen

import (
	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/gil"
)

// genScope tracks, per lexical block, which slot pointer backs each local
// variable declaration, plus (for loop bodies) the break/continue
// destinations (spec.md §4.4: "a fresh Scope ... tracks SSA values per
// variable" / "loop-marked sub-scope with setLoopDestinations").
type genScope struct {
	parent    *genScope
	order     []binding
	slots     map[ast.Decl]gil.Value
	breakDest *gil.BasicBlock
	contDest  *gil.BasicBlock
}

type binding struct {
	decl ast.Decl
	slot gil.Value
}

func newGenScope(parent *genScope) *genScope {
	return &genScope{parent: parent, slots: make(map[ast.Decl]gil.Value)}
}

func (s *genScope) bind(decl ast.Decl, slot gil.Value) {
	s.slots[decl] = slot
	s.order = append(s.order, binding{decl: decl, slot: slot})
}

func (s *genScope) lookup(decl ast.Decl) (gil.Value, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.slots[decl]; ok {
			return v, true
		}
	}
	return nil, false
}

// enclosingLoop walks outward to the nearest scope carrying loop
// destinations, for break/continue.
func (s *genScope) enclosingLoop() *genScope {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.breakDest != nil {
			return sc
		}
	}
	return nil
}
