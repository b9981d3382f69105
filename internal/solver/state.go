package solver

import (
	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/constraint"
	"github.com/glu-lang/glu/internal/types"
)

// RecordedConversion is an implicit conversion the solver decided to
// insert; solution application (spec.md §4.3 step 3) turns each of these
// into a synthetic CastExpr replacing expr in its parent.
type RecordedConversion struct {
	Expr       ast.Expr
	TargetType types.Type
}

// SystemState is a snapshot of the solver's bindings, chosen overloads,
// pending implicit conversions, and score (spec.md §3/§4.3 "System
// state").
type SystemState struct {
	Bindings    Substitution
	Overloads   map[*ast.RefExpr]*ast.FunctionDecl
	Operators   map[ast.Node]*ast.FunctionDecl // resolved BinaryOp/UnaryOp operator
	Members     map[*ast.StructMemberExpr]int  // resolved field index
	Conversions []RecordedConversion
	Score       int

	// pending holds constraints not yet fully applied (non-Defaultable
	// ones first, Defaultable ones deferred to the second pass per
	// spec.md §4.3 step 2/4).
	pending    []*constraint.Constraint
	defaulting []*constraint.Constraint
}

// clone produces an independent copy for disjunction branching (spec.md
// §5: "cloned on every disjunction branch; clones are independent").
func (s *SystemState) clone() *SystemState {
	out := &SystemState{
		Bindings:    s.Bindings.Clone(),
		Overloads:   make(map[*ast.RefExpr]*ast.FunctionDecl, len(s.Overloads)),
		Operators:   make(map[ast.Node]*ast.FunctionDecl, len(s.Operators)),
		Members:     make(map[*ast.StructMemberExpr]int, len(s.Members)),
		Conversions: append([]RecordedConversion{}, s.Conversions...),
		Score:       s.Score,
		pending:     append([]*constraint.Constraint{}, s.pending...),
		defaulting:  append([]*constraint.Constraint{}, s.defaulting...),
	}
	for k, v := range s.Overloads {
		out.Overloads[k] = v
	}
	for k, v := range s.Operators {
		out.Operators[k] = v
	}
	for k, v := range s.Members {
		out.Members[k] = v
	}
	return out
}

func newInitialState(cs []*constraint.Constraint) *SystemState {
	s := &SystemState{
		Bindings:  make(Substitution),
		Overloads: make(map[*ast.RefExpr]*ast.FunctionDecl),
		Operators: make(map[ast.Node]*ast.FunctionDecl),
		Members:   make(map[*ast.StructMemberExpr]int),
	}
	for _, c := range cs {
		if c.Kind == constraint.Defaultable {
			s.defaulting = append(s.defaulting, c)
		} else {
			s.pending = append(s.pending, c)
		}
	}
	return s
}
