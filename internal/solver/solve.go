package solver

import (
	"fmt"
	"sort"

	"github.com/glu-lang/glu/internal/ast"
	"github.com/glu-lang/glu/internal/constraint"
	"github.com/glu-lang/glu/internal/types"
)

// Solution is a fully-applied SystemState: every non-Defaultable
// constraint is satisfied, every Defaultable variable has been given a
// value, and Bindings/Overloads/Operators/Members/Conversions are ready
// for ApplySolution.
type Solution struct {
	Bindings    Substitution
	Overloads   map[*ast.RefExpr]*ast.FunctionDecl
	Operators   map[ast.Node]*ast.FunctionDecl
	Members     map[*ast.StructMemberExpr]int
	Conversions []RecordedConversion
	Score       int
}

// Solve runs the LIFO worklist loop described by spec.md §4.3: apply every
// non-Defaultable constraint (forking a new state per Disjunction branch,
// discarding a state the moment any constraint fails), then apply the
// Defaultable constraints, and collect every resulting state tied for the
// minimum score. Returns an error if no solution survives, or if more than
// one solution ties for the minimum score (spec.md's "ambiguous overload"
// diagnostic).
func Solve(cs []*constraint.Constraint) (*Solution, error) {
	return solveConstraints(cs)
}

func solveConstraints(cs []*constraint.Constraint) (*Solution, error) {
	initial := newInitialState(cs)
	finals := applyFrom(initial, 0)

	var solutions []*SystemState
	for _, st := range finals {
		resolved := applyDefaulting(st)
		if resolved == nil {
			continue
		}
		solutions = append(solutions, resolved)
	}
	if len(solutions) == 0 {
		return nil, fmt.Errorf("no solution satisfies all constraints")
	}

	best := tryAddSolution(solutions)
	if len(best) == 0 {
		return nil, fmt.Errorf("no solution satisfies all constraints")
	}
	if len(best) > 1 {
		return nil, fmt.Errorf("ambiguous: %d solutions tie for score %d", len(best), best[0].Score)
	}
	return toSolution(best[0]), nil
}

// applyFrom applies s.pending[idx:] in definition order, returning every
// terminal state reachable by picking some combination of disjunction
// branches. A state is dropped the moment any constraint in its path
// fails, matching spec.md §4.3 step 3 ("On any Failed, discard the
// state").
func applyFrom(s *SystemState, idx int) []*SystemState {
	if idx >= len(s.pending) {
		return []*SystemState{s}
	}
	c := s.pending[idx]

	switch c.Kind {
	case constraint.DisjunctionKind:
		var out []*SystemState
		for _, child := range c.Children {
			branch := s.clone()
			if !applySub(branch, child) {
				continue
			}
			out = append(out, applyFrom(branch, idx+1)...)
		}
		return out

	case constraint.ConjunctionKind:
		if !applySub(s, c) {
			return nil
		}
		return applyFrom(s, idx+1)

	default:
		if !applyOne(s, c) {
			return nil
		}
		return applyFrom(s, idx+1)
	}
}

// applySub applies a Conjunction's (or a Disjunction branch's own) child
// list in sequence against s. Unlike applyFrom it mutates s in place and
// never forks: a nested Disjunction's children are tried in order on the
// same s and the first that succeeds is kept, and a child that fails
// part-way leaves whatever it had already applied in s. The generator
// never produces nested Disjunctions.
func applySub(s *SystemState, c *constraint.Constraint) bool {
	switch c.Kind {
	case constraint.ConjunctionKind:
		for _, child := range c.Children {
			if !applySub(s, child) {
				return false
			}
		}
		return true
	case constraint.DisjunctionKind:
		for _, child := range c.Children {
			if applySub(s, child) {
				return true
			}
		}
		return false
	default:
		return applyOne(s, c)
	}
}

// applyDefaulting runs the second pass (spec.md §4.3 step 4): every
// Defaultable constraint whose type variable is still unbound is bound to
// its default type; one that's already been unified with something else
// by the first pass is left alone.
func applyDefaulting(s *SystemState) *SystemState {
	for _, c := range s.defaulting {
		tv := Apply(s.Bindings, c.First)
		if _, stillFree := tv.(*types.TypeVariable); !stillFree {
			continue
		}
		sub, err := Unify(c.First, c.Second, s.Bindings)
		if err != nil {
			return nil
		}
		s.Bindings = sub
	}
	return s
}

// tryAddSolution keeps the subset of candidates tied for the minimum
// Score, mirroring spec.md §4.3's SolutionResult::tryAddSolution: a new
// solution strictly better than the current best replaces it outright; a
// tie is kept alongside it; a solution worse than the current best is
// dropped.
func tryAddSolution(candidates []*SystemState) []*SystemState {
	if len(candidates) == 0 {
		return nil
	}
	best := candidates[0].Score
	for _, c := range candidates[1:] {
		if c.Score < best {
			best = c.Score
		}
	}
	var out []*SystemState
	for _, c := range candidates {
		if c.Score == best {
			out = append(out, c)
		}
	}
	return out
}

func toSolution(s *SystemState) *Solution {
	sort.Slice(s.Conversions, func(i, j int) bool {
		return fmt.Sprintf("%p", s.Conversions[i].Expr) < fmt.Sprintf("%p", s.Conversions[j].Expr)
	})
	return &Solution{
		Bindings:    s.Bindings,
		Overloads:   s.Overloads,
		Operators:   s.Operators,
		Members:     s.Members,
		Conversions: s.Conversions,
		Score:       s.Score,
	}
}
