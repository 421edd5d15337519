// Package refsolver is a deterministic, dependency-free implementation of
// solve.Model used by unit tests: an exhaustive search over the bounded
// variable domains, bailing out to solve.StatusUnknown when the combined
// state space exceeds a configurable cap. It exists so that
// internal/model's constraint/objective wiring can be exercised without a
// real MIP backend, matching spec Design Notes §9's "swapping backends is
// mechanical" requirement.
package refsolver

import (
	"context"
	"sort"

	"github.com/schedcu/scheduler/internal/solve"
)

const defaultMaxStates = 2_000_000

type variable struct {
	name   string
	lb, ub int
}

type constraint struct {
	name  string
	sense solve.Sense
	rhs   float64
	terms []solve.Term
}

// Model is a small exhaustive-search solve.Model, intended for unit tests
// with a handful of variables.
type Model struct {
	vars        []variable
	constraints []constraint
	objTerms    []solve.Term
	minimize    bool
	maxStates   int
}

// New creates an empty reference model with the default state-space cap.
func New() *Model {
	return &Model{maxStates: defaultMaxStates}
}

// SetMaxStates overrides the exhaustive-search cap (default 2,000,000
// combined variable-domain states); exceeding it returns StatusUnknown
// instead of enumerating.
func (m *Model) SetMaxStates(n int) { m.maxStates = n }

func (m *Model) NewBool(name string) solve.Var {
	id := solve.Var(len(m.vars))
	m.vars = append(m.vars, variable{name: name, lb: 0, ub: 1})
	return id
}

func (m *Model) NewInt(name string, lb, ub int) solve.Var {
	id := solve.Var(len(m.vars))
	m.vars = append(m.vars, variable{name: name, lb: lb, ub: ub})
	return id
}

func (m *Model) AddConstraint(name string, sense solve.Sense, rhs float64, terms ...solve.Term) {
	m.constraints = append(m.constraints, constraint{
		name: name, sense: sense, rhs: rhs, terms: append([]solve.Term{}, terms...),
	})
}

func (m *Model) SetObjective(minimize bool, terms ...solve.Term) {
	m.minimize = minimize
	m.objTerms = append([]solve.Term{}, terms...)
}

func (m *Model) Solve(ctx context.Context, limits solve.Limits) (solve.Solution, error) {
	if len(m.vars) == 0 {
		return m.solutionFor(solve.StatusOptimal, nil), nil
	}

	states := 1
	for _, v := range m.vars {
		domain := v.ub - v.lb + 1
		if domain <= 0 {
			return solve.Solution{Status: solve.StatusInfeasible}, nil
		}
		states *= domain
		if states > m.maxStates {
			return solve.Solution{Status: solve.StatusUnknown}, nil
		}
	}

	assignment := make([]int, len(m.vars))
	for i, v := range m.vars {
		assignment[i] = v.lb
	}

	var best []int
	var bestObj float64
	found := false

	for {
		select {
		case <-ctx.Done():
			if found {
				return m.solutionFor(solve.StatusFeasible, best), nil
			}
			return solve.Solution{Status: solve.StatusUnknown}, nil
		default:
		}

		if m.satisfies(assignment) {
			obj := m.evalObjective(assignment)
			if !found || (m.minimize && obj < bestObj) || (!m.minimize && obj > bestObj) {
				found = true
				bestObj = obj
				best = append([]int{}, assignment...)
			}
		}

		if !m.increment(assignment) {
			break
		}
	}

	if !found {
		return solve.Solution{Status: solve.StatusInfeasible}, nil
	}
	return m.solutionFor(solve.StatusOptimal, best), nil
}

func (m *Model) increment(assignment []int) bool {
	for i := len(m.vars) - 1; i >= 0; i-- {
		assignment[i]++
		if assignment[i] <= m.vars[i].ub {
			return true
		}
		assignment[i] = m.vars[i].lb
	}
	return false
}

func (m *Model) evalTerms(terms []solve.Term, assignment []int) float64 {
	var total float64
	for _, t := range terms {
		total += t.Coefficient * float64(assignment[t.Var])
	}
	return total
}

func (m *Model) evalObjective(assignment []int) float64 {
	return m.evalTerms(m.objTerms, assignment)
}

func (m *Model) satisfies(assignment []int) bool {
	for _, c := range m.constraints {
		lhs := m.evalTerms(c.terms, assignment)
		switch c.sense {
		case solve.LE:
			if lhs > c.rhs+1e-6 {
				return false
			}
		case solve.GE:
			if lhs < c.rhs-1e-6 {
				return false
			}
		case solve.EQ:
			if lhs < c.rhs-1e-6 || lhs > c.rhs+1e-6 {
				return false
			}
		}
	}
	return true
}

func (m *Model) solutionFor(status solve.Status, assignment []int) solve.Solution {
	values := make(map[solve.Var]float64, len(m.vars))
	for i := range m.vars {
		if assignment != nil {
			values[solve.Var(i)] = float64(assignment[i])
		}
	}
	var obj float64
	if assignment != nil {
		obj = m.evalObjective(assignment)
	}
	return solve.Solution{Status: status, ObjectiveValue: obj, Values: values}
}

// VarNames returns the variable names sorted by name, for diagnostics.
func (m *Model) VarNames() []string {
	names := make([]string, len(m.vars))
	for i, v := range m.vars {
		names[i] = v.name
	}
	sort.Strings(names)
	return names
}
