// Package highsmip adapts solve.Model onto github.com/nextmv-io/sdk's mip
// package, solved with the built-in HiGHS provider. Grounded on
// nextmv-io-community-apps/shift-scheduling/main.go's newMIPModel/solver
// wiring (mip.NewModel, m.NewBool/NewFloat, m.NewConstraint,
// mip.NewSolver(mip.Highs, m)) and order-fulfillment-gosdk/main.go's
// mip.SolveOptions field usage (Duration, MIP.Gap.Relative, Verbosity).
package highsmip

import (
	"context"
	"fmt"

	"github.com/nextmv-io/sdk/mip"

	"github.com/schedcu/scheduler/internal/solve"
)

// Model adapts mip.Model to the solve.Model capability interface. Both
// mip.Bool and mip.Float satisfy mip.Variable, so a single slice of that
// interface holds every variable regardless of kind.
type Model struct {
	m    mip.Model
	vars []mip.Variable
}

// New creates an empty HiGHS-backed model.
func New() *Model {
	return &Model{m: mip.NewModel()}
}

func (a *Model) NewBool(name string) solve.Var {
	v := a.m.NewBool()
	id := solve.Var(len(a.vars))
	a.vars = append(a.vars, v)
	_ = name // mip variables are unnamed; name is kept only for solve.Model callers' diagnostics
	return id
}

// NewInt models an integer-ranged variable as a continuous variable bounded
// to [lb, ub]. Every aggregate/slack quantity in the scheduling model is
// tied to an integer sum by an equality constraint (spec §4.5), so its
// value is integral at any optimum even without explicit integrality —
// the same pattern the shift-scheduling template uses for its demand
// slack variables (m.NewFloat bounded to the demand count).
func (a *Model) NewInt(name string, lb, ub int) solve.Var {
	v := a.m.NewFloat(float64(lb), float64(ub))
	id := solve.Var(len(a.vars))
	a.vars = append(a.vars, v)
	_ = name
	return id
}

func (a *Model) AddConstraint(name string, sense solve.Sense, rhs float64, terms ...solve.Term) {
	var op mip.Sense
	switch sense {
	case solve.LE:
		op = mip.LessThanOrEqual
	case solve.GE:
		op = mip.GreaterThanOrEqual
	default:
		op = mip.Equal
	}
	c := a.m.NewConstraint(op, rhs)
	for _, t := range terms {
		c.NewTerm(t.Coefficient, a.vars[t.Var])
	}
	_ = name
}

func (a *Model) SetObjective(minimize bool, terms ...solve.Term) {
	if minimize {
		a.m.Objective().SetMinimize()
	} else {
		a.m.Objective().SetMaximize()
	}
	for _, t := range terms {
		a.m.Objective().NewTerm(t.Coefficient, a.vars[t.Var])
	}
}

func (a *Model) Solve(ctx context.Context, limits solve.Limits) (solve.Solution, error) {
	solver, err := mip.NewSolver(mip.Highs, a.m)
	if err != nil {
		return solve.Solution{}, fmt.Errorf("highsmip: creating solver: %w", err)
	}

	options := mip.SolveOptions{}
	options.Duration = limits.TimeLimit
	options.MIP.Gap.Relative = limits.MIPGap
	options.Verbosity = mip.Off

	solution, err := solver.Solve(options)
	if err != nil {
		return solve.Solution{}, fmt.Errorf("highsmip: solve: %w", err)
	}

	status := solve.StatusUnknown
	switch {
	case solution.IsOptimal():
		status = solve.StatusOptimal
	case solution.IsSubOptimal():
		status = solve.StatusFeasible
	case !solution.HasValues():
		status = solve.StatusInfeasible
	}

	values := make(map[solve.Var]float64, len(a.vars))
	if solution.HasValues() {
		for i, v := range a.vars {
			values[solve.Var(i)] = solution.Value(v)
		}
	}

	var objective float64
	if solution.HasValues() {
		objective = solution.ObjectiveValue()
	}

	return solve.Solution{Status: status, ObjectiveValue: objective, Values: values}, nil
}
