package refsolver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/scheduler/internal/solve"
	"github.com/schedcu/scheduler/internal/solve/refsolver"
)

func TestSolveSimpleCover(t *testing.T) {
	m := refsolver.New()
	x1 := m.NewBool("x1")
	x2 := m.NewBool("x2")

	m.AddConstraint("cover", solve.GE, 1, solve.Term{Coefficient: 1, Var: x1}, solve.Term{Coefficient: 1, Var: x2})
	m.SetObjective(true, solve.Term{Coefficient: 1, Var: x1}, solve.Term{Coefficient: 1, Var: x2})

	sol, err := m.Solve(context.Background(), solve.Limits{})
	require.NoError(t, err)
	require.True(t, sol.IsFeasible())
	assert.Equal(t, 1.0, sol.ObjectiveValue)
	assert.Equal(t, 1.0, sol.Value(x1)+sol.Value(x2))
}

func TestSolveInfeasible(t *testing.T) {
	m := refsolver.New()
	x1 := m.NewBool("x1")

	m.AddConstraint("too-big", solve.GE, 2, solve.Term{Coefficient: 1, Var: x1})
	m.SetObjective(true, solve.Term{Coefficient: 1, Var: x1})

	sol, err := m.Solve(context.Background(), solve.Limits{})
	require.NoError(t, err)
	assert.Equal(t, solve.StatusInfeasible, sol.Status)
}

func TestSolveIntegerVariable(t *testing.T) {
	m := refsolver.New()
	y := m.NewInt("y", 0, 5)

	m.AddConstraint("at-least-three", solve.GE, 3, solve.Term{Coefficient: 1, Var: y})
	m.SetObjective(true, solve.Term{Coefficient: 1, Var: y})

	sol, err := m.Solve(context.Background(), solve.Limits{})
	require.NoError(t, err)
	require.True(t, sol.IsFeasible())
	assert.Equal(t, 3.0, sol.Value(y))
}

func TestSolveExceedsStateCapReturnsUnknown(t *testing.T) {
	m := refsolver.New()
	m.SetMaxStates(4)
	for i := 0; i < 10; i++ {
		m.NewBool("x")
	}
	m.SetObjective(true)

	sol, err := m.Solve(context.Background(), solve.Limits{})
	require.NoError(t, err)
	assert.Equal(t, solve.StatusUnknown, sol.Status)
}
