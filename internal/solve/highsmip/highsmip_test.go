package highsmip_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schedcu/scheduler/internal/solve"
	"github.com/schedcu/scheduler/internal/solve/highsmip"
)

// TestModelWiringDoesNotPanic exercises variable/constraint/objective
// construction only. Invoking Solve requires the native HiGHS library to be
// present, so the actual solve path is not run here; the model and engine
// tests solve with internal/solve/refsolver instead.
func TestModelWiringDoesNotPanic(t *testing.T) {
	m := highsmip.New()
	x := m.NewBool("x")
	y := m.NewInt("y", 0, 10)

	assert.NotPanics(t, func() {
		m.AddConstraint("c1", solve.LE, 5, solve.Term{Coefficient: 1, Var: x}, solve.Term{Coefficient: 1, Var: y})
		m.SetObjective(true, solve.Term{Coefficient: 1, Var: x}, solve.Term{Coefficient: 2, Var: y})
	})
}
