package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/scheduler/internal/config"
	"github.com/schedcu/scheduler/internal/engine"
	"github.com/schedcu/scheduler/internal/solve/refsolver"
)

func writeFixture(t *testing.T, dir string) {
	t.Helper()
	employees := "employee_id,name,roles,max_week_hours,min_rest_hours,max_overtime_hours\n" +
		"E1,Alice,Nurse,40,8,4\n" +
		"E2,Bob,Nurse,40,8,4\n"
	shifts := "shift_id,day,start,end,role,demand\n" +
		"S1,2024-01-01,08:00,16:00,Nurse,1\n" +
		"S2,2024-01-01,08:00,16:00,Nurse,1\n"

	require.NoError(t, os.WriteFile(filepath.Join(dir, "employees.csv"), []byte(employees), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shifts.csv"), []byte(shifts), 0o644))
}

func TestRunWithSolverProducesFeasibleSolution(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir)

	result, err := engine.RunWithSolver(context.Background(), dir, config.Default(), refsolver.New())
	require.NoError(t, err)
	require.True(t, result.Solution.IsFeasible())

	assert.NotEmpty(t, result.Assignments)
	assert.Len(t, result.Employees, 2)
	assert.Empty(t, result.Mismatches)
}

func TestRunWithSolverReportsMissingInputDirectory(t *testing.T) {
	_, err := engine.RunWithSolver(context.Background(), filepath.Join(t.TempDir(), "missing"), config.Default(), refsolver.New())
	require.Error(t, err)
}
