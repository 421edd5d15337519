// Package engine wires the individual build/solve/extract/report packages
// into the single run pipeline shared by cmd/scheduler's synchronous CLI,
// internal/jobqueue's async worker, and cmd/server's HTTP front door.
// Grounded on the teacher's v2/internal/job handlers: one function per
// external entrypoint, a plain struct carrying every intermediate result so
// callers can report back partial state on failure.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schedcu/scheduler/internal/config"
	"github.com/schedcu/scheduler/internal/csvio"
	"github.com/schedcu/scheduler/internal/extract"
	"github.com/schedcu/scheduler/internal/model"
	"github.com/schedcu/scheduler/internal/report"
	"github.com/schedcu/scheduler/internal/shiftnorm"
	"github.com/schedcu/scheduler/internal/solve"
	"github.com/schedcu/scheduler/internal/solve/highsmip"
)

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Result bundles every artifact produced by one Run call.
type Result struct {
	Built       *model.Built
	Solution    solve.Solution
	Stages      []model.StageResult
	Assignments []extract.Assignment
	Employees   []extract.EmployeeSummary
	Objective   []extract.ObjectiveComponent
	Segments    []extract.SegmentShortfall
	ShiftGaps   []extract.ShiftShortfall
	Skills      []extract.SkillShortfall
	Preference  extract.PreferenceSatisfaction
	Mismatches  []string
}

// Run loads the seven standard CSV files from inputDir, builds the model
// against cfg, solves it with the real HiGHS-backed MIP solver, and
// extracts every reporting view in one pass. Non-feasible solves still
// return a Result (for diagnostics); callers check Result.Solution.IsFeasible.
func Run(ctx context.Context, inputDir string, cfg config.Config) (Result, error) {
	return RunWithSolver(ctx, inputDir, cfg, highsmip.New())
}

// RunWithSolver is Run with an explicit solve.Model backend, used by tests
// to substitute internal/solve/refsolver for the real HiGHS solver.
func RunWithSolver(ctx context.Context, inputDir string, cfg config.Config, solver solve.Model) (Result, error) {
	inputs, vr, err := csvio.LoadDir(inputDir)
	if err != nil {
		return Result{}, fmt.Errorf("engine: load inputs: %w", err)
	}
	if vr != nil && vr.HasErrors() {
		return Result{}, fmt.Errorf("engine: load inputs: %s: %s", vr.Summary(), vr.Errors[0].Message)
	}

	normalized, err := shiftnorm.NormalizeAll(inputs.Shifts)
	if err != nil {
		return Result{}, fmt.Errorf("engine: normalize shifts: %w", err)
	}

	built, _, err := model.Build(
		inputs.Employees, normalized, inputs.Windows, inputs.Availability,
		inputs.TimeOff, inputs.Preferences, inputs.OvertimeCosts, cfg, solver,
	)
	if err != nil {
		return Result{}, fmt.Errorf("engine: build model: %w", err)
	}

	limits := solve.Limits{TimeLimit: secondsToDuration(cfg.Solver.TimeLimitSec), MIPGap: cfg.Solver.MipGap, Seed: cfg.Random.Seed}
	sol, stages, err := built.Solve(ctx, limits)
	if err != nil {
		return Result{}, fmt.Errorf("engine: solve: %w", err)
	}

	result := Result{Built: built, Solution: sol, Stages: stages}
	if !sol.IsFeasible() {
		return result, nil
	}

	result.Assignments = extract.Assignments(built, sol)
	result.Employees = extract.EmployeeSummaries(built, sol)
	result.Objective = extract.ObjectiveBreakdown(built, sol)
	result.Segments = extract.SegmentShortfalls(built, sol)
	result.ShiftGaps = extract.ShiftShortfalls(built, sol)
	result.Skills = extract.SkillShortfalls(built, sol)
	result.Preference = extract.Preferences(result.Assignments)
	result.Mismatches = extract.VerifyAggregates(built, sol)
	return result, nil
}

// WriteReports writes every diagnostic CSV file named in the persisted-
// output contract into outputDir, creating it if necessary.
func WriteReports(outputDir string, result Result) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("engine: create output dir: %w", err)
	}

	writers := []struct {
		name string
		fn   func(f *os.File) error
	}{
		{"assignments.csv", func(f *os.File) error { return report.WriteAssignments(f, result.Assignments) }},
		{"segment_coverage.csv", func(f *os.File) error { return report.WriteSegmentCoverage(f, result.Segments) }},
		{"objective_breakdown.csv", func(f *os.File) error { return report.WriteObjectiveBreakdown(f, result.Objective) }},
		{"constraint_status.csv", func(f *os.File) error { return report.WriteConstraintStatus(f, result.Mismatches) }},
		{"overtime.csv", func(f *os.File) error { return report.WriteOvertime(f, result.Employees) }},
		{"shortfall.csv", func(f *os.File) error { return report.WriteShortfall(f, result.ShiftGaps) }},
		{"skill_coverage.csv", func(f *os.File) error { return report.WriteSkillCoverage(f, result.Skills) }},
		{"preferences.csv", func(f *os.File) error { return report.WritePreferences(f, result.Preference) }},
	}

	for _, w := range writers {
		f, err := os.Create(filepath.Join(outputDir, w.name))
		if err != nil {
			return fmt.Errorf("engine: create %s: %w", w.name, err)
		}
		err = w.fn(f)
		closeErr := f.Close()
		if err != nil {
			return fmt.Errorf("engine: write %s: %w", w.name, err)
		}
		if closeErr != nil {
			return fmt.Errorf("engine: close %s: %w", w.name, closeErr)
		}
	}
	return nil
}
