package jobqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/schedcu/scheduler/internal/config"
	"github.com/schedcu/scheduler/internal/engine"
	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/runstore"
	"github.com/schedcu/scheduler/internal/solve"
)

// Handlers executes solve-run jobs popped off the queue, persisting status
// transitions through a runstore.Store as it goes.
type Handlers struct {
	runs runstore.Store
	log  *zap.SugaredLogger
}

// NewHandlers creates a Handlers bound to the given run store and logger.
func NewHandlers(runs runstore.Store, log *zap.SugaredLogger) *Handlers {
	return &Handlers{runs: runs, log: log}
}

// RegisterHandlers wires every recognized task type onto mux.
func (h *Handlers) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeSolveRun, h.HandleSolveRun)
}

// HandleSolveRun executes one build/solve/extract/report cycle and records
// its outcome against the run store.
func (h *Handlers) HandleSolveRun(ctx context.Context, t *asynq.Task) error {
	var payload SolveRunPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("jobqueue: unmarshal payload: %w", asynq.SkipRetry)
	}

	h.log.Infow("solve run starting", "run_id", payload.RunID.String(), "input_dir", payload.InputDir)

	started := time.Now()
	if err := h.runs.Update(ctx, &runstore.Run{
		ID: payload.RunID, Status: runstore.StatusRunning, StartedAt: &started,
	}); err != nil {
		h.log.Warnw("failed to mark run running", "run_id", payload.RunID.String(), "error", err)
	}

	cfg := config.Default()
	if payload.ConfigPath != "" {
		loaded, _, err := config.Load(payload.ConfigPath)
		if err != nil {
			return h.fail(ctx, payload.RunID, fmt.Errorf("load config: %w", err))
		}
		cfg = loaded
	}

	result, err := engine.Run(ctx, payload.InputDir, cfg)
	if err != nil {
		return h.fail(ctx, payload.RunID, err)
	}

	if payload.OutputDir != "" {
		if err := engine.WriteReports(payload.OutputDir, result); err != nil {
			return h.fail(ctx, payload.RunID, fmt.Errorf("write reports: %w", err))
		}
	}

	completed := time.Now()
	solverStatus := "infeasible"
	if result.Solution.IsFeasible() {
		solverStatus = "feasible"
		if result.Solution.Status == 0 {
			solverStatus = "optimal"
		}
	} else if result.Solution.Status == solve.StatusUnknown {
		solverStatus = "unknown"
	}

	if err := h.runs.Update(ctx, &runstore.Run{
		ID: payload.RunID, Status: runstore.StatusDone, SolverStatus: solverStatus,
		ObjectiveValue: result.Solution.ObjectiveValue, CompletedAt: &completed,
	}); err != nil {
		h.log.Errorw("failed to persist run completion", "run_id", payload.RunID.String(), "error", err)
		return fmt.Errorf("jobqueue: persist run completion: %w", err)
	}

	h.log.Infow("solve run completed", "run_id", payload.RunID.String(), "solver_status", solverStatus)
	return nil
}

// fail marks the run failed and returns the triggering error, so callers
// can simply `return h.fail(...)` from within HandleSolveRun.
func (h *Handlers) fail(ctx context.Context, runID entity.RunID, cause error) error {
	h.log.Errorw("solve run failed", "run_id", runID.String(), "error", cause)

	completed := time.Now()
	if err := h.runs.Update(ctx, &runstore.Run{
		ID: runID, Status: runstore.StatusFailed, ErrorMessage: cause.Error(), CompletedAt: &completed,
	}); err != nil {
		h.log.Errorw("failed to persist run failure", "run_id", runID.String(), "error", err)
	}
	return fmt.Errorf("jobqueue: solve run failed: %w", cause)
}
