package apihttp

import (
	"context"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"

	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/jobqueue"
	"github.com/schedcu/scheduler/internal/runstore"
)

// Enqueuer is the subset of jobqueue.Scheduler that Handlers depends on,
// kept as an interface so tests can substitute a fake queue.
type Enqueuer interface {
	EnqueueSolveRun(ctx context.Context, payload jobqueue.SolveRunPayload) (*asynq.TaskInfo, error)
}

// Handlers serves the run-submission and run-status endpoints, enqueueing
// work onto an Enqueuer and reading status back from runstore.Store.
type Handlers struct {
	Scheduler Enqueuer
	Runs      runstore.Store
}

// NewHandlers builds a Handlers bound to the given scheduler and run store.
func NewHandlers(scheduler Enqueuer, runs runstore.Store) *Handlers {
	return &Handlers{Scheduler: scheduler, Runs: runs}
}

// CreateRunRequest is the POST /api/runs request body.
type CreateRunRequest struct {
	InputDir   string `json:"input_dir" validate:"required"`
	ConfigPath string `json:"config_path"`
	OutputDir  string `json:"output_dir"`
}

// RunView is the JSON-facing projection of a runstore.Run.
type RunView struct {
	ID             string     `json:"id"`
	Status         string     `json:"status"`
	SolverStatus   string     `json:"solver_status,omitempty"`
	ObjectiveValue float64    `json:"objective_value,omitempty"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

func toRunView(r *runstore.Run) RunView {
	return RunView{
		ID: r.ID.String(), Status: string(r.Status), SolverStatus: r.SolverStatus,
		ObjectiveValue: r.ObjectiveValue, ErrorMessage: r.ErrorMessage,
		CreatedAt: r.CreatedAt, StartedAt: r.StartedAt, CompletedAt: r.CompletedAt,
	}
}

// CreateRun handles POST /api/runs: persists a queued run record and
// enqueues the solve job.
func (h *Handlers) CreateRun(c echo.Context) error {
	var req CreateRunRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Failure("invalid_request", err.Error()))
	}
	if req.InputDir == "" {
		return c.JSON(http.StatusBadRequest, Failure("invalid_request", "input_dir is required"))
	}

	runID := entity.NewRunID()
	run := &runstore.Run{ID: runID, Status: runstore.StatusQueued, CreatedAt: time.Now()}
	if err := h.Runs.Create(c.Request().Context(), run); err != nil {
		return c.JSON(http.StatusInternalServerError, Failure("run_create_failed", err.Error()))
	}

	_, err := h.Scheduler.EnqueueSolveRun(c.Request().Context(), jobqueue.SolveRunPayload{
		RunID: runID, InputDir: req.InputDir, ConfigPath: req.ConfigPath, OutputDir: req.OutputDir,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, Failure("enqueue_failed", err.Error()))
	}

	return c.JSON(http.StatusAccepted, Success(toRunView(run)))
}

// GetRun handles GET /api/runs/:id.
func (h *Handlers) GetRun(c echo.Context) error {
	id := c.Param("id")
	runID, err := entity.ParseRunID(id)
	if err != nil {
		return c.JSON(http.StatusBadRequest, Failure("invalid_run_id", err.Error()))
	}

	run, err := h.Runs.GetByID(c.Request().Context(), runID)
	if err != nil {
		if runstore.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, Failure("run_not_found", err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, Failure("run_lookup_failed", err.Error()))
	}

	return c.JSON(http.StatusOK, Success(toRunView(run)))
}

// HealthCheck handles GET /api/health.
func HealthCheck(runs runstore.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := runs.Health(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, Failure("unhealthy", err.Error()))
		}
		return c.JSON(http.StatusOK, Success(map[string]string{"status": "ok"}))
	}
}
