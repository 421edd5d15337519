// Package runstore persists run records: one row per build/solve/extract
// invocation, correlating the lifecycle status, solver status, objective
// value, error message and timestamps with a RunID so the HTTP front door and job queue
// can report back to a caller after an async solve completes. Grounded on
// the teacher's v2/internal/repository package (Database/Transaction
// accessor pattern, NotFoundError), scoped down from the teacher's full
// hospital/schedule/shift domain to the single Run record this engine
// needs.
package runstore

import (
	"context"
	"time"

	"github.com/schedcu/scheduler/internal/entity"
)

// Status is a run's lifecycle state.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Run is one build/solve/extract invocation's persisted record.
type Run struct {
	ID             entity.RunID
	Status         Status
	SolverStatus   string // "optimal" | "feasible" | "infeasible" | "unknown", once Done
	ObjectiveValue float64
	ErrorMessage   string
	CreatedAt      time.Time
	StartedAt      *time.Time
	CompletedAt    *time.Time
}

// Store defines data access operations for run records.
type Store interface {
	Create(ctx context.Context, run *Run) error
	GetByID(ctx context.Context, id entity.RunID) (*Run, error)
	Update(ctx context.Context, run *Run) error
	ListByStatus(ctx context.Context, status Status) ([]*Run, error)
	Close() error
	Health(ctx context.Context) error
}

// NotFoundError reports that no run record matches the requested id.
type NotFoundError struct {
	RunID string
}

func (e *NotFoundError) Error() string {
	return "run not found: " + e.RunID
}

// IsNotFound reports whether err is a *NotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}
