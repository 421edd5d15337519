// Package jobqueue enqueues and executes solve runs asynchronously over
// Asynq/Redis, grounded on the teacher's v2/internal/job package: a
// JobScheduler wrapping an *asynq.Client to enqueue, and a set of handlers
// registered on an *asynq.ServeMux to execute.
package jobqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/schedcu/scheduler/internal/entity"
)

// TypeSolveRun is the Asynq task type for a single build/solve/extract/
// report invocation.
const TypeSolveRun = "scheduler:solve_run"

// SolveRunPayload is the task payload for TypeSolveRun.
type SolveRunPayload struct {
	RunID      entity.RunID `json:"run_id"`
	InputDir   string       `json:"input_dir"`
	ConfigPath string       `json:"config_path"`
	OutputDir  string       `json:"output_dir"`
}

// Scheduler enqueues solve-run jobs onto Asynq.
type Scheduler struct {
	client *asynq.Client
}

// NewScheduler creates a Scheduler backed by the Redis instance at redisAddr.
func NewScheduler(redisAddr string) (*Scheduler, error) {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	if err := client.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("jobqueue: connect to redis: %w", err)
	}
	return &Scheduler{client: client}, nil
}

// EnqueueSolveRun enqueues one solve run, retried up to twice with a
// generous timeout since solver wall-clock time is config-driven and can
// run into minutes for large rosters.
func (s *Scheduler) EnqueueSolveRun(ctx context.Context, payload SolveRunPayload) (*asynq.TaskInfo, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("jobqueue: marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeSolveRun, body)
	info, err := s.client.EnqueueContext(ctx, task, asynq.MaxRetry(2), asynq.Timeout(30*time.Minute))
	if err != nil {
		return nil, fmt.Errorf("jobqueue: enqueue solve run: %w", err)
	}
	return info, nil
}

// Close releases the underlying Redis connection.
func (s *Scheduler) Close() error {
	return s.client.Close()
}
