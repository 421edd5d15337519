// Package postgres is a lib/pq-backed runstore.Store implementation.
// Grounded on the teacher's v2/internal/repository/postgres package: the
// same sql.DB wrapper (New/Close/Health) and per-entity repository shape,
// scoped down to the single run_runs table this engine needs.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/runstore"
)

func toUUID(id entity.RunID) string {
	return uuid.UUID(id).String()
}

func fromUUID(s string) entity.RunID {
	u, err := uuid.Parse(s)
	if err != nil {
		return entity.RunID{}
	}
	return entity.RunID(u)
}

// Store is a PostgreSQL-backed runstore.Store.
type Store struct {
	db *sql.DB
}

// New opens a connection pool against connString and verifies connectivity.
func New(connString string) (*Store, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("runstore/postgres: open: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("runstore/postgres: ping: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error { return s.db.Close() }

// Health checks database connectivity.
func (s *Store) Health(ctx context.Context) error { return s.db.PingContext(ctx) }

// Migrate creates the run_runs table if it does not already exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS run_runs (
			id UUID PRIMARY KEY,
			status VARCHAR(20) NOT NULL,
			solver_status VARCHAR(20) NOT NULL DEFAULT '',
			objective_value DOUBLE PRECISION NOT NULL DEFAULT 0,
			error_message TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			started_at TIMESTAMP,
			completed_at TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("runstore/postgres: migrate: %w", err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, run *runstore.Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO run_runs (
			id, status, solver_status, objective_value, error_message,
			created_at, started_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		toUUID(run.ID), string(run.Status), run.SolverStatus, run.ObjectiveValue, run.ErrorMessage,
		run.CreatedAt, run.StartedAt, run.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("runstore/postgres: create: %w", err)
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id entity.RunID) (*runstore.Run, error) {
	run := &runstore.Run{ID: id}
	var status, solverStatus, errMsg string

	err := s.db.QueryRowContext(ctx, `
		SELECT status, solver_status, objective_value, error_message,
		       created_at, started_at, completed_at
		FROM run_runs WHERE id = $1
	`, toUUID(id)).Scan(
		&status, &solverStatus, &run.ObjectiveValue, &errMsg,
		&run.CreatedAt, &run.StartedAt, &run.CompletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &runstore.NotFoundError{RunID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("runstore/postgres: get: %w", err)
	}

	run.Status = runstore.Status(status)
	run.SolverStatus = solverStatus
	run.ErrorMessage = errMsg
	return run, nil
}

func (s *Store) Update(ctx context.Context, run *runstore.Run) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE run_runs
		SET status = $1, solver_status = $2, objective_value = $3, error_message = $4,
		    started_at = $5, completed_at = $6
		WHERE id = $7
	`,
		string(run.Status), run.SolverStatus, run.ObjectiveValue, run.ErrorMessage,
		run.StartedAt, run.CompletedAt, toUUID(run.ID),
	)
	if err != nil {
		return fmt.Errorf("runstore/postgres: update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("runstore/postgres: update rows affected: %w", err)
	}
	if n == 0 {
		return &runstore.NotFoundError{RunID: run.ID.String()}
	}
	return nil
}

func (s *Store) ListByStatus(ctx context.Context, status runstore.Status) ([]*runstore.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, status, solver_status, objective_value, error_message,
		       created_at, started_at, completed_at
		FROM run_runs WHERE status = $1
		ORDER BY created_at DESC
	`, string(status))
	if err != nil {
		return nil, fmt.Errorf("runstore/postgres: list by status: %w", err)
	}
	defer rows.Close()

	var out []*runstore.Run
	for rows.Next() {
		run := &runstore.Run{}
		var id, st, solverStatus, errMsg string
		if err := rows.Scan(
			&id, &st, &solverStatus, &run.ObjectiveValue, &errMsg,
			&run.CreatedAt, &run.StartedAt, &run.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("runstore/postgres: scan: %w", err)
		}
		run.ID = fromUUID(id)
		run.Status = runstore.Status(st)
		run.SolverStatus = solverStatus
		run.ErrorMessage = errMsg
		out = append(out, run)
	}
	return out, rows.Err()
}
