// Package memory is an in-memory runstore.Store implementation used for
// tests and for single-process CLI usage where no Postgres instance is
// configured. Grounded on the teacher's
// v2/internal/repository/memory/schedule.go: a mutex-guarded map keyed by
// id, with the same query-count bookkeeping for N+1 detection in tests.
package memory

import (
	"context"
	"sync"

	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/runstore"
)

// Store is an in-memory implementation of runstore.Store.
type Store struct {
	mu         sync.RWMutex
	runs       map[entity.RunID]*runstore.Run
	queryCount int
}

// New creates a new empty in-memory run store.
func New() *Store {
	return &Store{runs: make(map[entity.RunID]*runstore.Run)}
}

func (s *Store) Create(ctx context.Context, run *runstore.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryCount++

	cp := *run
	s.runs[run.ID] = &cp
	return nil
}

func (s *Store) GetByID(ctx context.Context, id entity.RunID) (*runstore.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.queryCount++

	run, ok := s.runs[id]
	if !ok {
		return nil, &runstore.NotFoundError{RunID: id.String()}
	}
	cp := *run
	return &cp, nil
}

func (s *Store) Update(ctx context.Context, run *runstore.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryCount++

	if _, ok := s.runs[run.ID]; !ok {
		return &runstore.NotFoundError{RunID: run.ID.String()}
	}
	cp := *run
	s.runs[run.ID] = &cp
	return nil
}

func (s *Store) ListByStatus(ctx context.Context, status runstore.Status) ([]*runstore.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.queryCount++

	var out []*runstore.Run
	for _, run := range s.runs {
		if run.Status == status {
			cp := *run
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *Store) Close() error { return nil }

func (s *Store) Health(ctx context.Context) error { return nil }

// QueryCount returns how many operations this store has served, for tests
// asserting against N+1 query patterns.
func (s *Store) QueryCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryCount
}
