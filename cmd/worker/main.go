// Command worker runs the Asynq consumer that executes queued solve runs.
// Adapted from the teacher's v2/internal/job handler-registration pattern,
// wired onto asynq.NewServer/ServeMux instead of the HTTP front door.
package main

import (
	"context"
	"os"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/schedcu/scheduler/internal/jobqueue"
	"github.com/schedcu/scheduler/internal/logger"
	"github.com/schedcu/scheduler/internal/runstore"
	"github.com/schedcu/scheduler/internal/runstore/memory"
	"github.com/schedcu/scheduler/internal/runstore/postgres"
)

func main() {
	log, err := logger.New("")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	runs, closeRuns := newRunStore(log)
	defer closeRuns()

	redisAddr := os.Getenv("SCHEDULER_REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}

	concurrency := 10
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{Concurrency: concurrency},
	)

	handlers := jobqueue.NewHandlers(runs, log)
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	log.Infow("starting worker", "redis_addr", redisAddr, "concurrency", concurrency)
	if err := srv.Run(mux); err != nil {
		log.Fatalw("worker stopped", "error", err)
	}
}

func newRunStore(log *zap.SugaredLogger) (runstore.Store, func()) {
	dsn := os.Getenv("SCHEDULER_DATABASE_URL")
	if dsn == "" {
		store := memory.New()
		return store, func() { _ = store.Close() }
	}

	store, err := postgres.New(dsn)
	if err != nil {
		log.Fatalw("connect to postgres run store", "error", err)
	}
	if err := store.Migrate(context.Background()); err != nil {
		log.Fatalw("migrate run store", "error", err)
	}
	return store, func() { _ = store.Close() }
}
