// Command server is the HTTP front door: it accepts solve-run submissions,
// enqueues them onto Asynq, and serves run status back to callers. Adapted
// from the teacher's v2/cmd/server/main.go: echo.New, Logger/Recover
// middleware, explicit route registration, graceful shutdown on SIGINT/
// SIGTERM.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/schedcu/scheduler/internal/apihttp"
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
	scheduler, err := jobqueue.NewScheduler(redisAddr)
	if err != nil {
		log.Fatalw("connect to job queue", "error", err)
	}
	defer scheduler.Close()

	handlers := apihttp.NewHandlers(scheduler, runs)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/api/health", apihttp.HealthCheck(runs))
	e.POST("/api/runs", handlers.CreateRun)
	e.GET("/api/runs/:id", handlers.GetRun)

	addr := os.Getenv("SCHEDULER_SERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	go func() {
		log.Infow("starting server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server start failed", "error", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Errorw("server shutdown error", "error", err)
	}
}

func newRunStore(log *zap.SugaredLogger) (runstore.Store, func()) {
	dsn := os.Getenv("SCHEDULER_DATABASE_URL")
	if dsn == "" {
		log.Infow("no SCHEDULER_DATABASE_URL set, using in-memory run store")
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
