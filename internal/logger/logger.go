// Package logger configures structured logging for the scheduling engine,
// adapted from the teacher's zap-based logger package.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a *zap.SugaredLogger configured for the given environment. If
// env is empty, it reads the SCHEDULER_ENV environment variable, defaulting
// to production behavior (JSON, info level) when unset or unrecognized.
func New(env string) (*zap.SugaredLogger, error) {
	if env == "" {
		env = os.Getenv("SCHEDULER_ENV")
	}

	var config zap.Config
	switch env {
	case "development", "dev":
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.OutputPaths = []string{"stdout"}
		config.ErrorOutputPaths = []string{"stderr"}
	default:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		config.OutputPaths = []string{"stdout"}
		config.ErrorOutputPaths = []string{"stderr"}
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	built, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("logger: failed to build: %w", err)
	}
	return built.Sugar(), nil
}

// Noop returns a logger that discards everything, for tests and for code
// paths that accept a nil-safe logger.
func Noop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
