// Command scheduler runs one build/solve/extract/report cycle
// synchronously against a directory of CSV inputs, exiting 0 on a feasible
// or optimal solve and 1 otherwise. Grounded on the teacher's plain flag-
// based CLI entrypoints and the original Python implementation's
// command-line driver (original_source/src/model_cp.py's __main__ block).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/schedcu/scheduler/internal/config"
	"github.com/schedcu/scheduler/internal/engine"
	"github.com/schedcu/scheduler/internal/logger"
)

func main() {
	inputDir := flag.String("input", "", "directory containing the standard CSV input files")
	outputDir := flag.String("output", "", "directory to write diagnostic CSV reports into")
	configPath := flag.String("config", "", "path to a YAML/JSON config overriding the built-in defaults")
	flag.Parse()

	log, err := logger.New("")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if *inputDir == "" {
		fmt.Fprintln(os.Stderr, "scheduler: -input is required")
		os.Exit(1)
	}

	cfg, missing, err := config.Load(*configPath)
	if err != nil {
		log.Errorw("load config", "error", err)
		os.Exit(1)
	}
	if missing != nil && len(missing.Missing) > 0 {
		log.Warnw("config omits recognized sections, using defaults", "sections", missing.Missing)
	}

	result, err := engine.Run(context.Background(), *inputDir, cfg)
	if err != nil {
		log.Errorw("run failed", "error", err)
		os.Exit(1)
	}

	if *outputDir != "" {
		if err := engine.WriteReports(*outputDir, result); err != nil {
			log.Errorw("write reports", "error", err)
			os.Exit(1)
		}
	}

	if !result.Solution.IsFeasible() {
		log.Errorw("solve did not reach a feasible solution", "status", result.Solution.Status)
		for _, m := range result.Mismatches {
			log.Warnw("aggregate mismatch", "detail", m)
		}
		os.Exit(1)
	}

	log.Infow("solve completed",
		"objective_value", result.Solution.ObjectiveValue,
		"assignments", len(result.Assignments),
		"mismatches", len(result.Mismatches),
	)
}
