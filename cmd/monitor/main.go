package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/statusgrid/internal/config"
	"github.com/hamed0406/statusgrid/internal/history"
	"github.com/hamed0406/statusgrid/internal/logging"
	"github.com/hamed0406/statusgrid/internal/probe"
	"github.com/hamed0406/statusgrid/internal/report"
	"github.com/hamed0406/statusgrid/internal/scheduler"
	"github.com/hamed0406/statusgrid/internal/targets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("bad_timezone", zap.Error(err))
		log.Fatal(err)
	}
	now := time.Now().In(loc)

	ts, usedDefaults := targets.Load(cfg.TargetsFile, logger)
	if usedDefaults && cfg.TargetsRequired {
		// continuing would silently monitor nothing the operator asked for
		logger.Error("targets_required_but_missing", zap.String("path", cfg.TargetsFile))
		log.Fatalf("target list %s required but unusable", cfg.TargetsFile)
	}

	store := history.NewStore(cfg.ResultsFile, loc, logger)
	existing := store.Load()

	runner := scheduler.NewRunner(logger, newChecker(cfg), cfg.ProbeTimeout, cfg.Concurrency, loc)
	fresh := runner.RunOnce(context.Background(), ts)

	merged := history.MergeAndPrune(existing, fresh, cfg.Retention(), now)
	if err := store.Save(merged); err != nil {
		// not fatal: render from the in-memory history and finish the run
		logger.Error("history_persist_failed", zap.String("path", cfg.ResultsFile), zap.Error(err))
	}

	renderer := report.NewRenderer(logger, cfg.DocsDir, cfg.RetentionDays, cfg.Retention(), cfg.BucketWidth, loc)
	if err := renderer.Render(merged, ts, now); err != nil {
		logger.Error("render_failed", zap.Error(err))
	}

	logger.Info("run_complete",
		zap.Int("targets", len(ts)),
		zap.Int("observations", merged.Len()),
	)
}

func newChecker(cfg config.Config) probe.Checker {
	var inner probe.Checker
	switch cfg.ProbeMode {
	case "ping":
		inner = probe.NewPingChecker(cfg.PingCount, cfg.ProbeTimeout)
	case "dns":
		inner = probe.NewDNSChecker()
	default:
		inner = probe.NewHTTPChecker(cfg.ProbeTimeout)
	}
	if cfg.RetryAttempts > 1 {
		return &probe.RetryChecker{Inner: inner, Attempts: cfg.RetryAttempts, Backoff: cfg.RetryBackoff}
	}
	return inner
}
