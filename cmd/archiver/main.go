package main

import (
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/statusgrid/internal/config"
	"github.com/hamed0406/statusgrid/internal/history"
	"github.com/hamed0406/statusgrid/internal/logging"
)

// archiver moves observations older than the retention window out of the
// results file into the archive file. Run it on the same cadence as pruning
// so expired data is preserved instead of dropped.
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
		log.Fatal(err)
	}

	results := history.NewStore(cfg.ResultsFile, loc, logger)
	archive := history.NewStore(cfg.ArchiveFile, loc, logger)

	if err := history.Archive(results, archive, cfg.Retention(), time.Now().In(loc), logger); err != nil {
		logger.Error("archive_failed", zap.Error(err))
		log.Fatal(err)
	}
}
