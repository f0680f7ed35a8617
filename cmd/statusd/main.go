package main

import (
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/hamed0406/statusgrid/internal/config"
	"github.com/hamed0406/statusgrid/internal/history"
	"github.com/hamed0406/statusgrid/internal/httpapi"
	"github.com/hamed0406/statusgrid/internal/logging"
	"github.com/hamed0406/statusgrid/internal/targets"
)

// statusd serves the rendered status page, charts and a JSON snapshot API.
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

	ts, _ := targets.Load(cfg.TargetsFile, logger)
	store := history.NewStore(cfg.ResultsFile, loc, logger)
	srv := httpapi.NewServer(logger, store, ts, cfg.DocsDir)

	logger.Info("statusd_listen", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, srv.Router(cfg.APIKeys)); err != nil {
		log.Fatal(err)
	}
}
