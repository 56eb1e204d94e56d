package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"FinVault/internal/di"
	"FinVault/pkg/config"
	applogger "FinVault/pkg/logger"
	"FinVault/pkg/metrics"
)

// fetch performs one ingestion run and exits. Failed instruments do not
// change the exit code; only bootstrap errors do.
func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	job, cleanup, err := di.InitializeFetch(cfg)
	if err != nil {
		log.Fatalf("fetch initialization failed: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep := job.Run.Run(ctx)
	sum := rep.Summary()

	if cfg.Metrics.PushgatewayURL != "" {
		pctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := metrics.Push(pctx, cfg.Metrics.PushgatewayURL, cfg.Metrics.Job, prometheus.DefaultGatherer); err != nil {
			job.Logger.Warn("metrics push failed", applogger.Error(err))
		}
		cancel()
	}

	job.Logger.Info("fetch complete",
		applogger.String("run_id", sum.RunID),
		applogger.String("target_date", sum.TargetDate),
		applogger.Int("stored", sum.Stored),
		applogger.Int("skipped", sum.Skipped),
		applogger.Int("failed", sum.Failed),
	)
}
