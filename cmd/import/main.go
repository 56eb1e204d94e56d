package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"FinVault/internal/di"
	"FinVault/internal/usecase"
	"FinVault/pkg/config"
	applogger "FinVault/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	only := flag.String("instrument", "", "import only this instrument's sources")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if len(cfg.Importer.Sources) == 0 {
		log.Fatalf("no importer.sources configured in %s", *configPath)
	}

	job, cleanup, err := di.InitializeImport(cfg)
	if err != nil {
		log.Fatalf("import initialization failed: %v", err)
	}
	defer cleanup()

	specs, err := resolve(cfg, job, *only)
	if err != nil {
		job.Logger.Error("import sources invalid", applogger.Error(err))
		cleanup()
		os.Exit(1)
	}

	ctx := context.Background()
	var total usecase.ImportResult
	failed := 0
	for _, spec := range specs {
		res, err := job.Importer.ImportFile(ctx, spec)
		if err != nil {
			failed++
			job.Logger.Error("import failed",
				applogger.String("instrument", spec.Instrument),
				applogger.String("file", spec.File),
				applogger.Error(err),
			)
			continue
		}
		total.Inserted += res.Inserted
		total.Present += res.Present
		total.Invalid += res.Invalid
	}

	job.Logger.Info("import complete",
		applogger.Int("sources", len(specs)),
		applogger.Int("failed_sources", failed),
		applogger.Int("inserted", total.Inserted),
		applogger.Int("present", total.Present),
		applogger.Int("invalid", total.Invalid),
	)
	if failed > 0 {
		cleanup()
		os.Exit(1)
	}
}

// resolve turns configured sources into import specs with a concrete
// price header.
func resolve(cfg *config.Config, job *di.ImportJob, only string) ([]usecase.ImportSpec, error) {
	specs := make([]usecase.ImportSpec, 0, len(cfg.Importer.Sources))
	for _, src := range cfg.Importer.Sources {
		if only != "" && src.Instrument != only {
			continue
		}
		inst, ok := job.Catalog.Get(src.Instrument)
		if !ok {
			return nil, fmt.Errorf("importer source %s: %w", src.Instrument, usecase.ErrUnknownInstrument)
		}
		header, err := src.HeaderFor(inst)
		if err != nil {
			return nil, err
		}
		specs = append(specs, usecase.ImportSpec{
			Instrument:  src.Instrument,
			File:        src.File,
			DateColumn:  src.DateColumn,
			DateLayout:  src.DateLayout,
			PriceHeader: header,
		})
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("no importer source matches %q", only)
	}
	return specs, nil
}
