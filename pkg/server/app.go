package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"FinVault/internal/domain/models"
	"FinVault/pkg/config"
	xhttp "FinVault/pkg/http"
	applogger "FinVault/pkg/logger"
)

// Runner executes one ingestion run.
type Runner interface {
	Run(ctx context.Context) *models.RunReport
}

// App encapsulates the long-running application: the daily schedule and
// the read API.
type App struct {
	cfg        *config.Config
	l          *applogger.Logger
	runner     Runner
	httpServer *xhttp.Server
	cron       *cron.Cron

	mu      sync.Mutex
	running bool
	wg      sync.WaitGroup
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, l *applogger.Logger, runner Runner, httpServer *xhttp.Server) (*App, error) {
	a := &App{
		cfg:        cfg,
		l:          l,
		runner:     runner,
		httpServer: httpServer,
	}
	a.cron = cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cronLogger{l: l}),
	)
	if _, err := a.cron.AddFunc(cfg.Schedule.Spec, a.trigger); err != nil {
		return nil, fmt.Errorf("schedule %q: %w", cfg.Schedule.Spec, err)
	}
	return a, nil
}

// Run starts the scheduler and HTTP server and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext is Run with a caller supplied lifetime.
func (a *App) RunContext(ctx context.Context) error {
	if a.httpServer != nil {
		if err := a.httpServer.Start(); err != nil {
			a.l.Error("http server start error", applogger.Error(err))
			return err
		}
	}

	a.cron.Start()
	a.l.Info("scheduler started",
		applogger.String("spec", a.cfg.Schedule.Spec),
		applogger.Bool("run_on_start", a.cfg.Schedule.RunOnStart),
	)
	if a.cfg.Schedule.RunOnStart {
		a.trigger()
	}

	<-ctx.Done()
	a.l.Info("shutdown signal received")
	return a.shutdown()
}

// trigger starts a run unless one is already in progress in this process.
func (a *App) trigger() {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		a.l.Warn("previous run still in progress, skipping trigger")
		return
	}
	a.running = true
	a.wg.Add(1)
	a.mu.Unlock()

	go func() {
		defer func() {
			a.mu.Lock()
			a.running = false
			a.mu.Unlock()
			a.wg.Done()
		}()
		a.runner.Run(context.Background())
	}()
}

// shutdown stops the scheduler, waits for an in-flight run and stops the
// HTTP server.
func (a *App) shutdown() error {
	a.l.Info("shutting down...")
	timeout := a.cfg.Server.ShutdownTimeout

	cronCtx := a.cron.Stop()
	done := make(chan struct{})
	go func() {
		<-cronCtx.Done()
		a.wg.Wait()
		close(done)
	}()

	var errs []error
	select {
	case <-done:
	case <-time.After(a.cfg.Retention.Timeout + timeout):
		errs = append(errs, errors.New("in-flight run did not finish before shutdown"))
		a.l.Warn("in-flight run still active at shutdown")
	}

	if a.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := a.httpServer.Stop(ctx); err != nil {
			a.l.Error("http shutdown error", applogger.Error(err))
			errs = append(errs, err)
		}
	}

	a.l.Info("shutdown complete")
	return errors.Join(errs...)
}
