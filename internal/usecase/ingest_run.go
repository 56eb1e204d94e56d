package usecase

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"FinVault/internal/domain/models"
	domrepo "FinVault/internal/domain/repository"
	applogger "FinVault/pkg/logger"
	"FinVault/pkg/util"
)

const (
	TargetYesterday = "yesterday"
	TargetToday     = "today"

	// AbortRun abandons every remaining fetch stage after an unexpected failure.
	AbortRun = "run"
	// AbortStage abandons only the stage that failed.
	AbortStage = "stage"

	runLockKey = "run:ingest"
)

// IngestConfig holds the run policy.
type IngestConfig struct {
	TargetDate   string
	AbortScope   string
	Concurrency  int
	QuoteBase    string
	Base         string
	FetchTimeout time.Duration
	PruneTimeout time.Duration
	LockTTL      time.Duration
}

// IngestRun fetches, derives, validates and stores one day of prices for the
// whole catalog, then prunes old rows.
type IngestRun struct {
	catalog   *models.Catalog
	store     domrepo.PriceStore
	spot      domrepo.SpotSource
	daily     domrepo.DailyCloseSource
	rates     domrepo.RateSource
	pruner    *RetentionPruner
	validator FreshnessValidator
	metrics   domrepo.Metrics
	l         *applogger.Logger
	cfg       IngestConfig

	events domrepo.EventPublisher
	lock   domrepo.RunLock
	now    func() time.Time
	newID  func() string
}

type IngestOption func(*IngestRun)

// WithEventPublisher ships the finished report.
func WithEventPublisher(p domrepo.EventPublisher) IngestOption {
	return func(r *IngestRun) { r.events = p }
}

// WithRunLock keeps overlapping runs out.
func WithRunLock(l domrepo.RunLock) IngestOption {
	return func(r *IngestRun) { r.lock = l }
}

// WithNow overrides the clock.
func WithNow(now func() time.Time) IngestOption {
	return func(r *IngestRun) { r.now = now }
}

func NewIngestRun(
	catalog *models.Catalog,
	store domrepo.PriceStore,
	spot domrepo.SpotSource,
	daily domrepo.DailyCloseSource,
	rates domrepo.RateSource,
	pruner *RetentionPruner,
	metrics domrepo.Metrics,
	l *applogger.Logger,
	cfg IngestConfig,
	opts ...IngestOption,
) *IngestRun {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 15 * time.Second
	}
	if cfg.PruneTimeout <= 0 {
		cfg.PruneTimeout = time.Minute
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 10 * time.Minute
	}
	r := &IngestRun{
		catalog: catalog,
		store:   store,
		spot:    spot,
		daily:   daily,
		rates:   rates,
		pruner:  pruner,
		metrics: metrics,
		l:       l,
		cfg:     cfg,
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TargetDate maps the policy onto the calendar day a run records.
func TargetDate(now time.Time, policy string) time.Time {
	d := util.Day(now)
	if policy == TargetToday {
		return d
	}
	return d.AddDate(0, 0, -1)
}

type stage struct {
	name string
	fn   func(ctx context.Context, rep *models.RunReport, log *applogger.Logger) error
}

// Run executes one ingestion run. It never returns an error: every
// per-instrument failure is in the report, and pruning always runs.
func (r *IngestRun) Run(ctx context.Context) *models.RunReport {
	started := r.now()
	target := TargetDate(started, r.cfg.TargetDate)
	rep := models.NewRunReport(r.newID(), target, started)
	log := r.l.With(applogger.String("run_id", rep.RunID), applogger.Date("target_date", target))

	if r.lock != nil {
		ok, err := r.lock.TryLock(ctx, runLockKey, r.cfg.LockTTL)
		switch {
		case err != nil:
			log.Warn("run lock unavailable, continuing unlocked", applogger.Error(err))
		case !ok:
			log.Warn("another run holds the lock, skipping")
			rep.Abort("another run in progress")
			rep.SkipMissing(r.catalog.Keys(), "another run in progress")
			r.prune(ctx, rep, started)
			rep.Finish(r.now())
			return rep
		default:
			defer func() {
				if err := r.lock.Unlock(context.WithoutCancel(ctx), runLockKey); err != nil {
					log.Warn("run lock release failed", applogger.Error(err))
				}
			}()
		}
	}

	log.Info("ingest run started", applogger.Int("instruments", len(r.catalog.Keys())))

	stages := []stage{
		{name: "spot", fn: r.spotStage},
		{name: "rates", fn: r.rateStage},
	}
	var aborted []string
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			rep.Abort("cancelled: " + err.Error())
			log.Warn("run cancelled", applogger.String("stage", st.name), applogger.Error(err))
			break
		}
		if err := r.guard(st.name, func() error { return st.fn(ctx, rep, log) }); err != nil {
			r.metrics.RecordError(models.ErrorKind(err))
			log.Error("stage aborted", applogger.String("stage", st.name), applogger.Error(err))
			aborted = append(aborted, st.name)
			if r.cfg.AbortScope != AbortStage {
				rep.Abort(err.Error())
				break
			}
		}
	}
	if len(aborted) > 0 {
		rep.SkipMissing(r.catalog.Keys(), "not attempted: stage "+strings.Join(aborted, ", ")+" aborted")
	}
	rep.SkipMissing(r.catalog.Keys(), "not attempted")

	r.prune(ctx, rep, started)
	rep.Finish(r.now())
	r.finish(ctx, rep, log)
	return rep
}

// prune applies retention relative to started. It outlives cancellation of
// the run.
func (r *IngestRun) prune(ctx context.Context, rep *models.RunReport, started time.Time) {
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.cfg.PruneTimeout)
	defer cancel()
	for key, n := range r.pruner.Prune(pctx, started) {
		rep.SetPruned(key, n)
	}
}

func (r *IngestRun) finish(ctx context.Context, rep *models.RunReport, log *applogger.Logger) {
	sum := rep.Summary()
	for key, o := range sum.Outcomes {
		r.metrics.RecordOutcome(key, o.Status)
	}
	r.metrics.RecordRun(rep.TargetDate, sum.FinishedAt.Sub(sum.StartedAt).Seconds())

	if r.events != nil {
		ectx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		if err := r.events.PublishRunReport(ectx, rep); err != nil {
			log.Warn("run report publish failed", applogger.Error(err))
		}
		cancel()
	}

	log.Info("ingest run finished",
		applogger.Int("stored", sum.Stored),
		applogger.Int("skipped", sum.Skipped),
		applogger.Int("failed", sum.Failed),
		applogger.String("aborted", sum.Aborted),
		applogger.Duration("duration_ms", sum.FinishedAt.Sub(sum.StartedAt)),
	)
}

// guard converts a panic in fn into an ErrUnexpected error.
func (r *IngestRun) guard(name string, fn func() error) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%w: stage %s: panic: %v", models.ErrUnexpected, name, v)
			r.l.Debug("recovered panic", applogger.String("stage", name), applogger.String("stack", string(debug.Stack())))
		}
	}()
	return fn()
}

// spotStage fetches every spot instrument in parallel.
func (r *IngestRun) spotStage(ctx context.Context, rep *models.RunReport, log *applogger.Logger) error {
	return r.parallel(ctx, rep, log, r.catalog.ByKind(models.SourceSpot), func(ctx context.Context, inst models.Instrument) {
		fctx, cancel := context.WithTimeout(ctx, r.cfg.FetchTimeout)
		defer cancel()

		price, err := r.spot.FetchSpotPrice(fctx, inst.Source.Symbol)
		if err != nil {
			r.fail(ctx, rep, log, inst.Key, err)
			return
		}
		r.validateAndStore(ctx, rep, log, SpotRecord(inst.Key, rep.TargetDate, price))
	})
}

// rateStage fetches the rate table once, stores the currency pairs, derives
// the cross rate and then fetches the index proxies.
func (r *IngestRun) rateStage(ctx context.Context, rep *models.RunReport, log *applogger.Logger) error {
	dependents := append(append(r.catalog.ByKind(models.SourceExchangeRate), r.catalog.ByKind(models.SourceCrossRate)...),
		r.catalog.ByKind(models.SourceDailyClose)...)

	fctx, cancel := context.WithTimeout(ctx, r.cfg.FetchTimeout)
	raw, err := r.rates.FetchExchangeRates(fctx, r.cfg.QuoteBase)
	cancel()
	if err == nil {
		var set models.ExchangeRateSet
		if set, err = NormalizeRates(r.cfg.QuoteBase, raw, r.cfg.Base, r.catalog.Currencies()); err == nil {
			return r.storeRatesAndProxies(ctx, rep, log, set)
		}
	}

	r.metrics.RecordError(models.ErrorKind(err))
	log.Error("exchange rates unavailable, skipping dependent instruments",
		applogger.Int("skipped", len(dependents)),
		applogger.Error(err),
	)
	for _, inst := range dependents {
		rep.Skipped(inst.Key, "exchange rates unavailable: "+err.Error())
	}
	return nil
}

func (r *IngestRun) storeRatesAndProxies(ctx context.Context, rep *models.RunReport, log *applogger.Logger, set models.ExchangeRateSet) error {
	for _, inst := range r.catalog.ByKind(models.SourceExchangeRate) {
		rate, ok := set.Rate(strings.ToUpper(inst.Source.Currency))
		if !ok {
			r.fail(ctx, rep, log, inst.Key, models.SchemaError("exchangerate", "rate "+inst.Source.Currency, "currency missing after normalization"))
			continue
		}
		r.validateAndStore(ctx, rep, log, RateRecord(inst.Key, rep.TargetDate, rate))
	}

	var (
		cross    CrossRate
		hasCross bool
	)
	for _, inst := range r.catalog.ByKind(models.SourceCrossRate) {
		cr, err := DeriveCrossRate(set, strings.ToUpper(inst.Source.Numerator), strings.ToUpper(inst.Source.Denominator))
		if err != nil {
			r.fail(ctx, rep, log, inst.Key, err)
			continue
		}
		cross, hasCross = cr, true
		r.validateAndStore(ctx, rep, log, RateRecord(inst.Key, rep.TargetDate, cr.Value()))
	}

	var proxies []models.Instrument
	for _, inst := range r.catalog.ByKind(models.SourceDailyClose) {
		if inst.Source.ScaleByCrossRate && !hasCross {
			rep.Skipped(inst.Key, "cross rate unavailable")
			log.Warn("proxy skipped", applogger.String("instrument", inst.Key), applogger.String("reason", "cross rate unavailable"))
			continue
		}
		proxies = append(proxies, inst)
	}

	return r.parallel(ctx, rep, log, proxies, func(ctx context.Context, inst models.Instrument) {
		var (
			rec models.PriceRecord
			err error
		)
		if inst.Source.ScaleByCrossRate {
			rec, err = r.fetchScaledProxy(ctx, inst, cross)
		} else {
			rec, err = r.fetchProxy(ctx, inst, inst.Source.Multiplier)
		}
		if err != nil {
			r.fail(ctx, rep, log, inst.Key, err)
			return
		}
		r.validateAndStore(ctx, rep, log, rec)
	})
}

// fetchScaledProxy needs the run's CrossRate, so it cannot run before the
// derivation succeeded.
func (r *IngestRun) fetchScaledProxy(ctx context.Context, inst models.Instrument, cr CrossRate) (models.PriceRecord, error) {
	return r.fetchProxy(ctx, inst, ScaledMultiplier(inst, cr))
}

func (r *IngestRun) fetchProxy(ctx context.Context, inst models.Instrument, multiplier float64) (models.PriceRecord, error) {
	fctx, cancel := context.WithTimeout(ctx, r.cfg.FetchTimeout)
	defer cancel()

	day, price, err := r.daily.FetchDailyClose(fctx, inst.Source.Symbol, multiplier, inst.Source.Offset)
	if err != nil {
		return models.PriceRecord{}, err
	}
	return DailyCloseRecord(inst.Key, day, price), nil
}

// parallel runs fn for each instrument on a bounded errgroup. A panic in
// one task fails that instrument, cancels the siblings and is returned.
func (r *IngestRun) parallel(ctx context.Context, rep *models.RunReport, log *applogger.Logger, items []models.Instrument, fn func(context.Context, models.Instrument)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)

	for _, inst := range items {
		g.Go(func() (err error) {
			defer func() {
				if v := recover(); v != nil {
					err = fmt.Errorf("%w: %s: panic: %v", models.ErrUnexpected, inst.Key, v)
					rep.Failed(inst.Key, err)
					log.Error("instrument panicked", applogger.String("instrument", inst.Key), applogger.Error(err))
				}
			}()
			if gctx.Err() != nil {
				return nil
			}
			fn(gctx, inst)
			return nil
		})
	}
	return g.Wait()
}

func (r *IngestRun) validateAndStore(ctx context.Context, rep *models.RunReport, log *applogger.Logger, rec models.PriceRecord) {
	if err := r.validator.Validate(rec, rep.TargetDate); err != nil {
		r.fail(ctx, rep, log, rec.InstrumentKey, err)
		return
	}

	start := time.Now()
	res, err := r.store.Upsert(ctx, rec)
	r.metrics.RecordLatency("store_upsert", time.Since(start).Seconds())
	if err != nil {
		r.fail(ctx, rep, log, rec.InstrumentKey, err)
		return
	}

	rep.Stored(rec.InstrumentKey, rec.Price, res)
	r.metrics.RecordLastPrice(rec.InstrumentKey, rec.Price)

	msg := "price stored"
	if res == models.UpsertAlreadyPresent {
		msg = "price already present"
	}
	log.Info(msg,
		applogger.String("instrument", rec.InstrumentKey),
		applogger.Date("date", rec.Date),
		applogger.Float64("price", rec.Price),
	)
}

func (r *IngestRun) fail(ctx context.Context, rep *models.RunReport, log *applogger.Logger, key string, err error) {
	// siblings cancelled by a failing task stay unrecorded and are
	// reported as not attempted
	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		log.Debug("instrument cancelled", applogger.String("instrument", key))
		return
	}
	rep.Failed(key, err)
	r.metrics.RecordError(models.ErrorKind(err))

	var stale *models.StalenessError
	if errors.As(err, &stale) {
		log.Warn("stale data rejected",
			applogger.String("instrument", key),
			applogger.Date("expected", stale.Expected),
			applogger.Date("actual", stale.Actual),
		)
		return
	}
	log.Error("instrument failed",
		applogger.String("instrument", key),
		applogger.String("kind", models.ErrorKind(err)),
		applogger.Error(err),
	)
}
