package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"FinVault/internal/domain/models"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	outcomes    *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	lastPrice   *prometheus.GaugeVec
	pruned      *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	lastRun     prometheus.Gauge
	lastTarget  prometheus.Gauge
	runDuration prometheus.Histogram
}

// New registers the pipeline collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		outcomes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finvault_instrument_outcomes_total",
				Help: "Per-instrument run outcomes",
			},
			[]string{"instrument", "status"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finvault_errors_total",
				Help: "Errors by kind (network, schema, stale, derivation, storage, unexpected)",
			},
			[]string{"kind"},
		),
		lastPrice: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "finvault_last_price",
				Help: "Last stored price per instrument",
			},
			[]string{"instrument"},
		),
		pruned: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finvault_pruned_rows_total",
				Help: "Rows removed by retention",
			},
			[]string{"instrument"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finvault_operation_duration_seconds",
				Help:    "Duration of upstream fetches and store operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		lastRun: f.NewGauge(prometheus.GaugeOpts{
			Name: "finvault_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		}),
		lastTarget: f.NewGauge(prometheus.GaugeOpts{
			Name: "finvault_last_run_target_date_seconds",
			Help: "Unix time of the last run's target date",
		}),
		runDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "finvault_run_duration_seconds",
			Help:    "Wall time of a whole run",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
		}),
	}
}

// RecordOutcome counts an instrument's terminal status.
func (r *Recorder) RecordOutcome(instrument string, status models.OutcomeStatus) {
	r.outcomes.WithLabelValues(instrument, string(status)).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for an instrument.
func (r *Recorder) RecordLastPrice(instrument string, price float64) {
	r.lastPrice.WithLabelValues(instrument).Set(price)
}

// RecordPruned adds rows deleted by retention.
func (r *Recorder) RecordPruned(instrument string, rows int64) {
	r.pruned.WithLabelValues(instrument).Add(float64(rows))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordRun stamps a finished run.
func (r *Recorder) RecordRun(target time.Time, seconds float64) {
	r.lastRun.SetToCurrentTime()
	r.lastTarget.Set(float64(target.Unix()))
	r.runDuration.Observe(seconds)
}

// Push sends everything in g to a Prometheus push gateway under job.
// One-shot runs exit before any scrape could happen.
func Push(ctx context.Context, url, job string, g prometheus.Gatherer) error {
	if url == "" {
		return nil
	}
	if err := push.New(url, job).Gatherer(g).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
