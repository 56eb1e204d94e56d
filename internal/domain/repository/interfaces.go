package repository

import (
	"context"
	"time"

	"FinVault/internal/domain/models"
)

//go:generate mockgen -package=usecase -destination=../../usecase/mock_repository_test.go -source=interfaces.go

// PriceStore persists canonical price records keyed by (instrument, date).
type PriceStore interface {
	// Upsert inserts rec, or reports UpsertAlreadyPresent without writing.
	Upsert(ctx context.Context, rec models.PriceRecord) (models.UpsertResult, error)
	// ReadRange returns the records of key dated on or after from, ascending.
	ReadRange(ctx context.Context, key string, from time.Time) ([]models.PriceRecord, error)
	// DeleteOlderThan removes records of key dated strictly before cutoff.
	DeleteOlderThan(ctx context.Context, key string, cutoff time.Time) (int64, error)
	Health(ctx context.Context) error
	Close() error
}

// SpotSource looks up undated spot prices.
type SpotSource interface {
	FetchSpotPrice(ctx context.Context, symbol string) (float64, error)
}

// DailyCloseSource returns the most recent dated close of a daily series,
// transformed as round(close*multiplier + offset, 2).
type DailyCloseSource interface {
	FetchDailyClose(ctx context.Context, symbol string, multiplier, offset float64) (time.Time, float64, error)
}

// RateSource returns the latest exchange rate table quoted against base.
type RateSource interface {
	FetchExchangeRates(ctx context.Context, base string) (map[string]float64, error)
}

// EventPublisher ships run reports to the external log processor.
type EventPublisher interface {
	PublishRunReport(ctx context.Context, report *models.RunReport) error
	Close() error
}

// RunLock keeps two runs from overlapping.
type RunLock interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

// Metrics records pipeline observations.
type Metrics interface {
	RecordOutcome(instrument string, status models.OutcomeStatus)
	RecordError(kind string)
	RecordLastPrice(instrument string, price float64)
	RecordPruned(instrument string, rows int64)
	RecordLatency(op string, seconds float64)
	RecordRun(target time.Time, seconds float64)
}
