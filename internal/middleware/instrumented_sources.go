package middleware

import (
	"context"
	"time"

	"FinVault/internal/domain/models"
	domrepo "FinVault/internal/domain/repository"
)

// InstrumentedSources records latency and error kinds for every upstream call.
type InstrumentedSources struct {
	Spot       domrepo.SpotSource
	DailyClose domrepo.DailyCloseSource
	Rates      domrepo.RateSource
	Metrics    domrepo.Metrics
}

func (s *InstrumentedSources) observe(op string, start time.Time, err error) {
	if s.Metrics == nil {
		return
	}
	s.Metrics.RecordLatency(op, time.Since(start).Seconds())
	if err != nil {
		s.Metrics.RecordError(models.ErrorKind(err))
	}
}

func (s *InstrumentedSources) FetchSpotPrice(ctx context.Context, symbol string) (float64, error) {
	start := time.Now()
	p, err := s.Spot.FetchSpotPrice(ctx, symbol)
	s.observe("fetch_spot", start, err)
	return p, err
}

func (s *InstrumentedSources) FetchDailyClose(ctx context.Context, symbol string, multiplier, offset float64) (time.Time, float64, error) {
	start := time.Now()
	d, p, err := s.DailyClose.FetchDailyClose(ctx, symbol, multiplier, offset)
	s.observe("fetch_daily_close", start, err)
	return d, p, err
}

func (s *InstrumentedSources) FetchExchangeRates(ctx context.Context, base string) (map[string]float64, error) {
	start := time.Now()
	r, err := s.Rates.FetchExchangeRates(ctx, base)
	s.observe("fetch_exchange_rates", start, err)
	return r, err
}
