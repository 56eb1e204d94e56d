package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"FinVault/internal/domain/models"
	domrepo "FinVault/internal/domain/repository"
	"FinVault/pkg/util"
)

// ErrUnknownInstrument is returned for keys outside the catalog.
var ErrUnknownInstrument = errors.New("unknown instrument")

// HistoryUseCase serves the stored price history to the dashboard.
type HistoryUseCase struct {
	catalog *models.Catalog
	store   domrepo.PriceStore
	now     func() time.Time
}

func NewHistoryUseCase(catalog *models.Catalog, store domrepo.PriceStore) *HistoryUseCase {
	return &HistoryUseCase{catalog: catalog, store: store, now: time.Now}
}

// RangeParams selects a window either by period token or explicit start day.
type RangeParams struct {
	Period string
	From   time.Time
}

func (p RangeParams) start(now time.Time) time.Time {
	if !p.From.IsZero() {
		return util.Day(p.From)
	}
	return util.PeriodStart(now, p.Period)
}

type PricesResult struct {
	Instrument models.Instrument
	From       time.Time
	Count      int
	Prices     []models.PriceRecord
}

type SummaryResult struct {
	Instrument models.Instrument
	From       time.Time
	Latest     *models.PriceRecord
	StartPrice float64
	Change     float64
	// ChangePct is nil when the window starts at a zero price.
	ChangePct *float64
	Count     int
}

type ComparePoint struct {
	Date      time.Time
	ChangePct float64
}

type CompareSeries struct {
	Key    string
	Points []ComparePoint
}

// Instruments returns the catalog in declaration order.
func (uc *HistoryUseCase) Instruments() []models.Instrument {
	return uc.catalog.All()
}

func (uc *HistoryUseCase) Prices(ctx context.Context, key string, p RangeParams) (*PricesResult, error) {
	inst, ok := uc.catalog.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInstrument, key)
	}
	from := p.start(uc.now())

	recs, err := uc.store.ReadRange(ctx, key, from)
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", key, err)
	}
	if recs == nil {
		recs = []models.PriceRecord{}
	}
	return &PricesResult{Instrument: inst, From: from, Count: len(recs), Prices: recs}, nil
}

func (uc *HistoryUseCase) Summary(ctx context.Context, key string, p RangeParams) (*SummaryResult, error) {
	res, err := uc.Prices(ctx, key, p)
	if err != nil {
		return nil, err
	}
	out := &SummaryResult{Instrument: res.Instrument, From: res.From, Count: res.Count}
	if res.Count == 0 {
		return out, nil
	}

	first, last := res.Prices[0], res.Prices[res.Count-1]
	out.Latest = &last
	out.StartPrice = first.Price
	out.Change = util.Round(last.Price-first.Price, ratePlaces)
	if first.Price != 0 {
		pct := util.Round((last.Price-first.Price)/first.Price*100, pricePlaces)
		out.ChangePct = &pct
	}
	return out, nil
}

// Compare rescales each instrument to its percentage change from the first
// stored price in the window. Instruments starting at zero get no points.
func (uc *HistoryUseCase) Compare(ctx context.Context, keys []string, p RangeParams) ([]CompareSeries, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("at least one instrument key required")
	}
	out := make([]CompareSeries, 0, len(keys))
	for _, key := range keys {
		res, err := uc.Prices(ctx, key, p)
		if err != nil {
			return nil, err
		}
		s := CompareSeries{Key: key, Points: []ComparePoint{}}
		if res.Count > 0 && res.Prices[0].Price != 0 {
			base := res.Prices[0].Price
			for _, rec := range res.Prices {
				s.Points = append(s.Points, ComparePoint{
					Date:      rec.Date,
					ChangePct: util.Round((rec.Price-base)/base*100, pricePlaces),
				})
			}
		}
		out = append(out, s)
	}
	return out, nil
}

// Health reports whether the price store answers.
func (uc *HistoryUseCase) Health(ctx context.Context) error {
	return uc.store.Health(ctx)
}
