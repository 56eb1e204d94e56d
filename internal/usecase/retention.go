package usecase

import (
	"context"
	"time"

	"FinVault/internal/domain/models"
	domrepo "FinVault/internal/domain/repository"
	applogger "FinVault/pkg/logger"
	"FinVault/pkg/util"
)

// RetentionPruner deletes rows older than the retention horizon for every
// catalog instrument.
type RetentionPruner struct {
	store   domrepo.PriceStore
	keys    []string
	years   int
	metrics domrepo.Metrics
	l       *applogger.Logger
}

func NewRetentionPruner(store domrepo.PriceStore, catalog *models.Catalog, years int, metrics domrepo.Metrics, l *applogger.Logger) *RetentionPruner {
	return &RetentionPruner{store: store, keys: catalog.Keys(), years: years, metrics: metrics, l: l}
}

// Cutoff is the first day kept: now minus the horizon in calendar years.
func (p *RetentionPruner) Cutoff(now time.Time) time.Time {
	return util.YearsBefore(now, p.years)
}

// Prune runs DeleteOlderThan for each instrument. A failing instrument is
// logged and left out of the result; the others are still pruned.
func (p *RetentionPruner) Prune(ctx context.Context, now time.Time) map[string]int64 {
	cutoff := p.Cutoff(now)
	out := make(map[string]int64, len(p.keys))

	for _, key := range p.keys {
		n, err := p.store.DeleteOlderThan(ctx, key, cutoff)
		if err != nil {
			p.metrics.RecordError(models.ErrorKind(err))
			p.l.Error("retention prune failed",
				applogger.String("instrument", key),
				applogger.Date("cutoff", cutoff),
				applogger.Error(err),
			)
			continue
		}
		out[key] = n
		if n > 0 {
			p.metrics.RecordPruned(key, n)
			p.l.Info("retention pruned",
				applogger.String("instrument", key),
				applogger.Date("cutoff", cutoff),
				applogger.Int64("rows", n),
			)
		}
	}
	return out
}
