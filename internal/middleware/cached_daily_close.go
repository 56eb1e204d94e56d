package middleware

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"FinVault/internal/domain/models"
	domrepo "FinVault/internal/domain/repository"
	"FinVault/pkg/cache"
	applogger "FinVault/pkg/logger"
	"FinVault/pkg/util"
)

// CachedDailyClose sits between the orchestrator and the daily-close
// provider. A close dated on the run's target date is kept per (symbol,
// multiplier, offset, target date) so a re-run does not spend provider quota.
// Errors and closes dated before the target are never cached, so a retry
// reaches the provider again.
type CachedDailyClose struct {
	next    domrepo.DailyCloseSource
	cache   cache.Service
	ttl     time.Duration
	timeout time.Duration
	now     func() time.Time
	target  func(time.Time) time.Time
	l       *applogger.Logger
	sf      singleflight.Group
}

type CachedDailyCloseOption func(*CachedDailyClose)

// WithCacheTTL sets how long a cached close is served.
func WithCacheTTL(d time.Duration) CachedDailyCloseOption {
	return func(c *CachedDailyClose) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithClock overrides the clock used to bucket cache keys by day.
func WithClock(now func() time.Time) CachedDailyCloseOption {
	return func(c *CachedDailyClose) {
		c.now = now
	}
}

// WithTargetDate sets how the expected close date is derived from the clock.
// The default is the previous calendar day.
func WithTargetDate(target func(now time.Time) time.Time) CachedDailyCloseOption {
	return func(c *CachedDailyClose) {
		if target != nil {
			c.target = target
		}
	}
}

// WithUpstreamTimeout bounds a shared upstream call. The call does not
// inherit the cancellation of the caller that started it.
func WithUpstreamTimeout(d time.Duration) CachedDailyCloseOption {
	return func(c *CachedDailyClose) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithCacheLogger injects a structured logger.
func WithCacheLogger(l *applogger.Logger) CachedDailyCloseOption {
	return func(c *CachedDailyClose) {
		if l != nil {
			c.l = l
		}
	}
}

// NewCachedDailyClose wraps next with svc.
func NewCachedDailyClose(next domrepo.DailyCloseSource, svc cache.Service, opts ...CachedDailyCloseOption) *CachedDailyClose {
	c := &CachedDailyClose{
		next:    next,
		cache:   svc,
		ttl:     6 * time.Hour,
		timeout: 30 * time.Second,
		now:     time.Now,
		target: func(now time.Time) time.Time {
			return util.Day(now).AddDate(0, 0, -1)
		},
		l: applogger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ domrepo.DailyCloseSource = (*CachedDailyClose)(nil)

type cachedClose struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

func (c *CachedDailyClose) FetchDailyClose(ctx context.Context, symbol string, multiplier, offset float64) (time.Time, float64, error) {
	target := util.Day(c.target(c.now()))
	key := cache.GenerateKeyWithParams("daily_close", symbol, multiplier, offset, util.FormatDate(target))

	var hit cachedClose
	err := c.cache.Get(ctx, key, &hit)
	switch {
	case err == nil:
		if day, perr := util.ParseDate(hit.Date); perr == nil && day.Equal(target) {
			c.l.Debug("daily close cache hit", applogger.String("symbol", symbol), applogger.String("date", hit.Date))
			return day, hit.Price, nil
		}
	case !errors.Is(err, cache.ErrCacheMiss):
		c.l.Warn("daily close cache read failed", applogger.String("symbol", symbol), applogger.Error(err))
	}

	// concurrent misses for one key share a single upstream call
	ch := c.sf.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		day, price, err := c.next.FetchDailyClose(fctx, symbol, multiplier, offset)
		if err != nil {
			return nil, err
		}
		hit := cachedClose{Date: util.FormatDate(day), Price: price}
		if !util.Day(day).Equal(target) {
			c.l.Debug("daily close not cached, not dated on target",
				applogger.String("symbol", symbol),
				applogger.String("date", hit.Date),
				applogger.Date("target_date", target))
			return hit, nil
		}
		if err := c.cache.Set(fctx, key, hit, c.ttl); err != nil {
			c.l.Warn("daily close cache write failed", applogger.String("symbol", symbol), applogger.Error(err))
		}
		return hit, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return time.Time{}, 0, models.NetworkError("cache", "daily_close "+symbol, ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return time.Time{}, 0, res.Err
	}
	hit = res.Val.(cachedClose)
	day, err := util.ParseDate(hit.Date)
	if err != nil {
		return time.Time{}, 0, err
	}
	return day, hit.Price, nil
}
