package middleware

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"FinVault/internal/domain/models"
	"FinVault/pkg/cache"
)

type countingSource struct {
	calls int
	day   time.Time
	price float64
	err   error
}

func (s *countingSource) FetchDailyClose(context.Context, string, float64, float64) (time.Time, float64, error) {
	s.calls++
	return s.day, s.price, s.err
}

func TestCachedDailyCloseServesSecondCallFromCache(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()

	day := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	src := &countingSource{day: day, price: 4010}
	clock := func() time.Time { return time.Date(2024, 1, 4, 8, 0, 0, 0, time.UTC) }
	c := NewCachedDailyClose(src, mc, WithClock(clock))

	for i := 0; i < 2; i++ {
		d, p, err := c.FetchDailyClose(context.Background(), "SPY", 10, 10)
		require.NoError(t, err)
		require.Equal(t, day, d)
		require.Equal(t, 4010.0, p)
	}
	require.Equal(t, 1, src.calls)

	// different transform parameters are a different entry
	_, _, err := c.FetchDailyClose(context.Background(), "SPY", 10, 5)
	require.NoError(t, err)
	require.Equal(t, 2, src.calls)
}

func TestCachedDailyCloseDoesNotCacheErrors(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()

	src := &countingSource{err: models.NetworkError("alphavantage", "daily_close SPY", errors.New("timeout"))}
	c := NewCachedDailyClose(src, mc)

	for i := 0; i < 2; i++ {
		_, _, err := c.FetchDailyClose(context.Background(), "SPY", 10, 10)
		require.ErrorIs(t, err, models.ErrNetwork)
	}
	require.Equal(t, 2, src.calls)
}

func TestCachedDailyCloseKeyRollsOverAtMidnight(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()

	src := &countingSource{day: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), price: 1}
	now := time.Date(2024, 1, 4, 23, 0, 0, 0, time.UTC)
	c := NewCachedDailyClose(src, mc, WithClock(func() time.Time { return now }))

	_, _, _ = c.FetchDailyClose(context.Background(), "SPY", 10, 10)
	now = now.Add(2 * time.Hour)
	_, _, _ = c.FetchDailyClose(context.Background(), "SPY", 10, 10)

	require.Equal(t, 2, src.calls)
}

func TestCachedDailyCloseRetriesCloseDatedBeforeTarget(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()

	target := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	src := &countingSource{day: target.AddDate(0, 0, -1), price: 3990}
	clock := func() time.Time { return time.Date(2024, 1, 4, 0, 30, 0, 0, time.UTC) }
	c := NewCachedDailyClose(src, mc, WithClock(clock))

	d, _, err := c.FetchDailyClose(context.Background(), "SPY", 10, 10)
	require.NoError(t, err)
	require.Equal(t, target.AddDate(0, 0, -1), d)

	// the provider publishes the target close later the same morning
	src.day, src.price = target, 4010
	d, p, err := c.FetchDailyClose(context.Background(), "SPY", 10, 10)
	require.NoError(t, err)
	require.Equal(t, target, d)
	require.Equal(t, 4010.0, p)
	require.Equal(t, 2, src.calls)

	_, _, err = c.FetchDailyClose(context.Background(), "SPY", 10, 10)
	require.NoError(t, err)
	require.Equal(t, 2, src.calls)
}

func TestCachedDailyCloseTargetPolicy(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()

	today := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
	src := &countingSource{day: today, price: 4010}
	c := NewCachedDailyClose(src, mc,
		WithClock(func() time.Time { return today.Add(20 * time.Hour) }),
		WithTargetDate(func(now time.Time) time.Time { return now }),
	)

	for i := 0; i < 2; i++ {
		_, _, err := c.FetchDailyClose(context.Background(), "SPY", 10, 10)
		require.NoError(t, err)
	}
	require.Equal(t, 1, src.calls)
}

type blockingSource struct {
	entered chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (s *blockingSource) FetchDailyClose(ctx context.Context, _ string, _, _ float64) (time.Time, float64, error) {
	s.calls.Add(1)
	close(s.entered)
	<-s.release
	if err := ctx.Err(); err != nil {
		return time.Time{}, 0, err
	}
	return time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), 4010, nil
}

func TestCachedDailyCloseSharedCallOutlivesCancelledCaller(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()

	src := &blockingSource{entered: make(chan struct{}), release: make(chan struct{})}
	clock := func() time.Time { return time.Date(2024, 1, 4, 8, 0, 0, 0, time.UTC) }
	c := NewCachedDailyClose(src, mc, WithClock(clock))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, _, err := c.FetchDailyClose(ctx, "SPY", 10, 10)
		errCh <- err
	}()

	<-src.entered
	cancel()
	err := <-errCh
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, err, models.ErrNetwork)

	// a later caller is served by the shared call or its cached result
	resCh := make(chan error, 1)
	go func() {
		_, _, err := c.FetchDailyClose(context.Background(), "SPY", 10, 10)
		resCh <- err
	}()
	close(src.release)
	require.NoError(t, <-resCh)

	_, p, err := c.FetchDailyClose(context.Background(), "SPY", 10, 10)
	require.NoError(t, err)
	require.Equal(t, 4010.0, p)
	require.EqualValues(t, 1, src.calls.Load())
}
