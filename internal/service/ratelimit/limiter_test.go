package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAllowConsumesBurst(t *testing.T) {
	l := New()
	l.Configure("alphavantage", 5, 2)

	require.True(t, l.Allow("alphavantage"))
	require.True(t, l.Allow("alphavantage"))
	require.False(t, l.Allow("alphavantage"))

	require.True(t, l.Allow("unconfigured"))
}

func TestWaitHonoursContext(t *testing.T) {
	l := New()
	l.Configure("alphavantage", 1, 1)
	require.True(t, l.Allow("alphavantage"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	require.Error(t, l.Wait(ctx, "alphavantage"))
}
