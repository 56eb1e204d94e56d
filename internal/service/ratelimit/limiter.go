package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter hands out one token bucket per key (provider name).
type Limiter struct {
	mu sync.Mutex
	m  map[string]*rate.Limiter
}

func New() *Limiter { return &Limiter{m: make(map[string]*rate.Limiter)} }

// Configure sets the bucket for key to perMinute requests with burst.
func (l *Limiter) Configure(key string, perMinute, burst int) {
	if burst < 1 {
		burst = 1
	}
	lim := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)

	l.mu.Lock()
	l.m[key] = lim
	l.mu.Unlock()
}

// Allow returns true if one token can be consumed for key now.
// Unconfigured keys are unlimited.
func (l *Limiter) Allow(key string) bool {
	lim := l.get(key)
	if lim == nil {
		return true
	}
	return lim.Allow()
}

// Wait blocks until key has a token or ctx is done.
func (l *Limiter) Wait(ctx context.Context, key string) error {
	lim := l.get(key)
	if lim == nil {
		return nil
	}
	return lim.Wait(ctx)
}

func (l *Limiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m[key]
}
