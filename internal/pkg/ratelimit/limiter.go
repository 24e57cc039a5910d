// Package ratelimit keeps one token bucket per key, e.g. per client IP.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type KeyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*entry
	rate     rate.Limit
	burst    int
	entryTTL time.Duration
	now      func() time.Time
}

// NewPerMinute allows perMinute events per key, with bursts up to perMinute.
func NewPerMinute(perMinute int) *KeyedLimiter {
	return New(rate.Limit(float64(perMinute)/60), perMinute, 10*time.Minute)
}

func New(r rate.Limit, burst int, entryTTL time.Duration) *KeyedLimiter {
	return &KeyedLimiter{
		limiters: make(map[string]*entry),
		rate:     r,
		burst:    burst,
		entryTTL: entryTTL,
		now:      time.Now,
	}
}

func (l *KeyedLimiter) Burst() int {
	return l.burst
}

// Allow consumes one token for key and reports whether it was available.
func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.limiters[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// Cleanup drops keys unused for longer than the entry TTL.
func (l *KeyedLimiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.entryTTL)
	for key, e := range l.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(l.limiters, key)
		}
	}
}

func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// Run calls Cleanup every interval until ctx is done.
func (l *KeyedLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Cleanup()
		}
	}
}
