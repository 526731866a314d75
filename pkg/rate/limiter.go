package rate

import (
	"sync"

	"golang.org/x/time/rate"
)

// Limiter limits operations based on a provided key.
type Limiter interface {
	Allow(key string) bool
}

type localRateLimiter struct {
	limit rate.Limit
	burst int

	sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewLocalRateLimiter returns an in memory limiter allowing perSecond
// operations per key, with bursts of up to burst. A burst below one is
// raised to one.
func NewLocalRateLimiter(perSecond float64, burst int) Limiter {
	if burst < 1 {
		burst = 1
	}
	return &localRateLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *localRateLimiter) Allow(key string) bool {
	l.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = limiter
	}
	l.Unlock()

	return limiter.Allow()
}

// NoLimiter never limits operations
type NoLimiter struct {
}

func (n *NoLimiter) Allow(string) bool {
	return true
}
