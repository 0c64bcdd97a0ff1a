package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter allows or rejects keyed events. Redis is used when configured and
// the in-process token buckets serve as fallback when it is absent or failing.
type Limiter struct {
	redis *redis_rate.Limiter
	local *localLimiter
	limit redis_rate.Limit
}

// New builds a limiter; rdb may be nil.
func New(rdb *redis.Client, limit redis_rate.Limit) *Limiter {
	l := &Limiter{
		local: newLocalLimiter(time.Now),
		limit: limit,
	}
	if rdb != nil {
		l.redis = redis_rate.NewLimiter(rdb)
	}
	return l
}

func PerMinute(rate, burst int) redis_rate.Limit {
	return redis_rate.Limit{
		Rate:   rate,
		Burst:  burst,
		Period: time.Minute,
	}
}

func (l *Limiter) Limit() redis_rate.Limit {
	return l.limit
}

func (l *Limiter) Allow(ctx context.Context, key string) *redis_rate.Result {
	if l.redis != nil {
		res, err := l.redis.Allow(ctx, key, l.limit)
		if err == nil {
			return res
		}
		slog.Warn("redis rate limiter failed, using local limiter", "error", err, "key", key)
	}
	return l.local.allow(key, l.limit)
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

type localLimiter struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	lastSweep time.Time
	now       func() time.Time
}

const (
	sweepInterval = 5 * time.Minute
	entryTTL      = 10 * time.Minute
)

func newLocalLimiter(now func() time.Time) *localLimiter {
	return &localLimiter{
		entries:   make(map[string]*limiterEntry),
		lastSweep: now(),
		now:       now,
	}
}

func (l *localLimiter) allow(key string, limit redis_rate.Limit) *redis_rate.Result {
	ratePerSec := float64(limit.Rate) / limit.Period.Seconds()
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	entry, ok := l.entries[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(ratePerSec), limit.Burst)}
		l.entries[key] = entry
	}
	entry.lastAccess = now

	allowed := entry.limiter.AllowN(now, 1)

	remaining := int(entry.limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}

	interval := time.Duration(float64(time.Second) / ratePerSec)
	retryAfter := time.Duration(-1)
	allowedN := 1
	if !allowed {
		retryAfter = interval
		allowedN = 0
	}

	return &redis_rate.Result{
		Limit:      limit,
		Allowed:    allowedN,
		Remaining:  remaining,
		RetryAfter: retryAfter,
		ResetAfter: interval,
	}
}

// sweep drops idle buckets; caller holds mu
func (l *localLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < sweepInterval {
		return
	}
	cutoff := now.Add(-entryTTL)
	for key, entry := range l.entries {
		if entry.lastAccess.Before(cutoff) {
			delete(l.entries, key)
		}
	}
	l.lastSweep = now
}
