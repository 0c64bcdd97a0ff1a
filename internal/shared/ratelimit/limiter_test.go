package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_LocalBurstThenReject(t *testing.T) {
	limiter := New(nil, PerMinute(10, 3))

	for i := 0; i < 3; i++ {
		res := limiter.Allow(context.Background(), "login:127.0.0.1")
		assert.Equal(t, 1, res.Allowed, "attempt %d should pass", i+1)
	}

	res := limiter.Allow(context.Background(), "login:127.0.0.1")
	assert.Equal(t, 0, res.Allowed)
	assert.Greater(t, res.RetryAfter, time.Duration(0))
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	limiter := New(nil, PerMinute(1, 1))

	assert.Equal(t, 1, limiter.Allow(context.Background(), "a").Allowed)
	assert.Equal(t, 0, limiter.Allow(context.Background(), "a").Allowed)
	assert.Equal(t, 1, limiter.Allow(context.Background(), "b").Allowed)
}

func TestLocalLimiter_RefillsOverTime(t *testing.T) {
	now := time.Now()
	local := newLocalLimiter(func() time.Time { return now })
	limit := PerMinute(60, 1) // one token per second

	assert.Equal(t, 1, local.allow("k", limit).Allowed)
	assert.Equal(t, 0, local.allow("k", limit).Allowed)

	now = now.Add(1100 * time.Millisecond)
	assert.Equal(t, 1, local.allow("k", limit).Allowed)
}

func TestLocalLimiter_SweepsIdleEntries(t *testing.T) {
	now := time.Now()
	local := newLocalLimiter(func() time.Time { return now })
	limit := PerMinute(60, 1)

	local.allow("idle", limit)
	now = now.Add(entryTTL + sweepInterval)
	local.allow("fresh", limit)

	_, idleKept := local.entries["idle"]
	_, freshKept := local.entries["fresh"]
	assert.False(t, idleKept)
	assert.True(t, freshKept)
}
