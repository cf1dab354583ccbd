package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances instantly when asked to sleep
type fakeClock struct {
	now   time.Time
	slept []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
	return nil
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)}
}

func TestLimiter_NinthCallWaitsForWindow(t *testing.T) {
	clock := newFakeClock()
	limiter := NewWithClock(TwelveDataRateLimit, clock)
	ctx := context.Background()

	admitted := make([]time.Time, 0, 9)
	for i := 0; i < 9; i++ {
		require.NoError(t, limiter.Wait(ctx))
		admitted = append(admitted, clock.Now())
	}

	// First 8 pass without sleeping
	for i := 1; i < 8; i++ {
		assert.Equal(t, admitted[0], admitted[i], "call %d should not wait", i+1)
	}

	assert.GreaterOrEqual(t, admitted[8].Sub(admitted[0]), 60*time.Second)
	assert.Equal(t, []time.Duration{60 * time.Second}, clock.slept)
}

func TestLimiter_RollingWindow(t *testing.T) {
	clock := newFakeClock()
	limiter := NewWithClock(Config{Key: "test", Limit: 2, Window: 10 * time.Second}, clock)

	allowed, remaining := limiter.Allow()
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)

	clock.now = clock.now.Add(4 * time.Second)
	allowed, remaining = limiter.Allow()
	assert.True(t, allowed)
	assert.Equal(t, 0, remaining)

	allowed, _ = limiter.Allow()
	assert.False(t, allowed, "window is full")

	// First admission leaves the window at t=10s, second at t=14s
	clock.now = clock.now.Add(6 * time.Second)
	allowed, remaining = limiter.Allow()
	assert.True(t, allowed)
	assert.Equal(t, 0, remaining)

	allowed, _ = limiter.Allow()
	assert.False(t, allowed)
}

func TestLimiter_WaitHonoursContext(t *testing.T) {
	clock := newFakeClock()
	limiter := NewWithClock(Config{Key: "test", Limit: 1, Window: time.Minute}, clock)

	require.NoError(t, limiter.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := limiter.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLimiter_Unlimited(t *testing.T) {
	limiter := NewWithClock(Config{Key: "test"}, newFakeClock())

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow()
		require.True(t, allowed)
	}
}

func TestLimiter_SeparateInstancesDoNotShareState(t *testing.T) {
	clock := newFakeClock()
	cfg := Config{Key: "test", Limit: 1, Window: time.Minute}
	a := NewWithClock(cfg, clock)
	b := NewWithClock(cfg, clock)

	allowed, _ := a.Allow()
	assert.True(t, allowed)

	allowed, _ = b.Allow()
	assert.True(t, allowed, "b has its own window")
}

func TestLimiter_SystemClock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timing test")
	}

	limiter := New(Config{Key: "test", Limit: 2, Window: 50 * time.Millisecond})
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Wait(ctx))
	}

	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}
