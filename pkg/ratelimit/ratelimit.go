package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter implements sliding window rate limiting in process memory.
// Each Limiter is an independent window; two fetchers never share state.
// ⭐ SSOT: 레이트 리밋은 여기서만
type Limiter struct {
	cfg   Config
	clock Clock

	mu    sync.Mutex
	calls []time.Time // admission times inside the window, oldest first
}

// Config defines rate limit parameters
type Config struct {
	Key    string        // Unique identifier (e.g., "twelve_data")
	Limit  int           // Maximum calls admitted per window
	Window time.Duration // Rolling window length
}

// Clock abstracts time so tests can drive the limiter without sleeping.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// New creates a limiter backed by the system clock
func New(cfg Config) *Limiter {
	return NewWithClock(cfg, systemClock{})
}

// NewWithClock creates a limiter backed by the given clock
func NewWithClock(cfg Config, clock Clock) *Limiter {
	return &Limiter{
		cfg:   cfg,
		clock: clock,
		calls: make([]time.Time, 0, max(cfg.Limit, 0)),
	}
}

// Config returns the limiter parameters
func (l *Limiter) Config() Config {
	return l.cfg
}

// Allow admits a call if the window has room.
// Returns (allowed, remaining).
func (l *Limiter) Allow() (bool, int) {
	wait := l.reserve()
	return wait == 0, l.Remaining()
}

// Remaining returns how many calls the current window still admits
func (l *Limiter) Remaining() int {
	if l.cfg.Limit <= 0 {
		return 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.prune(l.clock.Now())
	return l.cfg.Limit - len(l.calls)
}

// Wait blocks until a call is admitted or ctx is cancelled.
// Calls are never dropped for exceeding the limit.
func (l *Limiter) Wait(ctx context.Context) error {
	for {
		wait := l.reserve()
		if wait == 0 {
			return nil
		}

		if err := l.clock.Sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// reserve records an admission and returns 0, or returns how long until
// the oldest admission leaves the window.
func (l *Limiter) reserve() time.Duration {
	// Limit <= 0 means unlimited
	if l.cfg.Limit <= 0 {
		return 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	l.prune(now)

	if len(l.calls) < l.cfg.Limit {
		l.calls = append(l.calls, now)
		return 0
	}

	wait := l.calls[0].Add(l.cfg.Window).Sub(now)
	if wait <= 0 {
		// prune guarantees the head is still inside the window
		wait = time.Nanosecond
	}
	return wait
}

// prune drops admissions that have left the window. Caller holds mu.
func (l *Limiter) prune(now time.Time) {
	n := 0
	for n < len(l.calls) && !now.Before(l.calls[n].Add(l.cfg.Window)) {
		n++
	}
	if n > 0 {
		l.calls = append(l.calls[:0], l.calls[n:]...)
	}
}

// Predefined rate limit configs for external APIs
var (
	// Twelve Data free tier: 분당 8회 제한
	TwelveDataRateLimit = Config{
		Key:    "twelve_data",
		Limit:  8,
		Window: time.Minute,
	}
)
