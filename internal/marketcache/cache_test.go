package marketcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/stockscreen/internal/contracts"
	"github.com/wonny/stockscreen/pkg/logger"
)

type countingUpstream struct {
	calls map[string]int
}

func newCountingUpstream() *countingUpstream {
	return &countingUpstream{calls: make(map[string]int)}
}

func (u *countingUpstream) ActiveStocks(ctx context.Context) []contracts.Listing {
	u.calls["stocks"]++
	return []contracts.Listing{{Symbol: "AAPL"}, {Symbol: "MSFT"}}
}

func (u *countingUpstream) Quote(ctx context.Context, symbol string) (*contracts.Quote, bool) {
	u.calls["quote:"+symbol]++
	if symbol == "GONE" {
		return nil, false
	}
	return &contracts.Quote{Symbol: symbol, Close: 100}, true
}

func (u *countingUpstream) Fundamentals(ctx context.Context, symbol string) (*contracts.Fundamentals, bool) {
	u.calls["fundamentals:"+symbol]++
	return &contracts.Fundamentals{Symbol: symbol, ReturnOnEquity: 20}, true
}

func (u *countingUpstream) TimeSeries(ctx context.Context, symbol string, days int) ([]contracts.Bar, bool) {
	u.calls["series:"+symbol]++
	return []contracts.Bar{{Date: "2026-01-02"}}, true
}

func TestQuoteIsCached(t *testing.T) {
	upstream := newCountingUpstream()
	cache := New(upstream, time.Minute, logger.Nop())
	ctx := context.Background()

	q1, ok := cache.Quote(ctx, "AAPL")
	require.True(t, ok)
	q2, ok := cache.Quote(ctx, "AAPL")
	require.True(t, ok)

	assert.Same(t, q1, q2)
	assert.Equal(t, 1, upstream.calls["quote:AAPL"])

	hits, misses := cache.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}

func TestFailuresAreNotCached(t *testing.T) {
	upstream := newCountingUpstream()
	cache := New(upstream, time.Minute, logger.Nop())

	_, ok := cache.Quote(context.Background(), "GONE")
	assert.False(t, ok)
	_, ok = cache.Quote(context.Background(), "GONE")
	assert.False(t, ok)

	assert.Equal(t, 2, upstream.calls["quote:GONE"])
}

func TestEntriesExpire(t *testing.T) {
	upstream := newCountingUpstream()
	cache := New(upstream, time.Minute, logger.Nop())
	now := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Fundamentals(context.Background(), "AAPL")
	now = now.Add(59 * time.Second)
	cache.Fundamentals(context.Background(), "AAPL")
	assert.Equal(t, 1, upstream.calls["fundamentals:AAPL"])

	now = now.Add(time.Second)
	cache.Fundamentals(context.Background(), "AAPL")
	assert.Equal(t, 2, upstream.calls["fundamentals:AAPL"])
}

func TestActiveStocksCached(t *testing.T) {
	upstream := newCountingUpstream()
	cache := New(upstream, time.Minute, logger.Nop())

	assert.Len(t, cache.ActiveStocks(context.Background()), 2)
	assert.Len(t, cache.ActiveStocks(context.Background()), 2)
	assert.Equal(t, 1, upstream.calls["stocks"])
}

func TestZeroTTLDisablesCaching(t *testing.T) {
	upstream := newCountingUpstream()
	cache := New(upstream, 0, logger.Nop())

	cache.Quote(context.Background(), "AAPL")
	cache.Quote(context.Background(), "AAPL")

	assert.Equal(t, 2, upstream.calls["quote:AAPL"])
}

func TestTimeSeriesPassesThrough(t *testing.T) {
	upstream := newCountingUpstream()
	cache := New(upstream, time.Minute, logger.Nop())

	cache.TimeSeries(context.Background(), "AAPL", 30)
	cache.TimeSeries(context.Background(), "AAPL", 30)

	assert.Equal(t, 2, upstream.calls["series:AAPL"])
}
