package marketcache

import (
	"context"
	"sync"
	"time"

	"github.com/wonny/stockscreen/internal/contracts"
	"github.com/wonny/stockscreen/pkg/logger"
)

// Upstream is the data source being cached
type Upstream interface {
	contracts.MarketDataSource
	contracts.HistorySource
}

type entry[T any] struct {
	value     T
	fetchedAt time.Time
}

// Source is an in-memory TTL cache in front of the market data API.
// The gainers and ROE screens look up the same symbols, so caching saves
// rate-limited calls within one run. Only successful lookups are stored;
// a miss is retried on the next call. Time series are never cached.
// ⭐ SSOT: 시세/재무 캐싱은 이 구조체에서만
type Source struct {
	upstream Upstream
	ttl      time.Duration
	now      func() time.Time
	logger   *logger.Logger

	mu           sync.RWMutex
	listings     *entry[[]contracts.Listing]
	quotes       map[string]entry[*contracts.Quote]
	fundamentals map[string]entry[*contracts.Fundamentals]
	hits         int
	misses       int
}

// New creates a cache. A ttl of zero or less disables caching.
func New(upstream Upstream, ttl time.Duration, log *logger.Logger) *Source {
	return &Source{
		upstream:     upstream,
		ttl:          ttl,
		now:          time.Now,
		logger:       log,
		quotes:       make(map[string]entry[*contracts.Quote]),
		fundamentals: make(map[string]entry[*contracts.Fundamentals]),
	}
}

// ActiveStocks returns the cached listing, refetching when stale
func (s *Source) ActiveStocks(ctx context.Context) []contracts.Listing {
	s.mu.RLock()
	cached := s.listings
	s.mu.RUnlock()

	if cached != nil && s.fresh(cached.fetchedAt) {
		s.hit("stocks", "")
		return cached.value
	}

	listings := s.upstream.ActiveStocks(ctx)
	s.miss()
	if len(listings) > 0 && s.ttl > 0 {
		s.mu.Lock()
		s.listings = &entry[[]contracts.Listing]{value: listings, fetchedAt: s.now()}
		s.mu.Unlock()
	}
	return listings
}

// Quote returns the cached quote, refetching when stale
func (s *Source) Quote(ctx context.Context, symbol string) (*contracts.Quote, bool) {
	s.mu.RLock()
	cached, exists := s.quotes[symbol]
	s.mu.RUnlock()

	if exists && s.fresh(cached.fetchedAt) {
		s.hit("quote", symbol)
		return cached.value, true
	}

	quote, ok := s.upstream.Quote(ctx, symbol)
	s.miss()
	if ok && s.ttl > 0 {
		s.mu.Lock()
		s.quotes[symbol] = entry[*contracts.Quote]{value: quote, fetchedAt: s.now()}
		s.mu.Unlock()
	}
	return quote, ok
}

// Fundamentals returns cached fundamentals, refetching when stale
func (s *Source) Fundamentals(ctx context.Context, symbol string) (*contracts.Fundamentals, bool) {
	s.mu.RLock()
	cached, exists := s.fundamentals[symbol]
	s.mu.RUnlock()

	if exists && s.fresh(cached.fetchedAt) {
		s.hit("fundamentals", symbol)
		return cached.value, true
	}

	f, ok := s.upstream.Fundamentals(ctx, symbol)
	s.miss()
	if ok && s.ttl > 0 {
		s.mu.Lock()
		s.fundamentals[symbol] = entry[*contracts.Fundamentals]{value: f, fetchedAt: s.now()}
		s.mu.Unlock()
	}
	return f, ok
}

// TimeSeries is passed straight through
func (s *Source) TimeSeries(ctx context.Context, symbol string, days int) ([]contracts.Bar, bool) {
	return s.upstream.TimeSeries(ctx, symbol, days)
}

// Stats returns cache hits and upstream calls so far
func (s *Source) Stats() (hits, misses int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hits, s.misses
}

func (s *Source) fresh(fetchedAt time.Time) bool {
	return s.ttl > 0 && s.now().Sub(fetchedAt) < s.ttl
}

func (s *Source) hit(kind, symbol string) {
	s.mu.Lock()
	s.hits++
	s.mu.Unlock()

	s.logger.WithFields(map[string]interface{}{
		"kind":   kind,
		"symbol": symbol,
	}).Debug("Cache hit")
}

func (s *Source) miss() {
	s.mu.Lock()
	s.misses++
	s.mu.Unlock()
}
