package contracts

import (
	"context"
)

// MarketDataSource supplies the live screens.
// A false second return means "no data": the caller skips the symbol.
// ⭐ SSOT: 시세/재무 조회 인터페이스
type MarketDataSource interface {
	ActiveStocks(ctx context.Context) []Listing
	Quote(ctx context.Context, symbol string) (*Quote, bool)
	Fundamentals(ctx context.Context, symbol string) (*Fundamentals, bool)
}

// HistorySource supplies daily candles
type HistorySource interface {
	TimeSeries(ctx context.Context, symbol string, days int) ([]Bar, bool)
}
