package selection

import (
	"context"

	"github.com/wonny/stockscreen/internal/contracts"
	"github.com/wonny/stockscreen/internal/screenconfig"
	"github.com/wonny/stockscreen/pkg/logger"
)

// Screen names
const (
	ScreenGainers = "gainers"
	ScreenHighROE = "high_roe"
)

// Filter reasons recorded in ScreenResult.Filtered
const (
	FilterPrice  = "price"
	FilterVolume = "volume"
	FilterROE    = "roe"
)

// Screener runs the live screens over the configured symbol list
// ⭐ SSOT: 라이브 스크리닝 로직은 여기서만
type Screener struct {
	source contracts.MarketDataSource
	config screenconfig.Screening
	logger *logger.Logger
}

// NewScreener creates a new screener
func NewScreener(source contracts.MarketDataSource, config screenconfig.Screening, logger *logger.Logger) *Screener {
	return &Screener{
		source: source,
		config: config,
		logger: logger,
	}
}

// Gainers keeps stocks with price > min_price and volume > min_volume,
// ranked by percent change (highest first)
func (s *Screener) Gainers(ctx context.Context) *contracts.ScreenResult[contracts.GainerRow] {
	result := contracts.NewScreenResult[contracts.GainerRow](ScreenGainers)

	for _, listing := range s.source.ActiveStocks(ctx) {
		if ctx.Err() != nil {
			break
		}
		result.Scanned++

		quote, ok := s.source.Quote(ctx, listing.Symbol)
		if !ok {
			result.Skipped = append(result.Skipped, listing.Symbol)
			continue
		}

		if reason := s.checkQuote(quote); reason != "" {
			result.Filtered[reason]++
			continue
		}

		result.Rows = append(result.Rows, contracts.GainerRow{
			Symbol:        listing.Symbol,
			Name:          listing.Name,
			Price:         quote.Close,
			ChangePercent: quote.PercentChange,
			Volume:        quote.Volume,
			Exchange:      listing.Exchange,
		})
	}

	RankGainers(result.Rows)
	s.logResult(result.Name, len(result.Rows), result.Scanned, result.Skipped, result.Filtered)

	return result
}

// HighROE keeps stocks with roe >= roe_threshold that also pass the price
// and volume floors, ranked by ROE (highest first).
// Fundamentals are fetched first; a symbol missing either response is skipped.
func (s *Screener) HighROE(ctx context.Context) *contracts.ScreenResult[contracts.HighROERow] {
	result := contracts.NewScreenResult[contracts.HighROERow](ScreenHighROE)

	for _, listing := range s.source.ActiveStocks(ctx) {
		if ctx.Err() != nil {
			break
		}
		result.Scanned++

		fundamentals, ok := s.source.Fundamentals(ctx, listing.Symbol)
		if !ok {
			result.Skipped = append(result.Skipped, listing.Symbol)
			continue
		}

		quote, ok := s.source.Quote(ctx, listing.Symbol)
		if !ok {
			result.Skipped = append(result.Skipped, listing.Symbol)
			continue
		}

		if fundamentals.ReturnOnEquity < s.config.ROEThreshold {
			result.Filtered[FilterROE]++
			continue
		}
		if reason := s.checkQuote(quote); reason != "" {
			result.Filtered[reason]++
			continue
		}

		result.Rows = append(result.Rows, contracts.HighROERow{
			Symbol:       listing.Symbol,
			Name:         listing.Name,
			Price:        quote.Close,
			ROE:          fundamentals.ReturnOnEquity,
			Volume:       quote.Volume,
			Sector:       fundamentals.Sector,
			PriceToSales: fundamentals.PriceToSalesTTM,
		})
	}

	RankHighROE(result.Rows)
	s.logResult(result.Name, len(result.Rows), result.Scanned, result.Skipped, result.Filtered)

	return result
}

// checkQuote returns the first failed floor, or "" if the quote passes
func (s *Screener) checkQuote(q *contracts.Quote) string {
	if !(q.Close > s.config.MinPrice) {
		return FilterPrice
	}
	if q.Volume <= s.config.MinVolume {
		return FilterVolume
	}
	return ""
}

func (s *Screener) logResult(name string, passed, scanned int, skipped []string, filtered map[string]int) {
	log := s.logger.WithFields(map[string]interface{}{
		"screen":  name,
		"scanned": scanned,
		"passed":  passed,
		"filters": filtered,
	})

	if len(skipped) > 0 {
		log.WithField("skipped", skipped).Warn("Screening completed with missing data")
		return
	}
	log.Info("Screening completed")
}
