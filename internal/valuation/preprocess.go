package valuation

import (
	"sort"

	"github.com/wonny/stockscreen/internal/contracts"
	"github.com/wonny/stockscreen/internal/screenconfig"
	"github.com/wonny/stockscreen/pkg/logger"
)

// Filter reasons
const (
	FilterSector    = "sector"
	FilterLiquidity = "liquidity"
	FilterMarketCap = "market_cap"
)

// Preprocessor applies sector exclusion, quality minimums and P/S rating
// ⭐ SSOT: 필터/등급 로직은 여기서만
type Preprocessor struct {
	config *screenconfig.Config
	logger *logger.Logger
}

// NewPreprocessor creates a new preprocessor
func NewPreprocessor(config *screenconfig.Config, logger *logger.Logger) *Preprocessor {
	return &Preprocessor{
		config: config,
		logger: logger,
	}
}

// Preprocess drops excluded sectors and rows below the liquidity or market
// cap minimum, then rates every survivor. Input order is preserved.
func (p *Preprocessor) Preprocess(records []contracts.StockRecord) []contracts.StockRecord {
	out := make([]contracts.StockRecord, 0, len(records))
	filtered := make(map[string]int)

	for _, record := range records {
		if reason := p.checkConditions(record); reason != "" {
			filtered[reason]++
			continue
		}

		record.Rating = Classify(record.PriceToSales, p.config.Filters.PriceToSales)
		out = append(out, record)
	}

	counts := make(map[contracts.Rating]int)
	for _, r := range out {
		counts[r.Rating]++
	}

	p.logger.WithFields(map[string]interface{}{
		"input":     len(records),
		"kept":      len(out),
		"filters":   filtered,
		"excellent": counts[contracts.RatingExcellent],
		"good":      counts[contracts.RatingGood],
		"rejected":  counts[contracts.RatingRejected],
	}).Info("Preprocessing completed")

	return out
}

// checkConditions returns the first failed filter, or "" if the record passes.
// NaN values fail the >= comparisons.
func (p *Preprocessor) checkConditions(r contracts.StockRecord) string {
	if p.config.IsExcluded(r.Sector) {
		return FilterSector
	}
	if !(r.Liquidity >= p.config.Filters.Liquidity.Min) {
		return FilterLiquidity
	}
	if !(r.MarketCap >= p.config.Filters.MarketCap.Min) {
		return FilterMarketCap
	}
	return ""
}

// Classify rates a p/s ratio: below Excellent is excellent, up to and
// including Max is good, anything else (NaN included) is rejected.
func Classify(ps float64, bands screenconfig.PriceToSales) contracts.Rating {
	switch {
	case ps < bands.Excellent:
		return contracts.RatingExcellent
	case ps <= bands.Max:
		return contracts.RatingGood
	default:
		return contracts.RatingRejected
	}
}

// Recommend keeps excellent and good records ordered by rating, p/s ascending,
// liquidity descending, then symbol
func Recommend(records []contracts.StockRecord) []contracts.StockRecord {
	out := make([]contracts.StockRecord, 0, len(records))
	for _, r := range records {
		if r.Rating.IsRecommended() {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Rating.Order() != b.Rating.Order() {
			return a.Rating.Order() < b.Rating.Order()
		}
		if a.PriceToSales != b.PriceToSales {
			return a.PriceToSales < b.PriceToSales
		}
		if a.Liquidity != b.Liquidity {
			return a.Liquidity > b.Liquidity
		}
		return a.Symbol < b.Symbol
	})

	return out
}
