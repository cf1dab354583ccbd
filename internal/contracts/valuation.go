package contracts

import (
	"fmt"
	"math"
)

// Rating is the price-to-sales category of a stock
type Rating string

const (
	RatingExcellent Rating = "excellent"
	RatingGood      Rating = "good"
	RatingRejected  Rating = "rejected"
)

// RecommendedRatings are the categories kept in reports, in sheet order
var RecommendedRatings = []Rating{RatingExcellent, RatingGood}

// Order returns the sort position of the rating (excellent first)
func (r Rating) Order() int {
	switch r {
	case RatingExcellent:
		return 0
	case RatingGood:
		return 1
	default:
		return 2
	}
}

// IsRecommended reports whether the rating survives into reports
func (r Rating) IsRecommended() bool {
	return r == RatingExcellent || r == RatingGood
}

// StockRecord is one row of the local filter pipeline.
// PriceToSales and MarketCap are derived on load; Rating is set by classification.
// Missing optional numerics are NaN.
type StockRecord struct {
	Symbol            string  `csv:"symbol" json:"symbol"`
	Sector            string  `csv:"sector" json:"sector"`
	Price             float64 `csv:"price" json:"price"`
	SalesPerShare     float64 `csv:"sales_per_share" json:"sales_per_share"`
	SharesOutstanding float64 `csv:"shares_outstanding" json:"shares_outstanding"`
	Liquidity         float64 `csv:"liquidity" json:"liquidity"`
	Date              string  `csv:"date" json:"date"`
	PriceToSales      float64 `csv:"p/s_ratio" json:"ps_ratio"`
	MarketCap         float64 `csv:"market_cap" json:"market_cap"`
	Rating            Rating  `csv:"rating" json:"rating"`
}

// Validate checks the fields every record must carry after loading
func (s *StockRecord) Validate() error {
	if s.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if s.Sector == "" {
		return fmt.Errorf("%s: sector is required", s.Symbol)
	}
	if math.IsNaN(s.Price) || s.Price <= 0 {
		return fmt.Errorf("%s: price must be > 0", s.Symbol)
	}
	if math.IsNaN(s.SalesPerShare) || s.SalesPerShare <= 0 {
		return fmt.Errorf("%s: sales_per_share must be > 0", s.Symbol)
	}
	return nil
}
