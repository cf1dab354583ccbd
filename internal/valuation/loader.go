package valuation

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/wonny/stockscreen/internal/contracts"
	"github.com/wonny/stockscreen/pkg/logger"
)

// rawRow mirrors the input CSV. Every column is read as text so that blank
// and malformed cells can be told apart from zero.
type rawRow struct {
	Symbol            string `csv:"symbol"`
	Sector            string `csv:"sector"`
	Price             string `csv:"price"`
	SalesPerShare     string `csv:"sales_per_share"`
	SharesOutstanding string `csv:"shares_outstanding"`
	Liquidity         string `csv:"liquidity"`
	Date              string `csv:"date"`
}

// LoadStockData reads the local stock CSV, drops rows that cannot be valued,
// and derives p/s ratio and market cap for the rest.
// ⭐ SSOT: 로컬 CSV 로딩/정제는 여기서만
func LoadStockData(path string, log *logger.Logger) ([]contracts.StockRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stock data: %w", err)
	}
	defer f.Close()

	var rows []*rawRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse stock data %s: %w", path, err)
	}

	records := make([]contracts.StockRecord, 0, len(rows))
	dropped := 0

	for i, row := range rows {
		record := row.toRecord()
		if err := record.Validate(); err != nil {
			dropped++
			log.WithFields(map[string]interface{}{
				"row":    i + 2, // header is line 1
				"reason": err.Error(),
			}).Debug("Dropping invalid stock row")
			continue
		}

		record.PriceToSales = record.Price / record.SalesPerShare
		record.MarketCap = record.Price * record.SharesOutstanding
		records = append(records, record)
	}

	log.WithFields(map[string]interface{}{
		"path":    path,
		"loaded":  len(records),
		"dropped": dropped,
	}).Info("Stock data loaded")

	return records, nil
}

func (r *rawRow) toRecord() contracts.StockRecord {
	return contracts.StockRecord{
		Symbol:            strings.TrimSpace(r.Symbol),
		Sector:            strings.TrimSpace(r.Sector),
		Price:             parseNumber(r.Price),
		SalesPerShare:     parseNumber(r.SalesPerShare),
		SharesOutstanding: parseNumber(r.SharesOutstanding),
		Liquidity:         parseNumber(r.Liquidity),
		Date:              strings.TrimSpace(r.Date),
	}
}

// parseNumber returns NaN for blank or malformed cells.
// NaN fails every later comparison, so such rows never pass a minimum.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
