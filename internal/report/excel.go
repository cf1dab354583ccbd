package report

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/wonny/stockscreen/internal/contracts"
)

var stockColumns = []interface{}{
	"symbol", "sector", "price", "sales_per_share", "shares_outstanding",
	"liquidity", "date", "p/s_ratio", "market_cap", "rating",
}

// SheetName returns the workbook sheet holding one rating category
func SheetName(r contracts.Rating) string {
	return string(r) + "_stocks"
}

// WriteExcel writes one sheet per recommended rating, each holding only that
// rating's rows. Empty categories get no sheet; if every category is empty
// the workbook keeps a single header-only excellent sheet.
func WriteExcel(path string, records []contracts.StockRecord) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	written := 0

	for _, rating := range contracts.RecommendedRatings {
		subset := filterByRating(records, rating)
		if len(subset) == 0 {
			continue
		}

		sheet := SheetName(rating)
		if written == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("add sheet %s: %w", sheet, err)
		}

		if err := writeStockSheet(f, sheet, subset); err != nil {
			return err
		}
		written++
	}

	if written == 0 {
		sheet := SheetName(contracts.RatingExcellent)
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
		if err := writeStockSheet(f, sheet, nil); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}

	return nil
}

func writeStockSheet(f *excelize.File, sheet string, records []contracts.StockRecord) error {
	if err := f.SetSheetRow(sheet, "A1", &stockColumns); err != nil {
		return fmt.Errorf("write header to %s: %w", sheet, err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		row := []interface{}{
			r.Symbol, r.Sector, number(r.Price), number(r.SalesPerShare), number(r.SharesOutstanding),
			number(r.Liquidity), r.Date, number(r.PriceToSales), number(r.MarketCap), string(r.Rating),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d to %s: %w", i+2, sheet, err)
		}
	}

	return nil
}

// number leaves non-finite values as blank cells
func number(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return v
}

func filterByRating(records []contracts.StockRecord, rating contracts.Rating) []contracts.StockRecord {
	out := make([]contracts.StockRecord, 0)
	for _, r := range records {
		if r.Rating == rating {
			out = append(out, r)
		}
	}
	return out
}
