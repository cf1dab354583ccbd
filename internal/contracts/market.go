package contracts

import "time"

// Listing is one row of the /stocks reference endpoint
type Listing struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Exchange string `json:"exchange"`
	Country  string `json:"country"`
	Type     string `json:"type"`
}

// Quote is a real-time quote for one symbol.
// Produced per request and never stored beyond the run.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Exchange      string  `json:"exchange"`
	Close         float64 `json:"close"`
	PercentChange float64 `json:"percent_change"`
	Volume        int64   `json:"volume"`
}

// Fundamentals holds the ratios the ROE screen needs
type Fundamentals struct {
	Symbol          string  `json:"symbol"`
	Sector          string  `json:"sector"`
	ReturnOnEquity  float64 `json:"return_on_equity"`
	PriceToSalesTTM float64 `json:"price_to_sales_ttm"`
}

// Bar is one daily candle from /time_series
type Bar struct {
	Datetime time.Time `csv:"-"`
	Date     string    `csv:"datetime"`
	Open     float64   `csv:"open"`
	High     float64   `csv:"high"`
	Low      float64   `csv:"low"`
	Close    float64   `csv:"close"`
	Volume   int64     `csv:"volume"`
}
