package screenconfig

import "time"

// Config는 스크리닝/필터/리포트 전체 설정
// Loaded once at startup and never mutated during a run.
type Config struct {
	TwelveData      TwelveData     `yaml:"twelve_data" json:"twelve_data"`
	RateLimit       RateLimit      `yaml:"rate_limit" json:"rate_limit"`
	Screening       Screening      `yaml:"screening" json:"screening"`
	ExcludedSectors []string       `yaml:"excluded_sectors" json:"excluded_sectors"`
	Filters         Filters        `yaml:"filters" json:"filters"`
	ReportSettings  ReportSettings `yaml:"report_settings" json:"report_settings"`
}

// TwelveData API 접속 정보
type TwelveData struct {
	APIKey   string   `yaml:"api_key" json:"-"` // never hashed or logged
	BaseURL  string   `yaml:"base_url" json:"base_url"`
	Exchange string   `yaml:"exchange" json:"exchange"`
	Country  string   `yaml:"country" json:"country"`
	Symbols  []string `yaml:"symbols" json:"symbols"`
}

// RateLimit fixed window applied to every API call
type RateLimit struct {
	Calls  int           `yaml:"calls" json:"calls"`
	Period time.Duration `yaml:"period" json:"period"`
}

// Screening thresholds for the live screens
type Screening struct {
	MinPrice     float64 `yaml:"min_price" json:"min_price"`         // strict: price > min
	MinVolume    int64   `yaml:"min_volume" json:"min_volume"`       // strict: volume > min
	ROEThreshold float64 `yaml:"roe_threshold" json:"roe_threshold"` // inclusive: roe >= threshold
}

// Filters for the local CSV pipeline
type Filters struct {
	Liquidity    Minimum      `yaml:"liquidity" json:"liquidity"`
	MarketCap    Minimum      `yaml:"market_cap" json:"market_cap"`
	PriceToSales PriceToSales `yaml:"price_to_sales" json:"price_to_sales"`
}

type Minimum struct {
	Min float64 `yaml:"min" json:"min"`
}

// PriceToSales rating bands.
// ps < Excellent → excellent, ps <= Max → good, otherwise rejected.
type PriceToSales struct {
	Excellent float64 `yaml:"excellent" json:"excellent"`
	Max       float64 `yaml:"max" json:"max"`
}

// ReportSettings selects which reports the filter pipeline writes
type ReportSettings struct {
	OutputFormats []string `yaml:"output_formats" json:"output_formats"` // csv, excel, html
}

// Report formats
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatHTML  = "html"
)

// HasFormat reports whether the given output format is enabled
func (r ReportSettings) HasFormat(format string) bool {
	for _, f := range r.OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}

// IsExcluded reports whether a sector is on the exclusion list
func (c *Config) IsExcluded(sector string) bool {
	for _, s := range c.ExcludedSectors {
		if s == sector {
			return true
		}
	}
	return false
}

// Default returns the configuration used when a key is absent from YAML.
// Matches the Twelve Data free tier (8 calls/min).
func Default() Config {
	return Config{
		TwelveData: TwelveData{
			BaseURL:  "https://api.twelvedata.com",
			Exchange: "NYSE",
			Country:  "United States",
			Symbols:  []string{"AAPL", "MSFT", "AMZN", "GOOGL", "TSLA"},
		},
		RateLimit: RateLimit{
			Calls:  8,
			Period: time.Minute,
		},
		Screening: Screening{
			MinPrice:     1.0,
			MinVolume:    100_000,
			ROEThreshold: 15.0,
		},
		ExcludedSectors: []string{},
		Filters: Filters{
			Liquidity:    Minimum{Min: 1.0},
			MarketCap:    Minimum{Min: 100},
			PriceToSales: PriceToSales{Excellent: 2.0, Max: 5.0},
		},
		ReportSettings: ReportSettings{
			OutputFormats: []string{FormatExcel, FormatHTML},
		},
	}
}
