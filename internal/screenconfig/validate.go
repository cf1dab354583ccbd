package screenconfig

import (
	"errors"
	"fmt"
	"net/url"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

// ErrMissingAPIKey is returned when live screens run without credentials
var ErrMissingAPIKey = errors.New("twelve_data.api_key is required (set it in YAML or TWELVE_DATA_API_KEY)")

// Validate checks all required constraints
// 실패 시 error 반환 (프로그램 중단)
func Validate(cfg *Config) error {
	// === TwelveData ===
	if cfg.TwelveData.BaseURL == "" {
		return ValidationError{"twelve_data.base_url", "required"}
	}
	if u, err := url.Parse(cfg.TwelveData.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return ValidationError{"twelve_data.base_url", "must be an absolute URL"}
	}
	if len(cfg.TwelveData.Symbols) == 0 {
		return ValidationError{"twelve_data.symbols", "must not be empty"}
	}
	for i, s := range cfg.TwelveData.Symbols {
		if s == "" {
			return ValidationError{fmt.Sprintf("twelve_data.symbols[%d]", i), "must not be empty"}
		}
	}

	// === RateLimit ===
	if cfg.RateLimit.Calls <= 0 {
		return ValidationError{"rate_limit.calls", "must be > 0"}
	}
	if cfg.RateLimit.Period <= 0 {
		return ValidationError{"rate_limit.period", "must be > 0"}
	}

	// === Screening ===
	if cfg.Screening.MinPrice < 0 {
		return ValidationError{"screening.min_price", "must be >= 0"}
	}
	if cfg.Screening.MinVolume < 0 {
		return ValidationError{"screening.min_volume", "must be >= 0"}
	}

	// === ExcludedSectors ===
	for i, s := range cfg.ExcludedSectors {
		if s == "" {
			return ValidationError{fmt.Sprintf("excluded_sectors[%d]", i), "must not be empty"}
		}
	}

	// === Filters ===
	if cfg.Filters.Liquidity.Min < 0 {
		return ValidationError{"filters.liquidity.min", "must be >= 0"}
	}
	if cfg.Filters.MarketCap.Min < 0 {
		return ValidationError{"filters.market_cap.min", "must be >= 0"}
	}
	ps := cfg.Filters.PriceToSales
	if ps.Excellent <= 0 {
		return ValidationError{"filters.price_to_sales.excellent", "must be > 0"}
	}
	if ps.Max < ps.Excellent {
		return ValidationError{"filters.price_to_sales", "max must be >= excellent"}
	}

	// === ReportSettings ===
	for i, f := range cfg.ReportSettings.OutputFormats {
		switch f {
		case FormatCSV, FormatExcel, FormatHTML:
		default:
			return ValidationError{
				Field:   fmt.Sprintf("report_settings.output_formats[%d]", i),
				Message: fmt.Sprintf("unknown format %q (valid: csv, excel, html)", f),
			}
		}
	}

	return nil
}

// RequireAPIKey fails when the live screens have no credentials
func (c *Config) RequireAPIKey() error {
	if c.TwelveData.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Warn checks recommended constraints (non-fatal)
func Warn(cfg *Config) []Warning {
	var warnings []Warning

	// 무료 플랜: 분당 8회
	perMinute := float64(cfg.RateLimit.Calls) / cfg.RateLimit.Period.Minutes()
	if perMinute > 8 {
		warnings = append(warnings, Warning{
			Code:    "RATE_ABOVE_FREE_TIER",
			Message: fmt.Sprintf("rate limit %.1f calls/min exceeds the Twelve Data free tier (8/min)", perMinute),
		})
	}

	if len(cfg.ReportSettings.OutputFormats) == 0 {
		warnings = append(warnings, Warning{
			Code:    "NO_REPORTS",
			Message: "report_settings.output_formats is empty: filter results will only be logged",
		})
	}

	if cfg.Screening.MinVolume == 0 {
		warnings = append(warnings, Warning{
			Code:    "NO_LIQUIDITY_FLOOR",
			Message: "screening.min_volume is 0: illiquid symbols will pass the screens",
		})
	}

	return warnings
}
