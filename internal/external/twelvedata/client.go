package twelvedata

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/wonny/stockscreen/internal/screenconfig"
	"github.com/wonny/stockscreen/pkg/config"
	"github.com/wonny/stockscreen/pkg/httputil"
	"github.com/wonny/stockscreen/pkg/logger"
	"github.com/wonny/stockscreen/pkg/ratelimit"
)

// Endpoints
const (
	EndpointStocks       = "/stocks"
	EndpointQuote        = "/quote"
	EndpointFundamentals = "/fundamentals"
	EndpointTimeSeries   = "/time_series"
)

// Options configures a Client
type Options struct {
	BaseURL   string
	APIKey    string
	Exchange  string
	Country   string
	Symbols   []string
	RateLimit ratelimit.Config
}

// OptionsFromConfig builds client options from the screener config
func OptionsFromConfig(cfg *screenconfig.Config) Options {
	return Options{
		BaseURL:  strings.TrimRight(cfg.TwelveData.BaseURL, "/"),
		APIKey:   cfg.TwelveData.APIKey,
		Exchange: cfg.TwelveData.Exchange,
		Country:  cfg.TwelveData.Country,
		Symbols:  cfg.TwelveData.Symbols,
		RateLimit: ratelimit.Config{
			Key:    ratelimit.TwelveDataRateLimit.Key,
			Limit:  cfg.RateLimit.Calls,
			Window: cfg.RateLimit.Period,
		},
	}
}

// Client handles communication with the Twelve Data REST API.
// The client owns its rate limiter; every call goes through it.
// ⭐ SSOT: Twelve Data API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	limiter    *ratelimit.Limiter
	logger     *logger.Logger
	opts       Options
	now        func() time.Time
}

// NewClient creates a new Twelve Data client with its own rate limiter
func NewClient(cfg *config.Config, opts Options, log *logger.Logger) *Client {
	limiter := ratelimit.New(opts.RateLimit)

	return &Client{
		httpClient: httputil.New(cfg, log).WithRateLimiter(limiter),
		limiter:    limiter,
		logger:     log.WithField("source", "twelve_data"),
		opts:       opts,
		now:        time.Now,
	}
}

// Fetch performs one rate-limited GET and returns the parsed JSON document.
// Every failure (transport, non-2xx, empty body, malformed JSON, API error
// envelope) is logged and reported as ok=false; nothing is raised.
func (c *Client) Fetch(ctx context.Context, endpoint string, params url.Values) (gjson.Result, bool) {
	query := url.Values{}
	for k, v := range params {
		query[k] = append([]string(nil), v...)
	}
	query.Set("apikey", c.opts.APIKey)

	log := c.logger.WithContext(ctx).WithFields(map[string]interface{}{
		"endpoint": endpoint,
		"symbol":   params.Get("symbol"),
	})

	resp, err := c.httpClient.Get(ctx, c.opts.BaseURL+endpoint, query)
	if err != nil {
		log.WithError(err).Error("API request failed")
		return gjson.Result{}, false
	}

	if !resp.IsSuccess() {
		log.WithField("status_code", resp.StatusCode).Error("API request returned non-success status")
		return gjson.Result{}, false
	}

	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 {
		log.Warn("API returned empty body")
		return gjson.Result{}, false
	}

	if !gjson.ValidBytes(body) {
		log.WithField("bytes", len(body)).Error("API returned malformed JSON")
		return gjson.Result{}, false
	}

	result := gjson.ParseBytes(body)
	if !result.IsObject() && !result.IsArray() {
		log.Warn("API returned no document")
		return gjson.Result{}, false
	}

	// Twelve Data reports errors (including quota) inside a 200 response
	if result.Get("status").String() == "error" {
		log.WithFields(map[string]interface{}{
			"api_code":    result.Get("code").Int(),
			"api_message": result.Get("message").String(),
		}).Error("API returned error status")
		return gjson.Result{}, false
	}

	log.WithFields(map[string]interface{}{
		"duration":       resp.Duration,
		"rate_remaining": c.limiter.Remaining(),
	}).Debug("API request succeeded")

	return result, true
}
