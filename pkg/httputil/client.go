package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wonny/stockscreen/pkg/config"
	"github.com/wonny/stockscreen/pkg/logger"
	"github.com/wonny/stockscreen/pkg/ratelimit"
)

// Client is an HTTP client wrapper with rate limiting and logging
// ⭐ SSOT: 모든 HTTP 요청은 이 클라이언트를 통해서만 수행
type Client struct {
	httpClient  *http.Client
	logger      *logger.Logger
	rateLimiter *ratelimit.Limiter
}

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Body       []byte
	Duration   time.Duration
}

// New creates a new HTTP client from config
// ⭐ SSOT: http.Client 인스턴스는 여기서만 생성
func New(cfg *config.Config, log *logger.Logger) *Client {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log,
	}
}

// WithRateLimiter sets the rate limiter for this client.
// Every request waits on it before going to the network.
func (c *Client) WithRateLimiter(limiter *ratelimit.Limiter) *Client {
	c.rateLimiter = limiter
	return c
}

// Get performs a GET request and reads the whole body.
// Non-2xx statuses are returned as a Response, not an error.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) (*Response, error) {
	fullURL := rawURL
	if len(params) > 0 {
		fullURL = fmt.Sprintf("%s?%s", rawURL, params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GET request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, rawURL)
}

// do executes the request with rate limiting and logging.
// logURL omits the query string so API keys never reach the logs.
func (c *Client) do(req *http.Request, logURL string) (*Response, error) {
	method := req.Method

	// Check rate limit
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limit wait failed: %w", err)
		}
	}

	startTime := time.Now()

	c.logger.WithFields(map[string]interface{}{
		"method": method,
		"url":    logURL,
	}).Debug("HTTP request started")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"method":   method,
			"url":      logURL,
			"duration": time.Since(startTime),
			"error":    err.Error(),
		}).Error("HTTP request failed")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	duration := time.Since(startTime)

	c.logger.WithFields(map[string]interface{}{
		"method":      method,
		"url":         logURL,
		"status_code": resp.StatusCode,
		"bytes":       len(body),
		"duration":    duration,
	}).Debug("HTTP request completed")

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
		Duration:   duration,
	}, nil
}

// IsSuccess reports whether the status code is 2xx
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
