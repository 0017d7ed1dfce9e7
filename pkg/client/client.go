// Package client provides the HTTP client for the EA FC ratings API
// with error classification and request metrics.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for ratings API operations.
var (
	ratingsRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ratings_requests_total",
		Help: "Total ratings API requests by status",
	}, []string{"status"})

	ratingsRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ratings_request_duration_seconds",
		Help:    "Ratings API request duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	})

	ratingsErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ratings_errors_total",
		Help: "Total ratings API errors by class",
	}, []string{"class"})
)

// DefaultBaseURL is the public EA FC ratings endpoint.
const DefaultBaseURL = "https://drop-api.ea.com/rating/ea-sports-fc"

// Config holds the client configuration.
type Config struct {
	// BaseURL is the ratings endpoint URL.
	BaseURL string

	// Locale is the locale query parameter sent with every request.
	Locale string

	// PageLimit is the number of records requested per page.
	PageLimit int

	// UserAgent header sent with every request.
	UserAgent string

	// Timeout for a single page fetch.
	Timeout time.Duration

	// HTTPClient overrides the default HTTP client (for testing).
	HTTPClient *http.Client
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Locale:    "en",
		PageLimit: 100,
		UserAgent: "ea-fc25-scraper/1.0",
		Timeout:   30 * time.Second,
	}
}

// Client fetches rating pages over HTTP.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// New creates a new ratings API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if cfg.PageLimit <= 0 {
		return nil, fmt.Errorf("page limit must be positive (got %d)", cfg.PageLimit)
	}
	if cfg.Locale == "" {
		cfg.Locale = "en"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		httpClient: httpClient,
		config:     cfg,
		logger:     log.With().Str("component", "ratings-client").Logger(),
	}, nil
}

// FetchPage performs one GET for the page at the given offset and returns
// the raw response body. Non-2xx responses and transport failures return
// an error; there are no retries, every invocation is exactly one request.
func (c *Client) FetchPage(ctx context.Context, offset int) ([]byte, error) {
	if offset < 0 {
		return nil, fmt.Errorf("offset must be non-negative (got %d)", offset)
	}

	pageURL, err := c.pageURL(offset)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Int("offset", offset).
		Str("url", pageURL).
		Msg("Fetching page")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	ratingsRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		ratingsErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		ratingsRequestsTotal.WithLabelValues("network_error").Inc()
		c.logger.Error().Err(err).Int("offset", offset).Msg("HTTP request failed")
		return nil, &APIError{
			ErrorClass: ErrorClassNetwork,
			Message:    "fetch page",
			Err:        fmt.Errorf("%w: %v", ErrRequestFailed, err),
		}
	}
	defer resp.Body.Close()

	ratingsRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errClass := classifyStatus(resp.StatusCode)
		ratingsErrorsTotal.WithLabelValues(string(errClass)).Inc()
		c.logger.Warn().
			Int("offset", offset).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("Ratings API error")
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			ErrorClass: errClass,
			Message:    resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		ratingsErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			ErrorClass: ErrorClassNetwork,
			Message:    "read response body",
			Err:        err,
		}
	}

	c.logger.Debug().
		Int("offset", offset).
		Int("bytes", len(body)).
		Dur("duration", time.Since(start)).
		Msg("Page fetched")

	return body, nil
}

// PageLimit returns the configured page size.
func (c *Client) PageLimit() int {
	return c.config.PageLimit
}

// pageURL builds the request URL for an offset.
func (c *Client) pageURL(offset int) (string, error) {
	u, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("locale", c.config.Locale)
	q.Set("limit", strconv.Itoa(c.config.PageLimit))
	q.Set("offset", strconv.Itoa(offset))
	u.RawQuery = q.Encode()

	return u.String(), nil
}
