// Package http is an outbound HTTP client with rate limiting and retries.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const userAgent = "Route66-TripService/1.0"

// Client is an HTTP client with rate limiting and retry logic
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	config     RetryConfig
	logger     zerolog.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewClient creates a new HTTP client with rate limiting
func NewClient(cfg RetryConfig) *Client {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
		config:     cfg,
		logger:     log.With().Str("component", "http_client").Logger(),
		sleep:      sleepContext,
	}
}

// Get performs a GET request with rate limiting and retry logic.
// The caller closes the response body.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	var lastStatus int
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug().Str("url", url).Int("attempt", attempt+1).Msg("Retrying request")
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("invalid request for %s: %w", url, err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			if attempt < c.config.MaxRetries {
				if err := c.sleep(ctx, Backoff(attempt, c.config)); err != nil {
					return nil, err
				}
			}
			continue
		}

		lastStatus = resp.StatusCode
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}
		retryAfter := resp.Header.Get("Retry-After")
		resp.Body.Close()
		lastErr = nil

		if !IsRetryableStatus(resp.StatusCode) || attempt == c.config.MaxRetries {
			return nil, &FetchRetryError{URL: url, Attempts: attempt + 1, LastStatus: lastStatus}
		}

		delay := Backoff(attempt, c.config)
		if resp.StatusCode == http.StatusTooManyRequests {
			delay = RateLimitBackoff(attempt, c.config, retryAfter)
		}
		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	return nil, &FetchRetryError{
		URL:        url,
		Attempts:   c.config.MaxRetries + 1,
		LastStatus: lastStatus,
		LastError:  lastErr,
	}
}

// GetBytes performs a GET request and returns the response body
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
