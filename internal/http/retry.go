package http

import (
	"math"
	"math/rand/v2"
	"strconv"
	"time"
)

// RetryConfig holds rate limiting and retry configuration
type RetryConfig struct {
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	MaxRetries        int           `mapstructure:"max_retries"`
	InitialBackoff    time.Duration `mapstructure:"initial_backoff"`
	MaxBackoff        time.Duration `mapstructure:"max_backoff"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		RequestsPerSecond: 2,
		MaxRetries:        3,
		InitialBackoff:    100 * time.Millisecond,
		MaxBackoff:        30 * time.Second,
		Timeout:           30 * time.Second,
	}
}

// FetchRetryError is returned when all retry attempts are exhausted
type FetchRetryError struct {
	URL        string
	Attempts   int
	LastStatus int
	LastError  error
}

func (e *FetchRetryError) Error() string {
	msg := "failed to fetch " + e.URL + " after " + strconv.Itoa(e.Attempts) + " attempts"
	if e.LastStatus != 0 {
		msg += " (HTTP " + strconv.Itoa(e.LastStatus) + ")"
	}
	if e.LastError != nil {
		msg += ": " + e.LastError.Error()
	}
	return msg
}

func (e *FetchRetryError) Unwrap() error {
	return e.LastError
}

// IsRetryableStatus reports whether a status is worth retrying: 429 and 5xx.
func IsRetryableStatus(status int) bool {
	return status == 429 || (status >= 500 && status < 600)
}

// Backoff returns the exponential delay for an attempt with 0-25% jitter.
func Backoff(attempt int, cfg RetryConfig) time.Duration {
	return backoff(attempt, 2.0, cfg)
}

// RateLimitBackoff returns the delay after a 429. A Retry-After header in
// seconds wins; otherwise the delay grows by 3x per attempt.
func RateLimitBackoff(attempt int, cfg RetryConfig, retryAfter string) time.Duration {
	if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
		return time.Duration(seconds)*time.Second + time.Duration(rand.Int64N(int64(time.Second)))
	}
	return backoff(attempt, 3.0, cfg)
}

func backoff(attempt int, factor float64, cfg RetryConfig) time.Duration {
	delay := float64(cfg.InitialBackoff) * math.Pow(factor, float64(attempt))
	capped := math.Min(delay, float64(cfg.MaxBackoff))
	jitter := rand.Float64() * 0.25 * capped
	return time.Duration(capped + jitter)
}
