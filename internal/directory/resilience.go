package directory

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// BreakerState is the stop source health as tracked by CachedDirectory.
type BreakerState int

const (
	// BreakerClosed lets reads go to the source.
	BreakerClosed BreakerState = iota
	// BreakerOpen keeps reads on the snapshot until the cooldown passes.
	BreakerOpen
	// BreakerHalfOpen lets trial reads through after the cooldown.
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// BreakerConfig controls when the stop source is taken out of rotation.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failed loads that opens the breaker.
	MaxFailures int
	// ResetTimeout is how long the breaker stays open before a trial load.
	ResetTimeout time.Duration
	// HalfOpenSuccess is the number of successful trial loads needed to close.
	HalfOpenSuccess int
}

func (c BreakerConfig) withDefaults() BreakerConfig {
	if c.MaxFailures <= 0 {
		c.MaxFailures = 5
	}
	if c.ResetTimeout <= 0 {
		c.ResetTimeout = 30 * time.Second
	}
	if c.HalfOpenSuccess <= 0 {
		c.HalfOpenSuccess = 1
	}
	return c
}

// sourceBreaker tracks consecutive load failures of one stop source.
// A forced refresh that succeeds closes it regardless of state.
type sourceBreaker struct {
	cfg     BreakerConfig
	metrics *MetricsRecorder
	logger  zerolog.Logger
	now     func() time.Time

	mu        sync.Mutex
	current   BreakerState
	failures  int
	successes int
	openedAt  time.Time
}

func newSourceBreaker(cfg BreakerConfig, metrics *MetricsRecorder, logger zerolog.Logger) *sourceBreaker {
	return &sourceBreaker{
		cfg:     cfg.withDefaults(),
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// admit reports whether a scheduled load may hit the source.
func (b *sourceBreaker) admit() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current != BreakerOpen {
		return true
	}
	if b.now().Sub(b.openedAt) < b.cfg.ResetTimeout {
		return false
	}
	b.move(BreakerHalfOpen, "cooldown elapsed")
	return true
}

// observe folds the outcome of a load into the breaker.
func (b *sourceBreaker) observe(err error, forced bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.failures++
		b.successes = 0
		b.logger.Warn().Err(err).Int("failures", b.failures).Msg("Stop source load failed")
		if b.current == BreakerHalfOpen || (b.current == BreakerClosed && b.failures >= b.cfg.MaxFailures) {
			b.openedAt = b.now()
			b.move(BreakerOpen, "load failed")
		}
		return
	}

	b.failures = 0
	switch {
	case b.current == BreakerClosed:
	case forced:
		b.move(BreakerClosed, "forced refresh succeeded")
	case b.current == BreakerHalfOpen:
		b.successes++
		if b.successes >= b.cfg.HalfOpenSuccess {
			b.move(BreakerClosed, "source recovered")
		}
	}
}

func (b *sourceBreaker) state() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// move must be called with mu held.
func (b *sourceBreaker) move(to BreakerState, reason string) {
	from := b.current
	b.current = to
	if to == BreakerClosed {
		b.successes = 0
	}
	if b.metrics != nil {
		b.metrics.RecordBreakerState("stop_source", to)
	}
	b.logger.Info().
		Stringer("from", from).
		Stringer("to", to).
		Str("reason", reason).
		Msg("Stop source breaker state changed")
}
