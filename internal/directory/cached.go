package directory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/route66/trip-service/internal/itinerary"
)

// ErrSourceUnavailable is returned when the source is failing and no snapshot exists.
var ErrSourceUnavailable = errors.New("stop source unavailable")

// CachedDirectory keeps an in-memory snapshot of another directory.
// Concurrent misses share one load, and a stale snapshot is served while the
// source is failing.
type CachedDirectory struct {
	source  itinerary.StopDirectory
	ttl     time.Duration
	breaker *sourceBreaker
	metrics *MetricsRecorder
	logger  zerolog.Logger
	group   singleflight.Group
	now     func() time.Time

	mu       sync.RWMutex
	snapshot []itinerary.Stop
	loadedAt time.Time
}

// NewCachedDirectory wraps source with a snapshot that expires after ttl.
func NewCachedDirectory(source itinerary.StopDirectory, ttl time.Duration, breakerConfig BreakerConfig, metrics *MetricsRecorder) *CachedDirectory {
	if metrics == nil {
		metrics = NewMetricsRecorder()
	}
	logger := log.With().Str("component", "cached_directory").Logger()
	return &CachedDirectory{
		source:  source,
		ttl:     ttl,
		breaker: newSourceBreaker(breakerConfig, metrics, logger),
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// ListStops implements itinerary.StopDirectory.
func (d *CachedDirectory) ListStops(ctx context.Context) ([]itinerary.Stop, error) {
	stops, loadedAt, ok := d.current()
	if ok && d.now().Sub(loadedAt) < d.ttl {
		d.metrics.RecordCacheHit("memory")
		d.metrics.RecordSnapshotAge(d.now().Sub(loadedAt))
		return clone(stops), nil
	}
	d.metrics.RecordCacheMiss("memory")

	if !d.breaker.admit() {
		return d.stale(stops, ok, ErrSourceUnavailable)
	}

	fresh, err := d.load(ctx, false)
	if err != nil {
		return d.stale(stops, ok, err)
	}
	return clone(fresh), nil
}

// Refresh forces a reload from the source, bypassing an open breaker.
// A successful refresh closes the breaker.
func (d *CachedDirectory) Refresh(ctx context.Context) (int, error) {
	stops, err := d.load(ctx, true)
	if err != nil {
		return 0, err
	}
	return len(stops), nil
}

// Age returns how old the current snapshot is, or false when none is loaded.
func (d *CachedDirectory) Age() (time.Duration, bool) {
	_, loadedAt, ok := d.current()
	if !ok {
		return 0, false
	}
	return d.now().Sub(loadedAt), true
}

// BreakerState returns the state of the source breaker.
func (d *CachedDirectory) BreakerState() BreakerState {
	return d.breaker.state()
}

func (d *CachedDirectory) current() ([]itinerary.Stop, time.Time, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot, d.loadedAt, d.snapshot != nil
}

func (d *CachedDirectory) stale(stops []itinerary.Stop, ok bool, cause error) ([]itinerary.Stop, error) {
	if !ok {
		if errors.Is(cause, ErrSourceUnavailable) {
			return nil, cause
		}
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, cause)
	}
	d.metrics.RecordStaleServed()
	d.logger.Warn().Err(cause).Msg("Serving stale stop snapshot")
	return clone(stops), nil
}

func (d *CachedDirectory) load(ctx context.Context, force bool) ([]itinerary.Stop, error) {
	v, err, _ := d.group.Do("stops", func() (any, error) {
		// A load that finished just before this one may already have refreshed the snapshot.
		if stops, loadedAt, ok := d.current(); ok && !force && d.now().Sub(loadedAt) < d.ttl {
			return stops, nil
		}
		start := d.now()
		stops, err := d.source.ListStops(ctx)
		d.metrics.RecordLoad(d.now().Sub(start), err == nil)
		d.breaker.observe(err, force)
		if err != nil {
			return nil, fmt.Errorf("failed to load stops: %w", err)
		}
		if stops == nil {
			stops = []itinerary.Stop{}
		}

		d.mu.Lock()
		d.snapshot = stops
		d.loadedAt = d.now()
		d.mu.Unlock()

		d.logger.Info().Int("count", len(stops)).Msg("Stop snapshot loaded")
		return stops, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]itinerary.Stop), nil
}

func clone(stops []itinerary.Stop) []itinerary.Stop {
	out := make([]itinerary.Stop, len(stops))
	copy(out, stops)
	return out
}
