package directory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/route66/trip-service/internal/itinerary"
)

// fakeSource is a StopDirectory whose result can be switched between calls.
type fakeSource struct {
	mu    sync.Mutex
	stops []itinerary.Stop
	err   error
	delay time.Duration
	calls atomic.Int32
}

func (f *fakeSource) ListStops(ctx context.Context) ([]itinerary.Stop, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.stops, nil
}

func (f *fakeSource) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// fakeClock is a controllable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestCache(source itinerary.StopDirectory, ttl time.Duration, maxFailures int) (*CachedDirectory, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
	d := NewCachedDirectory(source, ttl, BreakerConfig{
		MaxFailures:      maxFailures,
		ResetTimeout:     time.Minute,
		HalfOpenSuccess: 1,
	}, nil)
	d.now = clock.Now
	d.breaker.now = clock.Now
	return d, clock
}

func sampleStops() []itinerary.Stop {
	return []itinerary.Stop{
		{ID: "chicago", City: "Chicago", State: "IL", Category: itinerary.CategoryDestination},
		{ID: "gateway-arch", City: "St. Louis", State: "MO", Category: itinerary.CategoryAttraction},
	}
}

func TestCachedDirectory_ServesFromSnapshot(t *testing.T) {
	source := &fakeSource{stops: sampleStops()}
	d, clock := newTestCache(source, time.Minute, 3)
	ctx := context.Background()

	_, err := d.ListStops(ctx)
	require.NoError(t, err)
	clock.Advance(30 * time.Second)
	stops, err := d.ListStops(ctx)
	require.NoError(t, err)

	assert.Len(t, stops, 2)
	assert.Equal(t, int32(1), source.calls.Load())

	clock.Advance(time.Minute)
	_, err = d.ListStops(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), source.calls.Load())
}

func TestCachedDirectory_ServesStaleOnFailure(t *testing.T) {
	source := &fakeSource{stops: sampleStops()}
	d, clock := newTestCache(source, time.Minute, 2)
	ctx := context.Background()

	_, err := d.ListStops(ctx)
	require.NoError(t, err)

	source.fail(errors.New("connection refused"))
	clock.Advance(2 * time.Minute)

	for i := 0; i < 4; i++ {
		stops, err := d.ListStops(ctx)
		require.NoError(t, err)
		assert.Len(t, stops, 2)
	}

	assert.Equal(t, BreakerOpen, d.BreakerState())
	// Two failures open the circuit; later reads skip the source.
	assert.Equal(t, int32(3), source.calls.Load())
}

func TestCachedDirectory_NoSnapshotFails(t *testing.T) {
	source := &fakeSource{err: errors.New("connection refused")}
	d, _ := newTestCache(source, time.Minute, 1)

	_, err := d.ListStops(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)

	_, err = d.ListStops(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.Equal(t, int32(1), source.calls.Load())
}

func TestCachedDirectory_RecoversAfterResetTimeout(t *testing.T) {
	source := &fakeSource{err: errors.New("connection refused")}
	d, clock := newTestCache(source, time.Minute, 1)
	ctx := context.Background()

	_, err := d.ListStops(ctx)
	require.Error(t, err)
	assert.Equal(t, BreakerOpen, d.BreakerState())

	source.fail(nil)
	source.mu.Lock()
	source.stops = sampleStops()
	source.mu.Unlock()
	clock.Advance(2 * time.Minute)

	stops, err := d.ListStops(ctx)
	require.NoError(t, err)
	assert.Len(t, stops, 2)
	assert.Equal(t, BreakerClosed, d.BreakerState())
}

func TestCachedDirectory_ConcurrentMissesShareLoad(t *testing.T) {
	source := &fakeSource{stops: sampleStops(), delay: 50 * time.Millisecond}
	d, _ := newTestCache(source, time.Minute, 3)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.ListStops(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), source.calls.Load())
}

func TestCachedDirectory_RefreshAndAge(t *testing.T) {
	source := &fakeSource{stops: sampleStops()}
	d, clock := newTestCache(source, time.Hour, 3)

	_, ok := d.Age()
	assert.False(t, ok)

	n, err := d.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	clock.Advance(10 * time.Second)
	age, ok := d.Age()
	require.True(t, ok)
	assert.Equal(t, 10*time.Second, age)
}

func TestCachedDirectory_RefreshClosesOpenBreaker(t *testing.T) {
	source := &fakeSource{err: errors.New("connection refused")}
	d, _ := newTestCache(source, time.Minute, 1)
	ctx := context.Background()

	_, err := d.ListStops(ctx)
	require.Error(t, err)
	require.Equal(t, BreakerOpen, d.BreakerState())

	source.fail(nil)
	source.mu.Lock()
	source.stops = sampleStops()
	source.mu.Unlock()

	n, err := d.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, BreakerClosed, d.BreakerState())

	// Fresh snapshot, so no further load.
	_, err = d.ListStops(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), source.calls.Load())
}

func TestCachedDirectory_FailedRefreshKeepsBreakerOpen(t *testing.T) {
	source := &fakeSource{err: errors.New("connection refused")}
	d, _ := newTestCache(source, time.Minute, 1)
	ctx := context.Background()

	_, err := d.ListStops(ctx)
	require.Error(t, err)

	_, err = d.Refresh(ctx)
	require.Error(t, err)
	assert.Equal(t, BreakerOpen, d.BreakerState())
}

func TestSourceBreaker_HalfOpenNeedsConfiguredSuccesses(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
	b := newSourceBreaker(BreakerConfig{MaxFailures: 2, ResetTimeout: time.Minute, HalfOpenSuccess: 2}, nil, zerolog.Nop())
	b.now = clock.Now
	boom := errors.New("boom")

	b.observe(boom, false)
	assert.Equal(t, BreakerClosed, b.state())
	b.observe(boom, false)
	assert.Equal(t, BreakerOpen, b.state())
	assert.False(t, b.admit())

	clock.Advance(time.Minute)
	assert.True(t, b.admit())
	assert.Equal(t, BreakerHalfOpen, b.state())

	b.observe(nil, false)
	assert.Equal(t, BreakerHalfOpen, b.state())
	b.observe(nil, false)
	assert.Equal(t, BreakerClosed, b.state())

	b.observe(boom, false)
	assert.Equal(t, BreakerClosed, b.state(), "one failure after recovery stays under the limit")
}

func TestBreakerConfig_Defaults(t *testing.T) {
	cfg := BreakerConfig{}.withDefaults()
	assert.Equal(t, 5, cfg.MaxFailures)
	assert.Equal(t, 30*time.Second, cfg.ResetTimeout)
	assert.Equal(t, 1, cfg.HalfOpenSuccess)
}
