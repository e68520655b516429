package directory

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisDirectory_CachesSource(t *testing.T) {
	mr, client := newTestRedis(t)
	source := &fakeSource{stops: sampleStops()}
	d := NewRedisDirectory(client, source, "", time.Minute, nil)
	ctx := context.Background()

	first, err := d.ListStops(ctx)
	require.NoError(t, err)
	second, err := d.ListStops(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), source.calls.Load())
	assert.True(t, mr.Exists(DefaultRedisKey))
	assert.Equal(t, time.Minute, mr.TTL(DefaultRedisKey))
}

func TestRedisDirectory_ExpiresWithTTL(t *testing.T) {
	mr, client := newTestRedis(t)
	source := &fakeSource{stops: sampleStops()}
	d := NewRedisDirectory(client, source, "stops:test", time.Minute, nil)
	ctx := context.Background()

	_, err := d.ListStops(ctx)
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = d.ListStops(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(2), source.calls.Load())
}

func TestRedisDirectory_Invalidate(t *testing.T) {
	mr, client := newTestRedis(t)
	source := &fakeSource{stops: sampleStops()}
	d := NewRedisDirectory(client, source, "", time.Minute, nil)
	ctx := context.Background()

	_, err := d.ListStops(ctx)
	require.NoError(t, err)
	require.NoError(t, d.Invalidate(ctx))

	assert.False(t, mr.Exists(DefaultRedisKey))
}

func TestRedisDirectory_CorruptSnapshotFallsBack(t *testing.T) {
	mr, client := newTestRedis(t)
	require.NoError(t, mr.Set(DefaultRedisKey, "not json"))
	source := &fakeSource{stops: sampleStops()}
	d := NewRedisDirectory(client, source, "", time.Minute, nil)

	stops, err := d.ListStops(context.Background())
	require.NoError(t, err)

	assert.Len(t, stops, 2)
	assert.Equal(t, int32(1), source.calls.Load())
}

func TestRedisDirectory_ServerDownUsesSource(t *testing.T) {
	mr, client := newTestRedis(t)
	source := &fakeSource{stops: sampleStops()}
	d := NewRedisDirectory(client, source, "", time.Minute, nil)
	mr.Close()

	stops, err := d.ListStops(context.Background())
	require.NoError(t, err)
	assert.Len(t, stops, 2)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
