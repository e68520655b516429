package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/route66/trip-service/internal/itinerary"
)

// DefaultRedisKey is the key holding the shared stop snapshot.
const DefaultRedisKey = "trip-service:stops:v1"

// RedisDirectory shares one stop snapshot across service instances.
type RedisDirectory struct {
	client  *redis.Client
	source  itinerary.StopDirectory
	key     string
	ttl     time.Duration
	metrics *MetricsRecorder
	logger  zerolog.Logger
}

// NewRedisClient creates a client and checks the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisDirectory caches source in Redis under key for ttl.
func NewRedisDirectory(client *redis.Client, source itinerary.StopDirectory, key string, ttl time.Duration, metrics *MetricsRecorder) *RedisDirectory {
	if key == "" {
		key = DefaultRedisKey
	}
	if metrics == nil {
		metrics = NewMetricsRecorder()
	}
	return &RedisDirectory{
		client:  client,
		source:  source,
		key:     key,
		ttl:     ttl,
		metrics: metrics,
		logger:  log.With().Str("component", "redis_directory").Logger(),
	}
}

// ListStops implements itinerary.StopDirectory. Redis errors fall through to the source.
func (d *RedisDirectory) ListStops(ctx context.Context) ([]itinerary.Stop, error) {
	data, err := d.client.Get(ctx, d.key).Bytes()
	switch {
	case err == nil:
		var stops []itinerary.Stop
		if err := json.Unmarshal(data, &stops); err == nil {
			d.metrics.RecordCacheHit("redis")
			return stops, nil
		}
		d.logger.Warn().Str("key", d.key).Msg("Discarding unreadable stop snapshot")
	case errors.Is(err, redis.Nil):
	default:
		d.logger.Warn().Err(err).Str("key", d.key).Msg("Redis read failed, using source")
	}
	d.metrics.RecordCacheMiss("redis")

	stops, err := d.source.ListStops(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(stops)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stops: %w", err)
	}
	if err := d.client.Set(ctx, d.key, payload, d.ttl).Err(); err != nil {
		d.logger.Warn().Err(err).Str("key", d.key).Msg("Redis write failed")
	}
	return stops, nil
}

// Invalidate drops the shared snapshot so the next read reloads the source.
func (d *RedisDirectory) Invalidate(ctx context.Context) error {
	if err := d.client.Del(ctx, d.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate stop snapshot: %w", err)
	}
	return nil
}
