package directory

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/route66/trip-service/config"
	httpclient "github.com/route66/trip-service/internal/http"
	"github.com/route66/trip-service/internal/itinerary"
)

// Stack is the assembled directory chain: source, optional Redis layer and the
// in-memory snapshot in front.
type Stack struct {
	*CachedDirectory
	Redis *RedisDirectory // nil when Redis is disabled
	redis *redis.Client
}

// Close releases the Redis client if one was opened.
func (s *Stack) Close() error {
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}

// Refresh drops the shared Redis snapshot and reloads the in-memory one.
func (s *Stack) Refresh(ctx context.Context) (int, error) {
	if s.Redis != nil {
		if err := s.Redis.Invalidate(ctx); err != nil {
			return 0, err
		}
	}
	return s.CachedDirectory.Refresh(ctx)
}

// Open builds the directory stack described by the configuration. pool is only
// used for the postgres source.
func Open(ctx context.Context, dirCfg config.DirectoryConfig, redisCfg config.RedisConfig, pool *pgxpool.Pool) (*Stack, error) {
	source, err := openSource(dirCfg, pool)
	if err != nil {
		return nil, err
	}

	metrics := NewMetricsRecorder()
	stack := &Stack{}
	if redisCfg.Addr != "" {
		client, err := NewRedisClient(ctx, redisCfg.Addr, redisCfg.Password, redisCfg.DB)
		if err != nil {
			return nil, err
		}
		stack.redis = client
		stack.Redis = NewRedisDirectory(client, source, redisCfg.Key, redisCfg.TTL, metrics)
		source = stack.Redis
	}

	stack.CachedDirectory = NewCachedDirectory(source, dirCfg.CacheTTL, BreakerConfig{
		MaxFailures:      dirCfg.MaxFailures,
		ResetTimeout:     dirCfg.ResetTimeout,
		HalfOpenSuccess: dirCfg.HalfOpenSuccess,
	}, metrics)
	return stack, nil
}

func openSource(dirCfg config.DirectoryConfig, pool *pgxpool.Pool) (itinerary.StopDirectory, error) {
	switch dirCfg.Source {
	case "", "static":
		return Route66()
	case "file":
		return LoadFile(dirCfg.File)
	case "url":
		if dirCfg.URL == "" {
			return nil, fmt.Errorf("url directory requires a url")
		}
		return NewRemoteDirectory(httpclient.NewClient(dirCfg.HTTP), dirCfg.URL), nil
	case "postgres":
		if pool == nil {
			return nil, fmt.Errorf("postgres directory requires a database connection")
		}
		return NewPostgresDirectory(pool), nil
	default:
		return nil, fmt.Errorf("unknown directory source %q", dirCfg.Source)
	}
}
