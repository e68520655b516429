package directory

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/route66/trip-service/internal/database"
	"github.com/route66/trip-service/internal/itinerary"
)

// setupTestDB starts PostgreSQL, applies the real migrations and returns a pool.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "Failed to start postgres container")
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	require.NoError(t, database.MigrateUp(connStr), "Failed to run migrations")
	// Applying twice is a no-op.
	require.NoError(t, database.MigrateUp(connStr))

	pool, err := database.NewPool(ctx, connStr, database.PoolOptions{MaxConns: 4})
	require.NoError(t, err, "Failed to create connection pool")
	t.Cleanup(pool.Close)

	return pool
}

func TestPostgresDirectory_RoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	d := NewPostgresDirectory(pool)

	seed, err := Route66()
	require.NoError(t, err)
	stops, err := seed.ListStops(ctx)
	require.NoError(t, err)

	require.NoError(t, d.UpsertStops(ctx, stops))
	// Upserting again updates in place.
	require.NoError(t, d.UpsertStops(ctx, stops))

	loaded, err := d.ListStops(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, len(stops))

	assert.Equal(t, "chicago", loaded[0].ID)
	require.NotNil(t, loaded[0].SequenceOrder)
	assert.Equal(t, 1, *loaded[0].SequenceOrder)

	byID := make(map[string]itinerary.Stop, len(loaded))
	for _, s := range loaded {
		byID[s.ID] = s
	}
	arch := byID["gateway-arch"]
	assert.Equal(t, itinerary.CategoryAttraction, arch.Category)
	assert.Nil(t, arch.SequenceOrder)
	assert.InDelta(t, 38.6247, arch.Latitude, 1e-9)
}

func TestPostgresDirectory_RejectsInvalidStops(t *testing.T) {
	pool := setupTestDB(t)
	d := NewPostgresDirectory(pool)

	err := d.UpsertStops(context.Background(), []itinerary.Stop{{ID: "x", City: "X", State: "IL", Category: "diner"}})

	assert.ErrorContains(t, err, "unknown category")
}

func TestOpen_Postgres(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	seed, err := Route66()
	require.NoError(t, err)
	stops, err := seed.ListStops(ctx)
	require.NoError(t, err)
	require.NoError(t, NewPostgresDirectory(pool).UpsertStops(ctx, stops))

	stack, err := Open(ctx, testDirectoryConfig("postgres"), testRedisConfig(""), pool)
	require.NoError(t, err)
	defer stack.Close()

	loaded, err := stack.ListStops(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, len(stops))
}
