package directory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/route66/trip-service/internal/itinerary"
)

const listStopsQuery = `
	SELECT id, name, city, state, latitude, longitude, category, sequence_order
	FROM stops
	ORDER BY sequence_order NULLS LAST, id
`

const upsertStopQuery = `
	INSERT INTO stops (id, name, city, state, latitude, longitude, category, sequence_order)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		city = EXCLUDED.city,
		state = EXCLUDED.state,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		category = EXCLUDED.category,
		sequence_order = EXCLUDED.sequence_order,
		updated_at = NOW()
`

// PostgresDirectory reads stops from the stops table.
type PostgresDirectory struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresDirectory creates a directory backed by a pgx pool.
func NewPostgresDirectory(pool *pgxpool.Pool) *PostgresDirectory {
	return &PostgresDirectory{
		pool:   pool,
		logger: log.With().Str("component", "postgres_directory").Logger(),
	}
}

// ListStops implements itinerary.StopDirectory.
func (d *PostgresDirectory) ListStops(ctx context.Context) ([]itinerary.Stop, error) {
	rows, err := d.pool.Query(ctx, listStopsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query stops: %w", err)
	}
	defer rows.Close()

	var stops []itinerary.Stop
	for rows.Next() {
		var (
			s        itinerary.Stop
			category string
			seq      *int32
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.State, &s.Latitude, &s.Longitude, &category, &seq); err != nil {
			return nil, fmt.Errorf("failed to scan stop: %w", err)
		}
		s.Category = itinerary.StopCategory(category)
		if seq != nil {
			v := int(*seq)
			s.SequenceOrder = &v
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stops: %w", err)
	}

	d.logger.Debug().Int("count", len(stops)).Msg("Loaded stops from database")
	return stops, nil
}

// UpsertStops inserts or updates stops in one batch.
func (d *PostgresDirectory) UpsertStops(ctx context.Context, stops []itinerary.Stop) error {
	if err := ValidateStops(stops); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, s := range stops {
		var seq *int32
		if s.SequenceOrder != nil {
			v := int32(*s.SequenceOrder)
			seq = &v
		}
		batch.Queue(upsertStopQuery, s.ID, s.Name, s.City, s.State, s.Latitude, s.Longitude, string(s.Category), seq)
	}

	results := d.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range stops {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert stop: %w", err)
		}
	}

	d.logger.Info().Int("count", len(stops)).Msg("Upserted stops")
	return nil
}
