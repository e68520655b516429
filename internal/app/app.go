// Package app assembles the planning engine and its stop directory from configuration.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/route66/trip-service/config"
	"github.com/route66/trip-service/internal/database"
	"github.com/route66/trip-service/internal/directory"
	"github.com/route66/trip-service/internal/itinerary"
	"github.com/route66/trip-service/internal/storage"
)

// App holds the wired dependencies shared by the server and the CLI.
type App struct {
	Config    *config.Config
	Builder   *itinerary.Builder
	Directory *directory.Stack
	usesDB    bool
}

// New connects whatever the configured directory source needs and builds the planner.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	if cfg.Directory.Source == "postgres" {
		if err := ConnectDatabase(ctx, cfg); err != nil {
			return nil, err
		}
		a.usesDB = true
	}

	stack, err := directory.Open(ctx, cfg.Directory, cfg.Redis, database.Pool())
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open stop directory: %w", err)
	}
	a.Directory = stack

	planning := cfg.Planning
	optimizer := itinerary.NewOptimizer(&planning, nil, itinerary.NewMetricsRecorder())
	a.Builder = itinerary.NewBuilder(optimizer)
	return a, nil
}

// ConnectDatabase opens the shared pool from the database section.
func ConnectDatabase(ctx context.Context, cfg *config.Config) error {
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL not set")
	}
	if err := database.Connect(ctx, cfg.Database.URL, database.PoolOptions{
		MaxConns:    cfg.Database.MaxConnections,
		MinConns:    cfg.Database.MinConnections,
		MaxLifetime: cfg.Database.MaxConnLifetime,
		MaxIdleTime: cfg.Database.MaxConnIdleTime,
	}); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	return nil
}

// Storage opens the artifact store from the storage section.
func (a *App) Storage() (storage.Storage, error) {
	switch a.Config.Storage.Type {
	case "", "local":
		return storage.NewLocalStorage(a.Config.Storage.BasePath)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", a.Config.Storage.Type)
	}
}

// Close releases the directory and database connections.
func (a *App) Close() {
	if a.Directory != nil {
		_ = a.Directory.Close()
	}
	if a.usesDB {
		database.Close()
	}
}

// NewLogger builds the root logger from the logging section.
func NewLogger(cfg config.LoggingConfig, service string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var output io.Writer = os.Stdout
	if cfg.Format != "json" {
		output = zerolog.ConsoleWriter{Out: os.Stderr, NoColor: cfg.NoColor}
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("service", service).Logger()
}
