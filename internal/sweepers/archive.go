// Package sweepers runs periodic maintenance in the background.
package sweepers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/route66/trip-service/internal/storage"
)

// ArchivePrefix is the key prefix of archived plan exports.
const ArchivePrefix = "plans/"

// ArchiveSweeper periodically deletes archived exports older than the retention period
type ArchiveSweeper struct {
	store     storage.Storage
	logger    *zerolog.Logger
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
	stopChan  chan struct{}
}

// NewArchiveSweeper creates a new sweeper for archive retention
func NewArchiveSweeper(store storage.Storage, logger *zerolog.Logger, retention, interval time.Duration) *ArchiveSweeper {
	return &ArchiveSweeper{
		store:     store,
		logger:    logger,
		retention: retention,
		interval:  interval,
		now:       time.Now,
		stopChan:  make(chan struct{}),
	}
}

// Start runs a sweep immediately and then on every interval
func (s *ArchiveSweeper) Start(ctx context.Context) {
	s.logger.Info().
		Dur("interval", s.interval).
		Dur("retention", s.retention).
		Msg("Starting archive sweeper")

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Archive sweeper stopping (context cancelled)")
			return
		case <-s.stopChan:
			s.logger.Info().Msg("Archive sweeper stopping (stop signal)")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// Stop signals the sweeper to stop
func (s *ArchiveSweeper) Stop() {
	close(s.stopChan)
}

func (s *ArchiveSweeper) sweep(ctx context.Context) {
	if _, err := s.PruneExpired(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Failed to prune archived exports")
	}
}

// PruneExpired deletes every archived export generated before now minus the
// retention period. Returns the number of artifacts deleted.
func (s *ArchiveSweeper) PruneExpired(ctx context.Context) (int, error) {
	keys, err := s.store.List(ctx, ArchivePrefix)
	if err != nil {
		return 0, fmt.Errorf("failed to list archive: %w", err)
	}

	cutoff := s.now().Add(-s.retention)
	deleted := 0
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return deleted, err
		}

		info, err := s.store.GetInfo(ctx, key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return deleted, fmt.Errorf("failed to stat %s: %w", key, err)
		}
		if !generatedAt(info).Before(cutoff) {
			continue
		}

		if err := s.store.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return deleted, fmt.Errorf("failed to delete %s: %w", key, err)
		}
		deleted++
	}

	if deleted > 0 {
		s.logger.Info().
			Int("deleted", deleted).
			Time("cutoff", cutoff).
			Msg("Pruned archived exports")
	}
	return deleted, nil
}

func generatedAt(info *storage.FileInfo) time.Time {
	if info.Metadata != nil && !info.Metadata.GeneratedAt.IsZero() {
		return info.Metadata.GeneratedAt
	}
	return info.ModifiedAt
}
