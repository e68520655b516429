package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/route66/trip-service/internal/itinerary"
	"github.com/route66/trip-service/internal/storage"
)

// Archive renders plan and stores it, returning the storage key.
func Archive(ctx context.Context, store storage.Storage, plan *itinerary.TripPlan, format Format, opts Options) (string, error) {
	opts = opts.withDefaults()

	var buf bytes.Buffer
	if err := Write(&buf, plan, format, opts); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", format, err)
	}

	key := storage.ArtifactKey(opts.Now, Filename(plan, format))
	meta := &storage.Metadata{
		ContentType: format.ContentType(),
		Format:      string(format),
		Title:       plan.Title,
		StartCity:   plan.StartCity,
		EndCity:     plan.EndCity,
		Days:        plan.TotalDays,
		GeneratedAt: opts.Now,
		Custom: map[string]string{
			"startDate": opts.StartDate.Format("2006-01-02"),
			"style":     string(plan.Style),
		},
	}
	if err := store.Put(ctx, key, buf.Bytes(), meta); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", key, err)
	}
	return key, nil
}
