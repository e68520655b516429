package itinerary

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DayCountComparison is the outcome of planning one candidate day count.
type DayCountComparison struct {
	RequestedDays int                 `json:"requestedDays"`
	Result        *OptimizationResult `json:"result"`
}

// CompareDayCounts plans the same trip for several day counts concurrently.
// Results are returned in the order of days.
func (b *Builder) CompareDayCounts(ctx context.Context, startCity, endCity string, stops []Stop, days []int, style TripStyle) ([]DayCountComparison, error) {
	cfg := b.optimizer.Config()
	if len(days) == 0 {
		return nil, ErrInvalidRequest{Field: "days", Reason: "must list at least one day count"}
	}
	if len(days) > cfg.MaxCompareDayCounts {
		return nil, ErrInvalidRequest{Field: "days", Reason: fmt.Sprintf("at most %d day counts can be compared", cfg.MaxCompareDayCounts)}
	}
	for _, d := range days {
		if d < 1 {
			return nil, ErrInvalidRequest{Field: "days", Reason: "every day count must be at least 1"}
		}
	}

	results := make([]DayCountComparison, len(days))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.CompareConcurrency)

	for i, d := range days {
		g.Go(func() error {
			result, err := b.Plan(gctx, startCity, endCity, stops, d, style)
			if err != nil {
				return fmt.Errorf("plan for %d days: %w", d, err)
			}
			results[i] = DayCountComparison{RequestedDays: d, Result: result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
