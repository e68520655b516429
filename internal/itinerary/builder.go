package itinerary

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Builder is the public entry point for planning a trip from city labels.
type Builder struct {
	optimizer *Optimizer
	logger    zerolog.Logger
}

// NewBuilder creates a new plan builder.
func NewBuilder(optimizer *Optimizer) *Builder {
	return &Builder{
		optimizer: optimizer,
		logger:    log.With().Str("component", "plan_builder").Logger(),
	}
}

// Optimizer returns the underlying optimizer.
func (b *Builder) Optimizer() *Optimizer {
	return b.optimizer
}

// PlanTrip plans a trip between two city labels and returns the final plan.
func (b *Builder) PlanTrip(ctx context.Context, startCity, endCity string, stops []Stop, requestedDays int, style TripStyle) (*TripPlan, error) {
	result, err := b.Plan(ctx, startCity, endCity, stops, requestedDays, style)
	if err != nil {
		return nil, err
	}
	return result.FinalPlan, nil
}

// Plan is PlanTrip with the full optimization audit trail.
func (b *Builder) Plan(ctx context.Context, startCity, endCity string, stops []Stop, requestedDays int, style TripStyle) (*OptimizationResult, error) {
	if requestedDays < 1 {
		return nil, ErrInvalidRequest{Field: "requestedDays", Reason: "must be at least 1"}
	}
	if style == "" {
		style = StyleBalanced
	}
	if _, ok := styleLimits[style]; !ok {
		return nil, ErrInvalidRequest{Field: "style", Reason: fmt.Sprintf("unknown trip style %q", style)}
	}
	if err := b.checkPool(stops); err != nil {
		return nil, err
	}

	start, end, err := b.resolve(startCity, endCity, stops)
	if err != nil {
		return nil, err
	}
	if requestedDays > 1 && b.optimizer.balancer.Overnights(start, end, stops) == 0 {
		return nil, fmt.Errorf("%w: no destination stops between %s and %s", ErrEmptyStopPool, start.Label(), end.Label())
	}

	return b.optimizer.Optimize(ctx, OptimizeRequest{
		Start:         start,
		End:           end,
		Stops:         stops,
		RequestedDays: requestedDays,
		Style:         style,
	})
}

// Feasibility resolves both cities and runs the straight-line feasibility check.
func (b *Builder) Feasibility(ctx context.Context, startCity, endCity string, stops []Stop, requestedDays int) (FeasibilityResult, error) {
	if err := ctx.Err(); err != nil {
		return FeasibilityResult{}, err
	}
	start, end, err := b.resolve(startCity, endCity, stops)
	if err != nil {
		return FeasibilityResult{}, err
	}
	return b.optimizer.CheckFeasibility(start, end, requestedDays), nil
}

func (b *Builder) resolve(startCity, endCity string, stops []Stop) (Stop, Stop, error) {
	start, ok := ResolveCity(startCity, stops)
	if !ok {
		return Stop{}, Stop{}, &InputResolutionError{Role: "start", Label: startCity}
	}
	end, ok := ResolveCity(endCity, stops)
	if !ok {
		return Stop{}, Stop{}, &InputResolutionError{Role: "end", Label: endCity}
	}
	if start.ID == end.ID {
		return Stop{}, Stop{}, ErrInvalidRequest{Field: "endCity", Reason: "must differ from startCity"}
	}
	return start, end, nil
}

// checkPool requires at least one destination and one curated stop.
func (b *Builder) checkPool(stops []Stop) error {
	counts := make(map[StopCategory]int)
	for _, s := range stops {
		counts[s.Category]++
	}
	destinations := counts[CategoryDestination]
	others := len(stops) - destinations

	b.logger.Debug().
		Int("total", len(stops)).
		Int("destinations", destinations).
		Int("attractions", counts[CategoryAttraction]).
		Int("waypoints", counts[CategoryWaypoint]).
		Int("hidden_gems", counts[CategoryHiddenGem]).
		Msg("Stop pool composition")

	if destinations == 0 {
		return fmt.Errorf("%w: no destination stops", ErrEmptyStopPool)
	}
	if others == 0 {
		return fmt.Errorf("%w: no attraction, waypoint or hidden gem stops", ErrEmptyStopPool)
	}
	return nil
}
