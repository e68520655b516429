package itinerary

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// PlanInput carries a balanced day split into the planning service.
type PlanInput struct {
	Start     Stop
	End       Stop
	Stops     []Stop
	Segments  []DailySegment
	FinalDays int
	Style     TripStyle
}

// PlanningService assembles a full trip plan from a balanced day split.
type PlanningService interface {
	BuildPlan(ctx context.Context, in PlanInput) (*TripPlan, error)
}

// curationLimits is the per-day cap for each curated list.
type curationLimits struct {
	attractions int
	waypoints   int
	hiddenGems  int
}

var styleLimits = map[TripStyle]curationLimits{
	StyleRelaxed:     {attractions: 2, waypoints: 1, hiddenGems: 1},
	StyleBalanced:    {attractions: 3, waypoints: 2, hiddenGems: 2},
	StyleAdventurous: {attractions: 3, waypoints: 3, hiddenGems: 3},
}

// CorridorPlanner fills each day with corridor-relevant stops and totals the plan.
type CorridorPlanner struct {
	corridor *Corridor
	logger   zerolog.Logger
}

// NewCorridorPlanner creates a planning service for the given corridor.
func NewCorridorPlanner(corridor *Corridor) *CorridorPlanner {
	return &CorridorPlanner{
		corridor: corridor,
		logger:   log.With().Str("component", "corridor_planner").Logger(),
	}
}

// BuildPlan implements PlanningService. The input segments are copied, never modified.
func (p *CorridorPlanner) BuildPlan(ctx context.Context, in PlanInput) (*TripPlan, error) {
	if len(in.Segments) != in.FinalDays {
		return nil, fmt.Errorf("segment count %d does not match final day count %d", len(in.Segments), in.FinalDays)
	}
	style := in.Style
	if style == "" {
		style = StyleBalanced
	}
	limits, ok := styleLimits[style]
	if !ok {
		return nil, ErrInvalidRequest{Field: "style", Reason: fmt.Sprintf("unknown trip style %q", style)}
	}

	var attractions, waypoints, gems []Stop
	for _, s := range in.Stops {
		switch s.Category {
		case CategoryAttraction:
			attractions = append(attractions, s)
		case CategoryWaypoint:
			waypoints = append(waypoints, s)
		case CategoryHiddenGem:
			gems = append(gems, s)
		}
	}

	used := make(map[string]bool)
	plan := &TripPlan{
		Title:     fmt.Sprintf("%s Road Trip: %s to %s", p.corridor.Name(), in.Start.City, in.End.City),
		StartCity: in.Start.Label(),
		EndCity:   in.End.Label(),
		TotalDays: in.FinalDays,
		Style:     style,
		Segments:  make([]DailySegment, len(in.Segments)),
	}

	for i, seg := range in.Segments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		seg.Attractions = p.curate(attractions, seg, limits.attractions, used)
		seg.Waypoints = p.curate(waypoints, seg, limits.waypoints, used)
		seg.HiddenGems = p.curate(gems, seg, limits.hiddenGems, used)
		plan.Segments[i] = seg
		plan.TotalDistance += seg.DistanceMiles
		plan.TotalDrivingTime += seg.DriveTimeHours
	}

	p.logger.Debug().
		Str("title", plan.Title).
		Int("days", plan.TotalDays).
		Int("curated_stops", len(used)).
		Msg("Plan assembled")

	return plan, nil
}

// curate picks up to limit unused stops that fit the segment. A stop must at least
// fall inside the segment's state range or share a city with its endpoints.
func (p *CorridorPlanner) curate(pool []Stop, seg DailySegment, limit int, used map[string]bool) []Stop {
	out := []Stop{}
	for _, ranked := range p.corridor.RankStops(pool, seg) {
		if len(out) >= limit {
			break
		}
		if ranked.Score < relevanceCorridor || used[ranked.Stop.ID] {
			continue
		}
		used[ranked.Stop.ID] = true
		out = append(out, ranked.Stop)
	}
	return out
}
