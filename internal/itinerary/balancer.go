package itinerary

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// BalanceResult is the balancer's answer for one endpoint pair and day count.
type BalanceResult struct {
	IsBalanced       bool
	AverageDriveTime float64
	MaxDriveTime     float64
	ViolationCount   int // Days above the max daily threshold
	RequestedDays    int
	RecommendedDays  int // Day count of Segments
	TotalDistance    float64
	TotalDriveTime   float64
	Segments         []DailySegment
	Stats            BalanceStats
	AdjustmentsMade  []string
}

// Balancer turns endpoints, a stop pool and a day count into a balanced day split.
type Balancer struct {
	config   *Config
	corridor *Corridor
	logger   zerolog.Logger
}

// NewBalancer creates a new drive-time balancer.
func NewBalancer(config *Config, corridor *Corridor) *Balancer {
	if corridor == nil {
		corridor = config.Corridor()
	}
	return &Balancer{
		config:   config,
		corridor: corridor,
		logger:   log.With().Str("component", "drive_time_balancer").Logger(),
	}
}

// pathNode is one overnight candidate on the corridor path with its
// cumulative distance from the start.
type pathNode struct {
	stop     Stop
	cumMiles float64
}

type corridorPath struct {
	nodes []pathNode
}

func (p corridorPath) totalMiles() float64 {
	return p.nodes[len(p.nodes)-1].cumMiles
}

// capacity is the largest day count the path can be split into.
func (p corridorPath) capacity() int {
	return len(p.nodes) - 1
}

// Overnights returns how many destination stops can serve as overnights
// between start and end.
func (b *Balancer) Overnights(start, end Stop, stops []Stop) int {
	return b.buildPath(start, end, stops).capacity() - 1
}

// splitEval is one candidate split with its derived statistics.
type splitEval struct {
	days       int
	segments   []DailySegment
	stats      BalanceStats
	stdDev     float64
	violations int
	extremes   int
}

// CorridorDistance returns the total corridor distance in miles between two stops
// through the destination backbone contained in stops.
func (b *Balancer) CorridorDistance(start, end Stop, stops []Stop) float64 {
	return b.buildPath(start, end, stops).totalMiles()
}

// Balance builds a day split for the requested day count and corrects the day count
// when the split is infeasible or poorly balanced.
func (b *Balancer) Balance(ctx context.Context, start, end Stop, stops []Stop, requestedDays int) (*BalanceResult, error) {
	if requestedDays < 1 {
		return nil, ErrInvalidRequest{Field: "requestedDays", Reason: "must be at least 1"}
	}
	if start.ID == end.ID {
		return nil, ErrInvalidRequest{Field: "endCity", Reason: "must differ from startCity"}
	}

	path := b.buildPath(start, end, stops)
	totalHours := DriveHours(path.totalMiles(), b.config.AverageSpeedMPH)
	upper := min(b.config.MaxDays, path.capacity())

	var adjustments []string
	days := requestedDays
	if days > b.config.MaxDays {
		adjustments = append(adjustments, fmt.Sprintf("capped days from %d to %d, the maximum supported trip length", days, b.config.MaxDays))
		days = b.config.MaxDays
	}
	if days > path.capacity() {
		adjustments = append(adjustments, fmt.Sprintf("reduced days from %d to %d: only %d overnight destinations lie between %s and %s",
			days, path.capacity(), path.capacity()-1, start.Label(), end.Label()))
		days = path.capacity()
	}

	current := b.evaluate(path, days)
	b.logger.Debug().
		Str("start", start.Label()).
		Str("end", end.Label()).
		Int("days", days).
		Float64("total_hours", totalHours).
		Float64("max_hours", current.stats.MaxDriveTime).
		Float64("stddev", current.stdDev).
		Msg("Initial split evaluated")

	if b.needsCorrection(current) {
		rec := clampInt(int(math.Ceil(totalHours/b.config.RecommendTargetHours)), 1, upper)

		switch {
		case current.stats.MaxDriveTime > b.config.MaxDailyHours:
			from := rec
			if days >= rec {
				from = days + 1
			}
			if from > upper {
				adjustments = append(adjustments, fmt.Sprintf("no day count up to %d keeps every day under %.0fh; longest day is %.1fh",
					upper, b.config.MaxDailyHours, current.stats.MaxDriveTime))
				break
			}
			chosen, ok, err := b.ascend(ctx, path, from, upper)
			if err != nil {
				return nil, err
			}
			if !ok && worseThan(chosen, current) {
				chosen = current
			}
			if chosen.days != days {
				adjustments = append(adjustments, fmt.Sprintf("increased days from %d to %d to keep all days under %.0fh",
					days, chosen.days, b.config.MaxDailyHours))
			}
			if !ok {
				adjustments = append(adjustments, fmt.Sprintf("no day count up to %d keeps every day under %.0fh; longest day is %.1fh",
					upper, b.config.MaxDailyHours, chosen.stats.MaxDriveTime))
			}
			current = chosen

		case current.stats.AverageDriveTime < b.config.MinDailyHours && rec < days:
			chosen, ok, err := b.ascend(ctx, path, rec, days-1)
			if err != nil {
				return nil, err
			}
			if ok {
				adjustments = append(adjustments, fmt.Sprintf("reduced days from %d to %d: an average of %.1fh of driving per day is too short",
					days, chosen.days, current.stats.AverageDriveTime))
				current = chosen
			}

		case current.stdDev > b.config.MaxStdDevHours && rec != days:
			candidate := b.evaluate(path, rec)
			if candidate.violations == 0 && candidate.stdDev < current.stdDev {
				adjustments = append(adjustments, fmt.Sprintf("changed days from %d to %d to even out daily drive times", days, rec))
				current = candidate
			}
		}
	}

	result := &BalanceResult{
		IsBalanced:       b.isBalanced(current),
		AverageDriveTime: current.stats.AverageDriveTime,
		MaxDriveTime:     current.stats.MaxDriveTime,
		ViolationCount:   current.violations,
		RequestedDays:    requestedDays,
		RecommendedDays:  current.days,
		TotalDistance:    path.totalMiles(),
		TotalDriveTime:   totalHours,
		Segments:         current.segments,
		Stats:            current.stats,
		AdjustmentsMade:  adjustments,
	}

	b.logger.Debug().
		Int("requested_days", requestedDays).
		Int("recommended_days", result.RecommendedDays).
		Bool("balanced", result.IsBalanced).
		Int("violations", result.ViolationCount).
		Msg("Balancing complete")

	return result, nil
}

func (b *Balancer) needsCorrection(e splitEval) bool {
	return e.stats.MaxDriveTime > b.config.MaxDailyHours ||
		e.stats.AverageDriveTime < b.config.MinDailyHours ||
		e.stdDev > b.config.MaxStdDevHours
}

func (b *Balancer) isBalanced(e splitEval) bool {
	if e.violations > 0 || e.stdDev > b.config.MaxStdDevHours {
		return false
	}
	// A single short day cannot be merged any further.
	return e.days == 1 || e.stats.AverageDriveTime >= b.config.MinDailyHours
}

// ascend evaluates day counts from..to in order and returns the first split whose
// longest day stays within the max daily threshold. When none qualifies it returns
// the split with the fewest extreme days, then the shortest longest day.
func (b *Balancer) ascend(ctx context.Context, path corridorPath, from, to int) (splitEval, bool, error) {
	var best splitEval
	found := false
	for d := from; d <= to; d++ {
		if err := ctx.Err(); err != nil {
			return splitEval{}, false, err
		}
		e := b.evaluate(path, d)
		if e.violations == 0 {
			return e, true, nil
		}
		if !found || worseThan(best, e) {
			best = e
			found = true
		}
	}
	return best, false, nil
}

// worseThan reports whether a is a worse fallback than b.
func worseThan(a, b splitEval) bool {
	if a.extremes != b.extremes {
		return a.extremes > b.extremes
	}
	return a.stats.MaxDriveTime > b.stats.MaxDriveTime
}

func (b *Balancer) evaluate(path corridorPath, days int) splitEval {
	segments := b.segmentsFor(path, splitPath(path, days))
	stats := CalculateBalance(segments)

	e := splitEval{days: days, segments: segments, stats: stats}
	sq := 0.0
	for _, s := range segments {
		d := s.DriveTimeHours - stats.AverageDriveTime
		sq += d * d
		if s.DriveTimeHours > b.config.MaxDailyHours {
			e.violations++
		}
		if s.DriveTimeHours > b.config.ExtremeDailyHours {
			e.extremes++
		}
	}
	e.stdDev = math.Sqrt(sq / float64(len(segments)))
	return e
}

// splitPath picks the end node index of every day. Each pick is the node nearest to
// an even share of the remaining distance, never backward, and always leaves one
// node for each remaining day.
func splitPath(path corridorPath, days int) []int {
	last := path.capacity()
	total := path.totalMiles()
	ends := make([]int, 0, days)
	prev := 0
	for k := 1; k < days; k++ {
		remaining := days - k + 1
		target := path.nodes[prev].cumMiles + (total-path.nodes[prev].cumMiles)/float64(remaining)
		lo := prev + 1
		hi := last - (days - k)
		best := lo
		for i := lo + 1; i <= hi; i++ {
			if math.Abs(path.nodes[i].cumMiles-target) < math.Abs(path.nodes[best].cumMiles-target) {
				best = i
			}
		}
		ends = append(ends, best)
		prev = best
	}
	return append(ends, last)
}

func (b *Balancer) segmentsFor(path corridorPath, ends []int) []DailySegment {
	segments := make([]DailySegment, len(ends))
	prev := 0
	for i, end := range ends {
		from, to := path.nodes[prev], path.nodes[end]
		miles := to.cumMiles - from.cumMiles
		hours := DriveHours(miles, b.config.AverageSpeedMPH)
		segments[i] = DailySegment{
			Day:            i + 1,
			StartCity:      from.stop.Label(),
			EndCity:        to.stop.Label(),
			Destination:    to.stop,
			DistanceMiles:  miles,
			DriveTimeHours: hours,
			Category:       Categorize(hours),
			RouteSection:   routeSection(i+1, len(ends)),
			Attractions:    []Stop{},
			Waypoints:      []Stop{},
			HiddenGems:     []Stop{},
		}
		prev = end
	}
	return segments
}

// buildPath orders the destination stops between the endpoints into a path that
// never doubles back.
func (b *Balancer) buildPath(start, end Stop, stops []Stop) corridorPath {
	startLabel, endLabel := start.Label(), end.Label()
	direct := StopDistance(start, end)
	dir := b.corridor.Direction(startLabel, endLabel)

	seen := map[string]bool{start.ID: true, end.ID: true}
	var candidates []Stop
	for _, s := range stops {
		if !s.IsDestination() || seen[s.ID] {
			continue
		}
		if !b.corridor.IsBetween(s, startLabel, endLabel) {
			continue
		}
		if StopDistance(start, s) >= direct || StopDistance(s, end) >= direct {
			continue
		}
		seen[s.ID] = true
		candidates = append(candidates, s)
	}

	if useSequenceOrder(start, end, candidates) {
		lo, hi := *start.SequenceOrder, *end.SequenceOrder
		asc := lo <= hi
		if !asc {
			lo, hi = hi, lo
		}
		kept := candidates[:0]
		for _, s := range candidates {
			if *s.SequenceOrder > lo && *s.SequenceOrder < hi {
				kept = append(kept, s)
			}
		}
		candidates = kept
		sort.SliceStable(candidates, func(i, j int) bool {
			if asc {
				return *candidates[i].SequenceOrder < *candidates[j].SequenceOrder
			}
			return *candidates[i].SequenceOrder > *candidates[j].SequenceOrder
		})
	} else {
		sort.SliceStable(candidates, func(i, j int) bool {
			ri, rj := b.progressRank(candidates[i], dir), b.progressRank(candidates[j], dir)
			if ri != rj {
				return ri < rj
			}
			di, dj := StopDistance(start, candidates[i]), StopDistance(start, candidates[j])
			if di != dj {
				return di < dj
			}
			return candidates[i].ID < candidates[j].ID
		})
	}

	nodes := []pathNode{{stop: start}}
	lastRank := math.MinInt
	for _, s := range candidates {
		rank := b.progressRank(s, dir)
		if rank < lastRank {
			continue
		}
		lastRank = rank
		prev := nodes[len(nodes)-1]
		nodes = append(nodes, pathNode{stop: s, cumMiles: prev.cumMiles + StopDistance(prev.stop, s)})
	}
	prev := nodes[len(nodes)-1]
	nodes = append(nodes, pathNode{stop: end, cumMiles: prev.cumMiles + StopDistance(prev.stop, end)})

	return corridorPath{nodes: nodes}
}

// progressRank is the state index in travel direction.
func (b *Balancer) progressRank(s Stop, dir int) int {
	idx, _ := b.corridor.StateOf(s.State)
	return idx * dir
}

func useSequenceOrder(start, end Stop, candidates []Stop) bool {
	if start.SequenceOrder == nil || end.SequenceOrder == nil {
		return false
	}
	for _, s := range candidates {
		if s.SequenceOrder == nil {
			return false
		}
	}
	return true
}

// routeSection labels a day by its position in the trip.
func routeSection(day, total int) RouteSection {
	pos := float64(day-1) / float64(total)
	switch {
	case pos < 1.0/3.0:
		return SectionEarly
	case pos < 2.0/3.0:
		return SectionMid
	default:
		return SectionFinal
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
