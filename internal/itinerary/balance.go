package itinerary

import "math"

// Suggestions emitted by the balance calculator.
const (
	SuggestRedistribute = "Daily drive times vary widely; redistribute stops to even out the days"
	SuggestAddDay       = "At least one day exceeds 8 hours of driving; add a day to the trip"
	SuggestMergeDay     = "At least one day has under 2 hours of driving; merge it with an adjacent day"
	SuggestBalanced     = "Drive times are well balanced across the trip"
)

// BalanceStats is the range-based quality view of a plan.
type BalanceStats struct {
	AverageDriveTime float64
	MinDriveTime     float64
	MaxDriveTime     float64
	Range            float64
	QualityLabel     string
	QualityGrade     string
	Score            float64
	Variance         float64 // Sample variance
	Suggestions      []string
}

// CalculateBalance computes aggregate drive-time statistics for a list of segments.
// It only describes the plan; segments are never modified.
func CalculateBalance(segments []DailySegment) BalanceStats {
	if len(segments) == 0 {
		return BalanceStats{QualityLabel: "excellent", QualityGrade: "A", Score: 100, Suggestions: []string{SuggestBalanced}}
	}

	minH := math.Inf(1)
	maxH := math.Inf(-1)
	sum := 0.0
	for _, s := range segments {
		h := s.DriveTimeHours
		sum += h
		if h < minH {
			minH = h
		}
		if h > maxH {
			maxH = h
		}
	}
	avg := sum / float64(len(segments))
	spread := maxH - minH

	variance := 0.0
	if len(segments) > 1 {
		sq := 0.0
		for _, s := range segments {
			d := s.DriveTimeHours - avg
			sq += d * d
		}
		variance = sq / float64(len(segments)-1)
	}

	return BalanceStats{
		AverageDriveTime: avg,
		MinDriveTime:     minH,
		MaxDriveTime:     maxH,
		Range:            spread,
		QualityLabel:     qualityLabel(spread),
		QualityGrade:     qualityGrade(spread),
		Score:            math.Max(0, 100-spread*20),
		Variance:         variance,
		Suggestions:      balanceSuggestions(spread, minH, maxH),
	}
}

func qualityLabel(spread float64) string {
	switch {
	case spread <= 1:
		return "excellent"
	case spread <= 2:
		return "good"
	case spread <= 3:
		return "fair"
	default:
		return "poor"
	}
}

func qualityGrade(spread float64) string {
	switch {
	case spread <= 1:
		return "A"
	case spread <= 2:
		return "B"
	case spread <= 3:
		return "C"
	case spread <= 4:
		return "D"
	default:
		return "F"
	}
}

func balanceSuggestions(spread, minH, maxH float64) []string {
	var out []string
	if spread > 3 {
		out = append(out, SuggestRedistribute)
	}
	if maxH > 8 {
		out = append(out, SuggestAddDay)
	}
	if minH < 2 {
		out = append(out, SuggestMergeDay)
	}
	if len(out) == 0 {
		out = append(out, SuggestBalanced)
	}
	return out
}
