package itinerary

import (
	"fmt"
	"math"
)

// FeasibilityResult is the pre-flight verdict for an endpoint pair and day count.
type FeasibilityResult struct {
	IsFeasible        bool     `json:"isFeasible"`
	IsLong            bool     `json:"isLong"` // Feasible, but the average day exceeds the max daily threshold
	RequestedDays     int      `json:"requestedDays"`
	TotalDistance     float64  `json:"totalDistance"`
	TotalDriveTime    float64  `json:"totalDriveTime"`
	AverageDailyHours float64  `json:"averageDailyHours"`
	RecommendedDays   int      `json:"recommendedDays,omitempty"`
	Issues            []string `json:"issues"`
}

// CheckFeasibility checks a trip with the default thresholds using the straight-line
// distance between the endpoints.
func CheckFeasibility(start, end Stop, requestedDays int) FeasibilityResult {
	return evaluateFeasibility(Defaults(), StopDistance(start, end), requestedDays)
}

func evaluateFeasibility(cfg *Config, miles float64, requestedDays int) FeasibilityResult {
	totalHours := DriveHours(miles, cfg.AverageSpeedMPH)
	result := FeasibilityResult{
		IsFeasible:     true,
		RequestedDays:  requestedDays,
		TotalDistance:  miles,
		TotalDriveTime: totalHours,
		Issues:         []string{},
	}
	rec := max(1, int(math.Ceil(totalHours/cfg.RecommendTargetHours)))

	if requestedDays < 1 {
		result.IsFeasible = false
		result.RecommendedDays = rec
		result.Issues = append(result.Issues, "requested days must be at least 1")
		return result
	}

	result.AverageDailyHours = totalHours / float64(requestedDays)
	switch {
	case result.AverageDailyHours > cfg.ExtremeDailyHours:
		result.IsFeasible = false
		result.RecommendedDays = rec
		result.Issues = append(result.Issues, fmt.Sprintf(
			"%d days averages %.1f hours of driving per day, above the %.0f hour limit; plan at least %d days",
			requestedDays, result.AverageDailyHours, cfg.ExtremeDailyHours, rec))
	case result.AverageDailyHours > cfg.MaxDailyHours:
		result.IsLong = true
		result.RecommendedDays = rec
		result.Issues = append(result.Issues, fmt.Sprintf(
			"%d days averages %.1f hours of driving per day; %d days keeps each day near %.0f hours",
			requestedDays, result.AverageDailyHours, rec, cfg.RecommendTargetHours))
	}
	return result
}
