package itinerary

import (
	"fmt"
	"math"
)

// Bucket upper bounds in hours. A value equal to a bound belongs to the lower bucket.
const (
	shortUpperHours   = 4.0
	optimalUpperHours = 6.0
	longUpperHours    = 8.0
)

// Categorize classifies a single day's drive time.
func Categorize(hours float64) DriveTimeCategory {
	rounded := roundTo(hours, 1)
	switch {
	case hours <= shortUpperHours:
		return DriveTimeCategory{
			Bucket:   BucketShort,
			Message:  fmt.Sprintf("Short drive of %.1f hours, a relaxed pace with time to explore", rounded),
			Severity: SeverityRelaxed,
		}
	case hours <= optimalUpperHours:
		return DriveTimeCategory{
			Bucket:   BucketOptimal,
			Message:  fmt.Sprintf("Optimal drive of %.1f hours, an ideal balance of road and stops", rounded),
			Severity: SeverityNormal,
		}
	case hours <= longUpperHours:
		return DriveTimeCategory{
			Bucket:   BucketLong,
			Message:  fmt.Sprintf("Long drive of %.1f hours, substantial but manageable", rounded),
			Severity: SeverityElevated,
		}
	default:
		return DriveTimeCategory{
			Bucket:   BucketExtreme,
			Message:  fmt.Sprintf("Extreme drive of %.1f hours, consider splitting it across multiple days", rounded),
			Severity: SeverityCritical,
		}
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
