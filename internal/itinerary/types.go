package itinerary

import (
	"context"
	"fmt"
)

// StopCategory tags what role a stop can play in an itinerary.
type StopCategory string

const (
	CategoryDestination StopCategory = "destination" // Overnight city candidates
	CategoryAttraction  StopCategory = "attraction"
	CategoryWaypoint    StopCategory = "waypoint"
	CategoryHiddenGem   StopCategory = "hidden_gem"
)

// Valid reports whether the category is one of the known tags.
func (c StopCategory) Valid() bool {
	switch c {
	case CategoryDestination, CategoryAttraction, CategoryWaypoint, CategoryHiddenGem:
		return true
	}
	return false
}

// Stop is a point of interest or destination candidate.
// Stops are reference data owned by the directory; the engine only reads them.
type Stop struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	City          string       `json:"city"`
	State         string       `json:"state"` // Two-letter state code
	Latitude      float64      `json:"latitude"`
	Longitude     float64      `json:"longitude"`
	Category      StopCategory `json:"category"`
	SequenceOrder *int         `json:"sequenceOrder,omitempty"` // Only set for pre-ordered backbones
}

// Label returns the "City, ST" form used for segment endpoints.
func (s Stop) Label() string {
	if s.State == "" {
		return s.City
	}
	return fmt.Sprintf("%s, %s", s.City, s.State)
}

// IsDestination reports whether the stop can end a day.
func (s Stop) IsDestination() bool {
	return s.Category == CategoryDestination
}

// DriveTimeBucket is the qualitative class of a single day's drive.
type DriveTimeBucket string

const (
	BucketShort   DriveTimeBucket = "short"
	BucketOptimal DriveTimeBucket = "optimal"
	BucketLong    DriveTimeBucket = "long"
	BucketExtreme DriveTimeBucket = "extreme"
)

// Severity is a color-neutral tag that renderers map to their own palette.
type Severity string

const (
	SeverityRelaxed  Severity = "relaxed"
	SeverityNormal   Severity = "normal"
	SeverityElevated Severity = "elevated"
	SeverityCritical Severity = "critical"
)

// DriveTimeCategory is the result of categorizing one day's drive time.
type DriveTimeCategory struct {
	Bucket   DriveTimeBucket `json:"bucket"`
	Message  string          `json:"message"`
	Severity Severity        `json:"severity"`
}

// RouteSection labels where a day falls within the trip.
type RouteSection string

const (
	SectionEarly RouteSection = "Early"
	SectionMid   RouteSection = "Mid"
	SectionFinal RouteSection = "Final"
)

// TripStyle is an optional hint that shapes how many curated stops each day gets.
type TripStyle string

const (
	StyleRelaxed     TripStyle = "relaxed"
	StyleBalanced    TripStyle = "balanced"
	StyleAdventurous TripStyle = "adventurous"
)

// ParseTripStyle maps a user supplied string to a TripStyle. Empty defaults to balanced.
func ParseTripStyle(s string) (TripStyle, error) {
	switch TripStyle(s) {
	case "":
		return StyleBalanced, nil
	case StyleRelaxed, StyleBalanced, StyleAdventurous:
		return TripStyle(s), nil
	}
	return "", ErrInvalidRequest{Field: "style", Reason: fmt.Sprintf("unknown trip style %q", s)}
}

// DailySegment is one day of the itinerary.
type DailySegment struct {
	Day            int               `json:"day"`
	StartCity      string            `json:"startCity"`
	EndCity        string            `json:"endCity"`
	Destination    Stop              `json:"destination"`
	DistanceMiles  float64           `json:"distanceMiles"`
	DriveTimeHours float64           `json:"driveTimeHours"`
	Category       DriveTimeCategory `json:"driveTimeCategory"`
	RouteSection   RouteSection      `json:"routeSection"`
	Attractions    []Stop            `json:"attractions"`
	Waypoints      []Stop            `json:"waypoints"`
	HiddenGems     []Stop            `json:"hiddenGems"`
}

// DriveTimeBalance is the merged quality summary attached to a plan.
// BalanceScore/QualityGrade come from the range-based calculator,
// ValidationScore/ValidationGrade from the constraints validator.
type DriveTimeBalance struct {
	IsBalanced       bool     `json:"isBalanced"`
	AverageDriveTime float64  `json:"averageDriveTime"`
	MinDriveTime     float64  `json:"minDriveTime"`
	MaxDriveTime     float64  `json:"maxDriveTime"`
	QualityLabel     string   `json:"qualityLabel"`
	QualityGrade     string   `json:"qualityGrade"`
	BalanceScore     float64  `json:"balanceScore"`
	ValidationScore  float64  `json:"validationScore"`
	ValidationGrade  string   `json:"validationGrade"`
	Variance         float64  `json:"variance"`
	StdDev           float64  `json:"stdDev"`
	Suggestions      []string `json:"suggestions"`
}

// TripPlan is the root aggregate produced by one planning run.
// It is assembled once and treated as read-only by every consumer.
type TripPlan struct {
	Title            string           `json:"title"`
	StartCity        string           `json:"startCity"`
	EndCity          string           `json:"endCity"`
	TotalDays        int              `json:"totalDays"`
	OriginalDays     int              `json:"originalDays,omitempty"` // Set only when adjusted
	TotalDistance    float64          `json:"totalDistance"`
	TotalDrivingTime float64          `json:"totalDrivingTime"`
	Segments         []DailySegment   `json:"segments"`
	WasAdjusted      bool             `json:"wasAdjusted"`
	Style            TripStyle        `json:"style"`
	DriveTimeBalance DriveTimeBalance `json:"driveTimeBalance"`
}

// StopDirectory supplies the candidate stop pool.
// The engine takes one snapshot per planning call and never writes back.
type StopDirectory interface {
	ListStops(ctx context.Context) ([]Stop, error)
}
