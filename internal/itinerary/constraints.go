package itinerary

import (
	"fmt"
	"math"
)

// IssueKind labels a validation finding.
type IssueKind string

const (
	IssueExtreme      IssueKind = "EXTREME"
	IssueLong         IssueKind = "LONG"
	IssueShort        IssueKind = "SHORT"
	IssueRedistribute IssueKind = "REDISTRIBUTE"
)

// ValidationIssue is one advisory finding with its suggested fix.
type ValidationIssue struct {
	Day        int       `json:"day,omitempty"` // 0 for plan-wide issues
	Kind       IssueKind `json:"kind"`
	Hours      float64   `json:"hours"`
	Message    string    `json:"message"`
	Suggestion string    `json:"suggestion"`
}

// ValidationReport is the variance/threshold-based quality view of a plan.
type ValidationReport struct {
	IsValid     bool              `json:"isValid"`
	Score       float64           `json:"score"`
	Grade       string            `json:"grade"`
	StdDev      float64           `json:"stdDev"` // Population standard deviation
	MinHours    float64           `json:"minHours"`
	MaxHours    float64           `json:"maxHours"`
	Range       float64           `json:"range"`
	Issues      []ValidationIssue `json:"issues"`
	Suggestions []string          `json:"suggestions"`
}

// Validator re-checks a finished segment list against absolute and soft thresholds.
type Validator struct {
	MinHours     float64
	IdealHours   float64
	MaxHours     float64
	ExtremeHours float64
	MaxStdDev    float64
}

// NewValidator creates a validator from the planning configuration.
func NewValidator(cfg *Config) *Validator {
	return &Validator{
		MinHours:     cfg.MinDailyHours,
		IdealHours:   cfg.IdealDailyHours,
		MaxHours:     cfg.MaxDailyHours,
		ExtremeHours: cfg.ExtremeDailyHours,
		MaxStdDev:    cfg.MaxStdDevHours,
	}
}

// Validate scores the segments and lists every threshold violation.
func (v *Validator) Validate(segments []DailySegment) ValidationReport {
	report := ValidationReport{Issues: []ValidationIssue{}, Suggestions: []string{}}
	if len(segments) == 0 {
		report.Score = 100
		report.Grade = validationGrade(100)
		report.IsValid = true
		return report
	}

	outside := 0
	extreme := 0
	inSweetSpot := 0
	sum := 0.0
	report.MinHours = math.Inf(1)
	report.MaxHours = math.Inf(-1)

	for _, s := range segments {
		h := s.DriveTimeHours
		sum += h
		report.MinHours = math.Min(report.MinHours, h)
		report.MaxHours = math.Max(report.MaxHours, h)

		if h >= 5 && h <= 7 {
			inSweetSpot++
		}

		switch {
		case h > v.MaxHours:
			outside++
			kind := IssueLong
			if h > v.ExtremeHours {
				kind = IssueExtreme
				extreme++
			}
			report.addIssue(ValidationIssue{
				Day:        s.Day,
				Kind:       kind,
				Hours:      h,
				Message:    fmt.Sprintf("Day %d has %.1f hours of driving, above the %.0f hour limit", s.Day, h, v.MaxHours),
				Suggestion: fmt.Sprintf("Add an intermediate overnight stop between %s and %s", s.StartCity, s.EndCity),
			})
		case h < v.MinHours:
			outside++
			report.addIssue(ValidationIssue{
				Day:        s.Day,
				Kind:       IssueShort,
				Hours:      h,
				Message:    fmt.Sprintf("Day %d has only %.1f hours of driving", s.Day, h),
				Suggestion: fmt.Sprintf("Merge day %d with an adjacent day", s.Day),
			})
		}
	}

	mean := sum / float64(len(segments))
	sq := 0.0
	for _, s := range segments {
		d := s.DriveTimeHours - mean
		sq += d * d
	}
	report.StdDev = math.Sqrt(sq / float64(len(segments)))
	report.Range = report.MaxHours - report.MinHours

	if report.Range > 4 {
		report.addIssue(ValidationIssue{
			Kind:       IssueRedistribute,
			Hours:      report.Range,
			Message:    fmt.Sprintf("Drive times span %.1f hours between the shortest and longest day", report.Range),
			Suggestion: "Redistribute overnight stops so daily drives are closer in length",
		})
	}

	score := 100.0
	score -= math.Min(30, report.StdDev*15)
	score -= 8 * float64(outside)
	score -= math.Min(20, report.Range*3)
	score += float64(inSweetSpot) / float64(len(segments)) * 15
	score -= 15 * float64(extreme)
	report.Score = math.Max(0, math.Min(100, score))
	report.Grade = validationGrade(report.Score)
	report.IsValid = len(report.Issues) == 0 && report.StdDev <= v.MaxStdDev

	return report
}

func (r *ValidationReport) addIssue(issue ValidationIssue) {
	r.Issues = append(r.Issues, issue)
	r.Suggestions = append(r.Suggestions, issue.Suggestion)
}

func validationGrade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
