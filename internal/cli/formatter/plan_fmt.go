package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/route66/trip-service/internal/itinerary"
)

// FormatPlan renders a plan with its day table, balance summary and
// optimization steps.
func FormatPlan(result *itinerary.OptimizationResult) string {
	if result == nil || result.FinalPlan == nil {
		return Dim("No plan.") + "\n"
	}
	plan := result.FinalPlan
	var b strings.Builder

	b.WriteString(Header(plan.Title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s  %s  %s\n",
		Bold(fmt.Sprintf("%d days", plan.TotalDays)),
		Miles(plan.TotalDistance),
		Hours(plan.TotalDrivingTime),
		Dim("style "+string(plan.Style)),
	)
	if plan.WasAdjusted && plan.OriginalDays > 0 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("Adjusted from %d requested days", plan.OriginalDays)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	rows := make([][]string, 0, len(plan.Segments))
	for _, seg := range plan.Segments {
		rows = append(rows, []string{
			strconv.Itoa(seg.Day),
			seg.StartCity,
			seg.EndCity,
			Miles(seg.DistanceMiles),
			SeverityStyle(seg.Category.Severity).Render(Hours(seg.DriveTimeHours)),
			string(seg.RouteSection),
			highlights(seg),
		})
	}
	b.WriteString(RenderTable([]string{"DAY", "FROM", "TO", "DIST", "DRIVE", "SECTION", "HIGHLIGHTS"}, rows))
	b.WriteString("\n")

	b.WriteString(formatBalance(plan.DriveTimeBalance))

	if len(result.OptimizationSteps) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Optimization"))
		b.WriteString("\n")
		for _, step := range result.OptimizationSteps {
			b.WriteString(Dim("• ") + step + "\n")
		}
	}
	return b.String()
}

func formatBalance(bal itinerary.DriveTimeBalance) string {
	var b strings.Builder
	b.WriteString(Header("Balance"))
	b.WriteString("\n")

	status := StyleGreen.Render("balanced")
	if !bal.IsBalanced {
		status = StyleYellow.Render("unbalanced")
	}
	fmt.Fprintf(&b, "%s  avg %s  range %s to %s  σ %.2f\n",
		status, Hours(bal.AverageDriveTime), Hours(bal.MinDriveTime), Hours(bal.MaxDriveTime), bal.StdDev)
	fmt.Fprintf(&b, "Quality %s %s  Validation %s %.1f\n",
		GradeStyle(bal.QualityGrade).Render(bal.QualityGrade), Dim(bal.QualityLabel),
		GradeStyle(bal.ValidationGrade).Render(bal.ValidationGrade), bal.ValidationScore)
	for _, s := range bal.Suggestions {
		b.WriteString(Dim("→ ") + s + "\n")
	}
	return b.String()
}

func highlights(seg itinerary.DailySegment) string {
	var names []string
	for _, group := range [][]itinerary.Stop{seg.Attractions, seg.HiddenGems, seg.Waypoints} {
		for _, s := range group {
			names = append(names, s.Name)
		}
	}
	if len(names) == 0 {
		return Dim("-")
	}
	return strings.Join(names, ", ")
}

// FormatFeasibility renders a pre-flight verdict.
func FormatFeasibility(start, end string, f itinerary.FeasibilityResult) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s to %s in %d days", start, end, f.RequestedDays)))
	b.WriteString("\n")

	verdict := StyleGreen.Render("✓ feasible")
	switch {
	case !f.IsFeasible:
		verdict = StyleRed.Render("✗ not feasible")
	case f.IsLong:
		verdict = StyleYellow.Render("! feasible but long")
	}
	fmt.Fprintf(&b, "%s  %s  %s  %s/day\n", verdict, Miles(f.TotalDistance), Hours(f.TotalDriveTime), Hours(f.AverageDailyHours))
	if f.RecommendedDays > 0 {
		fmt.Fprintf(&b, "Recommended: %s\n", Bold(fmt.Sprintf("%d days", f.RecommendedDays)))
	}
	for _, issue := range f.Issues {
		b.WriteString(Dim("→ ") + issue + "\n")
	}
	return b.String()
}

// FormatComparison renders one summary row per compared day count.
func FormatComparison(results []itinerary.DayCountComparison) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		if r.Result == nil || r.Result.FinalPlan == nil {
			continue
		}
		plan := r.Result.FinalPlan
		bal := plan.DriveTimeBalance
		balanced := StyleGreen.Render("yes")
		if !bal.IsBalanced {
			balanced = StyleYellow.Render("no")
		}
		rows = append(rows, []string{
			strconv.Itoa(r.RequestedDays),
			strconv.Itoa(plan.TotalDays),
			Hours(bal.AverageDriveTime),
			Hours(bal.MaxDriveTime),
			balanced,
			GradeStyle(bal.QualityGrade).Render(bal.QualityGrade),
			GradeStyle(bal.ValidationGrade).Render(bal.ValidationGrade),
		})
	}
	return RenderTable([]string{"REQUESTED", "PLANNED", "AVG", "MAX", "BALANCED", "QUALITY", "VALIDATION"}, rows)
}

// FormatStops renders the stop pool.
func FormatStops(stops []itinerary.Stop) string {
	rows := make([][]string, 0, len(stops))
	for _, s := range stops {
		seq := Dim("-")
		if s.SequenceOrder != nil {
			seq = strconv.Itoa(*s.SequenceOrder)
		}
		rows = append(rows, []string{seq, s.ID, s.Name, s.Label(), string(s.Category)})
	}
	return RenderTable([]string{"SEQ", "ID", "NAME", "CITY", "CATEGORY"}, rows)
}
