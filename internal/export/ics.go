package export

import (
	"fmt"
	"io"
	"strings"

	ics "github.com/arran4/golang-ical"

	"github.com/route66/trip-service/internal/itinerary"
)

const icsProductID = "-//route66//trip-service//EN"

// WriteICS writes plan as an iCalendar file with one all-day event per day.
func WriteICS(w io.Writer, plan *itinerary.TripPlan, opts Options) error {
	opts = opts.withDefaults()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName(plan.Title)

	idBase := strings.TrimSuffix(Filename(plan, FormatICS), "."+string(FormatICS))
	for _, seg := range plan.Segments {
		day := opts.StartDate.AddDate(0, 0, seg.Day-1)

		event := cal.AddEvent(fmt.Sprintf("%s-day-%d@trip-service", idBase, seg.Day))
		event.SetDtStampTime(opts.Now)
		event.SetAllDayStartAt(day)
		event.SetAllDayEndAt(day.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("Day %d: %s to %s", seg.Day, seg.StartCity, seg.EndCity))
		event.SetLocation(seg.EndCity)
		event.SetDescription(describeSegment(seg))
	}

	return cal.SerializeTo(w)
}

func describeSegment(seg itinerary.DailySegment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Drive: %.0f mi, %.1fh (%s)\n", seg.DistanceMiles, seg.DriveTimeHours, seg.Category.Message)
	fmt.Fprintf(&b, "Section: %s", seg.RouteSection)
	writeStops(&b, "Attractions", seg.Attractions)
	writeStops(&b, "Waypoints", seg.Waypoints)
	writeStops(&b, "Hidden gems", seg.HiddenGems)
	return b.String()
}

func writeStops(b *strings.Builder, label string, stops []itinerary.Stop) {
	if len(stops) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s: %s", label, stopNames(stops))
}

func stopNames(stops []itinerary.Stop) string {
	names := make([]string, len(stops))
	for i, s := range stops {
		names[i] = s.Name
	}
	return strings.Join(names, ", ")
}
