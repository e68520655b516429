package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/route66/trip-service/internal/itinerary"
)

const (
	itinerarySheet = "Itinerary"
	summarySheet   = "Summary"
)

var itineraryHeader = []any{
	"Day", "Date", "From", "To", "Miles", "Hours", "Drive", "Section", "Attractions", "Waypoints", "Hidden Gems",
}

// WriteXLSX writes plan as a workbook with an itinerary sheet and a summary sheet.
func WriteXLSX(w io.Writer, plan *itinerary.TripPlan, opts Options) error {
	opts = opts.withDefaults()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", itinerarySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeItinerarySheet(f, plan, opts); err != nil {
		return err
	}
	if err := writeSummarySheet(f, plan); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeItinerarySheet(f *excelize.File, plan *itinerary.TripPlan, opts Options) error {
	if err := f.SetSheetRow(itinerarySheet, "A1", &itineraryHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetRowStyle(itinerarySheet, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, seg := range plan.Segments {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			seg.Day,
			opts.StartDate.AddDate(0, 0, seg.Day-1).Format("2006-01-02"),
			seg.StartCity,
			seg.EndCity,
			seg.DistanceMiles,
			seg.DriveTimeHours,
			string(seg.Category.Bucket),
			string(seg.RouteSection),
			stopNames(seg.Attractions),
			stopNames(seg.Waypoints),
			stopNames(seg.HiddenGems),
		}
		if err := f.SetSheetRow(itinerarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write day %d: %w", seg.Day, err)
		}
	}

	if err := f.SetColWidth(itinerarySheet, "C", "D", 22); err != nil {
		return err
	}
	return f.SetColWidth(itinerarySheet, "I", "K", 40)
}

func writeSummarySheet(f *excelize.File, plan *itinerary.TripPlan) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	b := plan.DriveTimeBalance
	rows := [][]any{
		{"Title", plan.Title},
		{"Start", plan.StartCity},
		{"End", plan.EndCity},
		{"Days", plan.TotalDays},
		{"Total miles", plan.TotalDistance},
		{"Total hours", plan.TotalDrivingTime},
		{"Adjusted", plan.WasAdjusted},
		{"Balanced", b.IsBalanced},
		{"Quality", fmt.Sprintf("%s (%s)", b.QualityLabel, b.QualityGrade)},
		{"Validation", fmt.Sprintf("%.1f (%s)", b.ValidationScore, b.ValidationGrade)},
	}
	if plan.OriginalDays > 0 {
		rows = append(rows, []any{"Requested days", plan.OriginalDays})
	}
	for _, s := range b.Suggestions {
		rows = append(rows, []any{"Suggestion", s})
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return f.SetColWidth(summarySheet, "A", "B", 28)
}

// WriteJSON writes plan as indented JSON.
func WriteJSON(w io.Writer, plan *itinerary.TripPlan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}
