package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/route66/trip-service/internal/itinerary"
)

func samplePlan() *itinerary.TripPlan {
	return &itinerary.TripPlan{
		Title:            "Route 66 Road Trip: Chicago to St. Louis",
		StartCity:        "Chicago, IL",
		EndCity:          "St. Louis, MO",
		TotalDays:        2,
		OriginalDays:     3,
		WasAdjusted:      true,
		TotalDistance:    300,
		TotalDrivingTime: 6,
		Style:            itinerary.StyleBalanced,
		Segments: []itinerary.DailySegment{
			{
				Day: 1, StartCity: "Chicago, IL", EndCity: "Springfield, IL",
				DistanceMiles: 200, DriveTimeHours: 4,
				Category:     itinerary.Categorize(4),
				RouteSection: itinerary.SectionEarly,
				Attractions:  []itinerary.Stop{{ID: "gemini", Name: "Gemini Giant"}},
			},
			{
				Day: 2, StartCity: "Springfield, IL", EndCity: "St. Louis, MO",
				DistanceMiles: 100, DriveTimeHours: 2,
				Category:     itinerary.Categorize(2),
				RouteSection: itinerary.SectionFinal,
				HiddenGems:   []itinerary.Stop{{ID: "chain", Name: "Chain of Rocks Bridge"}},
			},
		},
		DriveTimeBalance: itinerary.DriveTimeBalance{
			QualityLabel: "Good", QualityGrade: "B",
			ValidationScore: 80, ValidationGrade: "B",
			Suggestions: []string{"Consider a shorter first day"},
		},
	}
}

var fixedOpts = Options{
	StartDate: time.Date(2026, 6, 1, 15, 30, 0, 0, time.UTC),
	Now:       time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC),
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"ics", FormatICS, false},
		{".XLSX", FormatXLSX, false},
		{"json", FormatJSON, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "chicago-il-to-st-louis-mo-2d.ics", Filename(samplePlan(), FormatICS))
}

func TestWriteICS(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, samplePlan(), FormatICS, fixedOpts))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "METHOD:PUBLISH")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20260601")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20260602")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20260603")
	assert.Contains(t, out, "SUMMARY:Day 1")
	assert.Contains(t, out, "Gemini Giant")
	assert.Contains(t, out, "chicago-il-to-st-louis-mo-2d-day-2@trip-service")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, samplePlan(), FormatXLSX, fixedOpts))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(itinerarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Day", rows[0][0])
	assert.Equal(t, []string{"1", "2026-06-01", "Chicago, IL", "Springfield, IL"}, rows[1][:4])
	assert.Equal(t, "Chain of Rocks Bridge", rows[2][10])

	summary, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Title", "Route 66 Road Trip: Chicago to St. Louis"}, summary[0])
	assert.Equal(t, []string{"Requested days", "3"}, summary[len(summary)-2])
	assert.Equal(t, []string{"Suggestion", "Consider a shorter first day"}, summary[len(summary)-1])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, samplePlan(), FormatJSON, Options{}))

	var decoded itinerary.TripPlan
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Segments, 2)
}

func TestWrite_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, nil, FormatICS, Options{}))
	assert.Error(t, Write(&buf, samplePlan(), Format("pdf"), Options{}))
}

func TestOptions_DefaultStartIsNextDay(t *testing.T) {
	opts := Options{Now: time.Date(2026, 5, 20, 23, 0, 0, 0, time.UTC)}.withDefaults()
	assert.Equal(t, time.Date(2026, 5, 21, 0, 0, 0, 0, time.UTC), opts.StartDate)
}
