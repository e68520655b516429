package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBalance_Empty(t *testing.T) {
	stats := CalculateBalance(nil)

	assert.Equal(t, float64(100), stats.Score)
	assert.Equal(t, "A", stats.QualityGrade)
	assert.Equal(t, []string{SuggestBalanced}, stats.Suggestions)
}

func TestCalculateBalance_EvenDays(t *testing.T) {
	stats := CalculateBalance(segmentsWithHours(6, 6, 6, 6, 6, 6, 6))

	assert.Equal(t, "excellent", stats.QualityLabel)
	assert.Equal(t, "A", stats.QualityGrade)
	assert.Equal(t, float64(100), stats.Score)
	assert.InDelta(t, 6.0, stats.AverageDriveTime, 1e-9)
	assert.InDelta(t, 0.0, stats.Variance, 1e-9)
	assert.Equal(t, []string{SuggestBalanced}, stats.Suggestions)
}

func TestCalculateBalance_Grades(t *testing.T) {
	tests := []struct {
		name  string
		hours []float64
		label string
		grade string
		score float64
	}{
		{"range 1", []float64{5, 6}, "excellent", "A", 80},
		{"range 2", []float64{4, 6}, "good", "B", 60},
		{"range 3", []float64{4, 7}, "fair", "C", 40},
		{"range 4", []float64{3, 7}, "poor", "D", 20},
		{"range 6", []float64{2, 8}, "poor", "F", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := CalculateBalance(segmentsWithHours(tt.hours...))
			assert.Equal(t, tt.label, stats.QualityLabel)
			assert.Equal(t, tt.grade, stats.QualityGrade)
			assert.InDelta(t, tt.score, stats.Score, 1e-9)
		})
	}
}

func TestCalculateBalance_SampleVariance(t *testing.T) {
	stats := CalculateBalance(segmentsWithHours(4, 6, 8))

	// mean 6, squared deviations 4+0+4 over n-1
	assert.InDelta(t, 4.0, stats.Variance, 1e-9)
}

func TestCalculateBalance_Suggestions(t *testing.T) {
	stats := CalculateBalance(segmentsWithHours(1.5, 9))

	assert.Contains(t, stats.Suggestions, SuggestRedistribute)
	assert.Contains(t, stats.Suggestions, SuggestAddDay)
	assert.Contains(t, stats.Suggestions, SuggestMergeDay)
	assert.NotContains(t, stats.Suggestions, SuggestBalanced)
}

func TestCalculateBalance_DoesNotModifySegments(t *testing.T) {
	segments := segmentsWithHours(3, 5)
	before := make([]DailySegment, len(segments))
	copy(before, segments)

	CalculateBalance(segments)

	assert.Equal(t, before, segments)
}
