package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineMiles(t *testing.T) {
	stops := route66Stops()
	chicago := stopByID(stops, "chicago")
	stLouis := stopByID(stops, "st-louis")

	assert.InDelta(t, 260, StopDistance(chicago, stLouis), 8)
	assert.InDelta(t, StopDistance(chicago, stLouis), StopDistance(stLouis, chicago), 1e-9)
	assert.Equal(t, float64(0), StopDistance(chicago, chicago))
}

func TestDriveHours(t *testing.T) {
	assert.InDelta(t, 2.0, DriveHours(100, AverageSpeedMPH), 1e-9)
	assert.Equal(t, float64(0), DriveHours(100, 0))
}

func TestCorridor_StateIndex(t *testing.T) {
	c := DefaultCorridor()

	tests := []struct {
		label string
		index int
		ok    bool
	}{
		{"Chicago, IL", 0, true},
		{"Tulsa, OK", 3, true},
		{"Santa Monica, California", 7, true},
		{"nm", 5, true},
		{"Denver, CO", 0, false},
		{"Nowhere", 0, false},
	}

	for _, tt := range tests {
		idx, ok := c.StateIndex(tt.label)
		assert.Equal(t, tt.ok, ok, tt.label)
		if tt.ok {
			assert.Equal(t, tt.index, idx, tt.label)
		}
	}
}

func TestCorridor_IsBetween(t *testing.T) {
	c := DefaultCorridor()
	galena := Stop{City: "Galena", State: "KS"}

	assert.True(t, c.IsBetween(galena, "Joplin, MO", "Tulsa, OK"))
	assert.True(t, c.IsBetween(galena, "Tulsa, OK", "Joplin, MO"))
	assert.False(t, c.IsBetween(galena, "Tulsa, OK", "Amarillo, TX"))
	assert.False(t, c.IsBetween(Stop{City: "Denver", State: "CO"}, "Chicago, IL", "Santa Monica, CA"))
	assert.False(t, c.IsBetween(galena, "Chicago, IL", "Denver, CO"))
}

func TestCorridor_Direction(t *testing.T) {
	c := DefaultCorridor()

	assert.Equal(t, 1, c.Direction("Chicago, IL", "Santa Monica, CA"))
	assert.Equal(t, -1, c.Direction("Santa Monica, CA", "Chicago, IL"))
	assert.Equal(t, 1, c.Direction("Chicago, IL", "Springfield, IL"))
}

func TestCorridor_Relevance(t *testing.T) {
	c := DefaultCorridor()
	seg := DailySegment{StartCity: "Chicago, IL", EndCity: "St. Louis, MO"}

	tests := []struct {
		name  string
		stop  Stop
		score int
	}{
		{"exact city, corridor, same state", Stop{City: "St. Louis", State: "MO"}, 85},
		{"partial city, corridor, same state", Stop{City: "St. Louis Park", State: "MO"}, 65},
		{"corridor and same state", Stop{City: "Wilmington", State: "IL"}, 35},
		{"outside the segment", Stop{City: "Tulsa", State: "OK"}, 0},
		{"diacritics fold", Stop{City: "Chicagó", State: "IL"}, 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.score, c.Relevance(tt.stop, seg))
		})
	}
}

func TestCorridor_RankStopsStable(t *testing.T) {
	c := DefaultCorridor()
	seg := DailySegment{StartCity: "Joplin, MO", EndCity: "Tulsa, OK"}
	stops := []Stop{
		{ID: "a", City: "Galena", State: "KS"},
		{ID: "b", City: "Baxter Springs", State: "KS"},
		{ID: "c", City: "Tulsa", State: "OK"},
	}

	ranked := c.RankStops(stops, seg)

	require.Len(t, ranked, 3)
	assert.Equal(t, "c", ranked[0].Stop.ID)
	assert.Equal(t, "a", ranked[1].Stop.ID)
	assert.Equal(t, "b", ranked[2].Stop.ID)
	assert.Equal(t, ranked[1].Score, ranked[2].Score)
}

func TestResolveCity(t *testing.T) {
	stops := route66Stops()

	tests := []struct {
		label string
		id    string
		ok    bool
	}{
		{"Chicago, IL", "chicago", true},
		{"  chicago,   il ", "chicago", true},
		{"Chicago, Illinois", "chicago", true},
		{"Springfield, MO", "springfield-mo", true},
		{"Springfield", "springfield-il", true},
		{"Santa Mónica, CA", "santa-monica", true},
		{"Oklahoma City", "oklahoma-city", true},
		{"Atlantis, ZZ", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ResolveCity(tt.label, stops)
		assert.Equal(t, tt.ok, ok, tt.label)
		if tt.ok {
			assert.Equal(t, tt.id, got.ID, tt.label)
		}
	}
}
