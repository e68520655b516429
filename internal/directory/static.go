// Package directory provides StopDirectory implementations for the planning engine.
package directory

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/route66/trip-service/internal/itinerary"
)

//go:embed seed/route66.json
var route66Seed []byte

// StaticDirectory serves a fixed, validated stop list.
type StaticDirectory struct {
	stops []itinerary.Stop
}

// NewStaticDirectory creates a directory over the given stops after validating them.
func NewStaticDirectory(stops []itinerary.Stop) (*StaticDirectory, error) {
	if err := ValidateStops(stops); err != nil {
		return nil, err
	}
	out := make([]itinerary.Stop, len(stops))
	copy(out, stops)
	return &StaticDirectory{stops: out}, nil
}

// Route66 returns the embedded Route 66 seed dataset.
func Route66() (*StaticDirectory, error) {
	return parseStatic(route66Seed, "embedded seed")
}

// LoadFile reads a JSON stop list from disk.
func LoadFile(path string) (*StaticDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stop file: %w", err)
	}
	return parseStatic(data, path)
}

func parseStatic(data []byte, source string) (*StaticDirectory, error) {
	var stops []itinerary.Stop
	if err := json.Unmarshal(data, &stops); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", source, err)
	}
	return NewStaticDirectory(stops)
}

// ListStops implements itinerary.StopDirectory. Callers get their own copy.
func (d *StaticDirectory) ListStops(ctx context.Context) ([]itinerary.Stop, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]itinerary.Stop, len(d.stops))
	copy(out, d.stops)
	return out, nil
}

// ValidateStops checks IDs, categories and coordinates of a stop list.
func ValidateStops(stops []itinerary.Stop) error {
	seen := make(map[string]bool, len(stops))
	for i, s := range stops {
		if s.ID == "" {
			return fmt.Errorf("stop %d: missing id", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("stop %s: duplicate id", s.ID)
		}
		seen[s.ID] = true
		if s.City == "" || s.State == "" {
			return fmt.Errorf("stop %s: city and state are required", s.ID)
		}
		if !s.Category.Valid() {
			return fmt.Errorf("stop %s: unknown category %q", s.ID, s.Category)
		}
		if s.Latitude < -90 || s.Latitude > 90 || s.Longitude < -180 || s.Longitude > 180 {
			return fmt.Errorf("stop %s: coordinates out of range", s.ID)
		}
	}
	return nil
}
