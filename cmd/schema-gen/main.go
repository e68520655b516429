// Schema Generator
//
// Generates JSON Schema files from the API and planning types so clients can
// validate trip requests and plans without reading the Go source.
//
// Usage:
//
//	go run ./cmd/schema-gen
//
// Output:
//
//	./schemas/trips.json
//	./schemas/itinerary.json
//	./schemas/system.json
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/route66/trip-service/internal/handlers"
	"github.com/route66/trip-service/internal/itinerary"
)

// SchemaGroup represents a group of related schemas
type SchemaGroup struct {
	Name   string
	Types  []any
	Output string
}

var groups = []SchemaGroup{
	{
		Name: "trips",
		Types: []any{
			// Request types
			handlers.PlanRequest{},
			handlers.FeasibilityRequest{},
			handlers.CompareRequest{},
			handlers.ExportRequest{},
			// Response types
			handlers.PlanResponse{},
			handlers.CompareResponse{},
			handlers.StopsResponse{},
		},
		Output: "trips.json",
	},
	{
		Name: "itinerary",
		Types: []any{
			itinerary.Stop{},
			itinerary.DailySegment{},
			itinerary.DriveTimeBalance{},
			itinerary.TripPlan{},
			itinerary.FeasibilityResult{},
			itinerary.OptimizationResult{},
			itinerary.DayCountComparison{},
		},
		Output: "itinerary.json",
	},
	{
		Name: "system",
		Types: []any{
			handlers.HealthResponse{},
			handlers.RefreshResponse{},
			handlers.ErrorResponse{},
		},
		Output: "system.json",
	},
}

func main() {
	outputDir := "./schemas"

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, group := range groups {
		schema := generateGroupSchema(group)
		outputPath := filepath.Join(outputDir, group.Output)

		if err := writeSchema(schema, outputPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", group.Output, err)
			os.Exit(1)
		}

		fmt.Printf("Generated %s\n", outputPath)
	}

	fmt.Println("Schema generation complete!")
}

// generateGroupSchema merges the definitions of every type in a group
func generateGroupSchema(group SchemaGroup) map[string]any {
	reflector := &jsonschema.Reflector{}

	definitions := make(map[string]any)
	for _, t := range group.Types {
		schema := reflector.Reflect(t)
		for name, def := range schema.Definitions {
			definitions[name] = def
		}
	}

	return map[string]any{
		"$schema":     "https://json-schema.org/draft/2020-12/schema",
		"$id":         fmt.Sprintf("https://route66.dev/schemas/%s.json", group.Name),
		"title":       fmt.Sprintf("%s Types", capitalize(group.Name)),
		"description": fmt.Sprintf("JSON Schema for %s types generated from Go structs", group.Name),
		"$defs":       definitions,
	}
}

// writeSchema writes a schema to a JSON file
func writeSchema(schema map[string]any, path string) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
