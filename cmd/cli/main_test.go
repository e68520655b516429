package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	planJSON, planExport, planOutput, planArchive, planStartDate = false, "", "", false, ""
	planStyle = "balanced"
	stopsCategory, stopsJSON = "", false
	feasibilityJSON, compareJSON = false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPlanCommand(t *testing.T) {
	out, err := execute(t, "plan", "Chicago, IL", "St. Louis, MO", "--days", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "ROAD TRIP")
	assert.Contains(t, out, "BALANCE")
}

func TestPlanCommand_UsesConfiguredLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")

	_, err := execute(t, "plan", "Chicago, IL", "St. Louis, MO", "--days", "2")
	require.NoError(t, err)

	assert.Equal(t, zerolog.WarnLevel, log.Logger.GetLevel())
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}

func TestPlanCommand_JSON(t *testing.T) {
	out, err := execute(t, "plan", "Chicago, IL", "St. Louis, MO", "--days", "2", "--json")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Contains(t, result, "finalPlan")
}

func TestPlanCommand_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.ics")
	out, err := execute(t, "plan", "Chicago, IL", "St. Louis, MO", "--days", "2",
		"--export", "ics", "--output", path, "--start-date", "2026-06-01")
	require.NoError(t, err)
	assert.Equal(t, path, strings.TrimSpace(out))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VCALENDAR")
	assert.Contains(t, string(data), "20260601")
}

func TestPlanCommand_Errors(t *testing.T) {
	_, err := execute(t, "plan", "Chicago, IL", "St. Louis, MO", "--days", "2", "--style", "reckless")
	assert.ErrorContains(t, err, "unknown trip style")

	_, err = execute(t, "plan", "Chicago, IL", "Atlantis", "--days", "2")
	assert.Error(t, err)

	_, err = execute(t, "plan", "Chicago, IL", "St. Louis, MO", "--days", "2", "--export", "pdf")
	assert.ErrorContains(t, err, "unsupported export format")
}

func TestFeasibilityCommand(t *testing.T) {
	out, err := execute(t, "feasibility", "Chicago, IL", "Santa Monica, CA", "--days", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "not feasible")
}

func TestCompareCommand(t *testing.T) {
	out, err := execute(t, "compare", "Chicago, IL", "St. Louis, MO", "--days", "1,2")
	require.NoError(t, err)
	assert.Contains(t, out, "REQUESTED")
}

func TestStopsListCommand(t *testing.T) {
	out, err := execute(t, "stops", "list", "--category", "destination")
	require.NoError(t, err)

	assert.Contains(t, out, "Chicago, IL")
	assert.NotContains(t, out, "attraction")
}

func TestExportOptions(t *testing.T) {
	opts, err := exportOptions("")
	require.NoError(t, err)
	assert.True(t, opts.StartDate.IsZero())

	opts, err = exportOptions("2026-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), opts.StartDate)

	_, err = exportOptions("06/01/2026")
	assert.ErrorContains(t, err, "YYYY-MM-DD")
}

func TestArchiveCommands(t *testing.T) {
	t.Setenv("STORAGE_PATH", t.TempDir())

	out, err := execute(t, "plan", "Chicago, IL", "St. Louis, MO", "--days", "2", "--archive", "--export", "xlsx")
	require.NoError(t, err)
	key := strings.TrimSpace(out)
	assert.True(t, strings.HasPrefix(key, "plans/"))
	assert.True(t, strings.HasSuffix(key, ".xlsx"))

	out, err = execute(t, "archive", "list")
	require.NoError(t, err)
	assert.Contains(t, out, key)
	assert.Contains(t, out, "1 archived exports")

	out, err = execute(t, "archive", "prune")
	require.NoError(t, err)
	assert.Contains(t, out, "Pruned 0 archived exports")
}
