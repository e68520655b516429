package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/route66/trip-service/internal/cli/formatter"
	"github.com/route66/trip-service/internal/export"
	"github.com/route66/trip-service/internal/itinerary"
)

var (
	planDays      int
	planStyle     string
	planJSON      bool
	planExport    string
	planOutput    string
	planArchive   bool
	planStartDate string

	feasibilityDays int
	feasibilityJSON bool

	compareDays  []int
	compareStyle string
	compareJSON  bool
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan <start-city> <end-city>",
	Short: "Plan a balanced road trip",
	Long: `Plan a trip between two cities on the route. The planner picks overnight
destinations, balances daily drive times and may adjust the number of days
when the request would produce extreme driving days.

Use --export to write the plan as an iCalendar, Excel or JSON file, or
--archive to store it in the configured artifact storage.`,
	Example: `  trip-cli plan Chicago "Santa Monica" --days 10
  trip-cli plan "St. Louis" Amarillo --days 3 --style relaxed --json
  trip-cli plan Chicago "Santa Monica" --days 12 --export ics --start-date 2026-06-01`,
	Args: cobra.ExactArgs(2),
	RunE: runPlan,
}

// feasibilityCmd represents the feasibility command
var feasibilityCmd = &cobra.Command{
	Use:   "feasibility <start-city> <end-city>",
	Short: "Check whether a day count is realistic",
	Example: `  trip-cli feasibility Chicago "Santa Monica" --days 4`,
	Args:    cobra.ExactArgs(2),
	RunE:    runFeasibility,
}

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:     "compare <start-city> <end-city>",
	Short:   "Plan the same trip for several day counts",
	Example: `  trip-cli compare Chicago "Santa Monica" --days 8,10,12`,
	Args:    cobra.ExactArgs(2),
	RunE:    runCompare,
}

func init() {
	rootCmd.AddCommand(planCmd, feasibilityCmd, compareCmd)

	planCmd.Flags().IntVar(&planDays, "days", 0, "Requested number of days")
	planCmd.Flags().StringVar(&planStyle, "style", "balanced", "Trip style: relaxed, balanced or adventurous")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Print the optimization result as JSON")
	planCmd.Flags().StringVar(&planExport, "export", "", "Export format: ics, xlsx or json")
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "", "Export file path (defaults to a name derived from the route)")
	planCmd.Flags().BoolVar(&planArchive, "archive", false, "Store the export in the configured artifact storage")
	planCmd.Flags().StringVar(&planStartDate, "start-date", "", "First travel day for calendar exports (format: YYYY-MM-DD, defaults to tomorrow)")
	_ = planCmd.MarkFlagRequired("days")

	feasibilityCmd.Flags().IntVar(&feasibilityDays, "days", 0, "Requested number of days")
	feasibilityCmd.Flags().BoolVar(&feasibilityJSON, "json", false, "Print the result as JSON")
	_ = feasibilityCmd.MarkFlagRequired("days")

	compareCmd.Flags().IntSliceVar(&compareDays, "days", nil, "Comma separated day counts to compare")
	compareCmd.Flags().StringVar(&compareStyle, "style", "balanced", "Trip style: relaxed, balanced or adventurous")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "Print the results as JSON")
	_ = compareCmd.MarkFlagRequired("days")
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	style, err := itinerary.ParseTripStyle(planStyle)
	if err != nil {
		return err
	}
	opts, err := exportOptions(planStartDate)
	if err != nil {
		return err
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	stops, err := a.Directory.ListStops(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stops: %w", err)
	}

	result, err := a.Builder.Plan(ctx, args[0], args[1], stops, planDays, style)
	if err != nil {
		return err
	}
	plan := result.FinalPlan
	logger.Debug().
		Int("requested_days", planDays).
		Int("days", plan.TotalDays).
		Bool("optimized", result.WasOptimized).
		Msg("Plan ready")

	out := cmd.OutOrStdout()
	if planExport == "" && !planArchive {
		if planJSON {
			return writeJSON(out, result)
		}
		fmt.Fprint(out, formatter.FormatPlan(result))
		return nil
	}

	format := export.FormatJSON
	if planExport != "" {
		if format, err = export.ParseFormat(planExport); err != nil {
			return err
		}
	}

	if planArchive {
		store, err := a.Storage()
		if err != nil {
			return err
		}
		key, err := export.Archive(ctx, store, plan, format, opts)
		if err != nil {
			return err
		}
		logger.Info().Str("key", key).Msg("Plan archived")
		fmt.Fprintln(out, key)
		return nil
	}

	path := planOutput
	if path == "" {
		path = export.Filename(plan, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := export.Write(f, plan, format, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info().Str("path", path).Str("format", string(format)).Msg("Plan exported")
	fmt.Fprintln(out, path)
	return nil
}

func runFeasibility(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	stops, err := a.Directory.ListStops(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stops: %w", err)
	}

	result, err := a.Builder.Feasibility(ctx, args[0], args[1], stops, feasibilityDays)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if feasibilityJSON {
		return writeJSON(out, result)
	}
	fmt.Fprint(out, formatter.FormatFeasibility(args[0], args[1], result))
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	style, err := itinerary.ParseTripStyle(compareStyle)
	if err != nil {
		return err
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	stops, err := a.Directory.ListStops(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stops: %w", err)
	}

	results, err := a.Builder.CompareDayCounts(ctx, args[0], args[1], stops, compareDays, style)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if compareJSON {
		return writeJSON(out, results)
	}
	fmt.Fprint(out, formatter.FormatComparison(results))
	return nil
}

func exportOptions(startDate string) (export.Options, error) {
	if startDate == "" {
		return export.Options{}, nil
	}
	t, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return export.Options{}, fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", startDate)
	}
	return export.Options{StartDate: t}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
