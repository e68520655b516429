package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/route66/trip-service/internal/app"
	"github.com/route66/trip-service/internal/cli/formatter"
	"github.com/route66/trip-service/internal/database"
	"github.com/route66/trip-service/internal/directory"
	"github.com/route66/trip-service/internal/itinerary"
)

var (
	stopsCategory string
	stopsJSON     bool
	seedFile      string
	seedMigrate   bool
)

// stopsCmd groups stop directory commands
var stopsCmd = &cobra.Command{
	Use:   "stops",
	Short: "Inspect and seed the stop directory",
}

var stopsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List stops from the configured directory",
	Example: `  trip-cli stops list --category destination`,
	Args:    cobra.NoArgs,
	RunE:    runStopsList,
}

var stopsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert stops into the database",
	Long: `Upsert the built-in Route 66 stop set, or the stops from --file, into the
database named by DATABASE_URL. Existing stops with the same id are updated.`,
	Example: `  trip-cli stops seed --migrate
  trip-cli stops seed --file ./stops.json`,
	Args: cobra.NoArgs,
	RunE: runStopsSeed,
}

func init() {
	rootCmd.AddCommand(stopsCmd)
	stopsCmd.AddCommand(stopsListCmd, stopsSeedCmd)

	stopsListCmd.Flags().StringVar(&stopsCategory, "category", "", "Only list stops of this category")
	stopsListCmd.Flags().BoolVar(&stopsJSON, "json", false, "Print stops as JSON")

	stopsSeedCmd.Flags().StringVar(&seedFile, "file", "", "JSON file with stops (defaults to the built-in set)")
	stopsSeedCmd.Flags().BoolVar(&seedMigrate, "migrate", false, "Apply pending migrations first")
}

func runStopsList(cmd *cobra.Command, args []string) error {
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
	if stopsCategory != "" {
		category := itinerary.StopCategory(stopsCategory)
		filtered := make([]itinerary.Stop, 0, len(stops))
		for _, s := range stops {
			if s.Category == category {
				filtered = append(filtered, s)
			}
		}
		stops = filtered
	}

	out := cmd.OutOrStdout()
	if stopsJSON {
		return writeJSON(out, stops)
	}
	fmt.Fprint(out, formatter.FormatStops(stops))
	fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("%d stops", len(stops))))
	return nil
}

func runStopsSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var (
		src *directory.StaticDirectory
		err error
	)
	if seedFile != "" {
		src, err = directory.LoadFile(seedFile)
	} else {
		src, err = directory.Route66()
	}
	if err != nil {
		return err
	}
	stops, err := src.ListStops(ctx)
	if err != nil {
		return err
	}

	if seedMigrate {
		dsn, err := databaseURL()
		if err != nil {
			return err
		}
		if err := database.MigrateUp(dsn); err != nil {
			return err
		}
	}

	if err := app.ConnectDatabase(ctx, cfg); err != nil {
		return err
	}
	defer database.Close()

	if err := directory.NewPostgresDirectory(database.Pool()).UpsertStops(ctx, stops); err != nil {
		return err
	}
	logger.Info().Int("count", len(stops)).Msg("Stops seeded")
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d stops\n", len(stops))
	return nil
}
