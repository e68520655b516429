package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/route66/trip-service/internal/cli/formatter"
	"github.com/route66/trip-service/internal/sweepers"
)

// archiveCmd groups commands for archived plan exports
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect and prune archived plan exports",
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived exports",
	Args:  cobra.NoArgs,
	RunE:  runArchiveList,
}

var archivePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete archived exports older than the retention period",
	Args:  cobra.NoArgs,
	RunE:  runArchivePrune,
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveListCmd, archivePruneCmd)

	archivePruneCmd.Flags().Duration("retention", 0, "Override storage.retention (e.g. 168h)")
}

func runArchiveList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := a.Storage()
	if err != nil {
		return err
	}
	keys, err := store.List(ctx, sweepers.ArchivePrefix)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		info, err := store.GetInfo(ctx, key)
		if err != nil {
			return err
		}
		title, days := "-", "-"
		if info.Metadata != nil {
			title = info.Metadata.Title
			days = fmt.Sprintf("%d", info.Metadata.Days)
		}
		rows = append(rows, []string{key, title, days, fmt.Sprintf("%d", info.Size)})
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, formatter.RenderTable([]string{"KEY", "TITLE", "DAYS", "BYTES"}, rows))
	fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("%d archived exports", len(keys))))
	return nil
}

func runArchivePrune(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	retention := cfg.Storage.Retention
	if cmd.Flags().Changed("retention") {
		retention, _ = cmd.Flags().GetDuration("retention")
	}
	if retention <= 0 {
		return fmt.Errorf("retention must be positive")
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := a.Storage()
	if err != nil {
		return err
	}

	sweeper := sweepers.NewArchiveSweeper(store, logger, retention, cfg.Storage.SweepInterval)
	deleted, err := sweeper.PruneExpired(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d archived exports\n", deleted)
	return nil
}
