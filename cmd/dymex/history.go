// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dymex/internal/history"
	"github.com/pdiddy/dymex/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded conversion runs",
	Long: `History lists past conversion runs recorded with convert --history,
newest first. Pass --run with a run ID to show the per-file outcomes of
that run instead.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Int64("run", 0, "show the files of a single run")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open(types.HistoryConfig{Path: viper.GetString("history.path")})
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	if runID, _ := cmd.Flags().GetInt64("run"); runID != 0 {
		jobs, err := store.Jobs(ctx, runID)
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			fmt.Printf("No files recorded for run %d.\n", runID)
			return nil
		}
		for _, j := range jobs {
			if j.Detail != "" {
				fmt.Fprintf(os.Stdout, "%-8s  %s -> %s (%s)\n", j.Status, j.SourcePath, j.OutputPath, j.Detail)
			} else {
				fmt.Fprintf(os.Stdout, "%-8s  %s -> %s\n", j.Status, j.SourcePath, j.OutputPath)
			}
		}
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Runs(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-20s  %-8s  %-6s  %s\n", "ID", "Started", "Rendered", "Failed", "Dir")
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-4d  %-20s  %-8d  %-6d  %s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Rendered, r.Failed, r.Dir)
	}
	return nil
}
