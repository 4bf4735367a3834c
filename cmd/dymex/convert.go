// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dymex/internal/history"
	"github.com/pdiddy/dymex/internal/render"
	"github.com/pdiddy/dymex/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [dir]",
	Short: "Render every Mermaid source in a directory to PDF",
	Long: `Convert enumerates the given directory (default: the configured diagram
directory), takes every file ending in .mmd, and invokes the renderer once
per file to produce a sibling .pdf. Files that fail are reported and the
batch continues; the command exits zero regardless unless --strict is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("tool", "", "renderer binary (default: mmdc)")
	convertCmd.Flags().Bool("strict", false, "exit nonzero when any file fails to render")
	convertCmd.Flags().Bool("history", false, "record the run in the history database")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := renderConfigFromFlags(cmd)

	dir := viper.GetString("diagram.out_dir")
	if len(args) > 0 {
		dir = args[0]
	}

	r, err := render.NewMermaidCLI(cfg)
	if err != nil {
		return err
	}
	logger.Debug("starting batch", "dir", dir, "tool", r.Tool())
	start := time.Now()

	result, err := render.ConvertDir(r, dir, os.Stdout)
	if err != nil {
		return err
	}
	logger.Debug("batch done",
		"rendered", result.Rendered, "failed", result.Failed, "elapsed", time.Since(start))

	if historyEnabled(cmd) {
		recordRun(dir, result)
	}

	if cfg.Strict && result.HasFailures() {
		return fmt.Errorf("%d file(s) failed to render", result.Failed)
	}
	return nil
}

// recordRun stores the batch outcome. History is best-effort: a storage
// problem is logged, never turned into a command failure.
func recordRun(dir string, result render.BatchResult) {
	store, err := history.Open(types.HistoryConfig{Path: viper.GetString("history.path")})
	if err != nil {
		logger.Warn("history disabled for this run", "err", err)
		return
	}
	defer store.Close()

	runID, err := store.RecordRun(context.Background(), dir, result)
	if err != nil {
		logger.Warn("recording run failed", "err", err)
		return
	}
	logger.Debug("run recorded", "id", runID)
}

func renderConfigFromFlags(cmd *cobra.Command) types.RenderConfig {
	cfg := types.RenderConfig{
		Tool:   viper.GetString("render.tool"),
		PDFFit: viper.GetBool("render.pdf_fit"),
		Strict: viper.GetBool("render.strict"),
	}
	if tool, _ := cmd.Flags().GetString("tool"); tool != "" {
		cfg.Tool = tool
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict, _ = cmd.Flags().GetBool("strict")
	}
	return cfg
}

func historyEnabled(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("history") {
		enabled, _ := cmd.Flags().GetBool("history")
		return enabled
	}
	return viper.GetBool("history.enabled")
}
