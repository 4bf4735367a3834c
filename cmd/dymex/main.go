// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dymex CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

var logger = newLogger(os.Stderr, log.WarnLevel)

// rootCmd is the base command for the dymex CLI.
var rootCmd = &cobra.Command{
	Use:   "dymex",
	Short: "Evaluate math expressions and turn them into diagrams",
	Long: `dymex parses arithmetic expressions over scalars and vectors, evaluates
them, and renders their syntax trees as Mermaid flowcharts. The convert
command drives an external renderer (mmdc by default) to turn a directory
of diagram sources into PDFs.

Expressions come from the command line or from a YAML workbook; diagram
and eval operate on either.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dymex.yaml or ~/.config/dymex/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("dymex")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "dymex"))
		}
	}

	viper.SetEnvPrefix("DYMEX")
	viper.AutomaticEnv()

	viper.SetDefault("render.tool", "mmdc")
	viper.SetDefault("render.pdf_fit", true)
	viper.SetDefault("render.strict", false)
	viper.SetDefault("diagram.out_dir", "mermaid")
	viper.SetDefault("history.enabled", false)
	viper.SetDefault("history.path", "dymex.db")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
