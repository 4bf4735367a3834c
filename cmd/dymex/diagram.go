// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dymex/internal/mermaid"
	"github.com/pdiddy/dymex/internal/workbook"
)

var diagramCmd = &cobra.Command{
	Use:   "diagram [expression]",
	Short: "Write a Mermaid flowchart for an expression",
	Long: `Diagram parses an expression and writes its syntax tree as a Mermaid
flowchart source file. Variables used in the expression are declared with
repeated --var flags.

With --workbook, every entry in the workbook is diagrammed into the output
directory instead; --name restricts it to a single entry.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiagram,
}

func init() {
	diagramCmd.Flags().StringArray("var", nil, "declare a variable name (repeatable)")
	diagramCmd.Flags().StringP("out", "o", "", "output file (default: <out-dir>/expr.mmd)")
	diagramCmd.Flags().String("workbook", "", "diagram entries from a YAML workbook")
	diagramCmd.Flags().String("name", "", "workbook entry to diagram (default: all)")

	rootCmd.AddCommand(diagramCmd)
}

func runDiagram(cmd *cobra.Command, args []string) error {
	outDir := viper.GetString("diagram.out_dir")

	if path, _ := cmd.Flags().GetString("workbook"); path != "" {
		name, _ := cmd.Flags().GetString("name")
		return diagramWorkbook(path, name, outDir)
	}

	if len(args) == 0 {
		return fmt.Errorf("expression required: pass one as an argument or use --workbook")
	}
	variables, _ := cmd.Flags().GetStringArray("var")

	g, err := mermaid.FromExpression(args[0], variables)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		out = filepath.Join(outDir, "expr.mmd")
	}
	if err := g.WriteFile(out); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d nodes, %d edges)\n", out, g.Nodes(), g.Edges())
	return nil
}

func diagramWorkbook(path, name, outDir string) error {
	wb, err := workbook.Read(path)
	if err != nil {
		return err
	}

	entries := wb.Entries
	if name != "" {
		e, ok := wb.Find(name)
		if !ok {
			return fmt.Errorf("workbook has no entry %q", name)
		}
		entries = []workbook.Entry{e}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, e := range entries {
		g, err := mermaid.FromExpression(e.Expression, e.VarNames())
		if err != nil {
			return fmt.Errorf("entry %q: %w", e.Name, err)
		}
		out := filepath.Join(outDir, e.Name+".mmd")
		if err := g.WriteFile(out); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", out)
	}
	return nil
}
