// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dymex/internal/dynmath"
	"github.com/pdiddy/dymex/internal/expr"
	"github.com/pdiddy/dymex/internal/workbook"
)

var evalCmd = &cobra.Command{
	Use:   "eval [expression]",
	Short: "Evaluate an expression",
	Long: `Eval parses and evaluates an expression. Variables are bound with
repeated --var flags: a plain number binds a scalar, a comma-separated
list binds a vector.

  dymex eval --var x=2 --var v=1,2,3 "x * sum(v)"

With --workbook, every entry in the workbook is evaluated instead; --name
restricts it to a single entry.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringArray("var", nil, "bind a variable: name=number or name=n1,n2,... (repeatable)")
	evalCmd.Flags().String("workbook", "", "evaluate entries from a YAML workbook")
	evalCmd.Flags().String("name", "", "workbook entry to evaluate (default: all)")

	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	if path, _ := cmd.Flags().GetString("workbook"); path != "" {
		name, _ := cmd.Flags().GetString("name")
		return evalWorkbook(path, name)
	}

	if len(args) == 0 {
		return fmt.Errorf("expression required: pass one as an argument or use --workbook")
	}

	bindings, _ := cmd.Flags().GetStringArray("var")
	vars, err := parseBindings(bindings)
	if err != nil {
		return err
	}

	result, err := evalExpression(args[0], vars)
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}

func evalExpression(expression string, vars dynmath.Bindings) (dynmath.Value, error) {
	ev, err := dynmath.NewEvaluator(expression, vars.Names())
	if err != nil {
		// Tokenizer errors carry a caret rendering worth showing.
		var tokErr *expr.TokenizeError
		if errors.As(err, &tokErr) {
			return nil, fmt.Errorf("%s", tokErr.UserMessage(expression))
		}
		return nil, err
	}
	return ev.Evaluate(vars)
}

func evalWorkbook(path, name string) error {
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

	for _, e := range entries {
		result, err := evalExpression(e.Expression, e.Bindings())
		if err != nil {
			return fmt.Errorf("entry %q: %w", e.Name, err)
		}
		fmt.Printf("%s = %s\n", e.Name, result)
	}
	return nil
}

// parseBindings turns --var values into evaluation bindings.
func parseBindings(bindings []string) (dynmath.Bindings, error) {
	vars := make(dynmath.Bindings, len(bindings))
	for _, b := range bindings {
		name, value, ok := strings.Cut(b, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid binding %q: expected name=value", b)
		}

		parts := strings.Split(value, ",")
		if len(parts) == 1 {
			x, err := strconv.ParseFloat(parts[0], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid value for %s: %q is not a number", name, parts[0])
			}
			vars[name] = dynmath.Number(x)
			continue
		}

		vec := make(dynmath.Vector, len(parts))
		for i, p := range parts {
			x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid value for %s: %q is not a number", name, p)
			}
			vec[i] = x
		}
		vars[name] = vec
	}
	return vars, nil
}
