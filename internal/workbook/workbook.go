// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workbook reads and writes expression workbooks: YAML files listing
// named expressions with their input values. A workbook lets a user keep a
// set of formulas on disk and evaluate or diagram them in one command.
package workbook

import (
	"fmt"
	"os"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dymex/internal/dynmath"
)

// Workbook is the on-disk representation of a set of expressions.
type Workbook struct {
	Entries []Entry `yaml:"entries"`
}

// Entry is one named expression and the values bound to its variables.
// Variables lists names that appear in the expression without a value;
// Scalars and Vectors bind values to names.
type Entry struct {
	Name       string               `yaml:"name"`
	Expression string               `yaml:"expression"`
	Variables  []string             `yaml:"variables,omitempty"`
	Scalars    map[string]float64   `yaml:"scalars,omitempty"`
	Vectors    map[string][]float64 `yaml:"vectors,omitempty"`
}

// VarNames returns the union of declared and bound variable names, sorted.
func (e Entry) VarNames() []string {
	seen := make(map[string]bool)
	for _, name := range e.Variables {
		seen[name] = true
	}
	for name := range e.Scalars {
		seen[name] = true
	}
	for name := range e.Vectors {
		seen[name] = true
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bindings converts the entry's scalar and vector values into evaluation
// bindings.
func (e Entry) Bindings() dynmath.Bindings {
	vars := make(dynmath.Bindings, len(e.Scalars)+len(e.Vectors))
	for name, x := range e.Scalars {
		vars[name] = dynmath.Number(x)
	}
	for name, xs := range e.Vectors {
		vars[name] = dynmath.Vector(xs)
	}
	return vars
}

// Find returns the entry with the given name.
func (w *Workbook) Find(name string) (Entry, bool) {
	for _, e := range w.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Read loads a workbook from a YAML file.
func Read(path string) (*Workbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workbook: %w", err)
	}
	var wb Workbook
	if err := yaml.Unmarshal(data, &wb); err != nil {
		return nil, fmt.Errorf("parsing workbook: %w", err)
	}
	for i, e := range wb.Entries {
		if e.Name == "" {
			return nil, fmt.Errorf("workbook entry %d has no name", i)
		}
		if e.Expression == "" {
			return nil, fmt.Errorf("workbook entry %q has no expression", e.Name)
		}
	}
	return &wb, nil
}

// Write saves the workbook to a YAML file.
func Write(path string, wb *Workbook) error {
	data, err := yaml.Marshal(wb)
	if err != nil {
		return fmt.Errorf("marshaling workbook: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
