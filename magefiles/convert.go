//go:build mage

package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// Convert builds the CLI and renders every diagram in mermaid/ to PDF.
func Convert() error {
	mg.Deps(Build)

	cmd := exec.Command(filepath.Join(binDir, binName), "convert")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Diagrams builds the CLI and writes diagram sources for every workbook entry.
func Diagrams() error {
	mg.Deps(Build)

	cmd := exec.Command(filepath.Join(binDir, binName), "diagram", "--workbook", "workbook.yaml")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
