// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render drives an external diagram renderer over directories of
// Mermaid sources, turning each .mmd file into a sibling .pdf.
package render

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/pdiddy/dymex/pkg/types"
)

// DefaultTool is the renderer binary used when none is configured.
const DefaultTool = "mmdc"

// Renderer converts a single diagram source file into an output file.
type Renderer interface {
	// Render reads the diagram at src and writes the result to dst.
	Render(src, dst string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec = &osExecutor{}

// MermaidCLI renders diagrams by invoking the mermaid-cli binary (or a
// compatible tool) once per file. The tool's stdout is discarded; its stderr
// passes through so renderer diagnostics stay visible.
type MermaidCLI struct {
	tool   string
	pdfFit bool
	exec   executor
}

// NewMermaidCLI builds a renderer from cfg, verifying that the tool binary
// is on PATH.
func NewMermaidCLI(cfg types.RenderConfig) (*MermaidCLI, error) {
	return newMermaidCLI(cfg, defaultExec)
}

func newMermaidCLI(cfg types.RenderConfig, exec executor) (*MermaidCLI, error) {
	tool := cfg.Tool
	if tool == "" {
		tool = DefaultTool
	}
	if _, err := exec.LookPath(tool); err != nil {
		return nil, fmt.Errorf("renderer %q not found on PATH: %w", tool, err)
	}
	return &MermaidCLI{tool: tool, pdfFit: cfg.PDFFit, exec: exec}, nil
}

// Tool returns the binary name the renderer invokes.
func (m *MermaidCLI) Tool() string { return m.tool }

// Render invokes the tool as "<tool> -i src -o dst --pdfFit".
func (m *MermaidCLI) Render(src, dst string) error {
	args := []string{"-i", src, "-o", dst}
	if m.pdfFit {
		args = append(args, "--pdfFit")
	}
	if err := m.exec.Run(m.tool, args, io.Discard, os.Stderr); err != nil {
		return fmt.Errorf("rendering %s with %s: %w", src, m.tool, err)
	}
	return nil
}
