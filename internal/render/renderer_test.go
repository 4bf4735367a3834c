// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/pdiddy/dymex/pkg/types"
)

// mockExecutor records commands and returns configured results.
type mockExecutor struct {
	lookPathErr error
	runErr      error

	ranName string
	ranArgs []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.lookPathErr != nil {
		return "", m.lookPathErr
	}
	return "/usr/bin/" + file, nil
}

func (m *mockExecutor) Run(name string, args []string, stdout, stderr io.Writer) error {
	m.ranName = name
	m.ranArgs = args
	return m.runErr
}

func TestNewMermaidCLIDefaultsTool(t *testing.T) {
	m, err := newMermaidCLI(types.RenderConfig{PDFFit: true}, &mockExecutor{})
	if err != nil {
		t.Fatalf("newMermaidCLI: %v", err)
	}
	if m.Tool() != DefaultTool {
		t.Errorf("Tool() = %q, want %q", m.Tool(), DefaultTool)
	}
}

func TestNewMermaidCLIMissingBinary(t *testing.T) {
	_, err := newMermaidCLI(types.RenderConfig{Tool: "nope"}, &mockExecutor{lookPathErr: errors.New("not found")})
	if err == nil {
		t.Fatal("expected error when the tool is not on PATH")
	}
}

func TestRenderArguments(t *testing.T) {
	tests := []struct {
		name     string
		cfg      types.RenderConfig
		wantArgs []string
	}{
		{
			name:     "pdf fit on",
			cfg:      types.RenderConfig{Tool: "mmdc", PDFFit: true},
			wantArgs: []string{"-i", "in.mmd", "-o", "out.pdf", "--pdfFit"},
		},
		{
			name:     "pdf fit off",
			cfg:      types.RenderConfig{Tool: "mmdc"},
			wantArgs: []string{"-i", "in.mmd", "-o", "out.pdf"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockExecutor{}
			m, err := newMermaidCLI(tt.cfg, exec)
			if err != nil {
				t.Fatalf("newMermaidCLI: %v", err)
			}
			if err := m.Render("in.mmd", "out.pdf"); err != nil {
				t.Fatalf("Render: %v", err)
			}
			if exec.ranName != "mmdc" {
				t.Errorf("ran %q, want mmdc", exec.ranName)
			}
			if !reflect.DeepEqual(exec.ranArgs, tt.wantArgs) {
				t.Errorf("args = %v, want %v", exec.ranArgs, tt.wantArgs)
			}
		})
	}
}

func TestRenderToolFailure(t *testing.T) {
	exec := &mockExecutor{runErr: errors.New("exit status 1")}
	m, err := newMermaidCLI(types.RenderConfig{Tool: "mmdc"}, exec)
	if err != nil {
		t.Fatalf("newMermaidCLI: %v", err)
	}
	if err := m.Render("in.mmd", "out.pdf"); err == nil {
		t.Fatal("expected error from failing tool")
	}
}
