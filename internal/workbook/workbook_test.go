// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dymex/internal/dynmath"
)

const sampleWorkbook = `entries:
  - name: gaussian
    expression: exp(-x*x / 2) / sqrt(2 * pi)
    scalars:
      x: 0.5
  - name: normalized
    expression: (v - avg(v)) / std(v)
    vectors:
      v: [1.0, 2.0, 3.0]
  - name: template
    expression: a + b
    variables: [a, b]
`

func TestReadWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleWorkbook), 0o644))

	wb, err := Read(path)
	require.NoError(t, err)
	require.Len(t, wb.Entries, 3)

	e, ok := wb.Find("gaussian")
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, e.VarNames())

	vars := e.Bindings()
	assert.Equal(t, dynmath.Number(0.5), vars["x"])
}

func TestEntryVarNamesUnion(t *testing.T) {
	e := Entry{
		Variables: []string{"c", "a"},
		Scalars:   map[string]float64{"b": 1},
		Vectors:   map[string][]float64{"a": {1, 2}},
	}
	assert.Equal(t, []string{"a", "b", "c"}, e.VarNames())
}

func TestWorkbookEvaluates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleWorkbook), 0o644))

	wb, err := Read(path)
	require.NoError(t, err)

	e, ok := wb.Find("normalized")
	require.True(t, ok)

	ev, err := dynmath.NewEvaluator(e.Expression, e.VarNames())
	require.NoError(t, err)
	result, err := ev.Evaluate(e.Bindings())
	require.NoError(t, err)

	vec, ok := result.(dynmath.Vector)
	require.True(t, ok)
	require.Len(t, vec, 3)
	assert.InDelta(t, 0.0, vec[1], 1e-12)
}

func TestReadWorkbookValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "missing name",
			content: "entries:\n  - expression: 1 + 1\n",
			wantMsg: "has no name",
		},
		{
			name:    "missing expression",
			content: "entries:\n  - name: empty\n",
			wantMsg: "has no expression",
		},
		{
			name:    "not yaml",
			content: "{{{",
			wantMsg: "parsing workbook",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "book.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Read(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	wb := &Workbook{Entries: []Entry{
		{Name: "sum", Expression: "a + b", Scalars: map[string]float64{"a": 1, "b": 2}},
	}}

	path := filepath.Join(t.TempDir(), "book.yaml")
	require.NoError(t, Write(path, wb))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, wb.Entries, got.Entries)
}
