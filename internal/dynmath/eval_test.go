// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dynmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluate(t *testing.T, expression string, vars Bindings) Value {
	t.Helper()
	ev, err := NewEvaluator(expression, vars.Names())
	require.NoError(t, err, "NewEvaluator(%q)", expression)
	result, err := ev.Evaluate(vars)
	require.NoError(t, err, "Evaluate(%q)", expression)
	return result
}

func scalar(t *testing.T, v Value) float64 {
	t.Helper()
	x, err := v.Number()
	require.NoError(t, err, "expected a scalar result")
	return x
}

func TestEvaluateBinaryOps(t *testing.T) {
	vars := Bindings{"a": Number(2), "b": Number(1), "c": Number(3)}
	result := evaluate(t, "(1.0 + (a - b)*c) / 2", vars)
	assert.Equal(t, 2.0, scalar(t, result))
}

func TestEvaluateTrigIdentity(t *testing.T) {
	vars := Bindings{"x": Number(0.12345)}
	result := evaluate(t, "cos(pi * (sin(x)^2 + cos(x)^2) / 2)", vars)
	assert.InDelta(t, 0.0, scalar(t, result), 1e-10)
}

func TestEvaluateVariadic(t *testing.T) {
	vars := Bindings{
		"a": Number(10),
		"v": Vector{-3.0, -1.0, 0.0, 2.0},
	}
	result := evaluate(t, "min(a, max(5.0, max(abs(v))**2))", vars)
	assert.Equal(t, 9.0, scalar(t, result))
}

func TestEvaluateNestedPow(t *testing.T) {
	vars := Bindings{"x": Number(3), "y": Number(2), "z": Number(2)}
	result := evaluate(t, "2**(((x**y)**z)**0.0)", vars)
	assert.Equal(t, 2.0, scalar(t, result))
}

func TestEvaluateNestedTrig(t *testing.T) {
	result := evaluate(t, "cos(pi/2 + sin(1 + cos(sin(pi/2)*pi)))", Bindings{})
	assert.InDelta(t, 0.0, scalar(t, result), 1e-10)
}

func TestEvaluateVectorBroadcast(t *testing.T) {
	vars := Bindings{
		"a": Number(2),
		"b": Number(1),
		"x": Vector{1.0, 2.0, 3.0},
	}
	result := evaluate(t, "a*x + b", vars)

	vec, ok := result.(Vector)
	require.True(t, ok, "expected vector result, got %s", result.TypeName())
	assert.Equal(t, Vector{3.0, 5.0, 7.0}, vec)
}

func TestEvaluateVectorStats(t *testing.T) {
	vars := Bindings{
		"v": Vector{
			0.16126227, 0.55013359, 0.89688053, 0.58357566, 0.35384424,
			0.98168083, 0.67449156, 0.62165282, 0.21484945, 0.59141298,
		},
	}
	result := evaluate(t, "std(v) / avg(v)", vars)
	assert.InDelta(t, 0.4459756077414119, scalar(t, result), 1e-9)
}

func TestEvaluateIndexing(t *testing.T) {
	vars := Bindings{"v": Vector{1.0, 2.0, 3.0, 10.0}}
	result := evaluate(t, "v[-1] - v[0]", vars)
	assert.Equal(t, 9.0, scalar(t, result))
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		vars       Bindings
		wantMsg    string
	}{
		{
			name:       "unbound variable",
			expression: "x + 1",
			vars:       Bindings{"x": nil},
			wantMsg:    "no bound value",
		},
		{
			name:       "vector length mismatch",
			expression: "a + b",
			vars:       Bindings{"a": Vector{1, 2}, "b": Vector{1, 2, 3}},
			wantMsg:    "length mismatch",
		},
		{
			name:       "vector index out of range",
			expression: "v[7]",
			vars:       Bindings{"v": Vector{1, 2}},
			wantMsg:    "out of range",
		},
		{
			name:       "non-integer index",
			expression: "v[0.5]",
			vars:       Bindings{"v": Vector{1, 2}},
			wantMsg:    "integer",
		},
		{
			name:       "slice range unsupported",
			expression: "v[0:-1]",
			vars:       Bindings{"v": Vector{1, 2, 3}},
			wantMsg:    "slice ranges",
		},
		{
			name:       "mixed variadic arguments",
			expression: "min(v, 1)",
			vars:       Bindings{"v": Vector{1, 2}},
			wantMsg:    "invalid arguments",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := tt.vars
			if tt.name == "unbound variable" {
				// Declared but not bound.
				vars = Bindings{}
			}
			ev, err := NewEvaluator(tt.expression, tt.vars.Names())
			require.NoError(t, err)
			_, err = ev.Evaluate(vars)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestReduceSingleScalar(t *testing.T) {
	// A single scalar argument behaves like a one-element vector.
	got, err := Std([]Value{Number(5)})
	require.NoError(t, err)
	assert.Equal(t, Number(0), got)

	got, err = Min([]Value{Number(5)})
	require.NoError(t, err)
	assert.Equal(t, Number(5), got)
}

func TestReduceZeroArgs(t *testing.T) {
	_, err := Max(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one argument")
}

func TestNumberFormatting(t *testing.T) {
	assert.Equal(t, "2", Number(2).String())
	assert.Equal(t, "1.23", Number(1.23).String())
	assert.Equal(t, "[1 2.5 3]", Vector{1, 2.5, 3}.String())
}

func TestConstantsAreClose(t *testing.T) {
	result := evaluate(t, "sqrt2 * sqrt2", Bindings{})
	assert.InDelta(t, 2.0, scalar(t, result), 1e-12)
	result = evaluate(t, "e", Bindings{})
	assert.Equal(t, math.E, scalar(t, result))
}
