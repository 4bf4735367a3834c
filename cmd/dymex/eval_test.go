// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"reflect"
	"testing"

	"github.com/pdiddy/dymex/internal/dynmath"
)

func TestParseBindings(t *testing.T) {
	tests := []struct {
		name     string
		bindings []string
		want     dynmath.Bindings
		wantErr  bool
	}{
		{
			name:     "scalar",
			bindings: []string{"x=2.5"},
			want:     dynmath.Bindings{"x": dynmath.Number(2.5)},
		},
		{
			name:     "vector",
			bindings: []string{"v=1,2,3"},
			want:     dynmath.Bindings{"v": dynmath.Vector{1, 2, 3}},
		},
		{
			name:     "vector with spaces",
			bindings: []string{"v=1, 2, 3"},
			want:     dynmath.Bindings{"v": dynmath.Vector{1, 2, 3}},
		},
		{
			name:     "multiple",
			bindings: []string{"x=1", "y=-2"},
			want:     dynmath.Bindings{"x": dynmath.Number(1), "y": dynmath.Number(-2)},
		},
		{
			name:     "missing equals",
			bindings: []string{"x"},
			wantErr:  true,
		},
		{
			name:     "not a number",
			bindings: []string{"x=abc"},
			wantErr:  true,
		},
		{
			name:     "bad vector element",
			bindings: []string{"v=1,two,3"},
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseBindings(tt.bindings)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseBindings(%v) succeeded, want error", tt.bindings)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseBindings(%v): %v", tt.bindings, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseBindings(%v) = %v, want %v", tt.bindings, got, tt.want)
			}
		})
	}
}
