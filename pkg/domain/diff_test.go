package domain

import (
	"reflect"
	"testing"
)

func TestDiffVariables(t *testing.T) {
	tests := []struct {
		name   string
		before map[string]any
		after  map[string]any
		want   []VariableChange
	}{
		{
			name:   "No Changes",
			before: map[string]any{"a": 1.0},
			after:  map[string]any{"a": 1.0},
			want:   nil,
		},
		{
			name:   "Initial Load (Before is Nil)",
			before: nil,
			after:  map[string]any{"b": "x", "a": 1.0},
			want: []VariableChange{
				{Key: "a", New: 1.0, Added: true},
				{Key: "b", New: "x", Added: true},
			},
		},
		{
			name:   "Modified & Removed",
			before: map[string]any{"gold": 5.0, "torch": true},
			after:  map[string]any{"gold": 7.0},
			want: []VariableChange{
				{Key: "gold", Old: 5.0, New: 7.0},
				{Key: "torch", Old: true, Removed: true},
			},
		},
		{
			name:   "Type Change Counts As Modification",
			before: map[string]any{"n": "1"},
			after:  map[string]any{"n": 1.0},
			want:   []VariableChange{{Key: "n", Old: "1", New: 1.0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiffVariables(tt.before, tt.after)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DiffVariables() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestChangedKeys(t *testing.T) {
	got := ChangedKeys(DiffVariables(map[string]any{"a": 1.0}, map[string]any{"a": 2.0, "z": 0.0}))
	want := []string{"a", "z"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ChangedKeys() = %v, want %v", got, want)
	}
}
