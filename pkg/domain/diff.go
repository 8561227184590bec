package domain

import (
	"cmp"
	"maps"
	"reflect"
	"slices"
)

// VariableChange is one key that differs between two variable maps.
type VariableChange struct {
	Key     string `json:"key"`
	Old     any    `json:"old"`
	New     any    `json:"new"`
	Added   bool   `json:"added,omitempty"`
	Removed bool   `json:"removed,omitempty"`
}

// DiffVariables reports the keys that were added, modified or removed
// between before and after, sorted by key. It returns nil when nothing changed.
func DiffVariables(before, after map[string]any) []VariableChange {
	var changes []VariableChange

	for _, k := range slices.Sorted(maps.Keys(after)) {
		newVal := after[k]
		oldVal, exists := before[k]
		if !exists {
			changes = append(changes, VariableChange{Key: k, New: newVal, Added: true})
			continue
		}
		if !reflect.DeepEqual(oldVal, newVal) {
			changes = append(changes, VariableChange{Key: k, Old: oldVal, New: newVal})
		}
	}

	for _, k := range slices.Sorted(maps.Keys(before)) {
		if _, exists := after[k]; !exists {
			changes = append(changes, VariableChange{Key: k, Old: before[k], Removed: true})
		}
	}

	if len(changes) == 0 {
		return nil
	}
	slices.SortStableFunc(changes, func(a, b VariableChange) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return changes
}

// ChangedKeys returns just the keys of a diff.
func ChangedKeys(changes []VariableChange) []string {
	keys := make([]string, 0, len(changes))
	for _, c := range changes {
		keys = append(keys, c.Key)
	}
	return keys
}
