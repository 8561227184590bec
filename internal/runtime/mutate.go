package runtime

import (
	"maps"
	"slices"

	"github.com/aretw0/fable/pkg/domain"
)

// applyMutations runs set, then increment, then decrement. Keys within
// each group are applied in sorted order.
func applyMutations(vars map[string]any, n *domain.Variable) {
	for _, k := range slices.Sorted(maps.Keys(n.Set)) {
		vars[k] = n.Set[k]
	}
	for _, k := range slices.Sorted(maps.Keys(n.Increment)) {
		vars[k] = numeric(vars[k]) + n.Increment[k]
	}
	for _, k := range slices.Sorted(maps.Keys(n.Decrement)) {
		vars[k] = numeric(vars[k]) - n.Decrement[k]
	}
}

// numeric reads a variable as a number. Missing and non-numeric values count as 0.
func numeric(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	}
	return 0
}
