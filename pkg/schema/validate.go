package schema

import (
	"maps"
	"slices"
)

// Schema maps field names to their expected types.
type Schema map[string]Type

// Validate checks data against s and reports every failing field, ordered
// by name. Unknown fields are ignored. An empty schema accepts anything.
func Validate(s Schema, data map[string]any) error {
	var errs []error
	for _, key := range slices.Sorted(maps.Keys(s)) {
		typ := s[key]
		value, ok := data[key]
		if !ok {
			if !isOptional(typ) {
				errs = append(errs, &ValidationError{Key: key, Reason: "required"})
			}
			continue
		}
		if err := typ.Validate(value); err != nil {
			errs = append(errs, &ValidationError{Key: key, Reason: err.Error(), Value: value})
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &AggregateError{Errors: errs}
}
