package domain

import "fmt"

// NormalizeScalar converts a variable value to one of the three kinds a
// story variable may hold: string, float64 or bool.
func NormalizeScalar(v any) (any, error) {
	switch t := v.(type) {
	case string, bool, float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int8:
		return float64(t), nil
	case int16:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint:
		return float64(t), nil
	case uint8:
		return float64(t), nil
	case uint16:
		return float64(t), nil
	case uint32:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	}
	return nil, fmt.Errorf("unsupported value type %T (want string, number or boolean)", v)
}
