package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/fable"
	"github.com/aretw0/fable/pkg/expr"
)

// ParseVars turns "name=value" pairs into a variable map. Values that look
// like numbers or booleans are typed; everything else stays a string.
func ParseVars(pairs []string) (map[string]any, error) {
	vars := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid variable %q (want name=value)", pair)
		}
		vars[name] = parseScalar(raw)
	}
	return vars, nil
}

func parseScalar(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	return raw
}

// EvalExpression evaluates src against vars and formats the result the
// way it would read in a story.
func EvalExpression(src string, vars map[string]any) (string, error) {
	if res := fable.ValidateExpression(src); !res.Valid {
		return "", describeExprError(src, res.Error)
	}
	v, err := expr.EvaluateValue(src, vars)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// describeExprError points at the failing column under the source.
func describeExprError(src string, err *expr.ExpressionError) error {
	if err == nil {
		return errors.New("invalid expression")
	}
	pos := min(max(err.Position, 0), len(src))
	return fmt.Errorf("%s\n  %s\n  %s^", err.Message, src, strings.Repeat(" ", pos))
}
