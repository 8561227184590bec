package expr

import (
	"errors"
	"fmt"
)

// Program is a parsed expression that can be evaluated repeatedly.
// A Program is immutable and safe for concurrent use.
type Program struct {
	src  string
	root node
}

// Parse compiles src. The error, if any, is an *ExpressionError.
func Parse(src string) (*Program, error) {
	root, err := parse(src)
	if err != nil {
		return nil, err
	}
	return &Program{src: src, root: root}, nil
}

// Source returns the text the program was parsed from.
func (p *Program) Source() string { return p.src }

// Eval evaluates the program against vars. Absent names read as undefined.
func (p *Program) Eval(vars map[string]any) Value {
	return p.root.eval(vars)
}

// Evaluate reports whether src is truthy under vars.
//
// It never fails: a parse error, or anything else going wrong, yields false.
// This is the entry point for gating choices and branching.
func Evaluate(src string, vars map[string]any) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	p, err := Parse(src)
	if err != nil {
		return false
	}
	return p.Eval(vars).Truthy()
}

// EvaluateValue parses and evaluates src, returning the resulting Value.
func EvaluateValue(src string, vars map[string]any) (v Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = Undefined(), errorAt(0, "evaluation failed: %v", r)
		}
	}()
	p, err := Parse(src)
	if err != nil {
		return Undefined(), err
	}
	return p.Eval(vars), nil
}

// ValidationResult is the outcome of Validate.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Error *ExpressionError `json:"error,omitempty"`
}

// Validate checks that src parses.
func Validate(src string) ValidationResult {
	_, err := Parse(src)
	if err == nil {
		return ValidationResult{Valid: true}
	}
	var exprErr *ExpressionError
	if !errors.As(err, &exprErr) {
		exprErr = &ExpressionError{Message: fmt.Sprint(err)}
	}
	return ValidationResult{Valid: false, Error: exprErr}
}
