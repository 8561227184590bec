// Package expr implements the guard language used by story conditions.
//
// The language covers literals (numbers, quoted strings, true, false, null,
// undefined), variable names, one optional prefix operator (! or -) and the
// binary operators || && == === != !== < <= > >= + - * / %, with the usual
// precedence and parentheses. Semantics follow JavaScript loose typing for
// primitives.
//
// There are no tokens for '.', '[', ']' or ',', so property access, indexing
// and calls cannot be written at all. Evaluation is a pure walk of a small
// tree and always terminates.
//
//	ok := expr.Evaluate("coins >= 5 && hasKey", vars)
//
// Evaluate is fail-closed and never errors. EvaluateValue and Validate
// report an *ExpressionError for authoring tools.
package expr
