package expr

import "fmt"

// ExpressionError reports a lexing or parsing failure.
// Position is the byte offset in the source where the problem was found.
type ExpressionError struct {
	Message  string `json:"message"`
	Position int    `json:"position"`
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Message, e.Position)
}

func errorAt(pos int, format string, args ...any) *ExpressionError {
	return &ExpressionError{Message: fmt.Sprintf(format, args...), Position: pos}
}
