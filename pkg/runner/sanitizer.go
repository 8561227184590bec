package runner

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxInputSize is 4KB (conservative default).
const DefaultMaxInputSize = 4096

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput cleans player input by enforcing a size limit (limit <= 0
// means DefaultMaxInputSize), validating UTF-8 and stripping control
// characters other than newline, tab and carriage return.
func SanitizeInput(input string, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultMaxInputSize
	}
	// Oversized input is rejected, never truncated.
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	// Fast path: if no control chars, return as is.
	if !strings.ContainsFunc(input, isUnsafeControl) {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !isUnsafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isUnsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}
