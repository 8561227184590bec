package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError is one field that failed its type.
type ValidationError struct {
	Key    string
	Reason string
	// Value is nil when the field was missing.
	Value any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Key, e.Reason)
}

// AggregateError collects the failures of one Validate call.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:", len(e.Errors))
	for _, err := range e.Errors {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *AggregateError) Unwrap() []error { return e.Errors }

// ValidationErrors returns the individual failures inside err, or nil if
// err does not carry an AggregateError.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
