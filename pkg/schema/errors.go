package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError is one violation. Key is a context variable name, or a JSON
// pointer ("/transitions/0/input") when a whole document was checked.
type ValidationError struct {
	Key    string
	Reason string
	Value  any
}

// Pointer reports whether Key addresses a location in a document.
func (e *ValidationError) Pointer() bool {
	return strings.HasPrefix(e.Key, "/")
}

func (e *ValidationError) Error() string {
	where := fmt.Sprintf("field %q", e.Key)
	if e.Pointer() {
		where = "at " + e.Key
	}
	if e.Value == nil {
		return where + ": " + e.Reason
	}
	return fmt.Sprintf("%s: %s (got %T)", where, e.Reason, e.Value)
}

// AggregateError collects every violation found in one pass.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	lines := make([]string, 0, len(e.Errors)+1)
	lines = append(lines, fmt.Sprintf("%d validation errors:", len(e.Errors)))
	for i, err := range e.Errors {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, err))
	}
	return strings.Join(lines, "\n") + "\n"
}

func (e *AggregateError) Unwrap() []error { return e.Errors }

// ValidationErrors flattens err into its violations, or nil when err carries none.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if !errors.As(err, &aggr) {
		return nil
	}
	return aggr.Errors
}
