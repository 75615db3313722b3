package schema

import "sort"

// Schema is a map of variable names to their expected types.
// Example: {"approved": Bool(), "amount": Int(), "tags": Slice(String())}
type Schema map[string]Type

// Validate checks that every declared field is present in data with the declared type.
// Fields in data that the schema does not declare are ignored.
// Returns an *AggregateError listing all failures, sorted by field name.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		// No schema = no validation
		return nil
	}

	var errs []error
	for _, name := range sortedKeys(schema) {
		value, exists := data[name]
		if !exists {
			errs = append(errs, &ValidationError{Key: name, Reason: "required"})
			continue
		}
		if err := schema[name].Validate(value); err != nil {
			errs = append(errs, &ValidationError{Key: name, Reason: err.Error(), Value: value})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
