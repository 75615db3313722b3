package schema

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed net.schema.json
var defaultDocumentSchema []byte

// DocumentSchema is a compiled JSON Schema for raw net documents.
type DocumentSchema struct {
	schema *openapi3.Schema
}

// DefaultDocumentSchema returns the embedded schema of the net document format.
func DefaultDocumentSchema() *DocumentSchema {
	s, err := ParseDocumentSchema(defaultDocumentSchema)
	if err != nil {
		panic(fmt.Sprintf("embedded net schema is invalid: %v", err))
	}
	return s
}

// DefaultDocumentSchemaJSON returns the raw embedded schema.
func DefaultDocumentSchemaJSON() []byte {
	return bytes.Clone(defaultDocumentSchema)
}

// ParseDocumentSchema compiles a user-supplied JSON Schema (Draft 2020-12 or
// older). Keywords shared with OpenAPI 3 schema objects are enforced; $schema and
// other annotations are ignored and local $ref pointers into $defs are inlined.
func ParseDocumentSchema(data []byte) (*DocumentSchema, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	lowered, err := lowerJSONSchema(doc)
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	data, err = json.Marshal(lowered)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	s := openapi3.NewSchema()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	if err := s.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return &DocumentSchema{schema: s}, nil
}

// Validate checks a decoded document (maps, slices, scalars) against the schema.
// It returns an *AggregateError with one ValidationError per violation, keyed by JSON pointer.
func (d *DocumentSchema) Validate(raw any) error {
	value, err := normalize(raw)
	if err != nil {
		return &AggregateError{Errors: []error{&ValidationError{Key: "/", Reason: err.Error()}}}
	}

	err = d.schema.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	var errs []error
	collect(err, &errs)
	return &AggregateError{Errors: errs}
}

// ValidateDocument validates raw against the embedded default schema.
func ValidateDocument(raw any) error {
	return DefaultDocumentSchema().Validate(raw)
}

func collect(err error, out *[]error) {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, e := range multi {
			collect(e, out)
		}
		return
	}

	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		*out = append(*out, &ValidationError{
			Key:    "/" + strings.Join(se.JSONPointer(), "/"),
			Reason: se.Reason,
			Value:  se.Value,
		})
		return
	}
	*out = append(*out, &ValidationError{Key: "/", Reason: err.Error()})
}

// normalize round-trips through JSON so the validator only sees JSON value types
// (float64 numbers, map[string]any objects) whatever decoder produced raw.
func normalize(raw any) (any, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
