package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Type defines the contract for value validation.
type Type interface {
	// Name returns the type expression (e.g., "string", "[int]").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

type kind string

const (
	kindString kind = "string"
	kindInt    kind = "int"
	kindFloat  kind = "float"
	kindBool   kind = "bool"
	kindAny    kind = "any"
)

// scalar validates the built-in kinds.
type scalar struct {
	kind kind
}

func (t scalar) Name() string { return string(t.kind) }

func (t scalar) Validate(value any) error {
	var ok bool
	switch t.kind {
	case kindAny:
		ok = true
	case kindString:
		_, ok = value.(string)
	case kindBool:
		_, ok = value.(bool)
	case kindInt:
		ok = isWhole(value)
	case kindFloat:
		ok = isNumber(value)
	}
	if !ok {
		return fmt.Errorf("expected %s, got %T", t.kind, value)
	}
	return nil
}

// isWhole accepts integer kinds and whole floats, which is how JSON decoders deliver integers.
func isWhole(value any) bool {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float64:
		return v == float64(int64(v))
	case json.Number:
		_, err := v.Int64()
		return err == nil
	}
	return false
}

func isNumber(value any) bool {
	switch v := value.(type) {
	case float32, float64:
		return true
	case json.Number:
		_, err := v.Float64()
		return err == nil
	}
	return isWhole(value)
}

// sliceType validates slices whose elements all match elem.
type sliceType struct {
	elem Type
}

func (t sliceType) Name() string { return "[" + t.elem.Name() + "]" }

func (t sliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return fmt.Errorf("expected %s, got %T", t.Name(), value)
	}
	for i := 0; i < rv.Len(); i++ {
		if err := t.elem.Validate(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// customType applies a user-defined validation function.
type customType struct {
	name     string
	validate func(any) error
}

func (t customType) Name() string { return t.name }

func (t customType) Validate(value any) error { return t.validate(value) }

// String creates a string type validator.
func String() Type { return scalar{kindString} }

// Int creates an integer type validator.
func Int() Type { return scalar{kindInt} }

// Float creates a number type validator; integers are accepted.
func Float() Type { return scalar{kindFloat} }

// Bool creates a boolean type validator.
func Bool() Type { return scalar{kindBool} }

// Any accepts every value, including nil.
func Any() Type { return scalar{kindAny} }

// Slice creates a slice type validator for elements of the given type.
func Slice(elem Type) Type { return sliceType{elem: elem} }

// Custom creates a type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return customType{name: name, validate: validate}
}

// ParseType converts a type expression to a Type.
// Supports "string", "int", "float", "bool", "any" and nested slices like "[[int]]".
func ParseType(expr string) (Type, error) {
	expr = strings.TrimSpace(expr)
	if strings.HasPrefix(expr, "[") && strings.HasSuffix(expr, "]") && len(expr) > 2 {
		elem, err := ParseType(expr[1 : len(expr)-1])
		if err != nil {
			return nil, err
		}
		return Slice(elem), nil
	}

	switch k := kind(expr); k {
	case kindString, kindInt, kindFloat, kindBool, kindAny:
		return scalar{k}, nil
	}
	return nil, fmt.Errorf("unsupported type: %q", expr)
}

// ParseTypeMap converts a map of names to type expressions into a Schema.
// Example: {"approved": "bool", "amount": "int"}
func ParseTypeMap(typeMap map[string]string) (Schema, error) {
	result := make(Schema, len(typeMap))
	var errs []error
	for _, key := range sortedKeys(typeMap) {
		t, err := ParseType(typeMap[key])
		if err != nil {
			errs = append(errs, &ValidationError{Key: key, Reason: err.Error()})
			continue
		}
		result[key] = t
	}
	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return result, nil
}

// TypeMap converts the schema back to its textual form.
func (s Schema) TypeMap() map[string]string {
	out := make(map[string]string, len(s))
	for k, t := range s {
		out[k] = t.Name()
	}
	return out
}
