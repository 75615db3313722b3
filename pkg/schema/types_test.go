package schema

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestScalarTypes(t *testing.T) {
	tests := []struct {
		typ    Type
		name   string
		accept []any
		reject []any
	}{
		{String(), "string", []any{"hello", ""}, []any{42, 3.14, true, nil}},
		{Int(), "int", []any{42, int64(-1), 3.0, json.Number("7"), uint8(1)}, []any{3.5, "42", true, nil, json.Number("1.5")}},
		{Float(), "float", []any{3.14, 42, float32(1), json.Number("1.5")}, []any{"3.14", false, nil}},
		{Bool(), "bool", []any{true, false}, []any{1, "true", nil}},
		{Any(), "any", []any{nil, 1, "x", []int{1}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.typ.Name() != tt.name {
				t.Errorf("Name() = %q, want %q", tt.typ.Name(), tt.name)
			}
			for _, v := range tt.accept {
				if err := tt.typ.Validate(v); err != nil {
					t.Errorf("Validate(%#v) unexpected error: %v", v, err)
				}
			}
			for _, v := range tt.reject {
				if err := tt.typ.Validate(v); err == nil {
					t.Errorf("Validate(%#v) expected error", v)
				}
			}
		})
	}
}

func TestSliceType(t *testing.T) {
	typ := Slice(Int())
	if typ.Name() != "[int]" {
		t.Errorf("Name() = %q", typ.Name())
	}

	if err := typ.Validate([]any{1, 2.0, 3}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := typ.Validate([2]int{1, 2}); err != nil {
		t.Errorf("arrays should be accepted: %v", err)
	}
	if err := typ.Validate([]any{1, "two"}); err == nil {
		t.Error("expected element error")
	}
	if err := typ.Validate(nil); err == nil {
		t.Error("nil is not a slice")
	}
}

func TestCustomType(t *testing.T) {
	positive := Custom("positive_int", func(v any) error {
		i, ok := v.(int)
		if !ok || i <= 0 {
			return fmt.Errorf("must be a positive int")
		}
		return nil
	})

	if positive.Name() != "positive_int" {
		t.Errorf("Name() = %q", positive.Name())
	}
	if err := positive.Validate(3); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := positive.Validate(-3); err == nil {
		t.Error("expected error")
	}
}

func TestParseType(t *testing.T) {
	valid := map[string]string{
		"string":  "string",
		" int ":   "int",
		"float":   "float",
		"bool":    "bool",
		"any":     "any",
		"[bool]":  "[bool]",
		"[[int]]": "[[int]]",
	}
	for in, want := range valid {
		typ, err := ParseType(in)
		if err != nil {
			t.Errorf("ParseType(%q) error: %v", in, err)
			continue
		}
		if typ.Name() != want {
			t.Errorf("ParseType(%q).Name() = %q, want %q", in, typ.Name(), want)
		}
	}

	for _, in := range []string{"", "[]", "map", "[str]", "Int"} {
		if _, err := ParseType(in); err == nil {
			t.Errorf("ParseType(%q) should fail", in)
		}
	}
}

func TestParseTypeMap(t *testing.T) {
	s, err := ParseTypeMap(map[string]string{"approved": "bool", "tags": "[string]"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.TypeMap(); got["approved"] != "bool" || got["tags"] != "[string]" {
		t.Errorf("TypeMap() = %v", got)
	}

	_, err = ParseTypeMap(map[string]string{"b": "nope", "a": "also-nope", "c": "int"})
	errs := ValidationErrors(err)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", err)
	}
	if errs[0].(*ValidationError).Key != "a" {
		t.Errorf("errors should be sorted by key, got %v", errs)
	}
}
