package schema

import (
	"fmt"
	"maps"
	"strings"
)

// annotationKeywords carry no validation meaning and are unknown to OpenAPI
// schema objects, which reject them as extra fields.
var annotationKeywords = []string{"$schema", "$id", "$comment", "$anchor", "$vocabulary", "examples"}

// definitionKeywords hold the targets of local $ref pointers.
var definitionKeywords = []string{"$defs", "definitions"}

// lowerJSONSchema rewrites a JSON Schema document into the subset accepted by
// openapi3.Schema: annotation keywords are dropped, local $ref pointers into
// $defs or definitions are inlined, and const becomes a one-value enum.
func lowerJSONSchema(doc map[string]any) (map[string]any, error) {
	defs := map[string]any{}
	for _, kw := range definitionKeywords {
		if group, ok := doc[kw].(map[string]any); ok {
			for name, def := range group {
				defs["#/"+kw+"/"+name] = def
			}
		}
	}

	out, err := lower(doc, defs, nil)
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

func lower(node any, defs map[string]any, stack []string) (any, error) {
	switch v := node.(type) {
	case map[string]any:
		if ref, ok := v["$ref"].(string); ok {
			return inline(v, ref, defs, stack)
		}
		out := make(map[string]any, len(v))
		for key, child := range v {
			if isDropped(key) {
				continue
			}
			lowered, err := lower(child, defs, stack)
			if err != nil {
				return nil, err
			}
			out[key] = lowered
		}
		if c, ok := out["const"]; ok {
			delete(out, "const")
			out["enum"] = []any{c}
		}
		return out, nil

	case []any:
		out := make([]any, len(v))
		for i, child := range v {
			lowered, err := lower(child, defs, stack)
			if err != nil {
				return nil, err
			}
			out[i] = lowered
		}
		return out, nil
	}
	return node, nil
}

// inline replaces a {"$ref": ...} node by its target. Keywords next to $ref
// are kept and take precedence over the target's.
func inline(node map[string]any, ref string, defs map[string]any, stack []string) (any, error) {
	if !strings.HasPrefix(ref, "#/") {
		return nil, fmt.Errorf("$ref %q: only local references into $defs are supported", ref)
	}
	for _, seen := range stack {
		if seen == ref {
			return nil, fmt.Errorf("$ref %q: recursive references are not supported", ref)
		}
	}
	target, ok := defs[ref]
	if !ok {
		return nil, fmt.Errorf("$ref %q: no such definition", ref)
	}

	resolved, err := lower(target, defs, append(stack, ref))
	if err != nil {
		return nil, err
	}
	m, ok := resolved.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("$ref %q: definition is not an object", ref)
	}

	merged := maps.Clone(m)
	siblings := maps.Clone(node)
	delete(siblings, "$ref")
	rest, err := lower(siblings, defs, stack)
	if err != nil {
		return nil, err
	}
	maps.Copy(merged, rest.(map[string]any))
	return merged, nil
}

func isDropped(key string) bool {
	for _, kw := range annotationKeywords {
		if key == kw {
			return true
		}
	}
	for _, kw := range definitionKeywords {
		if key == kw {
			return true
		}
	}
	return false
}
