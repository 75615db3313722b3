// Package schema validates the shape of raw data before it reaches the domain.
//
// It has two parts:
//
// Document validation checks a decoded net document (plain maps and slices, as
// produced by the YAML/JSON decoder) against a JSON Schema. A default schema for
// the net format is embedded; callers may supply their own:
//
//	raw, _ := compiler.DecodeGeneric(data)
//	if err := schema.ValidateDocument(raw); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        fmt.Println(e)
//	    }
//	}
//
// Context typing declares the expected types of guard variables with a small
// type language ("string", "int", "float", "bool", "any", and slices like "[int]"):
//
//	s, err := schema.ParseTypeMap(map[string]string{"approved": "bool", "amount": "int"})
//	err = schema.Validate(s, map[string]any{"approved": true, "amount": 42})
//
// Both parts report every violation at once through AggregateError.
package schema
