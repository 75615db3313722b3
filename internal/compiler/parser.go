// Package compiler turns raw net documents (YAML or JSON) into domain values.
package compiler

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/aretw0/strumyk/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when the input holds no document at all.
var ErrEmptyDocument = errors.New("empty document")

// DecodeError wraps a failure to turn raw bytes into a document.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("failed to decode net: %v", e.Err)
	}
	return fmt.Sprintf("failed to decode net %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Parser is responsible for converting raw bytes into a Net.
// JSON is a subset of YAML, so one decoder serves both formats.
type Parser struct {
	strict bool
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithStrict rejects documents carrying unknown keys.
func WithStrict(strict bool) ParserOption {
	return func(p *Parser) {
		p.strict = strict
	}
}

// NewParser creates a new parser instance.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse decodes data and builds the Net, applying structural checks.
// source is only used to label errors.
func (p *Parser) Parse(source string, data []byte) (*domain.Net, error) {
	doc, err := p.Decode(source, data)
	if err != nil {
		return nil, err
	}
	net, err := domain.NewNet(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label(source), err)
	}
	return net, nil
}

// Decode turns data into a NetDocument without structural checks.
func (p *Parser) Decode(source string, data []byte) (domain.NetDocument, error) {
	raw, err := DecodeGeneric(data)
	if err != nil {
		return domain.NetDocument{}, &DecodeError{Source: source, Err: err}
	}
	doc, err := p.FromMap(raw)
	if err != nil {
		return domain.NetDocument{}, &DecodeError{Source: source, Err: err}
	}
	return doc, nil
}

// FromMap decodes an already-parsed generic value (e.g. loam metadata or a JSON body).
func (p *Parser) FromMap(raw any) (domain.NetDocument, error) {
	var doc domain.NetDocument
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &doc,
		TagName: "mapstructure",
		// version: 1.0 arrives as a float and input: p1 as a scalar.
		WeaklyTypedInput: true,
		ErrorUnused:      p.strict,
	})
	if err != nil {
		return doc, err
	}
	if err := dec.Decode(raw); err != nil {
		return doc, err
	}
	return doc, nil
}

// DecodeGeneric parses YAML or JSON into plain maps, slices and scalars.
func DecodeGeneric(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ErrEmptyDocument
	}
	return raw, nil
}

// ParseContext decodes a YAML or JSON object into a run context.
// Empty input yields an empty context.
func ParseContext(data []byte) (domain.Context, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.Context{}, nil
	}
	var vars map[string]any
	if err := yaml.Unmarshal(data, &vars); err != nil {
		return nil, fmt.Errorf("failed to decode context: %w", err)
	}
	if vars == nil {
		return domain.Context{}, nil
	}
	return domain.Context(vars), nil
}

func label(source string) string {
	if source == "" {
		return "net"
	}
	return source
}
