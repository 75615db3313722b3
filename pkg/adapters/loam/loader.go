// Package loam serves net documents stored as Markdown (frontmatter) or
// YAML/JSON files in a Loam repository.
package loam

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/strumyk/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Loader adapts the Loam library to the ports.NetLoader interface.
// Get returns the canonical JSON form of the net document.
type Loader struct {
	Repo *loam.TypedRepository[NetMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[NetMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

type entry struct {
	path string
	meta NetMetadata
}

// index lists the repository and keys every document by its net name:
// the "net" field when present, otherwise the file name without extension.
func (l *Loader) index(ctx context.Context) (map[string]entry, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	out := make(map[string]entry, len(docs))
	for _, doc := range docs {
		name := doc.Data.Net
		if name == "" {
			name = doc.ID
		}
		name = trimExtension(name)

		if existing, ok := out[name]; ok {
			return nil, fmt.Errorf("collision detected: net '%s' is defined in both '%s' and '%s'", name, existing.path, doc.ID)
		}
		out[name] = entry{path: doc.ID, meta: doc.Data}
	}
	return out, nil
}

// Get retrieves a net by name and returns it as a JSON document.
func (l *Loader) Get(ctx context.Context, name string) ([]byte, error) {
	idx, err := l.index(ctx)
	if err != nil {
		return nil, err
	}
	e, ok := idx[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNetNotFound, name)
	}

	// List carries metadata only; the body (for the heading label) needs a Get.
	full, err := l.Repo.Get(ctx, e.path)
	if err != nil {
		return nil, fmt.Errorf("loam get %s failed: %w", e.path, err)
	}

	doc, err := buildDocument(name, full.Data, full.Content)
	if err != nil {
		return nil, fmt.Errorf("net %s (%s): %w", name, e.path, err)
	}

	bytes, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal net document: %w", err)
	}
	return bytes, nil
}

// List returns every net name in the repository, sorted.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	idx, err := l.index(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(idx))
	for name := range idx {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func buildDocument(name string, meta NetMetadata, content string) (domain.NetDocument, error) {
	doc := domain.NetDocument{
		Name:        name,
		Version:     meta.Version,
		Label:       meta.Label,
		Places:      make([]domain.Place, 0, len(meta.Places)),
		Transitions: make([]domain.Transition, 0, len(meta.Transitions)),
	}
	if doc.Label == "" {
		doc.Label = headline(content)
	}

	for i, raw := range meta.Places {
		p, err := decodePlace(raw)
		if err != nil {
			return doc, fmt.Errorf("places[%d]: %w", i, err)
		}
		doc.Places = append(doc.Places, p)
	}

	for i, lt := range meta.Transitions {
		input, err := stringList(first(lt.Input, lt.From))
		if err != nil {
			return doc, fmt.Errorf("transitions[%d].input: %w", i, err)
		}
		output, err := stringList(first(lt.Output, lt.To))
		if err != nil {
			return doc, fmt.Errorf("transitions[%d].output: %w", i, err)
		}
		condition := lt.Condition
		if condition == "" {
			condition = lt.When
		}
		doc.Transitions = append(doc.Transitions, domain.Transition{
			ID:        lt.ID,
			Label:     lt.Label,
			Input:     input,
			Output:    output,
			Condition: condition,
		})
	}

	vars, err := normalizeVariables(meta.Variables)
	if err != nil {
		return doc, err
	}
	doc.Variables = vars
	return doc, nil
}

func decodePlace(raw any) (domain.Place, error) {
	switch v := raw.(type) {
	case string:
		return domain.Place{ID: v}, nil
	case map[string]any, map[any]any:
		var p domain.Place
		if err := mapstructure.Decode(v, &p); err != nil {
			return p, fmt.Errorf("failed to decode place: %w", err)
		}
		return p, nil
	default:
		return domain.Place{}, fmt.Errorf("expected id or map, got %T", raw)
	}
}

func first(a, b any) any {
	if a != nil {
		return a
	}
	return b
}

// stringList accepts nil, a single id, or a list of ids.
func stringList(raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return []string{}, nil
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected place id, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected place id or list, got %T", raw)
	}
}

func normalizeVariables(raw map[string]any) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	normalized := make(map[string]string, len(raw))
	for key, value := range raw {
		typeStr, err := formatSchemaType(value)
		if err != nil {
			return nil, fmt.Errorf("variables.%s: %w", key, err)
		}
		normalized[key] = typeStr
	}
	return normalized, nil
}

func formatSchemaType(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []any:
		if len(v) != 1 {
			return "", fmt.Errorf("expected single element list for slice type")
		}
		inner, err := formatSchemaType(v[0])
		if err != nil {
			return "", err
		}
		return "[" + inner + "]", nil
	case []string:
		if len(v) != 1 {
			return "", fmt.Errorf("expected single element list for slice type")
		}
		return "[" + v[0] + "]", nil
	default:
		return "", fmt.Errorf("expected string or list, got %T", value)
	}
}

// headline returns the first Markdown heading of the body, if any.
func headline(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}
	return ""
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
