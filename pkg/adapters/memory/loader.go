package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/strumyk/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.NetLoader using an in-memory map.
// Safe for concurrent use.
type Loader struct {
	mu   sync.RWMutex
	nets map[string][]byte
}

// NewLoader creates a new Loader with the provided raw documents (YAML or JSON strings).
func NewLoader(data map[string]string) *Loader {
	nets := make(map[string][]byte, len(data))
	for k, v := range data {
		nets[k] = []byte(v)
	}
	return &Loader{nets: nets}
}

// NewFromDocuments creates a Loader from decoded documents, keyed by document name.
// This handles serialization automatically, improving DX for tests.
func NewFromDocuments(docs ...domain.NetDocument) (*Loader, error) {
	l := &Loader{nets: make(map[string][]byte, len(docs))}
	for _, doc := range docs {
		if err := l.Put(doc); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Put stores (or replaces) a decoded document under its name.
func (l *Loader) Put(doc domain.NetDocument) error {
	if doc.Name == "" {
		return fmt.Errorf("net document missing name")
	}
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal net %s: %w", doc.Name, err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nets[doc.Name] = raw
	return nil
}

// Get retrieves the raw document of a net by name.
func (l *Loader) Get(ctx context.Context, name string) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	content, ok := l.nets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNetNotFound, name)
	}
	return append([]byte(nil), content...), nil
}

// List returns all available net names.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	keys := make([]string, 0, len(l.nets))
	for k := range l.nets {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
