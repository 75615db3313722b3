package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/strumyk/pkg/domain"
)

// DefaultCapacity bounds the reports kept by long-running servers.
const DefaultCapacity = 1000

// Store implements ports.ReportStore in memory.
// With a capacity set, saving past it evicts the oldest report.
// Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	reports  map[string]*domain.RunResult
	order    []string // insertion order, oldest first
	capacity int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCapacity keeps at most n reports. Zero or less means unbounded.
func WithCapacity(n int) StoreOption {
	return func(s *Store) {
		s.capacity = n
	}
}

// NewStore creates an empty store, unbounded unless WithCapacity is given.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{reports: make(map[string]*domain.RunResult)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save keeps a copy of result; saving an existing id replaces it in place.
func (s *Store) Save(ctx context.Context, result *domain.RunResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports[result.ID]; !ok {
		s.order = append(s.order, result.ID)
	}
	s.reports[result.ID] = result.Clone()

	for s.capacity > 0 && len(s.order) > s.capacity {
		delete(s.reports, s.order[0])
		s.order = s.order[1:]
	}
	return nil
}

// Load returns a copy, so callers cannot mutate stored reports.
func (s *Store) Load(ctx context.Context, id string) (*domain.RunResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.reports[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	return result.Clone(), nil
}

// Delete removes a report; unknown ids are ignored.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports[id]; !ok {
		return nil
	}
	delete(s.reports, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	return nil
}

// List returns the stored run ids, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := slices.Clone(s.order)
	slices.Sort(ids)
	return ids, nil
}
