package guard

import (
	"sync"

	"github.com/aretw0/strumyk/pkg/domain"
)

// Evaluator caches compiled programs per condition text.
// It is safe for concurrent use; runs sharing an Evaluator never share context.
type Evaluator struct {
	mu    sync.RWMutex
	cache map[string]compiled
}

type compiled struct {
	program *Program
	err     error
}

// NewEvaluator creates an empty evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{cache: make(map[string]compiled)}
}

// Program returns the compiled form of src, compiling it on first use.
// Compile failures are cached too, so a bad condition is reported the same way every step.
func (e *Evaluator) Program(src string) (*Program, error) {
	e.mu.RLock()
	c, ok := e.cache[src]
	e.mu.RUnlock()
	if ok {
		return c.program, c.err
	}

	p, err := Compile(src)

	e.mu.Lock()
	e.cache[src] = compiled{program: p, err: err}
	e.mu.Unlock()
	return p, err
}

// Eval evaluates src against vars. An empty condition is always true.
func (e *Evaluator) Eval(src string, vars domain.Context) (bool, error) {
	if src == "" {
		return true, nil
	}
	p, err := e.Program(src)
	if err != nil {
		return false, err
	}
	return p.Eval(vars)
}

// Check compiles every guarded transition of net and returns the first failure per
// transition, keyed by transition id. It does not evaluate anything.
func (e *Evaluator) Check(net *domain.Net) map[string]error {
	failures := make(map[string]error)
	for _, t := range net.Transitions() {
		if !t.Guarded() {
			continue
		}
		if _, err := e.Program(t.Condition); err != nil {
			failures[t.ID] = err
		}
	}
	return failures
}
