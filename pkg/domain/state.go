package domain

import (
	"maps"
	"slices"
	"time"
)

// RunStatus is the outcome of a simulation run.
type RunStatus string

const (
	StatusRunning           RunStatus = "running"
	StatusCompleted         RunStatus = "completed"           // End place holds a token
	StatusDeadlocked        RunStatus = "deadlocked"          // No transition enabled, end not reached
	StatusStepLimitExceeded RunStatus = "step_limit_exceeded" // Step cap reached without completion
)

// Terminal reports whether the status ends a run.
func (s RunStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusDeadlocked || s == StatusStepLimitExceeded
}

// Marking maps a place id to its token count. Counts are never negative.
type Marking map[string]int

// NewMarking returns a marking with every place of net at zero.
func NewMarking(net *Net) Marking {
	m := make(Marking, len(net.places))
	for _, p := range net.places {
		m[p.ID] = 0
	}
	return m
}

// Tokens returns the count for a place (zero when absent).
func (m Marking) Tokens(place string) int {
	return m[place]
}

// Clone returns an independent copy.
func (m Marking) Clone() Marking {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}

// Marked returns the ids of places holding at least one token.
func (m Marking) Marked() []string {
	var ids []string
	for id, n := range m {
		if n > 0 {
			ids = append(ids, id)
		}
	}
	return sortedStrings(ids)
}

// Context is the read-only variable binding consulted by guards during a run.
type Context map[string]any

// Clone returns a shallow copy so the caller cannot mutate a running simulation.
func (c Context) Clone() Context {
	if c == nil {
		return Context{}
	}
	return maps.Clone(c)
}

// Trace is the ordered list of fired transition ids.
type Trace []string

// RunConfig carries the inputs of one simulation run.
type RunConfig struct {
	Context    Context `json:"context,omitempty" yaml:"context,omitempty"`
	StartPlace string  `json:"start_place,omitempty" yaml:"start_place,omitempty"`
	EndPlace   string  `json:"end_place,omitempty" yaml:"end_place,omitempty"`
	MaxSteps   int     `json:"max_steps,omitempty" yaml:"max_steps,omitempty"`
}

// WithDefaults fills unset fields with DefaultStartPlace, DefaultEndPlace and DefaultMaxSteps.
func (c RunConfig) WithDefaults() RunConfig {
	if c.StartPlace == "" {
		c.StartPlace = DefaultStartPlace
	}
	if c.EndPlace == "" {
		c.EndPlace = DefaultEndPlace
	}
	if c.MaxSteps == 0 {
		c.MaxSteps = DefaultMaxSteps
	}
	return c
}

// GuardFailure is the serializable record of a guard that failed to evaluate.
type GuardFailure struct {
	Step         int    `json:"step"`
	TransitionID string `json:"transition_id"`
	Condition    string `json:"condition"`
	Error        string `json:"error"`
}

// RunResult is the terminal snapshot of a simulation run.
type RunResult struct {
	ID            string         `json:"id"`
	Net           string         `json:"net,omitempty"`
	Status        RunStatus      `json:"status"`
	Trace         Trace          `json:"trace"`
	FinalMarking  Marking        `json:"final_marking"`
	Steps         int            `json:"steps"`
	StartPlace    string         `json:"start_place"`
	EndPlace      string         `json:"end_place"`
	MaxSteps      int            `json:"max_steps"`
	GuardFailures []GuardFailure `json:"guard_failures,omitempty"`
	StartedAt     time.Time      `json:"started_at"`
	FinishedAt    time.Time      `json:"finished_at"`
}

// Completed reports whether the run reached the end place.
func (r *RunResult) Completed() bool {
	return r.Status == StatusCompleted
}

// Clone returns a deep copy of the result.
func (r *RunResult) Clone() *RunResult {
	if r == nil {
		return nil
	}
	c := *r
	c.Trace = slices.Clone(r.Trace)
	c.FinalMarking = r.FinalMarking.Clone()
	c.GuardFailures = slices.Clone(r.GuardFailures)
	return &c
}
