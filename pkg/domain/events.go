package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart   EventType = "run_start"
	EventFire       EventType = "fire"
	EventGuardError EventType = "guard_error"
	EventRunEnd     EventType = "run_end"
	EventValidate   EventType = "validate"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id,omitempty"`
	Net       string    `json:"net,omitempty"`
}

// RunEvent marks the start or end of a run. Result is set on run end only.
type RunEvent struct {
	EventBase
	Config RunConfig  `json:"config"`
	Result *RunResult `json:"result,omitempty"`
}

// FireEvent represents a single transition firing.
type FireEvent struct {
	EventBase
	Step         int         `json:"step"`
	TransitionID string      `json:"transition_id"`
	Delta        MarkingDiff `json:"delta"`
}

// GuardEvent represents a guard that failed to evaluate.
type GuardEvent struct {
	EventBase
	Err *GuardEvaluationError `json:"-"`
}

// ValidationEvent reports the verdict of a soundness check.
type ValidationEvent struct {
	EventBase
	Err error `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnRunStart   func(context.Context, *RunEvent)
	OnFire       func(context.Context, *FireEvent)
	OnGuardError func(context.Context, *GuardEvent)
	OnRunEnd     func(context.Context, *RunEvent)
	OnValidate   func(context.Context, *ValidationEvent)
}

// Merge returns hooks that call h first and then other, for every callback set on either side.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRunStart:   chain(h.OnRunStart, other.OnRunStart),
		OnFire:       chain(h.OnFire, other.OnFire),
		OnGuardError: chain(h.OnGuardError, other.OnGuardError),
		OnRunEnd:     chain(h.OnRunEnd, other.OnRunEnd),
		OnValidate:   chain(h.OnValidate, other.OnValidate),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
