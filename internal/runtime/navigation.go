package runtime

import (
	"context"
	"log/slog"

	"github.com/aretw0/strumyk/internal/logging"
	"github.com/aretw0/strumyk/pkg/domain"
)

// run is the state owned by a single simulation. It never escapes Engine.Run
// except through the result.
type run struct {
	engine  *Engine
	net     *domain.Net
	cfg     domain.RunConfig
	vars    domain.Context
	marking domain.Marking
	result  *domain.RunResult
	logger  *slog.Logger
}

func (r *run) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: r.engine.now(),
		Type:      t,
		RunID:     r.result.ID,
		Net:       r.result.Net,
	}
}

// loop steps the net until a terminal status is reached.
// The completion check runs before the step cap, so a net whose last allowed
// firing marks the end place still completes.
func (r *run) loop(ctx context.Context) error {
	transitions := r.net.Transitions()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if r.marking[r.cfg.EndPlace] > 0 {
			r.result.Status = domain.StatusCompleted
			return nil
		}
		if r.result.Steps >= r.cfg.MaxSteps {
			r.result.Status = domain.StatusStepLimitExceeded
			return nil
		}

		enabled := r.enabled(ctx, transitions)
		if len(enabled) == 0 {
			r.result.Status = domain.StatusDeadlocked
			return nil
		}

		r.fire(ctx, enabled[0])
	}
}

// enabled returns the transitions that may fire at the current marking, in
// declaration order. A guard that fails to evaluate disables its transition
// for this step only.
func (r *run) enabled(ctx context.Context, transitions []domain.Transition) []domain.Transition {
	var out []domain.Transition
	for _, t := range transitions {
		if !r.tokenEnabled(t) {
			continue
		}
		if !t.Guarded() {
			out = append(out, t)
			continue
		}

		ok, err := r.engine.guards.Eval(t.Condition, r.vars)
		if err != nil {
			r.guardFailed(ctx, t, err)
			continue
		}
		if ok {
			out = append(out, t)
		}
	}
	return out
}

// tokenEnabled reports whether every input place holds a token. Input places
// are distinct, so one token per place is enough.
func (r *run) tokenEnabled(t domain.Transition) bool {
	for _, p := range t.Input {
		if r.marking[p] < 1 {
			return false
		}
	}
	return true
}

func (r *run) fire(ctx context.Context, t domain.Transition) {
	var before domain.Marking
	if r.engine.hooks.OnFire != nil {
		before = r.marking.Clone()
	}
	for _, p := range t.Input {
		r.marking[p]--
	}
	for _, p := range t.Output {
		r.marking[p]++
	}
	r.result.Trace = append(r.result.Trace, t.ID)
	r.result.Steps++

	r.logger.Debug("transition fired", logging.Transition(t.ID), logging.Step(r.result.Steps))
	r.engine.emitFire(ctx, r, t.ID, before)
}

func (r *run) guardFailed(ctx context.Context, t domain.Transition, err error) {
	gerr := &domain.GuardEvaluationError{
		TransitionID: t.ID,
		Condition:    t.Condition,
		Step:         r.result.Steps,
		Err:          err,
	}
	r.result.GuardFailures = append(r.result.GuardFailures, domain.GuardFailure{
		Step:         gerr.Step,
		TransitionID: t.ID,
		Condition:    t.Condition,
		Error:        err.Error(),
	})

	r.logger.Warn("guard evaluation failed, transition disabled",
		logging.Transition(t.ID), logging.Step(gerr.Step), logging.Err(err))
	r.engine.emitGuardError(ctx, r, gerr)
}
