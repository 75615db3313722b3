// Package runtime implements the deterministic workflow-net simulator.
//
// A run starts with one token in the start place and repeatedly fires the first
// enabled transition in declaration order until the end place is marked, no
// transition is enabled, or the step cap is reached. Given the same net,
// context and configuration, every run produces the same trace and marking.
package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/strumyk/internal/guard"
	"github.com/aretw0/strumyk/internal/logging"
	"github.com/aretw0/strumyk/pkg/domain"
	"github.com/google/uuid"
)

// Engine is the token-stepping simulator. It holds no per-run state and is
// safe to share between goroutines.
type Engine struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	guards *guard.Evaluator
	now    func() time.Time
	newID  func() string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithEvaluator shares a guard evaluator (and its compiled program cache) between engines.
func WithEvaluator(ev *guard.Evaluator) EngineOption {
	return func(e *Engine) {
		if ev != nil {
			e.guards = ev
		}
	}
}

// WithClock overrides the time source used for run timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// WithIDGenerator overrides the run id generator.
func WithIDGenerator(newID func() string) EngineOption {
	return func(e *Engine) {
		e.newID = newID
	}
}

// NewEngine creates a new engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: logging.NewNop(),
		guards: guard.NewEvaluator(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run simulates net under cfg. Terminal statuses (Completed, Deadlocked,
// StepLimitExceeded) are reported in the result, never as errors. An error is
// returned only for an invalid configuration or a cancelled ctx.
func (e *Engine) Run(ctx context.Context, net *domain.Net, cfg domain.RunConfig) (*domain.RunResult, error) {
	cfg = cfg.WithDefaults()
	if err := validateConfig(net, cfg); err != nil {
		return nil, err
	}

	r := &run{
		engine:  e,
		net:     net,
		cfg:     cfg,
		vars:    cfg.Context.Clone(),
		marking: domain.NewMarking(net),
		result: &domain.RunResult{
			ID:         e.newID(),
			Net:        net.Name(),
			Status:     domain.StatusRunning,
			Trace:      domain.Trace{},
			StartPlace: cfg.StartPlace,
			EndPlace:   cfg.EndPlace,
			MaxSteps:   cfg.MaxSteps,
			StartedAt:  e.now(),
		},
	}
	r.marking[cfg.StartPlace] = 1
	r.logger = e.logger.With(logging.RunID(r.result.ID), logging.Net(net.Name()))

	r.logger.Debug("run started",
		logging.Place(cfg.StartPlace), slog.String("end", cfg.EndPlace), slog.Int("max_steps", cfg.MaxSteps))
	e.emitRunStart(ctx, r)

	if err := r.loop(ctx); err != nil {
		r.logger.Warn("run aborted", logging.Err(err), logging.Step(r.result.Steps))
		return nil, err
	}

	r.result.FinalMarking = r.marking.Clone()
	r.result.FinishedAt = e.now()

	r.logger.Info("run finished",
		logging.Status(r.result.Status), logging.Step(r.result.Steps))
	e.emitRunEnd(ctx, r)
	return r.result, nil
}

func (e *Engine) emitRunStart(ctx context.Context, r *run) {
	if e.hooks.OnRunStart == nil {
		return
	}
	e.hooks.OnRunStart(ctx, &domain.RunEvent{
		EventBase: r.event(domain.EventRunStart),
		Config:    r.cfg,
	})
}

func (e *Engine) emitRunEnd(ctx context.Context, r *run) {
	if e.hooks.OnRunEnd == nil {
		return
	}
	e.hooks.OnRunEnd(ctx, &domain.RunEvent{
		EventBase: r.event(domain.EventRunEnd),
		Config:    r.cfg,
		Result:    r.result,
	})
}

func (e *Engine) emitFire(ctx context.Context, r *run, transitionID string, before domain.Marking) {
	if e.hooks.OnFire == nil {
		return
	}
	delta := domain.Diff(before, r.marking)
	e.hooks.OnFire(ctx, &domain.FireEvent{
		EventBase:    r.event(domain.EventFire),
		Step:         r.result.Steps,
		TransitionID: transitionID,
		Delta:        delta,
	})
}

func (e *Engine) emitGuardError(ctx context.Context, r *run, err *domain.GuardEvaluationError) {
	if e.hooks.OnGuardError == nil {
		return
	}
	e.hooks.OnGuardError(ctx, &domain.GuardEvent{
		EventBase: r.event(domain.EventGuardError),
		Err:       err,
	})
}
