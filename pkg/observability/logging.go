package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/strumyk/internal/logging"
	"github.com/aretw0/strumyk/pkg/domain"
)

// LoggingHooks writes every lifecycle event to logger at debug level,
// except guard failures, which are warnings.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.DebugContext(ctx, "run_start", logging.RunID(e.RunID), logging.Net(e.Net),
				logging.Place(e.Config.StartPlace))
		},
		OnFire: func(ctx context.Context, e *domain.FireEvent) {
			logger.DebugContext(ctx, "fire", logging.RunID(e.RunID), logging.Step(e.Step),
				logging.Transition(e.TransitionID),
				slog.Any("consumed", e.Delta.Consumed()), slog.Any("produced", e.Delta.Produced()))
		},
		OnGuardError: func(ctx context.Context, e *domain.GuardEvent) {
			logger.WarnContext(ctx, "guard_error", logging.RunID(e.RunID),
				logging.Transition(e.Err.TransitionID), logging.Err(e.Err))
		},
		OnRunEnd: func(ctx context.Context, e *domain.RunEvent) {
			if e.Result == nil {
				return
			}
			logger.DebugContext(ctx, "run_end", logging.RunID(e.RunID), logging.Net(e.Net),
				logging.Status(e.Result.Status), logging.Step(e.Result.Steps))
		},
		OnValidate: func(ctx context.Context, e *domain.ValidationEvent) {
			logger.DebugContext(ctx, "validate", logging.Net(e.Net), slog.String("verdict", Verdict(e.Err)))
		},
	}
}
