package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/strumyk/internal/runtime"
	"github.com/aretw0/strumyk/pkg/domain"
)

func TestEngine_LifecycleHooks(t *testing.T) {
	// Capture events
	var (
		starts []string
		fired  []string
		deltas []domain.MarkingDiff
		ended  *domain.RunResult
	)

	hooks := domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			starts = append(starts, e.Config.StartPlace)
		},
		OnFire: func(ctx context.Context, e *domain.FireEvent) {
			fired = append(fired, e.TransitionID)
			deltas = append(deltas, e.Delta)
		},
		OnRunEnd: func(ctx context.Context, e *domain.RunEvent) {
			ended = e.Result
		},
	}

	engine := runtime.NewEngine(runtime.WithLifecycleHooks(hooks))

	res, err := engine.Run(context.Background(), approvalNet(), domain.RunConfig{
		Context: domain.Context{"approved": true},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(starts) != 1 || starts[0] != "p_start" {
		t.Errorf("Expected one run start at 'p_start', got: %v", starts)
	}
	if len(fired) != 2 || fired[0] != "t1" || fired[1] != "t2" {
		t.Errorf("Expected fire events [t1 t2], got: %v", fired)
	}
	if deltas[0]["p_start"] != -1 || deltas[0]["p_middle"] != 1 {
		t.Errorf("Unexpected delta for t1: %v", deltas[0])
	}
	if ended != res {
		t.Errorf("OnRunEnd should receive the returned result")
	}
}
