package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/strumyk/internal/runtime"
	"github.com/aretw0/strumyk/pkg/domain"
	"github.com/aretw0/strumyk/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvalNet() *domain.Net {
	return dsl.New("approval").
		Places("p_start", "p_middle", "p_end").
		Transition("t1").From("p_start").To("p_middle").
		Transition("t2").From("p_middle").To("p_end").When("approved").
		MustBuild()
}

func TestEngine_GuardedSimulation(t *testing.T) {
	engine := runtime.NewEngine()
	ctx := context.Background()

	t.Run("approved completes", func(t *testing.T) {
		res, err := engine.Run(ctx, approvalNet(), domain.RunConfig{
			Context: domain.Context{"approved": true},
		})
		require.NoError(t, err)

		assert.Equal(t, domain.StatusCompleted, res.Status)
		assert.Equal(t, domain.Trace{"t1", "t2"}, res.Trace)
		assert.Equal(t, domain.Marking{"p_start": 0, "p_middle": 0, "p_end": 1}, res.FinalMarking)
		assert.Equal(t, 2, res.Steps)
		assert.True(t, res.Completed())
		assert.NotEmpty(t, res.ID)
	})

	t.Run("rejected deadlocks after t1", func(t *testing.T) {
		res, err := engine.Run(ctx, approvalNet(), domain.RunConfig{
			Context: domain.Context{"approved": false},
		})
		require.NoError(t, err)

		assert.Equal(t, domain.StatusDeadlocked, res.Status)
		assert.Equal(t, domain.Trace{"t1"}, res.Trace)
		assert.Equal(t, domain.Marking{"p_start": 0, "p_middle": 1, "p_end": 0}, res.FinalMarking)
		assert.Empty(t, res.GuardFailures)
	})
}

func TestEngine_CapitalizedBoolGuard(t *testing.T) {
	net := dsl.New("prototype").
		Places("p_start", "p_end").
		Transition("approve").From("p_start").To("p_end").When("user_is_approved == True").
		MustBuild()

	res, err := runtime.NewEngine().Run(context.Background(), net, domain.RunConfig{
		Context: domain.Context{"user_is_approved": true},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, res.Status)
	assert.Empty(t, res.GuardFailures)
}

func TestEngine_HooksWithoutOnFire(t *testing.T) {
	var ended *domain.RunResult
	engine := runtime.NewEngine(runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnRunEnd: func(_ context.Context, e *domain.RunEvent) { ended = e.Result },
	}))

	res, err := engine.Run(context.Background(), approvalNet(), domain.RunConfig{
		Context: domain.Context{"approved": true},
	})
	require.NoError(t, err)
	assert.Same(t, res, ended)
	assert.Equal(t, domain.Marking{"p_start": 0, "p_middle": 0, "p_end": 1}, res.FinalMarking)
}

func TestEngine_FirstEnabledInDeclarationOrder(t *testing.T) {
	// Both t_b and t_a are enabled at the start; t_b is declared first.
	net := dsl.New("choice").
		Places("p_start", "p_b", "p_a", "p_end").
		Transition("t_b").From("p_start").To("p_b").
		Transition("t_a").From("p_start").To("p_a").
		Transition("t_b_end").From("p_b").To("p_end").
		Transition("t_a_end").From("p_a").To("p_end").
		MustBuild()

	res, err := runtime.NewEngine().Run(context.Background(), net, domain.RunConfig{})
	require.NoError(t, err)
	assert.Equal(t, domain.Trace{"t_b", "t_b_end"}, res.Trace)
}

func TestEngine_SynchronisingJoin(t *testing.T) {
	net := dsl.New("fork-join").
		Places("p_start", "a", "b", "a2", "p_end").
		Transition("fork").From("p_start").To("a", "b").
		Transition("left").From("a").To("a2").
		Transition("join").From("a2", "b").To("p_end").
		MustBuild()

	res, err := runtime.NewEngine().Run(context.Background(), net, domain.RunConfig{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, res.Status)
	assert.Equal(t, domain.Trace{"fork", "left", "join"}, res.Trace)
	assert.Equal(t, 1, res.FinalMarking.Tokens("p_end"))
}

func TestEngine_StartEqualsEnd(t *testing.T) {
	net := dsl.New("trivial").
		Places("p_start", "p_end").
		Transition("t1").From("p_start").To("p_end").
		MustBuild()

	res, err := runtime.NewEngine().Run(context.Background(), net, domain.RunConfig{
		StartPlace: "p_start",
		EndPlace:   "p_start",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, res.Status)
	assert.Empty(t, res.Trace)
	assert.Equal(t, 0, res.Steps)
}

func TestEngine_ContextIsCopied(t *testing.T) {
	vars := domain.Context{"approved": true}
	res, err := runtime.NewEngine().Run(context.Background(), approvalNet(), domain.RunConfig{Context: vars})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, res.Status)
	assert.Equal(t, domain.Context{"approved": true}, vars)
}

func TestEngine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runtime.NewEngine().Run(ctx, approvalNet(), domain.RunConfig{})
	assert.ErrorIs(t, err, context.Canceled)
}
