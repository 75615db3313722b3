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

func TestEngine_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name  string
		cfg   domain.RunConfig
		field string
	}{
		{"unknown start", domain.RunConfig{StartPlace: "nope"}, "start_place"},
		{"unknown end", domain.RunConfig{EndPlace: "t1"}, "end_place"},
		{"negative cap", domain.RunConfig{MaxSteps: -1}, "max_steps"},
	}

	var started bool
	engine := runtime.NewEngine(runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnRunStart: func(context.Context, *domain.RunEvent) { started = true },
	}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := engine.Run(context.Background(), approvalNet(), tt.cfg)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, domain.ErrInvalidRunConfiguration)

			var cfgErr *domain.InvalidRunConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
	assert.False(t, started, "no run may start on an invalid configuration")
}

func TestEngine_DeclaredVariables(t *testing.T) {
	net := dsl.New("typed").
		Variable("approved", "bool").
		Places("p_start", "p_end").
		Transition("t").From("p_start").To("p_end").When("approved").
		MustBuild()
	engine := runtime.NewEngine()

	res, err := engine.Run(context.Background(), net, domain.RunConfig{Context: domain.Context{"approved": true}})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, res.Status)

	for name, vars := range map[string]domain.Context{
		"wrong type": {"approved": "yes"},
		"missing":    {},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := engine.Run(context.Background(), net, domain.RunConfig{Context: vars})
			var cfgErr *domain.InvalidRunConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, "context", cfgErr.Field)
		})
	}

	bad := dsl.New("badtype").
		Variable("approved", "boolean").
		Places("p_start", "p_end").
		Transition("t").From("p_start").To("p_end").
		MustBuild()
	_, err = engine.Run(context.Background(), bad, domain.RunConfig{})
	var cfgErr *domain.InvalidRunConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "variables", cfgErr.Field)
}
