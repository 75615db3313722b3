package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/strumyk/internal/logging"
	"github.com/aretw0/strumyk/internal/runtime"
	"github.com/aretw0/strumyk/internal/validator"
	"github.com/aretw0/strumyk/pkg/domain"
	"github.com/aretw0/strumyk/pkg/dsl"
	"github.com/aretw0/strumyk/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordsRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	net := dsl.New("order").
		Places("p_start", "p_mid", "p_end").
		Transition("t1").From("p_start").To("p_mid").
		Transition("t2").From("p_mid").To("p_end").When("ok").
		MustBuild()

	engine := runtime.NewEngine(runtime.WithLifecycleHooks(metrics.Hooks()))

	_, err := engine.Run(context.Background(), net, domain.RunConfig{Context: domain.Context{"ok": true}})
	require.NoError(t, err)
	_, err = engine.Run(context.Background(), net, domain.RunConfig{Context: domain.Context{}})
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Runs.WithLabelValues("order", "completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Runs.WithLabelValues("order", "deadlocked")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Fires.WithLabelValues("order", "t1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Fires.WithLabelValues("order", "t2")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GuardErrors.WithLabelValues("order", "t2")))
	// One series for the net, two observations: 2 fires then 1 fire.
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.RunSteps))
	families, err := reg.Gather()
	require.NoError(t, err)
	var found bool
	for _, mf := range families {
		if mf.GetName() != "strumyk_run_steps" {
			continue
		}
		found = true
		require.Len(t, mf.GetMetric(), 1)
		h := mf.GetMetric()[0].GetHistogram()
		assert.Equal(t, uint64(2), h.GetSampleCount())
		assert.Equal(t, 3.0, h.GetSampleSum())
	}
	assert.True(t, found, "run_steps histogram not gathered")
}

func TestMetrics_NilRegistererSkipsRegistration(t *testing.T) {
	// Registering twice on the same registry would panic.
	reg := prometheus.NewRegistry()
	observability.NewMetrics(reg)
	assert.NotPanics(t, func() { observability.NewMetrics(nil) })
}

func TestVerdict(t *testing.T) {
	assert.Equal(t, "sound", observability.Verdict(nil))
	assert.Equal(t, "not_on_path",
		observability.Verdict(domain.NewSoundnessError(domain.NotOnPath, []string{"x"})))
	assert.Equal(t, "error", observability.Verdict(assert.AnError))

	metrics := observability.NewMetrics(nil)
	net := dsl.New("pair").Places("a", "b").MustBuild()
	metrics.Hooks().OnValidate(context.Background(), &domain.ValidationEvent{
		EventBase: domain.EventBase{Net: net.Name(), Type: domain.EventValidate},
		Err:       validator.Validate(net),
	})
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Validations.WithLabelValues("pair", "multiple_sources")))
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewJSON(slog.LevelDebug, &buf)

	net := dsl.New("logged").
		Places("p_start", "p_end").
		Transition("go").From("p_start").To("p_end").When("missing").
		MustBuild()

	engine := runtime.NewEngine(runtime.WithLifecycleHooks(observability.LoggingHooks(logger)))
	res, err := engine.Run(context.Background(), net, domain.RunConfig{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDeadlocked, res.Status)

	out := buf.String()
	assert.Contains(t, out, `"msg":"run_start"`)
	assert.Contains(t, out, `"msg":"guard_error"`)
	assert.Contains(t, out, `"msg":"run_end"`)
	assert.Contains(t, out, `"status":"deadlocked"`)
}
