package observability

import (
	"context"
	"errors"

	"github.com/aretw0/strumyk/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "strumyk"

// Metrics holds the Prometheus collectors updated by the engine hooks.
type Metrics struct {
	Runs         *prometheus.CounterVec
	Fires        *prometheus.CounterVec
	GuardErrors  *prometheus.CounterVec
	Validations  *prometheus.CounterVec
	RunSteps     *prometheus.HistogramVec
	RunDurations *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "runs_total",
			Help:      "Total number of finished simulation runs by terminal status.",
		}, []string{"net", "status"}),
		Fires: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "transition_fires_total",
			Help:      "Total number of transition firings.",
		}, []string{"net", "transition"}),
		GuardErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "guard_errors_total",
			Help:      "Total number of guard conditions that failed to evaluate.",
		}, []string{"net", "transition"}),
		Validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "validations_total",
			Help:      "Total number of soundness checks by verdict.",
		}, []string{"net", "verdict"}),
		RunSteps: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "run_steps",
			Help:      "Number of transitions fired per run.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"net"}),
		RunDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of simulation runs.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"net"}),
	}
	if reg != nil {
		reg.MustRegister(m.Runs, m.Fires, m.GuardErrors, m.Validations, m.RunSteps, m.RunDurations)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFire: func(_ context.Context, e *domain.FireEvent) {
			m.Fires.WithLabelValues(e.Net, e.TransitionID).Inc()
		},
		OnGuardError: func(_ context.Context, e *domain.GuardEvent) {
			m.GuardErrors.WithLabelValues(e.Net, e.Err.TransitionID).Inc()
		},
		OnRunEnd: func(_ context.Context, e *domain.RunEvent) {
			if e.Result == nil {
				return
			}
			m.Runs.WithLabelValues(e.Net, string(e.Result.Status)).Inc()
			m.RunSteps.WithLabelValues(e.Net).Observe(float64(e.Result.Steps))
			m.RunDurations.WithLabelValues(e.Net).Observe(e.Result.FinishedAt.Sub(e.Result.StartedAt).Seconds())
		},
		OnValidate: func(_ context.Context, e *domain.ValidationEvent) {
			m.Validations.WithLabelValues(e.Net, Verdict(e.Err)).Inc()
		},
	}
}

// Verdict maps a validation error to a short label: "sound", the soundness
// kind (e.g. "multiple_sources"), or "error" for anything else.
func Verdict(err error) string {
	if err == nil {
		return "sound"
	}
	var se *domain.SoundnessError
	if errors.As(err, &se) {
		return string(se.Kind)
	}
	return "error"
}
