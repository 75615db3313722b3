/*
Package observability binds engine lifecycle hooks to monitoring backends.

Metrics exposes Prometheus counters and histograms for runs, firings, guard
failures and validations. LoggingHooks writes the same events to a slog.Logger.
Both return domain.LifecycleHooks, so they can be combined with Merge:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := metrics.Hooks().Merge(observability.LoggingHooks(logger))
*/
package observability
