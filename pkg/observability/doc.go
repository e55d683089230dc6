/*
Package observability turns controller lifecycle events into metrics and logs.

Both Metrics.Hooks and LoggingHooks return domain.LifecycleHooks, so they can be
merged and handed to the autocomplete controller and the search orchestrator:

	metrics, _ := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := metrics.Hooks().Merge(observability.LoggingHooks(logger))
*/
package observability
