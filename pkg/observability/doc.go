/*
Package observability turns session lifecycle events into Prometheus metrics
and structured log records.

Both are exposed as domain.LifecycleHooks, so they can be merged with any
other hooks and handed to a session manager:

	m, _ := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := m.Hooks().Merge(observability.LogHooks(logger))
*/
package observability
