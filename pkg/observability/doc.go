/*
Package observability turns runtime lifecycle hooks into logs and metrics.

	metrics, err := observability.NewMetrics(prometheus.NewRegistry())
	...
	hooks := observability.Combine(metrics.Hooks(), observability.LoggingHooks(logger))
	engine := fable.New(fable.WithLifecycleHooks(hooks))
*/
package observability
