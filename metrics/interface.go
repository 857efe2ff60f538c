package metrics

// MetricsCollector provides an interface for collecting and exposing application metrics.
// It abstracts metric operations with support for counters, gauges, and histograms.
//
// This interface is implemented by the concrete *Metrics type and does not expose any
// Prometheus-specific types, allowing for testing mocks or alternative backends.
//
// All metrics created through this interface are registered to the metrics
// registry and exposed on the configured /metrics endpoint.
type MetricsCollector interface {
	// CreateCounter creates a new counter metric and registers it to the
	// metrics registry.
	//
	// Counters are cumulative metrics that only increase over time.
	// Use WithLabelValues to set specific label values before incrementing.
	//
	// Example:
	//   counter := m.CreateCounter("kafka_operations_total", "Completed broker operations", []string{"operation", "topic"})
	//   counter.WithLabelValues("produce", "demo-topic").Inc()
	CreateCounter(name, help string, labels []string) Counter

	// CreateGauge creates a new gauge metric and registers it to the
	// metrics registry.
	//
	// Gauges represent values that can go up or down, such as the number
	// of running consumer sessions.
	CreateGauge(name, help string, labels []string) Gauge

	// CreateHistogram creates a new histogram metric and registers it to
	// the metrics registry.
	//
	// Histograms track distributions of values across configurable buckets.
	//
	// Example:
	//   hist := m.CreateHistogram("kafka_operation_duration_seconds", "Broker operation duration", []string{"operation"}, prometheus.DefBuckets)
	//   hist.WithLabelValues("consume").Observe(0.25)
	CreateHistogram(name, help string, labels []string, buckets []float64) Histogram
}
