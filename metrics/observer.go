package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/starichkov/kafka-go-demo/observability"
)

// SessionObserver records broker operation outcomes as Prometheus metrics.
// It implements observability.Observer, so it plugs directly into the
// kafka client and sessions via their WithObserver builders.
//
// Exported series:
//   - kafka_operations_total{operation, topic}
//   - kafka_operation_failures_total{operation, topic}
//   - kafka_operation_duration_seconds{operation, topic}
//   - kafka_message_size_bytes{operation, topic}
type SessionObserver struct {
	operations Counter
	failures   Counter
	durations  Histogram
	sizes      Histogram
}

// NewSessionObserver creates a SessionObserver with its metrics registered
// on the given collector.
func NewSessionObserver(collector MetricsCollector) *SessionObserver {
	return &SessionObserver{
		operations: collector.CreateCounter(
			"kafka_operations_total",
			"Completed broker operations",
			[]string{"operation", "topic"},
		),
		failures: collector.CreateCounter(
			"kafka_operation_failures_total",
			"Failed broker operations",
			[]string{"operation", "topic"},
		),
		durations: collector.CreateHistogram(
			"kafka_operation_duration_seconds",
			"Broker operation duration in seconds",
			[]string{"operation", "topic"},
			prometheus.DefBuckets,
		),
		sizes: collector.CreateHistogram(
			"kafka_message_size_bytes",
			"Message value size in bytes",
			[]string{"operation", "topic"},
			prometheus.ExponentialBuckets(64, 4, 8),
		),
	}
}

// ObserveOperation records one completed operation. Failures count toward
// both the operations and failures series.
func (o *SessionObserver) ObserveOperation(op observability.OperationContext) {
	o.operations.WithLabelValues(op.Operation, op.Resource).Inc()
	if op.Error != nil {
		o.failures.WithLabelValues(op.Operation, op.Resource).Inc()
	}
	o.durations.WithLabelValues(op.Operation, op.Resource).Observe(op.Duration.Seconds())
	if op.Size > 0 {
		o.sizes.WithLabelValues(op.Operation, op.Resource).Observe(float64(op.Size))
	}
}
