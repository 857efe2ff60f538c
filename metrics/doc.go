// Package metrics provides Prometheus-based monitoring for the Kafka demo.
//
// The package exposes a single /metrics endpoint carrying the standard Go
// runtime and process collectors next to the application's Kafka operation
// metrics, with full control over metric definitions and integration with
// the Fx dependency injection framework.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: Defines the contract for metrics operations
//   - Metrics struct: Concrete implementation of the MetricsCollector interface
//   - NewMetrics constructor: Returns *Metrics (concrete type)
//   - FX module: Provides *Metrics, MetricsCollector, and a SessionObserver
//     bound as observability.Observer
//
// # Endpoint
//
// One endpoint (default: :9091) serves everything. An empty address in the
// configuration disables the HTTP server entirely while in-process metric
// creation keeps working, so the producer driver can run metric-free and
// the consumer driver can scrape-enable itself from METRICS_ADDR alone.
//
// # Session metrics
//
// SessionObserver translates observability.OperationContext values emitted
// by the kafka package into four series labeled by operation and topic:
//
//	kafka_operations_total
//	kafka_operation_failures_total
//	kafka_operation_duration_seconds
//	kafka_message_size_bytes
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create metrics directly:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:     ":9091",
//	    ServiceName: "consumer",
//	})
//	observer := metrics.NewSessionObserver(m)
//	client = client.WithObserver(observer)
//	go func() { _ = m.Server.ListenAndServe() }()
//
// # FX Usage
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    kafka.FXModule,
//	    fx.Provide(func() metrics.Config {
//	        return metrics.Config{Address: ":9091", ServiceName: "consumer"}
//	    }),
//	)
//
// The module registers lifecycle hooks that start the HTTP server on
// application start and shut it down gracefully on stop.
package metrics
