// Package observability provides a unified interface for observing broker
// operations performed by the kafka package.
//
// # Overview
//
// The package defines a single Observer interface that the producer and
// consumer sessions use to emit operation events. This allows applications to
// implement metrics, tracing, and logging in a consistent way without the
// sessions depending on a concrete backend.
//
// # Design Philosophy
//
// 1. **Optional**: the sessions work perfectly without an observer
// 2. **Flexible**: an Observer can implement metrics, tracing, logging, or all three
// 3. **Non-intrusive**: one nil check and one call per operation
//
// # Usage
//
// The kafka sessions accept an optional Observer and call it when operations
// complete:
//
//	if s.observer != nil {
//	    s.observer.ObserveOperation(observability.OperationContext{
//	        Component: "kafka",
//	        Operation: "produce",
//	        Resource:  topic,
//	        Duration:  time.Since(start),
//	        Error:     err,
//	        Size:      int64(len(value)),
//	    })
//	}
//
// Applications implement the Observer interface to handle those events. The
// metrics package ships a Prometheus-backed implementation (SessionObserver)
// that records totals and durations per topic:
//
//	obs := metrics.NewSessionObserver(m)
//	session := kafka.NewProducerSession(client, log).WithObserver(obs)
//
// # FX Integration
//
// Wire the observer through dependency injection:
//
//	fx.Provide(
//	    fx.Annotate(
//	        metrics.NewSessionObserver,
//	        fx.As(new(observability.Observer)),
//	    ),
//	)
//
// # Thread Safety
//
// Observer implementations must be thread-safe. They will be called
// concurrently from multiple goroutines.
package observability
