package tracer

import (
	"context"
)

// Tracer provides distributed tracing capabilities for applications.
// It wraps OpenTelemetry functionality with a simplified interface
// for creating spans, recording errors, and propagating trace context.
//
// This interface is implemented by the concrete *TracerClient type.
type Tracer interface {
	// StartSpan creates a new span with the given name.
	// The span is automatically attached to the parent span in the context (if any).
	// Returns a new context with the span and the span itself.
	// Always call span.End() when the operation completes (typically via defer).
	StartSpan(ctx context.Context, name string) (context.Context, Span)

	// GetCarrier extracts trace context from the given context as a map of headers.
	// The producer attaches the carrier to outgoing message headers so
	// consumers can continue the trace.
	GetCarrier(ctx context.Context) map[string]string

	// SetCarrierOnContext injects trace context from headers into the given context.
	// The consumer calls this with the headers of a received message to
	// continue the producer's trace.
	SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context
}

// Span represents a trace span for tracking operations in distributed systems.
// It abstracts the underlying OpenTelemetry span, so application code does
// not depend on the tracing library directly.
//
// Spans created with StartSpan automatically inherit the parent span from
// the context if one exists, creating a proper span hierarchy.
type Span interface {
	// End completes the span and sends it to configured exporters.
	// It's recommended to defer this call immediately after obtaining the span.
	//
	// Example:
	//   ctx, span := tracer.StartSpan(ctx, "produce-message")
	//   defer span.End()
	End()

	// SetAttributes adds key-value pairs of attributes to the span.
	// Strings, ints, floats, and bools map to their native attribute
	// types; anything else is rendered with fmt.Sprint.
	//
	// Example:
	//   span.SetAttributes(map[string]interface{}{
	//     "messaging.destination": topic,
	//     "messaging.kafka.partition": partition,
	//   })
	SetAttributes(attrs map[string]interface{})

	// RecordError marks the span as failed and records the error details.
	//
	// Example:
	//   if err := session.Send(ctx, cfg); err != nil {
	//     span.RecordError(err)
	//     return err
	//   }
	RecordError(err error)
}
