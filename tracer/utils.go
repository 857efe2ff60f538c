package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	traceSpan "go.opentelemetry.io/otel/trace"
)

// spanImpl is an internal implementation of the Span interface
// that wraps an OpenTelemetry span.
type spanImpl struct {
	span traceSpan.Span
}

// End completes the underlying OpenTelemetry span. After calling End no
// further operations should be performed on the span.
func (s *spanImpl) End() {
	s.span.End()
}

// SetAttributes adds attributes to the span. Strings, ints, int64s,
// float64s, and bools map to their native attribute types; anything else
// is rendered with fmt.Sprint.
func (s *spanImpl) SetAttributes(attrs map[string]interface{}) {
	if len(attrs) == 0 {
		return
	}

	attributes := make([]attribute.KeyValue, 0, len(attrs))

	for k, v := range attrs {
		switch val := v.(type) {
		case string:
			attributes = append(attributes, attribute.String(k, val))
		case int:
			attributes = append(attributes, attribute.Int(k, val))
		case int64:
			attributes = append(attributes, attribute.Int64(k, val))
		case float64:
			attributes = append(attributes, attribute.Float64(k, val))
		case bool:
			attributes = append(attributes, attribute.Bool(k, val))
		default:
			attributes = append(attributes, attribute.String(k, fmt.Sprint(val)))
		}
	}

	s.span.SetAttributes(attributes...)
}

// RecordError records the error event on the span and sets the span status
// to Error with the error message as the description.
func (s *spanImpl) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// StartSpan creates a new span with the given name and returns an updated
// context containing the span. The created span becomes a child of any span
// already present in the context; without one, a new root span starts.
//
// Parameters:
//   - ctx: The parent context, which may contain a parent span
//   - name: A descriptive name for the operation ("produce-message",
//     "handle-message", ...)
//
// Returns:
//   - context.Context: A new context containing the created span
//   - Span: The span, which must be ended when the operation completes
func (t *TracerClient) StartSpan(ctx context.Context, name string) (context.Context, Span) {
	tracer := t.tracer.Tracer("")
	ctx, otSpan := tracer.Start(ctx, name)

	return ctx, &spanImpl{span: otSpan}
}

// GetCarrier extracts the current trace context as a headers map following
// the W3C Trace Context format. The producer attaches this map to outgoing
// message headers so the consumer side can continue the trace.
//
// The returned map typically includes:
//   - "traceparent": trace ID, span ID, and trace flags
//   - "tracestate": vendor-specific trace information (if present)
func (t *TracerClient) GetCarrier(ctx context.Context) map[string]string {
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
	carrier := propagation.MapCarrier{}
	propagator.Inject(ctx, carrier)
	return carrier
}

// SetCarrierOnContext is the complement to GetCarrier. The consumer calls
// it with the headers of a received message; the returned context carries
// the producer's trace so spans started from it join the same trace.
func (t *TracerClient) SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context {
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
	return propagator.Extract(ctx, propagation.MapCarrier(carrier))
}
