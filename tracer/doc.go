// Package tracer provides distributed tracing for the Kafka demo using
// OpenTelemetry.
//
// It wraps the OpenTelemetry SDK with a simplified API for creating spans,
// recording errors, and propagating trace context through Kafka message
// headers, so a consumer's handler span joins the trace the producer
// started.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - Tracer interface: Defines the contract for tracing operations
//   - TracerClient struct: Concrete implementation over the OTel SDK
//   - NewClient constructor: Returns *TracerClient (concrete type)
//   - FX module: Provides both *TracerClient and the Tracer interface
//
// # Span export
//
// Export is optional. With EnableExport set, spans are batched to an
// OTLP/HTTP collector at the configured endpoint; without it, spans exist
// only for in-process context propagation. The drivers derive both
// settings from TRACE_EXPORT and OTLP_ENDPOINT.
//
// # Header propagation
//
// The producer injects the W3C trace context into message headers:
//
//	ctx, span := tracerClient.StartSpan(ctx, "produce-message")
//	defer span.End()
//	headers := tracerClient.GetCarrier(ctx)
//	// headers travel on the Kafka record
//
// The consumer extracts it before handling:
//
//	ctx = tracerClient.SetCarrierOnContext(ctx, rec.Headers)
//	ctx, span := tracerClient.StartSpan(ctx, "handle-message")
//	defer span.End()
//
// # FX Usage
//
//	app := fx.New(
//	    tracer.FXModule,
//	    fx.Provide(func() tracer.Config {
//	        return tracer.Config{ServiceName: "consumer", AppEnv: "development"}
//	    }),
//	)
//
// The module registers an OnStop hook that shuts the tracer provider down,
// flushing any pending spans.
package tracer
