package tracer

// Config defines the configuration for the OpenTelemetry tracer.
// It controls service identification, environment settings, and whether
// spans should be exported to an observability backend.
type Config struct {
	// ServiceName specifies the name of the service using this tracer.
	// It appears on every span, so producer and consumer traces stay
	// distinguishable in the backend.
	//
	// Example values: "producer", "consumer"
	ServiceName string

	// AppEnv indicates the deployment environment where the service runs.
	// Common values include "development", "staging", "production".
	// It is set as the "deployment.environment" and "environment"
	// resource attributes on all spans.
	AppEnv string

	// EnableExport controls whether spans are exported over OTLP/HTTP.
	// When false, tracing still works for context propagation through
	// message headers; spans just never leave the process.
	//
	// The drivers wire this from the TRACE_EXPORT environment variable.
	EnableExport bool

	// Endpoint is the OTLP collector endpoint as host:port. Empty uses
	// the exporter's default (localhost:4318). The demo talks to local
	// collectors, so the exporter runs without TLS.
	//
	// The drivers wire this from the OTLP_ENDPOINT environment variable.
	Endpoint string
}
