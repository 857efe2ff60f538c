package metrics

// DefaultAddress is the listen address of the metrics endpoint when the
// configuration does not name one.
const DefaultAddress = ":9091"

// Config defines the configuration for the Prometheus metrics endpoint.
//
// The demo exposes a single /metrics endpoint carrying both the standard
// Go runtime/process collectors and the application's Kafka operation
// metrics.
type Config struct {
	// Address determines the network address where the metrics HTTP
	// server listens.
	//
	// Example values:
	//   - ":9091"          → Listen on all interfaces, port 9091
	//   - "127.0.0.1:9091" → Listen only on localhost, port 9091
	//   - ""               → Metrics server disabled
	//
	// The drivers wire this from the METRICS_ADDR environment variable,
	// where absence means disabled.
	Address string `yaml:"address" envconfig:"METRICS_ADDR"`

	// ServiceName identifies the service exposing metrics. It is attached
	// as a constant `service` label to every metric so producer and
	// consumer series stay distinguishable on a shared scrape target.
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME"`
}
