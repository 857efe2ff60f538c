package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and the optional HTTP server
// exposing it. The registry carries the standard Go runtime and process
// collectors next to the application's own Kafka operation metrics, all
// wrapped with a constant `service` label.
type Metrics struct {
	// Server is the HTTP server for the /metrics endpoint, or nil when
	// the metrics endpoint is disabled by configuration.
	Server *http.Server

	// Registry holds every metric this instance creates.
	Registry *prometheus.Registry

	// wrappedRegisterer is the service-label-wrapped registerer used
	// internally when registering metrics.
	wrappedRegisterer prometheus.Registerer
}

// NewMetrics initializes and returns a new instance of the Metrics struct.
//
// The registry always exists, so metric creation works even when the HTTP
// endpoint is disabled; an empty Address simply leaves Server nil and
// nothing listens.
//
// Parameters:
//   - cfg: Configuration carrying the listen address and service name
//
// Returns:
//   - *Metrics: A configured Metrics instance ready for lifecycle
//     management and Fx module integration
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:     ":9091",
//	    ServiceName: "consumer",
//	})
//	go m.Server.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()
	wrapped := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	wrapped.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)

	m := &Metrics{
		Registry:          registry,
		wrappedRegisterer: wrapped,
	}

	if cfg.Address != "" {
		m.Server = &http.Server{
			Addr:    cfg.Address,
			Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		}
	}

	return m
}
