package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/starichkov/kafka-go-demo/logger"
	"github.com/starichkov/kafka-go-demo/observability"
)

// FXModule defines the Fx module for the metrics package.
// It provides the Metrics factory, the MetricsCollector interface, a
// SessionObserver bound as observability.Observer, and the lifecycle of
// the metrics HTTP server.
//
// Usage:
//
//	app := fx.New(
//	    metrics.FXModule,
//	    fx.Provide(func() metrics.Config {
//	        return metrics.Config{Address: ":9091", ServiceName: "consumer"}
//	    }),
//	)
//
// When Config.Address is empty the server lifecycle hooks are no-ops and
// only in-process collection remains active.
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		fx.Annotate(
			func(m *Metrics) MetricsCollector { return m },
			fx.As(new(MetricsCollector)),
		),
		NewSessionObserver,
		fx.Annotate(
			func(o *SessionObserver) observability.Observer { return o },
			fx.As(new(observability.Observer)),
		),
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// MetricsLifecycleParams collects the dependencies of the server lifecycle.
// The logger is optional so the module stays usable in minimal test apps.
type MetricsLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Metrics   *Metrics
	Log       *logger.LoggerClient `optional:"true"`
}

// RegisterMetricsLifecycle manages the startup and shutdown of the metrics
// HTTP server. It is invoked by FXModule and does not need to be called
// directly in application code.
func RegisterMetricsLifecycle(params MetricsLifecycleParams) {
	m := params.Metrics
	log := params.Log

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if m.Server == nil {
				return nil
			}
			go func() {
				if log != nil {
					log.Info("Starting metrics server", nil, map[string]interface{}{
						"address": m.Server.Addr,
					})
				}
				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					if log != nil {
						log.Error("Error starting metrics server", err, nil)
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if m.Server == nil {
				return nil
			}
			if log != nil {
				log.Info("Shutting down metrics server", nil, nil)
			}
			if err := m.Server.Shutdown(ctx); err != nil {
				if log != nil {
					log.Error("Error shutting down metrics server", err, nil)
				}
			}
			return nil
		},
	})
}
