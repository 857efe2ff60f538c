package kafka

import (
	"context"

	"go.uber.org/fx"

	"github.com/starichkov/kafka-go-demo/observability"
)

// FXModule is an fx.Module that provides and configures the Kafka client.
// This module registers the Kafka client with the Fx dependency injection framework,
// making it available to other components in the application.
//
// The module provides:
// 1. *KafkaClient (concrete type) for direct use
// 2. Client interface for dependency injection
// 3. Lifecycle management for graceful shutdown
//
// Usage:
//
//	app := fx.New(
//	    kafka.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("kafka",
	fx.Provide(
		NewClientWithDI, // Provides *KafkaClient
		// Also provide the Client interface
		fx.Annotate(
			func(k *KafkaClient) Client { return k },
			fx.As(new(Client)),
		),
	),
	fx.Invoke(RegisterKafkaLifecycle),
)

// KafkaParams groups the dependencies needed to create a Kafka client
type KafkaParams struct {
	fx.In

	Config   ClientConfig
	Logger   Logger                 `optional:"true"` // Optional logger from logger package
	Observer observability.Observer `optional:"true"` // Optional observer for metrics/tracing
}

// NewClientWithDI creates a new Kafka client using dependency injection.
// This function is designed to be used with Uber's fx dependency injection framework
// where dependencies are automatically provided via the KafkaParams struct.
//
// Parameters:
//   - params: A KafkaParams struct that contains the ClientConfig instance
//     and optionally a Logger and Observer.
//     This struct embeds fx.In to enable automatic injection of these dependencies.
//
// Returns:
//   - *KafkaClient: A fully initialized Kafka client ready for use.
//
// Example usage with fx:
//
//	app := fx.New(
//	    kafka.FXModule,
//	    logger.FXModule,
//	    fx.Provide(func() kafka.ClientConfig {
//	        return loadKafkaConfig() // Your config loading function
//	    }),
//	)
func NewClientWithDI(params KafkaParams) (*KafkaClient, error) {
	client, err := NewClient(params.Config)
	if err != nil {
		return nil, err
	}

	if params.Logger != nil {
		client.logger = params.Logger
	}
	if params.Observer != nil {
		client.observer = params.Observer
	}

	return client, nil
}

// KafkaLifecycleParams groups the dependencies needed for Kafka lifecycle management
type KafkaLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *KafkaClient
}

// RegisterKafkaLifecycle registers the Kafka client with the fx lifecycle system.
// On application stop, pooled connections held by the client's shared
// transport are released. Producers and consumers created by the client
// are torn down by the sessions that own them, not here.
func RegisterKafkaLifecycle(params KafkaLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			params.Client.logInfo(ctx, "Kafka client started", nil)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			params.Client.GracefulShutdown()
			return nil
		},
	})
}
