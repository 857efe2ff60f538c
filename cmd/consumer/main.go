// The consumer driver subscribes to a topic and logs every message it
// receives until the process is signaled.
//
// It is composed as an Fx application: the logger, metrics, tracer, and
// kafka modules are wired together, and the consumer session is tied to
// the application lifecycle. SIGINT/SIGTERM stop the session gracefully;
// a failed session shuts the application down with exit code 1.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"

	"github.com/starichkov/kafka-go-demo/config"
	"github.com/starichkov/kafka-go-demo/kafka"
	"github.com/starichkov/kafka-go-demo/logger"
	"github.com/starichkov/kafka-go-demo/metrics"
	"github.com/starichkov/kafka-go-demo/observability"
	"github.com/starichkov/kafka-go-demo/tracer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	app := fx.New(
		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,
		kafka.FXModule,

		fx.Supply(cfg),
		fx.Provide(
			func(c *config.Config) logger.Config { return c.LoggerConfig("consumer") },
			func(c *config.Config) kafka.ClientConfig { return c.ClientConfig() },
			func(c *config.Config) metrics.Config {
				return metrics.Config{Address: c.MetricsAddr, ServiceName: "consumer"}
			},
			func(c *config.Config) tracer.Config {
				return tracer.Config{
					ServiceName:  "consumer",
					EnableExport: c.TraceExport,
					Endpoint:     c.OTLPEndpoint,
				}
			},
		),
		fx.Invoke(registerConsumer),
	)

	app.Run()
}

// consumerParams collects everything the session lifecycle needs.
type consumerParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Config     *config.Config
	Client     kafka.Client
	Log        *logger.LoggerClient
	Tracer     tracer.Tracer
	Observer   observability.Observer
}

// registerConsumer ties a ConsumerSession to the Fx lifecycle: the session
// starts with the application and stops with it. A session that dies on its
// own (startup retries exhausted, handler failure) takes the application
// down with exit code 1.
func registerConsumer(params consumerParams) {
	session := kafka.NewConsumerSession(params.Client, params.Log).
		WithObserver(params.Observer)

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if params.Config.CreateTopic {
				if err := kafka.EnsureTopic(ctx, params.Client, params.Log, kafka.TopicConfig{
					Name:              params.Config.Topic,
					NumPartitions:     1,
					ReplicationFactor: 1,
				}); err != nil {
					params.Log.Warn("Topic creation failed, subscribing anyway", err, map[string]interface{}{
						"topic": params.Config.Topic,
					})
				}
			}

			consumerCfg := params.Config.ConsumerConfig()
			consumerCfg.Handler = messageHandler(params.Log, params.Tracer)

			// The session outlives the OnStart context, so it gets its own.
			if err := session.Start(context.Background(), consumerCfg); err != nil {
				return err
			}

			go func() {
				if err, ok := <-session.Done(); ok && err != nil {
					params.Log.Error("Consumer session failed", err, nil)
					_ = params.Shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return session.Stop(ctx)
		},
	})
}

// messageHandler builds the record handler: it continues the producer's
// trace from the message headers and logs the delivery.
func messageHandler(log *logger.LoggerClient, tr tracer.Tracer) kafka.Handler {
	return func(ctx context.Context, rec kafka.Record) error {
		ctx = tr.SetCarrierOnContext(ctx, rec.Headers)
		ctx, span := tr.StartSpan(ctx, "handle-message")
		defer span.End()

		span.SetAttributes(map[string]interface{}{
			"messaging.destination":     rec.Topic,
			"messaging.kafka.partition": rec.Partition,
			"messaging.kafka.offset":    rec.Offset,
		})

		log.InfoWithContext(ctx, "Message received", nil, map[string]interface{}{
			"topic":      rec.Topic,
			"partition":  rec.Partition,
			"offset":     rec.Offset,
			"key":        string(rec.Key),
			"value":      string(rec.Value),
			"message_id": rec.Headers["message-id"],
		})
		return nil
	}
}
