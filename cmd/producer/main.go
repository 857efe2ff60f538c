// The producer driver sends exactly one message and exits.
//
// Configuration comes from the environment (KAFKA_BROKERS, KAFKA_TOPIC,
// MESSAGE, KEY, ...); see the config package for the full list. The exit
// code is 0 on delivery and 1 on any failure.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/starichkov/kafka-go-demo/config"
	"github.com/starichkov/kafka-go-demo/kafka"
	"github.com/starichkov/kafka-go-demo/logger"
	"github.com/starichkov/kafka-go-demo/metrics"
	"github.com/starichkov/kafka-go-demo/tracer"
)

func main() {
	os.Exit(run())
}

// run is separated from main so deferred cleanup happens before the exit
// code is surfaced.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	log := logger.NewLoggerClient(cfg.LoggerConfig("producer"))
	defer func() { _ = log.Zap.Sync() }()

	tracerClient, err := tracer.NewClient(tracer.Config{
		ServiceName:  "producer",
		EnableExport: cfg.TraceExport,
		Endpoint:     cfg.OTLPEndpoint,
	})
	if err != nil {
		log.Error("Failed to initialize tracer", err, nil)
		return 1
	}

	// One-shot process; the observer collects in-process only, no scrape
	// endpoint is started.
	observer := metrics.NewSessionObserver(
		metrics.NewMetrics(metrics.Config{ServiceName: "producer"}),
	)

	client, err := kafka.NewClient(cfg.ClientConfig())
	if err != nil {
		log.Error("Failed to create Kafka client", err, map[string]interface{}{
			"brokers": cfg.Brokers,
		})
		return 1
	}
	client = client.WithLogger(log).WithObserver(observer)
	defer client.GracefulShutdown()

	if cfg.CreateTopic {
		if err := kafka.EnsureTopic(ctx, client, log, kafka.TopicConfig{
			Name:              cfg.Topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}); err != nil {
			log.Warn("Topic creation failed, producing anyway", err, map[string]interface{}{
				"topic": cfg.Topic,
			})
		}
	}

	ctx, span := tracerClient.StartSpan(ctx, "produce-message")
	defer span.End()
	span.SetAttributes(map[string]interface{}{
		"messaging.destination": cfg.Topic,
	})

	headers := map[string]string{"message-id": uuid.NewString()}
	for k, v := range tracerClient.GetCarrier(ctx) {
		headers[k] = v
	}

	session := kafka.NewProducerSession(client, log).WithObserver(observer)

	producerCfg := cfg.ProducerConfig()
	producerCfg.Headers = headers

	if err := session.Send(ctx, producerCfg); err != nil {
		span.RecordError(err)
		log.Error("Failed to deliver message", err, map[string]interface{}{
			"topic": cfg.Topic,
		})
		return 1
	}

	return 0
}
