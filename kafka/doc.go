// Package kafka provides producer and consumer sessions over Apache
// Kafka, backed by segmentio/kafka-go.
//
// The package is built around two session types that own their broker
// resources end to end:
//
//   - ProducerSession connects, sends exactly one message, and
//     guarantees the connection is released on every exit path.
//   - ConsumerSession owns a topic subscription and a run loop,
//     retrying loop startup with backoff, delivering messages to a
//     handler one at a time in delivery order, and tearing down
//     idempotently on stop or cancellation.
//
// Sessions depend only on the Client/Producer/Consumer/Admin
// interfaces, so they can be tested against substitute
// implementations. *KafkaClient is the production implementation.
//
// # Producing
//
//	client, err := kafka.NewClient(kafka.ClientConfig{
//		ClientID: "my-service",
//		Brokers:  "localhost:9092",
//	})
//	if err != nil {
//		return err
//	}
//	defer client.GracefulShutdown()
//
//	session := kafka.NewProducerSession(client, log)
//	err = session.Send(ctx, kafka.ProducerConfig{
//		Brokers: "localhost:9092",
//		Topic:   "my-topic",
//		Key:     []byte("k"),
//		Value:   "hello",
//	})
//
// String and []byte payloads are transmitted as-is; any other value is
// serialized to JSON. A nil Key produces a message without a key.
//
// # Consuming
//
//	session := kafka.NewConsumerSession(client, log)
//	err := session.Start(ctx, kafka.ConsumerConfig{
//		Brokers:       "localhost:9092",
//		Topic:         "my-topic",
//		GroupID:       "my-group",
//		FromBeginning: true,
//		Handler: func(ctx context.Context, rec kafka.Record) error {
//			fmt.Println(string(rec.Value))
//			return nil
//		},
//	})
//	if err != nil {
//		return err
//	}
//
//	// ... later, or on a signal:
//	_ = session.Stop(context.Background())
//	if err := <-session.Done(); err != nil {
//		log.Error("run loop failed", err)
//	}
//
// Canceling the context passed to Start stops the session; Start's
// context is the session's cancellation signal. Done is the run
// loop's completion channel: it carries the terminal error when the
// loop fails and closes without a value on clean exit.
//
// # Error handling
//
// Validation failures are sentinel errors (ErrBrokersRequired,
// ErrTopicRequired, ErrMessageRequired) raised before any I/O.
// Broker errors are translated to package sentinels by TranslateError
// and classified by IsRetryableError and IsPermanentError. Teardown
// failures are logged and swallowed; they never mask the operation's
// primary outcome.
//
// # Dependency injection
//
// FXModule wires the client into an fx application:
//
//	app := fx.New(
//		logger.FXModule,
//		kafka.FXModule,
//		fx.Provide(func() kafka.ClientConfig { return cfg }),
//	)
package kafka
