package kafka

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/starichkov/kafka-go-demo/observability"
)

// kafkaProducer implements Producer on top of a segmentio writer.
type kafkaProducer struct {
	client *KafkaClient

	mu     sync.Mutex
	writer *kafka.Writer
}

func (p *kafkaProducer) Connect(ctx context.Context) error {
	if err := p.client.probeConnection(ctx); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(p.client.brokers...),
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequiredAcks(p.client.cfg.RequiredAcks),
		WriteTimeout: p.client.cfg.WriteTimeout,
		Transport:    p.client.transport,
		ErrorLogger:  createErrorLogger(p.client),
	}
	return nil
}

func (p *kafkaProducer) Send(ctx context.Context, rec Record) error {
	p.mu.Lock()
	writer := p.writer
	p.mu.Unlock()

	if writer == nil {
		return ErrNotConnected
	}

	msg := kafka.Message{
		Topic: rec.Topic,
		Key:   rec.Key, // nil stays nil: no key on the wire
		Value: rec.Value,
		Time:  rec.Time,
	}
	if len(rec.Headers) > 0 {
		headers := make([]kafka.Header, 0, len(rec.Headers))
		for key, val := range rec.Headers {
			headers = append(headers, kafka.Header{Key: key, Value: []byte(val)})
		}
		msg.Headers = headers
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		return TranslateError(err)
	}
	return nil
}

func (p *kafkaProducer) Disconnect(ctx context.Context) error {
	p.mu.Lock()
	writer := p.writer
	p.writer = nil
	p.mu.Unlock()

	if writer == nil {
		return nil
	}
	return writer.Close()
}

// ProducerSession owns a single producer connection and sends exactly
// one payload through it. The connection is released on every exit
// path, whether the send succeeds or fails. The send itself is never
// retried; a failed send propagates to the caller after the connection
// is released.
type ProducerSession struct {
	client     Client
	log        Logger
	observer   observability.Observer
	serializer Serializer
}

// NewProducerSession creates a producer session over the given broker
// client. A nil logger disables session logging.
func NewProducerSession(client Client, log Logger) *ProducerSession {
	if log == nil {
		log = nopLogger{}
	}
	return &ProducerSession{
		client:     client,
		log:        log,
		serializer: &JSONSerializer{},
	}
}

// WithObserver attaches an observer notified of the produce operation.
// Returns the session for method chaining.
func (s *ProducerSession) WithObserver(observer observability.Observer) *ProducerSession {
	s.observer = observer
	return s
}

// WithSerializer overrides the payload serializer. Returns the session
// for method chaining.
func (s *ProducerSession) WithSerializer(serializer Serializer) *ProducerSession {
	s.serializer = serializer
	return s
}

// Send validates the configuration, connects, publishes one message,
// and disconnects.
//
// Validation happens before any connection attempt and fails with a
// distinct error for each missing input: ErrBrokersRequired,
// ErrTopicRequired, ErrMessageRequired.
//
// When cfg.WaitForCluster is set and the client exposes an admin
// capability, a cluster-metadata probe is polled at a fixed interval
// until it succeeds or the timeout budget elapses. A client without an
// admin capability skips the wait entirely.
//
// The payload is transmitted as-is when it is already text or raw
// bytes, and serialized to JSON otherwise. A nil cfg.Key produces a
// message without a key.
func (s *ProducerSession) Send(ctx context.Context, cfg ProducerConfig) error {
	brokers := NormalizeBrokers(cfg.Brokers)
	if len(brokers) == 0 {
		return ErrBrokersRequired
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return ErrTopicRequired
	}
	if cfg.Value == nil {
		return ErrMessageRequired
	}

	value, err := s.serializer.Serialize(cfg.Value)
	if err != nil {
		return err
	}

	if cfg.ReadinessTimeout == 0 {
		cfg.ReadinessTimeout = DefaultReadinessTimeout
	}
	if cfg.ReadinessInterval == 0 {
		cfg.ReadinessInterval = DefaultReadinessInterval
	}

	if cfg.WaitForCluster {
		if err := waitForCluster(ctx, s.client.Admin(), s.log, cfg.ReadinessTimeout, cfg.ReadinessInterval); err != nil {
			return err
		}
	}

	producer := s.client.Producer()
	defer func() {
		if derr := producer.Disconnect(context.Background()); derr != nil {
			s.log.WarnWithContext(ctx, "Failed to disconnect producer", derr, map[string]interface{}{
				"topic": cfg.Topic,
			})
		}
	}()

	if err := producer.Connect(ctx); err != nil {
		return err
	}

	rec := Record{
		Topic:   cfg.Topic,
		Key:     cfg.Key,
		Value:   value,
		Headers: cfg.Headers,
		Time:    time.Now(),
	}

	start := time.Now()
	err = producer.Send(ctx, rec)
	observeOperation(s.observer, "produce", cfg.Topic, "", time.Since(start), err, int64(len(value)))
	if err != nil {
		return err
	}

	s.log.InfoWithContext(ctx, "Message delivered", nil, map[string]interface{}{
		"topic": cfg.Topic,
		"bytes": len(value),
	})
	return nil
}
