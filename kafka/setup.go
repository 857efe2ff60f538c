package kafka

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"

	"github.com/starichkov/kafka-go-demo/observability"
)

// KafkaClient hands out producers, consumers, and admin objects backed
// by segmentio/kafka-go. The client itself holds no broker connection;
// each object it creates owns its own and is released via Disconnect.
//
// KafkaClient implements the Client interface.
type KafkaClient struct {
	// cfg stores the configuration for this Kafka client
	cfg ClientConfig

	// brokers is the normalized endpoint list
	brokers []string

	// observer provides optional observability hooks for tracking operations
	observer observability.Observer

	// logger provides optional logging for lifecycle and background operations
	logger Logger

	// transport is shared by writers and the admin client; carries TLS/SASL
	transport *kafka.Transport

	// dialer is used by readers and connection probes; carries TLS/SASL
	dialer *kafka.Dialer
}

// NewClient creates and initializes a new KafkaClient with the provided configuration.
//
// Parameters:
//   - cfg: Configuration for connecting to Kafka
//
// Returns a new KafkaClient instance that is ready to use, or an error
// when the endpoint list is empty or TLS/SASL setup fails.
//
// Example:
//
//	client, err := kafka.NewClient(kafka.ClientConfig{
//		ClientID: "my-service",
//		Brokers:  "localhost:9092",
//	})
//	if err != nil {
//		return err
//	}
func NewClient(cfg ClientConfig) (*KafkaClient, error) {
	// Apply defaults
	if cfg.RequiredAcks == 0 {
		cfg.RequiredAcks = DefaultRequiredAcks
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.MinBytes == 0 {
		cfg.MinBytes = DefaultMinBytes
	}
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.MaxWait == 0 {
		cfg.MaxWait = DefaultMaxWait
	}

	brokers := NormalizeBrokers(cfg.Brokers)
	if len(brokers) == 0 {
		return nil, ErrBrokersRequired
	}

	var tlsConfig *tls.Config
	var err error
	if cfg.TLS.Enabled {
		tlsConfig, err = createTLSConfig(cfg.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	var mechanism sasl.Mechanism
	if cfg.SASL.Enabled {
		mechanism, err = createSASLMechanism(cfg.SASL)
		if err != nil {
			return nil, fmt.Errorf("failed to create SASL mechanism: %w", err)
		}
	}

	k := &KafkaClient{
		cfg:     cfg,
		brokers: brokers,
		transport: &kafka.Transport{
			ClientID: cfg.ClientID,
			TLS:      tlsConfig,
			SASL:     mechanism,
		},
		dialer: &kafka.Dialer{
			ClientID:      cfg.ClientID,
			TLS:           tlsConfig,
			SASLMechanism: mechanism,
		},
	}

	return k, nil
}

// WithObserver attaches an observer to the Kafka client for tracking operations.
// This method uses the builder pattern and returns the client for method chaining.
//
// The observer is notified of admin operations performed through
// Admin(). Producer and consumer sessions carry their own observer.
func (k *KafkaClient) WithObserver(observer observability.Observer) *KafkaClient {
	k.observer = observer
	return k
}

// WithLogger attaches a logger to the Kafka client for internal logging.
// This method uses the builder pattern and returns the client for method chaining.
//
// The logger will be used for lifecycle events and cleanup errors.
func (k *KafkaClient) WithLogger(logger Logger) *KafkaClient {
	k.logger = logger
	return k
}

// Producer returns a new producer owning its own writer.
func (k *KafkaClient) Producer() Producer {
	return &kafkaProducer{client: k}
}

// Consumer returns a new consumer bound to the given consumer group.
func (k *KafkaClient) Consumer(groupID string) Consumer {
	return &kafkaConsumer{client: k, groupID: groupID}
}

// Admin returns an admin object for cluster metadata and topic management.
func (k *KafkaClient) Admin() Admin {
	return &kafkaAdmin{client: k}
}

// GracefulShutdown releases pooled connections held by the shared transport.
// Producer, consumer, and admin objects release their own connections via
// Disconnect; this only cleans up what the client itself retains.
func (k *KafkaClient) GracefulShutdown() {
	k.logInfo(context.Background(), "Closing Kafka client", nil)
	k.transport.CloseIdleConnections()
}

// logInfo logs an informational message using the configured logger if available.
func (k *KafkaClient) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if k.logger != nil {
		k.logger.InfoWithContext(ctx, msg, nil, fields)
	}
	// Silently skip if no logger configured
}

// createErrorLogger creates a Kafka error logger from the client's logger
func createErrorLogger(client *KafkaClient) kafka.LoggerFunc {
	if client.logger != nil {
		return func(msg string, args ...interface{}) {
			formattedMsg := msg
			if len(args) > 0 {
				formattedMsg = fmt.Sprintf(msg, args...)
			}
			client.logger.ErrorWithContext(context.Background(), "Kafka internal error", nil, map[string]interface{}{
				"error": formattedMsg,
			})
		}
	}

	// If no logger, silently ignore; library errors are returned to the
	// caller instead
	return func(msg string, args ...interface{}) {}
}

// probeConnection dials the first broker to verify basic reachability.
// segmentio/kafka-go connects lazily, so this gives Connect real
// error semantics instead of deferring failures to the first I/O.
func (k *KafkaClient) probeConnection(ctx context.Context) error {
	conn, err := k.dialer.DialContext(ctx, "tcp", k.brokers[0])
	if err != nil {
		return TranslateError(err)
	}
	return conn.Close()
}

// createTLSConfig creates a TLS configuration from the provided config
func createTLSConfig(cfg TLSConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec
	}

	// Load CA certificate
	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert")
		}
		tlsConfig.RootCAs = caCertPool
	}

	// Load client certificate
	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// createSASLMechanism creates a SASL mechanism from the provided config
func createSASLMechanism(cfg SASLConfig) (sasl.Mechanism, error) {
	switch cfg.Mechanism {
	case "PLAIN":
		return plain.Mechanism{
			Username: cfg.Username,
			Password: cfg.Password,
		}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, cfg.Username, cfg.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, cfg.Username, cfg.Password)
	default:
		return nil, fmt.Errorf("unsupported SASL mechanism: %s", cfg.Mechanism)
	}
}
