package kafka

import (
	"context"
	"time"
)

// ClientConfig defines the configuration for the Kafka client.
// It carries connection-level settings shared by the producer,
// consumer, and admin objects the client hands out.
type ClientConfig struct {
	// ClientID identifies this client to the brokers
	ClientID string

	// Brokers is the list of broker addresses as host:port pairs.
	// Accepts a []string or a comma-separated string; see NormalizeBrokers.
	Brokers any

	// RequiredAcks determines how many replica acknowledgments to wait for
	// Options:
	//   RequireNone (0): Don't wait for acknowledgment (fastest but least safe)
	//   RequireOne (1): Wait for leader only
	//   RequireAll (-1): Wait for all in-sync replicas (most durable)
	// Default: RequireAll (-1)
	RequiredAcks int

	// WriteTimeout is the timeout for write operations
	// Default: 10s
	WriteTimeout time.Duration

	// MinBytes is the minimum number of bytes to fetch in a single request
	// Default: 1 byte
	MinBytes int

	// MaxBytes is the maximum number of bytes to fetch in a single request
	// Default: 10MB
	MaxBytes int

	// MaxWait is the maximum amount of time to wait for MinBytes to become available
	// Default: 10s
	MaxWait time.Duration

	// TLS contains TLS/SSL configuration
	TLS TLSConfig

	// SASL contains SASL authentication configuration
	SASL SASLConfig
}

// ProducerConfig defines one producer session invocation.
type ProducerConfig struct {
	// Brokers is the endpoint list; []string or comma-separated string
	Brokers any

	// Topic is the topic to publish to
	Topic string

	// Value is the message payload. []byte and string are transmitted
	// as-is; any other value is serialized to JSON text.
	Value any

	// Key is the optional message key. nil means no key.
	Key []byte

	// Headers are optional message headers, useful for metadata and
	// distributed tracing propagation
	Headers map[string]string

	// WaitForCluster enables a readiness poll against cluster metadata
	// before producing. Skipped when the client has no admin capability.
	WaitForCluster bool

	// ReadinessTimeout bounds the readiness poll
	// Default: 30s
	ReadinessTimeout time.Duration

	// ReadinessInterval is the probe interval of the readiness poll
	// Default: 2s
	ReadinessInterval time.Duration
}

// ConsumerConfig defines one consumer session.
type ConsumerConfig struct {
	// Brokers is the endpoint list; []string or comma-separated string
	Brokers any

	// Topic is the topic to subscribe to
	Topic string

	// GroupID is the consumer group identifier
	GroupID string

	// FromBeginning starts consumption at the earliest offset for
	// groups without a committed position
	FromBeginning bool

	// Handler processes each delivered record. When nil, a default
	// handler logs topic/partition/key/value at info severity.
	Handler Handler

	// FastStart skips the pre-run coordinator wait. Intended for test
	// environments where the cluster is known to be ready.
	FastStart bool

	// ReadinessTimeout bounds the pre-run readiness poll
	// Default: 30s
	ReadinessTimeout time.Duration

	// ReadinessInterval is the probe interval of the pre-run readiness poll
	// Default: 2s
	ReadinessInterval time.Duration

	// CoordinatorDelay is the fixed pre-run delay used when the client
	// has no admin capability to poll
	// Default: 3s
	CoordinatorDelay time.Duration
}

// Logger is an interface that matches the logger.Logger interface.
// It provides context-aware structured logging with optional error and field parameters.
type Logger interface {
	// InfoWithContext logs an informational message with trace context.
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// WarnWithContext logs a warning message with trace context.
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// ErrorWithContext logs an error message with trace context.
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// nopLogger discards everything; used when a session is constructed
// without a logger.
type nopLogger struct{}

func (nopLogger) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
}
func (nopLogger) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
}
func (nopLogger) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
}

// TLSConfig contains TLS/SSL configuration parameters.
type TLSConfig struct {
	// Enabled determines whether to use TLS/SSL for the connection
	Enabled bool

	// CACertPath is the file path to the CA certificate for verifying the broker
	CACertPath string

	// ClientCertPath is the file path to the client certificate
	ClientCertPath string

	// ClientKeyPath is the file path to the client certificate's private key
	ClientKeyPath string

	// InsecureSkipVerify controls whether to skip verification of the server's certificate
	// WARNING: Setting this to true is insecure and should only be used in testing
	InsecureSkipVerify bool
}

// SASLConfig contains SASL authentication configuration parameters.
type SASLConfig struct {
	// Enabled determines whether to use SASL authentication
	Enabled bool

	// Mechanism specifies the SASL mechanism to use
	// Options: "PLAIN", "SCRAM-SHA-256", "SCRAM-SHA-512"
	Mechanism string

	// Username is the SASL username
	Username string

	// Password is the SASL password
	Password string //nolint:gosec
}

// Default values for configuration
const (
	DefaultMinBytes     = 1
	DefaultMaxBytes     = 10_000_000 // 10MB
	DefaultMaxWait      = 10 * time.Second
	DefaultRequiredAcks = -1 // WaitForAll
	DefaultWriteTimeout = 10 * time.Second

	DefaultReadinessTimeout  = 30 * time.Second
	DefaultReadinessInterval = 2 * time.Second
	DefaultCoordinatorDelay  = 3 * time.Second

	// Run-loop startup retry budget
	DefaultRunAttempts = 3
	DefaultRunBackoff  = 1 * time.Second

	// Producer acknowledgment modes
	RequireNone = 0  // Fire-and-forget (no acknowledgment)
	RequireOne  = 1  // Wait for leader only
	RequireAll  = -1 // Wait for all in-sync replicas (most durable)
)
