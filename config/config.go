// Package config loads the demo's runtime configuration from the process
// environment, with an optional YAML or JSON file overlay.
//
// Resolution order, lowest to highest precedence: built-in defaults, the
// file named by CONFIG_FILE, then individual environment variables. This
// keeps container deployments (file-based) and local runs (env-based)
// working from the same binary.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starichkov/kafka-go-demo/kafka"
	"github.com/starichkov/kafka-go-demo/logger"
)

// Default values applied when neither the environment nor the config file
// provides a setting.
const (
	DefaultBrokers  = "localhost:9092"
	DefaultClientID = "kafka-go-demo"
	DefaultTopic    = "demo-topic"
	DefaultGroupID  = "kafka-go-demo-group"
	DefaultMessage  = "hello from producer"
	DefaultLogLevel = "info"
)

// Config holds every setting the producer and consumer drivers consume.
type Config struct {
	// Brokers is a comma-separated broker list (KAFKA_BROKERS)
	Brokers string `yaml:"brokers" json:"brokers"`

	// ClientID identifies the client to the brokers (KAFKA_CLIENT_ID)
	ClientID string `yaml:"client_id" json:"client_id"`

	// Topic to produce to or consume from (KAFKA_TOPIC)
	Topic string `yaml:"topic" json:"topic"`

	// GroupID is the consumer group (KAFKA_GROUP_ID)
	GroupID string `yaml:"group_id" json:"group_id"`

	// FromBeginning starts new groups at the earliest offset (FROM_BEGINNING)
	FromBeginning bool `yaml:"from_beginning" json:"from_beginning"`

	// Message is the payload the producer driver sends (MESSAGE)
	Message string `yaml:"message" json:"message"`

	// Key is the optional message key; empty means the record is sent
	// without one (KEY)
	Key string `yaml:"key" json:"key"`

	// LogLevel is the logging threshold: trace|debug|info|warn|error|fatal
	// (LOG_LEVEL)
	LogLevel string `yaml:"log_level" json:"log_level"`

	// MetricsAddr is the listen address of the Prometheus endpoint; empty
	// disables the metrics server (METRICS_ADDR)
	MetricsAddr string `yaml:"metrics_addr" json:"metrics_addr"`

	// TraceExport enables OTLP span export (TRACE_EXPORT)
	TraceExport bool `yaml:"trace_export" json:"trace_export"`

	// OTLPEndpoint is the collector endpoint for span export (OTLP_ENDPOINT)
	OTLPEndpoint string `yaml:"otlp_endpoint" json:"otlp_endpoint"`

	// FastStart skips the consumer's pre-run coordinator wait
	// (KAFKA_FAST_START)
	FastStart bool `yaml:"fast_start" json:"fast_start"`

	// CreateTopic makes the drivers create the topic before use
	// (KAFKA_CREATE_TOPIC)
	CreateTopic bool `yaml:"create_topic" json:"create_topic"`
}

// Load builds a Config from defaults, the optional CONFIG_FILE overlay,
// and the environment.
//
// Returns:
//   - *Config: The resolved configuration
//   - error: Malformed config file or boolean environment value
func Load() (*Config, error) {
	cfg := &Config{
		Brokers:  DefaultBrokers,
		ClientID: DefaultClientID,
		Topic:    DefaultTopic,
		GroupID:  DefaultGroupID,
		Message:  DefaultMessage,
		LogLevel: DefaultLogLevel,

		FromBeginning: true,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	applyString(&cfg.Brokers, "KAFKA_BROKERS")
	applyString(&cfg.ClientID, "KAFKA_CLIENT_ID")
	applyString(&cfg.Topic, "KAFKA_TOPIC")
	applyString(&cfg.GroupID, "KAFKA_GROUP_ID")
	applyString(&cfg.Message, "MESSAGE")
	applyString(&cfg.Key, "KEY")
	applyString(&cfg.LogLevel, "LOG_LEVEL")
	applyString(&cfg.MetricsAddr, "METRICS_ADDR")
	applyString(&cfg.OTLPEndpoint, "OTLP_ENDPOINT")

	if err := applyBool(&cfg.FromBeginning, "FROM_BEGINNING"); err != nil {
		return nil, err
	}
	if err := applyBool(&cfg.TraceExport, "TRACE_EXPORT"); err != nil {
		return nil, err
	}
	if err := applyBool(&cfg.FastStart, "KAFKA_FAST_START"); err != nil {
		return nil, err
	}
	if err := applyBool(&cfg.CreateTopic, "KAFKA_CREATE_TOPIC"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if strings.HasSuffix(path, ".json") {
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func applyBool(dst *bool, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid boolean value %q for %s: %w", v, key, err)
	}
	*dst = parsed
	return nil
}

// KeyBytes returns the message key as bytes, or nil when no key is
// configured so the record goes out without one.
func (c *Config) KeyBytes() []byte {
	if c.Key == "" {
		return nil
	}
	return []byte(c.Key)
}

// ClientConfig derives the Kafka client settings.
func (c *Config) ClientConfig() kafka.ClientConfig {
	return kafka.ClientConfig{
		ClientID: c.ClientID,
		Brokers:  c.Brokers,
	}
}

// ProducerConfig derives the one-shot producer invocation settings.
func (c *Config) ProducerConfig() kafka.ProducerConfig {
	return kafka.ProducerConfig{
		Brokers:        c.Brokers,
		Topic:          c.Topic,
		Value:          c.Message,
		Key:            c.KeyBytes(),
		WaitForCluster: !c.FastStart,
	}
}

// ConsumerConfig derives the consumer session settings. The handler is
// left nil; callers install their own or rely on the session's default.
func (c *Config) ConsumerConfig() kafka.ConsumerConfig {
	return kafka.ConsumerConfig{
		Brokers:       c.Brokers,
		Topic:         c.Topic,
		GroupID:       c.GroupID,
		FromBeginning: c.FromBeginning,
		FastStart:     c.FastStart,
	}
}

// LoggerConfig derives the logger settings for the given service name.
func (c *Config) LoggerConfig(serviceName string) logger.Config {
	return logger.Config{
		Level:         c.LogLevel,
		ServiceName:   serviceName,
		EnableTracing: c.TraceExport,
	}
}
