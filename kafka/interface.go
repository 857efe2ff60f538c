package kafka

import (
	"context"
	"time"
)

// Client is the broker client surface the sessions depend on.
// It hands out producer, consumer, and admin objects that each own
// their underlying connection.
//
// This interface is implemented by the concrete *KafkaClient type.
// Session logic is expressed purely in terms of this interface so it
// can be exercised against a substitute implementation in tests.
type Client interface {
	// Producer returns a new producer owning its own connection.
	Producer() Producer

	// Consumer returns a new consumer bound to the given consumer group.
	Consumer(groupID string) Consumer

	// Admin returns an admin object for cluster metadata and topic
	// management. Implementations without an admin capability may
	// return nil; callers treat a nil admin as "no readiness check
	// available", which is a defined no-op.
	Admin() Admin
}

// Producer sends messages to the broker. A producer is single-use:
// Connect, one or more Sends, then Disconnect.
type Producer interface {
	// Connect establishes the connection to the broker.
	Connect(ctx context.Context) error

	// Send publishes a single record and waits for acknowledgment.
	Send(ctx context.Context, rec Record) error

	// Disconnect releases the connection. Safe to call even if
	// Connect failed or was never called.
	Disconnect(ctx context.Context) error
}

// Consumer reads messages from a single topic subscription.
type Consumer interface {
	// Connect establishes the connection to the broker using the
	// consumer group the consumer was created with.
	Connect(ctx context.Context) error

	// Subscribe binds the consumer to one topic. When fromBeginning
	// is true, consumption starts at the earliest available offset
	// for groups without a committed position.
	Subscribe(ctx context.Context, topic string, fromBeginning bool) error

	// Run blocks, delivering each message to the handler in delivery
	// order. The handler must complete before the consumer advances
	// past the message. Run returns nil on a clean shutdown (context
	// cancellation or Disconnect) and the terminal error otherwise,
	// including errors returned by the handler.
	Run(ctx context.Context, handler Handler) error

	// Stop requests the run loop to wind down. It does not release
	// the connection; that is Disconnect's job.
	Stop(ctx context.Context) error

	// Disconnect releases the connection and any broker-side group
	// membership. Unblocks a pending Run.
	Disconnect(ctx context.Context) error
}

// Admin exposes cluster metadata and topic management.
type Admin interface {
	Connect(ctx context.Context) error

	// DescribeCluster returns broker membership; used as a readiness
	// probe before producing or starting a consumer run loop.
	DescribeCluster(ctx context.Context) (ClusterInfo, error)

	// ListTopics returns the names of all non-internal topics.
	ListTopics(ctx context.Context) ([]string, error)

	// CreateTopics creates the given topics. Creation of an already
	// existing topic surfaces ErrTopicAlreadyExists.
	CreateTopics(ctx context.Context, topics ...TopicConfig) error

	Disconnect(ctx context.Context) error
}

// Handler processes one delivered record. An error returned from the
// handler is not caught by the session; it terminates the run loop and
// surfaces through the session's completion channel.
type Handler func(ctx context.Context, rec Record) error

// Record is a single message surfaced to the handler or handed to a
// producer. A nil Key means "no key"; it is transmitted as the wire
// protocol's absent marker, never as an empty string.
type Record struct {
	Topic     string
	Partition int
	Offset    int64
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Time      time.Time
}

// ClusterInfo describes broker membership as reported by the cluster.
type ClusterInfo struct {
	ControllerID int
	Brokers      []BrokerInfo
}

// BrokerInfo identifies a single broker node.
type BrokerInfo struct {
	ID   int
	Host string
	Port int
}

// TopicConfig describes a topic to create.
type TopicConfig struct {
	Name              string
	NumPartitions     int
	ReplicationFactor int
}
