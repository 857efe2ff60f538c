package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// kafkaAdmin implements Admin using the segmentio request/response client.
type kafkaAdmin struct {
	client *KafkaClient

	mu   sync.Mutex
	conn *kafka.Client
}

func (a *kafkaAdmin) Connect(ctx context.Context) error {
	if err := a.client.probeConnection(ctx); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.conn = &kafka.Client{
		Addr:      kafka.TCP(a.client.brokers...),
		Timeout:   a.client.cfg.WriteTimeout,
		Transport: a.client.transport,
	}
	return nil
}

func (a *kafkaAdmin) DescribeCluster(ctx context.Context) (ClusterInfo, error) {
	start := time.Now()
	info, err := a.describeCluster(ctx)
	observeOperation(a.client.observer, "describe_cluster", "", "", time.Since(start), err, 0)
	return info, err
}

func (a *kafkaAdmin) describeCluster(ctx context.Context) (ClusterInfo, error) {
	conn, err := a.connection()
	if err != nil {
		return ClusterInfo{}, err
	}

	resp, err := conn.Metadata(ctx, &kafka.MetadataRequest{})
	if err != nil {
		return ClusterInfo{}, TranslateError(err)
	}

	info := ClusterInfo{ControllerID: resp.Controller.ID}
	for _, b := range resp.Brokers {
		info.Brokers = append(info.Brokers, BrokerInfo{
			ID:   b.ID,
			Host: b.Host,
			Port: b.Port,
		})
	}
	return info, nil
}

func (a *kafkaAdmin) ListTopics(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := a.listTopics(ctx)
	observeOperation(a.client.observer, "list_topics", "", "", time.Since(start), err, 0)
	return names, err
}

func (a *kafkaAdmin) listTopics(ctx context.Context) ([]string, error) {
	conn, err := a.connection()
	if err != nil {
		return nil, err
	}

	resp, err := conn.Metadata(ctx, &kafka.MetadataRequest{})
	if err != nil {
		return nil, TranslateError(err)
	}

	var names []string
	for _, t := range resp.Topics {
		if t.Internal {
			continue
		}
		names = append(names, t.Name)
	}
	return names, nil
}

func (a *kafkaAdmin) CreateTopics(ctx context.Context, topics ...TopicConfig) error {
	start := time.Now()
	names := make([]string, 0, len(topics))
	for _, t := range topics {
		names = append(names, t.Name)
	}
	err := a.createTopics(ctx, topics)
	observeOperation(a.client.observer, "create_topics", strings.Join(names, ","), "", time.Since(start), err, 0)
	return err
}

func (a *kafkaAdmin) createTopics(ctx context.Context, topics []TopicConfig) error {
	conn, err := a.connection()
	if err != nil {
		return err
	}

	req := &kafka.CreateTopicsRequest{}
	for _, t := range topics {
		req.Topics = append(req.Topics, kafka.TopicConfig{
			Topic:             t.Name,
			NumPartitions:     t.NumPartitions,
			ReplicationFactor: t.ReplicationFactor,
		})
	}

	resp, err := conn.CreateTopics(ctx, req)
	if err != nil {
		return TranslateError(err)
	}
	for _, topicErr := range resp.Errors {
		if topicErr != nil {
			return TranslateError(topicErr)
		}
	}
	return nil
}

func (a *kafkaAdmin) Disconnect(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	// The request/response client holds no persistent state of its own;
	// pooled connections live in the shared transport.
	a.conn = nil
	return nil
}

func (a *kafkaAdmin) connection() (*kafka.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.conn == nil {
		return nil, ErrNotConnected
	}
	return a.conn, nil
}

// waitForCluster polls a cluster-metadata probe at a fixed interval
// until it succeeds or the timeout budget elapses. A nil admin means
// the client has no readiness-check capability; the wait is skipped
// entirely, which is a defined no-op, not an error.
func waitForCluster(ctx context.Context, admin Admin, log Logger, timeout, interval time.Duration) error {
	if admin == nil {
		return nil
	}

	if err := admin.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		if derr := admin.Disconnect(context.Background()); derr != nil {
			log.WarnWithContext(ctx, "Failed to disconnect admin", derr, nil)
		}
	}()

	deadline := time.Now().Add(timeout)
	var lastErr error
	for attempt := 1; ; attempt++ {
		info, err := admin.DescribeCluster(ctx)
		if err == nil && len(info.Brokers) > 0 {
			log.InfoWithContext(ctx, "Cluster ready", nil, map[string]interface{}{
				"brokers":  len(info.Brokers),
				"attempts": attempt,
			})
			return nil
		}
		if err == nil {
			err = ErrBrokerNotAvailable
		}
		lastErr = err

		if time.Now().After(deadline) {
			break
		}
		log.WarnWithContext(ctx, "Cluster not ready, retrying", err, map[string]interface{}{
			"attempt": attempt,
		})
		if serr := sleepContext(ctx, interval); serr != nil {
			break
		}
	}
	return &clusterNotReadyError{cause: lastErr}
}

// clusterNotReadyError wraps the last probe failure so callers can
// match ErrClusterNotReady while still seeing the underlying cause.
type clusterNotReadyError struct {
	cause error
}

func (e *clusterNotReadyError) Error() string {
	if e.cause == nil {
		return ErrClusterNotReady.Error()
	}
	return ErrClusterNotReady.Error() + ": " + e.cause.Error()
}

func (e *clusterNotReadyError) Is(target error) bool {
	return target == ErrClusterNotReady
}

func (e *clusterNotReadyError) Unwrap() error {
	return e.cause
}

// EnsureTopic creates the topic if the cluster does not already have it.
// Best effort: a topic that already exists is fine, and clients without
// an admin capability skip the creation silently.
func EnsureTopic(ctx context.Context, client Client, log Logger, topic TopicConfig) error {
	admin := client.Admin()
	if admin == nil {
		return nil
	}
	if log == nil {
		log = nopLogger{}
	}

	if err := admin.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		if derr := admin.Disconnect(context.Background()); derr != nil {
			log.WarnWithContext(ctx, "Failed to disconnect admin", derr, nil)
		}
	}()

	start := time.Now()
	err := admin.CreateTopics(ctx, topic)
	if errors.Is(err, ErrTopicAlreadyExists) {
		log.InfoWithContext(ctx, "Topic already exists", nil, map[string]interface{}{
			"topic": topic.Name,
		})
		return nil
	}
	if err != nil {
		return err
	}

	log.InfoWithContext(ctx, "Topic created", nil, map[string]interface{}{
		"topic":      topic.Name,
		"partitions": topic.NumPartitions,
		"took":       time.Since(start).String(),
	})
	return nil
}
