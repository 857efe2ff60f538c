package kafka

import (
	"context"
	"sync"

	"github.com/starichkov/kafka-go-demo/observability"
)

// Substitute broker client used by the session tests. The fakes record
// every call so tests can assert on lifecycle ordering and teardown.

type fakeClient struct {
	producer *fakeProducer
	consumer *fakeConsumer
	admin    Admin

	mu      sync.Mutex
	groupID string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		producer: &fakeProducer{},
		consumer: &fakeConsumer{},
	}
}

func (f *fakeClient) Producer() Producer { return f.producer }

func (f *fakeClient) Consumer(groupID string) Consumer {
	f.mu.Lock()
	f.groupID = groupID
	f.mu.Unlock()
	return f.consumer
}

func (f *fakeClient) Admin() Admin { return f.admin }

type fakeProducer struct {
	mu sync.Mutex

	connectCalls    int
	sendCalls       int
	disconnectCalls int

	connectErr error
	sendErr    error
	sent       []Record
}

func (p *fakeProducer) Connect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connectCalls++
	return p.connectErr
}

func (p *fakeProducer) Send(ctx context.Context, rec Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sendCalls++
	if p.sendErr != nil {
		return p.sendErr
	}
	p.sent = append(p.sent, rec)
	return nil
}

func (p *fakeProducer) Disconnect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disconnectCalls++
	return nil
}

func (p *fakeProducer) snapshot() fakeProducer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fakeProducer{
		connectCalls:    p.connectCalls,
		sendCalls:       p.sendCalls,
		disconnectCalls: p.disconnectCalls,
		sent:            append([]Record(nil), p.sent...),
	}
}

// fakeConsumer scripts successive Run outcomes through runErrs: a
// non-nil entry makes that Run invocation fail synchronously, a nil
// entry (or running past the slice) delivers the scripted records and
// then blocks until the context is canceled.
type fakeConsumer struct {
	mu sync.Mutex

	connectCalls    int
	subscribeCalls  int
	runCalls        int
	stopCalls       int
	disconnectCalls int

	connectErr    error
	subscribeErr  error
	disconnectErr error

	topic         string
	fromBeginning bool

	runErrs []error
	deliver []Record
}

func (c *fakeConsumer) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connectCalls++
	return c.connectErr
}

func (c *fakeConsumer) Subscribe(ctx context.Context, topic string, fromBeginning bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribeCalls++
	c.topic = topic
	c.fromBeginning = fromBeginning
	return c.subscribeErr
}

func (c *fakeConsumer) Run(ctx context.Context, handler Handler) error {
	c.mu.Lock()
	idx := c.runCalls
	c.runCalls++
	var err error
	if idx < len(c.runErrs) {
		err = c.runErrs[idx]
	}
	deliver := append([]Record(nil), c.deliver...)
	c.mu.Unlock()

	if err != nil {
		return err
	}
	for _, rec := range deliver {
		if herr := handler(ctx, rec); herr != nil {
			return herr
		}
	}
	<-ctx.Done()
	return nil
}

func (c *fakeConsumer) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopCalls++
	return nil
}

func (c *fakeConsumer) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disconnectCalls++
	return c.disconnectErr
}

func (c *fakeConsumer) snapshot() fakeConsumer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fakeConsumer{
		connectCalls:    c.connectCalls,
		subscribeCalls:  c.subscribeCalls,
		runCalls:        c.runCalls,
		stopCalls:       c.stopCalls,
		disconnectCalls: c.disconnectCalls,
		topic:           c.topic,
		fromBeginning:   c.fromBeginning,
	}
}

// fakeAdmin scripts successive DescribeCluster outcomes.
type fakeAdmin struct {
	mu sync.Mutex

	connectCalls    int
	describeCalls   int
	createCalls     int
	disconnectCalls int

	connectErr   error
	describeErrs []error
	createErr    error
	cluster      ClusterInfo
	created      []TopicConfig
}

func (a *fakeAdmin) Connect(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.connectCalls++
	return a.connectErr
}

func (a *fakeAdmin) DescribeCluster(ctx context.Context) (ClusterInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	idx := a.describeCalls
	a.describeCalls++
	if idx < len(a.describeErrs) && a.describeErrs[idx] != nil {
		return ClusterInfo{}, a.describeErrs[idx]
	}
	return a.cluster, nil
}

func (a *fakeAdmin) ListTopics(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (a *fakeAdmin) CreateTopics(ctx context.Context, topics ...TopicConfig) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.createCalls++
	if a.createErr != nil {
		return a.createErr
	}
	a.created = append(a.created, topics...)
	return nil
}

func (a *fakeAdmin) Disconnect(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.disconnectCalls++
	return nil
}

// recordingObserver captures every observed operation for assertions.
type recordingObserver struct {
	mu       sync.Mutex
	observed []observability.OperationContext
}

func (r *recordingObserver) ObserveOperation(ctx observability.OperationContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observed = append(r.observed, ctx)
}

func (r *recordingObserver) snapshot() []observability.OperationContext {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]observability.OperationContext(nil), r.observed...)
}
