package kafka

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/starichkov/kafka-go-demo/observability"
)

// kafkaConsumer implements Consumer on top of a segmentio reader.
type kafkaConsumer struct {
	client  *KafkaClient
	groupID string

	mu        sync.Mutex
	connected bool
	reader    *kafka.Reader
}

func (c *kafkaConsumer) Connect(ctx context.Context) error {
	if err := c.client.probeConnection(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = true
	return nil
}

func (c *kafkaConsumer) Subscribe(ctx context.Context, topic string, fromBeginning bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return ErrNotConnected
	}

	startOffset := kafka.LastOffset
	if fromBeginning {
		startOffset = kafka.FirstOffset
	}

	c.reader = kafka.NewReader(kafka.ReaderConfig{
		Brokers:     c.client.brokers,
		GroupID:     c.groupID,
		Topic:       topic,
		MinBytes:    c.client.cfg.MinBytes,
		MaxBytes:    c.client.cfg.MaxBytes,
		MaxWait:     c.client.cfg.MaxWait,
		StartOffset: startOffset,
		Dialer:      c.client.dialer,
		ErrorLogger: createErrorLogger(c.client),
	})
	return nil
}

// Run fetches messages one at a time and hands each to the handler
// before committing its offset, so handler completion gates progress.
// A canceled context or a closed reader ends the loop cleanly.
func (c *kafkaConsumer) Run(ctx context.Context, handler Handler) error {
	c.mu.Lock()
	reader := c.reader
	c.mu.Unlock()
	if reader == nil {
		return ErrNotConnected
	}

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			return TranslateError(err)
		}

		rec := Record{
			Topic:     msg.Topic,
			Partition: msg.Partition,
			Offset:    msg.Offset,
			Key:       msg.Key,
			Value:     msg.Value,
			Time:      msg.Time,
		}
		if len(msg.Headers) > 0 {
			rec.Headers = make(map[string]string, len(msg.Headers))
			for _, h := range msg.Headers {
				rec.Headers[h.Key] = string(h.Value)
			}
		}

		if herr := handler(ctx, rec); herr != nil {
			return herr
		}

		if cerr := reader.CommitMessages(context.Background(), msg); cerr != nil {
			if ctx.Err() != nil || errors.Is(cerr, io.ErrClosedPipe) {
				return nil
			}
			return TranslateError(cerr)
		}
	}
}

func (c *kafkaConsumer) Stop(ctx context.Context) error {
	// The run loop winds down through context cancellation or
	// Disconnect; group membership is released on Disconnect.
	return nil
}

func (c *kafkaConsumer) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	reader := c.reader
	c.reader = nil
	c.connected = false
	c.mu.Unlock()

	if reader == nil {
		return nil
	}
	return reader.Close()
}

// SessionState tracks the consumer session lifecycle.
type SessionState int32

const (
	StateCreated SessionState = iota
	StateConnecting
	StateSubscribed
	StateRunning
	StateStopping
	StateStopped
)

func (s SessionState) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateConnecting:
		return "connecting"
	case StateSubscribed:
		return "subscribed"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// dispatchKey marks contexts handed to message handlers, so Stop can
// tell when it is being called from inside the run loop.
type dispatchKey struct{}

// ConsumerSession owns one subscription and its run loop.
//
// Lifecycle: Created -> Connecting -> Subscribed -> Running -> Stopping
// -> Stopped. Start drives the session to Running, launching the run
// loop in a background goroutine; the loop's startup is retried with
// backoff, and exhausting the retry budget fails the session through
// Done. Stop tears the session down idempotently.
//
// The session is the exclusive owner of its broker connection; callers
// interact only through Start, Stop, Done, and State.
type ConsumerSession struct {
	client   Client
	log      Logger
	observer observability.Observer
	retry    RetryPolicy

	// id tags dispatch contexts so Stop can recognize handler-initiated calls
	id string

	state      atomic.Int32
	running    atomic.Bool
	stopping   atomic.Bool
	dispatched atomic.Int64

	mu        sync.Mutex
	consumer  Consumer
	handler   Handler
	cancelRun context.CancelFunc

	// loopDone closes when the run loop goroutine has fully exited
	loopDone chan struct{}

	// done is the run loop's completion signal: it carries the
	// terminal error when the loop fails, then closes
	done chan error

	stopOnce       sync.Once
	disconnectOnce sync.Once
}

// NewConsumerSession creates a consumer session over the given broker
// client. A nil logger disables session logging.
func NewConsumerSession(client Client, log Logger) *ConsumerSession {
	if log == nil {
		log = nopLogger{}
	}
	return &ConsumerSession{
		client:   client,
		log:      log,
		retry:    DefaultRunRetryPolicy(),
		id:       uuid.NewString(),
		loopDone: make(chan struct{}),
		done:     make(chan error, 1),
	}
}

// WithObserver attaches an observer notified of each consume dispatch.
// Returns the session for method chaining.
func (s *ConsumerSession) WithObserver(observer observability.Observer) *ConsumerSession {
	s.observer = observer
	return s
}

// WithRetryPolicy overrides the run-loop startup retry policy.
// Returns the session for method chaining.
func (s *ConsumerSession) WithRetryPolicy(policy RetryPolicy) *ConsumerSession {
	s.retry = policy
	return s
}

// State reports the session's current lifecycle state.
func (s *ConsumerSession) State() SessionState {
	return SessionState(s.state.Load())
}

// Done is the run loop's completion signal. It yields the terminal
// error when the loop failed (startup retries exhausted or a handler
// error) and closes without a value on clean exit.
func (s *ConsumerSession) Done() <-chan error {
	return s.done
}

// Start validates the configuration, connects with the configured
// consumer group, subscribes to the topic, optionally waits for the
// group coordinator, and launches the run loop.
//
// ctx is the session's cancellation signal: cancellation, whenever it
// fires, drives the session to Stopping exactly once. A context that
// is already canceled stops the session immediately after startup.
//
// Errors before the run loop starts (validation, connect, subscribe,
// readiness) are returned synchronously and leave the session Stopped.
// Later failures surface through Done.
func (s *ConsumerSession) Start(ctx context.Context, cfg ConsumerConfig) error {
	brokers := NormalizeBrokers(cfg.Brokers)
	if len(brokers) == 0 {
		return ErrBrokersRequired
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return ErrTopicRequired
	}

	if !s.state.CompareAndSwap(int32(StateCreated), int32(StateConnecting)) {
		return ErrSessionAlreadyStarted
	}

	if cfg.ReadinessTimeout == 0 {
		cfg.ReadinessTimeout = DefaultReadinessTimeout
	}
	if cfg.ReadinessInterval == 0 {
		cfg.ReadinessInterval = DefaultReadinessInterval
	}
	if cfg.CoordinatorDelay == 0 {
		cfg.CoordinatorDelay = DefaultCoordinatorDelay
	}

	handler := cfg.Handler
	if handler == nil {
		handler = s.defaultHandler
	}

	consumer := s.client.Consumer(cfg.GroupID)
	if err := consumer.Connect(ctx); err != nil {
		s.settleEarly()
		return err
	}

	s.mu.Lock()
	s.consumer = consumer
	s.handler = handler
	s.mu.Unlock()

	if err := consumer.Subscribe(ctx, cfg.Topic, cfg.FromBeginning); err != nil {
		s.disconnect(ctx)
		s.settleEarly()
		return err
	}
	s.setState(StateSubscribed)
	s.log.InfoWithContext(ctx, "Subscribed", nil, map[string]interface{}{
		"topic":          cfg.Topic,
		"group_id":       cfg.GroupID,
		"from_beginning": cfg.FromBeginning,
		"session":        s.id,
	})

	// Pre-run wait: avoid starting the run loop before the group
	// coordinator is reachable. Polled when the client has an admin
	// capability, a fixed delay otherwise, skipped in fast-start mode.
	if !cfg.FastStart {
		if admin := s.client.Admin(); admin != nil {
			if err := waitForCluster(ctx, admin, s.log, cfg.ReadinessTimeout, cfg.ReadinessInterval); err != nil {
				s.disconnect(ctx)
				s.settleEarly()
				return err
			}
		} else if err := sleepContext(ctx, cfg.CoordinatorDelay); err != nil {
			s.disconnect(ctx)
			s.settleEarly()
			return TranslateError(err)
		}
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.cancelRun = cancel
	s.mu.Unlock()

	s.running.Store(true)

	go s.watchCancellation(ctx)
	go s.runLoop(runCtx, consumer)

	return nil
}

// watchCancellation is the session's single observer of the
// cancellation signal. An already-canceled context fires immediately.
func (s *ConsumerSession) watchCancellation(ctx context.Context) {
	select {
	case <-ctx.Done():
		s.log.InfoWithContext(context.Background(), "Cancellation signal received, stopping session", nil, map[string]interface{}{
			"session": s.id,
		})
		_ = s.Stop(context.Background())
	case <-s.loopDone:
	}
}

// runLoop drives the blocking consumer run, retrying synchronous
// startup failures. A failure counts as "startup" only while no
// message has been dispatched and no stop is underway.
func (s *ConsumerSession) runLoop(runCtx context.Context, consumer Consumer) {
	defer close(s.loopDone)

	policy := s.retry
	policy.RetryIf = func(err error) bool {
		return s.dispatched.Load() == 0 && !s.stopping.Load()
	}
	policy.OnRetry = func(attempt int, err error) {
		s.setState(StateSubscribed)
		s.log.WarnWithContext(runCtx, "Run loop startup failed, retrying", err, map[string]interface{}{
			"attempt": attempt,
			"session": s.id,
		})
	}

	err := policy.Do(runCtx, func() error {
		s.setState(StateRunning)
		return consumer.Run(runCtx, s.dispatch)
	})

	s.running.Store(false)

	if err != nil {
		s.log.ErrorWithContext(context.Background(), "Run loop terminated", err, map[string]interface{}{
			"session": s.id,
		})
		s.done <- err
	} else {
		s.log.InfoWithContext(context.Background(), "Run loop exited", nil, map[string]interface{}{
			"session": s.id,
		})
	}
	close(s.done)

	if !s.stopping.Load() {
		// The loop died on its own: startup retries exhausted or a
		// handler failure. The session settles without teardown; a
		// consumer whose run never started has nothing to stop.
		s.setState(StateStopped)
	}
}

// dispatch delivers one record to the handler. Deliveries arriving
// after the session left Running are suppressed; the broker client's
// internal delivery must not reach the handler once stopping.
func (s *ConsumerSession) dispatch(ctx context.Context, rec Record) error {
	if !s.running.Load() {
		return nil
	}
	s.dispatched.Add(1)

	dctx := context.WithValue(ctx, dispatchKey{}, s.id)
	start := time.Now()
	err := s.handler(dctx, rec)
	observeOperation(s.observer, "consume", rec.Topic, strconv.Itoa(rec.Partition), time.Since(start), err, int64(len(rec.Value)))
	return err
}

// defaultHandler logs each message at info severity.
func (s *ConsumerSession) defaultHandler(ctx context.Context, rec Record) error {
	s.log.InfoWithContext(ctx, "Message received", nil, map[string]interface{}{
		"topic":     rec.Topic,
		"partition": rec.Partition,
		"key":       string(rec.Key),
		"value":     string(rec.Value),
	})
	return nil
}

// Stop winds the session down: it stops the run loop, awaits its full
// exit, then disconnects. Failures in either step are logged and
// swallowed; Stop always completes. Calling Stop again is a no-op that
// still returns successfully.
//
// Stop may be called from inside a message handler by passing the
// handler's context; in that case Stop does not await the run loop
// (the handler is part of it) and the loop winds down as soon as the
// handler returns. Errors the run loop carried are suppressed here;
// observe them through Done instead.
func (s *ConsumerSession) Stop(ctx context.Context) error {
	// Never started: nothing to tear down.
	if s.state.CompareAndSwap(int32(StateCreated), int32(StateStopped)) {
		return nil
	}

	s.stopOnce.Do(func() {
		s.stopping.Store(true)
		s.running.Store(false)
		s.setState(StateStopping)

		s.mu.Lock()
		cancel := s.cancelRun
		consumer := s.consumer
		s.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		if consumer != nil {
			if err := consumer.Stop(ctx); err != nil {
				s.log.WarnWithContext(ctx, "Failed to stop consumer", err, map[string]interface{}{
					"session": s.id,
				})
			}
		}
	})

	if !s.calledFromDispatch(ctx) {
		<-s.loopDone
	}

	s.disconnect(ctx)
	s.setState(StateStopped)
	return nil
}

// disconnect releases the consumer connection exactly once; failures
// are logged and swallowed.
func (s *ConsumerSession) disconnect(ctx context.Context) {
	s.disconnectOnce.Do(func() {
		s.mu.Lock()
		consumer := s.consumer
		s.mu.Unlock()
		if consumer == nil {
			return
		}
		if err := consumer.Disconnect(ctx); err != nil {
			s.log.WarnWithContext(ctx, "Failed to disconnect consumer", err, map[string]interface{}{
				"session": s.id,
			})
		}
	})
}

// settleEarly marks a session that failed before its run loop started,
// so Done and Stop never block on a loop that will not run.
func (s *ConsumerSession) settleEarly() {
	s.setState(StateStopped)
	close(s.loopDone)
	close(s.done)
}

func (s *ConsumerSession) calledFromDispatch(ctx context.Context) bool {
	id, _ := ctx.Value(dispatchKey{}).(string)
	return id == s.id
}

func (s *ConsumerSession) setState(st SessionState) {
	s.state.Store(int32(st))
}
