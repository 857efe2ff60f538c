package observability_test

import (
	"errors"
	"testing"
	"time"

	"github.com/starichkov/kafka-go-demo/observability"
)

func TestOperationContext(t *testing.T) {
	ctx := observability.OperationContext{
		Component:   "kafka",
		Operation:   "produce",
		Resource:    "demo-topic",
		SubResource: "",
		Duration:    12 * time.Millisecond,
		Error:       nil,
		Size:        2048,
		Metadata: map[string]interface{}{
			"offset": "12345",
		},
	}

	if ctx.Component != "kafka" {
		t.Errorf("expected component 'kafka', got '%s'", ctx.Component)
	}

	if ctx.Operation != "produce" {
		t.Errorf("expected operation 'produce', got '%s'", ctx.Operation)
	}

	if ctx.Duration != 12*time.Millisecond {
		t.Errorf("expected duration 12ms, got %v", ctx.Duration)
	}
}

func TestNoOpObserver(t *testing.T) {
	observer := observability.NewNoOpObserver()

	// Should not panic
	observer.ObserveOperation(observability.OperationContext{
		Component: "test",
		Operation: "test",
	})
}

// Mock observer for testing
type mockObserver struct {
	called bool
	ctx    observability.OperationContext
}

func (m *mockObserver) ObserveOperation(ctx observability.OperationContext) {
	m.called = true
	m.ctx = ctx
}

func TestMockObserver(t *testing.T) {
	mock := &mockObserver{}

	ctx := observability.OperationContext{
		Component: "kafka",
		Operation: "consume",
		Resource:  "demo-topic",
		Duration:  10 * time.Millisecond,
		Error:     errors.New("fetch failed"),
	}

	mock.ObserveOperation(ctx)

	if !mock.called {
		t.Error("expected observer to be called")
	}

	if mock.ctx.Operation != "consume" {
		t.Errorf("expected operation 'consume', got '%s'", mock.ctx.Operation)
	}
}
