package metrics_test

import (
	"testing"

	"github.com/starichkov/kafka-go-demo/metrics"
)

// TestMetricsEndpoint verifies that a configured address yields a server
// and registry ready for scraping.
func TestMetricsEndpoint(t *testing.T) {
	m := metrics.NewMetrics(metrics.Config{
		Address:     ":0",
		ServiceName: "test-service",
	})

	if m.Registry == nil {
		t.Fatal("Registry should not be nil")
	}
	if m.Server == nil {
		t.Fatal("Server should not be nil")
	}
	if m.Server.Addr != ":0" {
		t.Fatalf("unexpected server address: %s", m.Server.Addr)
	}
}

// TestMetricsDisabled verifies that an empty address disables the HTTP
// server while metric creation keeps working.
func TestMetricsDisabled(t *testing.T) {
	m := metrics.NewMetrics(metrics.Config{ServiceName: "test-service"})

	if m.Server != nil {
		t.Fatal("Server should be nil when the address is empty")
	}

	counter := m.CreateCounter("test_disabled_total", "Test counter", []string{"label"})
	if counter == nil {
		t.Fatal("CreateCounter returned nil")
	}
	counter.WithLabelValues("v").Inc()
}

// TestMetricsCreation verifies that all metric types can be created,
// registered, and used.
func TestMetricsCreation(t *testing.T) {
	m := metrics.NewMetrics(metrics.Config{ServiceName: "test-service"})

	counter := m.CreateCounter(
		"test_counter_total",
		"Test counter metric",
		[]string{"operation", "topic"},
	)
	if counter == nil {
		t.Fatal("CreateCounter returned nil")
	}
	counter.WithLabelValues("produce", "demo-topic").Inc()
	counter.WithLabelValues("produce", "demo-topic").Add(5)

	gauge := m.CreateGauge(
		"test_gauge",
		"Test gauge metric",
		[]string{"group"},
	)
	if gauge == nil {
		t.Fatal("CreateGauge returned nil")
	}
	gauge.WithLabelValues("demo-group").Set(42)
	gauge.WithLabelValues("demo-group").Inc()
	gauge.WithLabelValues("demo-group").Dec()
	gauge.WithLabelValues("demo-group").Add(10)
	gauge.WithLabelValues("demo-group").Sub(5)

	histogram := m.CreateHistogram(
		"test_duration_seconds",
		"Test histogram metric",
		[]string{"operation"},
		[]float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	)
	if histogram == nil {
		t.Fatal("CreateHistogram returned nil")
	}
	histogram.WithLabelValues("consume").Observe(0.5)
	histogram.WithLabelValues("consume").Observe(1.2)
}

// TestServiceLabelWrapping verifies that created metrics carry the constant
// service label.
func TestServiceLabelWrapping(t *testing.T) {
	m := metrics.NewMetrics(metrics.Config{ServiceName: "wrapped-service"})

	counter := m.CreateCounter("test_wrapped_total", "Test counter", nil)
	counter.Inc()

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	for _, family := range families {
		if family.GetName() != "test_wrapped_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "service" && label.GetValue() == "wrapped-service" {
					return
				}
			}
		}
		t.Fatal("service label missing from test_wrapped_total")
	}
	t.Fatal("test_wrapped_total not found in registry")
}

// TestRuntimeCollectors verifies that the registry exposes the standard Go
// runtime collectors.
func TestRuntimeCollectors(t *testing.T) {
	m := metrics.NewMetrics(metrics.Config{ServiceName: "test-service"})

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	for _, family := range families {
		if family.GetName() == "go_goroutines" {
			return
		}
	}
	t.Fatal("go_goroutines not found; runtime collectors not registered")
}
