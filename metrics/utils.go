package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CreateCounter creates a new counter metric and registers it to the
// metrics registry.
//
// Example:
//
//	counter := m.CreateCounter("kafka_operations_total", "Completed broker operations", []string{"operation", "topic"})
//	counter.WithLabelValues("produce", "demo-topic").Inc()
func (m *Metrics) CreateCounter(name, help string, labels []string) Counter {
	promCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
	m.wrappedRegisterer.MustRegister(promCounter)
	return &counterVec{vec: promCounter}
}

// CreateGauge creates a new gauge metric and registers it to the
// metrics registry.
//
// Example:
//
//	gauge := m.CreateGauge("kafka_sessions_running", "Currently running consumer sessions", []string{"group"})
//	gauge.WithLabelValues("demo-group").Inc()
func (m *Metrics) CreateGauge(name, help string, labels []string) Gauge {
	promGauge := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
	m.wrappedRegisterer.MustRegister(promGauge)
	return &gaugeVec{vec: promGauge}
}

// CreateHistogram creates a new histogram metric and registers it to the
// metrics registry.
//
// Example:
//
//	hist := m.CreateHistogram(
//	    "kafka_operation_duration_seconds",
//	    "Broker operation duration in seconds",
//	    []string{"operation", "topic"},
//	    prometheus.DefBuckets,
//	)
//	hist.WithLabelValues("consume", "demo-topic").Observe(0.25)
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) Histogram {
	promHistogram := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: buckets,
		},
		labels,
	)
	m.wrappedRegisterer.MustRegister(promHistogram)
	return &histogramVec{vec: promHistogram}
}
