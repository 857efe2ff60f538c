package observability

import "time"

// Observer is a unified interface for observing broker operations.
// It allows external code to observe operations happening inside the kafka
// package (produce, consume, admin probes) without coupling the sessions
// to a specific observability implementation (metrics, tracing, logging).
//
// This interface is optional - the sessions work perfectly fine without an observer.
type Observer interface {
	// ObserveOperation is called when a broker operation completes.
	// It provides all context about the operation in a structured format.
	ObserveOperation(ctx OperationContext)
}

// OperationContext contains all information about a completed broker operation.
// It is generic enough to describe producer, consumer, and admin activity
// while providing enough detail for comprehensive observability.
type OperationContext struct {
	// Component identifies which package performed the operation.
	// In this repository this is always "kafka".
	Component string

	// Operation describes what operation was performed.
	// Examples: "produce", "consume", "describe_cluster", "create_topics"
	Operation string

	// Resource identifies the primary resource being operated on.
	// For produce/consume operations this is the topic name.
	Resource string

	// SubResource provides additional resource context (optional).
	// For consume operations this is the partition number ("0", "3", ...).
	SubResource string

	// Duration is how long the operation took from start to completion.
	Duration time.Duration

	// Error is the error returned by the operation, if any.
	// nil indicates successful operation.
	Error error

	// Size represents the size of data involved in the operation (optional).
	// For produce/consume operations this is the message value size in bytes.
	Size int64

	// Metadata provides additional operation-specific information (optional).
	// Examples: {"offset": "12345", "group_id": "demo-group"}
	Metadata map[string]interface{}
}
