package kafka

import (
	"time"

	"github.com/starichkov/kafka-go-demo/observability"
)

// observeOperation safely calls the observer if it's not nil.
// This helper reduces boilerplate in operation methods.
func observeOperation(obs observability.Observer, operation, resource, subResource string, duration time.Duration, err error, size int64) {
	if obs != nil {
		obs.ObserveOperation(observability.OperationContext{
			Component:   "kafka",
			Operation:   operation,
			Resource:    resource,
			SubResource: subResource,
			Duration:    duration,
			Error:       err,
			Size:        size,
		})
	}
}
