package kafka

import (
	"errors"
	"strings"
)

// Validation errors raised by the sessions before any I/O is attempted.
// They are always fatal to the single operation and never retried.
var (
	// ErrBrokersRequired is returned when the endpoint list is absent or empty
	ErrBrokersRequired = errors.New("brokers is required")

	// ErrTopicRequired is returned when the topic name is absent or empty
	ErrTopicRequired = errors.New("topic is required")

	// ErrMessageRequired is returned when the message payload is absent
	ErrMessageRequired = errors.New("message is required")

	// ErrSessionAlreadyStarted is returned when Start is called on a
	// consumer session that has already left the Created state
	ErrSessionAlreadyStarted = errors.New("session already started")

	// ErrNotConnected is returned when an operation is attempted on a
	// producer or consumer before Connect
	ErrNotConnected = errors.New("not connected")
)

// Common Kafka error types that can be used by consumers of this package.
// These provide a standardized set of errors that abstract away the
// underlying Kafka-specific error details.
var (
	// ErrConnectionFailed is returned when connection to Kafka cannot be established
	ErrConnectionFailed = errors.New("connection failed")

	// ErrConnectionLost is returned when connection to Kafka is lost
	ErrConnectionLost = errors.New("connection lost")

	// ErrBrokerNotAvailable is returned when broker is not available
	ErrBrokerNotAvailable = errors.New("broker not available")

	// ErrLeaderNotAvailable is returned when leader is not available
	ErrLeaderNotAvailable = errors.New("leader not available")

	// ErrGroupCoordinatorNotAvailable is returned when group coordinator is not available
	ErrGroupCoordinatorNotAvailable = errors.New("group coordinator not available")

	// ErrRebalanceInProgress is returned when rebalance is in progress
	ErrRebalanceInProgress = errors.New("rebalance in progress")

	// ErrTopicNotFound is returned when topic doesn't exist
	ErrTopicNotFound = errors.New("topic not found")

	// ErrTopicAlreadyExists is returned when topic already exists
	ErrTopicAlreadyExists = errors.New("topic already exists")

	// ErrAuthenticationFailed is returned when authentication fails
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrRequestTimedOut is returned when request times out
	ErrRequestTimedOut = errors.New("request timed out")

	// ErrNetworkError is returned for network-related errors
	ErrNetworkError = errors.New("network error")

	// ErrClusterNotReady is returned when the readiness poll exhausts
	// its time budget without a successful cluster-metadata probe
	ErrClusterNotReady = errors.New("cluster not ready")

	// ErrContextCanceled is returned when context is canceled
	ErrContextCanceled = errors.New("context canceled")
)

// TranslateError converts Kafka-specific errors into standardized application errors.
// This function provides abstraction from the underlying Kafka implementation details,
// allowing application code to handle errors in a Kafka-agnostic way.
//
// If an error doesn't match any known pattern, it is returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	errMsg := strings.ToLower(err.Error())
	return translateByErrorMessage(errMsg, err)
}

// translateByErrorMessage translates errors based on error message patterns
func translateByErrorMessage(errMsg string, originalErr error) error {
	switch {
	// Connection related
	case strings.Contains(errMsg, "connection refused"):
		return ErrConnectionFailed
	case strings.Contains(errMsg, "connection reset"):
		return ErrConnectionLost
	case strings.Contains(errMsg, "connection closed"):
		return ErrConnectionLost
	case strings.Contains(errMsg, "broker not available"):
		return ErrBrokerNotAvailable

	// Authentication
	case strings.Contains(errMsg, "sasl authentication failed"):
		return ErrAuthenticationFailed
	case strings.Contains(errMsg, "authentication failed"):
		return ErrAuthenticationFailed

	// Topic errors
	case strings.Contains(errMsg, "topic not found"):
		return ErrTopicNotFound
	case strings.Contains(errMsg, "unknown topic"):
		return ErrTopicNotFound
	case strings.Contains(errMsg, "topic already exists"):
		return ErrTopicAlreadyExists
	case strings.Contains(errMsg, "topic with this name already exists"):
		return ErrTopicAlreadyExists

	// Consumer group errors
	case strings.Contains(errMsg, "group coordinator not available"):
		return ErrGroupCoordinatorNotAvailable
	case strings.Contains(errMsg, "coordinator not available"):
		return ErrGroupCoordinatorNotAvailable
	case strings.Contains(errMsg, "rebalance in progress"):
		return ErrRebalanceInProgress

	// Leader errors
	case strings.Contains(errMsg, "leader not available"):
		return ErrLeaderNotAvailable

	// Timeout errors
	case strings.Contains(errMsg, "request timed out"):
		return ErrRequestTimedOut
	case strings.Contains(errMsg, "i/o timeout"):
		return ErrNetworkError
	case strings.Contains(errMsg, "timeout"):
		return ErrRequestTimedOut

	// Network errors
	case strings.Contains(errMsg, "network"):
		return ErrNetworkError
	case strings.Contains(errMsg, "dial"):
		return ErrNetworkError

	// Context errors
	case strings.Contains(errMsg, "context canceled"):
		return ErrContextCanceled
	case strings.Contains(errMsg, "context cancelled"):
		return ErrContextCanceled

	default:
		// Return the original error if no pattern matches
		return originalErr
	}
}

// IsRetryableError returns true if the error is retryable
func IsRetryableError(err error) bool {
	switch {
	case errors.Is(err, ErrConnectionFailed),
		errors.Is(err, ErrConnectionLost),
		errors.Is(err, ErrBrokerNotAvailable),
		errors.Is(err, ErrLeaderNotAvailable),
		errors.Is(err, ErrGroupCoordinatorNotAvailable),
		errors.Is(err, ErrRebalanceInProgress),
		errors.Is(err, ErrRequestTimedOut),
		errors.Is(err, ErrNetworkError),
		errors.Is(err, ErrClusterNotReady):
		return true
	default:
		return false
	}
}

// IsPermanentError returns true if the error is permanent and should not be retried
func IsPermanentError(err error) bool {
	switch {
	case errors.Is(err, ErrBrokersRequired),
		errors.Is(err, ErrTopicRequired),
		errors.Is(err, ErrMessageRequired),
		errors.Is(err, ErrAuthenticationFailed),
		errors.Is(err, ErrTopicNotFound),
		errors.Is(err, ErrTopicAlreadyExists),
		errors.Is(err, ErrContextCanceled):
		return true
	default:
		return false
	}
}
