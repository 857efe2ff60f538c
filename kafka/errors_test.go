package kafka

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{"nil error", nil, nil},
		{"connection refused", errors.New("dial tcp 127.0.0.1:9092: connection refused"), ErrConnectionFailed},
		{"connection reset", errors.New("read: connection reset by peer"), ErrConnectionLost},
		{"broker not available", errors.New("[8] Broker Not Available"), ErrBrokerNotAvailable},
		{"sasl failure", errors.New("SASL Authentication Failed: bad credentials"), ErrAuthenticationFailed},
		{"unknown topic", errors.New("[3] Unknown Topic Or Partition"), ErrTopicNotFound},
		{"topic exists", errors.New("[36] Topic Already Exists: topic with this name already exists"), ErrTopicAlreadyExists},
		{"coordinator not available", errors.New("[15] Group Coordinator Not Available"), ErrGroupCoordinatorNotAvailable},
		{"rebalance", errors.New("[27] Rebalance In Progress"), ErrRebalanceInProgress},
		{"leader not available", errors.New("[5] Leader Not Available"), ErrLeaderNotAvailable},
		{"request timed out", errors.New("[7] Request Timed Out"), ErrRequestTimedOut},
		{"io timeout", errors.New("read tcp: i/o timeout"), ErrNetworkError},
		{"context canceled", errors.New("context canceled"), ErrContextCanceled},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, TranslateError(tc.input))
		})
	}

	t.Run("unknown error unchanged", func(t *testing.T) {
		t.Parallel()
		original := errors.New("something nobody has seen before")
		assert.Equal(t, original, TranslateError(original))
	})
}

func TestIsRetryableError(t *testing.T) {
	t.Parallel()

	retryable := []error{
		ErrConnectionFailed,
		ErrConnectionLost,
		ErrBrokerNotAvailable,
		ErrLeaderNotAvailable,
		ErrGroupCoordinatorNotAvailable,
		ErrRebalanceInProgress,
		ErrRequestTimedOut,
		ErrNetworkError,
		ErrClusterNotReady,
	}
	for _, err := range retryable {
		assert.True(t, IsRetryableError(err), "expected %v to be retryable", err)
	}

	assert.False(t, IsRetryableError(ErrTopicRequired))
	assert.False(t, IsRetryableError(ErrAuthenticationFailed))
	assert.False(t, IsRetryableError(errors.New("unknown")))
	assert.False(t, IsRetryableError(nil))
}

func TestIsPermanentError(t *testing.T) {
	t.Parallel()

	permanent := []error{
		ErrBrokersRequired,
		ErrTopicRequired,
		ErrMessageRequired,
		ErrAuthenticationFailed,
		ErrTopicNotFound,
		ErrTopicAlreadyExists,
		ErrContextCanceled,
	}
	for _, err := range permanent {
		assert.True(t, IsPermanentError(err), "expected %v to be permanent", err)
	}

	assert.False(t, IsPermanentError(ErrNetworkError))
	assert.False(t, IsPermanentError(errors.New("unknown")))
	assert.False(t, IsPermanentError(nil))
}

func TestClusterNotReadyErrorWrapping(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial failed")
	err := &clusterNotReadyError{cause: cause}

	assert.ErrorIs(t, err, ErrClusterNotReady)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "cluster not ready")
	assert.Contains(t, err.Error(), "dial failed")

	wrapped := fmt.Errorf("send: %w", err)
	assert.ErrorIs(t, wrapped, ErrClusterNotReady)
}
