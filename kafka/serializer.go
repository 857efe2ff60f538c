package kafka

import (
	"encoding/json"
	"fmt"
)

// Serializer defines the interface for serializing data before publishing to Kafka.
// Implementations can provide custom serialization logic.
type Serializer interface {
	// Serialize converts the input data to a byte slice
	Serialize(data interface{}) ([]byte, error)
}

// Deserializer defines the interface for deserializing data received from Kafka.
type Deserializer interface {
	// Deserialize converts a byte slice into the target data structure
	Deserialize(data []byte, target interface{}) error
}

// JSONSerializer implements Serializer using JSON encoding.
// This is the default serializer used by the producer session.
//
// Features:
//   - Handles any Go type that can be marshaled to JSON
//   - Passes []byte and string through without modification
//   - Thread-safe
type JSONSerializer struct{}

// Serialize converts data to JSON bytes. []byte and string values are
// transmitted as-is.
func (j *JSONSerializer) Serialize(data interface{}) ([]byte, error) {
	if raw, ok := data.([]byte); ok {
		return raw, nil
	}

	if str, ok := data.(string); ok {
		return []byte(str), nil
	}

	out, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("JSONSerializer: failed to serialize: %w", err)
	}
	return out, nil
}

// JSONDeserializer implements Deserializer using JSON decoding.
type JSONDeserializer struct{}

// Deserialize converts JSON bytes to the target structure.
func (j *JSONDeserializer) Deserialize(data []byte, target interface{}) error {
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("JSONDeserializer: failed to deserialize: %w", err)
	}
	return nil
}
