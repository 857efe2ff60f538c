package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var knownVariables = []string{
	"CONFIG_FILE",
	"KAFKA_BROKERS",
	"KAFKA_CLIENT_ID",
	"KAFKA_TOPIC",
	"KAFKA_GROUP_ID",
	"MESSAGE",
	"KEY",
	"LOG_LEVEL",
	"METRICS_ADDR",
	"OTLP_ENDPOINT",
	"FROM_BEGINNING",
	"TRACE_EXPORT",
	"KAFKA_FAST_START",
	"KAFKA_CREATE_TOPIC",
}

// clearEnv unsets every variable Load reads so tests start from a clean
// environment. t.Setenv registers the restore for anything already set.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range knownVariables {
		if v, ok := os.LookupEnv(key); ok {
			t.Setenv(key, v)
		}
		_ = os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:9092", cfg.Brokers)
	assert.Equal(t, "kafka-go-demo", cfg.ClientID)
	assert.Equal(t, "demo-topic", cfg.Topic)
	assert.Equal(t, "kafka-go-demo-group", cfg.GroupID)
	assert.Equal(t, "hello from producer", cfg.Message)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.FromBeginning)
	assert.Empty(t, cfg.Key)
	assert.Empty(t, cfg.MetricsAddr)
	assert.False(t, cfg.TraceExport)
	assert.False(t, cfg.FastStart)
	assert.False(t, cfg.CreateTopic)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAFKA_BROKERS", "broker-1:9092,broker-2:9092")
	t.Setenv("KAFKA_CLIENT_ID", "orders-service")
	t.Setenv("KAFKA_TOPIC", "orders")
	t.Setenv("KAFKA_GROUP_ID", "orders-group")
	t.Setenv("MESSAGE", `{"order_id":42}`)
	t.Setenv("KEY", "order-42")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("METRICS_ADDR", ":9464")
	t.Setenv("FROM_BEGINNING", "false")
	t.Setenv("KAFKA_FAST_START", "true")
	t.Setenv("KAFKA_CREATE_TOPIC", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "broker-1:9092,broker-2:9092", cfg.Brokers)
	assert.Equal(t, "orders-service", cfg.ClientID)
	assert.Equal(t, "orders", cfg.Topic)
	assert.Equal(t, "orders-group", cfg.GroupID)
	assert.Equal(t, `{"order_id":42}`, cfg.Message)
	assert.Equal(t, "order-42", cfg.Key)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9464", cfg.MetricsAddr)
	assert.False(t, cfg.FromBeginning)
	assert.True(t, cfg.FastStart)
	assert.True(t, cfg.CreateTopic)
}

func TestLoadFileOverlay(t *testing.T) {
	t.Run("yaml file", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"brokers: kafka:9092\ntopic: events\nfast_start: true\n",
		), 0o600))
		t.Setenv("CONFIG_FILE", path)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "kafka:9092", cfg.Brokers)
		assert.Equal(t, "events", cfg.Topic)
		assert.True(t, cfg.FastStart)
		assert.Equal(t, "kafka-go-demo-group", cfg.GroupID)
	})

	t.Run("json file", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(
			`{"brokers":"kafka:9092","group_id":"json-group"}`,
		), 0o600))
		t.Setenv("CONFIG_FILE", path)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "kafka:9092", cfg.Brokers)
		assert.Equal(t, "json-group", cfg.GroupID)
	})

	t.Run("environment wins over file", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("topic: from-file\n"), 0o600))
		t.Setenv("CONFIG_FILE", path)
		t.Setenv("KAFKA_TOPIC", "from-env")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Topic)
	})

	t.Run("missing file fails", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("malformed yaml fails", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("brokers: [unclosed\n"), 0o600))
		t.Setenv("CONFIG_FILE", path)

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestLoadInvalidBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("FROM_BEGINNING", "maybe")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FROM_BEGINNING")
}

func TestKeyBytes(t *testing.T) {
	cfg := &Config{}
	assert.Nil(t, cfg.KeyBytes())

	cfg.Key = "order-42"
	assert.Equal(t, []byte("order-42"), cfg.KeyBytes())
}

func TestDerivedConfigs(t *testing.T) {
	cfg := &Config{
		Brokers:       "broker-1:9092,broker-2:9092",
		ClientID:      "orders-service",
		Topic:         "orders",
		GroupID:       "orders-group",
		Message:       "payload",
		Key:           "k",
		LogLevel:      "warn",
		FromBeginning: true,
		FastStart:     true,
		TraceExport:   true,
	}

	t.Run("client", func(t *testing.T) {
		cc := cfg.ClientConfig()
		assert.Equal(t, "orders-service", cc.ClientID)
		assert.Equal(t, "broker-1:9092,broker-2:9092", cc.Brokers)
	})

	t.Run("producer", func(t *testing.T) {
		pc := cfg.ProducerConfig()
		assert.Equal(t, "orders", pc.Topic)
		assert.Equal(t, "payload", pc.Value)
		assert.Equal(t, []byte("k"), pc.Key)
		assert.False(t, pc.WaitForCluster)
	})

	t.Run("consumer", func(t *testing.T) {
		kc := cfg.ConsumerConfig()
		assert.Equal(t, "orders", kc.Topic)
		assert.Equal(t, "orders-group", kc.GroupID)
		assert.True(t, kc.FromBeginning)
		assert.True(t, kc.FastStart)
		assert.Nil(t, kc.Handler)
	})

	t.Run("logger", func(t *testing.T) {
		lc := cfg.LoggerConfig("consumer")
		assert.Equal(t, "warn", lc.Level)
		assert.Equal(t, "consumer", lc.ServiceName)
		assert.True(t, lc.EnableTracing)
	})
}
