package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerClient is a wrapper around Uber's Zap logger.
// It provides a simplified interface to the underlying Zap logger,
// with additional functionality specific to the demo processes.
//
// LoggerClient implements the Logger interface.
type LoggerClient struct {
	// Zap is the underlying zap.Logger instance.
	// This is exposed to allow direct access to Zap-specific functionality
	// when needed, but most logging should go through the wrapper methods.
	Zap *zap.Logger

	// tracingEnabled indicates whether tracing integration is enabled.
	// When true, the *WithContext logging methods will automatically extract
	// trace context and include trace/span IDs in log entries.
	tracingEnabled bool
}

// ParseLevel converts a configured level string into a Zap level.
// Matching is case-insensitive; "trace" maps to Zap's debug level since Zap
// has no trace level of its own. Unrecognized or empty values default to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case Trace, Debug:
		return zap.DebugLevel
	case Info:
		return zap.InfoLevel
	case Warning, "warning":
		return zap.WarnLevel
	case Error:
		return zap.ErrorLevel
	case Fatal:
		return zap.FatalLevel
	default:
		return zap.InfoLevel
	}
}

// NewLoggerClient initializes and returns a new instance of the logger based on configuration.
// This function creates a configured Zap logger with appropriate encoding, log levels,
// and output destinations.
//
// The logger is configured with:
//   - JSON encoding for structured logging
//   - ISO8601 timestamp format
//   - Capital letter level encoding (e.g., "INFO", "ERROR") without color codes
//   - Process ID and service name as default fields
//   - Caller information (file and line) included in log entries
//   - Configurable caller skip depth for wrapper scenarios
//
// Output is routed by severity: error and fatal entries go to stderr, all
// other severities go to stdout. Entries below the configured threshold are
// suppressed entirely.
//
// Example:
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Info,
//	    ServiceName: "consumer",
//	})
//	log.Info("consumer started", nil, nil)
func NewLoggerClient(cfg Config) *LoggerClient {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	encoder := zapcore.NewJSONEncoder(encoderCfg)
	threshold := ParseLevel(cfg.Level)

	// Error and fatal entries go to stderr, everything else to stdout.
	stdout := zapcore.Lock(os.Stdout)
	stderr := zapcore.Lock(os.Stderr)

	outCore := zapcore.NewCore(encoder, stdout, zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= threshold && l < zapcore.ErrorLevel
	}))
	errCore := zapcore.NewCore(encoder, stderr, zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= threshold && l >= zapcore.ErrorLevel
	}))

	// Default to 1 if not set, which works for direct usage of the logger
	callerSkip := cfg.CallerSkip
	if callerSkip <= 0 {
		callerSkip = 1
	}

	logger := zap.New(
		zapcore.NewTee(outCore, errCore),
		zap.AddCaller(),
		zap.AddCallerSkip(callerSkip),
		zap.AddStacktrace(zap.ErrorLevel),
		zap.ErrorOutput(stderr),
		zap.Fields(
			zap.Int("pid", os.Getpid()),
			zap.String("service", cfg.ServiceName),
		),
	)

	return &LoggerClient{
		Zap:            logger,
		tracingEnabled: cfg.EnableTracing,
	}
}

// FromEnv constructs a logger for process entry points, resolving the
// severity threshold from the LOG_LEVEL environment variable. This is the one
// place where the logger reads ambient process state; everywhere else the
// logger instance is constructed explicitly and injected.
func FromEnv(serviceName string) *LoggerClient {
	return NewLoggerClient(Config{
		Level:       os.Getenv("LOG_LEVEL"),
		ServiceName: serviceName,
	})
}
