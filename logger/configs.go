// Package logger provides structured, severity-gated logging for the demo
// processes, built on Uber's Zap.
package logger

// Log level constants that define the available logging levels.
// These string constants are used in configuration to set the desired log level.
const (
	// Trace represents the most verbose logging level.
	// Zap has no trace level of its own, so Trace is mapped to Debug internally;
	// it exists so that LOG_LEVEL=trace from the environment is accepted.
	Trace = "trace"

	// Debug represents the verbose logging level, intended for development and troubleshooting.
	// When the logger is set to Debug level, all log messages will be output.
	Debug = "debug"

	// Info represents the standard logging level for general operational information.
	// Info, Warning, Error and Fatal messages will be output; Debug messages are suppressed.
	Info = "info"

	// Warning represents the logging level for potential issues that aren't errors.
	Warning = "warn"

	// Error represents the logging level for error conditions.
	Error = "error"

	// Fatal represents the logging level for unrecoverable conditions.
	// When the logger is set to Fatal level, only Fatal messages will be output.
	Fatal = "fatal"
)

// Config defines the configuration structure for the logger.
// It contains settings that control the behavior of the logging system.
type Config struct {
	// Level determines the minimum log level that will be output.
	// Valid values are "trace", "debug", "info", "warn", "error" and "fatal",
	// case-insensitive. Unrecognized or absent values default to "info".
	//
	// This setting is typically populated from the LOG_LEVEL environment variable.
	Level string

	// ServiceName identifies the process emitting log entries. It is attached
	// as a constant "service" field to every entry.
	ServiceName string

	// EnableTracing controls whether the *WithContext logging methods extract
	// trace and span identifiers from the context and attach them to entries.
	EnableTracing bool

	// CallerSkip adjusts the caller annotation depth for wrapper scenarios.
	// The default of 1 is correct when the logger is used directly.
	CallerSkip int
}
