package types

// Logger is the structured logger used across the library.
//
// Every method takes a message followed by alternating key-value pairs, the
// convention shared by log/slog and zap.SugaredLogger.
type Logger interface {
	// Debug logs at debug level.
	Debug(msg string, keysAndValues ...any)

	// Info logs at info level.
	Info(msg string, keysAndValues ...any)

	// Warn logs at warn level.
	Warn(msg string, keysAndValues ...any)

	// Error logs at error level.
	Error(msg string, keysAndValues ...any)

	// Fatal logs at error level and exits the process.
	Fatal(msg string, keysAndValues ...any)
}
