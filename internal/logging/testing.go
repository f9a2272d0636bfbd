// pattern: Imperative Shell

package logging

import (
	"go.uber.org/zap/zapcore"
)

// NopLogger returns a logger that discards everything, for code paths
// built without a provider.
func NopLogger() *ScopedLogger {
	return &ScopedLogger{}
}

// TestLogManager is a LoggerProvider that records debug-and-above entries
// on a channel only, so tests can assert on what was logged.
type TestLogManager struct {
	*scopes
	sink *ChannelSink
}

// NewTestLogManager creates a provider buffering up to size entries.
func NewTestLogManager(size int) *TestLogManager {
	sink := NewChannelSink(size)
	core := zapcore.NewCore(jsonEncoder(), sink, zapcore.DebugLevel)
	return &TestLogManager{scopes: newScopes(core, zapcore.DebugLevel), sink: sink}
}

// For returns the cached logger for scope.
func (m *TestLogManager) For(scope string) *ScopedLogger {
	return m.get(scope)
}

// Channel returns the recorded entries.
func (m *TestLogManager) Channel() <-chan LogEntry {
	return m.sink.Entries()
}

// Close closes the entry channel.
func (m *TestLogManager) Close() error {
	return m.sink.Close()
}
