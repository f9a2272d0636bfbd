// pattern: Imperative Shell

package logging

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds configuration for the Manager. Zero values take the defaults.
type Config struct {
	FilePath   string // log file, required
	MaxSizeMB  int    // rotate after this many megabytes (5)
	MaxBackups int    // rotated files kept (3)
	MaxAgeDays int    // days a rotated file is kept (14)
	Level      string // debug, info, warn or error (info)
	EchoBuffer int    // entries buffered for --verbose echo (256)
}

func (c Config) withDefaults() Config {
	if c.MaxSizeMB == 0 {
		c.MaxSizeMB = 5
	}
	if c.MaxBackups == 0 {
		c.MaxBackups = 3
	}
	if c.MaxAgeDays == 0 {
		c.MaxAgeDays = 14
	}
	if c.EchoBuffer == 0 {
		c.EchoBuffer = 256
	}
	return c
}

// LoggerProvider hands out scoped loggers. Manager and TestLogManager
// implement it.
type LoggerProvider interface {
	For(scope string) *ScopedLogger
}

// ScopedLogger is a slog front end bound to one scope. The zero value and
// NopLogger discard everything.
type ScopedLogger struct {
	slog  *slog.Logger
	scope string
}

// Debug logs at DEBUG level.
func (l *ScopedLogger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args) }

// Info logs at INFO level.
func (l *ScopedLogger) Info(msg string, args ...any) { l.log(slog.LevelInfo, msg, args) }

// Warn logs at WARN level.
func (l *ScopedLogger) Warn(msg string, args ...any) { l.log(slog.LevelWarn, msg, args) }

// Error logs at ERROR level.
func (l *ScopedLogger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args) }

func (l *ScopedLogger) log(level slog.Level, msg string, args []any) {
	if l == nil || l.slog == nil {
		return
	}
	l.slog.Log(context.Background(), level, msg, args...)
}

// With returns a logger that adds args to every entry.
func (l *ScopedLogger) With(args ...any) *ScopedLogger {
	if l == nil || l.slog == nil {
		return l
	}
	return &ScopedLogger{slog: l.slog.With(args...), scope: l.scope}
}

// Scope returns the logger's dotted scope, e.g. "registry.store".
func (l *ScopedLogger) Scope() string {
	return l.scope
}

// scopes caches one ScopedLogger per scope over a shared zap core.
type scopes struct {
	mu      sync.Mutex
	base    *zap.Logger
	level   zapcore.Level
	loggers map[string]*ScopedLogger
}

func newScopes(core zapcore.Core, level zapcore.Level) *scopes {
	return &scopes{base: zap.New(core), level: level, loggers: map[string]*ScopedLogger{}}
}

func (s *scopes) get(scope string) *ScopedLogger {
	s.mu.Lock()
	defer s.mu.Unlock()

	if logger, ok := s.loggers[scope]; ok {
		return logger
	}
	handler := &zapSlogHandler{zap: s.base.Named(scope), level: s.level}
	logger := &ScopedLogger{slog: slog.New(handler), scope: scope}
	s.loggers[scope] = logger
	return logger
}

// jsonEncoder is shared by the file and echo cores so the echo sink can
// decode exactly what the file receives.
func jsonEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.EpochTimeEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}

// Manager writes JSON entries to a rotated file and mirrors them to a
// ChannelSink that `prj --verbose` echoes to stderr.
type Manager struct {
	*scopes
	echo *ChannelSink
	file *lumberjack.Logger
}

// NewManager creates the log directory and opens the rotated file lazily
// on first write.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.FilePath == "" {
		return nil, errors.New("logging: FilePath is required")
	}
	cfg = cfg.withDefaults()

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, err
	}

	file := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	echo := NewChannelSink(cfg.EchoBuffer)
	level := zapLevel(cfg.Level)

	core := zapcore.NewTee(
		zapcore.NewCore(jsonEncoder(), zapcore.AddSync(file), level),
		zapcore.NewCore(jsonEncoder(), echo, level),
	)

	return &Manager{scopes: newScopes(core, level), echo: echo, file: file}, nil
}

// For returns the cached logger for scope.
func (m *Manager) For(scope string) *ScopedLogger {
	return m.get(scope)
}

// Entries returns the echo channel. Unconsumed entries are dropped
// oldest-first once the buffer fills.
func (m *Manager) Entries() <-chan LogEntry {
	return m.echo.Entries()
}

// Sync flushes buffered entries.
func (m *Manager) Sync() error {
	return m.base.Sync()
}

// Close flushes, closes the echo channel and the log file.
func (m *Manager) Close() error {
	_ = m.Sync()
	_ = m.echo.Close()
	return m.file.Close()
}
