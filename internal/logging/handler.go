// pattern: Imperative Shell

package logging

import (
	"context"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapSlogHandler adapts a named zap logger to slog.Handler. Groups become
// dotted key prefixes ("stats.files") rather than logger names, so the
// scope of an entry is always the one it was created with.
type zapSlogHandler struct {
	zap    *zap.Logger
	level  zapcore.Level
	fields []zap.Field
	prefix string
}

func (h *zapSlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return toZapLevel(level) >= h.level
}

func (h *zapSlogHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]zap.Field, len(h.fields), len(h.fields)+r.NumAttrs())
	copy(fields, h.fields)
	r.Attrs(func(attr slog.Attr) bool {
		fields = h.appendAttr(fields, attr)
		return true
	})

	if ce := h.zap.Check(toZapLevel(r.Level), r.Message); ce != nil {
		ce.Write(fields...)
	}
	return nil
}

func (h *zapSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	fields := make([]zap.Field, len(h.fields), len(h.fields)+len(attrs))
	copy(fields, h.fields)
	for _, attr := range attrs {
		fields = h.appendAttr(fields, attr)
	}
	return &zapSlogHandler{zap: h.zap, level: h.level, fields: fields, prefix: h.prefix}
}

func (h *zapSlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &zapSlogHandler{zap: h.zap, level: h.level, fields: h.fields, prefix: h.prefix + name + "."}
}

// appendAttr flattens attr under the handler's group prefix. Empty attrs
// are dropped, as slog handlers are expected to do.
func (h *zapSlogHandler) appendAttr(fields []zap.Field, attr slog.Attr) []zap.Field {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return fields
	}

	if attr.Value.Kind() == slog.KindGroup {
		prefix := h.prefix
		if attr.Key != "" {
			prefix += attr.Key + "."
		}
		nested := &zapSlogHandler{prefix: prefix}
		for _, a := range attr.Value.Group() {
			fields = nested.appendAttr(fields, a)
		}
		return fields
	}

	key := h.prefix + attr.Key
	if err, ok := attr.Value.Any().(error); ok {
		return append(fields, zap.NamedError(key, err))
	}
	return append(fields, zap.Any(key, attr.Value.Any()))
}

// toZapLevel maps slog levels, including custom ones, onto the nearest
// zap level at or below them.
func toZapLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// zapLevel parses a config level name, falling back to info.
func zapLevel(name string) zapcore.Level {
	switch ParseLevel(strings.TrimSpace(name)) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
