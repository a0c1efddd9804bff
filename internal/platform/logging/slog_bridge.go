package logging

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Slog exposes the logger through the standard slog API so services can
// depend on *slog.Logger while output still flows through zap.
func (l *Logger) Slog() *slog.Logger {
	return slog.New(&zapSlogHandler{zap: l.Zap()})
}

type zapSlogHandler struct {
	zap *zap.Logger
}

func (h *zapSlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.zap.Core().Enabled(slogToZapLevel(level))
}

func (h *zapSlogHandler) Handle(ctx context.Context, record slog.Record) error {
	fields := make([]zap.Field, 0, record.NumAttrs()+2)
	record.Attrs(func(attr slog.Attr) bool {
		fields = append(fields, attrToField(attr))
		return true
	})
	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		fields = append(fields,
			zap.String("trace_id", spanCtx.TraceID().String()),
			zap.String("span_id", spanCtx.SpanID().String()),
		)
	}

	if ce := h.zap.Check(slogToZapLevel(record.Level), record.Message); ce != nil {
		ce.Write(fields...)
	}
	return nil
}

func (h *zapSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	fields := make([]zap.Field, 0, len(attrs))
	for _, attr := range attrs {
		fields = append(fields, attrToField(attr))
	}
	return &zapSlogHandler{zap: h.zap.With(fields...)}
}

func (h *zapSlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &zapSlogHandler{zap: h.zap.Named(name)}
}

func slogToZapLevel(level slog.Level) zapcore.Level {
	switch {
	case level < slog.LevelInfo:
		return zapcore.DebugLevel
	case level < slog.LevelWarn:
		return zapcore.InfoLevel
	case level < slog.LevelError:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

func attrToField(attr slog.Attr) zap.Field {
	value := attr.Value.Resolve()
	if value.Kind() == slog.KindAny {
		if err, ok := value.Any().(error); ok {
			return zap.NamedError(attr.Key, err)
		}
	}
	return zap.Any(attr.Key, value.Any())
}
