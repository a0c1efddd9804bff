package logging

import (
	"context"
	"sync/atomic"
)

// MirrorFunc receives every emitted log record. Used to copy logs into an
// external sink (e.g. an OTLP exporter) without touching the zap cores.
type MirrorFunc func(ctx context.Context, level Level, msg string, args ...any)

var mirror atomic.Pointer[MirrorFunc]

// SetMirror installs a process-wide log mirror. Pass nil to remove it.
func SetMirror(fn MirrorFunc) {
	if fn == nil {
		mirror.Store(nil)
		return
	}
	mirror.Store(&fn)
}

func mirrorLog(ctx context.Context, level Level, msg string, args ...any) {
	fn := mirror.Load()
	if fn == nil {
		return
	}
	(*fn)(ctx, level, msg, args...)
}
