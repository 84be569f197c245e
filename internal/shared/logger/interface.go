package logger

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Interface is the structured logger handed to every component. Arguments
// after the message are alternating keys and values.
type Interface interface {
	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)

	// With returns a logger that adds keysAndValues to every entry.
	With(keysAndValues ...any) Interface
	// Named tags entries with the emitting component.
	Named(name string) Interface
	Enabled(level slog.Level) bool
}

type slogAdapter struct {
	base *slog.Logger
}

// NewLogger wraps the process logger configured by Init.
func NewLogger() Interface {
	return &slogAdapter{base: Get()}
}

func FromSlog(base *slog.Logger) Interface {
	return &slogAdapter{base: base}
}

// NewNopLogger discards everything.
func NewNopLogger() Interface {
	return &slogAdapter{base: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (l *slogAdapter) Debugw(msg string, keysAndValues ...any) {
	l.log(slog.LevelDebug, msg, keysAndValues)
}

func (l *slogAdapter) Infow(msg string, keysAndValues ...any) {
	l.log(slog.LevelInfo, msg, keysAndValues)
}

func (l *slogAdapter) Warnw(msg string, keysAndValues ...any) {
	l.log(slog.LevelWarn, msg, keysAndValues)
}

func (l *slogAdapter) Errorw(msg string, keysAndValues ...any) {
	l.log(slog.LevelError, msg, keysAndValues)
}

// log records the PC of the adapter's caller so source attributes point at
// the call site rather than this file.
func (l *slogAdapter) log(level slog.Level, msg string, keysAndValues []any) {
	ctx := context.Background()
	if !l.base.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(keysAndValues...)
	_ = l.base.Handler().Handle(ctx, r)
}

func (l *slogAdapter) With(keysAndValues ...any) Interface {
	return &slogAdapter{base: l.base.With(keysAndValues...)}
}

func (l *slogAdapter) Named(name string) Interface {
	return &slogAdapter{base: l.base.With("logger", name)}
}

func (l *slogAdapter) Enabled(level slog.Level) bool {
	return l.base.Enabled(context.Background(), level)
}
