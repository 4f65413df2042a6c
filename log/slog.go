package log

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogLogger adapts a 'slog.Logger' so that it can be used wherever a 'Logger' is accepted.
type SlogLogger struct {
	inner *slog.Logger
}

// NewSlogLogger returns a 'Logger' which forwards to the given 'slog.Logger', a <nil> logger uses 'slog.Default'.
func NewSlogLogger(inner *slog.Logger) SlogLogger {
	if inner == nil {
		inner = slog.Default()
	}

	return SlogLogger{inner: inner}
}

// Log formats the message and emits it at the equivalent slog level.
func (s SlogLogger) Log(level Level, format string, args ...any) {
	s.inner.Log(context.Background(), slogLevel(level), fmt.Sprintf(format, args...))
}

// slogLevel maps our levels onto slog's, trace sits below debug and panic above error.
func slogLevel(level Level) slog.Level {
	switch level {
	case LevelTrace:
		return slog.LevelDebug - 4
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	}

	return slog.LevelError + 4
}
