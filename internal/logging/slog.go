package logging

import (
	"context"
	"log/slog"
	"strings"
)

// Redacted replaces the value of any credential passed as a log attribute.
const Redacted = "[redacted]"

// secretKeys are attribute keys whose values are credentials: the admin
// secret of an event, a participant's guess token, the key-file password.
var secretKeys = []string{"secret", "token", "password"}

func isSecretKey(key string) bool {
	key = strings.ToLower(key)
	for _, s := range secretKeys {
		if strings.Contains(key, s) {
			return true
		}
	}
	return false
}

// redact returns args with every credential value replaced. args is copied
// only when something had to be hidden.
func redact(args []any) []any {
	var out []any
	set := func(i int, v any) {
		if out == nil {
			out = append([]any(nil), args...)
		}
		out[i] = v
	}
	for i := 0; i < len(args); i++ {
		switch a := args[i].(type) {
		case slog.Attr:
			if isSecretKey(a.Key) {
				set(i, slog.String(a.Key, Redacted))
			}
		case string:
			if i+1 < len(args) {
				if isSecretKey(a) {
					set(i+1, Redacted)
				}
				i++
			}
		}
	}
	if out == nil {
		return args
	}
	return out
}

// SlogLogger adapts *slog.Logger to Logger. Records below the handler's
// level are dropped before any attribute is inspected.
type SlogLogger struct {
	l *slog.Logger
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{l: l}
}

func (s *SlogLogger) log(ctx context.Context, level slog.Level, msg string, args []any) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !s.l.Enabled(ctx, level) {
		return
	}
	s.l.Log(ctx, level, msg, redact(args)...)
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelDebug, msg, args)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelInfo, msg, args)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelWarn, msg, args)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelError, msg, args)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(redact(args)...)}
}
