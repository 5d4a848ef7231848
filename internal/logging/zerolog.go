package logging

import (
	"context"
	"log/slog"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts zerolog to Logger.
type ZerologLogger struct {
	l zerolog.Logger
}

func NewZerologLogger(l zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{l: l}
}

func (z *ZerologLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Debug(), ctx, msg, args)
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Info(), ctx, msg, args)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Warn(), ctx, msg, args)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Error(), ctx, msg, args)
}

func (z *ZerologLogger) With(args ...any) Logger {
	return &ZerologLogger{l: z.l.With().Fields(pairs(args)).Logger()}
}

func (z *ZerologLogger) emit(e *zerolog.Event, ctx context.Context, msg string, args []any) {
	if e == nil {
		return
	}
	e.Ctx(ctx).Fields(pairs(args)).Msg(msg)
}

// pairs converts slog-style key/value args into a zerolog field map.
// A trailing key without value is recorded under "!BADKEY" like slog does.
func pairs(args []any) map[string]any {
	m := make(map[string]any, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || i+1 >= len(args) {
			m["!BADKEY"] = args[i]
			continue
		}
		if sensitive(key) {
			m[key] = redacted
			continue
		}
		m[key] = resolve(args[i+1])
	}
	return m
}

// resolve expands slog.LogValuer values so redacting models render the same
// way in both adapters instead of being reflected into JSON.
func resolve(v any) any {
	lv, ok := v.(slog.LogValuer)
	if !ok {
		return v
	}
	return valueOf(lv.LogValue().Resolve())
}

func valueOf(v slog.Value) any {
	if v.Kind() != slog.KindGroup {
		return v.Any()
	}
	attrs := v.Group()
	m := make(map[string]any, len(attrs))
	for _, a := range attrs {
		m[a.Key] = valueOf(a.Value.Resolve())
	}
	return m
}
