// Package logging defines a minimal structured-logging interface used across
// the project. Implementations wrap slog (text output) and zerolog (JSON).
//
// Secrets must never be passed as attribute values. Ciphers and other
// sensitive models implement slog.LogValuer, which both adapters honour, and
// render only non-secret attributes.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key-value pairs, e.g.:
//
//	log.Info(ctx, "import finished", "format", f, "ciphers", n)
type Logger interface {
	// Debug logs diagnostic details.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value pairs.
	With(args ...any) Logger
}

// Format selects the output encoding of New.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// redacted replaces the value of attributes whose key names a credential.
const redacted = "[REDACTED]"

var sensitiveKeys = []string{"password", "secret", "token", "verifier", "key"}

// sensitive reports whether an attribute key names a credential, e.g.
// "password", "access_token" or "masterKey".
func sensitive(key string) bool {
	k := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(k, s) {
			return true
		}
	}
	return false
}

// New builds a Logger writing to w in the requested format. Both formats
// mask attributes with credential-like keys.
func New(format Format, w io.Writer) (Logger, error) {
	switch format {
	case FormatText, "":
		return NewTextLogger(w, slog.LevelInfo), nil
	case FormatJSON:
		return NewZerologLogger(zerolog.New(w).With().Timestamp().Logger()), nil
	default:
		return nil, fmt.Errorf("unsupported log format: %q", format)
	}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return NewZerologLogger(zerolog.Nop())
}
