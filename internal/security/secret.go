// Package security holds small helpers for keeping sensitive material out of
// logs and serialized snapshots.
package security

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
)

const redacted = "[SECRET]"

// Secret wraps sensitive bytes (master keys, tokens, 2FA codes). Formatting,
// JSON/text marshaling and structured logging all print a placeholder.
type Secret []byte

// FromBytes copies in into a new Secret.
func FromBytes(in []byte) Secret {
	out := make([]byte, len(in))
	copy(out, in)
	return Secret(out)
}

// FromString creates a Secret from a string.
func FromString(in string) Secret { return Secret([]byte(in)) }

func (s Secret) String() string { return redacted }

// Format implements fmt.Formatter so every verb is redacted.
func (s Secret) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, redacted)
}

// LogValue implements slog.LogValuer.
func (s Secret) LogValue() slog.Value { return slog.StringValue(redacted) }

func (s Secret) MarshalJSON() ([]byte, error) { return json.Marshal(redacted) }

func (s Secret) MarshalText() ([]byte, error) { return []byte(redacted), nil }

// Bytes returns a copy of the underlying bytes. Callers own the copy and
// should wipe it when done.
func (s Secret) Bytes() []byte {
	out := make([]byte, len(s))
	copy(out, s)
	return out
}

// Reveal returns the plaintext as a string. Use only at transport boundaries.
func (s Secret) Reveal() string { return string(s) }

// Empty reports whether the secret holds no bytes.
func (s Secret) Empty() bool { return len(s) == 0 }

// Zero overwrites the underlying bytes with zeros.
func (s *Secret) Zero() {
	if s == nil || *s == nil {
		return
	}
	for i := range *s {
		(*s)[i] = 0
	}
}
