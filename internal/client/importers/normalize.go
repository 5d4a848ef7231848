package importers

import (
	"strings"

	"github.com/dmitrijs2005/vaultcore/internal/client/domains"
	"github.com/dmitrijs2005/vaultcore/internal/client/models"
)

// GetValueOrDefault returns fallback when value is empty or whitespace and
// value unchanged otherwise.
func GetValueOrDefault(value, fallback string) string {
	if IsNullOrWhitespace(value) {
		return fallback
	}
	return value
}

// IsNullOrWhitespace reports whether value has no non-space characters.
func IsNullOrWhitespace(value string) bool {
	return strings.TrimSpace(value) == ""
}

// MakeURIs splits a raw URL cell into URIs. Newlines and semicolons separate
// values; parts are trimmed and empty parts dropped. Schemeless values are
// kept as written. The result is never nil.
func MakeURIs(raw string) []string {
	uris := []string{}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ';'
	})
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			uris = append(uris, p)
		}
	}
	return uris
}

// NameFromURL returns a readable host label for raw, or "" when raw holds no
// usable host.
func NameFromURL(raw string) string {
	for _, u := range MakeURIs(raw) {
		if host, ok := domains.Host(u); ok {
			return strings.TrimPrefix(host, "www.")
		}
	}
	return ""
}

// ProcessKVP stores (key, value) as an extension field unless the cell is
// absent. Whitespace-only values are kept.
func ProcessKVP(c *models.Cipher, key, value string, ok bool) {
	if !ok {
		return
	}
	c.AddField(key, value)
}
