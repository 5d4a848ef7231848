// Package domains extracts hosts and registrable domains from login URIs and
// matches them against equivalent-domain groups.
package domains

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Host returns the lower-cased host of raw without scheme, path or port.
// Schemeless input is read as http. ok is false when no plausible host can
// be found: empty host, invalid characters, or a dotless name other than
// localhost or an IP address.
func Host(raw string) (host string, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	host = strings.ToLower(u.Hostname())
	if host == "" {
		return "", false
	}
	if net.ParseIP(host) != nil || host == "localhost" {
		return host, true
	}
	if !validHostname(host) || !strings.Contains(host, ".") {
		return "", false
	}
	return host, true
}

func validHostname(h string) bool {
	if strings.HasPrefix(h, ".") || strings.HasSuffix(h, ".") || strings.Contains(h, "..") {
		return false
	}
	for _, r := range h {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.', r == '_':
		case r > 0x7f:
		default:
			return false
		}
	}
	return true
}

// BaseDomain returns the registrable domain (eTLD+1) of raw, or the bare
// host for IPs, localhost and hosts that are themselves public suffixes.
func BaseDomain(raw string) (string, bool) {
	host, ok := Host(raw)
	if !ok {
		return "", false
	}
	if net.ParseIP(host) != nil || host == "localhost" {
		return host, true
	}
	d, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host, true
	}
	return d, true
}

// Matcher decides whether a stored URI belongs to a target site, treating
// every domain in one equivalence group as the same site.
type Matcher struct {
	groups map[string]int
}

// NewMatcher indexes the equivalent-domain groups. Domains are compared by
// their registrable form.
func NewMatcher(equivalent [][]string) *Matcher {
	m := &Matcher{groups: make(map[string]int)}
	for i, group := range equivalent {
		for _, d := range group {
			if base, ok := BaseDomain(d); ok {
				if _, seen := m.groups[base]; !seen {
					m.groups[base] = i
				}
			}
		}
	}
	return m
}

// Match reports whether uri and target resolve to the same or equivalent
// registrable domains.
func (m *Matcher) Match(uri, target string) bool {
	a, ok := BaseDomain(uri)
	if !ok {
		return false
	}
	b, ok := BaseDomain(target)
	if !ok {
		return false
	}
	if a == b {
		return true
	}
	ga, okA := m.groups[a]
	gb, okB := m.groups[b]
	return okA && okB && ga == gb
}

// MatchAny reports whether any of uris matches target.
func (m *Matcher) MatchAny(uris []string, target string) bool {
	for _, u := range uris {
		if m.Match(u, target) {
			return true
		}
	}
	return false
}
