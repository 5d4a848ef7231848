package domains

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHost(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"https://www.example.com/login?x=1", "www.example.com", true},
		{"example.com", "example.com", true},
		{"http://Example.COM:8080", "example.com", true},
		{"http://localhost:3000", "localhost", true},
		{"192.168.0.1", "192.168.0.1", true},
		{"", "", false},
		{"   ", "", false},
		{"not a url", "", false},
		{"intranet", "", false},
		{"https://", "", false},
		{"http://bad host.com", "", false},
		{"http://a..b", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Host(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBaseDomain(t *testing.T) {
	d, ok := BaseDomain("https://accounts.google.co.uk/signin")
	assert.True(t, ok)
	assert.Equal(t, "google.co.uk", d)

	d, ok = BaseDomain("https://login.example.com")
	assert.True(t, ok)
	assert.Equal(t, "example.com", d)

	d, ok = BaseDomain("10.0.0.1")
	assert.True(t, ok)
	assert.Equal(t, "10.0.0.1", d)

	_, ok = BaseDomain("")
	assert.False(t, ok)
}

func TestMatcher(t *testing.T) {
	m := NewMatcher([][]string{
		{"google.com", "youtube.com", "gmail.com"},
		{"apple.com", "icloud.com"},
	})

	assert.True(t, m.Match("https://mail.google.com", "https://google.com"))
	assert.True(t, m.Match("https://www.youtube.com", "https://accounts.google.com"))
	assert.True(t, m.Match("icloud.com", "https://apple.com"))
	assert.False(t, m.Match("https://youtube.com", "https://apple.com"))
	assert.False(t, m.Match("https://example.com", "https://example.org"))
	assert.False(t, m.Match("", "https://example.org"))

	assert.True(t, m.MatchAny([]string{"nope", "https://gmail.com"}, "google.com"))
	assert.False(t, m.MatchAny(nil, "google.com"))
}

func TestMatcher_NoGroups(t *testing.T) {
	m := NewMatcher(nil)
	assert.True(t, m.Match("https://a.example.com", "https://b.example.com"))
	assert.False(t, m.Match("https://example.com", "https://example.net"))
}
