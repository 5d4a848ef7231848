package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapUnwrap_Login(t *testing.T) {
	src := NewLoginCipher()
	src.Name = "example"
	src.Notes = "n"
	src.Login.Username = "u"
	src.Login.Password = "p"
	src.Login.URIs = []string{"https://example.com"}
	src.AddField("k", "v")

	env, err := Wrap(src, "Work")
	require.NoError(t, err)
	require.Equal(t, "Work", env.Folder)

	got, err := env.Unwrap()
	require.NoError(t, err)
	require.Equal(t, src, got)
	require.Equal(t, Overview{Type: CipherTypeLogin, Title: "example", URIs: []string{"https://example.com"}}, env.Overview())
}

func TestUnwrap_LoginWithoutDetails(t *testing.T) {
	env := Envelope{Type: CipherTypeLogin, Title: "x"}
	_, err := env.Unwrap()
	require.ErrorIs(t, err, ErrNotLogin)
}

func TestUnwrap_NilURIsBecomeEmpty(t *testing.T) {
	env := Envelope{Type: CipherTypeLogin, Title: "x", Details: json.RawMessage(`{"username":"u"}`)}
	c, err := env.Unwrap()
	require.NoError(t, err)
	require.NotNil(t, c.Login.URIs)
	require.Empty(t, c.Login.URIs)
}

func TestUnwrap_BadDetails(t *testing.T) {
	env := Envelope{Type: CipherTypeLogin, Details: json.RawMessage(`{`)}
	_, err := env.Unwrap()
	require.Error(t, err)
}

func TestUnwrap_SecureNote(t *testing.T) {
	env := Envelope{Type: CipherTypeSecureNote, Title: "note", Notes: "body"}
	c, err := env.Unwrap()
	require.NoError(t, err)
	require.Nil(t, c.Login)
	require.Equal(t, "body", c.Notes)
}

func TestEnvelopeJSON_RoundTrip(t *testing.T) {
	src := NewLoginCipher()
	src.Name = "n"
	src.Login.Password = "p"
	env, err := Wrap(src, "")
	require.NoError(t, err)

	b, err := json.Marshal(env)
	require.NoError(t, err)
	var back Envelope
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, env.Title, back.Title)
	require.JSONEq(t, string(env.Details), string(back.Details))
}
