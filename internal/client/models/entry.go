package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNotLogin = errors.New("envelope does not hold a login")

// Overview is the short, separately encrypted summary of an entry used for
// listings and URL matching.
type Overview struct {
	Type  CipherType `json:"type"`
	Title string     `json:"title"`
	URIs  []string   `json:"uris,omitempty"`
}

// ViewOverview pairs a decrypted Overview with its entry id.
type ViewOverview struct {
	Id string
	Overview
}

// Envelope is the full encrypted payload of an entry. Details carries the
// type-specific part (LoginData for logins).
type Envelope struct {
	Type    CipherType      `json:"type"`
	Title   string          `json:"title"`
	Notes   string          `json:"notes,omitempty"`
	Folder  string          `json:"folder,omitempty"`
	Fields  []Field         `json:"fields,omitempty"`
	Details json.RawMessage `json:"details,omitempty"`
}

// Wrap packs a cipher and the name of its folder ("" for none).
func Wrap(c Cipher, folder string) (Envelope, error) {
	env := Envelope{
		Type:   c.Type,
		Title:  c.Name,
		Notes:  c.Notes,
		Folder: folder,
		Fields: c.Fields,
	}
	if c.Login != nil {
		b, err := json.Marshal(c.Login)
		if err != nil {
			return Envelope{}, fmt.Errorf("marshal login: %w", err)
		}
		env.Details = b
	}
	return env, nil
}

// Unwrap restores the cipher held by the envelope.
func (e Envelope) Unwrap() (Cipher, error) {
	c := Cipher{Type: e.Type, Name: e.Title, Notes: e.Notes, Fields: e.Fields}
	if e.Type != CipherTypeLogin {
		return c, nil
	}
	if len(e.Details) == 0 {
		return Cipher{}, ErrNotLogin
	}
	var login LoginData
	if err := json.Unmarshal(e.Details, &login); err != nil {
		return Cipher{}, fmt.Errorf("unmarshal login: %w", err)
	}
	if login.URIs == nil {
		login.URIs = []string{}
	}
	c.Login = &login
	return c, nil
}

// Overview returns the listing summary for the envelope.
func (e Envelope) Overview() Overview {
	ov := Overview{Type: e.Type, Title: e.Title}
	if e.Type == CipherTypeLogin && len(e.Details) > 0 {
		var login LoginData
		if json.Unmarshal(e.Details, &login) == nil {
			ov.URIs = login.URIs
		}
	}
	return ov
}
