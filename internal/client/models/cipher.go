package models

import (
	"fmt"
	"log/slog"
	"strings"
)

// CipherType discriminates vault item kinds. Values match the vault's wire
// representation.
type CipherType int

const (
	CipherTypeLogin      CipherType = 1
	CipherTypeSecureNote CipherType = 2
	CipherTypeCard       CipherType = 3
	CipherTypeIdentity   CipherType = 4
)

func (t CipherType) String() string {
	switch t {
	case CipherTypeLogin:
		return "login"
	case CipherTypeSecureNote:
		return "secure_note"
	case CipherTypeCard:
		return "card"
	case CipherTypeIdentity:
		return "identity"
	default:
		return fmt.Sprintf("cipher_type(%d)", int(t))
	}
}

// Field is an extension key/value pair preserved outside the canonical
// schema. Keys are not unique.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// LoginData is the login part of a cipher. Empty strings mean "unset".
type LoginData struct {
	Username string   `json:"username,omitempty"`
	Password string   `json:"password,omitempty"`
	URIs     []string `json:"uris"`
	TOTP     string   `json:"totp,omitempty"`
}

// Cipher is one canonical vault entry produced by an importer.
//
// Cipher never prints or logs its secrets: String, GoString and LogValue
// render the name, type, URI count and extension field names only.
type Cipher struct {
	Type   CipherType `json:"type"`
	Name   string     `json:"name"`
	Notes  string     `json:"notes,omitempty"`
	Login  *LoginData `json:"login,omitempty"`
	Fields []Field    `json:"fields,omitempty"`
}

// NewLoginCipher returns an empty login cipher with a non-nil URI list.
func NewLoginCipher() Cipher {
	return Cipher{
		Type:  CipherTypeLogin,
		Login: &LoginData{URIs: []string{}},
	}
}

// AddField appends an extension field.
func (c *Cipher) AddField(name, value string) {
	c.Fields = append(c.Fields, Field{Name: name, Value: value})
}

// Clone returns a deep copy.
func (c Cipher) Clone() Cipher {
	out := c
	if c.Login != nil {
		login := *c.Login
		login.URIs = append(make([]string, 0, len(c.Login.URIs)), c.Login.URIs...)
		out.Login = &login
	}
	if c.Fields != nil {
		out.Fields = append(make([]Field, 0, len(c.Fields)), c.Fields...)
	}
	return out
}

func (c Cipher) fieldNames() []string {
	names := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		names[i] = f.Name
	}
	return names
}

func (c Cipher) uriCount() int {
	if c.Login == nil {
		return 0
	}
	return len(c.Login.URIs)
}

func (c Cipher) String() string {
	return fmt.Sprintf("Cipher{type=%s name=%q uris=%d fields=[%s]}",
		c.Type, c.Name, c.uriCount(), strings.Join(c.fieldNames(), ","))
}

func (c Cipher) GoString() string { return c.String() }

// LogValue implements slog.LogValuer.
func (c Cipher) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", c.Type.String()),
		slog.String("name", c.Name),
		slog.Int("uris", c.uriCount()),
		slog.Any("fields", c.fieldNames()),
	)
}

// Folder groups ciphers in the vault.
type Folder struct {
	Name string `json:"name"`
}

// FolderRelationship links Ciphers[CipherIndex] to Folders[FolderIndex]
// within one import result.
type FolderRelationship struct {
	CipherIndex int `json:"cipher_index"`
	FolderIndex int `json:"folder_index"`
}
