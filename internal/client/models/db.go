// Package models defines the vault's data types: canonical ciphers produced
// by importers, the encrypted entry rows stored locally and the result of an
// authentication attempt.
package models

import "time"

// Entry is one encrypted vault row. Overview and Details hold AEAD
// ciphertext next to their nonces.
type Entry struct {
	// Id is a globally unique identifier for the entry.
	Id string

	// Deleted marks the entry as a tombstone.
	Deleted bool

	// Overview contains the encrypted Overview (title, type, URIs).
	Overview []byte
	// NonceOverview is the AEAD nonce for Overview.
	NonceOverview []byte

	// Details contains the encrypted Envelope.
	Details []byte
	// NonceDetails is the AEAD nonce for Details.
	NonceDetails []byte

	// UpdatedAt is the last modification time in UTC.
	UpdatedAt time.Time
}
