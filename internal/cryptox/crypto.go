// Package cryptox holds the vault's key derivation and AEAD helpers and the
// crypto service that keeps the unlocked master key for the session.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters used for master key derivation.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	KeySize      = 32
)

// MakeVerifier returns the value sent to the identity service instead of the
// master key itself.
func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

// DeriveMasterKey stretches the master password with Argon2id.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, KeySize)
}

// EncryptEntry serializes entry to JSON and seals it with AES-GCM under key
// (16, 24 or 32 bytes). A fresh 12-byte nonce is generated per call and
// returned next to the ciphertext.
//
//	ciphertext, nonce, err := EncryptEntry(envelope, key)
func EncryptEntry(entry any, key []byte) (ciphertext, nonce []byte, err error) {
	plaintext, err := json.Marshal(entry)
	if err != nil {
		return nil, nil, err
	}
	defer wipe(plaintext)

	nonce = make([]byte, 12)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	ciphertext = aesgcm.Seal(nil, nonce, plaintext, nil)
	return ciphertext, nonce, nil
}

// DecryptEntry opens ciphertext produced by EncryptEntry and unmarshals the
// JSON plaintext into v.
func DecryptEntry(ciphertext, nonce, key []byte, v any) error {
	aesgcm, err := newGCM(key)
	if err != nil {
		return err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return err
	}
	defer wipe(plaintext)

	return json.Unmarshal(plaintext, v)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
