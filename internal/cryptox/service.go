package cryptox

import (
	"errors"
	"sync"

	"github.com/dmitrijs2005/vaultcore/internal/security"
)

// ErrNoKey is returned when encryption is requested while the vault is locked.
var ErrNoKey = errors.New("vault is locked: no master key")

// Service keeps the session master key and encrypts/decrypts vault payloads
// with it. It is safe for concurrent use.
type Service struct {
	mu  sync.RWMutex
	key security.Secret
}

func NewService() *Service {
	return &Service{}
}

// SetKey installs a copy of key, wiping any previous one.
func (s *Service) SetKey(key []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key.Zero()
	s.key = security.FromBytes(key)
}

// ClearKey wipes the key, locking the vault.
func (s *Service) ClearKey() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key.Zero()
	s.key = nil
}

func (s *Service) HasKey() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.key.Empty()
}

// Encrypt seals v with the session key.
func (s *Service) Encrypt(v any) (ciphertext, nonce []byte, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.key.Empty() {
		return nil, nil, ErrNoKey
	}
	return EncryptEntry(v, s.key)
}

// Decrypt opens ciphertext with the session key into v.
func (s *Service) Decrypt(ciphertext, nonce []byte, v any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.key.Empty() {
		return ErrNoKey
	}
	return DecryptEntry(ciphertext, nonce, s.key, v)
}
