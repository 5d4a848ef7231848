// Package container wires the long-lived client services together and
// exposes them through an install-once process-wide slot for code that
// cannot receive them explicitly.
package container

import (
	"sync/atomic"
)

// CryptoService encrypts and decrypts vault payloads with the session key.
// *cryptox.Service implements it.
type CryptoService interface {
	Encrypt(v any) (ciphertext, nonce []byte, err error)
	Decrypt(ciphertext, nonce []byte, v any) error
	HasKey() bool
}

// Container owns the shared service instances of one client process.
type Container struct {
	crypto CryptoService
}

// New returns a container around crypto.
func New(crypto CryptoService) *Container {
	return &Container{crypto: crypto}
}

// Crypto returns the crypto service.
func (c *Container) Crypto() CryptoService {
	return c.crypto
}

// Global is a process-wide container slot. Its zero value is empty and ready
// to use.
type Global struct {
	p atomic.Pointer[Container]
}

// Default is the slot used by the vault binary.
var Default Global

// AttachToGlobal installs c into g if g is still empty and reports whether
// it did. Later attachments, of c or any other container, are no-ops.
func (c *Container) AttachToGlobal(g *Global) bool {
	return g.p.CompareAndSwap(nil, c)
}

// Container returns the installed container, or nil.
func (g *Global) Container() *Container {
	return g.p.Load()
}
