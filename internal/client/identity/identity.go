// Package identity talks to the external identity service that issues
// session tokens.
//
// Messages travel as google.protobuf.Struct values so the client needs no
// generated stubs; the method names and field keys below are the whole wire
// contract.
package identity

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/vaultcore/internal/client/models"
)

const (
	ServiceName    = "vault.identity.v1.Identity"
	PreloginMethod = "/" + ServiceName + "/Prelogin"
	TokenMethod    = "/" + ServiceName + "/Token"
)

var (
	ErrUnavailable     = errors.New("identity service unavailable")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidResponse = errors.New("invalid identity response")
)

// TokenRequest carries a login attempt. TwoFactorProvider is nil on the
// first step of a login.
type TokenRequest struct {
	Email             string
	Verifier          []byte
	TwoFactorProvider *models.TwoFactorProviderType
	TwoFactorToken    string
	Remember          bool
}

// TokenResponse is the identity service's answer. A non-empty
// TwoFactorProviders map means the login needs a second factor and carries
// no tokens.
type TokenResponse struct {
	AccessToken         string
	RefreshToken        string
	ResetMasterPassword bool
	TwoFactorProviders  map[models.TwoFactorProviderType]map[string]string
}

// Client is the identity boundary used by the auth service.
type Client interface {
	// Prelogin returns the KDF salt registered for email.
	Prelogin(ctx context.Context, email string) ([]byte, error)
	Token(ctx context.Context, req TokenRequest) (*TokenResponse, error)
	Close() error
}
