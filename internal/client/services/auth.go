// Package services holds the client's application services: session and
// authentication, the settings cache and the encrypted vault.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/vaultcore/internal/client/identity"
	"github.com/dmitrijs2005/vaultcore/internal/client/models"
	"github.com/dmitrijs2005/vaultcore/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/vaultcore/internal/common"
	"github.com/dmitrijs2005/vaultcore/internal/cryptox"
	"github.com/dmitrijs2005/vaultcore/internal/dbx"
	"github.com/dmitrijs2005/vaultcore/internal/logging"
	"github.com/dmitrijs2005/vaultcore/internal/security"
)

const (
	emailKey    = "email"
	saltKey     = "salt"
	verifierKey = "verifier"
)

var (
	// ErrNoPendingLogin is returned by LogInTwoFactor without a prior
	// LogIn that asked for a second factor.
	ErrNoPendingLogin = errors.New("no login awaiting a second factor")
	// ErrLocalDataNotAvailable means the vault has never been unlocked online.
	ErrLocalDataNotAvailable = errors.New("local data unavailable")
)

var deriveMasterKey = cryptox.DeriveMasterKey

// KeyHolder receives the session's master key. *cryptox.Service implements it.
type KeyHolder interface {
	SetKey(key []byte)
	ClearKey()
}

// AuthService signs the user in and out.
//
//   - LogIn runs prelogin and token exchange. It either completes the
//     session or, when the identity service asks for a second factor,
//     parks the attempt and reports the offered providers.
//   - LogInTwoFactor finishes a parked attempt.
//   - OfflineLogin unlocks the vault from the locally cached verifier.
//   - LogOut forgets tokens, key and cached credentials.
type AuthService interface {
	LogIn(ctx context.Context, email string, password security.Secret) (models.AuthResult, error)
	LogInTwoFactor(ctx context.Context, provider models.TwoFactorProviderType, code string, remember bool) (models.AuthResult, error)
	OfflineLogin(ctx context.Context, email string, password security.Secret) error
	LogOut(ctx context.Context) error
	Close() error
}

type pendingLogin struct {
	email    string
	salt     []byte
	verifier []byte
	key      security.Secret
}

func (p *pendingLogin) wipe() {
	p.key.Zero()
}

type authService struct {
	client identity.Client
	db     *sql.DB
	tokens *TokenService
	keys   KeyHolder
	log    logging.Logger

	mu      sync.Mutex
	pending *pendingLogin
}

// NewAuthService wires the identity client, the vault database (for cached
// credentials), the token service and the key holder.
func NewAuthService(client identity.Client, db *sql.DB, tokens *TokenService, keys KeyHolder, log logging.Logger) AuthService {
	return &authService{client: client, db: db, tokens: tokens, keys: keys, log: log}
}

func (a *authService) LogIn(ctx context.Context, email string, password security.Secret) (models.AuthResult, error) {
	salt, err := a.client.Prelogin(ctx, email)
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("prelogin: %w", err)
	}

	pw := password.Bytes()
	defer common.WipeByteArray(pw)
	key := deriveMasterKey(pw, salt)
	attempt := &pendingLogin{
		email:    email,
		salt:     salt,
		verifier: cryptox.MakeVerifier(key),
		key:      security.Secret(key),
	}

	resp, err := a.client.Token(ctx, identity.TokenRequest{Email: email, Verifier: attempt.verifier})
	if err != nil {
		attempt.wipe()
		return models.AuthResult{}, fmt.Errorf("token: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending != nil {
		a.pending.wipe()
		a.pending = nil
	}
	return a.complete(ctx, attempt, resp)
}

func (a *authService) LogInTwoFactor(ctx context.Context, provider models.TwoFactorProviderType, code string, remember bool) (models.AuthResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	attempt := a.pending
	if attempt == nil {
		return models.AuthResult{}, ErrNoPendingLogin
	}

	resp, err := a.client.Token(ctx, identity.TokenRequest{
		Email:             attempt.email,
		Verifier:          attempt.verifier,
		TwoFactorProvider: &provider,
		TwoFactorToken:    code,
		Remember:          remember,
	})
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("token: %w", err)
	}
	a.pending = nil
	return a.complete(ctx, attempt, resp)
}

// complete turns a token response into an AuthResult. Caller holds a.mu.
func (a *authService) complete(ctx context.Context, attempt *pendingLogin, resp *identity.TokenResponse) (models.AuthResult, error) {
	result := models.AuthResult{
		ResetMasterPassword: resp.ResetMasterPassword,
		TwoFactorProviders:  resp.TwoFactorProviders,
	}

	if len(resp.TwoFactorProviders) > 0 {
		result.TwoFactor = true
		a.pending = attempt
		a.log.Info(ctx, "second factor required", "providers", len(resp.TwoFactorProviders))
		return result, nil
	}
	defer attempt.wipe()

	if err := a.tokens.SetTokens(ctx, resp.AccessToken, resp.RefreshToken); err != nil {
		return models.AuthResult{}, err
	}
	if err := a.saveOfflineData(ctx, attempt); err != nil {
		return models.AuthResult{}, fmt.Errorf("offline data saving error: %w", err)
	}
	a.keys.SetKey(attempt.key)
	a.log.Info(ctx, "logged in", "reset_required", resp.ResetMasterPassword)
	return result, nil
}

// saveOfflineData stores what OfflineLogin needs in a single transaction.
func (a *authService) saveOfflineData(ctx context.Context, attempt *pendingLogin) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, emailKey, []byte(attempt.email)); err != nil {
			return err
		}
		if err := repo.Set(ctx, saltKey, attempt.salt); err != nil {
			return err
		}
		return repo.Set(ctx, verifierKey, attempt.verifier)
	})
}

func (a *authService) OfflineLogin(ctx context.Context, email string, password security.Secret) error {
	repo := metadata.NewSQLiteRepository(a.db)

	savedEmail, err := repo.Get(ctx, emailKey)
	if err != nil {
		return err
	}
	savedSalt, err := repo.Get(ctx, saltKey)
	if err != nil {
		return err
	}
	savedVerifier, err := repo.Get(ctx, verifierKey)
	if err != nil {
		return err
	}
	if savedEmail == nil || savedSalt == nil || savedVerifier == nil {
		return ErrLocalDataNotAvailable
	}
	if string(savedEmail) != email {
		return common.ErrorUnauthorized
	}

	pw := password.Bytes()
	defer common.WipeByteArray(pw)
	key := deriveMasterKey(pw, savedSalt)
	defer common.WipeByteArray(key)
	if subtle.ConstantTimeCompare(savedVerifier, cryptox.MakeVerifier(key)) == 0 {
		return common.ErrorUnauthorized
	}
	a.keys.SetKey(key)
	return nil
}

func (a *authService) LogOut(ctx context.Context) error {
	a.mu.Lock()
	if a.pending != nil {
		a.pending.wipe()
		a.pending = nil
	}
	a.mu.Unlock()

	a.keys.ClearKey()
	if err := a.tokens.ClearTokens(ctx); err != nil {
		return err
	}
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for _, k := range []string{emailKey, saltKey, verifierKey} {
			if err := repo.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *authService) Close() error {
	return a.client.Close()
}
