package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/vaultcore/internal/client/identity"
	"github.com/dmitrijs2005/vaultcore/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Login prompts for credentials and unlocks the vault.
//
// Online login is tried first. When the identity service asks for a second
// factor the user picks a provider and enters the code. If the service is
// unreachable the cached credentials of the last online login are used and
// the session runs in offline mode.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer password.Zero()

	res, err := a.auth.LogIn(ctx, email, password)
	if errors.Is(err, identity.ErrUnavailable) {
		a.println("Server unavailable, trying offline login...")
		if err := a.auth.OfflineLogin(ctx, email, password); err != nil {
			a.log.Info(ctx, "offline login failed", "error", err)
			a.println("Offline login unsuccessful:", err)
			return err
		}
		a.signedIn(email, ModeOffline)
		return nil
	}
	if err != nil {
		a.log.Info(ctx, "login failed", "error", err)
		a.println("Login unsuccessful:", err)
		return err
	}

	if res.RequiresTwoFactor() {
		res, err = a.secondFactor(ctx, res)
		if err != nil {
			a.println("Two-step login unsuccessful:", err)
			return err
		}
	}

	a.signedIn(email, ModeOnline)
	if res.ResetMasterPassword {
		a.println("Your organization requires you to change the master password.")
	}
	return nil
}

func (a *App) secondFactor(ctx context.Context, res models.AuthResult) (models.AuthResult, error) {
	providers := res.Providers()
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.String()
	}
	a.println("Two-step login required. Available providers:", strings.Join(names, ", "))

	choice, err := getSimpleText(a.reader, "Provider (empty for "+names[0]+")", a.out)
	if err != nil {
		return models.AuthResult{}, err
	}
	provider := providers[0]
	if choice != "" {
		if provider, err = models.ParseTwoFactorProviderType(choice); err != nil {
			return models.AuthResult{}, err
		}
	}

	code, err := getSimpleText(a.reader, "Verification code", a.out)
	if err != nil {
		return models.AuthResult{}, err
	}
	remember, err := getSimpleText(a.reader, "Remember this device? (y/N)", a.out)
	if err != nil {
		return models.AuthResult{}, err
	}
	rem, _ := strconv.ParseBool(remember)
	rem = rem || strings.EqualFold(remember, "y") || strings.EqualFold(remember, "yes")

	res, err = a.auth.LogInTwoFactor(ctx, provider, code, rem)
	if err != nil {
		return models.AuthResult{}, err
	}
	if res.RequiresTwoFactor() {
		return models.AuthResult{}, errors.New("second factor rejected")
	}
	return res, nil
}

func (a *App) signedIn(email string, mode Mode) {
	a.userName = email
	a.loggedIn = true
	a.println("Login successful")
	a.setMode(mode)
}

// Logout drops the user's cached settings, then tokens, key and offline
// credentials.
func (a *App) Logout(ctx context.Context, _ []string) error {
	if uid, err := a.users.UserID(ctx); err == nil {
		if err := a.settings.Clear(ctx, uid); err != nil {
			a.log.Warn(ctx, "clear settings on logout", "error", err)
		}
	}
	if err := a.auth.LogOut(ctx); err != nil {
		a.println("Logout failed:", err)
		return err
	}
	a.userName = ""
	a.loggedIn = false
	a.Mode = ""
	a.println("Logged out")
	return nil
}
