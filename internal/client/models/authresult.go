package models

import (
	"fmt"
	"sort"
	"strconv"
)

// TwoFactorProviderType identifies a second-factor challenge provider.
type TwoFactorProviderType int

const (
	TwoFactorAuthenticator   TwoFactorProviderType = 0
	TwoFactorEmail           TwoFactorProviderType = 1
	TwoFactorDuo             TwoFactorProviderType = 2
	TwoFactorYubiKey         TwoFactorProviderType = 3
	TwoFactorU2F             TwoFactorProviderType = 4
	TwoFactorRemember        TwoFactorProviderType = 5
	TwoFactorOrganizationDuo TwoFactorProviderType = 6
	TwoFactorWebAuthn        TwoFactorProviderType = 7
)

var twoFactorNames = map[TwoFactorProviderType]string{
	TwoFactorAuthenticator:   "authenticator",
	TwoFactorEmail:           "email",
	TwoFactorDuo:             "duo",
	TwoFactorYubiKey:         "yubikey",
	TwoFactorU2F:             "u2f",
	TwoFactorRemember:        "remember",
	TwoFactorOrganizationDuo: "organization_duo",
	TwoFactorWebAuthn:        "webauthn",
}

func (t TwoFactorProviderType) String() string {
	if n, ok := twoFactorNames[t]; ok {
		return n
	}
	return fmt.Sprintf("provider(%d)", int(t))
}

// ParseTwoFactorProviderType accepts either the numeric wire value or the
// provider name.
func ParseTwoFactorProviderType(s string) (TwoFactorProviderType, error) {
	if n, err := strconv.Atoi(s); err == nil {
		t := TwoFactorProviderType(n)
		if _, ok := twoFactorNames[t]; ok {
			return t, nil
		}
		return 0, fmt.Errorf("unknown two-factor provider %q", s)
	}
	for t, name := range twoFactorNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown two-factor provider %q", s)
}

// AuthResult is the outcome of one authentication attempt. It is created
// per attempt, read once by the caller to pick the next step and never
// persisted.
//
//   - TwoFactor=false: logged in; ResetMasterPassword tells whether the
//     master password must be rotated.
//   - TwoFactor=true: TwoFactorProviders holds one entry per available
//     provider with its parameters (e.g. an email hint). The caller completes
//     the challenge first, then the reset flow if ResetMasterPassword is set.
type AuthResult struct {
	TwoFactor           bool
	ResetMasterPassword bool
	TwoFactorProviders  map[TwoFactorProviderType]map[string]string
}

// RequiresTwoFactor reports whether a second factor must be supplied.
func (r AuthResult) RequiresTwoFactor() bool {
	return r.TwoFactor
}

// Providers lists the offered providers in ascending order.
func (r AuthResult) Providers() []TwoFactorProviderType {
	out := make([]TwoFactorProviderType, 0, len(r.TwoFactorProviders))
	for t := range r.TwoFactorProviders {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
