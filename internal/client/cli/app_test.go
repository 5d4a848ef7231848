package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/vaultcore/internal/client/identity"
	"github.com/dmitrijs2005/vaultcore/internal/client/importers"
	"github.com/dmitrijs2005/vaultcore/internal/client/models"
	"github.com/dmitrijs2005/vaultcore/internal/common"
	"github.com/dmitrijs2005/vaultcore/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ------------ fakes ------------

type fakeAuth struct {
	LogInResult   models.AuthResult
	LogInErr      error
	TwoFAResult   models.AuthResult
	TwoFAErr      error
	OfflineErr    error
	LogOutErr     error
	LastEmail     string
	LastPassword  string
	LastProvider  models.TwoFactorProviderType
	LastCode      string
	LastRemember  bool
	OfflineCalled bool
	LogOutCalled  bool
	Closed        bool
}

func (f *fakeAuth) LogIn(ctx context.Context, email string, password security.Secret) (models.AuthResult, error) {
	f.LastEmail, f.LastPassword = email, password.Reveal()
	return f.LogInResult, f.LogInErr
}

func (f *fakeAuth) LogInTwoFactor(ctx context.Context, p models.TwoFactorProviderType, code string, remember bool) (models.AuthResult, error) {
	f.LastProvider, f.LastCode, f.LastRemember = p, code, remember
	return f.TwoFAResult, f.TwoFAErr
}

func (f *fakeAuth) OfflineLogin(ctx context.Context, email string, password security.Secret) error {
	f.OfflineCalled = true
	return f.OfflineErr
}

func (f *fakeAuth) LogOut(ctx context.Context) error {
	f.LogOutCalled = true
	return f.LogOutErr
}

func (f *fakeAuth) Close() error {
	f.Closed = true
	return nil
}

type fakeVault struct {
	Imported  []importers.Result
	ImportErr error
	Items     []models.ViewOverview
	LastURL   string
	LastEq    [][]string
}

func (f *fakeVault) Import(ctx context.Context, res importers.Result) (int, error) {
	if f.ImportErr != nil {
		return 0, f.ImportErr
	}
	f.Imported = append(f.Imported, res)
	return len(res.Ciphers), nil
}

func (f *fakeVault) List(ctx context.Context) ([]models.ViewOverview, error) {
	return f.Items, nil
}

func (f *fakeVault) Get(ctx context.Context, id string) (*models.Envelope, error) {
	return nil, common.ErrorNotFound
}

func (f *fakeVault) FindByURL(ctx context.Context, url string, eq [][]string) ([]models.ViewOverview, error) {
	f.LastURL, f.LastEq = url, eq
	return f.Items, nil
}

func (f *fakeVault) DeleteByID(ctx context.Context, id string) error { return nil }

type fakeSettings struct {
	Domains     [][]string
	GetErr      error
	SetErr      error
	ClearedUser string
}

func (f *fakeSettings) GetEquivalentDomains(ctx context.Context) ([][]string, error) {
	return f.Domains, f.GetErr
}

func (f *fakeSettings) SetEquivalentDomains(ctx context.Context, d [][]string) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	f.Domains = d
	return nil
}

func (f *fakeSettings) Clear(ctx context.Context, userID string) error {
	f.ClearedUser = userID
	return nil
}

type fakeUsers struct {
	ID  string
	Err error
}

func (f fakeUsers) UserID(ctx context.Context) (string, error) { return f.ID, f.Err }

type fakeSource map[string]string

func (f fakeSource) Read(ctx context.Context, loc string) (string, error) {
	data, ok := f[loc]
	if !ok {
		return "", errors.New("no such file")
	}
	return data, nil
}

// ------------ helpers ------------

type testApp struct {
	*App
	auth     *fakeAuth
	vault    *fakeVault
	settings *fakeSettings
	out      *bytes.Buffer
}

func newTestApp(input string, src fakeSource) testApp {
	ta := testApp{
		auth:     &fakeAuth{},
		vault:    &fakeVault{},
		settings: &fakeSettings{},
		out:      &bytes.Buffer{},
	}
	ta.App = NewApp(Deps{
		Auth:          ta.auth,
		Vault:         ta.vault,
		Settings:      ta.settings,
		Users:         fakeUsers{ID: "user-1"},
		Source:        src,
		ImportWorkers: 2,
	})
	ta.App.reader = bufio.NewReader(strings.NewReader(input))
	ta.App.out = ta.out
	return ta
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(w io.Writer) (security.Secret, error) { return security.FromString(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

// ------------ login ------------

func TestLogin_Online(t *testing.T) {
	stubPassword(t, "pw")
	a := newTestApp("me@example.com\n", nil)

	require.NoError(t, a.Login(context.Background(), nil))
	assert.Equal(t, "me@example.com", a.auth.LastEmail)
	assert.Equal(t, "pw", a.auth.LastPassword)
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, ModeOnline, a.Mode)
	assert.Equal(t, "(me@example.com online)", a.status())
}

func TestLogin_OfflineFallback(t *testing.T) {
	stubPassword(t, "pw")
	a := newTestApp("me@example.com\n", nil)
	a.auth.LogInErr = identity.ErrUnavailable

	require.NoError(t, a.Login(context.Background(), nil))
	assert.True(t, a.auth.OfflineCalled)
	assert.Equal(t, ModeOffline, a.Mode)
}

func TestLogin_OfflineFallbackFails(t *testing.T) {
	stubPassword(t, "pw")
	a := newTestApp("me@example.com\n", nil)
	a.auth.LogInErr = identity.ErrUnavailable
	a.auth.OfflineErr = common.ErrorUnauthorized

	require.ErrorIs(t, a.Login(context.Background(), nil), common.ErrorUnauthorized)
	assert.False(t, a.isLoggedIn())
}

func TestLogin_Rejected(t *testing.T) {
	stubPassword(t, "pw")
	a := newTestApp("me@example.com\n", nil)
	a.auth.LogInErr = identity.ErrUnauthorized

	require.ErrorIs(t, a.Login(context.Background(), nil), identity.ErrUnauthorized)
	assert.False(t, a.auth.OfflineCalled)
	assert.False(t, a.isLoggedIn())
}

func TestLogin_TwoFactor(t *testing.T) {
	stubPassword(t, "pw")
	a := newTestApp("me@example.com\nemail\n123456\ny\n", nil)
	a.auth.LogInResult = models.AuthResult{
		TwoFactor: true,
		TwoFactorProviders: map[models.TwoFactorProviderType]map[string]string{
			models.TwoFactorAuthenticator: nil,
			models.TwoFactorEmail:         {"Email": "m***@example.com"},
		},
	}
	a.auth.TwoFAResult = models.AuthResult{ResetMasterPassword: true}

	require.NoError(t, a.Login(context.Background(), nil))
	assert.Equal(t, models.TwoFactorEmail, a.auth.LastProvider)
	assert.Equal(t, "123456", a.auth.LastCode)
	assert.True(t, a.auth.LastRemember)
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, a.out.String(), "change the master password")
}

func TestLogin_TwoFactorDefaultsToFirstProvider(t *testing.T) {
	stubPassword(t, "pw")
	a := newTestApp("me@example.com\n\n000000\n\n", nil)
	a.auth.LogInResult = models.AuthResult{
		TwoFactor: true,
		TwoFactorProviders: map[models.TwoFactorProviderType]map[string]string{
			models.TwoFactorEmail:         nil,
			models.TwoFactorAuthenticator: nil,
		},
	}

	require.NoError(t, a.Login(context.Background(), nil))
	assert.Equal(t, models.TwoFactorAuthenticator, a.auth.LastProvider)
	assert.False(t, a.auth.LastRemember)
}

func TestLogout(t *testing.T) {
	a := newTestApp("", nil)
	a.loggedIn, a.userName, a.Mode = true, "me", ModeOnline

	require.NoError(t, a.Logout(context.Background(), nil))
	assert.Equal(t, "user-1", a.settings.ClearedUser)
	assert.True(t, a.auth.LogOutCalled)
	assert.False(t, a.isLoggedIn())
	assert.Empty(t, a.status())
}

// ------------ import ------------

func TestImport_Messages(t *testing.T) {
	src := fakeSource{
		"ok.csv":    "name,url,username,password\nMail,https://mail.example.com,me,pw\n",
		"empty.csv": "name,url,username,password\n",
		"bad.csv":   "   ",
	}
	a := newTestApp("", src)

	err := a.Import(context.Background(), []string{"chromecsv", "ok.csv", "empty.csv", "bad.csv", "missing.csv"})
	require.NoError(t, err)

	out := a.out.String()
	assert.Contains(t, out, "ok.csv: imported 1 entries")
	assert.Contains(t, out, "empty.csv: no entries found")
	assert.Contains(t, out, "bad.csv: could not read file")
	assert.Contains(t, out, "missing.csv: could not read file")

	require.Len(t, a.vault.Imported, 1)
	assert.Equal(t, "Mail", a.vault.Imported[0].Ciphers[0].Name)
}

func TestImport_UnknownFormatAndUsage(t *testing.T) {
	a := newTestApp("", fakeSource{})

	require.ErrorIs(t, a.Import(context.Background(), []string{"nope", "a.csv"}), importers.ErrUnknownFormat)
	require.NoError(t, a.Import(context.Background(), []string{"chromecsv"}))
	assert.Contains(t, a.out.String(), "Usage: import")
}

func TestImport_StoreFailureReported(t *testing.T) {
	a := newTestApp("", fakeSource{"a.csv": "name,url,username,password\nx,https://x.com,u,p\n"})
	a.vault.ImportErr = errors.New("disk full")

	require.NoError(t, a.Import(context.Background(), []string{"chromecsv", "a.csv"}))
	assert.Contains(t, a.out.String(), "a.csv: import failed: disk full")
}

func TestFormats(t *testing.T) {
	a := newTestApp("", nil)
	require.NoError(t, a.Formats(context.Background(), nil))
	for _, f := range importers.Formats() {
		assert.Contains(t, a.out.String(), string(f))
	}
}

// ------------ list / match / settings ------------

func TestList(t *testing.T) {
	a := newTestApp("", nil)
	require.NoError(t, a.List(context.Background(), nil))
	assert.Contains(t, a.out.String(), "no entries found")

	a.out.Reset()
	a.vault.Items = []models.ViewOverview{{
		Id:       "id-1",
		Overview: models.Overview{Type: models.CipherTypeLogin, Title: "Mail", URIs: []string{"https://mail.example.com"}},
	}}
	require.NoError(t, a.List(context.Background(), nil))
	assert.Contains(t, a.out.String(), "id-1")
	assert.Contains(t, a.out.String(), "Mail")
	assert.Contains(t, a.out.String(), "https://mail.example.com")
}

func TestMatch_UsesEquivalentDomains(t *testing.T) {
	a := newTestApp("", nil)
	a.settings.Domains = [][]string{{"example.com", "example.org"}}

	require.NoError(t, a.Match(context.Background(), []string{"https://example.org/login"}))
	assert.Equal(t, "https://example.org/login", a.vault.LastURL)
	assert.Equal(t, [][]string{{"example.com", "example.org"}}, a.vault.LastEq)
}

func TestMatch_SettingsErrorStillMatches(t *testing.T) {
	a := newTestApp("", nil)
	a.settings.GetErr = common.ErrPersistence

	require.NoError(t, a.Match(context.Background(), []string{"https://example.org"}))
	assert.Nil(t, a.vault.LastEq)
	assert.Equal(t, "https://example.org", a.vault.LastURL)
}

func TestSetDomainsAndDomains(t *testing.T) {
	a := newTestApp("Example.com, example.org\n\n  \nfoo.com bar.com\n\n", nil)

	require.NoError(t, a.SetDomains(context.Background(), nil))
	assert.Equal(t, [][]string{{"example.com", "example.org"}}, a.settings.Domains)

	a.out.Reset()
	require.NoError(t, a.Domains(context.Background(), nil))
	assert.Contains(t, a.out.String(), "example.com, example.org")
}

func TestClearSettings(t *testing.T) {
	a := newTestApp("", nil)
	require.NoError(t, a.ClearSettings(context.Background(), nil))
	assert.Equal(t, "user-1", a.settings.ClearedUser)

	a.users = fakeUsers{Err: common.ErrorUnauthorized}
	require.ErrorIs(t, a.ClearSettings(context.Background(), nil), common.ErrorUnauthorized)
}
