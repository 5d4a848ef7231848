package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/vaultcore/internal/client/services"
	"github.com/dmitrijs2005/vaultcore/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// SettingsStore is the part of services.SettingsService the CLI drives.
type SettingsStore interface {
	GetEquivalentDomains(ctx context.Context) ([][]string, error)
	SetEquivalentDomains(ctx context.Context, domains [][]string) error
	Clear(ctx context.Context, userID string) error
}

// Source loads the raw text of an export.
type Source interface {
	Read(ctx context.Context, location string) (string, error)
}

// Deps are the collaborators of an App.
type Deps struct {
	Auth          services.AuthService
	Vault         services.VaultService
	Settings      SettingsStore
	Users         services.UserIDProvider
	Source        Source
	Log           logging.Logger
	ImportWorkers int
}

type App struct {
	auth     services.AuthService
	vault    services.VaultService
	settings SettingsStore
	users    services.UserIDProvider
	source   Source
	log      logging.Logger
	workers  int

	userName string
	loggedIn bool
	Mode     Mode

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(d Deps) *App {
	log := d.Log
	if log == nil {
		log = logging.Nop()
	}
	return &App{
		auth:     d.Auth,
		vault:    d.Vault,
		settings: d.Settings,
		users:    d.Users,
		source:   d.Source,
		log:      log,
		workers:  d.ImportWorkers,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.printf("Switched to %s mode\n", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

func (a *App) status() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.Mode != "" {
		s += string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// Root runs the login prompt and then the REPL until the user exits or
// stdin closes.
func (a *App) Root(ctx context.Context) {
	defer func() {
		if err := a.auth.Close(); err != nil {
			a.log.Warn(ctx, "close identity client", "error", err)
		}
	}()

	a.println("Welcome to the vault CLI (type 'help' for commands)")
	if err := a.Login(ctx, nil); err != nil {
		a.log.Debug(ctx, "initial login", "error", err)
	}

	scanner := bufio.NewScanner(a.reader)
	runREPL(ctx, a, a.status, scanner)
}
