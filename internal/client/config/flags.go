package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/vaultcore/internal/flagx"
)

var overrideFlags = []string{"-a", "-d", "-s", "-w", "-t", "-l"}

// Flags lists every flag the config layer owns, config file selectors
// included. Anything else on the command line is a stray argument.
func Flags() []string {
	return append(append([]string{}, overrideFlags...), flagx.ConfigFlags...)
}

// parseFlags overlays cfg with command-line flags. Arguments that are not
// config flags are ignored so commands can follow them.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, overrideFlags)

	fs := flag.NewFlagSet("vault", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the identity service")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "local vault database")
	fs.StringVar(&cfg.SettingsDSN, "s", cfg.SettingsDSN, "settings store DSN")
	fs.IntVar(&cfg.ImportWorkers, "w", cfg.ImportWorkers, "concurrent import jobs")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogFormat, "l", cfg.LogFormat, "log format (text|json)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	if cfg.ImportWorkers < 1 {
		return fmt.Errorf("import workers must be positive, got %d", cfg.ImportWorkers)
	}
	if *timeout < 1 {
		return fmt.Errorf("request timeout must be positive, got %d", *timeout)
	}
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
