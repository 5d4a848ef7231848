package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the vault CLI.
//
// DatabaseDSN is the local SQLite vault. SettingsDSN optionally moves the
// settings store elsewhere: empty keeps it in the vault, a postgres:// URL
// selects PostgreSQL, anything else is another SQLite file.
type Config struct {
	ServerEndpointAddr string
	DatabaseDSN        string
	SettingsDSN        string
	ImportWorkers      int
	RequestTimeout     time.Duration
	LogFormat          string

	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DatabaseDSN = "vault.db"
	c.SettingsDSN = ""
	c.ImportWorkers = 4
	c.RequestTimeout = 10 * time.Second
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
