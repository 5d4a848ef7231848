package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dmitrijs2005/vaultcore/internal/client/cli"
	"github.com/dmitrijs2005/vaultcore/internal/client/config"
	"github.com/dmitrijs2005/vaultcore/internal/client/container"
	"github.com/dmitrijs2005/vaultcore/internal/client/identity"
	"github.com/dmitrijs2005/vaultcore/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/vaultcore/internal/client/services"
	"github.com/dmitrijs2005/vaultcore/internal/client/source"
	"github.com/dmitrijs2005/vaultcore/internal/client/storage"
	"github.com/dmitrijs2005/vaultcore/internal/cryptox"
	"github.com/dmitrijs2005/vaultcore/internal/dbx"
	"github.com/dmitrijs2005/vaultcore/internal/flagx"
	"github.com/dmitrijs2005/vaultcore/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context) error {
	if extra := flagx.Positional(os.Args[1:], config.Flags()); len(extra) > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(extra, " "))
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Format(cfg.LogFormat), os.Stderr)
	if err != nil {
		return err
	}

	db, err := storage.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	settingsDB, dialect, err := storage.OpenSettings(ctx, cfg.SettingsDSN, db)
	if err != nil {
		return err
	}
	if settingsDB != db {
		defer settingsDB.Close()
	}

	crypto := cryptox.NewService()
	c := container.New(crypto)
	if !c.AttachToGlobal(&container.Default) {
		return errors.New("service container already attached")
	}

	idc, err := identity.NewGRPCClient(cfg.ServerEndpointAddr, cfg.RequestTimeout)
	if err != nil {
		return err
	}
	if err := idc.Ping(ctx); err != nil {
		logger.Warn(ctx, "identity service unreachable, offline login only", "addr", cfg.ServerEndpointAddr, "error", err)
	}

	var s3c source.GetObjectAPI
	if cfg.S3Region != "" || cfg.S3Endpoint != "" {
		client, err := source.NewS3Client(ctx, source.S3Config{
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return err
		}
		s3c = client
	}

	tokens := services.NewTokenService(metadata.NewSQLiteRepository(db))
	settings := services.NewSettingsService(settingsRepo(settingsDB, dialect), tokens, logger.With("component", "settings"))

	app := cli.NewApp(cli.Deps{
		Auth:          services.NewAuthService(idc, db, tokens, crypto, logger.With("component", "auth")),
		Vault:         services.NewVaultService(db, c, logger.With("component", "vault")),
		Settings:      settings,
		Users:         tokens,
		Source:        source.NewReader(s3c),
		Log:           logger,
		ImportWorkers: cfg.ImportWorkers,
	})
	app.Root(ctx)
	return nil
}

func settingsRepo(db *sql.DB, d dbx.Dialect) metadata.Repository {
	if d == dbx.Postgres {
		return metadata.NewPostgresRepository(db)
	}
	return metadata.NewSQLiteRepository(db)
}
