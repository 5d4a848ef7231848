// Package storage opens the vault databases and brings their schema up to
// date with goose.
//
// The local vault is always SQLite (modernc.org/sqlite). Settings live in
// the same file unless a PostgreSQL DSN is configured, in which case they go
// to a shared database through the pgx stdlib driver.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"

	"github.com/dmitrijs2005/vaultcore/internal/client/migrations"
	"github.com/dmitrijs2005/vaultcore/internal/dbx"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// IsPostgresDSN reports whether dsn addresses a PostgreSQL server.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open opens the SQLite vault at dsn and runs its migrations.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open vault %s: %w", dsn, err)
	}
	// one writer; also keeps ":memory:" on a single connection
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db, dbx.SQLite); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// OpenSettings opens the settings store. An empty dsn returns vault itself,
// which the caller must not close twice.
func OpenSettings(ctx context.Context, dsn string, vault *sql.DB) (db *sql.DB, d dbx.Dialect, err error) {
	switch {
	case dsn == "":
		return vault, dbx.SQLite, nil
	case IsPostgresDSN(dsn):
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			return nil, 0, fmt.Errorf("open settings store: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, 0, fmt.Errorf("connect settings store: %w", err)
		}
		if err := RunMigrations(ctx, db, dbx.Postgres); err != nil {
			_ = db.Close()
			return nil, 0, err
		}
		return db, dbx.Postgres, nil
	default:
		db, err = Open(ctx, dsn)
		return db, dbx.SQLite, err
	}
}

// RunMigrations applies every pending migration for dialect d. It is
// idempotent.
func RunMigrations(ctx context.Context, db *sql.DB, d dbx.Dialect) error {
	dialect := goose.DialectSQLite3
	if d == dbx.Postgres {
		dialect = goose.DialectPostgres
	}

	dir, err := fs.Sub(migrations.FS, d.String())
	if err != nil {
		return fmt.Errorf("migrations for %s: %w", d, err)
	}

	p, err := goose.NewProvider(dialect, db, dir)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("migrate %s: %w", d, err)
	}
	return nil
}
