package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vaultcore/internal/client/container"
	"github.com/dmitrijs2005/vaultcore/internal/client/domains"
	"github.com/dmitrijs2005/vaultcore/internal/client/importers"
	"github.com/dmitrijs2005/vaultcore/internal/client/models"
	"github.com/dmitrijs2005/vaultcore/internal/client/repositories/entries"
	"github.com/dmitrijs2005/vaultcore/internal/cryptox"
	"github.com/dmitrijs2005/vaultcore/internal/dbx"
	"github.com/dmitrijs2005/vaultcore/internal/logging"
	"github.com/google/uuid"
)

// ErrImportFailed is returned when an import result reports a parse failure.
var ErrImportFailed = errors.New("import failed")

// VaultService stores and reads encrypted vault entries.
type VaultService interface {
	// Import encrypts every cipher of res and stores them in one transaction.
	// It returns the number of stored entries.
	Import(ctx context.Context, res importers.Result) (int, error)
	List(ctx context.Context) ([]models.ViewOverview, error)
	Get(ctx context.Context, id string) (*models.Envelope, error)
	// FindByURL lists entries with a URI on the same or an equivalent site.
	FindByURL(ctx context.Context, url string, equivalent [][]string) ([]models.ViewOverview, error)
	DeleteByID(ctx context.Context, id string) error
}

type vaultService struct {
	db     *sql.DB
	crypto container.CryptoService
	log    logging.Logger
}

func NewVaultService(db *sql.DB, c *container.Container, log logging.Logger) VaultService {
	return &vaultService{db: db, crypto: c.Crypto(), log: log}
}

func (s *vaultService) seal(c models.Cipher, folder string) (*models.Entry, error) {
	env, err := models.Wrap(c, folder)
	if err != nil {
		return nil, err
	}
	ov, ovNonce, err := s.crypto.Encrypt(env.Overview())
	if err != nil {
		return nil, fmt.Errorf("encryption error: %w", err)
	}
	details, detailsNonce, err := s.crypto.Encrypt(env)
	if err != nil {
		return nil, fmt.Errorf("encryption error: %w", err)
	}
	return &models.Entry{
		Id:            uuid.NewString(),
		Overview:      ov,
		NonceOverview: ovNonce,
		Details:       details,
		NonceDetails:  detailsNonce,
	}, nil
}

func (s *vaultService) Import(ctx context.Context, res importers.Result) (int, error) {
	if !res.Success {
		return 0, ErrImportFailed
	}
	if !s.crypto.HasKey() {
		return 0, cryptox.ErrNoKey
	}

	sealed := make([]*models.Entry, 0, len(res.Ciphers))
	for i, c := range res.Ciphers {
		e, err := s.seal(c, res.FolderOf(i))
		if err != nil {
			return 0, fmt.Errorf("cipher %d: %w", i, err)
		}
		sealed = append(sealed, e)
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := entries.NewSQLiteRepository(tx)
		for _, e := range sealed {
			if err := repo.CreateOrUpdate(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("saving error: %w", err)
	}

	s.log.Info(ctx, "import stored", "entries", len(sealed), "folders", len(res.Folders))
	return len(sealed), nil
}

func (s *vaultService) List(ctx context.Context) ([]models.ViewOverview, error) {
	if !s.crypto.HasKey() {
		return nil, cryptox.ErrNoKey
	}

	rows, err := entries.NewSQLiteRepository(s.db).GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error: %w", err)
	}

	result := make([]models.ViewOverview, 0, len(rows))
	for _, row := range rows {
		var ov models.Overview
		if err := s.crypto.Decrypt(row.Overview, row.NonceOverview, &ov); err != nil {
			s.log.Warn(ctx, "skipping undecryptable entry", "id", row.Id, "error", err)
			continue
		}
		result = append(result, models.ViewOverview{Id: row.Id, Overview: ov})
	}
	return result, nil
}

func (s *vaultService) Get(ctx context.Context, id string) (*models.Envelope, error) {
	entry, err := entries.NewSQLiteRepository(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving entry: %w", err)
	}

	var env models.Envelope
	if err := s.crypto.Decrypt(entry.Details, entry.NonceDetails, &env); err != nil {
		return nil, fmt.Errorf("error decrypting entry: %w", err)
	}
	return &env, nil
}

func (s *vaultService) FindByURL(ctx context.Context, url string, equivalent [][]string) ([]models.ViewOverview, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	m := domains.NewMatcher(equivalent)
	var out []models.ViewOverview
	for _, ov := range all {
		if m.MatchAny(ov.URIs, url) {
			out = append(out, ov)
		}
	}
	return out, nil
}

func (s *vaultService) DeleteByID(ctx context.Context, id string) error {
	if err := entries.NewSQLiteRepository(s.db).DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("error deleting entry: %w", err)
	}
	return nil
}
