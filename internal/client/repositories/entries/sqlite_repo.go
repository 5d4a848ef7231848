package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vaultcore/internal/client/models"
	"github.com/dmitrijs2005/vaultcore/internal/common"
	"github.com/dmitrijs2005/vaultcore/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// CreateOrUpdate upserts an entry by id and stamps updated_at.
func (r *SQLiteRepository) CreateOrUpdate(ctx context.Context, e *models.Entry) error {
	query := ` INSERT INTO entries (id, overview, nonce_overview, details, nonce_details, deleted, updated_at)
			values (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(id) DO UPDATE SET overview = excluded.overview,
				nonce_overview = excluded.nonce_overview,
				details = excluded.details,
				nonce_details = excluded.nonce_details,
				deleted = excluded.deleted,
				updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query,
		e.Id, e.Overview, e.NonceOverview, e.Details, e.NonceDetails, e.Deleted)
	if err != nil {
		return fmt.Errorf("failed to upsert entry: %w", err)
	}
	return nil
}

// GetAll lists all non-deleted entries in insertion order, returning only
// overview fields.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Entry, error) {
	query := `select id, overview, nonce_overview from entries where deleted=0 order by rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	var result []models.Entry
	for rows.Next() {
		var item models.Entry
		if err := rows.Scan(&item.Id, &item.Overview, &item.NonceOverview); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByID marks an entry as deleted (soft delete). It expects exactly one row to be affected.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	query := `update entries set deleted=1, updated_at=CURRENT_TIMESTAMP where id=? and deleted=0`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("entry %s: %w", id, common.ErrorNotFound)
	}
	return nil
}

// GetByID returns details for a single non-deleted entry.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Entry, error) {
	query := `select id, details, nonce_details from entries where deleted=0 and id=?`
	row := r.db.QueryRowContext(ctx, query, id)

	e := &models.Entry{}
	if err := row.Scan(&e.Id, &e.Details, &e.NonceDetails); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("entry %s: %w", id, common.ErrorNotFound)
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return e, nil
}

// Count returns the number of non-deleted entries.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `select count(*) from entries where deleted=0`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return n, nil
}
