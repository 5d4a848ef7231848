package entries

import (
	"context"

	"github.com/dmitrijs2005/vaultcore/internal/client/models"
)

// Repository describes CRUD and query operations for encrypted vault entries.
type Repository interface {
	// CreateOrUpdate inserts a new entry or updates an existing one by Id.
	CreateOrUpdate(ctx context.Context, entry *models.Entry) error

	// GetAll returns the overview part of every live entry.
	GetAll(ctx context.Context) ([]models.Entry, error)

	// DeleteByID marks an entry as deleted.
	DeleteByID(ctx context.Context, id string) error

	// GetByID returns the details part of an entry. A missing or deleted entry
	// yields an error wrapping common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Entry, error)

	// Count returns the number of live entries.
	Count(ctx context.Context) (int, error)
}
