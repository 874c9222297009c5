// Package sector persists sector reference data. Sector rows are the only
// state mutated as a side effect of a read operation: the sector sync
// upserts whatever the backend lists.
package sector

import (
	"context"

	"github.com/tanchhohang/airlines-api/internal/booking/models"
	dErrors "github.com/tanchhohang/airlines-api/pkg/domain-errors"
)

// ErrNotFound keeps store-specific 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "sector not found")

// Store persists sectors keyed by their 3-letter code.
type Store interface {
	// UpsertByCode inserts or updates atomically by natural key, so
	// concurrent sector refreshes cannot race into duplicate rows.
	UpsertByCode(ctx context.Context, code, name string) (models.Sector, error)
	GetByCode(ctx context.Context, code string) (models.Sector, error)
	List(ctx context.Context) ([]models.Sector, error)
	Delete(ctx context.Context, code string) error
}
