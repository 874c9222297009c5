// Package airline persists airline reference data.
package airline

import (
	"context"

	"github.com/tanchhohang/airlines-api/internal/booking/models"
	dErrors "github.com/tanchhohang/airlines-api/pkg/domain-errors"
)

// ErrNotFound keeps store-specific 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "airline not found")

// Store persists airlines keyed by their carrier code.
type Store interface {
	Upsert(ctx context.Context, airline models.Airline) (models.Airline, error)
	// UpsertName refreshes only the display name, leaving the seeded fare
	// untouched on existing rows.
	UpsertName(ctx context.Context, airlineID, airlineName string) (models.Airline, error)
	GetByID(ctx context.Context, airlineID string) (models.Airline, error)
	List(ctx context.Context) ([]models.Airline, error)
}
