// Package booking persists completed reservations and their passengers.
package booking

import (
	"context"

	"github.com/tanchhohang/airlines-api/internal/booking/models"
	dErrors "github.com/tanchhohang/airlines-api/pkg/domain-errors"
)

// ErrNotFound keeps store-specific 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "booking not found")

// Store persists bookings and passenger rows.
type Store interface {
	Create(ctx context.Context, b models.Booking, passengers []models.Passenger) (models.Booking, error)
	GetByPNR(ctx context.Context, username, pnr string) (models.Booking, []models.Passenger, error)
	ListByUser(ctx context.Context, username string) ([]models.Booking, error)
	// AttachTickets fills in ticket numbers and fare breakdowns on the
	// booking's passenger rows after issuance. Rows are matched by
	// passenger name; unmatched rows are ignored.
	AttachTickets(ctx context.Context, pnr string, rows []models.ItineraryRow) error
}
