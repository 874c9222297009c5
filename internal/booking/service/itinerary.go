package service

import (
	"context"

	"github.com/tanchhohang/airlines-api/internal/booking/models"
	"github.com/tanchhohang/airlines-api/internal/platform/middleware"
	"github.com/tanchhohang/airlines-api/internal/soap"
	dErrors "github.com/tanchhohang/airlines-api/pkg/domain-errors"
)

// ItineraryInput identifies an itinerary by exactly one of PNR or ticket
// number.
type ItineraryInput struct {
	PNRNo    string
	TicketNo string
}

// Itinerary looks up the issued itinerary for a PNR or a ticket number. The
// two identifiers are mutually exclusive. A backend response with no rows is
// an empty itinerary, not an error.
func (s *Service) Itinerary(ctx context.Context, creds middleware.Credentials, in ItineraryInput) ([]models.ItineraryRow, error) {
	if (in.PNRNo == "") == (in.TicketNo == "") {
		return nil, dErrors.New(dErrors.CodeValidation, "exactly one of pnr_no or ticket_no is required")
	}

	params := append(credParams(creds),
		soap.Param{Name: "strPnrNo", Value: in.PNRNo},
		soap.Param{Name: "strTicketNo", Value: in.TicketNo},
	)

	elem, err := s.call(ctx, "TicketDetail", params)
	if err != nil {
		return nil, err
	}
	if elem == nil {
		return []models.ItineraryRow{}, nil
	}
	return mapItinerary(elem)
}
