package service

import (
	"context"

	"github.com/tanchhohang/airlines-api/internal/booking/models"
	"github.com/tanchhohang/airlines-api/internal/platform/middleware"
	"github.com/tanchhohang/airlines-api/internal/soap"
	dErrors "github.com/tanchhohang/airlines-api/pkg/domain-errors"
)

// FlightDetail re-fetches a single flight by backend flight id, typically to
// confirm the fare immediately before reserving. The totals are recomputed
// the same way availability computes them.
func (s *Service) FlightDetail(ctx context.Context, creds middleware.Credentials, flightID string) (models.FlightOffer, error) {
	params := append(credParams(creds),
		soap.Param{Name: "strFlightId", Value: flightID},
	)

	elem, err := s.call(ctx, "FlightDetail", params)
	if err != nil {
		return models.FlightOffer{}, err
	}
	if elem == nil {
		return models.FlightOffer{}, dErrors.New(dErrors.CodeMissingData, "flight detail returned no data")
	}

	// The payload is a single Flight element, either as the result node
	// itself or wrapped one level down.
	flight := elem
	if flight.Tag != "Flight" {
		if inner := soap.FindLocal(elem, "Flight"); inner != nil {
			flight = inner
		}
	}
	record, err := soap.MapElement(flight, flightFields)
	if err != nil {
		return models.FlightOffer{}, err
	}
	return projectOffer(record), nil
}
