package service

import (
	"context"

	"github.com/tanchhohang/airlines-api/internal/booking/models"
	"github.com/tanchhohang/airlines-api/internal/platform/middleware"
	"github.com/tanchhohang/airlines-api/internal/soap"
	dErrors "github.com/tanchhohang/airlines-api/pkg/domain-errors"
)

var reservationFields = []soap.Field{
	{Out: "pnr_no", Names: []string{"PNRNO", "PNRNo"}, Kind: soap.String, Required: true},
	{Out: "airline_id", Names: []string{"AirlineID"}, Kind: soap.String},
	{Out: "flight_id", Names: []string{"FlightId", "FlightID"}, Kind: soap.String},
	{Out: "reservation_status", Names: []string{"ReservationStatus"}, Kind: soap.String},
	{Out: "ttl_date", Names: []string{"TTLDate"}, Kind: soap.Date},
	{Out: "ttl_time", Names: []string{"TTLTime"}, Kind: soap.Clock},
}

// PassengerInput is one passenger on a reservation or ticket issuance.
type PassengerInput struct {
	PaxType     string
	Title       string
	Gender      string
	FirstName   string
	LastName    string
	Nationality string
}

// ReservationInput is the validated caller input for a reservation.
type ReservationInput struct {
	FlightID       string
	ReturnFlightID string

	// Flight context and contact details, persisted with the booking.
	FlightNo      string
	FlightDate    string
	Departure     string
	Arrival       string
	ContactName   string
	ContactEmail  string
	ContactMobile string
	Passengers    []PassengerInput
}

// Reserve books the given flight and persists the resulting booking for the
// caller. A reservation is a single round trip; the ticketing time limit in
// the response is the deadline for issuance.
func (s *Service) Reserve(ctx context.Context, creds middleware.Credentials, username string, in ReservationInput) (models.Reservation, error) {
	params := append(credParams(creds),
		soap.Param{Name: "strFlightId", Value: in.FlightID},
		soap.Param{Name: "strReturnFlightId", Value: in.ReturnFlightID},
	)

	elem, err := s.call(ctx, "Reservation", params)
	if err != nil {
		return models.Reservation{}, err
	}
	if elem == nil {
		// Single-record operation: no return value is an upstream failure.
		return models.Reservation{}, dErrors.New(dErrors.CodeMissingData, "reservation returned no PNR detail")
	}

	record, err := soap.MapElement(elem, reservationFields)
	if err != nil {
		return models.Reservation{}, err
	}

	reservation := models.Reservation{
		FlightID:          record.String("flight_id"),
		PNRNo:             record.String("pnr_no"),
		AirlineID:         record.String("airline_id"),
		ReservationStatus: record.String("reservation_status"),
		TTLDate:           record.String("ttl_date"),
		TTLTime:           record.String("ttl_time"),
	}
	if reservation.FlightID == "" {
		reservation.FlightID = in.FlightID
	}

	passengers := make([]models.Passenger, 0, len(in.Passengers))
	for _, p := range in.Passengers {
		passengers = append(passengers, models.Passenger{
			PaxType:     p.PaxType,
			Title:       p.Title,
			Gender:      p.Gender,
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			Nationality: p.Nationality,
		})
	}

	_, err = s.bookings.Create(ctx, models.Booking{
		Username:          username,
		PNR:               reservation.PNRNo,
		AirlineID:         reservation.AirlineID,
		FlightID:          reservation.FlightID,
		FlightNo:          in.FlightNo,
		FlightDate:        in.FlightDate,
		Departure:         in.Departure,
		Arrival:           in.Arrival,
		ContactName:       in.ContactName,
		ContactEmail:      in.ContactEmail,
		ContactMobile:     in.ContactMobile,
		ReservationStatus: reservation.ReservationStatus,
		TTLDate:           reservation.TTLDate,
		TTLTime:           reservation.TTLTime,
	}, passengers)
	if err != nil {
		return models.Reservation{}, dErrors.Wrap(dErrors.CodeInternal, "persist booking", err)
	}

	return reservation, nil
}

// ListBookings returns the caller's persisted bookings.
func (s *Service) ListBookings(ctx context.Context, username string) ([]models.Booking, error) {
	return s.bookings.ListByUser(ctx, username)
}

// GetBooking returns one of the caller's bookings with its passengers.
func (s *Service) GetBooking(ctx context.Context, username, pnr string) (models.Booking, []models.Passenger, error) {
	return s.bookings.GetByPNR(ctx, username, pnr)
}
