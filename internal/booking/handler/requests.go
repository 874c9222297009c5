package handler

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tanchhohang/airlines-api/internal/booking/service"
)

var validate = validator.New()

// fieldErrors flattens validator failures into a field → constraint map for
// the structured 400 body.
func fieldErrors(err error) map[string]string {
	fields := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	}
	return fields
}

type CheckBalanceRequest struct {
	AirlineID string `json:"airline_id" validate:"required"`
}

func (r *CheckBalanceRequest) Validate() error {
	return validate.Struct(r)
}

type AvailabilityRequest struct {
	SectorFrom  string `json:"sector_from" validate:"required"`
	SectorTo    string `json:"sector_to" validate:"required"`
	FlightDate  string `json:"flight_date" validate:"required,datetime=2006-01-02"`
	ReturnDate  string `json:"return_date" validate:"omitempty,datetime=2006-01-02"`
	Adult       int    `json:"adult" validate:"required,min=1"`
	Child       int    `json:"child" validate:"min=0"`
	Infant      int    `json:"infant" validate:"min=0"`
	Nationality string `json:"nationality"`
}

func (r *AvailabilityRequest) Validate() error {
	return validate.Struct(r)
}

func (r *AvailabilityRequest) toInput() service.AvailabilityInput {
	return service.AvailabilityInput{
		SectorFrom:  r.SectorFrom,
		SectorTo:    r.SectorTo,
		FlightDate:  r.FlightDate,
		ReturnDate:  r.ReturnDate,
		Adult:       r.Adult,
		Child:       r.Child,
		Infant:      r.Infant,
		Nationality: r.Nationality,
	}
}

type PassengerRequest struct {
	PaxType     string `json:"pax_type" validate:"required,oneof=ADT CHD INF"`
	Title       string `json:"title"`
	Gender      string `json:"gender" validate:"omitempty,oneof=M F"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Nationality string `json:"nationality"`
}

func (r PassengerRequest) toInput() service.PassengerInput {
	return service.PassengerInput{
		PaxType:     r.PaxType,
		Title:       r.Title,
		Gender:      r.Gender,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Nationality: r.Nationality,
	}
}

type ReservationRequest struct {
	FlightID       string `json:"flight_id" validate:"required"`
	ReturnFlightID string `json:"return_flight_id"`

	FlightNo      string             `json:"flight_no"`
	FlightDate    string             `json:"flight_date" validate:"omitempty,datetime=2006-01-02"`
	Departure     string             `json:"departure"`
	Arrival       string             `json:"arrival"`
	ContactName   string             `json:"contact_name"`
	ContactEmail  string             `json:"contact_email" validate:"omitempty,email"`
	ContactMobile string             `json:"contact_mobile"`
	Passengers    []PassengerRequest `json:"passengers" validate:"required,min=1,dive"`
}

func (r *ReservationRequest) Validate() error {
	return validate.Struct(r)
}

func (r *ReservationRequest) toInput() service.ReservationInput {
	passengers := make([]service.PassengerInput, 0, len(r.Passengers))
	for _, p := range r.Passengers {
		passengers = append(passengers, p.toInput())
	}
	return service.ReservationInput{
		FlightID:       r.FlightID,
		ReturnFlightID: r.ReturnFlightID,
		FlightNo:       r.FlightNo,
		FlightDate:     r.FlightDate,
		Departure:      r.Departure,
		Arrival:        r.Arrival,
		ContactName:    r.ContactName,
		ContactEmail:   r.ContactEmail,
		ContactMobile:  r.ContactMobile,
		Passengers:     passengers,
	}
}

type IssueTicketRequest struct {
	Passengers []PassengerRequest `json:"passengers" validate:"required,min=1,dive"`
}

func (r *IssueTicketRequest) Validate() error {
	return validate.Struct(r)
}

// SalesReportQuery is bound from query parameters, so it is validated by
// hand rather than by struct tags.
type SalesReportQuery struct {
	DateFrom string
	DateTo   string
}

// Validate returns a field → constraint map in the same shape fieldErrors
// produces, or nil when the query is well-formed.
func (q *SalesReportQuery) Validate() map[string]string {
	fields := make(map[string]string)
	from, err := time.Parse("2006-01-02", q.DateFrom)
	if err != nil {
		fields["DateFrom"] = "must be YYYY-MM-DD"
	}
	to, err := time.Parse("2006-01-02", q.DateTo)
	if err != nil {
		fields["DateTo"] = "must be YYYY-MM-DD"
	}
	if len(fields) == 0 && to.Before(from) {
		fields["DateTo"] = "must not precede date_from"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
