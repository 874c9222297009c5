package service

import (
	"context"
	"strconv"

	"github.com/beevik/etree"

	"github.com/tanchhohang/airlines-api/internal/booking/models"
	"github.com/tanchhohang/airlines-api/internal/platform/middleware"
	"github.com/tanchhohang/airlines-api/internal/soap"
)

// flightFields is the shared mapping table for flight offers across
// availability and flight detail. The backend spells FlightId both ways.
var flightFields = []soap.Field{
	{Out: "airline_id", Names: []string{"AirlineID", "Airline"}, Kind: soap.String},
	{Out: "flight_id", Names: []string{"FlightId", "FlightID"}, Kind: soap.String, Required: true},
	{Out: "flight_no", Names: []string{"FlightNo"}, Kind: soap.String},
	{Out: "flight_date", Names: []string{"FlightDate"}, Kind: soap.Date},
	{Out: "departure_time", Names: []string{"DepartureTime"}, Kind: soap.Clock},
	{Out: "arrival_time", Names: []string{"ArrivalTime"}, Kind: soap.Clock},
	{Out: "departure", Names: []string{"Departure", "SectorFrom"}, Kind: soap.String},
	{Out: "arrival", Names: []string{"Arrival", "SectorTo"}, Kind: soap.String},
	{Out: "adult_fare", Names: []string{"AdultFare"}, Kind: soap.Float},
	{Out: "child_fare", Names: []string{"ChildFare"}, Kind: soap.Float},
	{Out: "infant_fare", Names: []string{"InfantFare"}, Kind: soap.Float},
	{Out: "fuel_surcharge", Names: []string{"FuelSurcharge"}, Kind: soap.Float},
	{Out: "tax", Names: []string{"Tax"}, Kind: soap.Float},
	{Out: "child_tax_adjustment", Names: []string{"ChildTaxAdjustment"}, Kind: soap.Float},
	{Out: "commission", Names: []string{"Commission"}, Kind: soap.Float},
	{Out: "child_commission", Names: []string{"ChildCommission"}, Kind: soap.Float},
	{Out: "currency", Names: []string{"Currency"}, Kind: soap.String},
}

// AvailabilityInput is the validated caller input for an availability search.
// ReturnDate empty means one-way.
type AvailabilityInput struct {
	SectorFrom  string
	SectorTo    string
	FlightDate  string
	ReturnDate  string
	Adult       int
	Child       int
	Infant      int
	Nationality string
}

// AvailabilityResult is the outbound and inbound offer lists in backend
// order. InboundFlights is empty, not nil, for one-way searches.
type AvailabilityResult struct {
	OutboundFlights []models.FlightOffer `json:"outbound_flights"`
	InboundFlights  []models.FlightOffer `json:"inbound_flights"`
}

// FlightAvailability searches flights for the given sectors and dates.
func (s *Service) FlightAvailability(ctx context.Context, creds middleware.Credentials, in AvailabilityInput) (AvailabilityResult, error) {
	params := append(credParams(creds),
		soap.Param{Name: "strSectorFrom", Value: in.SectorFrom},
		soap.Param{Name: "strSectorTo", Value: in.SectorTo},
		soap.Param{Name: "strFlightDate", Value: in.FlightDate},
		soap.Param{Name: "strReturnDate", Value: in.ReturnDate},
		soap.Param{Name: "intAdult", Value: strconv.Itoa(in.Adult)},
		soap.Param{Name: "intChild", Value: strconv.Itoa(in.Child)},
		soap.Param{Name: "intInfant", Value: strconv.Itoa(in.Infant)},
		soap.Param{Name: "strNationality", Value: in.Nationality},
	)

	result := AvailabilityResult{
		OutboundFlights: []models.FlightOffer{},
		InboundFlights:  []models.FlightOffer{},
	}

	elem, err := s.call(ctx, "FlightAvailability", params)
	if err != nil {
		return AvailabilityResult{}, err
	}
	if elem == nil {
		return result, nil
	}

	result.OutboundFlights, err = mapOffers(soap.FindLocal(elem, "OutBound"))
	if err != nil {
		return AvailabilityResult{}, err
	}
	result.InboundFlights, err = mapOffers(soap.FindLocal(elem, "InBound"))
	if err != nil {
		return AvailabilityResult{}, err
	}
	return result, nil
}

func mapOffers(parent *etree.Element) ([]models.FlightOffer, error) {
	offers := []models.FlightOffer{}
	if parent == nil {
		return offers, nil
	}
	records, err := soap.MapList(parent, "Flight", flightFields)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		offers = append(offers, projectOffer(record))
	}
	return offers, nil
}

// projectOffer builds a FlightOffer with derived totals. Totals are always
// recomputed from the fare components; any total the backend sends is
// ignored.
func projectOffer(record soap.Record) models.FlightOffer {
	offer := models.FlightOffer{
		AirlineID:          record.String("airline_id"),
		FlightID:           record.String("flight_id"),
		FlightNo:           record.String("flight_no"),
		FlightDate:         record.String("flight_date"),
		DepartureTime:      record.String("departure_time"),
		ArrivalTime:        record.String("arrival_time"),
		Departure:          record.String("departure"),
		Arrival:            record.String("arrival"),
		AdultFare:          record.Float("adult_fare"),
		ChildFare:          record.Float("child_fare"),
		InfantFare:         record.Float("infant_fare"),
		FuelSurcharge:      record.Float("fuel_surcharge"),
		Tax:                record.Float("tax"),
		ChildTaxAdjustment: record.Float("child_tax_adjustment"),
		Commission:         record.Float("commission"),
		ChildCommission:    record.Float("child_commission"),
		Currency:           record.String("currency"),
	}
	offer.TotalAdultFare = offer.AdultFare + offer.FuelSurcharge + offer.Tax
	offer.TotalChildFare = offer.ChildFare + offer.FuelSurcharge + offer.Tax + offer.ChildTaxAdjustment
	return offer
}
