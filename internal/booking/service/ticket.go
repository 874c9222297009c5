package service

import (
	"context"

	"github.com/beevik/etree"

	"github.com/tanchhohang/airlines-api/internal/booking/models"
	"github.com/tanchhohang/airlines-api/internal/platform/middleware"
	"github.com/tanchhohang/airlines-api/internal/soap"
	dErrors "github.com/tanchhohang/airlines-api/pkg/domain-errors"
)

var itineraryFields = []soap.Field{
	{Out: "passenger_name", Names: []string{"PaxName", "PassengerName"}, Kind: soap.String, Required: true},
	{Out: "pax_type", Names: []string{"PaxType"}, Kind: soap.String},
	{Out: "ticket_no", Names: []string{"TicketNO", "TicketNo"}, Kind: soap.String, Required: true},
	{Out: "pnr_no", Names: []string{"PNRNO", "PNRNo"}, Kind: soap.String},
	{Out: "flight_no", Names: []string{"FlightNo"}, Kind: soap.String},
	{Out: "flight_date", Names: []string{"FlightDate"}, Kind: soap.Date},
	{Out: "departure", Names: []string{"Departure", "SectorFrom"}, Kind: soap.String},
	{Out: "arrival", Names: []string{"Arrival", "SectorTo"}, Kind: soap.String},
	{Out: "fare", Names: []string{"Fare"}, Kind: soap.Float},
	{Out: "fuel_surcharge", Names: []string{"FuelSurcharge"}, Kind: soap.Float},
	{Out: "tax", Names: []string{"Tax"}, Kind: soap.Float},
	{Out: "commission", Names: []string{"Commission"}, Kind: soap.Float},
}

// IssueTicketInput is the validated caller input for ticket issuance.
type IssueTicketInput struct {
	PNRNo      string
	Passengers []PassengerInput
}

// IssueTicket issues tickets for a held reservation. The passenger list is
// serialized to an XML fragment and embedded in the request via CDATA, which
// is how the backend expects structured arguments. Returns one itinerary row
// per issued ticket and records the ticket numbers on the persisted booking.
func (s *Service) IssueTicket(ctx context.Context, creds middleware.Credentials, in IssueTicketInput) ([]models.ItineraryRow, error) {
	params := append(credParams(creds),
		soap.Param{Name: "strPnrNo", Value: in.PNRNo},
		soap.Param{Name: "strPaxDetail", Value: passengerFragment(in.Passengers), CDATA: true},
	)

	elem, err := s.call(ctx, "IssueTicket", params)
	if err != nil {
		return nil, err
	}
	if elem == nil {
		// Issuance is a paid mutation; the backend must confirm it.
		return nil, dErrors.New(dErrors.CodeMissingData, "ticket issuance returned no itinerary")
	}

	rows, err := mapItinerary(elem)
	if err != nil {
		return nil, err
	}

	// The backend has already issued the tickets; a local persistence
	// failure must not hide them from the caller.
	if err := s.bookings.AttachTickets(ctx, in.PNRNo, rows); err != nil {
		s.logger.ErrorContext(ctx, "failed to record issued tickets",
			"pnr", in.PNRNo,
			"error", err,
		)
	}
	return rows, nil
}

func mapItinerary(elem *etree.Element) ([]models.ItineraryRow, error) {
	records, err := soap.MapList(elem, "Ticket", itineraryFields)
	if err != nil {
		return nil, err
	}
	rows := make([]models.ItineraryRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, models.ItineraryRow{
			PassengerName: record.String("passenger_name"),
			PaxType:       record.String("pax_type"),
			TicketNo:      record.String("ticket_no"),
			PNRNo:         record.String("pnr_no"),
			FlightNo:      record.String("flight_no"),
			FlightDate:    record.String("flight_date"),
			Departure:     record.String("departure"),
			Arrival:       record.String("arrival"),
			Fare:          record.Float("fare"),
			FuelSurcharge: record.Float("fuel_surcharge"),
			Tax:           record.Float("tax"),
			Commission:    record.Float("commission"),
		})
	}
	return rows, nil
}

// passengerFragment renders the passenger list as the XML-as-text fragment
// the backend expects inside the CDATA parameter.
func passengerFragment(passengers []PassengerInput) string {
	doc := etree.NewDocument()
	root := doc.CreateElement("Passengers")
	for _, p := range passengers {
		pax := root.CreateElement("Passenger")
		pax.CreateElement("PaxType").SetText(p.PaxType)
		pax.CreateElement("Title").SetText(p.Title)
		pax.CreateElement("Gender").SetText(p.Gender)
		pax.CreateElement("FirstName").SetText(p.FirstName)
		pax.CreateElement("LastName").SetText(p.LastName)
		pax.CreateElement("Nationality").SetText(p.Nationality)
	}
	fragment, _ := doc.WriteToString()
	return fragment
}
