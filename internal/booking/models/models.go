// Package models holds the gateway's stable output schema and the persisted
// booking entities. Backend field spellings never leak past the soap mapping
// tables; everything here is the renamed, coerced form.
package models

import "time"

// Sector is an airport/city code-and-name pair used as flight origin or
// destination. Persisted; sector_code is the natural key.
type Sector struct {
	SectorCode string `json:"sector_code"`
	SectorName string `json:"sector_name"`
}

// Airline is persisted reference data.
type Airline struct {
	AirlineID   string  `json:"airline_id"`
	AirlineName string  `json:"airline_name"`
	Fare        float64 `json:"fare"`
}

// BalanceEntry is one row of a balance check.
type BalanceEntry struct {
	AirlineName   string  `json:"airline_name"`
	AgencyName    string  `json:"agency_name"`
	BalanceAmount float64 `json:"balance_amount"`
}

// FlightOffer is one leg of availability. The totals are always recomputed by
// the gateway from the fare components, never trusted verbatim from the
// backend.
type FlightOffer struct {
	AirlineID          string  `json:"airline_id"`
	FlightID           string  `json:"flight_id"`
	FlightNo           string  `json:"flight_no"`
	FlightDate         string  `json:"flight_date"`
	DepartureTime      string  `json:"departure_time"`
	ArrivalTime        string  `json:"arrival_time"`
	Departure          string  `json:"departure"`
	Arrival            string  `json:"arrival"`
	AdultFare          float64 `json:"adult_fare"`
	ChildFare          float64 `json:"child_fare"`
	InfantFare         float64 `json:"infant_fare"`
	FuelSurcharge      float64 `json:"fuel_surcharge"`
	Tax                float64 `json:"tax"`
	ChildTaxAdjustment float64 `json:"child_tax_adjustment"`
	Commission         float64 `json:"commission"`
	ChildCommission    float64 `json:"child_commission"`
	Currency           string  `json:"currency"`
	TotalAdultFare     float64 `json:"total_adult_fare"`
	TotalChildFare     float64 `json:"total_child_fare"`
}

// Reservation is the result of one reservation round trip. TTLDate/TTLTime
// are the ticketing time limit, a booking deadline distinct from cache TTLs.
type Reservation struct {
	FlightID          string `json:"flight_id"`
	PNRNo             string `json:"pnr_no"`
	AirlineID         string `json:"airline_id"`
	ReservationStatus string `json:"reservation_status"`
	TTLDate           string `json:"ttl_date"`
	TTLTime           string `json:"ttl_time"`
}

// ItineraryRow is one passenger row from ticket issuance or itinerary lookup.
type ItineraryRow struct {
	PassengerName string  `json:"passenger_name"`
	PaxType       string  `json:"pax_type"`
	TicketNo      string  `json:"ticket_no"`
	PNRNo         string  `json:"pnr_no"`
	FlightNo      string  `json:"flight_no"`
	FlightDate    string  `json:"flight_date"`
	Departure     string  `json:"departure"`
	Arrival       string  `json:"arrival"`
	Fare          float64 `json:"fare"`
	FuelSurcharge float64 `json:"fuel_surcharge"`
	Tax           float64 `json:"tax"`
	Commission    float64 `json:"commission"`
}

// SalesReportRow is one issued ticket within a reporting date range.
type SalesReportRow struct {
	TicketNo      string  `json:"ticket_no"`
	PNRNo         string  `json:"pnr_no"`
	PassengerName string  `json:"passenger_name"`
	FlightNo      string  `json:"flight_no"`
	FlightDate    string  `json:"flight_date"`
	IssueDate     string  `json:"issue_date"`
	Fare          float64 `json:"fare"`
	Tax           float64 `json:"tax"`
	Commission    float64 `json:"commission"`
}

// Booking is a persisted reservation made by a gateway user.
type Booking struct {
	ID                int64     `json:"id"`
	Username          string    `json:"username"`
	PNR               string    `json:"pnr"`
	AirlineID         string    `json:"airline_id"`
	FlightID          string    `json:"flight_id"`
	FlightNo          string    `json:"flight_no"`
	FlightDate        string    `json:"flight_date"`
	Departure         string    `json:"departure"`
	Arrival           string    `json:"arrival"`
	ContactName       string    `json:"contact_name"`
	ContactEmail      string    `json:"contact_email"`
	ContactMobile     string    `json:"contact_mobile"`
	ReservationStatus string    `json:"reservation_status"`
	TTLDate           string    `json:"ttl_date,omitempty"`
	TTLTime           string    `json:"ttl_time,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Passenger is a persisted passenger row on a booking. Fare fields are filled
// in after ticket issuance.
type Passenger struct {
	ID            int64   `json:"id"`
	BookingID     int64   `json:"booking_id"`
	PaxType       string  `json:"pax_type"`
	Title         string  `json:"title"`
	Gender        string  `json:"gender"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Nationality   string  `json:"nationality"`
	TicketNo      string  `json:"ticket_no,omitempty"`
	Fare          float64 `json:"fare"`
	FuelSurcharge float64 `json:"fuel_surcharge"`
	Tax           float64 `json:"tax"`
}
