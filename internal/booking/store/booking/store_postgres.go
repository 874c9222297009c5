package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tanchhohang/airlines-api/internal/booking/models"
)

// PostgresStore persists bookings in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed booking store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, b models.Booking, passengers []models.Passenger) (models.Booking, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, fmt.Errorf("begin create booking: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO bookings (
			username, pnr, airline_id, flight_id, flight_no, flight_date,
			departure, arrival, contact_name, contact_email, contact_mobile,
			reservation_status, ttl_date, ttl_time
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at
	`
	err = tx.QueryRowContext(ctx, query,
		b.Username, b.PNR, b.AirlineID, b.FlightID, b.FlightNo, b.FlightDate,
		b.Departure, b.Arrival, b.ContactName, b.ContactEmail, b.ContactMobile,
		b.ReservationStatus, nullString(b.TTLDate), nullString(b.TTLTime),
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return models.Booking{}, fmt.Errorf("insert booking %s: %w", b.PNR, err)
	}

	for _, p := range passengers {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO passengers (
				booking_id, pax_type, title, gender, first_name, last_name, nationality
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			b.ID, p.PaxType, p.Title, p.Gender, p.FirstName, p.LastName, p.Nationality,
		)
		if err != nil {
			return models.Booking{}, fmt.Errorf("insert passenger for %s: %w", b.PNR, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, fmt.Errorf("commit create booking: %w", err)
	}
	return b, nil
}

func (s *PostgresStore) GetByPNR(ctx context.Context, username, pnr string) (models.Booking, []models.Passenger, error) {
	var b models.Booking
	var ttlDate, ttlTime sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, pnr, airline_id, flight_id, flight_no, flight_date,
		       departure, arrival, contact_name, contact_email, contact_mobile,
		       reservation_status, ttl_date, ttl_time, created_at
		FROM bookings WHERE username = $1 AND pnr = $2`,
		username, pnr,
	).Scan(
		&b.ID, &b.Username, &b.PNR, &b.AirlineID, &b.FlightID, &b.FlightNo, &b.FlightDate,
		&b.Departure, &b.Arrival, &b.ContactName, &b.ContactEmail, &b.ContactMobile,
		&b.ReservationStatus, &ttlDate, &ttlTime, &b.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, nil, ErrNotFound
	}
	if err != nil {
		return models.Booking{}, nil, fmt.Errorf("get booking %s: %w", pnr, err)
	}
	b.TTLDate = ttlDate.String
	b.TTLTime = ttlTime.String

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, booking_id, pax_type, title, gender, first_name, last_name,
		       nationality, COALESCE(ticket_no, ''), COALESCE(fare, 0),
		       COALESCE(fuel_surcharge, 0), COALESCE(tax, 0)
		FROM passengers WHERE booking_id = $1 ORDER BY id`, b.ID)
	if err != nil {
		return models.Booking{}, nil, fmt.Errorf("list passengers for %s: %w", pnr, err)
	}
	defer rows.Close()

	var passengers []models.Passenger
	for rows.Next() {
		var p models.Passenger
		if err := rows.Scan(&p.ID, &p.BookingID, &p.PaxType, &p.Title, &p.Gender,
			&p.FirstName, &p.LastName, &p.Nationality, &p.TicketNo,
			&p.Fare, &p.FuelSurcharge, &p.Tax); err != nil {
			return models.Booking{}, nil, fmt.Errorf("scan passenger: %w", err)
		}
		passengers = append(passengers, p)
	}
	if err := rows.Err(); err != nil {
		return models.Booking{}, nil, fmt.Errorf("list passengers for %s: %w", pnr, err)
	}
	return b, passengers, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, username string) ([]models.Booking, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, pnr, airline_id, flight_id, flight_no, flight_date,
		       departure, arrival, contact_name, contact_email, contact_mobile,
		       reservation_status, COALESCE(ttl_date, ''), COALESCE(ttl_time, ''), created_at
		FROM bookings WHERE username = $1 ORDER BY created_at DESC`, username)
	if err != nil {
		return nil, fmt.Errorf("list bookings for %s: %w", username, err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(
			&b.ID, &b.Username, &b.PNR, &b.AirlineID, &b.FlightID, &b.FlightNo, &b.FlightDate,
			&b.Departure, &b.Arrival, &b.ContactName, &b.ContactEmail, &b.ContactMobile,
			&b.ReservationStatus, &b.TTLDate, &b.TTLTime, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookings for %s: %w", username, err)
	}
	return bookings, nil
}

func (s *PostgresStore) AttachTickets(ctx context.Context, pnr string, ticketRows []models.ItineraryRow) error {
	for _, row := range ticketRows {
		_, err := s.db.ExecContext(ctx, `
			UPDATE passengers p SET
				ticket_no = $1, fare = $2, fuel_surcharge = $3, tax = $4
			FROM bookings b
			WHERE p.booking_id = b.id AND b.pnr = $5
			  AND LOWER(p.first_name || ' ' || p.last_name) = LOWER($6)`,
			row.TicketNo, row.Fare, row.FuelSurcharge, row.Tax, pnr, strings.TrimSpace(row.PassengerName),
		)
		if err != nil {
			return fmt.Errorf("attach ticket %s to %s: %w", row.TicketNo, pnr, err)
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
