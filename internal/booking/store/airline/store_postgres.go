package airline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tanchhohang/airlines-api/internal/booking/models"
)

// PostgresStore persists airlines in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed airline store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Upsert(ctx context.Context, airline models.Airline) (models.Airline, error) {
	query := `
		INSERT INTO airlines (airline_id, airline_name, fare)
		VALUES ($1, $2, $3)
		ON CONFLICT (airline_id) DO UPDATE SET
			airline_name = EXCLUDED.airline_name,
			fare = EXCLUDED.fare
		RETURNING airline_id, airline_name, fare
	`
	var out models.Airline
	err := s.db.QueryRowContext(ctx, query, airline.AirlineID, airline.AirlineName, airline.Fare).
		Scan(&out.AirlineID, &out.AirlineName, &out.Fare)
	if err != nil {
		return models.Airline{}, fmt.Errorf("upsert airline %s: %w", airline.AirlineID, err)
	}
	return out, nil
}

func (s *PostgresStore) UpsertName(ctx context.Context, airlineID, airlineName string) (models.Airline, error) {
	query := `
		INSERT INTO airlines (airline_id, airline_name, fare)
		VALUES ($1, $2, 0)
		ON CONFLICT (airline_id) DO UPDATE SET
			airline_name = EXCLUDED.airline_name
		RETURNING airline_id, airline_name, fare
	`
	var out models.Airline
	err := s.db.QueryRowContext(ctx, query, airlineID, airlineName).
		Scan(&out.AirlineID, &out.AirlineName, &out.Fare)
	if err != nil {
		return models.Airline{}, fmt.Errorf("upsert airline name %s: %w", airlineID, err)
	}
	return out, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, airlineID string) (models.Airline, error) {
	var airline models.Airline
	err := s.db.QueryRowContext(ctx,
		`SELECT airline_id, airline_name, fare FROM airlines WHERE airline_id = $1`, airlineID,
	).Scan(&airline.AirlineID, &airline.AirlineName, &airline.Fare)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Airline{}, ErrNotFound
	}
	if err != nil {
		return models.Airline{}, fmt.Errorf("get airline %s: %w", airlineID, err)
	}
	return airline, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Airline, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT airline_id, airline_name, fare FROM airlines ORDER BY airline_id`)
	if err != nil {
		return nil, fmt.Errorf("list airlines: %w", err)
	}
	defer rows.Close()

	var airlines []models.Airline
	for rows.Next() {
		var airline models.Airline
		if err := rows.Scan(&airline.AirlineID, &airline.AirlineName, &airline.Fare); err != nil {
			return nil, fmt.Errorf("scan airline: %w", err)
		}
		airlines = append(airlines, airline)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list airlines: %w", err)
	}
	return airlines, nil
}
